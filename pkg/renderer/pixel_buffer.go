package renderer

import "github.com/df07/go-mirror-raytracer/pkg/core"

// PixelBuffer holds one linear RGB color per pixel in row-major order
type PixelBuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewPixelBuffer allocates a zeroed width x height buffer
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (b *PixelBuffer) At(x, y int) core.Vec3 {
	return b.Pixels[x+y*b.Width]
}

// Set stores the color of pixel (x, y)
func (b *PixelBuffer) Set(x, y int, color core.Vec3) {
	b.Pixels[x+y*b.Width] = color
}

// Row returns the slice backing row y
func (b *PixelBuffer) Row(y int) []core.Vec3 {
	return b.Pixels[y*b.Width : (y+1)*b.Width]
}
