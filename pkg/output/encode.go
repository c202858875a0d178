package output

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
)

// Format identifies an output image encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// Formats lists every supported output format
var Formats = []Format{FormatPPM, FormatPNG, FormatBMP, FormatTIFF}

// ParseFormat converts a format name such as "png" or "tif" into a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("unsupported output format %q", name)
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	}
	return "image/x-portable-pixmap"
}

// ChannelByte converts a linear color component to an 8-bit channel value.
// Components are clamped to [0, 1] before rounding, so negative values map to 0.
func ChannelByte(component float64) uint8 {
	if math.IsNaN(component) {
		return 0
	}
	c := math.Max(0, math.Min(1, component))
	return uint8(math.Round(c * 255))
}

func toRGB(c core.Vec3) (uint8, uint8, uint8) {
	return ChannelByte(c.X), ChannelByte(c.Y), ChannelByte(c.Z)
}

// EncodePPM writes the buffer as a binary PPM (P6) image
func EncodePPM(w io.Writer, buf *renderer.PixelBuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", buf.Width, buf.Height); err != nil {
		return err
	}

	pixel := make([]byte, 3)
	for _, c := range buf.Pixels {
		pixel[0], pixel[1], pixel[2] = toRGB(c)
		if _, err := bw.Write(pixel); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ToImage converts the buffer to an opaque RGBA image
func ToImage(buf *renderer.PixelBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := toRGB(buf.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// Encode writes the buffer in the requested format
func Encode(w io.Writer, buf *renderer.PixelBuffer, format Format) error {
	switch format {
	case FormatPPM:
		return EncodePPM(w, buf)
	case FormatPNG:
		return png.Encode(w, ToImage(buf))
	case FormatBMP:
		return bmp.Encode(w, ToImage(buf))
	case FormatTIFF:
		return tiff.Encode(w, ToImage(buf), &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// WriteFile encodes the buffer to path, creating parent directories as needed.
// The format follows the file extension.
func WriteFile(path string, buf *renderer.PixelBuffer) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("error closing file: %w", closeErr)
		}
	}()

	if err := Encode(file, buf, format); err != nil {
		return fmt.Errorf("error encoding %s: %w", format, err)
	}
	return nil
}
