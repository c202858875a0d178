package renderer

import (
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
	"github.com/df07/go-mirror-raytracer/pkg/integrator"
)

// MockScene implements integrator.Scene for testing
type MockScene struct {
	spheres    []geometry.Sphere
	background core.Vec3
}

func (m MockScene) GetSpheres() []geometry.Sphere { return m.spheres }
func (m MockScene) GetBackground() core.Vec3      { return m.background }

// MockIntegrator returns the ray direction as the color and counts calls
type MockIntegrator struct {
	callCount atomic.Int64
}

func (m *MockIntegrator) RayColor(ray core.Ray, scene integrator.Scene, depth int) (core.Vec3, int) {
	m.callCount.Add(1)
	return ray.Direction, 1
}

var testBackground = core.NewVec3(0.7, 0.7, 0.9)

func testConfig(width, height, workers int) Config {
	config := DefaultConfig()
	config.Width = width
	config.Height = height
	config.NumWorkers = workers
	return config
}

func TestRaytracer_EmptySceneCornersAreBackground(t *testing.T) {
	scene := MockScene{background: testBackground}
	rt := NewRaytracer(scene, testConfig(64, 48, 4))

	buf, stats := rt.Render()

	corners := [][2]int{{0, 0}, {63, 0}, {0, 47}, {63, 47}}
	for _, c := range corners {
		if got := buf.At(c[0], c[1]); got != testBackground {
			t.Errorf("Corner %v: expected background %v, got %v", c, testBackground, got)
		}
	}
	if stats.TotalPixels != 64*48 {
		t.Errorf("Expected %d pixels, got %d", 64*48, stats.TotalPixels)
	}
	if stats.MinRays != 1 || stats.MaxRays != 1 {
		t.Errorf("Every pixel should trace exactly one ray, got min %d max %d", stats.MinRays, stats.MaxRays)
	}
}

func TestRaytracer_SingleSphereCenterPixel(t *testing.T) {
	sphereColor := core.NewVec3(1, 0.32, 0.36)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, sphereColor)
	scene := MockScene{spheres: []geometry.Sphere{sphere}, background: testBackground}

	rt := NewRaytracer(scene, testConfig(101, 101, 2))
	buf, _ := rt.Render()

	center := buf.At(50, 50)

	// Recompute the blend from its definition
	mirror := integrator.NewMirrorIntegrator()
	primary := NewCamera(101, 101, math.Pi/2).GetRay(50, 50)
	tHit, isHit := sphere.Intersect(primary)
	if !isHit {
		t.Fatal("Center ray should hit the sphere")
	}
	hitPoint := primary.At(tHit)
	reflected := core.NewRay(hitPoint, primary.Direction.Reflect(sphere.Normal(hitPoint)))
	expected := sphereColor.Multiply(0.2).Add(mirror.Trace(reflected, scene, 3).Multiply(0.8))

	if center.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected center pixel %v, got %v", expected, center)
	}
	if center == testBackground {
		t.Error("Center pixel should differ from the background")
	}
	if buf.At(0, 0) != testBackground {
		t.Errorf("Corner should show background, got %v", buf.At(0, 0))
	}
}

func TestRaytracer_DeterministicAcrossWorkerCounts(t *testing.T) {
	scene := MockScene{
		spheres: []geometry.Sphere{
			geometry.NewSphere(core.NewVec3(-3, 0, -16), 2, core.NewVec3(1, 0.32, 0.36)),
			geometry.NewSphere(core.NewVec3(-1, -1.5, -12), 2, core.NewVec3(0.9, 0.76, 0.46)),
			geometry.NewSphere(core.NewVec3(1.5, -0.5, -18), 3, core.NewVec3(0.65, 0.77, 0.97)),
			geometry.NewSphere(core.NewVec3(7, 5, -18), 4, core.NewVec3(0.90, 0.90, 0.90)),
		},
		background: testBackground,
	}

	reference, referenceStats := NewRaytracer(scene, testConfig(96, 54, 1)).Render()

	for _, workers := range []int{2, 3, 8, 0} {
		buf, stats := NewRaytracer(scene, testConfig(96, 54, workers)).Render()
		for i := range reference.Pixels {
			if buf.Pixels[i] != reference.Pixels[i] {
				t.Fatalf("workers=%d: pixel %d differs: %v vs %v", workers, i, buf.Pixels[i], reference.Pixels[i])
			}
		}
		if stats.TotalRays != referenceStats.TotalRays {
			t.Errorf("workers=%d: expected %d rays, got %d", workers, referenceStats.TotalRays, stats.TotalRays)
		}
	}
}

func TestRaytracer_EveryPixelRenderedOnce(t *testing.T) {
	width, height := 37, 23
	mock := &MockIntegrator{}
	rt := NewRaytracer(MockScene{}, testConfig(width, height, 5))
	rt.SetIntegrator(mock)

	buf, stats := rt.Render()

	if got := mock.callCount.Load(); got != int64(width*height) {
		t.Errorf("Expected %d integrator calls, got %d", width*height, got)
	}
	if stats.Rows != height {
		t.Errorf("Expected %d rows, got %d", height, stats.Rows)
	}
	if stats.Workers != 5 {
		t.Errorf("Expected 5 workers, got %d", stats.Workers)
	}

	camera := NewCamera(width, height, math.Pi/2)
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			if buf.At(i, j) != camera.GetRay(i, j).Direction {
				t.Fatalf("Pixel (%d, %d) holds the wrong value %v", i, j, buf.At(i, j))
			}
		}
	}
}

// slowIntegrator spends a fixed time on every pixel
type slowIntegrator struct {
	delay time.Duration
}

func (s slowIntegrator) RayColor(ray core.Ray, scene integrator.Scene, depth int) (core.Vec3, int) {
	time.Sleep(s.delay)
	return core.Vec3{}, 1
}

func TestRaytracer_ElapsedCoversRowLoop(t *testing.T) {
	const delay = 2 * time.Millisecond
	rt := NewRaytracer(MockScene{}, testConfig(3, 2, 1))
	rt.SetIntegrator(slowIntegrator{delay: delay})

	before := time.Now()
	_, stats := rt.Render()
	total := time.Since(before)

	if stats.Elapsed < 6*delay {
		t.Errorf("Elapsed %v shorter than the row work (%v)", stats.Elapsed, 6*delay)
	}
	if stats.Elapsed > total {
		t.Errorf("Elapsed %v longer than the whole Render call %v", stats.Elapsed, total)
	}
}

func TestRaytracer_ZeroDepthIsBlack(t *testing.T) {
	scene := MockScene{background: testBackground}
	config := testConfig(8, 8, 2)
	config.MaxDepth = 0

	buf, stats := NewRaytracer(scene, config).Render()
	for i, p := range buf.Pixels {
		if p != (core.Vec3{}) {
			t.Fatalf("Pixel %d: expected black, got %v", i, p)
		}
	}
	if stats.TotalRays != 0 {
		t.Errorf("Expected no rays, got %d", stats.TotalRays)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Height = -1 }, true},
		{"zero fov", func(c *Config) { c.FOV = 0 }, true},
		{"fov pi", func(c *Config) { c.FOV = math.Pi }, true},
		{"nan fov", func(c *Config) { c.FOV = math.NaN() }, true},
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }, false},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, true},
		{"negative workers", func(c *Config) { c.NumWorkers = -2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestPixelBuffer(t *testing.T) {
	buf := NewPixelBuffer(4, 3)
	if len(buf.Pixels) != 12 {
		t.Fatalf("Expected 12 pixels, got %d", len(buf.Pixels))
	}

	color := core.NewVec3(0.1, 0.2, 0.3)
	buf.Set(2, 1, color)
	if buf.Pixels[6] != color {
		t.Errorf("Expected row-major index 6 to hold %v, got %v", color, buf.Pixels[6])
	}
	if buf.At(2, 1) != color {
		t.Errorf("At(2, 1) = %v, want %v", buf.At(2, 1), color)
	}
	if row := buf.Row(1); len(row) != 4 || row[2] != color {
		t.Errorf("Row(1) = %v", row)
	}
}
