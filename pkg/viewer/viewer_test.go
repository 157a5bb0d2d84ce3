package viewer

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/cadstream/pkg/cad"
	"github.com/philipparndt/cadstream/pkg/geometry"
)

func cubeModel() *cad.Model {
	v := func(x, y, z float32) geometry.Vector3 { return geometry.NewVector3(x, y, z) }
	quad := func(n, a, b, c, d geometry.Vector3) []geometry.Triangle {
		return []geometry.Triangle{
			geometry.NewTriangle(n, a, b, c),
			geometry.NewTriangle(n, a, c, d),
		}
	}

	var tris []geometry.Triangle
	tris = append(tris, quad(v(0, 0, -1), v(0, 0, 0), v(0, 1, 0), v(1, 1, 0), v(1, 0, 0))...)
	tris = append(tris, quad(v(0, 0, 1), v(0, 0, 1), v(1, 0, 1), v(1, 1, 1), v(0, 1, 1))...)
	tris = append(tris, quad(v(0, -1, 0), v(0, 0, 0), v(1, 0, 0), v(1, 0, 1), v(0, 0, 1))...)
	tris = append(tris, quad(v(0, 1, 0), v(0, 1, 0), v(0, 1, 1), v(1, 1, 1), v(1, 1, 0))...)
	tris = append(tris, quad(v(-1, 0, 0), v(0, 0, 0), v(0, 0, 1), v(0, 1, 1), v(0, 1, 0))...)
	tris = append(tris, quad(v(1, 0, 0), v(1, 0, 0), v(1, 1, 0), v(1, 1, 1), v(1, 0, 1))...)
	return cad.New("cube.stl", tris, 0)
}

func TestCameraProjectsTargetToCenter(t *testing.T) {
	cam := NewCamera(cubeModel().Bounds())

	x, y, z := cam.Project(cam.Target, 200, 100)

	assert.InDelta(t, 100, x, 1e-3)
	assert.InDelta(t, 50, y, 1e-3)
	assert.InDelta(t, cam.Distance, z, 1e-4)
}

func TestCameraEmptyBoundsHasDistance(t *testing.T) {
	cam := NewCamera(geometry.BoundingBox{})

	assert.Equal(t, 1.0, cam.Distance)
	assert.NotEqual(t, cam.Target, cam.Position)
}

func TestCameraRotateAndZoom(t *testing.T) {
	cam := NewCamera(cubeModel().Bounds())

	cam.Rotate(10, 0)
	assert.InDelta(t, math.Pi/2-0.1, cam.RotationX, 1e-9)

	cam.Zoom(-0.99)
	cam.Zoom(-0.99)
	assert.Equal(t, 0.1, cam.Distance)
	assert.InDelta(t, 0.1, float64(cam.Position.Distance(cam.Target)), 1e-5)
}

func TestSnapshotNilModelIsBackground(t *testing.T) {
	opts := DefaultOptions(16, 8)

	img := Snapshot(nil, opts)

	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			require.Equal(t, opts.Background, img.RGBAAt(x, y))
		}
	}
}

func TestSnapshotDrawsModel(t *testing.T) {
	opts := DefaultOptions(64, 64)
	opts.BoxColor = color.RGBA{}

	img := Snapshot(cubeModel(), opts)

	center := img.RGBAAt(32, 32)
	assert.NotEqual(t, opts.Background, center)
	assert.LessOrEqual(t, center.B, opts.Albedo.B)
	assert.Equal(t, opts.Background, img.RGBAAt(0, 0), "corner stays background")
}

func TestSnapshotEmptyModelSkipsBox(t *testing.T) {
	opts := DefaultOptions(8, 8)

	img := Snapshot(cad.New("empty.stl", nil, 84), opts)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			require.Equal(t, opts.Background, img.RGBAAt(x, y))
		}
	}
}

func TestRasterDepthTest(t *testing.T) {
	near := color.RGBA{0, 0, 255, 255}
	far := color.RGBA{255, 0, 0, 255}
	tri := func(z float64) (point, point, point) {
		return point{0, 0, z}, point{10, 0, z}, point{0, 10, z}
	}

	r := newRaster(10, 10, color.RGBA{})
	a, b, c := tri(5)
	r.fillTriangle(a, b, c, far)
	a, b, c = tri(1)
	r.fillTriangle(a, c, b, near) // opposite winding
	assert.Equal(t, near, r.img.RGBAAt(1, 1))

	r = newRaster(10, 10, color.RGBA{})
	a, b, c = tri(1)
	r.fillTriangle(a, b, c, near)
	a, b, c = tri(5)
	r.fillTriangle(a, b, c, far)
	assert.Equal(t, near, r.img.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{}, r.img.RGBAAt(9, 9), "outside the triangle")
}

func TestRasterIgnoresNonFinitePoints(t *testing.T) {
	r := newRaster(4, 4, color.RGBA{})
	white := color.RGBA{255, 255, 255, 255}

	r.fillTriangle(point{math.NaN(), 0, 1}, point{4, 0, 1}, point{0, 4, 1}, white)
	r.drawLine(point{0, 0, 0}, point{math.Inf(1), 0, 0}, white)
	r.drawLine(point{0, 0, 0}, point{1e12, 0, 0}, white)

	assert.Equal(t, color.RGBA{}, r.img.RGBAAt(0, 0))
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WritePNG(&buf, cubeModel(), DefaultOptions(40, 30)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}
