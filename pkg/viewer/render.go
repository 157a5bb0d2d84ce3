// Package viewer renders cad models to images without a GPU or window.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/philipparndt/cadstream/pkg/cad"
	"github.com/philipparndt/cadstream/pkg/geometry"
)

// Options controls image rendering
type Options struct {
	Width, Height int
	Background    color.RGBA
	// Albedo is the base surface color before shading.
	Albedo color.RGBA
	// BoxColor draws the bounding box wireframe; zero alpha disables it.
	BoxColor color.RGBA
}

// DefaultOptions returns the standard palette for the given size
func DefaultOptions(width, height int) Options {
	return Options{
		Width:      width,
		Height:     height,
		Background: color.RGBA{30, 30, 36, 255},
		Albedo:     color.RGBA{178, 178, 230, 255},
		BoxColor:   color.RGBA{204, 204, 204, 255},
	}
}

// boxEdges indexes BoundingBox.Corners
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Render draws model from cam. Faces are flat shaded with a headlight using
// the winding normal, so files with unreliable declared normals still look
// right.
func Render(model *cad.Model, cam *Camera, opts Options) *image.RGBA {
	r := newRaster(opts.Width, opts.Height, opts.Background)
	if model == nil {
		return r.img
	}

	w, h := float64(opts.Width), float64(opts.Height)
	project := func(v geometry.Vector3) point {
		x, y, z := cam.Project(v, w, h)
		return point{x, y, z}
	}
	toLight := cam.Forward().Mul(-1)

	for _, triangle := range model.Triangles() {
		normal := triangle.CalculateNormal()
		intensity := 0.25 + 0.75*math.Abs(float64(normal.Dot(toLight)))

		r.fillTriangle(
			project(triangle.Vertices[0]),
			project(triangle.Vertices[1]),
			project(triangle.Vertices[2]),
			shade(opts.Albedo, intensity),
		)
	}

	if opts.BoxColor.A > 0 && !model.Empty() {
		corners := model.Bounds().Corners()
		for _, e := range boxEdges {
			r.drawLine(project(corners[e[0]]), project(corners[e[1]]), opts.BoxColor)
		}
	}

	return r.img
}

// Snapshot renders model from a camera framing its bounding box
func Snapshot(model *cad.Model, opts Options) *image.RGBA {
	if model == nil {
		return Render(nil, nil, opts)
	}
	return Render(model, NewCamera(model.Bounds()), opts)
}

// WritePNG renders a snapshot of model and encodes it as PNG
func WritePNG(w io.Writer, model *cad.Model, opts Options) error {
	if err := png.Encode(w, Snapshot(model, opts)); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func shade(c color.RGBA, intensity float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, float64(v)*intensity))
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}
