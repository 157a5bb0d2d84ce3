package viewer

import (
	"image"
	"image/color"
	"math"
)

// point is a projected vertex: pixel coordinates plus view depth
type point struct {
	x, y, z float64
}

// maxCoord bounds projected coordinates we are willing to walk
const maxCoord = 1 << 20

func (p point) finite() bool {
	for _, v := range [3]float64{p.x, p.y, p.z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p point) nearScreen() bool {
	return math.Abs(p.x) < maxCoord && math.Abs(p.y) < maxCoord
}

// raster is an RGBA image with a depth buffer
type raster struct {
	img   *image.RGBA
	depth []float64
}

func newRaster(width, height int, background color.RGBA) *raster {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	depth := make([]float64, width*height)
	for i := range depth {
		depth[i] = math.Inf(1)
	}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = background.R
		img.Pix[i+1] = background.G
		img.Pix[i+2] = background.B
		img.Pix[i+3] = background.A
	}
	return &raster{img: img, depth: depth}
}

// edge is twice the signed area of (a, b, c)
func edge(a, b point, cx, cy float64) float64 {
	return (cx-a.x)*(b.y-a.y) - (cy-a.y)*(b.x-a.x)
}

// fillTriangle fills a triangle with depth testing; nearer fragments win.
// Pixels are sampled at their centers and both windings are filled.
func (r *raster) fillTriangle(p0, p1, p2 point, col color.RGBA) {
	if !p0.finite() || !p1.finite() || !p2.finite() {
		return
	}
	area := edge(p0, p1, p2.x, p2.y)
	if area == 0 {
		return
	}

	bounds := r.img.Bounds()
	minX := int(max(float64(bounds.Min.X), math.Floor(min(p0.x, p1.x, p2.x))))
	maxX := int(min(float64(bounds.Max.X-1), math.Ceil(max(p0.x, p1.x, p2.x))))
	minY := int(max(float64(bounds.Min.Y), math.Floor(min(p0.y, p1.y, p2.y))))
	maxY := int(min(float64(bounds.Max.Y-1), math.Ceil(max(p0.y, p1.y, p2.y))))
	width := bounds.Dx()

	for y := minY; y <= maxY; y++ {
		cy := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			cx := float64(x) + 0.5

			w0 := edge(p1, p2, cx, cy) / area
			w1 := edge(p2, p0, cx, cy) / area
			w2 := edge(p0, p1, cx, cy) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*p0.z + w1*p1.z + w2*p2.z
			idx := y*width + x
			if z < r.depth[idx] {
				r.depth[idx] = z
				r.img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawLine draws an overlay line using Bresenham's algorithm, ignoring
// depth
func (r *raster) drawLine(a, b point, col color.RGBA) {
	if !a.finite() || !b.finite() || !a.nearScreen() || !b.nearScreen() {
		return
	}
	x1, y1 := int(math.Round(a.x)), int(math.Round(a.y))
	x2, y2 := int(math.Round(b.x)), int(math.Round(b.y))
	bounds := r.img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		if (image.Point{X: x1, Y: y1}).In(bounds) {
			r.img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
