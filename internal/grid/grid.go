// Package grid provides the 2-D pixel array the examination machinery
// works on, and clipped sub-window slicing around a cursor position.
package grid

import (
	"fmt"
	"math"
)

// Grid is a row-major 2-D array of float64 pixel values.
type Grid struct {
	stride int
	values []float64
}

// New creates a zero-filled grid of the given width and height.
func New(w, h int) *Grid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("grid: invalid size %dx%d", w, h))
	}
	return &Grid{
		stride: w,
		values: make([]float64, w*h),
	}
}

// FromValues wraps an existing row-major slice. The slice length must be
// a multiple of the width.
func FromValues(w int, values []float64) (*Grid, error) {
	if w <= 0 || len(values) == 0 || len(values)%w != 0 {
		return nil, fmt.Errorf("grid: %d values do not fill rows of width %d", len(values), w)
	}
	return &Grid{stride: w, values: values}, nil
}

// Dx returns the grid width in pixels.
func (g *Grid) Dx() int { return g.stride }

// Dy returns the grid height in pixels.
func (g *Grid) Dy() int { return len(g.values) / g.stride }

// At returns the pixel value at (x, y).
func (g *Grid) At(x, y int) float64 { return g.values[g.stride*y+x] }

// Set assigns the pixel value at (x, y).
func (g *Grid) Set(x, y int, v float64) { g.values[g.stride*y+x] = v }

// Fill assigns v to every pixel.
func (g *Grid) Fill(v float64) {
	for i := range g.values {
		g.values[i] = v
	}
}

// Values returns the backing row-major slice. Callers must treat it as
// read-only.
func (g *Grid) Values() []float64 { return g.values }

// Contains reports whether the integer pixel (x, y) lies on the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Dx() && y < g.Dy()
}

// Row returns a copy of row y.
func (g *Grid) Row(y int) []float64 {
	out := make([]float64, g.Dx())
	copy(out, g.values[y*g.stride:(y+1)*g.stride])
	return out
}

// Column returns a copy of column x.
func (g *Grid) Column(x int) []float64 {
	out := make([]float64, g.Dy())
	for y := 0; y < g.Dy(); y++ {
		out[y] = g.At(x, y)
	}
	return out
}

// MinMax returns the smallest and largest pixel values.
func (g *Grid) MinMax() (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range g.values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Window is an immutable copy of a sub-rectangle of a grid, together
// with the origin of that rectangle in the parent array. Windows are
// sliced freshly per invocation and never cached.
type Window struct {
	x0, y0 int
	data   *Grid
}

// WindowAround slices a square window of the given side length centered
// at (round(x), round(y)), clipped to the grid bounds. Clipping shrinks
// the window rather than erroring, so cursor positions near an edge are
// always valid. Side lengths below 1 collapse to a single pixel.
func (g *Grid) WindowAround(x, y float64, side int) *Window {
	if side < 1 {
		side = 1
	}
	cx := int(math.Round(x))
	cy := int(math.Round(y))
	half := side / 2

	x0 := clip(cx-half, 0, g.Dx()-1)
	y0 := clip(cy-half, 0, g.Dy()-1)
	x1 := clip(cx-half+side, 1, g.Dx())
	y1 := clip(cy-half+side, 1, g.Dy())
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	w := x1 - x0
	h := y1 - y0
	sub := New(w, h)
	for yy := 0; yy < h; yy++ {
		copy(sub.values[yy*w:(yy+1)*w], g.values[(y0+yy)*g.stride+x0:(y0+yy)*g.stride+x1])
	}
	return &Window{x0: x0, y0: y0, data: sub}
}

// FullWindow returns the whole grid as a window anchored at the origin.
func (g *Grid) FullWindow() *Window {
	w := g.Dx()
	h := g.Dy()
	sub := New(w, h)
	copy(sub.values, g.values)
	return &Window{data: sub}
}

// Origin returns the window's top-left corner in parent coordinates.
func (w *Window) Origin() (x0, y0 int) { return w.x0, w.y0 }

// SubWindow re-slices a smaller window around a position given in the
// parent's coordinates, with the same clipping rules as WindowAround.
// The result keeps parent coordinates for its origin.
func (w *Window) SubWindow(x, y float64, side int) *Window {
	sub := w.data.WindowAround(x-float64(w.x0), y-float64(w.y0), side)
	sub.x0 += w.x0
	sub.y0 += w.y0
	return sub
}

// Data returns a copy of the window's pixels as a standalone grid.
func (w *Window) Data() *Grid {
	g := New(w.Dx(), w.Dy())
	copy(g.values, w.data.values)
	return g
}

// Dx returns the window width.
func (w *Window) Dx() int { return w.data.Dx() }

// Dy returns the window height.
func (w *Window) Dy() int { return w.data.Dy() }

// At returns the value at window-local coordinates.
func (w *Window) At(x, y int) float64 { return w.data.At(x, y) }

// Values returns the window's row-major values. Read-only.
func (w *Window) Values() []float64 { return w.data.Values() }

// Row returns a copy of window row y.
func (w *Window) Row(y int) []float64 { return w.data.Row(y) }

// Column returns a copy of window column x.
func (w *Window) Column(x int) []float64 { return w.data.Column(x) }

// MinMax returns the smallest and largest values in the window.
func (w *Window) MinMax() (min, max float64) { return w.data.MinMax() }

func clip(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
