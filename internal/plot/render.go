package plot

import (
	"fmt"
	"math"

	"pixelprobe/internal/grid"
)

// Plot geometry shared by every renderer.
const (
	marginLeft   = 56.0
	marginRight  = 16.0
	marginTop    = 28.0
	marginBottom = 44.0
)

// DrawSeries renders one x/y series with axes, a title, and axis
// labels. When points is true the samples are drawn as markers instead
// of a connected line.
func (w *Window) DrawSeries(title, xlabel, ylabel string, xs, ys []float64, points bool) {
	if w.closed || len(xs) == 0 || len(xs) != len(ys) {
		return
	}

	w.reset()
	w.frame(title, xlabel, ylabel)

	xmin, xmax := bounds(xs)
	ymin, ymax := bounds(ys)
	toX, toY := w.scalers(xmin, xmax, ymin, ymax)

	dc := w.dc
	dc.SetRGB(0.12, 0.29, 0.69)
	dc.SetLineWidth(1.5)
	if points {
		for i := range xs {
			dc.DrawCircle(toX(xs[i]), toY(ys[i]), 2.5)
			dc.Fill()
		}
	} else {
		for i := 1; i < len(xs); i++ {
			dc.DrawLine(toX(xs[i-1]), toY(ys[i-1]), toX(xs[i]), toY(ys[i]))
		}
		dc.Stroke()
	}
	w.axisLabels(xmin, xmax, ymin, ymax)
}

// DrawOverlay adds a second series (e.g. a model fit) to the current
// surface using the bounds of the given data. Call after DrawSeries.
func (w *Window) DrawOverlay(xs, ys []float64, dataXs, dataYs []float64) {
	if w.closed || len(xs) == 0 || len(xs) != len(ys) {
		return
	}
	xmin, xmax := bounds(dataXs)
	ymin, ymax := bounds(dataYs)
	toX, toY := w.scalers(xmin, xmax, ymin, ymax)

	dc := w.dc
	dc.SetRGB(0.78, 0.10, 0.10)
	dc.SetLineWidth(1.5)
	for i := 1; i < len(xs); i++ {
		dc.DrawLine(toX(xs[i-1]), toY(ys[i-1]), toX(xs[i]), toY(ys[i]))
	}
	dc.Stroke()
}

// DrawHistogram renders counts per bin as filled bars. edges has one
// more element than counts.
func (w *Window) DrawHistogram(title, xlabel, ylabel string, edges, counts []float64) {
	if w.closed || len(counts) == 0 || len(edges) != len(counts)+1 {
		return
	}

	w.reset()
	w.frame(title, xlabel, ylabel)

	xmin, xmax := edges[0], edges[len(edges)-1]
	_, ymax := bounds(counts)
	toX, toY := w.scalers(xmin, xmax, 0, ymax)

	dc := w.dc
	dc.SetRGBA(0.18, 0.55, 0.24, 0.7)
	for i, c := range counts {
		x0 := toX(edges[i])
		x1 := toX(edges[i+1])
		y0 := toY(0)
		y1 := toY(c)
		dc.DrawRectangle(x0, y1, x1-x0, y0-y1)
		dc.Fill()
	}
	w.axisLabels(xmin, xmax, 0, ymax)
}

// DrawLevels renders a window of pixel data as filled intensity levels,
// the raster approximation of a contour plot.
func (w *Window) DrawLevels(title string, win *grid.Window, levels int) {
	if w.closed || levels < 2 {
		return
	}

	w.reset()
	w.frame(title, "x", "y")

	lo, hi := win.MinMax()
	span := hi - lo
	if span == 0 {
		span = 1
	}

	plotW := float64(surfaceWidth) - marginLeft - marginRight
	plotH := float64(surfaceHeight) - marginTop - marginBottom
	cellW := plotW / float64(win.Dx())
	cellH := plotH / float64(win.Dy())

	dc := w.dc
	for yy := 0; yy < win.Dy(); yy++ {
		for xx := 0; xx < win.Dx(); xx++ {
			level := math.Floor((win.At(xx, yy) - lo) / span * float64(levels))
			if level >= float64(levels) {
				level = float64(levels) - 1
			}
			shade := 1 - level/float64(levels-1)
			dc.SetRGB(shade, shade, 1)
			// y grows upward in image coordinates
			px := marginLeft + float64(xx)*cellW
			py := float64(surfaceHeight) - marginBottom - float64(yy+1)*cellH
			dc.DrawRectangle(px, py, cellW+0.5, cellH+0.5)
			dc.Fill()
		}
	}
}

// DrawSurface renders a window of pixel data as a wireframe height
// field in an oblique projection.
func (w *Window) DrawSurface(title string, win *grid.Window, stride int) {
	if w.closed {
		return
	}
	if stride < 1 {
		stride = 1
	}

	w.reset()
	w.frame(title, "", "")

	lo, hi := win.MinMax()
	span := hi - lo
	if span == 0 {
		span = 1
	}

	plotW := float64(surfaceWidth) - marginLeft - marginRight
	plotH := float64(surfaceHeight) - marginTop - marginBottom
	heightScale := plotH * 0.45

	project := func(xx, yy int) (float64, float64) {
		fx := float64(xx) / float64(win.Dx())
		fy := float64(yy) / float64(win.Dy())
		z := (win.At(xx, yy) - lo) / span
		px := marginLeft + (fx+0.3*fy)*plotW*0.75
		py := float64(surfaceHeight) - marginBottom - 0.3*fy*plotH - z*heightScale
		return px, py
	}

	dc := w.dc
	dc.SetRGB(0.25, 0.25, 0.45)
	dc.SetLineWidth(1)
	for yy := 0; yy < win.Dy(); yy += stride {
		for xx := stride; xx < win.Dx(); xx += stride {
			x0, y0 := project(xx-stride, yy)
			x1, y1 := project(xx, yy)
			dc.DrawLine(x0, y0, x1, y1)
		}
	}
	for xx := 0; xx < win.Dx(); xx += stride {
		for yy := stride; yy < win.Dy(); yy += stride {
			x0, y0 := project(xx, yy-stride)
			x1, y1 := project(xx, yy)
			dc.DrawLine(x0, y0, x1, y1)
		}
	}
	dc.Stroke()
}

func (w *Window) reset() {
	w.dc.SetRGB(1, 1, 1)
	w.dc.Clear()
}

func (w *Window) frame(title, xlabel, ylabel string) {
	dc := w.dc
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(marginLeft, marginTop,
		float64(surfaceWidth)-marginLeft-marginRight,
		float64(surfaceHeight)-marginTop-marginBottom)
	dc.Stroke()

	if title != "" {
		dc.DrawStringAnchored(title, float64(surfaceWidth)/2, marginTop/2, 0.5, 0.5)
	}
	if xlabel != "" {
		dc.DrawStringAnchored(xlabel, float64(surfaceWidth)/2, float64(surfaceHeight)-12, 0.5, 0.5)
	}
	if ylabel != "" {
		dc.Push()
		dc.RotateAbout(-math.Pi/2, 14, float64(surfaceHeight)/2)
		dc.DrawStringAnchored(ylabel, 14, float64(surfaceHeight)/2, 0.5, 0.5)
		dc.Pop()
	}
}

func (w *Window) axisLabels(xmin, xmax, ymin, ymax float64) {
	dc := w.dc
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(fmt.Sprintf("%.4g", xmin), marginLeft, float64(surfaceHeight)-marginBottom+14, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.4g", xmax), float64(surfaceWidth)-marginRight, float64(surfaceHeight)-marginBottom+14, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.4g", ymin), marginLeft-4, float64(surfaceHeight)-marginBottom, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.4g", ymax), marginLeft-4, marginTop, 1, 0.5)
}

func (w *Window) scalers(xmin, xmax, ymin, ymax float64) (func(float64) float64, func(float64) float64) {
	if xmax == xmin {
		xmax = xmin + 1
	}
	if ymax == ymin {
		ymax = ymin + 1
	}
	plotW := float64(surfaceWidth) - marginLeft - marginRight
	plotH := float64(surfaceHeight) - marginTop - marginBottom

	toX := func(v float64) float64 {
		return marginLeft + (v-xmin)/(xmax-xmin)*plotW
	}
	toY := func(v float64) float64 {
		return float64(surfaceHeight) - marginBottom - (v-ymin)/(ymax-ymin)*plotH
	}
	return toX, toY
}

func bounds(vs []float64) (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range vs {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
