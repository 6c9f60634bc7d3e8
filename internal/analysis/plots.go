package analysis

import (
	"fmt"
	"math"

	"pixelprobe/internal/grid"
	"pixelprobe/internal/params"
)

// PlotLine plots the full image row under the cursor.
func (t *Toolkit) PlotLine(x, y float64, win *grid.Window, pset *params.Set) (string, error) {
	x0, y0 := win.Origin()
	row := clampIndex(int(math.Round(y))-y0, win.Dy())
	data := win.Row(row)
	coords := make([]float64, len(data))
	for i := range coords {
		coords[i] = float64(x0 + i)
	}
	t.plots.Current().DrawSeries(t.title(pset, x, y),
		pset.Str("xlabel"), pset.Str("ylabel"), coords, data, pset.Bool("pointmode"))
	return fmt.Sprintf("line %d plotted", y0+row), nil
}

// PlotColumn plots the full image column under the cursor.
func (t *Toolkit) PlotColumn(x, y float64, win *grid.Window, pset *params.Set) (string, error) {
	x0, y0 := win.Origin()
	col := clampIndex(int(math.Round(x))-x0, win.Dx())
	data := win.Column(col)
	coords := make([]float64, len(data))
	for i := range coords {
		coords[i] = float64(y0 + i)
	}
	t.plots.Current().DrawSeries(t.title(pset, x, y),
		pset.Str("xlabel"), pset.Str("ylabel"), coords, data, pset.Bool("pointmode"))
	return fmt.Sprintf("column %d plotted", x0+col), nil
}

// Contour renders intensity levels for the region around the cursor.
func (t *Toolkit) Contour(x, y float64, win *grid.Window, pset *params.Set) (string, error) {
	levels := pset.Int("ncontours")
	if levels < 1 {
		levels = 1
	}
	t.plots.Current().DrawLevels(t.title(pset, x, y), win, levels)
	x0, y0 := win.Origin()
	return fmt.Sprintf("%d contour levels over [%d:%d,%d:%d]",
		levels, y0, y0+win.Dy(), x0, x0+win.Dx()), nil
}

// Surface renders a wireframe surface of the region around the cursor.
func (t *Toolkit) Surface(x, y float64, win *grid.Window, pset *params.Set) (string, error) {
	stride := pset.Int("stride")
	if stride < 1 {
		stride = 1
	}
	t.plots.Current().DrawSurface(t.title(pset, x, y), win, stride)
	x0, y0 := win.Origin()
	return fmt.Sprintf("surface plot over [%d:%d,%d:%d]",
		y0, y0+win.Dy(), x0, x0+win.Dx()), nil
}
