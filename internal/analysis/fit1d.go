package analysis

import (
	"fmt"
	"math"

	"pixelprobe/internal/grid"
	"pixelprobe/internal/params"
)

// LineFit fits a 1-D model to the image row under the cursor and plots
// the data with the fitted curve overlaid.
func (t *Toolkit) LineFit(x, y float64, win *grid.Window, pset *params.Set) (string, error) {
	return t.fit1D(x, y, win, pset, true)
}

// ColumnFit is LineFit along the image column under the cursor.
func (t *Toolkit) ColumnFit(x, y float64, win *grid.Window, pset *params.Set) (string, error) {
	return t.fit1D(x, y, win, pset, false)
}

func (t *Toolkit) fit1D(x, y float64, win *grid.Window, pset *params.Set, alongLine bool) (string, error) {
	x0, y0 := win.Origin()
	col := clampIndex(int(math.Round(x))-x0, win.Dx())
	row := clampIndex(int(math.Round(y))-y0, win.Dy())

	var data []float64
	var center, origin int
	if alongLine {
		data = win.Row(row)
		center, origin = col, x0
	} else {
		data = win.Column(col)
		center, origin = row, y0
	}

	rplot := pset.Int("rplot")
	if rplot < 1 {
		rplot = 1
	}
	if pset.Bool("center") {
		center = localMax(data, center, rplot)
	}
	lo := center - rplot
	if lo < 0 {
		lo = 0
	}
	hi := center + rplot + 1
	if hi > len(data) {
		hi = len(data)
	}
	chunk := data[lo:hi]
	if len(chunk) < 3 {
		return "", fmt.Errorf("not enough pixels to fit near (%.1f, %.1f)", x, y)
	}

	coords := make([]float64, len(chunk))
	for i := range coords {
		coords[i] = float64(origin + lo + i)
	}

	var (
		text  string
		model func(float64) float64
	)
	switch form := pset.Str("func"); form {
	case "Gaussian1D":
		fit, err := FitGauss1D(chunk)
		if err != nil {
			return "", err
		}
		model = func(v float64) float64 { return fit.Eval(v - coords[0]) }
		text = fmt.Sprintf("xc=%.4f\tfwhm=%.4f", coords[0]+fit.Mean, fit.FWHM())
	case "Moffat1D":
		fit, err := FitMoffat1D(chunk)
		if err != nil {
			return "", err
		}
		model = func(v float64) float64 { return fit.Eval(v - coords[0]) }
		text = fmt.Sprintf("alpha=%.4f\tgamma=%.4f\tfwhm=%.4f", fit.Alpha, fit.Gamma, fit.FWHM())
	case "Polynomial1D":
		coeffs, err := FitPoly(chunk, pset.Int("order"))
		if err != nil {
			return "", err
		}
		model = func(v float64) float64 { return PolyEval(coeffs, v-coords[0]) }
		text = fmt.Sprintf("polynomial coefficients: %v", coeffs)
	default:
		return "", fmt.Errorf("no fitting function %s available", form)
	}

	w := t.plots.Current()
	w.DrawSeries(t.title(pset, x, y), pset.Str("xlabel"), pset.Str("ylabel"),
		coords, chunk, pset.Bool("pointmode"))

	fineX := make([]float64, 0, len(chunk)*10)
	fineY := make([]float64, 0, len(chunk)*10)
	for v := coords[0]; v <= coords[len(coords)-1]; v += 0.1 {
		fineX = append(fineX, v)
		fineY = append(fineY, model(v))
	}
	w.DrawOverlay(fineX, fineY, coords, chunk)

	return text, nil
}

// localMax moves idx to the brightest pixel within delta, so fits stay
// anchored on the object even when the cursor is slightly off.
func localMax(data []float64, idx, delta int) int {
	lo := idx - delta
	if lo < 0 {
		lo = 0
	}
	hi := idx + delta + 1
	if hi > len(data) {
		hi = len(data)
	}
	best := lo
	for i := lo; i < hi; i++ {
		if data[i] > data[best] {
			best = i
		}
	}
	return best
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
