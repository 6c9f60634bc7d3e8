package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"pixelprobe/internal/grid"
	"pixelprobe/internal/params"
)

// ReportStat computes a single statistic over the pixel region under
// the cursor. The "describe" statistic reports a full summary instead.
func (t *Toolkit) ReportStat(x, y float64, win *grid.Window, pset *params.Set) (string, error) {
	values := win.Values()
	if len(values) == 0 {
		return "", fmt.Errorf("empty region at (%.1f, %.1f)", x, y)
	}

	x0, y0 := win.Origin()
	span := fmt.Sprintf("[%d:%d,%d:%d]", y0, y0+win.Dy(), x0, x0+win.Dx())

	name := pset.Str("stat")
	if name == "describe" {
		lo, hi := win.MinMax()
		mean, std := stat.MeanStdDev(values, nil)
		return fmt.Sprintf("describe array %s\nnobs: %d\nminmax: (%g, %g)\nmean: %g\nstddev: %g\nvariance: %g\nskew: %g\nkurtosis: %g",
			span, len(values), lo, hi, mean, std, std*std,
			stat.Skew(values, nil), stat.ExKurtosis(values, nil)), nil
	}

	var result float64
	switch name {
	case "mean":
		result = stat.Mean(values, nil)
	case "median":
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		result = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	case "stddev":
		result = stat.StdDev(values, nil)
	case "variance":
		result = stat.Variance(values, nil)
	case "min":
		result, _ = win.MinMax()
	case "max":
		_, result = win.MinMax()
	case "sum":
		for _, v := range values {
			result += v
		}
	default:
		return "", fmt.Errorf("no statistic %s available", name)
	}
	return fmt.Sprintf("%s %s: %g", name, span, result), nil
}

// Histogram plots the intensity distribution of the region under the
// cursor. z1 and z2 clip the intensity range; zero means use the data
// bounds.
func (t *Toolkit) Histogram(x, y float64, win *grid.Window, pset *params.Set) (string, error) {
	values := win.Values()
	if len(values) == 0 {
		return "", fmt.Errorf("empty region at (%.1f, %.1f)", x, y)
	}

	z1 := pset.Float("z1")
	z2 := pset.Float("z2")
	lo, hi := win.MinMax()
	if z1 != 0 {
		lo = z1
	}
	if z2 != 0 {
		hi = z2
	}
	if hi <= lo {
		hi = lo + 1
	}

	nbins := pset.Int("nbins")
	if nbins < 1 {
		nbins = 1
	}
	edges := make([]float64, nbins+1)
	step := (hi - lo) / float64(nbins)
	for i := range edges {
		edges[i] = lo + float64(i)*step
	}

	counts := make([]float64, nbins)
	clipped := 0
	for _, v := range values {
		if v < lo || v > hi {
			clipped++
			continue
		}
		bin := int((v - lo) / step)
		if bin >= nbins {
			bin = nbins - 1
		}
		counts[bin]++
	}

	t.plots.Current().DrawHistogram(t.title(pset, x, y),
		pset.Str("xlabel"), pset.Str("ylabel"), edges, counts)

	peak := 0
	for i, c := range counts {
		if c > counts[peak] {
			peak = i
		}
	}
	text := fmt.Sprintf("%d bins over [%g, %g], mode bin at %g with %d counts",
		nbins, lo, hi, (edges[peak]+edges[peak+1])/2, int(counts[peak]))
	if clipped > 0 {
		text += fmt.Sprintf("\n%d pixels outside intensity range", clipped)
	}
	return text, nil
}
