package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"pixelprobe/internal/grid"
	"pixelprobe/internal/params"
)

// sumCircle adds up every pixel whose center lies within radius r of
// (cx, cy), both in parent-frame coordinates. Returns the sum and the
// pixel count.
func sumCircle(win *grid.Window, cx, cy, r float64) (flux float64, area float64) {
	x0, y0 := win.Origin()
	r2 := r * r
	for yy := 0; yy < win.Dy(); yy++ {
		for xx := 0; xx < win.Dx(); xx++ {
			dx := float64(x0+xx) - cx
			dy := float64(y0+yy) - cy
			if dx*dx+dy*dy <= r2 {
				flux += win.At(xx, yy)
				area++
			}
		}
	}
	return flux, area
}

// sumAnnulus adds up pixels with rin <= distance < rout of (cx, cy).
func sumAnnulus(win *grid.Window, cx, cy, rin, rout float64) (flux float64, area float64) {
	x0, y0 := win.Origin()
	rin2 := rin * rin
	rout2 := rout * rout
	for yy := 0; yy < win.Dy(); yy++ {
		for xx := 0; xx < win.Dx(); xx++ {
			dx := float64(x0+xx) - cx
			dy := float64(y0+yy) - cy
			d2 := dx*dx + dy*dy
			if d2 >= rin2 && d2 < rout2 {
				flux += win.At(xx, yy)
				area++
			}
		}
	}
	return flux, area
}

// center optionally refines the cursor position with a Gaussian
// centroid. On fit failure the cursor position is kept and reported.
func (t *Toolkit) center(x, y float64, win *grid.Window, want bool) (cx, cy, fwhm float64, centered bool) {
	cx, cy = x, y
	fwhm = math.NaN()
	if !want {
		return cx, cy, fwhm, false
	}
	fit, err := FitGaussCenter(win.SubWindow(x, y, 2*centerDelta))
	if err != nil {
		t.log.Warn("Problem with centering, using cursor position", "error", err)
		return cx, cy, fwhm, false
	}
	return fit.X, fit.Y, GaussFWHM((fit.SigmaX + fit.SigmaY) / 2), true
}

// AperPhot performs circular aperture photometry at the cursor, with
// optional Gaussian recentering and sky annulus subtraction.
func (t *Toolkit) AperPhot(x, y float64, win *grid.Window, pset *params.Set) (string, error) {
	cx, cy, fwhm, centered := t.center(x, y, win, pset.Bool("center"))

	radius := float64(pset.Int("radius"))
	inner := float64(pset.Int("skyrad"))
	outer := inner + float64(pset.Int("width"))
	subsky := pset.Bool("subsky")
	zmag := pset.Float("zmag")

	raw, apArea := sumCircle(win, cx, cy, radius)
	if apArea == 0 {
		return "", fmt.Errorf("no pixels inside radius %g at (%.1f, %.1f)", radius, cx, cy)
	}

	total := raw
	skyPerPix := 0.0
	if subsky {
		bkg, bkgArea := sumAnnulus(win, cx, cy, inner, outer)
		if bkgArea == 0 {
			return "", fmt.Errorf("sky annulus [%g, %g) contains no pixels", inner, outer)
		}
		skyPerPix = bkg / bkgArea
		total = raw - skyPerPix*apArea
	}

	mag := zmag - 2.5*math.Log10(total)

	var b strings.Builder
	fmt.Fprintf(&b, "x\ty\tradius\tflux\tmag(zpt=%0.2f)\tsky", zmag)
	if centered {
		b.WriteString("\tfwhm")
	}
	fmt.Fprintf(&b, "\n%.2f\t%.2f\t%d\t%.2f\t%.2f\t%.2f", cx, cy, int(radius), total, mag, skyPerPix)
	if centered {
		fmt.Fprintf(&b, "\t%.2f", fwhm)
	}
	return b.String(), nil
}

// RadialProfile plots pixel intensity against distance from the object
// center and reports where the profile was measured.
func (t *Toolkit) RadialProfile(x, y float64, win *grid.Window, pset *params.Set) (string, error) {
	cx, cy, _, _ := t.center(x, y, win, pset.Bool("center"))

	datasize := int(pset.Float("rplot")) - 1
	if datasize < 1 {
		datasize = 1
	}
	chunk := win.SubWindow(cx, cy, 2*datasize)
	x0, y0 := chunk.Origin()

	skyPerPix := 0.0
	if pset.Bool("background") {
		inner := pset.Float("skyrad")
		outer := inner + pset.Float("width")
		bkg, bkgArea := sumAnnulus(win, cx, cy, inner, outer)
		if bkgArea > 0 {
			skyPerPix = bkg / bkgArea
		}
	}

	var radius, flux []float64
	if pset.Bool("pixels") {
		type sample struct{ r, v float64 }
		samples := make([]sample, 0, chunk.Dx()*chunk.Dy())
		for yy := 0; yy < chunk.Dy(); yy++ {
			for xx := 0; xx < chunk.Dx(); xx++ {
				dx := float64(x0+xx) - cx
				dy := float64(y0+yy) - cy
				samples = append(samples, sample{
					r: math.Sqrt(dx*dx + dy*dy),
					v: chunk.At(xx, yy) - skyPerPix,
				})
			}
		}
		sort.Slice(samples, func(i, j int) bool { return samples[i].r < samples[j].r })
		for _, s := range samples {
			radius = append(radius, s.r)
			flux = append(flux, s.v)
		}
	} else {
		// Sum the flux in integer radius bins.
		sums := make([]float64, datasize*2)
		counts := make([]float64, datasize*2)
		for yy := 0; yy < chunk.Dy(); yy++ {
			for xx := 0; xx < chunk.Dx(); xx++ {
				dx := float64(x0+xx) - cx
				dy := float64(y0+yy) - cy
				bin := int(math.Sqrt(dx*dx + dy*dy))
				if bin < len(sums) {
					sums[bin] += chunk.At(xx, yy)
					counts[bin]++
				}
			}
		}
		for bin, sum := range sums {
			if counts[bin] == 0 {
				continue
			}
			radius = append(radius, float64(bin))
			flux = append(flux, sum-counts[bin]*skyPerPix)
		}
	}

	t.plots.Current().DrawSeries(t.title(pset, cx, cy),
		pset.Str("xlabel"), pset.Str("ylabel"), radius, flux, pset.Bool("pointmode"))

	var b strings.Builder
	fmt.Fprintf(&b, "radial profile at (%.2f, %.2f)", cx, cy)
	if skyPerPix != 0 {
		fmt.Fprintf(&b, "\nbackground per pixel: %f", skyPerPix)
	}
	if pset.Bool("getdata") {
		b.WriteString("\nradius\tflux")
		for i := range radius {
			fmt.Fprintf(&b, "\n%.3f\t%.3f", radius[i], flux[i])
		}
	}
	return b.String(), nil
}

// CurveOfGrowth measures the flux in successively larger apertures
// around the object center.
func (t *Toolkit) CurveOfGrowth(x, y float64, win *grid.Window, pset *params.Set) (string, error) {
	cx, cy, _, _ := t.center(x, y, win, pset.Bool("center"))

	inner := pset.Float("buffer")
	width := pset.Float("width")
	router := int(pset.Float("rplot"))
	if router < 1 {
		router = 1
	}
	background := pset.Bool("background")

	skyPerPix := 0.0
	if background {
		bkg, bkgArea := sumAnnulus(win, cx, cy, inner, inner+width)
		if bkgArea > 0 {
			skyPerPix = bkg / bkgArea
		}
	}

	radius := make([]float64, 0, router)
	flux := make([]float64, 0, router)
	for rad := 1; rad <= router; rad++ {
		raw, area := sumCircle(win, cx, cy, float64(rad))
		if background {
			raw -= skyPerPix * area
		}
		radius = append(radius, float64(rad))
		flux = append(flux, raw)
	}

	t.plots.Current().DrawSeries(t.title(pset, cx, cy),
		pset.Str("xlabel"), pset.Str("ylabel"), radius, flux, true)

	var b strings.Builder
	fmt.Fprintf(&b, "at (x,y)=%d,%d", int(cx), int(cy))
	if pset.Bool("getdata") {
		b.WriteString("\nradii:")
		for _, r := range radius {
			fmt.Fprintf(&b, " %g", r)
		}
		b.WriteString("\nflux:")
		for _, f := range flux {
			fmt.Fprintf(&b, " %.2f", f)
		}
	}
	return b.String(), nil
}
