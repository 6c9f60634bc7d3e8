package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"pixelprobe/internal/grid"
)

// Model fitting helpers for the 1-D profile fits and 2-D centroiding.
// Nonlinear models are fit by least squares with Nelder-Mead; the
// polynomial fit is a linear Vandermonde solve.

var errFitFailed = errors.New("fit did not converge")

// Gauss1DFit is a 1-D Gaussian plus a constant offset.
type Gauss1DFit struct {
	Amplitude float64
	Mean      float64
	Stddev    float64
	Offset    float64
}

// Eval evaluates the fitted model at x.
func (f Gauss1DFit) Eval(x float64) float64 {
	d := (x - f.Mean) / f.Stddev
	return f.Offset + f.Amplitude*math.Exp(-0.5*d*d)
}

// FWHM returns the full width at half maximum of the fitted Gaussian.
func (f Gauss1DFit) FWHM() float64 { return GaussFWHM(f.Stddev) }

// GaussFWHM converts a Gaussian sigma into a full width at half maximum.
func GaussFWHM(sigma float64) float64 {
	return sigma * math.Sqrt(8.0*math.Ln2)
}

// FitGauss1D fits a Gaussian plus constant to a 1-D data chunk indexed
// 0..len-1. The chunk is assumed to already be cut to a sensible size.
func FitGauss1D(data []float64) (Gauss1DFit, error) {
	if len(data) < 4 {
		return Gauss1DFit{}, errors.New("too few samples for a gaussian fit")
	}
	lo, hi := minMax(data)

	start := []float64{hi - lo, float64(len(data)) / 2, 1, lo}
	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			f := Gauss1DFit{Amplitude: p[0], Mean: p[1], Stddev: p[2], Offset: p[3]}
			sum := 0.0
			for i, v := range data {
				d := f.Eval(float64(i)) - v
				sum += d * d
			}
			return sum
		},
	}

	result, err := optimize.Minimize(problem, start, nil, &optimize.NelderMead{})
	if err != nil {
		return Gauss1DFit{}, errFitFailed
	}
	fit := Gauss1DFit{
		Amplitude: result.X[0],
		Mean:      result.X[1],
		Stddev:    math.Abs(result.X[2]),
		Offset:    result.X[3],
	}
	if !finite(fit.Amplitude, fit.Mean, fit.Stddev) || fit.Stddev == 0 {
		return Gauss1DFit{}, errFitFailed
	}
	return fit, nil
}

// Moffat1DFit is a 1-D Moffat profile plus a constant offset.
type Moffat1DFit struct {
	Amplitude float64
	X0        float64
	Gamma     float64
	Alpha     float64
	Offset    float64
}

// Eval evaluates the fitted model at x.
func (f Moffat1DFit) Eval(x float64) float64 {
	d := (x - f.X0) / f.Gamma
	return f.Offset + f.Amplitude*math.Pow(1+d*d, -f.Alpha)
}

// FWHM returns the full width at half maximum of the fitted profile.
func (f Moffat1DFit) FWHM() float64 { return MoffatFWHM(f.Gamma, f.Alpha) }

// MoffatFWHM converts Moffat core width and power into a full width at
// half maximum: 2*gamma*sqrt(2^(1/alpha) - 1).
func MoffatFWHM(gamma, alpha float64) float64 {
	if gamma == 0 || alpha == 0 {
		return math.NaN()
	}
	return 2 * gamma * math.Sqrt(math.Pow(2, 1/alpha)-1)
}

// FitMoffat1D fits a Moffat profile plus constant to a 1-D data chunk.
func FitMoffat1D(data []float64) (Moffat1DFit, error) {
	if len(data) < 5 {
		return Moffat1DFit{}, errors.New("too few samples for a moffat fit")
	}
	lo, hi := minMax(data)

	start := []float64{hi - lo, float64(len(data)) / 2, 2, 1, lo}
	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			f := Moffat1DFit{Amplitude: p[0], X0: p[1], Gamma: p[2], Alpha: p[3], Offset: p[4]}
			sum := 0.0
			for i, v := range data {
				d := f.Eval(float64(i)) - v
				sum += d * d
			}
			return sum
		},
	}

	result, err := optimize.Minimize(problem, start, nil, &optimize.NelderMead{})
	if err != nil {
		return Moffat1DFit{}, errFitFailed
	}
	fit := Moffat1DFit{
		Amplitude: result.X[0],
		X0:        result.X[1],
		Gamma:     math.Abs(result.X[2]),
		Alpha:     result.X[3],
		Offset:    result.X[4],
	}
	if !finite(fit.Amplitude, fit.X0, fit.Gamma, fit.Alpha) || fit.Gamma == 0 {
		return Moffat1DFit{}, errFitFailed
	}
	return fit, nil
}

// FitPoly fits a polynomial of the given degree by linear least squares
// and returns the coefficients, constant term first.
func FitPoly(data []float64, degree int) ([]float64, error) {
	if degree < 0 || len(data) <= degree {
		return nil, errors.New("not enough samples for the requested degree")
	}

	n := len(data)
	a := mat.NewDense(n, degree+1, nil)
	for i := 0; i < n; i++ {
		x := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, x)
			x *= float64(i)
		}
	}
	b := mat.NewVecDense(n, append([]float64(nil), data...))

	var qr mat.QR
	qr.Factorize(a)
	var coeffs mat.VecDense
	if err := qr.SolveVecTo(&coeffs, false, b); err != nil {
		return nil, errFitFailed
	}

	out := make([]float64, degree+1)
	for i := range out {
		out[i] = coeffs.AtVec(i)
	}
	return out, nil
}

// PolyEval evaluates polynomial coefficients (constant first) at x.
func PolyEval(coeffs []float64, x float64) float64 {
	v := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = v*x + coeffs[i]
	}
	return v
}

// CenterFit is the result of a 2-D Gaussian centroid on a window.
type CenterFit struct {
	// X and Y are in the window's parent (full-frame) coordinates.
	X, Y           float64
	SigmaX, SigmaY float64
	Amplitude      float64
}

// FitGaussCenter locates the object in the window by fitting 1-D
// Gaussians to the marginal sums along each axis. This is the usual
// separable approximation to a full 2-D Gaussian fit and is stable on
// the small chunks the examination keys cut out.
func FitGaussCenter(win *grid.Window) (CenterFit, error) {
	margX := make([]float64, win.Dx())
	margY := make([]float64, win.Dy())
	for y := 0; y < win.Dy(); y++ {
		for x := 0; x < win.Dx(); x++ {
			v := win.At(x, y)
			margX[x] += v
			margY[y] += v
		}
	}

	fx, err := FitGauss1D(margX)
	if err != nil {
		return CenterFit{}, err
	}
	fy, err := FitGauss1D(margY)
	if err != nil {
		return CenterFit{}, err
	}

	x0, y0 := win.Origin()
	fit := CenterFit{
		X:         fx.Mean + float64(x0),
		Y:         fy.Mean + float64(y0),
		SigmaX:    fx.Stddev,
		SigmaY:    fy.Stddev,
		Amplitude: fx.Amplitude / math.Max(float64(win.Dy()), 1),
	}
	if fx.Mean < 0 || fy.Mean < 0 || fx.Mean > float64(win.Dx()) || fy.Mean > float64(win.Dy()) {
		return CenterFit{}, errFitFailed
	}
	return fit, nil
}

func minMax(vs []float64) (lo, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, v := range vs {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
