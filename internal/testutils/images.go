// Package testutils provides synthetic image data for tests: flat
// fields and Gaussian point sources with known parameters, so analysis
// results can be checked against closed-form answers.
package testutils

import (
	"math"

	"pixelprobe/internal/grid"
)

// FlatGrid returns a dx by dy image where every pixel holds value.
func FlatGrid(dx, dy int, value float64) *grid.Grid {
	g := grid.New(dx, dy)
	g.Fill(value)
	return g
}

// GaussianStar returns a dx by dy image holding a single 2-D Gaussian
// source on a constant background.
func GaussianStar(dx, dy int, cx, cy, amplitude, sigma, background float64) *grid.Grid {
	g := grid.New(dx, dy)
	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			ddx := float64(x) - cx
			ddy := float64(y) - cy
			g.Set(x, y, background+amplitude*math.Exp(-(ddx*ddx+ddy*ddy)/(2*sigma*sigma)))
		}
	}
	return g
}

// Ramp returns a dx by dy image whose pixel value is x + y*dx, handy
// for checking that row and column slicing picks the right data.
func Ramp(dx, dy int) *grid.Grid {
	g := grid.New(dx, dy)
	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			g.Set(x, y, float64(x+y*dx))
		}
	}
	return g
}
