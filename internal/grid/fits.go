package grid

import (
	"fmt"
	"os"

	"github.com/astrogo/fitsio"
)

// LoadFITS reads the primary HDU of a FITS file into a grid. Integer
// and float pixel formats are all widened to float64.
func LoadFITS(path string) (*Grid, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FITS file: %w", err)
	}
	defer func() { _ = r.Close() }()

	f, err := fitsio.Open(r)
	if err != nil {
		return nil, fmt.Errorf("parse FITS file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	hdu := f.HDU(0)
	img, ok := hdu.(fitsio.Image)
	if !ok {
		return nil, fmt.Errorf("%s: primary HDU is not an image", path)
	}

	hdr := img.Header()
	axes := hdr.Axes()
	if len(axes) != 2 {
		return nil, fmt.Errorf("%s: expected 2 axes, got %d", path, len(axes))
	}
	w, h := axes[0], axes[1]

	values := make([]float64, w*h)
	switch hdr.Bitpix() {
	case 8:
		var raw []int8
		if err := img.Read(&raw); err != nil {
			return nil, fmt.Errorf("read FITS data: %w", err)
		}
		for i, v := range raw {
			values[i] = float64(v)
		}
	case 16:
		var raw []int16
		if err := img.Read(&raw); err != nil {
			return nil, fmt.Errorf("read FITS data: %w", err)
		}
		for i, v := range raw {
			values[i] = float64(v)
		}
	case 32:
		var raw []int32
		if err := img.Read(&raw); err != nil {
			return nil, fmt.Errorf("read FITS data: %w", err)
		}
		for i, v := range raw {
			values[i] = float64(v)
		}
	case 64:
		var raw []int64
		if err := img.Read(&raw); err != nil {
			return nil, fmt.Errorf("read FITS data: %w", err)
		}
		for i, v := range raw {
			values[i] = float64(v)
		}
	case -32:
		var raw []float32
		if err := img.Read(&raw); err != nil {
			return nil, fmt.Errorf("read FITS data: %w", err)
		}
		for i, v := range raw {
			values[i] = float64(v)
		}
	case -64:
		if err := img.Read(&values); err != nil {
			return nil, fmt.Errorf("read FITS data: %w", err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported BITPIX %d", path, hdr.Bitpix())
	}

	return FromValues(w, values)
}

// WriteFITS writes a grid (or window copy) as a single-HDU float64 FITS
// image. Used for cursor cutouts.
func WriteFITS(path string, g *Grid) error {
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create FITS file: %w", err)
	}
	defer func() { _ = w.Close() }()

	f, err := fitsio.Create(w)
	if err != nil {
		return fmt.Errorf("create FITS structure: %w", err)
	}
	defer func() { _ = f.Close() }()

	img := fitsio.NewImage(-64, []int{g.Dx(), g.Dy()})
	defer func() { _ = img.Close() }()

	values := g.Values()
	if err := img.Write(&values); err != nil {
		return fmt.Errorf("write FITS data: %w", err)
	}
	if err := f.Write(img); err != nil {
		return fmt.Errorf("write FITS HDU: %w", err)
	}
	return nil
}
