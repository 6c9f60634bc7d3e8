package grid

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New(10, 4)
	assert.Equal(t, 10, g.Dx())
	assert.Equal(t, 4, g.Dy())
	assert.Equal(t, 0.0, g.At(9, 3))
}

func TestFromValues(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		values  []float64
		wantErr bool
	}{
		{
			name:   "exact rows",
			width:  3,
			values: []float64{1, 2, 3, 4, 5, 6},
		},
		{
			name:    "ragged rows",
			width:   4,
			values:  []float64{1, 2, 3, 4, 5},
			wantErr: true,
		},
		{
			name:    "empty",
			width:   4,
			values:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FromValues(tt.width, tt.values)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.width, g.Dx())
			assert.Equal(t, len(tt.values)/tt.width, g.Dy())
			assert.Equal(t, tt.values[tt.width], g.At(0, 1))
		})
	}
}

func TestRowColumn(t *testing.T) {
	g, err := FromValues(3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{4, 5, 6}, g.Row(1))
	assert.Equal(t, []float64{2, 5}, g.Column(1))
}

func TestWindowAround(t *testing.T) {
	g := New(100, 100)
	g.Fill(7)

	t.Run("interior window has the full size", func(t *testing.T) {
		w := g.WindowAround(50, 50, 5)
		assert.Equal(t, 5, w.Dx())
		assert.Equal(t, 5, w.Dy())
		x0, y0 := w.Origin()
		assert.Equal(t, 48, x0)
		assert.Equal(t, 48, y0)
	})

	t.Run("corner window clips instead of erroring", func(t *testing.T) {
		w := g.WindowAround(0, 0, 5)
		assert.Equal(t, 3, w.Dx())
		assert.Equal(t, 3, w.Dy())
		x0, y0 := w.Origin()
		assert.Equal(t, 0, x0)
		assert.Equal(t, 0, y0)
	})

	t.Run("edge window within a half pixel of the boundary", func(t *testing.T) {
		w := g.WindowAround(99.4, 0.4, 5)
		assert.GreaterOrEqual(t, w.Dx(), 1)
		assert.GreaterOrEqual(t, w.Dy(), 1)
	})

	t.Run("fractional center rounds", func(t *testing.T) {
		w := g.WindowAround(49.6, 49.6, 3)
		x0, y0 := w.Origin()
		assert.Equal(t, 49, x0)
		assert.Equal(t, 49, y0)
	})

	t.Run("window values copy the parent data", func(t *testing.T) {
		g.Set(50, 50, 42)
		w := g.WindowAround(50, 50, 1)
		assert.Equal(t, 42.0, w.At(0, 0))
		g.Set(50, 50, 7)
	})

	t.Run("degenerate side collapses to one pixel", func(t *testing.T) {
		w := g.WindowAround(10, 10, 0)
		assert.Equal(t, 1, w.Dx())
		assert.Equal(t, 1, w.Dy())
	})
}

func TestFullWindow(t *testing.T) {
	g, err := FromValues(2, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	w := g.FullWindow()
	assert.Equal(t, 2, w.Dx())
	assert.Equal(t, 2, w.Dy())
	x0, y0 := w.Origin()
	assert.Equal(t, 0, x0)
	assert.Equal(t, 0, y0)
	assert.Equal(t, 4.0, w.At(1, 1))
}

func TestMinMax(t *testing.T) {
	g, err := FromValues(2, []float64{-3, 9, 0, 2})
	require.NoError(t, err)

	min, max := g.MinMax()
	assert.Equal(t, -3.0, min)
	assert.Equal(t, 9.0, max)
}

func TestFITSRoundTrip(t *testing.T) {
	g := New(8, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			g.Set(x, y, float64(y*8+x))
		}
	}

	path := filepath.Join(t.TempDir(), "frame.fits")
	require.NoError(t, WriteFITS(path, g))

	loaded, err := LoadFITS(path)
	require.NoError(t, err)
	assert.Equal(t, g.Dx(), loaded.Dx())
	assert.Equal(t, g.Dy(), loaded.Dy())
	assert.Equal(t, g.At(5, 3), loaded.At(5, 3))
}
