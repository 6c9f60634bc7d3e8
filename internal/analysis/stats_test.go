package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelprobe/internal/testutils"
)

func TestReportStat(t *testing.T) {
	img := testutils.Ramp(5, 5) // values 0..24

	tests := []struct {
		stat string
		want string
	}{
		{stat: "mean", want: "mean [0:5,0:5]: 12"},
		{stat: "median", want: "median [0:5,0:5]: 12"},
		{stat: "min", want: "min [0:5,0:5]: 0"},
		{stat: "max", want: "max [0:5,0:5]: 24"},
		{stat: "sum", want: "sum [0:5,0:5]: 300"},
	}

	tk := newTestToolkit()
	for _, tt := range tests {
		t.Run(tt.stat, func(t *testing.T) {
			pset := ReportStatParams()
			require.NoError(t, pset.SetString("stat", tt.stat))

			out, err := tk.ReportStat(2, 2, img.FullWindow(), pset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestReportStatDescribe(t *testing.T) {
	img := testutils.Ramp(5, 5)
	tk := newTestToolkit()

	pset := ReportStatParams()
	require.NoError(t, pset.SetString("stat", "describe"))

	out, err := tk.ReportStat(2, 2, img.FullWindow(), pset)
	require.NoError(t, err)
	assert.Contains(t, out, "nobs: 25")
	assert.Contains(t, out, "minmax: (0, 24)")
	assert.Contains(t, out, "mean: 12")
}

func TestReportStatUsesWindowCoords(t *testing.T) {
	img := testutils.FlatGrid(20, 20, 4)
	tk := newTestToolkit()

	pset := ReportStatParams()
	require.NoError(t, pset.SetString("stat", "sum"))

	// A 5x5 region at (10, 10) spans rows and columns 8 through 12.
	out, err := tk.ReportStat(10, 10, img.WindowAround(10, 10, 5), pset)
	require.NoError(t, err)
	assert.Equal(t, "sum [8:13,8:13]: 100", out)
}

func TestHistogram(t *testing.T) {
	img := testutils.Ramp(10, 10) // values 0..99
	tk := newTestToolkit()

	pset := HistogramParams()
	require.NoError(t, pset.SetString("nbins", "10"))

	out, err := tk.Histogram(5, 5, img.FullWindow(), pset)
	require.NoError(t, err)
	assert.Contains(t, out, "10 bins over [0, 99]")

	// Intensity limits clip pixels outside [10, 50].
	require.NoError(t, pset.SetString("z1", "10"))
	require.NoError(t, pset.SetString("z2", "50"))
	out, err = tk.Histogram(5, 5, img.FullWindow(), pset)
	require.NoError(t, err)
	assert.Contains(t, out, "pixels outside intensity range")
}

func TestHistogramFlatRegion(t *testing.T) {
	img := testutils.FlatGrid(10, 10, 3)
	tk := newTestToolkit()

	out, err := tk.Histogram(5, 5, img.FullWindow(), HistogramParams())
	require.NoError(t, err)
	assert.Contains(t, out, "100 counts")
}
