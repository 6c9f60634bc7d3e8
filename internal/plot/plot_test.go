package plot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelprobe/internal/grid"
)

func TestCurrentCreatesFirstWindowLazily(t *testing.T) {
	m := NewManager()
	assert.Equal(t, 0, m.Count())

	w := m.Current()
	require.NotNil(t, w)
	assert.Equal(t, "probe", w.Name())
	assert.Equal(t, 1, m.Count())

	// Repeated calls return the same window.
	assert.Same(t, w, m.Current())
	assert.Equal(t, 1, m.Count())
}

func TestNewWindowSequentialNamesAndRedirect(t *testing.T) {
	m := NewManager()
	first := m.Current()
	second := m.NewWindow()

	assert.Equal(t, "probe", first.Name())
	assert.Equal(t, "probe2", second.Name())
	assert.NotSame(t, first, second)
	assert.Same(t, second, m.Current(), "output directed to the newest window")

	third := m.NewWindow()
	assert.Equal(t, "probe3", third.Name())
	assert.Same(t, third, m.Current())
}

func TestSelect(t *testing.T) {
	m := NewManager()
	first := m.Current()
	m.NewWindow()

	require.NoError(t, m.Select("probe"))
	assert.Same(t, first, m.Current())

	assert.Error(t, m.Select("nonexistent"))
}

func TestCloseIsIdempotent(t *testing.T) {
	m := NewManager()
	w := m.Current()
	m.NewWindow()

	m.Close(w.Name())
	assert.Equal(t, 1, m.Count())
	assert.True(t, w.Closed())

	// Closing again, or closing an unknown name, is swallowed.
	m.Close(w.Name())
	m.Close("never-existed")
	assert.Equal(t, 1, m.Count())
}

func TestCloseAllThenCurrentReopens(t *testing.T) {
	m := NewManager()
	m.Current()
	m.NewWindow()
	m.CloseAll()
	assert.Equal(t, 0, m.Count())

	w := m.Current()
	assert.Equal(t, "probe3", w.Name(), "window numbering keeps counting across closes")
	assert.Equal(t, 1, m.Count())
}

func TestDrawAndSave(t *testing.T) {
	m := NewManager()
	w := m.Current()

	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{1, 3, 9, 3, 1}
	w.DrawSeries("line at 2", "Column", "Pixel Value", xs, ys, false)
	w.DrawOverlay(xs, ys, xs, ys)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, w.Save(path))
}

func TestDrawHistogram(t *testing.T) {
	m := NewManager()
	w := m.Current()
	w.DrawHistogram("hist", "Flux (bin)", "Count",
		[]float64{0, 1, 2, 3}, []float64{4, 9, 2})

	path := filepath.Join(t.TempDir(), "hist.png")
	require.NoError(t, w.Save(path))
}

func TestDrawLevelsAndSurface(t *testing.T) {
	g := grid.New(20, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			g.Set(x, y, float64(x*y))
		}
	}
	win := g.FullWindow()

	m := NewManager()
	w := m.Current()
	w.DrawLevels("contour", win, 8)
	w.DrawSurface("surface", win, 1)

	path := filepath.Join(t.TempDir(), "surface.png")
	require.NoError(t, w.Save(path))
}

func TestSaveClosedWindowFails(t *testing.T) {
	m := NewManager()
	w := m.Current()
	m.Close(w.Name())

	assert.Error(t, w.Save(filepath.Join(t.TempDir(), "x.png")))
}
