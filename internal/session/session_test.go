package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelprobe/internal/grid"
	"pixelprobe/internal/params"
	"pixelprobe/internal/testutils"
	"pixelprobe/pkg/probetypes"
)

func newLoadedSession() *Session {
	s := New()
	s.SetData(testutils.FlatGrid(100, 100, 10), "flat.fits")
	return s
}

func TestNewSessionHasBuiltins(t *testing.T) {
	s := New()
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, 16, len(s.Keys()))
	assert.Equal(t, StateIdle, s.State())
}

func TestDispatchRequiresData(t *testing.T) {
	s := New()
	_, err := s.Dispatch(probetypes.Event{X: 1, Y: 1, Key: 'a'})
	assert.ErrorIs(t, err, probetypes.ErrNoDataLoaded)
}

func TestDispatchUnknownKey(t *testing.T) {
	s := newLoadedSession()
	_, err := s.Dispatch(probetypes.Event{X: 1, Y: 1, Key: 'Z'})
	var unknown *probetypes.UnknownKeyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 'Z', unknown.Key)
}

func TestDispatchAperture(t *testing.T) {
	s := newLoadedSession()
	require.NoError(t, s.SetOption("aper_phot", "center", "false"))
	require.NoError(t, s.SetOption("aper_phot", "subsky", "false"))

	out, err := s.Dispatch(probetypes.Event{X: 50, Y: 50, Key: 'a'})
	require.NoError(t, err)
	assert.Contains(t, out, "810.00")
}

func TestDispatchSlicesDeclaredRegion(t *testing.T) {
	// report_stat declares region_size, so the stat runs over a 5x5
	// window and sum comes out as 25 pixels worth.
	s := newLoadedSession()
	require.NoError(t, s.SetOption("report_stat", "stat", "sum"))

	out, err := s.Dispatch(probetypes.Event{X: 50, Y: 50, Key: 'm'})
	require.NoError(t, err)
	assert.Equal(t, "sum [48:53,48:53]: 250", out)
}

func TestDispatchWrapsFunctionErrors(t *testing.T) {
	s := newLoadedSession()
	err := s.RegisterKey('z', func(x, y float64, _ *grid.Window, _ *params.Set) (string, error) {
		panic("index slip")
	}, nil, "always panics")
	require.NoError(t, err)

	_, err = s.Dispatch(probetypes.Event{X: 1, Y: 1, Key: 'z'})
	var analysisErr *probetypes.AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Contains(t, analysisErr.Error(), "index slip")
}

func TestRegisterKeyRejections(t *testing.T) {
	s := New()
	noop := func(x, y float64, _ *grid.Window, _ *params.Set) (string, error) { return "", nil }

	var reserved *probetypes.ReservedKeyError
	assert.ErrorAs(t, s.RegisterKey('q', noop, nil, "quit thief"), &reserved)
	assert.ErrorAs(t, s.RegisterKey('2', noop, nil, "window thief"), &reserved)

	var dup *probetypes.DuplicateKeyError
	assert.ErrorAs(t, s.RegisterKey('a', noop, nil, "already bound"), &dup)
}

func TestResetAllRestoresDefaults(t *testing.T) {
	s := New()
	require.NoError(t, s.SetOption("aper_phot", "radius", "9"))
	require.NoError(t, s.UnregisterKey('a'))
	noop := func(x, y float64, _ *grid.Window, _ *params.Set) (string, error) { return "", nil }
	require.NoError(t, s.RegisterKey('z', noop, nil, "user key"))

	s.ResetAll()
	assert.Equal(t, 16, len(s.Keys()))

	v, err := s.GetOption("aper_phot", "radius")
	require.NoError(t, err)
	assert.Equal(t, probetypes.IntValue(5), v)

	// A second reset changes nothing.
	s.ResetAll()
	assert.Equal(t, 16, len(s.Keys()))
}

func TestOptionEditing(t *testing.T) {
	s := New()

	require.NoError(t, s.SetOption("report_stat", "stat", "mean"))
	v, err := s.GetOption("report_stat", "stat")
	require.NoError(t, err)
	assert.Equal(t, "mean", v.S)

	assert.Error(t, s.SetOption("report_stat", "stat", "mode"))
	assert.Error(t, s.SetOption("report_stat", "no_such", "1"))
	assert.Error(t, s.SetOption("no_such_function", "stat", "mean"))
}

func TestExportImportParams(t *testing.T) {
	s := New()
	require.NoError(t, s.SetOption("aper_phot", "radius", "8"))

	data, err := s.ExportParams("aper_phot")
	require.NoError(t, err)
	assert.Contains(t, string(data), "radius: 8")

	other := New()
	require.NoError(t, other.ImportParams("aper_phot", data))
	v, err := other.GetOption("aper_phot", "radius")
	require.NoError(t, err)
	assert.Equal(t, probetypes.IntValue(8), v)

	_, err = s.ExportParams("no_such")
	assert.Error(t, err)
}

func TestResultLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.log")
	s := newLoadedSession()
	require.NoError(t, s.LogResultsTo(path))

	_, err := s.Dispatch(probetypes.Event{X: 3, Y: 4, Key: 'x'})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Return x,y,value of pixel")
	assert.Contains(t, string(data), "3.00\t4.00\t10")
	assert.True(t, strings.HasSuffix(string(data), "\n\n"))
}

func TestResultLogLevelGate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.log")
	s := newLoadedSession()
	require.NoError(t, s.LogResultsTo(path))
	require.NoError(t, s.SetResultLogLevel("error"))

	require.NoError(t, s.RegisterKey('z', func(_, _ float64, _ *grid.Window, _ *params.Set) (string, error) {
		panic("index slip")
	}, nil, "always panics"))

	_, err := s.Dispatch(probetypes.Event{X: 3, Y: 4, Key: 'x'})
	require.NoError(t, err)
	_, err = s.Dispatch(probetypes.Event{X: 1, Y: 1, Key: 'z'})
	require.Error(t, err)
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "3.00\t4.00\t10", "successes gated out at error level")
	assert.Contains(t, string(data), "index slip")

	assert.Error(t, s.SetResultLogLevel("loud"))
}

func TestLoadFITS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.fits")
	require.NoError(t, grid.WriteFITS(path, testutils.FlatGrid(8, 6, 2)))

	s := New()
	require.NoError(t, s.LoadFITS(path))
	assert.Equal(t, "flat.fits", s.FrameLabel())
	assert.Equal(t, 8, s.Data().Dx())

	assert.Error(t, s.LoadFITS(filepath.Join(t.TempDir(), "missing.fits")))
}
