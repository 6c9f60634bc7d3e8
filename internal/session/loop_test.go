package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelprobe/internal/viewer"
	"pixelprobe/pkg/probetypes"
)

func TestRunRequiresData(t *testing.T) {
	s := New()
	err := s.Run(viewer.NewScriptAdapter("frame1"))
	assert.ErrorIs(t, err, probetypes.ErrNoDataLoaded)
}

func TestRunStopsOnQuitKey(t *testing.T) {
	s := newLoadedSession()
	adapter := viewer.NewScriptAdapter("flat.fits",
		probetypes.Event{X: 3, Y: 4, Key: 'x'},
		probetypes.Event{X: 0, Y: 0, Key: 'q'},
		probetypes.Event{X: 9, Y: 9, Key: 'x'}, // never reached
	)

	require.NoError(t, s.Run(adapter))
	assert.Equal(t, StateTerminated, s.State())

	notes := adapter.Notifications()
	var results []string
	for _, n := range notes {
		if n == "3.00\t4.00\t10" || n == "9.00\t9.00\t10" {
			results = append(results, n)
		}
	}
	assert.Equal(t, []string{"3.00\t4.00\t10"}, results)
}

func TestRunStopsWhenEventsEnd(t *testing.T) {
	s := newLoadedSession()
	adapter := viewer.NewScriptAdapter("flat.fits",
		probetypes.Event{X: 1, Y: 1, Key: 'x'},
	)
	require.NoError(t, s.Run(adapter))
	assert.Equal(t, StateTerminated, s.State())
}

func TestRunShowsHelp(t *testing.T) {
	s := newLoadedSession()
	adapter := viewer.NewScriptAdapter("flat.fits",
		probetypes.Event{Key: '?'},
		probetypes.Event{Key: 'q'},
	)
	require.NoError(t, s.Run(adapter))

	helps := 0
	for _, n := range adapter.Notifications() {
		if len(n) > 0 && n[0] == 'A' && containsAll(n, "Available analysis functions", "Loop control") {
			helps++
		}
	}
	// Once at loop start, once for the '?' press.
	assert.Equal(t, 2, helps)
}

func TestRunOpensNewPlotWindow(t *testing.T) {
	s := newLoadedSession()
	adapter := viewer.NewScriptAdapter("flat.fits",
		probetypes.Event{Key: '2'},
		probetypes.Event{Key: 'q'},
	)
	require.NoError(t, s.Run(adapter))
	assert.Contains(t, adapter.Notifications(), "plots now directed to probe2")
	assert.Equal(t, "probe2", s.Plots().Current().Name())
	// The default window is materialized first, so the press really
	// opened a second window rather than the base one.
	assert.Equal(t, []string{"probe", "probe2"}, s.Plots().Names())
}

func TestRunSurvivesAnalysisFailures(t *testing.T) {
	s := newLoadedSession()
	adapter := viewer.NewScriptAdapter("flat.fits",
		probetypes.Event{X: 500, Y: 500, Key: 'x'}, // outside the array
		probetypes.Event{X: 3, Y: 3, Key: 'x'},
		probetypes.Event{Key: 'q'},
	)
	require.NoError(t, s.Run(adapter))

	notes := adapter.Notifications()
	failed, ok := false, false
	for _, n := range notes {
		if containsAll(n, "analysis function", "failed") {
			failed = true
		}
		if n == "3.00\t3.00\t10" {
			ok = true
		}
	}
	assert.True(t, failed, "failure must be reported to the viewer")
	assert.True(t, ok, "loop must keep dispatching after a failure")
}

func TestRunPicksUpFrameChanges(t *testing.T) {
	s := newLoadedSession()
	adapter := viewer.NewScriptAdapter("other.fits",
		probetypes.Event{X: 1, Y: 1, Key: 'x'},
		probetypes.Event{Key: 'q'},
	)
	require.NoError(t, s.Run(adapter))
	assert.Equal(t, "other.fits", s.FrameLabel())
}

func TestRunRejectsConcurrentStart(t *testing.T) {
	s := newLoadedSession()
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	assert.ErrorIs(t, s.Run(viewer.NewScriptAdapter("flat.fits")), ErrAlreadyRunning)
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
