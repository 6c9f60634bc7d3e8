package session

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"pixelprobe/internal/grid"
	"pixelprobe/internal/logger"
	"pixelprobe/internal/params"
	"pixelprobe/internal/registry"
	"pixelprobe/pkg/probetypes"
)

// Dispatch runs the analysis function bound to the event's key against
// the current frame. The data window handed to the function is sliced
// per the function's declared region option, or the whole frame when it
// declares none. Failures inside the function, including panics, come
// back as *probetypes.AnalysisError and never take the loop down.
func (s *Session) Dispatch(ev probetypes.Event) (string, error) {
	s.mu.RLock()
	frame := s.frame
	s.mu.RUnlock()
	if frame == nil {
		return "", probetypes.ErrNoDataLoaded
	}

	entry, err := s.reg.Lookup(ev.Key)
	if err != nil {
		return "", err
	}

	name := entry.Description
	if entry.Params != nil {
		name = entry.Params.Function()
	}

	win := sliceWindow(frame, ev, entry.Params)
	logger.KeyDispatch(ev.Key, name, ev.X, ev.Y)

	text, err := s.invoke(entry.Func, ev, win, entry.Params, name)
	if err != nil {
		s.sink.Record(log.ErrorLevel, name, err.Error())
		return "", err
	}
	s.sink.Record(log.InfoLevel, name, text)
	return text, nil
}

// invoke calls the analysis function with panic recovery. A parameter
// accessor panic or an index slip inside user code is an analysis
// failure, not a crash.
func (s *Session) invoke(fn registry.AnalysisFunc, ev probetypes.Event, win *grid.Window, pset *params.Set, name string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &probetypes.AnalysisError{Function: name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	text, callErr := fn(ev.X, ev.Y, win, pset)
	if callErr != nil {
		return "", &probetypes.AnalysisError{Function: name, Err: callErr}
	}
	return text, nil
}

// sliceWindow cuts the data window for a dispatch. A declared region
// option gives a square window of that side centered on the cursor,
// clipped to the frame; otherwise the function sees the full frame.
func sliceWindow(frame *grid.Grid, ev probetypes.Event, pset *params.Set) *grid.Window {
	if pset == nil || pset.RegionOption() == "" {
		return frame.FullWindow()
	}
	side := regionSide(pset)
	return frame.WindowAround(ev.X, ev.Y, side)
}

// regionSide reads the region option as a pixel count regardless of its
// declared kind.
func regionSide(pset *params.Set) int {
	v, err := pset.Get(pset.RegionOption())
	if err != nil {
		return 1
	}
	f, ok := v.AsFloat()
	if !ok {
		return 1
	}
	side := int(math.Round(f))
	if side < 1 {
		side = 1
	}
	return side
}
