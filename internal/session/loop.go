package session

import (
	"errors"

	"pixelprobe/internal/help"
	"pixelprobe/internal/viewer"
	"pixelprobe/pkg/probetypes"
)

// State is the examination loop's lifecycle stage, visible for status
// displays and tests.
type State string

const (
	StateIdle        State = "idle"
	StateWaiting     State = "waiting_for_event"
	StateDispatching State = "dispatching"
	StateTerminated  State = "terminated"
)

// ErrAlreadyRunning is returned when Run is called on a session whose
// loop is still active.
var ErrAlreadyRunning = errors.New("examination loop already running")

// State returns the loop's current lifecycle stage.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Run drives the examination loop against a viewer: poll an event,
// dispatch it, push the result back, until the quit key or the event
// source ends. Analysis failures are reported to the viewer and the
// loop keeps going; only a missing frame or a second concurrent Run is
// an error. The loop re-reads the viewer's current frame before every
// dispatch so flipping frames in the display mid-loop is honored.
func (s *Session) Run(adapter viewer.Adapter) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	if s.frame == nil {
		s.mu.Unlock()
		return probetypes.ErrNoDataLoaded
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.state = StateTerminated
		s.mu.Unlock()
	}()

	s.log.Info("Examination loop started", "session", s.id, "frame", s.FrameLabel())
	adapter.Notify("Press 'q' to quit, '?' for help")
	adapter.Notify(help.Text(s.reg.Entries()))

	for {
		s.setState(StateWaiting)
		ev, err := adapter.PollEvent()
		if err != nil {
			if errors.Is(err, viewer.ErrNoMoreEvents) {
				s.log.Info("Event source exhausted, leaving loop", "session", s.id)
				return nil
			}
			return err
		}

		s.syncFrame(adapter)

		switch ev.Key {
		case KeyQuit:
			s.log.Info("Quit key pressed, leaving loop", "session", s.id)
			return nil
		case KeyHelp:
			adapter.Notify(help.Text(s.reg.Entries()))
			continue
		case KeyNewWindow:
			// Make sure the default window exists so the new one is
			// always a distinct target.
			s.plots.Current()
			w := s.plots.NewWindow()
			s.log.Info("New plot window", "window", w.Name())
			adapter.Notify("plots now directed to " + w.Name())
			continue
		}

		s.setState(StateDispatching)
		text, err := s.Dispatch(ev)
		if err != nil {
			s.log.Warn("Dispatch failed", "event", ev.String(), "error", err)
			adapter.Notify(err.Error())
			continue
		}
		adapter.Notify(text)
	}
}

// syncFrame picks up a frame flip made in the display since the last
// event. Only the label is re-read; the pixel data is whatever the
// embedding application loaded for that frame.
func (s *Session) syncFrame(adapter viewer.Adapter) {
	current := adapter.CurrentFrame()
	if current == "" {
		return
	}
	s.mu.Lock()
	changed := current != s.frameLabel
	if changed {
		s.log.Info("Viewer frame changed", "from", s.frameLabel, "to", current)
		s.frameLabel = current
	}
	s.mu.Unlock()
	if changed {
		s.toolkit.SetFrameLabel(current)
	}
}
