// Package plot manages the session's plot windows. Each window is a
// raster surface rendered with fogleman/gg; analysis functions draw
// onto the current window and the user can persist it as a PNG.
package plot

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"

	"pixelprobe/internal/logger"
)

const (
	surfaceWidth  = 640
	surfaceHeight = 480
	baseName      = "probe"
)

// Window is one plot surface.
type Window struct {
	name   string
	dc     *gg.Context
	closed bool
}

// Name returns the session-unique window name.
func (w *Window) Name() string { return w.name }

// Closed reports whether the window has been released.
func (w *Window) Closed() bool { return w.closed }

// Save writes the surface as a PNG.
func (w *Window) Save(path string) error {
	if w.closed {
		return fmt.Errorf("plot window %s is closed", w.name)
	}
	if err := w.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save plot window %s: %w", w.name, err)
	}
	return nil
}

// Manager tracks the zero or more open plot windows and the one
// subsequent analysis output is directed to.
type Manager struct {
	windows []*Window
	current *Window
	counter int
	log     *log.Logger
}

// NewManager creates a manager with no windows. The first window is
// created lazily on Current.
func NewManager() *Manager {
	return &Manager{log: logger.NewStyledLogger("Plot")}
}

// Current returns the window analysis output is directed to, creating
// the first one if none exists.
func (m *Manager) Current() *Window {
	if m.current == nil || m.current.closed {
		return m.NewWindow()
	}
	return m.current
}

// NewWindow allocates a new surface, names it with a session-unique
// incrementing suffix, and makes it the current target.
func (m *Manager) NewWindow() *Window {
	m.counter++
	name := baseName
	if m.counter > 1 {
		name = fmt.Sprintf("%s%d", baseName, m.counter)
	}

	w := &Window{name: name, dc: newSurface()}
	m.windows = append(m.windows, w)
	m.current = w
	m.log.Info("Plots now directed towards new window", "window", name)
	return w
}

// Select makes a named open window the current target.
func (m *Manager) Select(name string) error {
	for _, w := range m.windows {
		if w.name == name && !w.closed {
			m.current = w
			return nil
		}
	}
	return fmt.Errorf("no open plot window named %q", name)
}

// Close releases one window by name. Closing an unknown or already
// closed window is a no-op.
func (m *Manager) Close(name string) {
	for _, w := range m.windows {
		if w.name == name {
			m.release(w)
			return
		}
	}
}

// CloseAll releases every window.
func (m *Manager) CloseAll() {
	for _, w := range m.windows {
		m.release(w)
	}
}

// Count returns the number of open windows.
func (m *Manager) Count() int {
	n := 0
	for _, w := range m.windows {
		if !w.closed {
			n++
		}
	}
	return n
}

// Names returns the open window names in creation order.
func (m *Manager) Names() []string {
	var out []string
	for _, w := range m.windows {
		if !w.closed {
			out = append(out, w.name)
		}
	}
	return out
}

func (m *Manager) release(w *Window) {
	if w.closed {
		return
	}
	w.closed = true
	w.dc = nil
	if m.current == w {
		m.current = nil
	}
	m.log.Debug("Closed plot window", "window", w.name)
}

func newSurface() *gg.Context {
	dc := gg.NewContext(surfaceWidth, surfaceHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	return dc
}
