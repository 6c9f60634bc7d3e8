// Package session ties the examination machinery together: one session
// owns the loaded frame, the key registry, the plot windows, and the
// examination loop that dispatches viewer events to analysis functions.
package session

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"pixelprobe/internal/analysis"
	"pixelprobe/internal/grid"
	"pixelprobe/internal/logger"
	"pixelprobe/internal/params"
	"pixelprobe/internal/plot"
	"pixelprobe/internal/registry"
	"pixelprobe/pkg/probetypes"
)

// Keys reserved for loop control: quit, help, and new plot window.
const (
	KeyQuit      = 'q'
	KeyHelp      = '?'
	KeyNewWindow = '2'
)

// Session is one examination context: frame data, key bindings,
// parameter sets, plot windows, and the result log. Sessions are not
// safe for concurrent Run calls; everything else may be called between
// dispatches.
type Session struct {
	id      string
	log     *log.Logger
	reg     *registry.Registry
	toolkit *analysis.Toolkit
	plots   *plot.Manager
	sink    *Sink

	mu         sync.RWMutex
	frame      *grid.Grid
	frameLabel string
	state      State
	running    bool
}

// New creates a session with the built-in analysis keys installed and
// no data loaded.
func New() *Session {
	plots := plot.NewManager()
	toolkit := analysis.NewToolkit(plots)
	reg := registry.New(KeyQuit, KeyHelp, KeyNewWindow)
	if err := toolkit.RegisterBuiltins(reg); err != nil {
		// The builtin table is static; a failure here is a programming
		// error, not a runtime condition.
		panic(err)
	}
	return &Session{
		id:      uuid.New().String(),
		log:     logger.NewStyledLogger("Session"),
		reg:     reg,
		toolkit: toolkit,
		plots:   plots,
		sink:    &Sink{},
		state:   StateIdle,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// SetData loads an in-memory array as the current frame. label names
// the frame in plot titles and logs.
func (s *Session) SetData(g *grid.Grid, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = g
	s.frameLabel = label
	s.toolkit.SetFrameLabel(label)
	s.log.Info("Frame data set", "frame", label, "dx", g.Dx(), "dy", g.Dy())
}

// LoadFITS reads the primary HDU of a FITS file as the current frame.
func (s *Session) LoadFITS(path string) error {
	g, err := grid.LoadFITS(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	s.SetData(g, filepath.Base(path))
	return nil
}

// Data returns the current frame, nil when nothing is loaded.
func (s *Session) Data() *grid.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

// FrameLabel returns the name of the current frame.
func (s *Session) FrameLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frameLabel
}

// RegisterKey binds a user analysis function to a key. Reserved and
// already-bound keys are rejected.
func (s *Session) RegisterKey(key rune, fn registry.AnalysisFunc, pset *params.Set, description string) error {
	err := s.reg.Register(registry.Entry{Key: key, Func: fn, Params: pset, Description: description})
	if err != nil {
		s.log.Warn("Key registration rejected", "key", string(key), "error", err)
		return err
	}
	s.log.Info("Key registered", "key", string(key), "function", description)
	return nil
}

// UnregisterKey removes a key binding, built-in or not.
func (s *Session) UnregisterKey(key rune) error {
	return s.reg.Unregister(key)
}

// ResetAll restores the built-in bindings and their default parameters
// and drops every user registration.
func (s *Session) ResetAll() {
	s.reg.ResetAll()
	s.log.Info("Registry reset to built-in defaults")
}

// Keys returns the live bindings in registration order.
func (s *Session) Keys() []registry.Entry {
	return s.reg.Entries()
}

// ParamSet finds the parameter set for the named analysis function.
func (s *Session) ParamSet(function string) (*params.Set, error) {
	for _, entry := range s.reg.Entries() {
		if entry.Params != nil && entry.Params.Function() == function {
			return entry.Params, nil
		}
	}
	return nil, fmt.Errorf("no analysis function named %q", function)
}

// SetOption edits one option of a named function's parameter set from
// its string form.
func (s *Session) SetOption(function, option, raw string) error {
	pset, err := s.ParamSet(function)
	if err != nil {
		return err
	}
	if err := pset.SetString(option, raw); err != nil {
		return err
	}
	s.log.Debug("Option changed", "function", function, "option", option, "value", raw)
	return nil
}

// GetOption reads one option of a named function's parameter set.
func (s *Session) GetOption(function, option string) (probetypes.ParamValue, error) {
	pset, err := s.ParamSet(function)
	if err != nil {
		return probetypes.ParamValue{}, err
	}
	return pset.Get(option)
}

// ExportParams renders a function's parameter set as editable YAML.
func (s *Session) ExportParams(function string) ([]byte, error) {
	pset, err := s.ParamSet(function)
	if err != nil {
		return nil, err
	}
	return pset.MarshalYAML()
}

// ImportParams bulk-edits a function's parameter set from YAML
// produced by ExportParams (possibly hand-edited).
func (s *Session) ImportParams(function string, data []byte) error {
	pset, err := s.ParamSet(function)
	if err != nil {
		return err
	}
	return pset.ApplyYAML(data)
}

// Plots exposes the session's plot window manager.
func (s *Session) Plots() *plot.Manager { return s.plots }

// SetPlotName changes the file the save-figure key writes.
func (s *Session) SetPlotName(name string) { s.toolkit.SetPlotName(name) }

// SetCutoutDir changes where the cutout key writes FITS files.
func (s *Session) SetCutoutDir(dir string) { s.toolkit.SetCutoutDir(dir) }

// LogResultsTo appends examination results to the given file, the
// classic examination transcript. An empty path disables the log.
func (s *Session) LogResultsTo(path string) error {
	if err := s.sink.SetPath(path); err != nil {
		return err
	}
	if path != "" {
		s.log.Info("Result logging enabled", "file", path)
	}
	return nil
}

// SetResultLogLevel gates the result log: "error" keeps only failed
// dispatches, "info" (the default) keeps everything.
func (s *Session) SetResultLogLevel(level string) error {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("result log level: %w", err)
	}
	s.sink.SetMinLevel(parsed)
	return nil
}

// Close releases the result log and plot windows.
func (s *Session) Close() error {
	s.plots.CloseAll()
	return s.sink.Close()
}
