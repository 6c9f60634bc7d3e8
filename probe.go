// Package pixelprobe is an interactive examination toolkit for
// astronomical image arrays. A session binds single-character keys to
// analysis functions (photometry, profile fits, statistics, plots),
// reads cursor events from an attached viewer, and dispatches each
// keypress against the loaded frame.
//
// Typical use:
//
//	sess := pixelprobe.NewSession()
//	defer sess.Close()
//	if err := sess.LoadFITS("m51.fits"); err != nil { ... }
//	err := sess.Run(pixelprobe.NewReaderAdapter(os.Stdin, os.Stdout, "m51.fits"))
package pixelprobe

import (
	"io"

	"pixelprobe/internal/grid"
	"pixelprobe/internal/params"
	"pixelprobe/internal/registry"
	"pixelprobe/internal/session"
	"pixelprobe/internal/viewer"
	"pixelprobe/pkg/probetypes"
)

// Session owns a frame, the key bindings, and the examination loop.
type Session = session.Session

// Event is one cursor report from a viewer.
type Event = probetypes.Event

// Grid is a 2-D float64 image array.
type Grid = grid.Grid

// Window is a slice of a grid with its parent-frame origin.
type Window = grid.Window

// ParamSet is the tunable parameter collection of an analysis function.
type ParamSet = params.Set

// AnalysisFunc is the signature user examination functions implement.
type AnalysisFunc = registry.AnalysisFunc

// Adapter is the viewer surface the loop reads events from.
type Adapter = viewer.Adapter

// Loop control errors surfaced to embedders.
var (
	ErrNoDataLoaded = probetypes.ErrNoDataLoaded
	ErrNoMoreEvents = viewer.ErrNoMoreEvents
)

// NewSession creates a session with the built-in keys installed.
func NewSession() *Session { return session.New() }

// NewGrid allocates an empty image array.
func NewGrid(dx, dy int) *Grid { return grid.New(dx, dy) }

// LoadFITS reads the primary HDU of a FITS file into a grid.
func LoadFITS(path string) (*Grid, error) { return grid.LoadFITS(path) }

// NewScriptAdapter replays a fixed event list, for batch examination.
func NewScriptAdapter(frame string, events ...Event) *viewer.ScriptAdapter {
	return viewer.NewScriptAdapter(frame, events...)
}

// NewReaderAdapter reads "x y key" event lines from in and writes
// results to out.
func NewReaderAdapter(in io.Reader, out io.Writer, frame string) *viewer.ReaderAdapter {
	return viewer.NewReaderAdapter(in, out, frame)
}
