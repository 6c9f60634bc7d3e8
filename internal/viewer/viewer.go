// Package viewer abstracts the display the examination loop reads
// cursor events from. Adapters exist for scripted event lists (tests,
// batch analysis) and for line-oriented readers such as a terminal or
// a pipe fed by an external display tool.
package viewer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"pixelprobe/pkg/probetypes"
)

// ErrNoMoreEvents signals that the event source is exhausted. The
// examination loop treats it like a quit key.
var ErrNoMoreEvents = errors.New("no more viewer events")

// Adapter is the surface the examination loop needs from a display:
// blocking keypress polling, the identity of the displayed frame, and a
// way to push result text back at the user.
type Adapter interface {
	// PollEvent blocks until the next keypress over the image and
	// returns its cursor position and key. It returns ErrNoMoreEvents
	// when the source has no further input.
	PollEvent() (probetypes.Event, error)

	// CurrentFrame names the frame the display is showing. The loop
	// re-reads it before every dispatch so frame flips between
	// keypresses are honored.
	CurrentFrame() string

	// Notify shows result text to the user.
	Notify(text string)
}

// ScriptAdapter replays a fixed list of events. Frame changes can be
// staged with SetFrame between event batches; notifications are kept
// for inspection.
type ScriptAdapter struct {
	mu     sync.Mutex
	events []probetypes.Event
	frame  string
	notes  []string
}

// NewScriptAdapter builds an adapter that replays the given events over
// the named frame.
func NewScriptAdapter(frame string, events ...probetypes.Event) *ScriptAdapter {
	return &ScriptAdapter{frame: frame, events: append([]probetypes.Event(nil), events...)}
}

// Queue appends more events to the script.
func (a *ScriptAdapter) Queue(events ...probetypes.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, events...)
}

// PollEvent pops the next scripted event.
func (a *ScriptAdapter) PollEvent() (probetypes.Event, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.events) == 0 {
		return probetypes.Event{}, ErrNoMoreEvents
	}
	ev := a.events[0]
	a.events = a.events[1:]
	return ev, nil
}

// CurrentFrame returns the staged frame name.
func (a *ScriptAdapter) CurrentFrame() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frame
}

// SetFrame changes the frame reported to the loop, simulating the user
// flipping frames in the display between keypresses.
func (a *ScriptAdapter) SetFrame(frame string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.frame = frame
}

// Notify records the text for later inspection.
func (a *ScriptAdapter) Notify(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notes = append(a.notes, text)
}

// Notifications returns a copy of everything Notify received.
func (a *ScriptAdapter) Notifications() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.notes...)
}

// ReaderAdapter reads events as "x y key" lines from an io.Reader and
// writes notifications to an io.Writer. Blank lines and lines starting
// with '#' are skipped.
type ReaderAdapter struct {
	scanner *bufio.Scanner
	out     io.Writer
	frame   string
}

// NewReaderAdapter wraps a line-oriented event source. frame names the
// image the events refer to.
func NewReaderAdapter(in io.Reader, out io.Writer, frame string) *ReaderAdapter {
	return &ReaderAdapter{scanner: bufio.NewScanner(in), out: out, frame: frame}
}

// PollEvent reads lines until one parses as an event or input ends.
func (a *ReaderAdapter) PollEvent() (probetypes.Event, error) {
	for a.scanner.Scan() {
		line := strings.TrimSpace(a.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := ParseEvent(line)
		if err != nil {
			fmt.Fprintf(a.out, "bad event %q: %v\n", line, err)
			continue
		}
		return ev, nil
	}
	if err := a.scanner.Err(); err != nil {
		return probetypes.Event{}, err
	}
	return probetypes.Event{}, ErrNoMoreEvents
}

// CurrentFrame returns the frame name given at construction.
func (a *ReaderAdapter) CurrentFrame() string { return a.frame }

// Notify writes the text followed by a newline.
func (a *ReaderAdapter) Notify(text string) {
	fmt.Fprintln(a.out, text)
}

// ParseEvent parses an "x y key" line into an event.
func ParseEvent(line string) (probetypes.Event, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return probetypes.Event{}, fmt.Errorf("want \"x y key\", got %d fields", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return probetypes.Event{}, fmt.Errorf("bad x coordinate: %w", err)
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return probetypes.Event{}, fmt.Errorf("bad y coordinate: %w", err)
	}
	key, size := utf8.DecodeRuneInString(fields[2])
	if size != len(fields[2]) || key == utf8.RuneError {
		return probetypes.Event{}, fmt.Errorf("key must be a single character, got %q", fields[2])
	}
	return probetypes.Event{X: x, Y: y, Key: key}, nil
}
