package session

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Sink appends examination results to a log file, mirroring what the
// viewer shows: the bound function's description, then the result text,
// then a blank line. Logging is off until a path is set. Entries below
// the minimum level are dropped; the zero value gates at info, so
// successful results pass and raising the gate to error keeps only
// failures.
type Sink struct {
	mu   sync.Mutex
	file *os.File
	path string
	min  log.Level
}

// SetPath opens (appending) the given file and routes future results to
// it. An empty path turns logging off. Any previous file is closed.
func (s *Sink) SetPath(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
		s.path = ""
	}
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open result log: %w", err)
	}
	s.file = f
	s.path = path
	return nil
}

// Path returns the active log file path, empty when logging is off.
func (s *Sink) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// SetMinLevel raises or lowers the gate for future Record calls.
func (s *Sink) SetMinLevel(level log.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.min = level
}

// Record writes one result block at the given level. A nil or closed
// sink is a no-op so callers never need to guard.
func (s *Sink) Record(level log.Level, description, text string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil || level < s.min {
		return
	}
	fmt.Fprintf(s.file, "%s\n%s\n\n", description, text)
}

// Close stops logging and releases the file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.path = ""
	return err
}
