// Package output handles user-facing text: examination results, errors,
// and informational notes, with optional lipgloss styling. Styling is
// disabled automatically when the target is not a terminal and always
// in plain mode, so piped output stays machine-readable.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Semantic classifies a piece of output for styling.
type Semantic int

const (
	SemanticPlain Semantic = iota
	SemanticResult
	SemanticError
	SemanticInfo
)

// Printer writes semantically classified text to a single destination.
// It is safe for concurrent use.
type Printer struct {
	mu     sync.Mutex
	writer io.Writer
	plain  bool
	styles map[Semantic]lipgloss.Style
}

// Option configures a Printer.
type Option func(*Printer)

// WithWriter directs output somewhere other than os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(p *Printer) { p.writer = w }
}

// WithPlain disables all styling regardless of the destination.
func WithPlain() Option {
	return func(p *Printer) { p.plain = true }
}

// NewPrinter creates a printer writing to os.Stdout unless redirected.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		styles: map[Semantic]lipgloss.Style{
			SemanticResult: lipgloss.NewStyle().Foreground(lipgloss.Color("36")),
			SemanticError:  lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
			SemanticInfo:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
	for _, opt := range options {
		opt(p)
	}
	if f, ok := p.writer.(*os.File); ok {
		if fi, err := f.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
			p.plain = true
		}
	}
	return p
}

// Println writes unstyled text with a trailing newline.
func (p *Printer) Println(text string) {
	p.emit(SemanticPlain, text)
}

// Printf writes unstyled formatted text.
func (p *Printer) Printf(format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.writer, format, args...)
}

// Result writes an examination result block.
func (p *Printer) Result(text string) {
	p.emit(SemanticResult, text)
}

// Error writes a failure message.
func (p *Printer) Error(text string) {
	p.emit(SemanticError, text)
}

// Info writes an informational note.
func (p *Printer) Info(text string) {
	p.emit(SemanticInfo, text)
}

func (p *Printer) emit(sem Semantic, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.plain {
		if style, ok := p.styles[sem]; ok {
			text = style.Render(text)
		}
	}
	fmt.Fprintln(p.writer, text)
}
