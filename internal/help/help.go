// Package help formats the current key bindings for display, both as
// plain text pushed through a viewer and as rendered markdown for the
// terminal.
package help

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"pixelprobe/internal/registry"
)

// Control keys shown alongside the registered analysis keys.
var controlKeys = []struct {
	key  rune
	desc string
}{
	{'2', "Make the next plot in a new window"},
	{'q', "Quit the examination loop"},
	{'?', "Print the help message"},
}

// Text returns a plain key listing, one binding per line, sorted by
// key. This is what the loop pushes to the viewer on '?'.
func Text(entries []registry.Entry) string {
	sorted := append([]registry.Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	var b strings.Builder
	b.WriteString("Available analysis functions:\n")
	for _, e := range sorted {
		fmt.Fprintf(&b, "%c\t%s\n", e.Key, e.Description)
	}
	b.WriteString("\nLoop control:\n")
	for _, c := range controlKeys {
		fmt.Fprintf(&b, "%c\t%s\n", c.key, c.desc)
	}
	return b.String()
}

// Markdown returns the key listing as a markdown table.
func Markdown(entries []registry.Entry) string {
	sorted := append([]registry.Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	var b strings.Builder
	b.WriteString("# Examination Keys\n\n")
	b.WriteString("| Key | Function | Description |\n")
	b.WriteString("|-----|----------|-------------|\n")
	for _, e := range sorted {
		name := ""
		if e.Params != nil {
			name = e.Params.Function()
		}
		fmt.Fprintf(&b, "| `%c` | %s | %s |\n", e.Key, name, e.Description)
	}
	b.WriteString("\n## Loop Control\n\n")
	for _, c := range controlKeys {
		fmt.Fprintf(&b, "- `%c` %s\n", c.key, c.desc)
	}
	return b.String()
}

// Render turns the markdown listing into styled terminal output.
// Rendering failures fall back to the raw markdown.
func Render(entries []registry.Entry) string {
	md := Markdown(entries)
	out, err := glamour.Render(md, "auto")
	if err != nil {
		return md
	}
	return out
}
