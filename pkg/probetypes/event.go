package probetypes

import "fmt"

// Event is one cursor report from an attached viewer: an image
// coordinate and the key that was pressed there.
type Event struct {
	X   float64
	Y   float64
	Key rune
}

// String formats the event for debug logging.
func (e Event) String() string {
	return fmt.Sprintf("(%.2f, %.2f) %q", e.X, e.Y, e.Key)
}
