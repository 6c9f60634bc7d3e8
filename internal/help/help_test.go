package help

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pixelprobe/internal/registry"
)

func testEntries() []registry.Entry {
	return []registry.Entry{
		{Key: 'm', Description: "Square region stats"},
		{Key: 'a', Description: "Aperture sum"},
	}
}

func TestTextSortsByKey(t *testing.T) {
	out := Text(testEntries())

	aIdx := strings.Index(out, "a\tAperture sum")
	mIdx := strings.Index(out, "m\tSquare region stats")
	assert.Greater(t, aIdx, 0)
	assert.Greater(t, mIdx, aIdx)

	for _, control := range []string{"q\tQuit", "?\tPrint the help", "2\tMake the next plot"} {
		assert.Contains(t, out, control)
	}
}

func TestMarkdown(t *testing.T) {
	out := Markdown(testEntries())
	assert.Contains(t, out, "# Examination Keys")
	assert.Contains(t, out, "| `a` |")
	assert.Contains(t, out, "## Loop Control")
}

func TestRenderFallsBackToMarkdown(t *testing.T) {
	// Whatever the renderer does, the key listing must survive.
	out := Render(testEntries())
	assert.Contains(t, out, "Aperture sum")
}
