package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterPlainOutput(t *testing.T) {
	var buf strings.Builder
	p := NewPrinter(WithWriter(&buf), WithPlain())

	p.Println("hello")
	p.Result("x\ty\tflux")
	p.Error("analysis function aper_phot failed")
	p.Info("loop started")
	p.Printf("%d windows\n", 2)

	out := buf.String()
	assert.Equal(t, "hello\nx\ty\tflux\nanalysis function aper_phot failed\nloop started\n2 windows\n", out)
}

func TestPrinterKeepsTextUnderStyling(t *testing.T) {
	var buf strings.Builder
	p := NewPrinter(WithWriter(&buf))
	p.Result("362.50")
	assert.Contains(t, buf.String(), "362.50")
}
