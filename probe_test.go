package pixelprobe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEndExamination(t *testing.T) {
	sess := NewSession()
	defer func() { require.NoError(t, sess.Close()) }()

	img := NewGrid(64, 64)
	img.Fill(10)
	sess.SetData(img, "flat.fits")

	in := strings.NewReader("32 32 x\n32 32 m\n0 0 q\n")
	var out strings.Builder
	require.NoError(t, sess.Run(NewReaderAdapter(in, &out, "flat.fits")))

	assert.Contains(t, out.String(), "32.00\t32.00\t10")
	assert.Contains(t, out.String(), "median [30:35,30:35]: 10")
}

func TestCustomAnalysisFunc(t *testing.T) {
	sess := NewSession()
	defer func() { _ = sess.Close() }()

	img := NewGrid(16, 16)
	img.Fill(1)
	sess.SetData(img, "ones.fits")

	err := sess.RegisterKey('z', func(x, y float64, win *Window, _ *ParamSet) (string, error) {
		return "custom ran", nil
	}, nil, "custom probe")
	require.NoError(t, err)

	adapter := NewScriptAdapter("ones.fits", Event{X: 8, Y: 8, Key: 'z'}, Event{Key: 'q'})
	require.NoError(t, sess.Run(adapter))
	assert.Contains(t, adapter.Notifications(), "custom ran")
}
