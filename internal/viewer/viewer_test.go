package viewer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelprobe/pkg/probetypes"
)

func TestScriptAdapter(t *testing.T) {
	a := NewScriptAdapter("frame1",
		probetypes.Event{X: 1, Y: 2, Key: 'a'},
		probetypes.Event{X: 3, Y: 4, Key: 'q'},
	)

	ev, err := a.PollEvent()
	require.NoError(t, err)
	assert.Equal(t, 'a', ev.Key)

	ev, err = a.PollEvent()
	require.NoError(t, err)
	assert.Equal(t, 'q', ev.Key)

	_, err = a.PollEvent()
	assert.ErrorIs(t, err, ErrNoMoreEvents)

	a.Queue(probetypes.Event{Key: 'm'})
	ev, err = a.PollEvent()
	require.NoError(t, err)
	assert.Equal(t, 'm', ev.Key)

	assert.Equal(t, "frame1", a.CurrentFrame())
	a.SetFrame("frame2")
	assert.Equal(t, "frame2", a.CurrentFrame())

	a.Notify("hello")
	assert.Equal(t, []string{"hello"}, a.Notifications())
}

func TestReaderAdapter(t *testing.T) {
	in := strings.NewReader("# comment\n\n10.5 20 a\nnot an event\n3 4 q\n")
	var out strings.Builder
	a := NewReaderAdapter(in, &out, "chandra.fits")

	ev, err := a.PollEvent()
	require.NoError(t, err)
	assert.Equal(t, probetypes.Event{X: 10.5, Y: 20, Key: 'a'}, ev)

	ev, err = a.PollEvent()
	require.NoError(t, err)
	assert.Equal(t, 'q', ev.Key)
	assert.Contains(t, out.String(), "bad event")

	_, err = a.PollEvent()
	assert.ErrorIs(t, err, ErrNoMoreEvents)

	assert.Equal(t, "chandra.fits", a.CurrentFrame())
	a.Notify("done")
	assert.Contains(t, out.String(), "done\n")
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    probetypes.Event
		wantErr bool
	}{
		{name: "basic", line: "1 2 a", want: probetypes.Event{X: 1, Y: 2, Key: 'a'}},
		{name: "fractional", line: "10.25 -3.5 ?", want: probetypes.Event{X: 10.25, Y: -3.5, Key: '?'}},
		{name: "too few fields", line: "1 2", wantErr: true},
		{name: "bad x", line: "one 2 a", wantErr: true},
		{name: "bad y", line: "1 two a", wantErr: true},
		{name: "multi char key", line: "1 2 ab", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ParseEvent(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
		})
	}
}
