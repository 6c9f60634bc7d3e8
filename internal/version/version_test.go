package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCodenameForVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{name: "exact match", version: "0.3.0", want: "Herschel"},
		{name: "patch falls back to base", version: "0.3.2", want: "Herschel"},
		{name: "prerelease falls back to base", version: "0.7.0-rc.1", want: "Hubble"},
		{name: "unmapped version", version: "9.9.0", want: ""},
		{name: "unparseable version", version: "not-a-version", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCodenameForVersion(tt.version))
		})
	}
}

func TestGetInfo(t *testing.T) {
	info, err := GetInfo()
	require.NoError(t, err)
	assert.Equal(t, Version, info.Version)
	assert.NotNil(t, info.SemVer)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

func TestGetFormattedVersion(t *testing.T) {
	out := GetFormattedVersion()
	assert.Contains(t, out, "pixelprobe v"+Version)
	assert.Contains(t, out, GetCodename())
}
