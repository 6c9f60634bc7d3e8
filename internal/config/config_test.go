package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelprobe/internal/session"
	"pixelprobe/pkg/probetypes"
)

func TestFromViper(t *testing.T) {
	v := viper.New()
	v.Set("log-level", "debug")
	v.Set("plot-name", "out.png")
	v.Set("options", map[string]string{"aper_phot.radius": "9"})

	s := FromViper(v)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "out.png", s.PlotName)
	assert.Equal(t, "9", s.Options["aper_phot.radius"])
	assert.Empty(t, s.LogFile)
}

func TestReadConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	contents := "plot-name: night1\noptions:\n  aper_phot.radius: \"8\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pixelprobe.yaml"), []byte(contents), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	v := viper.New()
	require.NoError(t, ReadConfigFile(v))

	s := FromViper(v)
	assert.Equal(t, "night1", s.PlotName)
	assert.Equal(t, "8", s.Options["aper_phot.radius"])
}

func TestReadConfigFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	v := viper.New()
	assert.NoError(t, ReadConfigFile(v))
	assert.Empty(t, FromViper(v).PlotName)
}

func TestApplyEnv(t *testing.T) {
	s := Defaults()
	s.applyEnv([]string{
		"PIXELPROBE_LOG_LEVEL=warn",
		"PIXELPROBE_RESULT_LOG=probe.log",
		"UNRELATED=x",
		"malformed",
	})
	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, "probe.log", s.ResultLog)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PIXELPROBE_TEST_MARKER=from-dotenv\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("PIXELPROBE_TEST_MARKER") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv("PIXELPROBE_TEST_MARKER"))

	// Existing variables are not overridden.
	require.NoError(t, os.Setenv("PIXELPROBE_TEST_MARKER", "preset"))
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "preset", os.Getenv("PIXELPROBE_TEST_MARKER"))

	// Missing files are fine.
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "absent.env")))
}

func TestApply(t *testing.T) {
	sess := session.New()
	s := Defaults()
	s.ResultLog = filepath.Join(t.TempDir(), "probe.log")
	s.Options["aper_phot.radius"] = "9"

	require.NoError(t, s.Apply(sess))

	v, err := sess.GetOption("aper_phot", "radius")
	require.NoError(t, err)
	assert.Equal(t, probetypes.IntValue(9), v)
	require.NoError(t, sess.Close())
}

func TestApplyRejectsBadOptions(t *testing.T) {
	sess := session.New()

	s := Defaults()
	s.Options["noseparator"] = "1"
	assert.Error(t, s.Apply(sess))

	s = Defaults()
	s.Options["aper_phot.no_such"] = "1"
	assert.Error(t, s.Apply(sess))
}
