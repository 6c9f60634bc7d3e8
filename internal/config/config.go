// Package config assembles runtime settings for an examination
// session from defaults, an optional .env file, process environment,
// and viper-bound command-line flags, in that precedence order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"pixelprobe/internal/session"
)

// envPrefix marks the environment variables and .env keys this package
// reads.
const envPrefix = "PIXELPROBE_"

// Settings are the tunables an examination run starts from.
type Settings struct {
	LogLevel  string
	LogFile   string
	PlotName  string
	CutoutDir string
	ResultLog string

	// ResultLogLevel gates what the result log keeps, "info" or "error".
	ResultLogLevel string

	// Options maps "function.option" to an unparsed value, applied to
	// the session's parameter sets before the loop starts.
	Options map[string]string
}

// Defaults returns the zero configuration: info logging, everything
// else left to the session's own defaults.
func Defaults() *Settings {
	return &Settings{
		LogLevel: "info",
		Options:  make(map[string]string),
	}
}

// FromViper reads settings out of a configured viper instance, on top
// of the defaults. Flag and config-file values win over environment.
func FromViper(v *viper.Viper) *Settings {
	s := Defaults()
	s.applyEnv(os.Environ())

	if val := v.GetString("log-level"); val != "" {
		s.LogLevel = val
	}
	if val := v.GetString("log-file"); val != "" {
		s.LogFile = val
	}
	if val := v.GetString("plot-name"); val != "" {
		s.PlotName = val
	}
	if val := v.GetString("cutout-dir"); val != "" {
		s.CutoutDir = val
	}
	if val := v.GetString("result-log"); val != "" {
		s.ResultLog = val
	}
	if val := v.GetString("result-log-level"); val != "" {
		s.ResultLogLevel = val
	}
	for key, val := range v.GetStringMapString("options") {
		s.Options[key] = val
	}
	return s
}

// ReadConfigFile loads .pixelprobe.yaml into the viper instance,
// looking in the working directory first and then the home directory.
// A missing file is not an error; values already bound to flags keep
// their flag-level precedence.
func ReadConfigFile(v *viper.Viper) error {
	v.SetConfigName(".pixelprobe")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

// LoadDotEnv folds a .env file into the process environment without
// overriding variables that are already set. A missing file is not an
// error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read .env file %s: %w", path, err)
	}
	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("parse .env file %s: %w", path, err)
	}
	for key, value := range envMap {
		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}

// applyEnv folds PIXELPROBE_* variables into the settings.
func (s *Settings) applyEnv(environ []string) {
	for _, kv := range environ {
		key, value, found := strings.Cut(kv, "=")
		if !found || !strings.HasPrefix(key, envPrefix) {
			continue
		}
		switch strings.TrimPrefix(key, envPrefix) {
		case "LOG_LEVEL":
			s.LogLevel = value
		case "LOG_FILE":
			s.LogFile = value
		case "PLOT_NAME":
			s.PlotName = value
		case "CUTOUT_DIR":
			s.CutoutDir = value
		case "RESULT_LOG":
			s.ResultLog = value
		case "RESULT_LOG_LEVEL":
			s.ResultLogLevel = value
		}
	}
}

// Apply pushes the settings onto a session: plot target, cutout
// directory, result log, and parameter overrides. Option overrides are
// validated against the declared parameter sets and fail loudly so a
// typo in a config file does not silently examine with defaults.
func (s *Settings) Apply(sess *session.Session) error {
	if s.PlotName != "" {
		sess.SetPlotName(s.PlotName)
	}
	if s.CutoutDir != "" {
		sess.SetCutoutDir(s.CutoutDir)
	}
	if s.ResultLog != "" {
		if err := sess.LogResultsTo(s.ResultLog); err != nil {
			return err
		}
	}
	if s.ResultLogLevel != "" {
		if err := sess.SetResultLogLevel(s.ResultLogLevel); err != nil {
			return err
		}
	}
	for key, value := range s.Options {
		function, option, found := strings.Cut(key, ".")
		if !found {
			return fmt.Errorf("bad option key %q: want function.option", key)
		}
		if err := sess.SetOption(function, option, value); err != nil {
			return fmt.Errorf("apply option %s: %w", key, err)
		}
	}
	return nil
}
