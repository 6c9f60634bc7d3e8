// Package version provides centralized version management for
// pixelprobe. It supports semantic versioning and build-time injection
// via -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Build information that can be set at compile time via -ldflags
var (
	// Version is the semantic version of the application
	Version = "0.3.0"

	// GitCommit is the git commit hash when the binary was built
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built
	BuildDate = "unknown"
)

// versionCodenames maps minor versions to telescope codenames.
var versionCodenames = map[string]string{
	"0.1.0": "Lippershey",
	"0.2.0": "Galileo",
	"0.3.0": "Herschel",
	"0.4.0": "Hale",
	"0.5.0": "Palomar",
	"0.6.0": "Keck",
	"0.7.0": "Hubble",
	"0.8.0": "Chandra",
	"0.9.0": "Spitzer",
	"1.0.0": "Webb",
}

// Info represents comprehensive version information.
type Info struct {
	Version   string          `json:"version"`
	Codename  string          `json:"codename"`
	GitCommit string          `json:"gitCommit"`
	BuildDate string          `json:"buildDate"`
	GoVersion string          `json:"goVersion"`
	Platform  string          `json:"platform"`
	SemVer    *semver.Version `json:"-"`
}

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetCodename returns the codename for the current version.
func GetCodename() string {
	return GetCodenameForVersion(Version)
}

// GetCodenameForVersion returns the codename for a specific version.
// Patch versions fall back to their major.minor.0 base.
func GetCodenameForVersion(version string) string {
	if codename, exists := versionCodenames[version]; exists {
		return codename
	}
	sv, err := semver.NewVersion(version)
	if err != nil {
		return ""
	}
	base := fmt.Sprintf("%d.%d.0", sv.Major(), sv.Minor())
	if codename, exists := versionCodenames[base]; exists {
		return codename
	}
	return ""
}

// GetInfo returns comprehensive version information.
func GetInfo() (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return &Info{
		Version:   Version,
		Codename:  GetCodename(),
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		SemVer:    sv,
	}, nil
}

// GetFormattedVersion returns a nicely formatted version string.
func GetFormattedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("pixelprobe v%s (invalid version)", Version)
	}

	var parts []string
	if info.Codename != "" {
		parts = append(parts, fmt.Sprintf("pixelprobe v%s '%s'", info.Version, info.Codename))
	} else {
		parts = append(parts, fmt.Sprintf("pixelprobe v%s", info.Version))
	}
	if info.GitCommit != "unknown" && info.GitCommit != "" {
		short := info.GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		parts = append(parts, fmt.Sprintf("commit %s", short))
	}
	if info.BuildDate != "unknown" && info.BuildDate != "" {
		parts = append(parts, fmt.Sprintf("built %s", info.BuildDate))
	}
	return strings.Join(parts, ", ")
}

// GetDetailedVersion returns detailed version information for debugging.
func GetDetailedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("pixelprobe v%s (error: %v)", Version, err)
	}

	lines := []string{GetFormattedVersion()}
	lines = append(lines, fmt.Sprintf("Git Commit: %s", info.GitCommit))
	lines = append(lines, fmt.Sprintf("Build Date: %s", info.BuildDate))
	lines = append(lines, fmt.Sprintf("Go Version: %s", info.GoVersion))
	lines = append(lines, fmt.Sprintf("Platform: %s", info.Platform))
	return strings.Join(lines, "\n")
}
