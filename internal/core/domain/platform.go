package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// DefaultChannel is used when no environment source declares channels.
const DefaultChannel = "defaults"

// DefaultPlatforms are locked when no environment source declares platforms.
// The current platform is appended when it is not already listed.
var DefaultPlatforms = []string{"linux-64", "osx-64", "win-64"}

var knownPlatforms = map[string]struct{}{
	"linux-32":      {},
	"linux-64":      {},
	"linux-aarch64": {},
	"linux-armv7l":  {},
	"linux-ppc64le": {},
	"linux-s390x":   {},
	"osx-64":        {},
	"osx-arm64":     {},
	"win-32":        {},
	"win-64":        {},
	"win-arm64":     {},
	"noarch":        {},
}

// PlatformFor maps a Go GOOS/GOARCH pair to a conda platform identifier.
func PlatformFor(goos, goarch string) (string, error) {
	var osPart string
	switch goos {
	case "linux":
		osPart = "linux"
	case "darwin":
		osPart = "osx"
	case "windows":
		osPart = "win"
	default:
		return "", zerr.With(zerr.With(zerr.Wrap(ErrUnknownPlatform, "unsupported host"), "goos", goos), "goarch", goarch)
	}

	var archPart string
	switch goarch {
	case "amd64":
		archPart = "64"
	case "386":
		archPart = "32"
	case "arm64":
		archPart = "arm64"
		if osPart == "linux" {
			archPart = "aarch64"
		}
	case "arm":
		archPart = "armv7l"
	case "ppc64le":
		archPart = "ppc64le"
	case "s390x":
		archPart = "s390x"
	default:
		return "", zerr.With(zerr.With(zerr.Wrap(ErrUnknownPlatform, "unsupported host"), "goos", goos), "goarch", goarch)
	}

	platform := osPart + "-" + archPart
	if err := ValidatePlatform(platform); err != nil {
		return "", err
	}
	return platform, nil
}

// ValidatePlatform returns an error if platform is not a known conda subdir.
func ValidatePlatform(platform string) error {
	if _, ok := knownPlatforms[platform]; !ok {
		return zerr.With(zerr.Wrap(ErrUnknownPlatform, "invalid platform"), "platform", platform)
	}
	return nil
}

// IsWindowsPlatform reports whether platform targets Windows.
func IsWindowsPlatform(platform string) bool {
	return strings.HasPrefix(platform, "win-")
}

// DefaultPlatformsFor returns the default platform set including current.
func DefaultPlatformsFor(current string) []string {
	platforms := slices.Clone(DefaultPlatforms)
	if current != "" && !slices.Contains(platforms, current) {
		platforms = append(platforms, current)
	}
	return platforms
}
