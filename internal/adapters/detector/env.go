// Package detector decides whether command output is colored.
package detector

import (
	"os"

	"github.com/muesli/termenv"
	"go.trai.ch/conda-project/internal/ui/output"
	"golang.org/x/term"
)

// ColorMode selects colored or plain command output.
type ColorMode int

const (
	// ColorAuto follows the detected environment.
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output.
	ColorAlways
	// ColorNever forces plain output.
	ColorNever
)

// DetectEnvironment returns the color mode suited to the environment.
// Output that is not a terminal, or a CI run, is plain.
func DetectEnvironment() ColorMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // fd fits in int

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ColorNever
	}
	return ColorAlways
}

// ResolveMode applies the --color flag to the detected mode.
// flag is one of "auto", "always", "never" or empty.
func ResolveMode(detected ColorMode, flag string) ColorMode {
	switch flag {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return detected
	}
}

// Profile returns the termenv profile for m.
func (m ColorMode) Profile() termenv.Profile {
	if m == ColorNever {
		return termenv.Ascii
	}
	return output.ColorProfile()
}
