// Package output provides termenv outputs with a consistent color profile and
// a small status printer used by the CLI commands.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile returns the color profile for w.
// NO_COLOR forces Ascii; otherwise the terminal capabilities of the environment decide.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a new termenv.Output using ColorProfile. Options in opts take
// precedence over the defaults.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	defaults := []termenv.OutputOption{
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	}

	return termenv.NewOutput(w, append(defaults, opts...)...)
}
