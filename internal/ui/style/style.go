// Package style provides shared UI styling primitives including the palette
// and icons used by the logger and the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Color is a palette entry.
type Color = lipgloss.Color

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
)
