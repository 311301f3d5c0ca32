package output

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"go.trai.ch/conda-project/internal/ui/style"
)

// Printer writes command results, one line per call.
type Printer struct {
	out *termenv.Output
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, opts ...termenv.OutputOption) *Printer {
	return &Printer{out: New(w, opts...)}
}

// Success prints a line prefixed with a check mark.
func (p *Printer) Success(format string, args ...any) {
	p.line(style.Check, style.Green, format, args...)
}

// Failure prints a line prefixed with a cross.
func (p *Printer) Failure(format string, args ...any) {
	p.line(style.Cross, style.Red, format, args...)
}

// Pending prints a line prefixed with a tilde.
func (p *Printer) Pending(format string, args ...any) {
	p.line(style.Tilde, style.Yellow, format, args...)
}

// Item prints an indented list entry.
func (p *Printer) Item(format string, args ...any) {
	p.line("  "+style.Dot, style.Slate, format, args...)
}

// Plain prints an unstyled line.
func (p *Printer) Plain(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) line(icon string, color style.Color, format string, args ...any) {
	msg := icon + " " + fmt.Sprintf(format, args...)
	styled := p.out.String(msg).Foreground(termenv.RGBColor(string(color)))
	_, _ = p.out.WriteString(styled.String() + "\n")
}
