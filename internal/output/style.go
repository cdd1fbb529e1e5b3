package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles for console output
type Styles struct {
	Success lipgloss.Style
	Heading lipgloss.Style
}

// NewStyles returns styles rendering for w. Colors are only emitted when w is a terminal.
func NewStyles(w io.Writer) Styles {
	renderer := lipgloss.NewRenderer(w)
	if !IsTerminal(w) {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Success: renderer.NewStyle().Foreground(lipgloss.Color("#4dca7d")).Bold(true),
		Heading: renderer.NewStyle().Bold(true),
	}
}

// IsTerminal reports whether w is a terminal file
func IsTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsInteractive returns true if both stdin and stdout are terminals
func IsInteractive() bool {
	return IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}
