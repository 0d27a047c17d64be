package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	accentColor  = lipgloss.Color("#A78BFA")
	successColor = lipgloss.Color("#10B981")
	warningColor = lipgloss.Color("#F59E0B")
	mutedColor   = lipgloss.Color("#9CA3AF")
)

// styles holds the styles of one Output. With color disabled every style
// renders its input unchanged.
type styles struct {
	greeting  lipgloss.Style
	prompt    lipgloss.Style
	message   lipgloss.Style
	neighbour lipgloss.Style
	warning   lipgloss.Style
	muted     lipgloss.Style
	header    lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		greeting:  lipgloss.NewStyle().Bold(true).Foreground(accentColor),
		prompt:    lipgloss.NewStyle().Bold(true),
		message:   lipgloss.NewStyle(),
		neighbour: lipgloss.NewStyle().Bold(true).Foreground(successColor),
		warning:   lipgloss.NewStyle().Foreground(warningColor),
		muted:     lipgloss.NewStyle().Foreground(mutedColor),
		header:    lipgloss.NewStyle().Bold(true).Foreground(accentColor).Padding(0, 1),
	}
}

// ColorEnabled reports whether output to w should be colored: want must be
// set and w must be a terminal.
func ColorEnabled(w io.Writer, want bool) bool {
	if !want {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Output is a terminal writer shared by the Prompter and the Sink. It is safe
// for concurrent use.
type Output struct {
	mu     sync.Mutex
	w      io.Writer
	styles styles
}

// NewOutput wraps w. Color is applied only when color is true.
func NewOutput(w io.Writer, color bool) *Output {
	return &Output{w: w, styles: newStyles(color)}
}

func (o *Output) line(style lipgloss.Style, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintln(o.w, style.Render(text))
}

func (o *Output) prompt(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprint(o.w, o.styles.prompt.Render(text))
}

// Print writes text on its own line without styling.
func (o *Output) Print(text string) {
	o.line(o.styles.message, text)
}
