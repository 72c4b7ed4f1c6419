// Package cli implements the draftkit command line interface. Commands are
// thin: they load the stores and services from internal packages, run one
// operation, and print results through a Styler so output stays consistent
// across subcommands.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Styler renders status lines, headers, and key-value output. Colors follow
// the --color flag: "always" and "never" force the choice, anything else
// detects a terminal on the output stream.
type Styler struct {
	out     io.Writer
	enabled bool

	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	dim     lipgloss.Style
	bold    lipgloss.Style
	header  lipgloss.Style
}

func NewStyler(colorMode string, out io.Writer) *Styler {
	var enabled bool
	switch colorMode {
	case "always":
		enabled = true
	case "never":
		enabled = false
	default:
		if f, ok := out.(*os.File); ok {
			enabled = term.IsTerminal(int(f.Fd())) && !termenv.EnvNoColor()
		}
	}

	s := &Styler{out: out, enabled: enabled}
	if enabled {
		s.success = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
		s.failure = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
		s.warning = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
		s.info = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
		s.dim = lipgloss.NewStyle().Faint(true)
		s.bold = lipgloss.NewStyle().Bold(true)
		s.header = lipgloss.NewStyle().Bold(true).Underline(true)
	}
	return s
}

// ColorsEnabled reports whether styled output is active.
func (s *Styler) ColorsEnabled() bool { return s.enabled }

// PrintSuccess prints a message with a green checkmark.
func (s *Styler) PrintSuccess(message string) {
	fmt.Fprintf(s.out, "%s %s\n", s.success.Render("✓"), message)
}

// PrintError prints a message with a red X.
func (s *Styler) PrintError(message string) {
	fmt.Fprintf(s.out, "%s %s\n", s.failure.Render("✗"), message)
}

// PrintWarning prints a message with a warning triangle.
func (s *Styler) PrintWarning(message string) {
	fmt.Fprintf(s.out, "%s %s\n", s.warning.Render("⚠"), message)
}

// PrintInfo prints a message with a bullet.
func (s *Styler) PrintInfo(message string) {
	fmt.Fprintf(s.out, "%s %s\n", s.info.Render("•"), message)
}

// PrintHeader prints a title with a dim underline the same width.
func (s *Styler) PrintHeader(title string) {
	fmt.Fprintln(s.out, s.header.Render(title))
	fmt.Fprintln(s.out, s.dim.Render(strings.Repeat("─", len([]rune(title)))))
}

// PrintKV prints a right-aligned dim key followed by the value.
func (s *Styler) PrintKV(key, value string, width int) {
	fmt.Fprintf(s.out, "%s %s\n", s.dim.Render(fmt.Sprintf("%*s:", width, key)), value)
}

func (s *Styler) Println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Styler) Printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

// Wrap word-wraps text to the given width for list descriptions.
func (s *Styler) Wrap(text string, width int) string {
	return wordwrap.String(text, width)
}

// FormatSize renders a byte count in human units.
func FormatSize(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
