package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gnana997/darklint/pkg/linter"
	"github.com/gnana997/darklint/pkg/rules"
)

// contextWidth is how much of the source line a violation block shows.
const contextWidth = 120

// quickFixes is printed after a failing run.
var quickFixes = []struct {
	heading string
	items   []string
}{
	{"TEXT COLORS", []string{
		"text-gray-900 → text-gray-900 dark:text-gray-50",
		"text-gray-700 → text-gray-700 dark:text-gray-200",
		"text-white → text-white dark:text-gray-100 (+ ensure dark bg)",
	}},
	{"BACKGROUND COLORS", []string{
		"bg-white → bg-white dark:bg-gray-900",
		"bg-gray-100 → bg-gray-100 dark:bg-gray-800",
	}},
	{"LOW CONTRAST", []string{
		"text-gray-200 on bg-gray-100 → use text-gray-700 instead",
		"text-gray-800 on bg-gray-900 → use text-gray-200 instead",
	}},
	{"TYPOGRAPHY", []string{
		"prose → prose dark:prose-invert",
		"from-green-50 to-emerald-50 → add dark:from-green-900/20 dark:to-emerald-900/20",
	}},
}

type textStyles struct {
	plain bool

	title   lipgloss.Style
	failed  lipgloss.Style
	passed  lipgloss.Style
	label   lipgloss.Style
	pattern lipgloss.Style
}

// TextFormatter writes the human-readable console report.
type TextFormatter struct {
	w      io.Writer
	styles textStyles
}

// NewTextFormatter styles output through a renderer bound to the writer,
// so colors are dropped when it is not a terminal.
func NewTextFormatter(opts *Options) *TextFormatter {
	f := &TextFormatter{w: opts.Writer}
	if opts.NoColor {
		f.styles.plain = true
		return f
	}

	r := lipgloss.NewRenderer(opts.Writer)
	f.styles = textStyles{
		title:   r.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		failed:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		passed:  r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		label:   r.NewStyle().Foreground(lipgloss.Color("8")),
		pattern: r.NewStyle().Foreground(lipgloss.Color("12")),
	}
	return f
}

func (f *TextFormatter) paint(style lipgloss.Style, s string) string {
	if f.styles.plain {
		return s
	}
	return style.Render(s)
}

func (f *TextFormatter) Format(r *linter.Report) error {
	var b strings.Builder

	b.WriteString(f.paint(f.styles.title, "🌙 Dark Mode Validation") + "\n")
	fmt.Fprintf(&b, "Checking %d files...\n\n", r.FilesChecked)

	for _, fr := range r.Files {
		f.writeFile(&b, fr)
	}

	if counts := r.PatternCounts(); len(counts) > 0 {
		b.WriteString(f.paint(f.styles.label, "Violations by rule:") + "\n")
		for _, c := range counts {
			fmt.Fprintf(&b, "  %s %d\n", f.paint(f.styles.pattern, string(c.PatternID)+":"), c.Count)
		}
		b.WriteString("\n")
	}

	b.WriteString(f.paint(f.styles.title, "🌙 Dark Mode Validation Results:") + "\n")
	fmt.Fprintf(&b, "Files checked: %d\n", r.FilesChecked)
	fmt.Fprintf(&b, "Files with errors: %d\n", r.FilesWithErrors)
	fmt.Fprintf(&b, "Total errors: %d\n", r.TotalErrors)

	if r.Failed() {
		b.WriteString("\n" + f.paint(f.styles.failed, "❌ DARK MODE VALIDATION FAILED!") + "\n")
		b.WriteString("\nQuick fixes:\n")
		for _, section := range quickFixes {
			b.WriteString(f.paint(f.styles.label, section.heading+":") + "\n")
			for _, item := range section.items {
				b.WriteString("• " + item + "\n")
			}
		}
	} else {
		b.WriteString("\n" + f.paint(f.styles.passed, "✅ All files pass dark mode validation!") + "\n")
	}

	_, err := io.WriteString(f.w, b.String())
	return err
}

// FormatFile prints one file's block, or a pass line when it is clean.
func (f *TextFormatter) FormatFile(fr linter.FileReport) error {
	var b strings.Builder
	if len(fr.Violations) == 0 {
		b.WriteString(f.paint(f.styles.passed, "✅ "+fr.Path) + "\n")
	} else {
		f.writeFile(&b, fr)
	}
	_, err := io.WriteString(f.w, b.String())
	return err
}

func (f *TextFormatter) writeFile(b *strings.Builder, fr linter.FileReport) {
	b.WriteString(f.paint(f.styles.failed, "❌ "+fr.Path) + "\n")
	for _, v := range fr.Violations {
		writeViolation(b, v)
	}
}

func writeViolation(b *strings.Builder, v rules.Violation) {
	fmt.Fprintf(b, "  Line %d:%d [%s] - %s\n", v.Line, v.Column, v.SourceKind, v.Message)
	fmt.Fprintf(b, "    Found: %s\n", v.MatchedText)
	if v.Suggestion != "" {
		fmt.Fprintf(b, "    Suggestion: %s\n", v.Suggestion)
	}
	fmt.Fprintf(b, "    Context: %s\n\n", truncate(v.LineContent, contextWidth))
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
