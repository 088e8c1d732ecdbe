package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"dsaudit/internal/adapters/tui/styles"
	"dsaudit/internal/domain"
)

// RenderKeyHelp renders "key description" for one binding
func RenderKeyHelp(b key.Binding) string {
	h := b.Help()
	return styles.HelpKey.Render(h.Key) + " " + styles.HelpDesc.Render(h.Desc)
}

// RenderHelpLine joins the enabled bindings with the help separator
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if b.Enabled() {
			parts = append(parts, RenderKeyHelp(b))
		}
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage styles a status message as an error or a success
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderScore renders one line of the score card
func RenderScore(label string, percent float64, detail string) string {
	value := styles.ScoreValue.Foreground(styles.ScoreColor(percent)).Render(fmt.Sprintf("%.1f%%", percent))
	line := styles.ScoreLabel.Render(label) + value
	if detail != "" {
		line += "  " + styles.MutedText.Render(detail)
	}
	return line
}

// RenderScoreCard renders the three headline scores of a summary
func RenderScoreCard(s domain.Summary) string {
	lines := []string{
		RenderScore("Component coverage", s.ComponentCoverage,
			fmt.Sprintf("%d library / %d local", s.LibraryCount, s.LocalCount)),
		RenderScore("Token adoption", s.TokenAdoption,
			fmt.Sprintf("%d bound / %d hardcoded", s.TokenBoundTotal, s.HardcodedTotal)),
		RenderScore("Overall score", s.OverallScore, ""),
	}
	return styles.ScoreCard.Render(strings.Join(lines, "\n"))
}

// RenderKind renders an instance kind in its color
func RenderKind(k domain.InstanceKind) string {
	return lipgloss.NewStyle().Foreground(styles.KindColor(k.String())).Render(padRight(k.String(), 8))
}

// ViewBuilder assembles a view line by line. Every view is built with it
// so titles, messages and help lines look the same everywhere.
type ViewBuilder struct {
	lines []string
}

func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

func (v *ViewBuilder) add(lines ...string) *ViewBuilder {
	v.lines = append(v.lines, lines...)
	return v
}

func (v *ViewBuilder) Title(title string) *ViewBuilder {
	return v.add(styles.Title.Render(title))
}

// Subtitle is followed by a blank line
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	return v.add(styles.Subtitle.Render(subtitle), "")
}

func (v *ViewBuilder) Line(text string) *ViewBuilder {
	return v.add(text)
}

func (v *ViewBuilder) BlankLine() *ViewBuilder {
	return v.add("")
}

func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.add(styles.MutedText.Render(text))
}

// Message adds the status message and a blank line; an empty message
// adds nothing
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	return v.add(RenderMessage(message, isError), "")
}

// Help ends the view with the key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	return v.add(RenderHelpLine(bindings...))
}

// String joins the lines inside the app frame
func (v *ViewBuilder) String() string {
	return styles.App.Render(strings.Join(v.lines, "\n"))
}

// padRight pads to a display width, so wide glyphs in layer names keep
// the table aligned
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
