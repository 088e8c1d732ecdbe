package styles

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Accent   = lipgloss.Color("#7C3AED")
	Good     = lipgloss.Color("#10B981")
	Fair     = lipgloss.Color("#F59E0B")
	Poor     = lipgloss.Color("#EF4444")
	Muted    = lipgloss.Color("#6B7280")
	OnAccent = lipgloss.Color("#FFFFFF")

	KindLibrary = lipgloss.Color("#60A5FA")
	KindLocal   = lipgloss.Color("#F97316")
	KindWrapper = lipgloss.Color("#8B5CF6")
)

var (
	App = lipgloss.NewStyle().Padding(1, 2)

	Title    = lipgloss.NewStyle().Bold(true).Foreground(Accent).MarginBottom(1)
	Subtitle = lipgloss.NewStyle().Foreground(Muted).Italic(true)
	Section  = lipgloss.NewStyle().Foreground(Good).Bold(true)

	ScoreLabel = lipgloss.NewStyle().Foreground(Muted).Width(20)
	ScoreValue = lipgloss.NewStyle().Bold(true).Width(8).Align(lipgloss.Right)
	ScoreCard  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(0, 1)

	TableHeader = lipgloss.NewStyle().Bold(true).Foreground(Good).Underline(true)
	Row         = lipgloss.NewStyle()
	RowSelected = lipgloss.NewStyle().Background(Accent).Foreground(OnAccent).Bold(true)
	// RowIgnored stays visible so an ignore can be undone in place
	RowIgnored = lipgloss.NewStyle().Foreground(Muted).Strikethrough(true)
	Marker     = lipgloss.NewStyle().Foreground(Fair).Bold(true)

	HelpKey       = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	HelpDesc      = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Muted).SetString(" • ")

	Success   = lipgloss.NewStyle().Foreground(Good).Bold(true)
	ErrorMsg  = lipgloss.NewStyle().Foreground(Poor).Bold(true)
	MutedText = lipgloss.NewStyle().Foreground(Muted)
)

// ScoreColor grades a percentage: good from 80, fair from 50, poor below
func ScoreColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 80:
		return Good
	case percent >= 50:
		return Fair
	default:
		return Poor
	}
}

// KindColor returns the color for an instance kind name
func KindColor(kind string) lipgloss.Color {
	switch kind {
	case "library":
		return KindLibrary
	case "wrapper":
		return KindWrapper
	default:
		return KindLocal
	}
}
