package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"dsaudit/internal/adapters/tui/styles"
)

type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// helpSection lists the bindings of one screen. The text comes from the
// key maps themselves so the help never drifts from the real keys.
type helpSection struct {
	title    string
	bindings []key.Binding
}

func helpSections() []helpSection {
	r, o, a := ReportKeys, OrphansKeys, AnalyzingKeys
	return []helpSection{
		{"Report", []key.Binding{r.Up, r.Down, r.NextPage, r.PrevPage, r.Orphans,
			r.IgnoreInstance, r.IgnoreComponent, r.Clear, r.Copy, r.Reanalyze, r.EditConfig}},
		{"Hardcoded values", []key.Binding{o.Up, o.Down, o.Toggle, o.Back}},
		{"While analysing", []key.Binding{a.Cancel}},
		{"General", []key.Binding{r.Help, r.Quit, a.Quit}},
	}
}

var scoreNotes = []string{
	"Component coverage  library instances / counted instances",
	"Token adoption      token-bound / (token-bound + hardcoded) properties",
	"Overall score       weighted blend of both, weights from the library config",
	"Wrappers (local components built from library parts) are listed",
	"but left out of the component counts.",
}

type HelpModel struct {
	ViewState
	viewport viewport.Model
}

func NewHelpModel() *HelpModel {
	vp := viewport.New(80, 20)
	vp.SetContent(helpContent())
	return &HelpModel{viewport: vp}
}

func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update closes on the help keys and scrolls otherwise
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, HelpKeys.Close) {
		return m, func() tea.Msg { return SwitchToReportMsg{} }
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *HelpModel) View() string {
	return styles.App.Render(m.viewport.View() + "\n" + RenderHelpLine(HelpKeys.Close))
}

func helpContent() string {
	lines := []string{
		styles.Title.Render("dsaudit help"),
		styles.Subtitle.Render("Design-system adoption audit"),
		"",
	}
	for _, s := range helpSections() {
		lines = append(lines, styles.Section.Render(s.title))
		for _, b := range s.bindings {
			h := b.Help()
			lines = append(lines, "  "+styles.HelpKey.Render(padRight(h.Key, 12))+styles.HelpDesc.Render(h.Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, styles.Section.Render("Scores"))
	for _, n := range scoreNotes {
		lines = append(lines, styles.MutedText.Render("  "+n))
	}
	return strings.Join(lines, "\n")
}

// SetSize keeps the viewport inside the app padding
func (m *HelpModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.viewport.Width = max(20, width-4)
	m.viewport.Height = max(5, height-5)
}
