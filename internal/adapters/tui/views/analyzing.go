package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"dsaudit/internal/domain"
)

// AnalyzingKeyMap defines key bindings while an analysis runs
type AnalyzingKeyMap struct {
	Cancel key.Binding
	Quit   key.Binding
}

var AnalyzingKeys = AnalyzingKeyMap{
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

const progressWidth = 50

// AnalyzingModel shows the progress of a running analysis
type AnalyzingModel struct {
	ViewState
	source  string
	current domain.Progress
	bar     progress.Model
}

// NewAnalyzingModel creates a new analyzing view model
func NewAnalyzingModel(source string) *AnalyzingModel {
	return &AnalyzingModel{
		source: source,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth)),
	}
}

// Init initializes the view
func (m *AnalyzingModel) Init() tea.Cmd {
	return nil
}

// Reset clears the progress of a previous run
func (m *AnalyzingModel) Reset() {
	m.current = domain.Progress{}
	m.ClearMessage()
}

// SetSize narrows the bar on small terminals
func (m *AnalyzingModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.bar.Width = min(progressWidth, max(10, width-8))
}

// SetProgress records the latest checkpoint
func (m *AnalyzingModel) SetProgress(p domain.Progress) {
	m.current = p
}

// Progress returns the latest checkpoint
func (m *AnalyzingModel) Progress() domain.Progress {
	return m.current
}

// Update handles messages for the analyzing view
func (m *AnalyzingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, AnalyzingKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, AnalyzingKeys.Cancel):
			return m, func() tea.Msg { return CancelAnalysisMsg{} }
		}
	}
	return m, nil
}

// View renders the analyzing view
func (m *AnalyzingModel) View() string {
	v := NewViewBuilder().
		Title("dsaudit").
		Subtitle("Analysing " + m.source)

	phase := m.current.Phase
	if phase == "" {
		phase = "loading"
	}
	v.Line(m.bar.ViewAs(m.current.Fraction())).
		Muted(fmt.Sprintf("%s  %d / %d instances", phase, m.current.Processed, m.current.Total)).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Help(AnalyzingKeys.Cancel, AnalyzingKeys.Quit)
	return v.String()
}
