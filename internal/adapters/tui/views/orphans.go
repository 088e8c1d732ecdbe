package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"

	"dsaudit/internal/adapters/tui/styles"
	"dsaudit/internal/domain"
)

// OrphansKeyMap defines key bindings for the hardcoded values view
type OrphansKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var OrphansKeys = OrphansKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "i"),
		key.WithHelp("space/i", "ignore finding"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

const (
	findingsPerPage = 12
	// instance header, category summary, footer and help
	orphansChrome = 12
)

// OrphansModel lists the hardcoded values found under one instance
type OrphansModel struct {
	ViewState
	row     *domain.InstanceRow
	ignores domain.IgnoreSets
	cursor  int
	pages   paginator.Model
}

// NewOrphansModel creates a new orphans model
func NewOrphansModel() *OrphansModel {
	pages := paginator.New(paginator.WithPerPage(findingsPerPage))
	pages.Type = paginator.Arabic
	return &OrphansModel{pages: pages, ignores: domain.NewIgnoreSets()}
}

// Init initializes the view
func (m *OrphansModel) Init() tea.Cmd {
	return nil
}

// SetRow selects the instance row to drill into
func (m *OrphansModel) SetRow(row *domain.InstanceRow, ignores domain.IgnoreSets) {
	m.row = row
	m.ignores = ignores
	m.cursor = 0
	m.pages.Page = 0
	m.pages.SetTotalPages(len(m.findings()))
	m.ClearMessage()
}

// SetSize fits the finding page to the terminal height
func (m *OrphansModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pages.PerPage = m.PageSize(orphansChrome, findingsPerPage)
	m.pages.SetTotalPages(len(m.findings()))
	m.pages.Page = m.cursor / m.pages.PerPage
}

// SetIgnores refreshes the ignore markers
func (m *OrphansModel) SetIgnores(ignores domain.IgnoreSets) {
	m.ignores = ignores
}

func (m *OrphansModel) findings() []domain.Detail {
	if m.row == nil {
		return nil
	}
	return m.row.OrphanDetails
}

// Update handles messages for the orphans view
func (m *OrphansModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	findings := m.findings()

	switch {
	case key.Matches(keyMsg, OrphansKeys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, OrphansKeys.Back):
		return m, func() tea.Msg { return SwitchToReportMsg{} }

	case key.Matches(keyMsg, OrphansKeys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.pages.Page = m.cursor / m.pages.PerPage
		}

	case key.Matches(keyMsg, OrphansKeys.Down):
		if m.cursor < len(findings)-1 {
			m.cursor++
			m.pages.Page = m.cursor / m.pages.PerPage
		}

	case key.Matches(keyMsg, OrphansKeys.Toggle):
		if m.cursor < len(findings) {
			return m, toggle(domain.IgnoreOrphan, findings[m.cursor].OrphanKey().String())
		}
	}
	return m, nil
}

// View renders the hardcoded values of the selected instance
func (m *OrphansModel) View() string {
	v := NewViewBuilder().Title("Hardcoded values")
	if m.row == nil {
		return v.Subtitle("No instance selected").Help(OrphansKeys.Back).String()
	}

	v.Subtitle(fmt.Sprintf("%s · %s · %s", m.row.InstanceName, m.row.ComponentName, m.row.LibrarySource))
	v.Line(fmt.Sprintf("%s  %s",
		RenderKind(m.row.Kind),
		styles.MutedText.Render(fmt.Sprintf("%d token-bound, %d hardcoded", m.row.Tokens.Total(), m.row.Orphans.Total()))))
	v.Line(styles.MutedText.Render(categoryLine(m.row.Orphans)))
	v.BlankLine()

	findings := m.findings()
	if len(findings) == 0 {
		v.Muted("No hardcoded values under this instance.")
	} else {
		start, end := m.pages.GetSliceBounds(len(findings))
		for i := start; i < end; i++ {
			v.Line(m.renderFinding(findings[i], i == m.cursor))
		}
		if m.pages.TotalPages > 1 {
			v.Muted(m.pages.View())
		}
		if len(findings) >= domain.MaxDetailRecords {
			v.Muted(fmt.Sprintf("Showing the first %d findings", domain.MaxDetailRecords))
		}
	}

	v.BlankLine().
		Message(m.Message, m.MessageErr).
		Help(OrphansKeys.Up, OrphansKeys.Down, OrphansKeys.Toggle, OrphansKeys.Back)
	return v.String()
}

func (m *OrphansModel) renderFinding(d domain.Detail, selected bool) string {
	marker := " "
	ignored := m.ignores.Contains(domain.IgnoreOrphan, d.OrphanKey().String())
	if ignored {
		marker = "✕"
	}
	text := strings.Join([]string{
		marker,
		padRight(truncate(d.NodeName, 24), 24),
		padRight(string(d.Category), 11),
		findingValues(d),
	}, " ")

	switch {
	case selected:
		return styles.RowSelected.Render(text)
	case ignored:
		return styles.RowIgnored.Render(text)
	default:
		return styles.Row.Render(text)
	}
}

func findingValues(d domain.Detail) string {
	parts := make([]string, len(d.Properties))
	for i, p := range d.Properties {
		if i < len(d.Values) && d.Values[i] != "" {
			parts[i] = p + " " + d.Values[i]
		} else {
			parts[i] = p
		}
	}
	return strings.Join(parts, ", ")
}

func categoryLine(c domain.PropertyCounts) string {
	parts := make([]string, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		if cat == domain.CategorySpacing {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d", cat, c.Get(cat)))
	}
	return strings.Join(parts, " · ")
}
