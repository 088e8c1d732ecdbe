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

// ReportKeyMap defines key bindings for the report view
type ReportKeyMap struct {
	Up              key.Binding
	Down            key.Binding
	NextPage        key.Binding
	PrevPage        key.Binding
	Orphans         key.Binding
	IgnoreInstance  key.Binding
	IgnoreComponent key.Binding
	Clear           key.Binding
	Copy            key.Binding
	Reanalyze       key.Binding
	EditConfig      key.Binding
	Help            key.Binding
	Quit            key.Binding
}

var ReportKeys = ReportKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	Orphans: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "hardcoded values"),
	),
	IgnoreInstance: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "ignore instance"),
	),
	IgnoreComponent: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "ignore component"),
	),
	Clear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear ignores"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy summary"),
	),
	Reanalyze: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "re-analyse"),
	),
	EditConfig: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit libraries"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

const (
	rowsPerPage = 15
	// score card, table header, footer and help
	reportChrome = 16
)

// ReportModel shows the scores of the last analysis and the instance table
type ReportModel struct {
	ViewState
	metrics  *domain.CoverageMetrics
	filtered domain.FilteredMetrics
	ignores  domain.IgnoreSets

	cursor  int
	pages   paginator.Model
	confirm ConfirmationModel
}

// NewReportModel creates a new report model
func NewReportModel() *ReportModel {
	pages := paginator.New(paginator.WithPerPage(rowsPerPage))
	pages.Type = paginator.Arabic
	return &ReportModel{
		pages:   pages,
		confirm: NewConfirmationModel(),
		ignores: domain.NewIgnoreSets(),
	}
}

// Init initializes the report
func (m *ReportModel) Init() tea.Cmd {
	return nil
}

// SetResult replaces the analysis shown. The cursor is kept when the row
// count did not change, so a re-analysis of the same document keeps the
// user's place.
func (m *ReportModel) SetResult(metrics *domain.CoverageMetrics, filtered domain.FilteredMetrics, ignores domain.IgnoreSets) {
	keep := m.metrics != nil && metrics != nil && len(m.metrics.Rows) == len(metrics.Rows)
	m.metrics = metrics
	m.filtered = filtered
	m.ignores = ignores
	if !keep {
		m.cursor = 0
	}
	m.pages.SetTotalPages(len(m.rows()))
	m.syncPage()
}

// SetSize fits the table page to the terminal height
func (m *ReportModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pages.PerPage = m.PageSize(reportChrome, rowsPerPage)
	m.pages.SetTotalPages(len(m.rows()))
	m.syncPage()
}

// SetFiltered updates the recomputed numbers after an ignore change
func (m *ReportModel) SetFiltered(filtered domain.FilteredMetrics, ignores domain.IgnoreSets) {
	m.filtered = filtered
	m.ignores = ignores
}

// Selected returns the index of the selected row, or -1
func (m *ReportModel) Selected() int {
	if m.cursor < len(m.rows()) {
		return m.cursor
	}
	return -1
}

func (m *ReportModel) rows() []domain.InstanceRow {
	if m.metrics == nil {
		return nil
	}
	return m.metrics.Rows
}

func (m *ReportModel) selectedRow() *domain.InstanceRow {
	rows := m.rows()
	if m.cursor >= 0 && m.cursor < len(rows) {
		return &rows[m.cursor]
	}
	return nil
}

func (m *ReportModel) syncPage() {
	if m.pages.PerPage > 0 {
		m.pages.Page = m.cursor / m.pages.PerPage
	}
}

// Update handles messages for the report
func (m *ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirm.Active {
		return m, m.confirm.HandleKeyMsg(keyMsg)
	}
	m.ClearMessage()

	switch {
	case key.Matches(keyMsg, ReportKeys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, ReportKeys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.syncPage()
		}
		return m, nil

	case key.Matches(keyMsg, ReportKeys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
			m.syncPage()
		}
		return m, nil

	case key.Matches(keyMsg, ReportKeys.NextPage):
		if !m.pages.OnLastPage() {
			m.pages.NextPage()
			m.cursor = m.pages.Page * m.pages.PerPage
		}
		return m, nil

	case key.Matches(keyMsg, ReportKeys.PrevPage):
		if m.pages.Page > 0 {
			m.pages.PrevPage()
			m.cursor = m.pages.Page * m.pages.PerPage
		}
		return m, nil

	case key.Matches(keyMsg, ReportKeys.Orphans):
		if m.selectedRow() != nil {
			row := m.cursor
			return m, func() tea.Msg { return SwitchToOrphansMsg{Row: row} }
		}
		return m, nil

	case key.Matches(keyMsg, ReportKeys.IgnoreInstance):
		if row := m.selectedRow(); row != nil {
			return m, toggle(domain.IgnoreInstance, row.InstanceID)
		}
		return m, nil

	case key.Matches(keyMsg, ReportKeys.IgnoreComponent):
		if row := m.selectedRow(); row != nil {
			if row.ComponentID == "" {
				m.SetMessage("Instance has no main component", true)
				return m, nil
			}
			return m, toggle(domain.IgnoreComponent, row.ComponentID)
		}
		return m, nil

	case key.Matches(keyMsg, ReportKeys.Clear):
		if m.ignores.Len() == 0 {
			m.SetMessage("Nothing ignored", false)
			return m, nil
		}
		m.confirm.Ask(fmt.Sprintf("Clear %d ignore(s) of this document?", m.ignores.Len()),
			func() tea.Msg { return ClearIgnoresMsg{} })
		return m, nil

	case key.Matches(keyMsg, ReportKeys.Copy):
		if m.metrics != nil {
			return m, func() tea.Msg { return CopySummaryMsg{} }
		}
		return m, nil

	case key.Matches(keyMsg, ReportKeys.Reanalyze):
		return m, func() tea.Msg { return ReanalyzeMsg{} }

	case key.Matches(keyMsg, ReportKeys.EditConfig):
		return m, func() tea.Msg { return EditConfigMsg{} }

	case key.Matches(keyMsg, ReportKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return m, nil
}

func toggle(kind domain.IgnoreKind, k string) tea.Cmd {
	return func() tea.Msg { return ToggleIgnoreMsg{Kind: kind, Key: k} }
}

// rowIgnored reports whether a row is excluded by its instance or component
func (m *ReportModel) rowIgnored(row *domain.InstanceRow) bool {
	return m.ignores.Contains(domain.IgnoreInstance, row.InstanceID) ||
		(row.ComponentID != "" && m.ignores.Contains(domain.IgnoreComponent, row.ComponentID))
}

// View renders the report
func (m *ReportModel) View() string {
	v := NewViewBuilder().Title("dsaudit")

	if m.metrics == nil {
		return v.Subtitle("No analysis yet").
			Message(m.Message, m.MessageErr).
			Help(ReportKeys.Reanalyze, ReportKeys.Quit).
			String()
	}

	v.Subtitle(fmt.Sprintf("%s · %d instance(s) · %d hidden skipped · %d wrapper(s)",
		m.metrics.Document, m.metrics.InstanceCount, m.metrics.HiddenSkipped, m.metrics.WrapperCount))
	v.Line(RenderScoreCard(m.filtered.Summary))
	if m.filtered.IgnoredKeyCount > 0 {
		v.Muted(fmt.Sprintf("Ignoring %d key(s): %d row(s), %d hardcoded value(s) excluded",
			m.filtered.IgnoredKeyCount, m.filtered.IgnoredRows, m.filtered.IgnoredOrphans))
	}
	v.BlankLine()

	rows := m.rows()
	if len(rows) == 0 {
		v.Muted("No instances in the selection.")
	} else {
		v.Line(styles.TableHeader.Render(formatRow(" ", "kind", "instance", "component", "tok/hard", "source")))
		start, end := m.pages.GetSliceBounds(len(rows))
		for i := start; i < end; i++ {
			v.Line(m.renderRow(&rows[i], i == m.cursor))
		}
		if m.pages.TotalPages > 1 {
			v.Muted(m.pages.View())
		}
	}

	v.BlankLine()
	if m.confirm.Active {
		v.Line(m.confirm.View())
	}
	v.Message(m.Message, m.MessageErr)
	v.Help(ReportKeys.Orphans, ReportKeys.IgnoreInstance, ReportKeys.IgnoreComponent,
		ReportKeys.Copy, ReportKeys.Reanalyze, ReportKeys.Help, ReportKeys.Quit)
	return v.String()
}

func (m *ReportModel) renderRow(row *domain.InstanceRow, selected bool) string {
	marker := " "
	ignored := m.rowIgnored(row)
	if ignored {
		marker = "✕"
	}
	counts := fmt.Sprintf("%d/%d", row.Tokens.Total(), row.Orphans.Total())
	text := formatRow(marker, row.Kind.String(), row.InstanceName, row.ComponentName, counts, row.LibrarySource)

	switch {
	case selected:
		return styles.RowSelected.Render(text)
	case ignored:
		return styles.RowIgnored.Render(text)
	default:
		return styles.Row.Render(text)
	}
}

func formatRow(marker, kind, instance, component, counts, source string) string {
	return strings.Join([]string{
		marker,
		padRight(kind, 8),
		padRight(truncate(instance, 24), 24),
		padRight(truncate(component, 24), 24),
		padRight(counts, 9),
		truncate(source, 36),
	}, " ")
}
