package views

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"dsaudit/internal/domain"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleMetrics(n int) *domain.CoverageMetrics {
	rows := make([]domain.InstanceRow, n)
	for i := range rows {
		rows[i] = domain.InstanceRow{
			InstanceID:    fmt.Sprintf("1:%d", i),
			InstanceName:  fmt.Sprintf("Instance %d", i),
			ComponentID:   "c:1",
			ComponentName: "Button",
			Kind:          domain.KindLibrary,
			LibrarySource: "DS",
		}
	}
	rows[0].ComponentID = ""
	rows[0].OrphanDetails = []domain.Detail{
		{NodeID: "I1:0;2:1", NodeName: "Label", Category: domain.CategoryColors, Properties: []string{"fill"}, Values: []string{"#000000"}, Count: 1},
	}
	return &domain.CoverageMetrics{Document: "Checkout", InstanceCount: n, Rows: rows}
}

func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestReportModel_IgnoreKeys(t *testing.T) {
	m := NewReportModel()
	metrics := sampleMetrics(3)
	m.SetResult(metrics, domain.FilteredMetrics{Summary: domain.Summarize(metrics.Rows, domain.DefaultWeights)}, domain.NewIgnoreSets())

	_, cmd := m.Update(keyPress("i"))
	msg, ok := runCmd(cmd).(ToggleIgnoreMsg)
	if !ok {
		t.Fatalf("expected ToggleIgnoreMsg, got %T", runCmd(cmd))
	}
	if msg.Kind != domain.IgnoreInstance || msg.Key != "1:0" {
		t.Errorf("unexpected toggle %+v", msg)
	}

	// first row has no component
	_, cmd = m.Update(keyPress("c"))
	if cmd != nil {
		t.Error("expected no command for a row without component")
	}
	if !m.MessageErr {
		t.Error("expected an error message")
	}

	m.Update(keyPress("j"))
	_, cmd = m.Update(keyPress("c"))
	msg = runCmd(cmd).(ToggleIgnoreMsg)
	if msg.Kind != domain.IgnoreComponent || msg.Key != "c:1" {
		t.Errorf("unexpected toggle %+v", msg)
	}

	_, cmd = m.Update(keyPress("enter"))
	if sw, ok := runCmd(cmd).(SwitchToOrphansMsg); !ok || sw.Row != 1 {
		t.Errorf("expected SwitchToOrphansMsg for row 1, got %+v", runCmd(cmd))
	}
}

func TestReportModel_ClearConfirmation(t *testing.T) {
	m := NewReportModel()
	metrics := sampleMetrics(2)
	ignores := domain.NewIgnoreSets()
	m.SetResult(metrics, domain.FilteredMetrics{}, ignores)

	m.Update(keyPress("x"))
	if m.confirm.Active {
		t.Fatal("nothing to clear, prompt should not open")
	}

	ignores.Add(domain.IgnoreInstance, "1:1")
	m.SetFiltered(domain.FilteredMetrics{}, ignores)

	m.Update(keyPress("x"))
	if !m.confirm.Active {
		t.Fatal("expected confirmation prompt")
	}
	if !strings.Contains(m.View(), "Clear 1 ignore(s)") {
		t.Error("expected prompt in view")
	}

	// "y" confirms instead of copying while the prompt is open
	_, cmd := m.Update(keyPress("y"))
	if _, ok := runCmd(cmd).(ClearIgnoresMsg); !ok {
		t.Errorf("expected ClearIgnoresMsg, got %T", runCmd(cmd))
	}
	if m.confirm.Active {
		t.Error("prompt should close after confirming")
	}

	m.Update(keyPress("x"))
	_, cmd = m.Update(keyPress("n"))
	if cmd != nil || m.confirm.Active {
		t.Error("expected prompt to be dismissed without command")
	}
}

func TestReportModel_Paging(t *testing.T) {
	m := NewReportModel()
	metrics := sampleMetrics(rowsPerPage + 5)
	m.SetResult(metrics, domain.FilteredMetrics{}, domain.NewIgnoreSets())

	m.Update(keyPress("l"))
	if m.Selected() != rowsPerPage {
		t.Errorf("expected cursor at %d after next page, got %d", rowsPerPage, m.Selected())
	}
	m.Update(keyPress("l"))
	if m.Selected() != rowsPerPage {
		t.Error("next page on the last page should not move")
	}
	m.Update(keyPress("k"))
	if m.pages.Page != 0 {
		t.Errorf("moving above the page should switch back, got page %d", m.pages.Page)
	}
}

func TestReportModel_ViewMarksIgnored(t *testing.T) {
	m := NewReportModel()
	metrics := sampleMetrics(2)
	ignores := domain.NewIgnoreSets()
	ignores.Add(domain.IgnoreComponent, "c:1")
	m.SetResult(metrics, domain.ApplyExclusions(metrics.Rows, ignores, domain.DefaultWeights), ignores)

	if !m.rowIgnored(&metrics.Rows[1]) {
		t.Error("row with ignored component should be marked")
	}
	if m.rowIgnored(&metrics.Rows[0]) {
		t.Error("row without component should not be marked")
	}
	view := m.View()
	if !strings.Contains(view, "Ignoring 1 key(s)") {
		t.Error("expected ignore summary in view")
	}
}

func TestOrphansModel_Toggle(t *testing.T) {
	m := NewOrphansModel()
	metrics := sampleMetrics(1)
	m.SetRow(&metrics.Rows[0], domain.NewIgnoreSets())

	_, cmd := m.Update(keyPress(" "))
	msg, ok := runCmd(cmd).(ToggleIgnoreMsg)
	if !ok {
		t.Fatalf("expected ToggleIgnoreMsg, got %T", runCmd(cmd))
	}
	if msg.Kind != domain.IgnoreOrphan || msg.Key != "I1:0;2:1|" {
		t.Errorf("unexpected toggle %+v", msg)
	}

	_, cmd = m.Update(keyPress("esc"))
	if _, ok := runCmd(cmd).(SwitchToReportMsg); !ok {
		t.Error("expected SwitchToReportMsg on esc")
	}

	if !strings.Contains(m.View(), "fill #000000") {
		t.Error("expected finding values in view")
	}
}

func TestAnalyzingModel(t *testing.T) {
	m := NewAnalyzingModel("checkout.json")
	m.SetProgress(domain.Progress{Phase: "instances", Processed: 20, Total: 40})

	if !strings.Contains(m.View(), "instances  20 / 40 instances") {
		t.Error("expected progress counts in view")
	}

	_, cmd := m.Update(keyPress("esc"))
	if _, ok := runCmd(cmd).(CancelAnalysisMsg); !ok {
		t.Error("expected CancelAnalysisMsg on esc")
	}

	m.Reset()
	if m.Progress().Total != 0 {
		t.Error("expected reset progress")
	}
}

func TestReportModel_PageFitsTerminal(t *testing.T) {
	m := NewReportModel()
	rows := make([]domain.InstanceRow, 40)
	for i := range rows {
		rows[i] = domain.InstanceRow{InstanceID: fmt.Sprintf("%d:1", i)}
	}
	m.SetResult(&domain.CoverageMetrics{Rows: rows}, domain.FilteredMetrics{}, domain.NewIgnoreSets())

	m.SetSize(100, reportChrome+10)
	if m.pages.PerPage != 10 || m.pages.TotalPages != 4 {
		t.Errorf("expected 4 pages of 10, got %d pages of %d", m.pages.TotalPages, m.pages.PerPage)
	}

	m.SetSize(100, 5)
	if m.pages.PerPage != minPageSize {
		t.Errorf("expected the minimum page size, got %d", m.pages.PerPage)
	}
}

func TestHelpContent_ListsEveryBinding(t *testing.T) {
	content := helpContent()
	for _, s := range helpSections() {
		if !strings.Contains(content, s.title) {
			t.Errorf("help is missing section %q", s.title)
		}
		for _, b := range s.bindings {
			if desc := b.Help().Desc; !strings.Contains(content, desc) {
				t.Errorf("help is missing %q", desc)
			}
		}
	}
}
