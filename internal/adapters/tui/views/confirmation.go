package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dsaudit/internal/adapters/tui/styles"
)

type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel is an inline yes/no prompt. While Active, it takes
// every key press.
type ConfirmationModel struct {
	Question string
	Active   bool
	Keys     ConfirmKeyMap

	onConfirm func() tea.Msg
}

func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// Ask activates the prompt; onConfirm produces the message sent on "y"
func (m *ConfirmationModel) Ask(question string, onConfirm func() tea.Msg) {
	m.Question = question
	m.Active = true
	m.onConfirm = onConfirm
}

// HandleKeyMsg processes key messages while the prompt is active.
// Other keys are swallowed so the view underneath does not react.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	confirmed := key.Matches(msg, m.Keys.Confirm)
	if !confirmed && !key.Matches(msg, m.Keys.Cancel) {
		return nil
	}
	m.Active = false
	if confirmed && m.onConfirm != nil {
		return m.onConfirm
	}
	return nil
}

// View renders the prompt, or nothing when inactive
func (m ConfirmationModel) View() string {
	if !m.Active {
		return ""
	}
	return RenderConfirmPrompt(m.Question)
}

// RenderConfirmPrompt renders "question y to confirm, n to cancel"
func RenderConfirmPrompt(question string) string {
	return strings.Join([]string{
		styles.Marker.Render(question),
		styles.HelpKey.Render("y") + styles.HelpDesc.Render(" to confirm,"),
		styles.HelpKey.Render("n") + styles.HelpDesc.Render(" to cancel"),
	}, " ")
}
