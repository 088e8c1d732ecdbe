package views

// ViewState is embedded by every view model: terminal size plus the one
// status message shown under the view.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage replaces the status message
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the status message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// PageSize returns how many list lines fit once reserved lines of header
// and footer are drawn. Before the first resize it returns fallback.
func (s *ViewState) PageSize(reserved, fallback int) int {
	if s.Height <= 0 {
		return fallback
	}
	return max(minPageSize, s.Height-reserved)
}

const minPageSize = 3
