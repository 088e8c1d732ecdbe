package ports

import "os/exec"

// EditorOpener builds the command that opens a file in the user's editor.
// The TUI hands the command to the terminal so the editor owns the screen
// until it exits.
type EditorOpener interface {
	Command(path string) (*exec.Cmd, error)
}
