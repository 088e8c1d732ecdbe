package editor

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when neither $VISUAL, $EDITOR nor a fallback
// editor is available
var ErrNoEditor = errors.New("no editor found: set $EDITOR")

var fallbackEditors = []string{"nvim", "vim", "vi", "nano"}

// Opener implements ports.EditorOpener
type Opener struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

// NewOpener creates an opener reading the process environment
func NewOpener() *Opener {
	return &Opener{getenv: os.Getenv, lookPath: exec.LookPath}
}

// Command returns the editor command for path. $VISUAL wins over $EDITOR
// and either may carry arguments, e.g. "code --wait".
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv, err := o.editor()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func (o *Opener) editor() ([]string, error) {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(o.getenv(env)); len(fields) > 0 {
			return fields, nil
		}
	}
	for _, name := range fallbackEditors {
		if path, err := o.lookPath(name); err == nil {
			return []string{path}, nil
		}
	}
	return nil, ErrNoEditor
}
