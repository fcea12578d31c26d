// Package clipboard copies round summaries to the system clipboard.
package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard tool is installed.
var ErrUnavailable = errors.New("no clipboard tool found")

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// Write copies text to the system clipboard.
func Write(text string) error {
	name, args, err := command(runtime.GOOS)
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// Available checks if clipboard functionality is available.
func Available() bool {
	_, _, err := command(runtime.GOOS)
	return err == nil
}

// command picks the copy tool for goos.
func command(goos string) (string, []string, error) {
	switch goos {
	case "darwin":
		if _, err := lookPath("pbcopy"); err == nil {
			return "pbcopy", nil, nil
		}
	case "windows":
		// clip ships with Windows
		return "cmd", []string{"/c", "clip"}, nil
	default:
		candidates := []struct {
			name string
			args []string
		}{
			{"wl-copy", nil},
			{"xclip", []string{"-selection", "clipboard"}},
			{"xsel", []string{"--clipboard", "--input"}},
		}
		for _, c := range candidates {
			if _, err := lookPath(c.name); err == nil {
				return c.name, c.args, nil
			}
		}
	}
	return "", nil, ErrUnavailable
}
