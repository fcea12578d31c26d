package clipboard

import (
	"errors"
	"os/exec"
	"reflect"
	"testing"
)

func withTools(t *testing.T, tools ...string) {
	t.Helper()
	installed := make(map[string]bool, len(tools))
	for _, tool := range tools {
		installed[tool] = true
	}

	orig := lookPath
	lookPath = func(file string) (string, error) {
		if installed[file] {
			return "/usr/bin/" + file, nil
		}
		return "", exec.ErrNotFound
	}
	t.Cleanup(func() { lookPath = orig })
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		tools    []string
		wantName string
		wantArgs []string
		wantErr  error
	}{
		{"darwin", "darwin", []string{"pbcopy"}, "pbcopy", nil, nil},
		{"darwin without pbcopy", "darwin", nil, "", nil, ErrUnavailable},
		{"windows", "windows", nil, "cmd", []string{"/c", "clip"}, nil},
		{"wayland first", "linux", []string{"wl-copy", "xclip"}, "wl-copy", nil, nil},
		{"xclip", "linux", []string{"xclip", "xsel"}, "xclip", []string{"-selection", "clipboard"}, nil},
		{"xsel fallback", "freebsd", []string{"xsel"}, "xsel", []string{"--clipboard", "--input"}, nil},
		{"nothing installed", "linux", nil, "", nil, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withTools(t, tt.tools...)

			name, args, err := command(tt.goos)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err %v, want %v", err, tt.wantErr)
			}
			if name != tt.wantName || !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("command = %q %v, want %q %v", name, args, tt.wantName, tt.wantArgs)
			}
		})
	}
}
