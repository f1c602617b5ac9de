// Package clipboard copies text to the system clipboard via shell commands.
package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrClipboardUnavailable is returned when no clipboard command is installed.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// IsAvailable reports whether a clipboard command exists on this system.
func IsAvailable() bool {
	_, err := command(runtime.GOOS, exec.LookPath)
	return err == nil
}

// Copy copies text to the system clipboard.
func Copy(text string) error {
	cmd, err := command(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// command picks the clipboard writer for an OS: pbcopy on macOS, then
// wl-copy, xclip or xsel on Linux and the BSDs.
func command(goos string, lookPath func(string) (string, error)) (*exec.Cmd, error) {
	candidates := map[string][][]string{
		"darwin": {{"pbcopy"}},
		"linux": {
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		},
	}
	candidates["freebsd"] = candidates["linux"]
	candidates["openbsd"] = candidates["linux"]

	for _, argv := range candidates[goos] {
		if _, err := lookPath(argv[0]); err == nil {
			return exec.Command(argv[0], argv[1:]...), nil
		}
	}
	return nil, ErrClipboardUnavailable
}
