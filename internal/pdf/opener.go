// Package pdf inspects and opens the documents attached to papers.
package pdf

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Opener launches documents in the configured reader.
type Opener struct {
	reader string
}

// NewOpener creates an opener for the given reader name.
func NewOpener(reader string) *Opener {
	if reader == "" {
		reader = "system"
	}
	return &Opener{reader: reader}
}

// Open starts the reader on path without waiting for it to exit.
func (o *Opener) Open(path string) error {
	// Fail fast if file doesn't exist
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("document does not exist: %s", path)
		}
		return fmt.Errorf("checking document: %w", err)
	}

	cmd, err := o.command(runtime.GOOS, path)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// command returns the reader invocation for an OS.
func (o *Opener) command(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		switch o.reader {
		case "skim":
			return exec.Command("open", "-a", "Skim", path), nil
		default: // "system"
			return exec.Command("open", path), nil
		}
	case "linux", "freebsd", "openbsd":
		switch o.reader {
		case "zathura", "evince", "okular":
			return exec.Command(o.reader, path), nil
		default: // "system"
			return exec.Command("xdg-open", path), nil
		}
	}
	return nil, fmt.Errorf("unsupported platform: %s", goos)
}
