package cli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/doeshing/saycalc/internal/ports"
)

// linuxClipboards are tried in order; Wayland first.
var linuxClipboards = [][]string{
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
}

// Clipboard implements ports.Clipboard using platform-specific tools.
type Clipboard struct {
	goos     string
	lookPath func(string) (string, error)
}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{goos: runtime.GOOS, lookPath: exec.LookPath}
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(ctx context.Context, text string) error {
	argv, err := c.command()
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func (c *Clipboard) command() ([]string, error) {
	switch c.goos {
	case "darwin":
		return []string{"pbcopy"}, nil
	case "windows":
		return []string{"clip"}, nil
	case "linux", "freebsd", "openbsd":
		for _, candidate := range linuxClipboards {
			if _, err := c.lookPath(candidate[0]); err == nil {
				return candidate, nil
			}
		}
		return nil, errors.New("clipboard utilities not found (wl-copy, xclip, xsel)")
	default:
		return nil, fmt.Errorf("clipboard not supported on %s", c.goos)
	}
}

var _ ports.Clipboard = (*Clipboard)(nil)
