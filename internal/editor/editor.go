// Package editor launches the user's preferred text editor.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/qgate/internal/errors"
)

// Streams are the terminal streams handed to the editor.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Open launches the user's preferred editor on path and waits for it to
// exit. $EDITOR and $VISUAL may include arguments, as in "code --wait".
func Open(ctx context.Context, path string, s Streams) error {
	argv := append(Command(), path)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = s.In
	cmd.Stdout = s.Out
	cmd.Stderr = s.Err

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", argv[0])
	}
	return nil
}

// Command returns the editor argv to use. Fallback chain:
// $EDITOR, $VISUAL, nano, vi.
func Command() []string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return []string{"nano"}
	}
	return []string{"vi"}
}
