// Package fileutil provides atomic file writes: content goes to a temp file
// in the target directory and is renamed into place, so readers never see a
// partial report or config.
package fileutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/thoreinstein/qgate/internal/errors"
)

// TempPattern names the temp files AtomicWrite creates next to the target,
// in os.CreateTemp and filepath.Match syntax.
const TempPattern = ".qgate-atomic-*.tmp"

// AtomicWrite streams the output of write into path atomically. If write
// fails, path is left untouched. The parent directory must exist.
func AtomicWrite(path string, perm os.FileMode, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), TempPattern)
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmpName)
		}
	}()

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "renaming temp file to %s", path)
	}
	renamed = true
	return nil
}

// AtomicWriteFile writes data to path atomically with perm.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	return AtomicWrite(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return errors.Wrap(err, "writing temp file")
	})
}
