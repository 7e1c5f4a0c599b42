package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// WriteFileAtomic writes a file through write in one step: the content goes
// to a temp file in the destination directory, which is flushed, synced,
// closed and renamed over path. On any error the temp file is removed and
// path is left as it was.
func WriteFileAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = tmp.Close()
		}
		if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
			logrus.Warnf("removing temp file %s: %v", tmpName, rmErr)
		}
	}()

	writer := bufio.NewWriter(tmp)
	if err = write(writer); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = writer.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming %s: %w", path, err)
	}

	logrus.Debugf("Successfully wrote to '%s'", path)
	return nil
}

// WriteBytesAtomic is WriteFileAtomic for content that is already built.
func WriteBytesAtomic(path string, data []byte) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
