package csvwriter

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// AtomicWriter writes comma separated rows into a temporary file next to the destination.
// The destination is only replaced once [Commit] succeeds, so readers never observe a partially written file.
type AtomicWriter struct {
	path   string
	file   *os.File
	gzip   *gzip.Writer
	writer *csv.Writer
	closed bool
}

// DefaultFileMode is applied to new files. An existing destination keeps its own mode.
const DefaultFileMode os.FileMode = 0o644

func destinationMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}

	return DefaultFileMode
}

// NewAtomicWriter creates the temporary file for [path]. A ".gz" suffix enables gzip compression.
func NewAtomicWriter(path string) (*AtomicWriter, error) {
	file, err := os.CreateTemp(filepath.Dir(path), fmt.Sprintf(".%s.*.tmp", filepath.Base(path)))
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}

	// CreateTemp always uses 0600.
	if err = file.Chmod(destinationMode(path)); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return nil, fmt.Errorf("failed to set file mode: %w", err)
	}

	var out io.Writer = file
	var gzipWriter *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gzipWriter = gzip.NewWriter(file)
		out = gzipWriter
	}

	return &AtomicWriter{
		path:   path,
		file:   file,
		gzip:   gzipWriter,
		writer: csv.NewWriter(out),
	}, nil
}

func (a *AtomicWriter) Write(row []string) error {
	return a.writer.Write(row)
}

func (a *AtomicWriter) Flush() error {
	a.writer.Flush()
	return a.writer.Error()
}

// TempFileName returns the name of the in-progress file.
func (a *AtomicWriter) TempFileName() string {
	return a.file.Name()
}

func (a *AtomicWriter) close() error {
	if a.closed {
		return fmt.Errorf("writer is already closed")
	}

	a.closed = true
	if err := a.Flush(); err != nil {
		// Still attempt to release the file handle.
		return errors.Join(err, a.closeFile())
	}

	return a.closeFile()
}

func (a *AtomicWriter) closeFile() error {
	if a.gzip != nil {
		if err := a.gzip.Close(); err != nil {
			_ = a.file.Close()
			return err
		}
	}

	if err := a.file.Sync(); err != nil {
		_ = a.file.Close()
		return err
	}

	return a.file.Close()
}

// Commit flushes everything to disk and renames the temporary file over the destination.
// On failure the temporary file is removed and the destination is left as it was.
func (a *AtomicWriter) Commit() error {
	if err := a.close(); err != nil {
		_ = os.Remove(a.file.Name())
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(a.file.Name(), a.path); err != nil {
		_ = os.Remove(a.file.Name())
		return fmt.Errorf("failed to move temporary file into place: %w", err)
	}

	return nil
}

// Abort discards the temporary file. It is safe to call after [Commit].
func (a *AtomicWriter) Abort() error {
	if !a.closed {
		_ = a.close()
	}

	if err := os.Remove(a.file.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}
