package reports

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"aura/internal/fsutil"
)

// Sink delivers an export document somewhere. The filename is a suggestion;
// sinks that do not write files may ignore it.
type Sink interface {
	Deliver(filename string, data []byte) error
}

// FileSink writes exports into Dir, creating it if needed.
type FileSink struct {
	Dir string
}

// Path returns where Deliver writes filename.
func (s FileSink) Path(filename string) string {
	return filepath.Join(s.Dir, filepath.Base(filename))
}

// Deliver implements Sink.
func (s FileSink) Deliver(filename string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0700); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.Path(filename), data, 0600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// WriterSink writes exports to W.
type WriterSink struct {
	W io.Writer
}

// Deliver implements Sink.
func (s WriterSink) Deliver(_ string, data []byte) error {
	_, err := s.W.Write(data)
	return err
}
