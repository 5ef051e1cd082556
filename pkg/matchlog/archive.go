package matchlog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cbodonnell/lastone/pkg/log"
	"github.com/klauspost/compress/zstd"
)

// Export writes a zstd compressed copy of the log to w.
func (l *Log) Export(w io.Writer) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	b, err := os.ReadFile(l.path)
	if err != nil {
		return &LogIOError{Op: "export", Path: l.path, Err: err}
	}

	compWriter, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		compWriter.Close()
		return fmt.Errorf("failed to compress match log: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %v", err)
	}

	log.Debug("Exported %d bytes from %s", len(b), l.path)
	return nil
}

// Import replaces the log with a compressed archive produced by Export.
// The archive is decoded first, so a corrupt archive never replaces the log.
func (l *Log) Import(r io.Reader) (*Replay, error) {
	compReader, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()

	b, err := io.ReadAll(compReader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress match log: %v", err)
	}

	replay, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(l.path), filepath.Base(l.path)+".import-*")
	if err != nil {
		return nil, &LogIOError{Op: "import", Path: l.path, Err: err}
	}
	if err := writeAndClose(tmp, b); err != nil {
		os.Remove(tmp.Name())
		return nil, &LogIOError{Op: "import", Path: l.path, Err: err}
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		os.Remove(tmp.Name())
		return nil, &LogIOError{Op: "import", Path: l.path, Err: err}
	}

	log.Debug("Imported %d bytes into %s", len(b), l.path)
	return replay, nil
}
