package matchlog

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/cbodonnell/lastone/pkg/log"
)

// DefaultPath is the log file used when none is configured
const DefaultPath = "runninggame.dat"

// Log is the append-only record of the running set. Every append opens the
// file, writes a single record, syncs and closes it again, so a crash loses
// at most the record being written.
type Log struct {
	path     string
	lock     sync.Mutex
	openFile func(name string, flag int, perm os.FileMode) (logFile, error)
}

// logFile is the part of *os.File the log writes through.
type logFile interface {
	io.Writer
	Sync() error
	Close() error
	Stat() (fs.FileInfo, error)
	Truncate(size int64) error
}

func New(path string) *Log {
	return &Log{path: path, openFile: openOSFile}
}

func openOSFile(name string, flag int, perm os.FileMode) (logFile, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (l *Log) Path() string {
	return l.path
}

// Exists reports whether there is a log to resume from.
func (l *Log) Exists() bool {
	_, err := os.Stat(l.path)
	return err == nil
}

// WriteHeader starts a new set, replacing any previous log.
func (l *Log) WriteHeader(h Header) error {
	buf := &bytes.Buffer{}
	if err := EncodeHeader(buf, h); err != nil {
		return err
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	f, err := l.openFile(l.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return &LogIOError{Op: "create", Path: l.path, Err: err}
	}
	if err := writeAndClose(f, buf.Bytes()); err != nil {
		// a partial header would read back as a corrupt log
		if rmErr := os.Remove(l.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			log.Error("Failed to remove partial match log %s: %v", l.path, rmErr)
		}
		return &LogIOError{Op: "write header", Path: l.path, Err: err}
	}

	log.Debug("Wrote match log header to %s", l.path)
	return nil
}

// AppendFirstTurn starts a new match in the log.
func (l *Log) AppendFirstTurn(turn int) error {
	return l.appendRecord("append first turn", turn)
}

// AppendMove records the tokens taken by one move.
func (l *Log) AppendMove(count int) error {
	return l.appendRecord("append move", count)
}

func (l *Log) appendRecord(op string, v int) error {
	buf := &bytes.Buffer{}
	if err := writeInt32(buf, v); err != nil {
		return err
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	f, err := l.openFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return &LogIOError{Op: op, Path: l.path, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return &LogIOError{Op: op, Path: l.path, Err: err}
	}

	if err := writeAndSync(f, buf.Bytes()); err != nil {
		// roll back so a retry cannot leave the record in the log twice
		if truncErr := f.Truncate(info.Size()); truncErr != nil {
			log.Error("Failed to roll back %s to %d bytes: %v", l.path, info.Size(), truncErr)
			f.Close()
			return &LogIOError{Op: op, Path: l.path, Err: err, Torn: true}
		}
		f.Close()
		return &LogIOError{Op: op, Path: l.path, Err: err}
	}
	// the record is synced, a failed close does not undo it
	if err := f.Close(); err != nil {
		log.Warn("Failed to close %s after append: %v", l.path, err)
	}

	log.Trace("Appended %d to %s", v, l.path)
	return nil
}

// Replay decodes the log from the start.
func (l *Log) Replay() (*Replay, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		return nil, &LogIOError{Op: "open", Path: l.path, Err: err}
	}
	defer f.Close()

	replay, err := Decode(f)
	if err != nil {
		var ioErr *LogIOError
		if errors.As(err, &ioErr) && ioErr.Path == "" {
			ioErr.Path = l.path
		}
		return nil, err
	}
	return replay, nil
}

// IsNotExist reports whether err means there is no log file.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func writeAndSync(f logFile, b []byte) error {
	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}

func writeAndClose(f logFile, b []byte) error {
	if err := writeAndSync(f, b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
