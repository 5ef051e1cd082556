package matchlog

import (
	"errors"
	"fmt"
)

// CorruptLogError means the log bytes cannot describe a valid set, usually
// because of a torn write. The log is never repaired automatically.
type CorruptLogError struct {
	// Record is the index of the offending int32 record after the header, -1 inside the header
	Record int
	Reason string
	Err    error
}

func (e *CorruptLogError) Error() string {
	msg := fmt.Sprintf("corrupt match log at record %d: %s", e.Record, e.Reason)
	if e.Record < 0 {
		msg = fmt.Sprintf("corrupt match log header: %s", e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CorruptLogError) Unwrap() error {
	return e.Err
}

func IsCorrupt(err error) bool {
	var target *CorruptLogError
	return errors.As(err, &target)
}

// LogIOError wraps a failure of the storage underneath the log.
type LogIOError struct {
	Op   string
	Path string
	Err  error
	// Torn is set when a failed append could not be rolled back, so the
	// record may already be in the file
	Torn bool
}

func (e *LogIOError) Error() string {
	return fmt.Sprintf("match log %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LogIOError) Unwrap() error {
	return e.Err
}

func IsIO(err error) bool {
	var target *LogIOError
	return errors.As(err, &target)
}

// IsTorn reports whether err is an append that may have left its record
// in the log. Retrying such an append could write the record twice.
func IsTorn(err error) bool {
	var target *LogIOError
	return errors.As(err, &target) && target.Torn
}
