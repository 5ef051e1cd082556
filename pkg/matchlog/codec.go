package matchlog

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cbodonnell/lastone/pkg/game/constants"
)

// Layout, every integer a little-endian int32:
//
//	player_count
//	best_of
//	pile_size
//	ai_difficulty        -1 when there is no AI
//	player_name * player_count (uvarint byte length + UTF-8)
//	first_turn           repeated per match until EOF
//	move ...             until the moves sum to pile_size
//
// Strings use the same 7-bit length prefix as .NET's BinaryWriter, so logs
// written by the desktop game can be resumed.

const (
	maxPlayers    = 1024
	maxNameLength = 1 << 16
)

// Header is the set configuration written once at the start of the log.
type Header struct {
	BestOf       int
	PileSize     int
	AIDifficulty int
	Names        []string
}

func (h Header) PlayerCount() int {
	return len(h.Names)
}

func (h Header) Validate() error {
	if len(h.Names) < constants.MinPlayers || len(h.Names) > maxPlayers {
		return fmt.Errorf("player count %d out of range", len(h.Names))
	}
	if h.BestOf < 1 {
		return fmt.Errorf("best of must be positive, got %d", h.BestOf)
	}
	if h.PileSize < 1 {
		return fmt.Errorf("pile size must be positive, got %d", h.PileSize)
	}
	for i, name := range h.Names {
		if len(name) > maxNameLength {
			return fmt.Errorf("name of player %d is too long", i)
		}
	}
	return nil
}

// EncodeHeader writes the header and player names.
func EncodeHeader(w io.Writer, h Header) error {
	if err := h.Validate(); err != nil {
		return fmt.Errorf("invalid header: %w", err)
	}
	for _, v := range []int{len(h.Names), h.BestOf, h.PileSize, h.AIDifficulty} {
		if err := writeInt32(w, v); err != nil {
			return err
		}
	}
	for _, name := range h.Names {
		if err := writeString(w, name); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes a complete log: the header followed by each match record.
func Encode(w io.Writer, h Header, matches []MatchRecord) error {
	if err := EncodeHeader(w, h); err != nil {
		return err
	}
	for _, m := range matches {
		if err := writeInt32(w, m.FirstTurn); err != nil {
			return err
		}
		for _, move := range m.Moves {
			if err := writeInt32(w, move); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeInt32(w io.Writer, v int) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(int32(v)))
	if _, err := w.Write(b[:]); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	b := binary.AppendUvarint(nil, uint64(len(s)))
	b = append(b, s...)
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("failed to write string: %w", err)
	}
	return nil
}

// readInt32 returns io.EOF only when no byte of the record was present.
func readInt32(r io.Reader) (int, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return int(int32(binary.LittleEndian.Uint32(b[:]))), nil
}

func readString(r *bufio.Reader) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return "", err
	}
	if n > maxNameLength {
		return "", fmt.Errorf("string length %d too large", n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeHeader(r *bufio.Reader) (Header, error) {
	var fields [4]int
	for i := range fields {
		v, err := readInt32(r)
		if err != nil {
			return Header{}, classify(-1, "truncated header", err)
		}
		fields[i] = v
	}

	playerCount := fields[0]
	if playerCount < constants.MinPlayers || playerCount > maxPlayers {
		return Header{}, &CorruptLogError{Record: -1, Reason: fmt.Sprintf("player count %d out of range", playerCount)}
	}

	h := Header{
		BestOf:       fields[1],
		PileSize:     fields[2],
		AIDifficulty: fields[3],
		Names:        make([]string, 0, playerCount),
	}
	for i := 0; i < playerCount; i++ {
		name, err := readString(r)
		if err != nil {
			return Header{}, classify(-1, fmt.Sprintf("unreadable name of player %d", i), err)
		}
		h.Names = append(h.Names, name)
	}

	if err := h.Validate(); err != nil {
		return Header{}, &CorruptLogError{Record: -1, Reason: err.Error()}
	}
	return h, nil
}

// classify turns a decode failure into a LogIOError when the reader itself
// failed and into a CorruptLogError otherwise.
func classify(record int, reason string, err error) error {
	var readErr *readError
	if errors.As(err, &readErr) {
		return &LogIOError{Op: "read", Err: readErr.err}
	}
	return &CorruptLogError{Record: record, Reason: reason, Err: err}
}

// readError marks errors returned by the underlying reader.
type readError struct {
	err error
}

func (e *readError) Error() string {
	return e.err.Error()
}

func (e *readError) Unwrap() error {
	return e.err
}

// sourceReader tags failures of the wrapped reader so they are reported as
// LogIOError instead of corruption.
type sourceReader struct {
	r io.Reader
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		return n, &readError{err: err}
	}
	return n, err
}
