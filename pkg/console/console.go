package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// ErrClosed is returned once the input has no more lines
var ErrClosed = errors.New("input closed")

type Style int

const (
	StylePlain Style = iota
	StyleError
	StyleInfo
	StyleNotice
	StyleHighlight
	StyleMuted
	StyleToken
	StyleTokenHead
)

// ANSI foreground colours matching the desktop game's palette.
var styleCodes = map[Style]string{
	StyleError:     "\033[31m",
	StyleInfo:      "\033[32m",
	StyleNotice:    "\033[34m",
	StyleHighlight: "\033[35m",
	StyleMuted:     "\033[90m",
	StyleToken:     "\033[33m",
	StyleTokenHead: "\033[31m",
}

const styleReset = "\033[0m"

// Console reads prompts from in and writes styled text to out.
type Console struct {
	reader *bufio.Reader
	out    io.Writer
	color  bool
	lock   sync.Mutex
}

type NewConsoleOptions struct {
	In  io.Reader
	Out io.Writer
	// Color enables ANSI escape codes
	Color bool
}

func NewConsole(opts NewConsoleOptions) *Console {
	return &Console{
		reader: bufio.NewReader(opts.In),
		out:    opts.Out,
		color:  opts.Color,
	}
}

// Emit writes text in the given style.
func (c *Console) Emit(text string, style Style) {
	c.lock.Lock()
	defer c.lock.Unlock()
	code, ok := styleCodes[style]
	if !c.color || !ok {
		fmt.Fprint(c.out, text)
		return
	}
	fmt.Fprint(c.out, code+text+styleReset)
}

// PromptString prints message until a non-empty line is entered.
func (c *Console) PromptString(message string) (string, error) {
	for {
		c.Emit(message, StylePlain)
		line, err := c.readLine()
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

// PromptInt prints message until a line parses as an integer.
func (c *Console) PromptInt(message string) (int, error) {
	for {
		c.Emit(message, StylePlain)
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(line)
		if err == nil {
			return v, nil
		}
	}
}

func (c *Console) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrClosed
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// RenderPile draws the pile as matchsticks: a row of heads over three rows of sticks.
func (c *Console) RenderPile(remaining int) {
	if remaining <= 0 {
		return
	}
	c.Emit(strings.Repeat("0 ", remaining)+"\n", StyleTokenHead)
	for row := 0; row < 3; row++ {
		c.Emit(strings.Repeat("| ", remaining)+"\n", StyleToken)
	}
}
