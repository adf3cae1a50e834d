package io

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Tape provides line buffered console I/O over an io.Reader and an io.Writer.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	source  io.Reader
	reader  *bufio.Reader
	pending bool // Set while the line of the last Receive is unread.
}

// in returns the buffered reader for Input, replacing it if Input changed.
func (tc *Tape) in() *bufio.Reader {
	if tc.reader == nil || tc.source != tc.Input {
		tc.source = tc.Input
		tc.reader = bufio.NewReader(tc.Input)
	}

	return tc.reader
}

// Receive reads the next whitespace delimited signed integer.
func (tc *Tape) Receive() (value int32, err error) {
	if tc.Input == nil {
		err = ErrInputExhausted
		return
	}

	_, err = fmt.Fscan(tc.in(), &value)
	switch {
	case err == nil:
		tc.pending = true
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		err = ErrInputExhausted
	default:
		tc.discardLine()
		err = fmt.Errorf("%w: %w", ErrInputInvalid, err)
	}

	return
}

// Send writes text to the output.
func (tc *Tape) Send(text string) (err error) {
	if tc.Output == nil {
		err = ErrOutputMissing
		return
	}

	_, err = io.WriteString(tc.Output, text)
	return
}

// Readline reads the next whole input line, without its line ending.
// A final line with no newline is still returned.
func (tc *Tape) Readline() (line string, err error) {
	if tc.Input == nil {
		err = ErrInputExhausted
		return
	}

	tc.pending = false

	line, err = tc.in().ReadString('\n')
	if errors.Is(err, io.EOF) && len(line) > 0 {
		err = nil
	}
	line = strings.TrimRight(line, "\r\n")

	return
}

// Discard drops the buffered remainder of the line the last Receive read
// from. It never blocks waiting for more input, and does nothing once that
// line has been consumed.
func (tc *Tape) Discard() {
	if !tc.pending {
		return
	}

	tc.discardLine()
}

func (tc *Tape) discardLine() {
	tc.pending = false

	if tc.reader == nil {
		return
	}

	n := tc.reader.Buffered()
	if n == 0 {
		return
	}

	pending, _ := tc.reader.Peek(n)
	if eol := bytes.IndexByte(pending, '\n'); eol >= 0 {
		n = eol + 1
	}
	tc.reader.Discard(n)
}
