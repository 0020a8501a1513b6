package protocol

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// LineReader splits a transport byte stream into lines.
//
// A Read that returns no data and no error is a transport read timeout; the
// reader keeps waiting. Any Read error, including io.EOF, ends the stream once
// the complete lines already received have been consumed.
type LineReader struct {
	r       io.Reader
	buf     []byte
	pending []byte
	err     error
}

// NewLineReader creates a LineReader over r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		r:   r,
		buf: make([]byte, DefaultReadBufferSize),
	}
}

// ReadLine returns the next line without its terminator and trailing
// whitespace. It blocks until a full line is available, the transport fails or
// ctx is done.
func (l *LineReader) ReadLine(ctx context.Context) (string, error) {
	for {
		if i := bytes.IndexByte(l.pending, LineTerminator); i >= 0 {
			line := string(l.pending[:i])
			l.pending = l.pending[i+1:]
			return strings.TrimRightFunc(line, unicode.IsSpace), nil
		}

		if l.err != nil {
			return "", l.err
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, err := l.r.Read(l.buf)
		l.pending = append(l.pending, l.buf[:n]...)
		if err != nil {
			l.err = fmt.Errorf("read response: %w", err)
		}
	}
}

// Discard drops any partially received data. Used after the device reboots,
// when nothing already buffered belongs to the new session.
func (l *LineReader) Discard() {
	l.pending = l.pending[:0]
}
