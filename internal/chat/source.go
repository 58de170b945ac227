package chat

import (
	"bufio"
	"io"
)

// InputSource yields one operator line per call.
type InputSource interface {
	// Next returns the next line. queued reports whether the line came from
	// the one-shot initial input rather than an interactive read, so the
	// session can echo it after the prompt. Exhaustion is io.EOF.
	Next() (line string, queued bool, err error)
}

// maxLineBytes bounds a single input line. Raw-mode bodies can be large;
// bufio.Scanner's 64KB default is far too small for them.
const maxLineBytes = 16 * 1024 * 1024

type lineSource struct {
	initial *string
	scanner *bufio.Scanner
}

// NewLineSource returns an InputSource that yields initial exactly once (when
// non-empty) and then falls back to blocking line reads from r.
func NewLineSource(r io.Reader, initial string) InputSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	src := &lineSource{scanner: scanner}
	if initial != "" {
		src.initial = &initial
	}
	return src
}

func (s *lineSource) Next() (string, bool, error) {
	if s.initial != nil {
		line := *s.initial
		s.initial = nil
		return line, true, nil
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", false, err
		}
		return "", false, io.EOF
	}
	return s.scanner.Text(), false, nil
}
