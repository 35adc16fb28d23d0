// Package input reads interactive answers, such as delete confirmations,
// from the terminal or from canned answers in tests.
package input

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// Reader reads one line of user input.
type Reader interface {
	ReadString(delim byte) (string, error)
}

// LineReader reads lines from an io.Reader, os.Stdin by default.
type LineReader struct {
	reader *bufio.Reader
}

// NewStdinReader returns a LineReader on os.Stdin.
func NewStdinReader() *LineReader {
	return NewLineReader(os.Stdin)
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{reader: bufio.NewReader(r)}
}

func (r *LineReader) ReadString(delim byte) (string, error) {
	return r.reader.ReadString(delim)
}

// Answers replays a fixed list of answers, then io.EOF.
// Each answer should already carry its delimiter ("yes\n").
type Answers struct {
	lines []string
	next  int
}

// NewAnswers creates a Reader that returns lines in order.
func NewAnswers(lines ...string) *Answers {
	return &Answers{lines: lines}
}

func (a *Answers) ReadString(_ byte) (string, error) {
	if a.next >= len(a.lines) {
		return "", io.EOF
	}
	line := a.lines[a.next]
	a.next++
	return line, nil
}

// ReadLine reads one line and trims surrounding whitespace. A final line
// without a newline is still returned.
func ReadLine(r Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm reports whether the next line is "y" or "yes", case-insensitive.
// Read errors count as "no".
func Confirm(r Reader) bool {
	answer, err := ReadLine(r)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}
