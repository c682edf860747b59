// Package terminal provides the line-oriented input and output helpers
// shared by the menu and its handlers.
//
// Every prompt consumes exactly one line of input. A line that fails to
// parse is therefore already discarded by the time the error is
// reported, and the next prompt starts on fresh input.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aanand-mishra/result-manager/internal/types"
)

// MaxLineLength is the longest input line accepted at a prompt.
const MaxLineLength = 64 * 1024

// ErrLineTooLong is returned for a line longer than MaxLineLength. The
// whole line has been consumed by then, so the next read starts fresh.
var ErrLineTooLong = errors.New("input line too long")

// Terminal owns the input reader and output writer for one session.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// New wraps the given input and output streams.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// ParseError reports input that should have been a number.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid number %q", e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Println writes the operands followed by a newline.
func (t *Terminal) Println(a ...any) {
	fmt.Fprintln(t.out, a...)
}

// Printf writes formatted output without adding a newline.
func (t *Terminal) Printf(format string, a ...any) {
	fmt.Fprintf(t.out, format, a...)
}

// ReadLine prints prompt and returns the next input line without its
// line terminator. It returns io.EOF once the input is exhausted and
// ErrLineTooLong for an oversized line.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	t.Printf("%s", prompt)

	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readLine reads up to and including the next '\n'. Past MaxLineLength
// the bytes are dropped but still consumed. A final line without '\n'
// is returned as a normal line.
func (t *Terminal) readLine() (string, error) {
	var (
		buf     []byte
		read    bool
		tooLong bool
	)
	for {
		chunk, err := t.in.ReadSlice('\n')
		if len(chunk) > 0 {
			read = true
		}
		if !tooLong {
			buf = append(buf, chunk...)
			if len(buf) > MaxLineLength {
				tooLong = true
				buf = nil
			}
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if !read {
				return "", io.EOF
			}
		case err != nil:
			return "", fmt.Errorf("ReadLine: %w", err)
		}

		if tooLong {
			return "", ErrLineTooLong
		}
		return string(buf), nil
	}
}

// ReadInt prints prompt and parses the next line as a decimal integer.
// Surrounding whitespace is ignored. A non-numeric or oversized line
// yields a *ParseError.
func (t *Terminal) ReadInt(prompt string) (int, error) {
	line, err := t.ReadLine(prompt)
	if errors.Is(err, ErrLineTooLong) {
		return 0, &ParseError{Err: err}
	}
	if err != nil {
		return 0, err
	}

	input := strings.TrimSpace(line)
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, &ParseError{Input: input, Err: err}
	}
	return n, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// WriteStudent prints the labelled result block for a student:
//
//	----- Student Result -----
//	Roll Number: 1
//	Name: Alice
//	Marks: 80, 70, 90
//	Average: 80.00
//	Result: Pass
//
// ─────────────────────────────────────────────────────────────────────────────
func (t *Terminal) WriteStudent(s types.Student) {
	marks := s.Marks()
	parts := make([]string, len(marks))
	for i, m := range marks {
		parts[i] = strconv.Itoa(m)
	}

	t.Println()
	t.Println("----- Student Result -----")
	t.Printf("Roll Number: %d\n", s.RollNumber())
	t.Printf("Name: %s\n", s.Name())
	t.Printf("Marks: %s\n", strings.Join(parts, ", "))
	t.Printf("Average: %.2f\n", s.Average())
	t.Printf("Result: %s\n", s.Status())
}

// WriteError prints "Error: <message>".
func (t *Terminal) WriteError(err error) {
	t.Printf("Error: %s\n", err.Error())
}
