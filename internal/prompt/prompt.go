// Package prompt reads interactive answers from the user.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Reader prints questions to out and reads one line answers from in.
type Reader struct {
	in  *bufio.Reader
	fd  int // terminal file descriptor, -1 if in is not a terminal
	out io.Writer
}

// NewReader wraps in. If in is a terminal, secrets are read without echo.
func NewReader(in io.Reader, out io.Writer) *Reader {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Reader{in: bufio.NewReader(in), fd: fd, out: out}
}

// Line prints question and returns the answer without its line ending.
// A final line without a newline is returned; io.EOF is returned only when
// nothing was read.
func (r *Reader) Line(question string) (string, error) {
	fmt.Fprint(r.out, question)

	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

// Secret is like Line but does not echo the answer on a terminal.
func (r *Reader) Secret(question string) (string, error) {
	if r.fd < 0 {
		return r.Line(question)
	}

	fmt.Fprint(r.out, question)
	b, err := term.ReadPassword(r.fd)
	fmt.Fprintln(r.out)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return string(b), nil
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
