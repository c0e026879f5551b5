package todo

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotANumber is returned by ParseNumber for non-numeric input.
var ErrNotANumber = errors.New("not a number")

// ParseNumber parses a task number typed by the user.
// Surrounding whitespace is ignored. Range is checked by MarkDone.
func ParseNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrNotANumber
	}
	return n, nil
}
