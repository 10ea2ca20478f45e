package bank

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoQuestions = errors.New("bank has no usable questions")

// FormatError reports a bank file whose content does not match the
// expected layout, as opposed to a file that could not be read at all.
type FormatError struct {
	Path    string
	Missing []string
	Reason  string
}

func (e *FormatError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("invalid bank format in %s: missing columns %s",
			e.Path, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("invalid bank format in %s: %s", e.Path, e.Reason)
}
