package utils

import (
	"errors"
	"strings"
)

// CombineErrors combines errors into a single error with a multiline message, nil errors are ignored.
// The result is nil if there is no non-nil error.
func CombineErrors(errs ...error) error {
	var lines []string

	for _, err := range errs {
		if err != nil {
			lines = append(lines, err.Error())
		}
	}

	if len(lines) == 0 {
		return nil
	}

	return errors.New(strings.Join(lines, "\n"))
}
