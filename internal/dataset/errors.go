package dataset

import (
	"fmt"
	"strings"
)

// ValidationError reports required columns absent from a dataset. Callers
// receive the exact missing-column list in requirement order.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Validate checks the frame against a required column set and returns a
// *ValidationError when any column is absent.
func Validate(f *Frame, required []string) error {
	if missing := f.MissingColumns(required); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
