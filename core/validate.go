package core

import (
	"fmt"
	"strings"
)

// RequiredAddColumns are the add-form fields that must be filled before a
// new record is accepted. The HTTP layer enforces the same set via binding
// tags; this check covers non-HTTP callers (lambda, tests, imports).
var RequiredAddColumns = []string{ColNome, ColUnidade, ColSetor, ColRealizacao}

type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// ValidateNewRow rejects a new record when any required field is blank.
// No store access happens on rejection.
func ValidateNewRow(r Row) error {
	var missing []string
	for _, col := range RequiredAddColumns {
		c := r.Get(col)
		if strings.TrimSpace(c.Text) == "" && c.Date == nil {
			missing = append(missing, col)
		}
	}
	if missing != nil {
		return &ValidationError{Missing: missing}
	}
	return nil
}
