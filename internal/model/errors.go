package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an entity id does not exist in the store.
var ErrNotFound = errors.New("not found")

// ValidationError indicates a request failed a domain rule, such as a
// missing required field. It is surfaced to clients as a 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidation reports whether err (or any error in its chain) is a
// ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
