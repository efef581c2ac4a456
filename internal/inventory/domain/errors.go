package domain

import (
	"errors"
	"strings"
)

var (
	ErrFieldNameRequired     = errors.New("field name is required")
	ErrInvalidFieldType      = errors.New("invalid field type")
	ErrSelectOptionsRequired = errors.New("select field requires options")
	ErrOwnerRequired         = errors.New("record owner is required")
)

// ValidationError carries the full batch of human-readable violation
// messages for a single create or update attempt.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}
