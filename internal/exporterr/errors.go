package exporterr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImplemented is returned by specifications that resolve but cannot generate yet.
	ErrNotImplemented = errors.New("metadata specification not implemented")
	// ErrInternal wraps writer and encoding failures.
	ErrInternal = errors.New("internal error")
)

// InvalidSpecificationError is returned when a specification name is unknown.
type InvalidSpecificationError struct {
	Name string
}

func (e *InvalidSpecificationError) Error() string {
	return fmt.Sprintf("Invalid metadata specification: %s", e.Name)
}

// IncompleteRecordError is returned when a work fails a specification's
// eligibility rules.
type IncompleteRecordError struct {
	Specification string
	Reason        string
}

func (e *IncompleteRecordError) Error() string {
	return fmt.Sprintf("Could not generate %s: %s", e.Specification, e.Reason)
}

// Incomplete builds an IncompleteRecordError.
func Incomplete(specification, reason string) error {
	return &IncompleteRecordError{Specification: specification, Reason: reason}
}

// Internal wraps err with a fixed diagnostic message.
func Internal(msg string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}
