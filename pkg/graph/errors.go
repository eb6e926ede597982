package graph

import (
	"errors"
	"fmt"

	"github.com/relgraph/relgraph/pkg/match"
)

// Common repository errors.
var (
	// ErrNotFound is returned when a requested id has no node.
	ErrNotFound = errors.New("node not found")
	// ErrValidation is returned for malformed selectors, operators,
	// node refs and relation directives. Keys that are not declared
	// relations are treated as value fields, not rejected.
	ErrValidation = errors.New("validation failed")
	// ErrNotImplemented is returned for operator keys outside the
	// recognised set.
	ErrNotImplemented = match.ErrNotImplemented
)

// ValidationError carries the offending path, the expected shape and the
// received value.
type ValidationError struct {
	Path     string
	Expected string
	Got      any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed at %q: expected %s, got %v", e.Path, e.Expected, e.Got)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func validationErr(path, expected string, got any) error {
	return &ValidationError{Path: path, Expected: expected, Got: got}
}

// wrapMatchErr attaches the query path to matcher errors and folds
// malformed-operator errors into the validation kind.
func wrapMatchErr(path string, err error) error {
	if errors.Is(err, match.ErrInvalidOperator) {
		return fmt.Errorf("%w at %q: %v", ErrValidation, path, err)
	}
	return fmt.Errorf("field %q: %w", path, err)
}
