package network

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/biodiv/climate"
)

// ErrorKind classifies a propagation failure.
type ErrorKind int

const (
	// InvalidInput means a field was missing, unknown or non-finite.
	InvalidInput ErrorKind = iota + 1
	// ShapeMismatch means a weight matrix disagrees with the declared layer sizes.
	ShapeMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case ShapeMismatch:
		return "ShapeMismatch"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is matching on the kind.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrShapeMismatch = errors.New("shape mismatch")
)

// PropagationError is returned for every engine failure. Field is set for
// InvalidInput, Matrix for ShapeMismatch.
type PropagationError struct {
	Kind   ErrorKind
	Field  string
	Matrix string
	Err    error
}

func (e *PropagationError) Error() string {
	switch e.Kind {
	case InvalidInput:
		return fmt.Sprintf("invalid input: field %s: %v", e.Field, e.Err)
	case ShapeMismatch:
		return fmt.Sprintf("shape mismatch: matrix %s: %v", e.Matrix, e.Err)
	default:
		return fmt.Sprintf("propagation failed: %v", e.Err)
	}
}

func (e *PropagationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *PropagationError) Is(target error) bool {
	switch e.Kind {
	case InvalidInput:
		return target == ErrInvalidInput
	case ShapeMismatch:
		return target == ErrShapeMismatch
	}
	return false
}

func inputError(field string, err error) *PropagationError {
	return &PropagationError{Kind: InvalidInput, Field: field, Err: err}
}

func shapeError(matrix string, err error) *PropagationError {
	return &PropagationError{Kind: ShapeMismatch, Matrix: matrix, Err: err}
}

// fromFieldError converts a climate decoding error into InvalidInput.
func fromFieldError(err error) *PropagationError {
	var fe *climate.FieldError
	if errors.As(err, &fe) {
		return inputError(fe.Field, errors.New(fe.Reason))
	}
	return inputError("unknown", err)
}
