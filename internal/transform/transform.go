package transform

import (
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/domain"
)

// InputTransform is a composable "what if" edit of a tax input, used to build
// alternative profiles for comparison.
type InputTransform interface {
	// Apply returns a modified copy of base.
	Apply(base domain.TaxInput) (domain.TaxInput, error)

	// Name returns a short identifier (e.g. "set_80c").
	Name() string

	// Description returns a human-readable summary of the edit.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base domain.TaxInput) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one. The input is normalized first.
func ApplyTransforms(base domain.TaxInput, transforms []InputTransform) (domain.TaxInput, error) {
	current := base.Normalize()

	for i, transform := range transforms {
		if transform == nil {
			return domain.TaxInput{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.TaxInput{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.TaxInput{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next.Normalize()
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
