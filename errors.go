package telescope

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain indicates a formula precondition was violated
	// (non-positive input, negative radicand, ...).
	ErrDomain = errors.New("telescope: value outside formula domain")

	// ErrUninitialized indicates a quantity was read before its governing
	// state was set.
	ErrUninitialized = errors.New("telescope: state not set")

	// ErrNotMatched indicates a metric that is only valid for a matched
	// configuration was requested on an unmatched one.
	ErrNotMatched = errors.New("telescope: configuration not matched")

	// ErrConfiguration indicates contradictory or incomplete construction inputs.
	ErrConfiguration = errors.New("telescope: invalid configuration")
)

// QuantityError attaches the failing operation and quantity to one of the
// sentinel errors above.
type QuantityError struct {
	Op       string  // Operation that failed (e.g. "SetDensity")
	Quantity string  // Quantity involved (e.g. "np_cm3")
	Value    float64 // Offending value, if any
	Err      error   // Sentinel
}

func (e *QuantityError) Error() string {
	return fmt.Sprintf("%s: %s=%g: %v", e.Op, e.Quantity, e.Value, e.Err)
}

func (e *QuantityError) Unwrap() error {
	return e.Err
}

func domainError(op, quantity string, value float64) error {
	return &QuantityError{Op: op, Quantity: quantity, Value: value, Err: ErrDomain}
}

func unsetError(op, state string) error {
	return fmt.Errorf("%s: %s: %w", op, state, ErrUninitialized)
}
