package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Precondition errors
	ErrNoData       = errors.New("no data loaded")
	ErrEmptyDataset = errors.New("dataset is empty")

	// Not found errors
	ErrColumnNotFound = errors.New("column not found")

	// Type errors
	ErrColumnNotNumeric = errors.New("column is not numeric")
	ErrColumnNotTime    = errors.New("column is not temporal")

	// Unsupported option errors
	ErrUnsupportedFormat   = errors.New("unsupported file format")
	ErrUnsupportedStrategy = errors.New("unsupported missing-value strategy")
	ErrUnsupportedMethod   = errors.New("unsupported method")
	ErrUnsupportedPlot     = errors.New("unsupported plot type")
)

// Error constructors with context
func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}

func NewNotNumericError(column string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotNumeric, column)
}

func NewUnsupportedFormatError(ext string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

func NewUnsupportedMethodError(method string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrColumnNotFound)
}

func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrNoData) || errors.Is(err, ErrEmptyDataset)
}

func IsUnsupportedOptionError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrUnsupportedStrategy) ||
		errors.Is(err, ErrUnsupportedMethod) ||
		errors.Is(err, ErrUnsupportedPlot)
}
