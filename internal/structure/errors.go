package structure

import (
	"errors"
	"fmt"
)

// ErrCapacity is returned by New when the requested capacity falls
// outside the supported 4-16 range.
var ErrCapacity = errors.New("capacity must be between 4 and 16")

// OpErrorCode categorizes operation failures.
//
// There are exactly two recoverable failure kinds: insertion against a
// full structure (per the variant-specific fullness rule) and removal
// against an empty one. Both leave state unchanged.
type OpErrorCode string

const (
	// CodeOverflow indicates an insertion was attempted while the
	// structure reported full.
	CodeOverflow OpErrorCode = "OVERFLOW"

	// CodeUnderflow indicates a removal was attempted while the
	// structure reported empty.
	CodeUnderflow OpErrorCode = "UNDERFLOW"
)

// OpError is a failed structural operation. It carries the variant kind
// for diagnostics; the structure it came from is guaranteed unchanged.
type OpError struct {
	Code    OpErrorCode
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsOverflow reports whether err is an overflow failure.
// Uses errors.As to handle wrapped errors.
func IsOverflow(err error) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == CodeOverflow
	}
	return false
}

// IsUnderflow reports whether err is an underflow failure.
// Uses errors.As to handle wrapped errors.
func IsUnderflow(err error) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == CodeUnderflow
	}
	return false
}

func overflowError(kind Kind, format string, args ...any) *OpError {
	return &OpError{Code: CodeOverflow, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func underflowError(kind Kind, format string, args ...any) *OpError {
	return &OpError{Code: CodeUnderflow, Kind: kind, Message: fmt.Sprintf(format, args...)}
}
