package translation

import (
	"errors"
	"fmt"

	"horse.fit/textlens/internal/language"
)

var (
	ErrUnsupportedLanguagePair = errors.New("unsupported language pair")
	ErrCapabilityInvocation    = errors.New("translation capability failed")
	ErrBatchLengthMismatch     = errors.New("translation batch length mismatch")
)

// UnsupportedPairError reports a pair with no enabled capability.
type UnsupportedPairError struct {
	Pair language.Pair
}

func (e *UnsupportedPairError) Error() string {
	return fmt.Sprintf("translation from %q to %q is not supported", e.Pair.Source, e.Pair.Target)
}

func (e *UnsupportedPairError) Unwrap() error {
	return ErrUnsupportedLanguagePair
}

// CapabilityError wraps a failed capability call. It matches both
// ErrCapabilityInvocation and the underlying cause.
type CapabilityError struct {
	Capability string
	Pair       language.Pair
	Batch      int
	Err        error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s translate %s batch %d: %v", e.Capability, e.Pair, e.Batch, e.Err)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

func (e *CapabilityError) Is(target error) bool {
	return target == ErrCapabilityInvocation
}

// BatchLengthMismatchError means a capability broke its one-output-per-input
// contract.
type BatchLengthMismatchError struct {
	Capability string
	Batch      int
	Want       int
	Got        int
}

func (e *BatchLengthMismatchError) Error() string {
	return fmt.Sprintf("%s returned %d translations for batch %d of %d units", e.Capability, e.Got, e.Batch, e.Want)
}

func (e *BatchLengthMismatchError) Unwrap() error {
	return ErrBatchLengthMismatch
}
