package saplings

import (
	"errors"
	"fmt"

	"go.hasen.dev/saplings/vpack"
)

// Decode errors
var (
	ErrTruncatedData      = vpack.ErrTruncated
	ErrVersionMismatch    = errors.New("saplings: save format version mismatch")
	ErrUnknownCollectable = errors.New("saplings: collectable index outside reward table")
)

// Encode errors
var (
	ErrCountOverflow = vpack.ErrCountOverflow
	ErrStemMismatch  = errors.New("saplings: staged stem geometry does not match plant stems")
	ErrStemIndex     = errors.New("saplings: stem index out of range")
)

// Storage errors
var (
	ErrWriteFailure = errors.New("saplings: failed to write save file")
)

// VersionMismatchError is reported alongside a successful decode when the
// stored version differs from the codec's. The data was still read with the
// codec's layout.
type VersionMismatchError struct {
	Stored  uint16
	Current uint16
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("%s: stored %d, current %d", ErrVersionMismatch, e.Stored, e.Current)
}

func (e *VersionMismatchError) Is(target error) bool {
	return target == ErrVersionMismatch
}
