package vector

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates no record exists for the requested chunk ID.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateChunk indicates an insert collided with an existing chunk ID.
// Upsert semantics are deliberately not offered; callers must delete first.
var ErrDuplicateChunk = errors.New("chunk id already exists")

// ErrInvalidDimensions indicates an embedding whose length does not match the
// configured dimensionality.
var ErrInvalidDimensions = errors.New("invalid embedding dimensions")

// DimensionError reports an embedding length mismatch, identifying the
// offending chunk when the failure occurred inside a batch.
type DimensionError struct {
	ChunkID  string
	Expected int
	Actual   int
}

// Error returns a message naming the expected and actual vector lengths.
func (e *DimensionError) Error() string {
	if e.ChunkID != "" {
		return fmt.Sprintf("embedding for chunk %q has %d dimensions, expected %d", e.ChunkID, e.Actual, e.Expected)
	}
	return fmt.Sprintf("embedding has %d dimensions, expected %d", e.Actual, e.Expected)
}

// Unwrap allows errors.Is(err, ErrInvalidDimensions) checks.
func (e *DimensionError) Unwrap() error { return ErrInvalidDimensions }
