package store

import (
	"context"
	"errors"

	"studenthub/internal/model"
)

var (
	// ErrUnknownCollection is returned for a collection name outside the two known ones.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrNotFound is returned when a positional index is out of range.
	ErrNotFound = errors.New("material not found")
)

// MaterialStore defines persistence for the library document. No business
// logic here, strictly whole-document read/modify/write operations.
//
// Positional indexes are only stable between a Read and a later mutation if no
// delete happened in between; callers accept that (single-admin deployment).
type MaterialStore interface {
	// Read returns the current document. A missing backing file is initialized
	// to an empty document, never surfaced as an error.
	Read(ctx context.Context) (*model.Library, error)

	// Write overwrites the whole document.
	Write(ctx context.Context, lib *model.Library) error

	// Append adds a material to the end of the named collection and returns
	// the stored record.
	Append(ctx context.Context, collection string, m model.Material) (*model.Material, error)

	// MutateAt applies fn to the record at pos and persists the document,
	// returning the record after mutation.
	MutateAt(ctx context.Context, collection string, pos int, fn func(*model.Material)) (*model.Material, error)

	// RemoveAt splices out the record at pos and returns it. The caller is
	// responsible for deleting the associated binary.
	RemoveAt(ctx context.Context, collection string, pos int) (model.Material, error)
}
