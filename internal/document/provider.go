package document

import (
	"errors"

	"blockcanvas/internal/domain"
)

// Direction selects a neighbor in document order
type Direction string

const (
	Next Direction = "next"
	Prev Direction = "prev"
)

// OrderProvider exposes the block tree as a flat pre-order sequence.
// Implementations recompute the order on every call, so mutations between
// calls are always reflected.
type OrderProvider interface {
	BlockExists(id domain.BlockID) bool
	DocumentOrder() []domain.BlockID
	Neighbor(id domain.BlockID, dir Direction) (domain.BlockID, bool)
	First() (domain.BlockID, bool)
	Last() (domain.BlockID, bool)
}

// Errors returned by the mutation API
var (
	ErrBlockNotFound = errors.New("block not found")
	ErrDuplicateID   = errors.New("duplicate block id")
	ErrCycle         = errors.New("block cannot be moved into its own subtree")
)

// OutlineEntry is one row of the flattened document
type OutlineEntry struct {
	ID    domain.BlockID
	Type  string
	Text  string
	Depth int
}
