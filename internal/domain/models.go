package domain

import (
	"github.com/google/uuid"
)

// BlockID identifies a block. The empty BlockID means "no block".
type BlockID string

// NewBlockID returns a fresh time-ordered id (UUIDv7), so lexical order of ids
// follows creation order.
func NewBlockID() BlockID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does
		return BlockID(uuid.NewString())
	}
	return BlockID(id.String())
}

// Block is one node of the document tree
type Block struct {
	ID       BlockID
	Type     string
	Props    map[string]any
	Children []*Block
}

// Text returns the "text" prop, or "" if the block has none
func (b *Block) Text() string {
	if b == nil || b.Props == nil {
		return ""
	}
	if s, ok := b.Props["text"].(string); ok {
		return s
	}
	return ""
}

// Clone returns a deep copy of the block and its subtree
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	c := &Block{
		ID:   b.ID,
		Type: b.Type,
	}
	if b.Props != nil {
		c.Props = make(map[string]any, len(b.Props))
		for k, v := range b.Props {
			c.Props[k] = v
		}
	}
	for _, child := range b.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}
