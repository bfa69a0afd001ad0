package document

import (
	"fmt"
	"slices"
	"sync"

	"blockcanvas/internal/domain"
	"blockcanvas/internal/eventbus"
)

// MemoryStore is an in-memory block tree implementing OrderProvider
type MemoryStore struct {
	mu     sync.RWMutex
	roots  []*domain.Block
	parent map[domain.BlockID]*domain.Block // nil value for top-level blocks
	blocks map[domain.BlockID]*domain.Block
	bus    eventbus.EventBus
}

// NewMemoryStore creates an empty document. bus may be nil.
func NewMemoryStore(bus eventbus.EventBus) *MemoryStore {
	return &MemoryStore{
		parent: make(map[domain.BlockID]*domain.Block),
		blocks: make(map[domain.BlockID]*domain.Block),
		bus:    bus,
	}
}

func (s *MemoryStore) publish(e eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

// BlockExists reports whether id is currently in the document
func (s *MemoryStore) BlockExists(id domain.BlockID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blocks[id]
	return ok
}

// DocumentOrder returns every block id in pre-order
func (s *MemoryStore) DocumentOrder() []domain.BlockID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orderLocked()
}

func (s *MemoryStore) orderLocked() []domain.BlockID {
	order := make([]domain.BlockID, 0, len(s.blocks))
	var walk func([]*domain.Block)
	walk = func(list []*domain.Block) {
		for _, b := range list {
			order = append(order, b.ID)
			walk(b.Children)
		}
	}
	walk(s.roots)
	return order
}

// Neighbor returns the adjacent id in document order, false at a boundary
// or when id is not in the document.
func (s *MemoryStore) Neighbor(id domain.BlockID, dir Direction) (domain.BlockID, bool) {
	order := s.DocumentOrder()
	i := slices.Index(order, id)
	if i < 0 {
		return "", false
	}
	switch dir {
	case Next:
		i++
	case Prev:
		i--
	default:
		return "", false
	}
	if i < 0 || i >= len(order) {
		return "", false
	}
	return order[i], true
}

// First returns the first block in document order
func (s *MemoryStore) First() (domain.BlockID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.roots) == 0 {
		return "", false
	}
	return s.roots[0].ID, true
}

// Last returns the last block in document order: the deepest last descendant
// of the last top-level block.
func (s *MemoryStore) Last() (domain.BlockID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.roots) == 0 {
		return "", false
	}
	b := s.roots[len(s.roots)-1]
	for len(b.Children) > 0 {
		b = b.Children[len(b.Children)-1]
	}
	return b.ID, true
}

// Len returns the number of blocks in the document
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blocks)
}

// Block returns a copy of the block with the given id
func (s *MemoryStore) Block(id domain.BlockID) (*domain.Block, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blocks[id]
	if !ok {
		return nil, false
	}
	return b.Clone(), true
}

// Blocks returns a copy of the whole tree
func (s *MemoryStore) Blocks() []*domain.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Block, 0, len(s.roots))
	for _, b := range s.roots {
		out = append(out, b.Clone())
	}
	return out
}

// Outline flattens the tree in document order with depths
func (s *MemoryStore) Outline() []OutlineEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]OutlineEntry, 0, len(s.blocks))
	var walk func([]*domain.Block, int)
	walk = func(list []*domain.Block, depth int) {
		for _, b := range list {
			entries = append(entries, OutlineEntry{ID: b.ID, Type: b.Type, Text: b.Text(), Depth: depth})
			walk(b.Children, depth+1)
		}
	}
	walk(s.roots, 0)
	return entries
}

// AppendBlock adds block as the last child of parentID ("" for top level)
func (s *MemoryStore) AppendBlock(parentID domain.BlockID, block *domain.Block) (domain.BlockID, error) {
	return s.InsertBlock(parentID, -1, block)
}

// InsertBlock inserts block (and its subtree) under parentID at index.
// An out-of-range index appends. Blocks without an id get a fresh one.
func (s *MemoryStore) InsertBlock(parentID domain.BlockID, index int, block *domain.Block) (domain.BlockID, error) {
	if block == nil {
		return "", fmt.Errorf("insert block: nil block")
	}

	s.mu.Lock()
	var parent *domain.Block
	if parentID != "" {
		p, ok := s.blocks[parentID]
		if !ok {
			s.mu.Unlock()
			return "", fmt.Errorf("insert under %s: %w", parentID, ErrBlockNotFound)
		}
		parent = p
	}
	id, index, err := s.insertLocked(parent, index, block)
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	s.publish(eventbus.BlockInsertedEvent{ID: id, ParentID: parentID, Index: index})
	return id, nil
}

// InsertAfter inserts block as the next sibling of siblingID
func (s *MemoryStore) InsertAfter(siblingID domain.BlockID, block *domain.Block) (domain.BlockID, error) {
	if block == nil {
		return "", fmt.Errorf("insert block: nil block")
	}

	s.mu.Lock()
	sibling, ok := s.blocks[siblingID]
	if !ok {
		s.mu.Unlock()
		return "", fmt.Errorf("insert after %s: %w", siblingID, ErrBlockNotFound)
	}
	parent := s.parent[siblingID]
	at := slices.Index(s.childrenLocked(parent), sibling) + 1
	id, index, err := s.insertLocked(parent, at, block)
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	var parentID domain.BlockID
	if parent != nil {
		parentID = parent.ID
	}
	s.publish(eventbus.BlockInsertedEvent{ID: id, ParentID: parentID, Index: index})
	return id, nil
}

func (s *MemoryStore) insertLocked(parent *domain.Block, index int, block *domain.Block) (domain.BlockID, int, error) {
	b := block.Clone()
	if err := s.assignIDsLocked(b); err != nil {
		return "", 0, err
	}

	siblings := s.childrenLocked(parent)
	if index < 0 || index > len(siblings) {
		index = len(siblings)
	}
	s.setChildrenLocked(parent, slices.Insert(siblings, index, b))
	s.indexLocked(b, parent)
	return b.ID, index, nil
}

// assignIDsLocked fills missing ids and rejects ids already present
func (s *MemoryStore) assignIDsLocked(b *domain.Block) error {
	seen := make(map[domain.BlockID]bool)
	var walk func(*domain.Block) error
	walk = func(n *domain.Block) error {
		if n.ID == "" {
			n.ID = domain.NewBlockID()
		}
		if _, exists := s.blocks[n.ID]; exists || seen[n.ID] {
			return fmt.Errorf("insert %s: %w", n.ID, ErrDuplicateID)
		}
		seen[n.ID] = true
		for _, c := range n.Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(b)
}

func (s *MemoryStore) indexLocked(b, parent *domain.Block) {
	s.blocks[b.ID] = b
	s.parent[b.ID] = parent
	for _, c := range b.Children {
		s.indexLocked(c, b)
	}
}

func (s *MemoryStore) unindexLocked(b *domain.Block, removed *[]domain.BlockID) {
	delete(s.blocks, b.ID)
	delete(s.parent, b.ID)
	*removed = append(*removed, b.ID)
	for _, c := range b.Children {
		s.unindexLocked(c, removed)
	}
}

func (s *MemoryStore) childrenLocked(parent *domain.Block) []*domain.Block {
	if parent == nil {
		return s.roots
	}
	return parent.Children
}

func (s *MemoryStore) setChildrenLocked(parent *domain.Block, children []*domain.Block) {
	if parent == nil {
		s.roots = children
		return
	}
	parent.Children = children
}

// detachLocked removes b from its sibling list and returns its former index
func (s *MemoryStore) detachLocked(b *domain.Block) int {
	parent := s.parent[b.ID]
	siblings := s.childrenLocked(parent)
	i := slices.Index(siblings, b)
	if i >= 0 {
		s.setChildrenLocked(parent, slices.Delete(siblings, i, i+1))
	}
	return i
}

// RemoveBlock deletes a block and its subtree, returning every removed id
func (s *MemoryStore) RemoveBlock(id domain.BlockID) ([]domain.BlockID, error) {
	s.mu.Lock()
	b, ok := s.blocks[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("remove %s: %w", id, ErrBlockNotFound)
	}
	s.detachLocked(b)
	var removed []domain.BlockID
	s.unindexLocked(b, &removed)
	s.mu.Unlock()

	s.publish(eventbus.BlockRemovedEvent{ID: id, Removed: removed})
	return removed, nil
}

// MoveBlock reparents id under parentID at index. A block cannot move into its own subtree.
func (s *MemoryStore) MoveBlock(id, parentID domain.BlockID, index int) error {
	s.mu.Lock()
	b, ok := s.blocks[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("move %s: %w", id, ErrBlockNotFound)
	}

	var parent *domain.Block
	if parentID != "" {
		p, ok := s.blocks[parentID]
		if !ok {
			s.mu.Unlock()
			return fmt.Errorf("move %s under %s: %w", id, parentID, ErrBlockNotFound)
		}
		for a := p; a != nil; a = s.parent[a.ID] {
			if a == b {
				s.mu.Unlock()
				return fmt.Errorf("move %s under %s: %w", id, parentID, ErrCycle)
			}
		}
		parent = p
	}

	s.detachLocked(b)
	siblings := s.childrenLocked(parent)
	if index < 0 || index > len(siblings) {
		index = len(siblings)
	}
	s.setChildrenLocked(parent, slices.Insert(siblings, index, b))
	s.parent[b.ID] = parent
	s.mu.Unlock()

	s.publish(eventbus.BlockMovedEvent{ID: id, ParentID: parentID, Index: index})
	return nil
}

// UpdateProps merges props into the block's props
func (s *MemoryStore) UpdateProps(id domain.BlockID, props map[string]any) error {
	s.mu.Lock()
	b, ok := s.blocks[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("update %s: %w", id, ErrBlockNotFound)
	}
	if b.Props == nil {
		b.Props = make(map[string]any, len(props))
	}
	for k, v := range props {
		b.Props[k] = v
	}
	s.mu.Unlock()

	s.publish(eventbus.BlockUpdatedEvent{ID: id})
	return nil
}

// Replace swaps the whole tree for blocks
func (s *MemoryStore) Replace(blocks []*domain.Block) error {
	next := NewMemoryStore(nil)
	for _, b := range blocks {
		if _, err := next.AppendBlock("", b); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.roots = next.roots
	s.parent = next.parent
	s.blocks = next.blocks
	s.mu.Unlock()
	return nil
}
