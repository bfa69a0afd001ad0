package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"blockcanvas/internal/domain"
	"blockcanvas/internal/eventbus"
)

// fileDocument is the on-disk TOML shape of a document
type fileDocument struct {
	Blocks []fileBlock `toml:"blocks"`
}

type fileBlock struct {
	ID       string         `toml:"id,omitempty"`
	Type     string         `toml:"type"`
	Text     string         `toml:"text,omitempty"`
	Props    map[string]any `toml:"props,omitempty"`
	Children []fileBlock    `toml:"children,omitempty"`
}

func (fb fileBlock) toBlock() *domain.Block {
	b := &domain.Block{
		ID:   domain.BlockID(fb.ID),
		Type: fb.Type,
	}
	if b.Type == "" {
		b.Type = "paragraph"
	}
	if len(fb.Props) > 0 || fb.Text != "" {
		b.Props = make(map[string]any, len(fb.Props)+1)
		for k, v := range fb.Props {
			b.Props[k] = v
		}
		if fb.Text != "" {
			b.Props["text"] = fb.Text
		}
	}
	for _, c := range fb.Children {
		b.Children = append(b.Children, c.toBlock())
	}
	return b
}

func fromBlock(b *domain.Block) fileBlock {
	fb := fileBlock{
		ID:   string(b.ID),
		Type: b.Type,
		Text: b.Text(),
	}
	for k, v := range b.Props {
		if k == "text" {
			continue
		}
		if fb.Props == nil {
			fb.Props = make(map[string]any)
		}
		fb.Props[k] = v
	}
	for _, c := range b.Children {
		fb.Children = append(fb.Children, fromBlock(c))
	}
	return fb
}

// Parse decodes a TOML document into blocks
func Parse(data []byte) ([]*domain.Block, error) {
	var doc fileDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	blocks := make([]*domain.Block, 0, len(doc.Blocks))
	for _, fb := range doc.Blocks {
		blocks = append(blocks, fb.toBlock())
	}
	return blocks, nil
}

// LoadFile replaces the store's tree with the document at path
func (s *MemoryStore) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	blocks, err := Parse(data)
	if err != nil {
		return err
	}
	if err := s.Replace(blocks); err != nil {
		return fmt.Errorf("failed to load document %s: %w", path, err)
	}

	s.publish(eventbus.DocumentLoadedEvent{Path: path, Blocks: s.Len()})
	return nil
}

// SaveFile writes the store's tree to path as TOML
func (s *MemoryStore) SaveFile(path string) error {
	var doc fileDocument
	for _, b := range s.Blocks() {
		doc.Blocks = append(doc.Blocks, fromBlock(b))
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create document directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
