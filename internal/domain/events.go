package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventBlockInserted    EventType = "BlockInserted"
	EventBlockRemoved     EventType = "BlockRemoved"
	EventBlockMoved       EventType = "BlockMoved"
	EventBlockUpdated     EventType = "BlockUpdated"
	EventDocumentLoaded   EventType = "DocumentLoaded"
	EventSelectionChanged EventType = "SelectionChanged"
	EventFocusChanged     EventType = "FocusChanged"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventConfigChanged    EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// BlockInsertedEvent is emitted when a block is added to the document
type BlockInsertedEvent struct {
	ID       BlockID
	ParentID BlockID // empty for a top-level block
	Index    int
}

func (e BlockInsertedEvent) Type() EventType { return EventBlockInserted }

// BlockRemovedEvent is emitted when a block and its subtree leave the document
type BlockRemovedEvent struct {
	ID      BlockID
	Removed []BlockID // the block and all its descendants, in document order
}

func (e BlockRemovedEvent) Type() EventType { return EventBlockRemoved }

// BlockMovedEvent is emitted when a block is reparented or reordered
type BlockMovedEvent struct {
	ID       BlockID
	ParentID BlockID
	Index    int
}

func (e BlockMovedEvent) Type() EventType { return EventBlockMoved }

// BlockUpdatedEvent is emitted when a block's props change
type BlockUpdatedEvent struct {
	ID BlockID
}

func (e BlockUpdatedEvent) Type() EventType { return EventBlockUpdated }

// DocumentLoadedEvent is emitted when a document replaces the current tree
type DocumentLoadedEvent struct {
	Path   string
	Blocks int
}

func (e DocumentLoadedEvent) Type() EventType { return EventDocumentLoaded }

// SelectionChangedEvent is emitted after an action changes the multi-selection
type SelectionChangedEvent struct {
	Selected []BlockID
	Anchor   BlockID
	Last     BlockID
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// FocusChangedEvent is emitted after an action changes focus or edit mode
type FocusChangedEvent struct {
	Focused   BlockID
	IsEditing bool
}

func (e FocusChangedEvent) Type() EventType { return EventFocusChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when the config file changed on disk and was reloaded.
// Config holds the reloaded *config.Config; it is typed any to keep domain free of imports.
type ConfigChangedEvent struct {
	Path   string
	Config any
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
