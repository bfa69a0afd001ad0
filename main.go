package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"blockcanvas/internal/config"
	"blockcanvas/internal/document"
	"blockcanvas/internal/domain"
	"blockcanvas/internal/eventbus"
	"blockcanvas/internal/selection"
	"blockcanvas/internal/ui"
)

func main() {
	// Parse command line arguments
	var docPath, configPath string
	flag.StringVar(&docPath, "file", "", "Document to open")
	flag.StringVar(&docPath, "f", "", "Document to open (shorthand)")
	flag.StringVar(&configPath, "config", "", "Config file (default: user config dir)")
	flag.Parse()

	if docPath == "" && flag.NArg() > 0 {
		docPath = flag.Arg(0)
	}

	// Set up logging
	logFile, err := os.OpenFile("blockcanvas.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New()
	defer bus.Close()
	logDomainEvents(bus)

	var configSvc config.ConfigService
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath, bus)
	} else {
		configSvc = config.NewConfigServiceWithBus(bus)
	}
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	if docPath != "" {
		cfg.DocumentPath = docPath
	}
	if cfg.DocumentPath == "" {
		cfg.DocumentPath = "blockcanvas.toml"
	}
	if abs, err := filepath.Abs(cfg.DocumentPath); err == nil {
		cfg.DocumentPath = abs
	}

	doc := document.NewMemoryStore(bus)
	if err := loadOrSeedDocument(doc, cfg.DocumentPath); err != nil {
		fmt.Printf("Error opening %s: %v\n", cfg.DocumentPath, err)
		os.Exit(1)
	}

	actions := selection.NewActions(selection.NewStore(), doc, bus)

	uiModel := ui.NewModel(cfg, doc, actions)
	defer uiModel.Close()

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Create event channel for UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventConfigChanged, forwardEvent)
	bus.Subscribe(eventbus.EventError, forwardEvent)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			}
		}
	}()

	if configSvc.Path() != "" {
		if err := config.Watch(ctx, configSvc.Path(), configSvc, bus); err != nil {
			log.Printf("Config hot reload disabled: %v", err)
		}
	}

	// Run the UI
	log.Printf("Starting UI on %s", cfg.DocumentPath)
	_, runErr := p.Run()
	cancel()

	if cfg.UISettings.AutosaveOnExit {
		if err := doc.SaveFile(cfg.DocumentPath); err != nil {
			log.Printf("Failed to save document: %v", err)
		} else {
			log.Printf("Document saved to %s", cfg.DocumentPath)
		}
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		log.Printf("Error running program: %v", runErr)
		fmt.Printf("Error running program: %v\n", runErr)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

// logDomainEvents writes document, selection and config activity to the log
func logDomainEvents(bus eventbus.EventBus) {
	logEvent := func(e eventbus.DomainEvent) {
		switch ev := e.(type) {
		case eventbus.BlockInsertedEvent:
			log.Printf("Block %s inserted under %q at %d", ev.ID, ev.ParentID, ev.Index)
		case eventbus.BlockRemovedEvent:
			log.Printf("Block %s removed (%d total)", ev.ID, len(ev.Removed))
		case eventbus.BlockMovedEvent:
			log.Printf("Block %s moved under %q at %d", ev.ID, ev.ParentID, ev.Index)
		case eventbus.BlockUpdatedEvent:
			log.Printf("Block %s updated", ev.ID)
		case eventbus.DocumentLoadedEvent:
			log.Printf("Document loaded from %s: %d blocks", ev.Path, ev.Blocks)
		case eventbus.SelectionChangedEvent:
			log.Printf("Selection: %d block(s), anchor %q", len(ev.Selected), ev.Anchor)
		case eventbus.FocusChangedEvent:
			log.Printf("Focus: %q editing=%v", ev.Focused, ev.IsEditing)
		case eventbus.ConfigLoadedEvent:
			log.Printf("Config loaded from %s", ev.Path)
		case eventbus.ConfigSavedEvent:
			log.Printf("Config saved to %s", ev.Path)
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventBlockInserted,
		eventbus.EventBlockRemoved,
		eventbus.EventBlockMoved,
		eventbus.EventBlockUpdated,
		eventbus.EventDocumentLoaded,
		eventbus.EventSelectionChanged,
		eventbus.EventFocusChanged,
		eventbus.EventConfigLoaded,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(t, logEvent)
	}
}

// loadOrSeedDocument opens path, or fills doc with a starter document when it does not exist yet
func loadOrSeedDocument(doc *document.MemoryStore, path string) error {
	err := doc.LoadFile(path)
	if err == nil {
		log.Printf("Loaded %d blocks from %s", doc.Len(), path)
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	log.Printf("Creating new document at %s", path)
	return doc.Replace(starterBlocks())
}

func starterBlocks() []*domain.Block {
	text := func(s string) map[string]any { return map[string]any{"text": s} }
	return []*domain.Block{
		{Type: "heading", Props: text("Welcome to blockcanvas")},
		{Type: "paragraph", Props: text("Arrow keys or Tab move focus. Enter edits, Esc stops editing.")},
		{Type: "list", Props: text("Selecting"), Children: []*domain.Block{
			{Type: "item", Props: text("Space selects the focused block")},
			{Type: "item", Props: text("Shift+Up/Down extends the selection")},
			{Type: "item", Props: text("Click, Shift+click and Ctrl+click work too")},
		}},
		{Type: "paragraph", Props: text("Press ? for all keys.")},
	}
}
