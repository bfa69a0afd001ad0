package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"blockcanvas/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version      int            `toml:"version"`
	DocumentPath string         `toml:"document_path"`
	Keyboard     KeyboardConfig `toml:"keyboard"`
	UISettings   UISettings     `toml:"ui"`
}

// KeyboardConfig switches groups of canvas key bindings on or off
type KeyboardConfig struct {
	EnableArrowKeys     bool `toml:"enable_arrow_keys"`
	EnableTabNavigation bool `toml:"enable_tab_navigation"`
	EnableEnterToEdit   bool `toml:"enable_enter_to_edit"`
	EnableEscape        bool `toml:"enable_escape"`
	EnableSelectAll     bool `toml:"enable_select_all"`
	EnableShiftArrows   bool `toml:"enable_shift_arrows"` // also requires EnableArrowKeys
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowBlockIDs   bool `toml:"show_block_ids"`
	IndentWidth    int  `toml:"indent_width"`
	AutosaveOnExit bool `toml:"autosave_on_exit"`
}

// DefaultKeyboardConfig enables every binding
func DefaultKeyboardConfig() KeyboardConfig {
	return KeyboardConfig{
		EnableArrowKeys:     true,
		EnableTabNavigation: true,
		EnableEnterToEdit:   true,
		EnableEscape:        true,
		EnableSelectAll:     true,
		EnableShiftArrows:   true,
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service using the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "blockcanvas", "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// NewConfigServiceAt creates a config service bound to path. bus may be nil.
func NewConfigServiceAt(path string, bus eventbus.EventBus) ConfigService {
	return &configService{
		bus:      bus,
		filePath: path,
	}
}

// Path returns the file Load and Save use
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.UISettings.IndentWidth <= 0 {
		cfg.UISettings.IndentWidth = DefaultConfig().UISettings.IndentWidth
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Keyboard: DefaultKeyboardConfig(),
		UISettings: UISettings{
			IndentWidth:    2,
			AutosaveOnExit: true,
		},
	}
}
