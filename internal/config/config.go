// Package config provides configuration management for folio with Viper integration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// File permission constants
const (
	dirPerm  = 0o755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0o644 // Standard file permissions (rw-r--r--)
)

// Config represents the complete configuration for folio.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Viewer   ViewerConfig   `mapstructure:"viewer" yaml:"viewer"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Path           string        `mapstructure:"path" yaml:"path"`
	MaxConnections int           `mapstructure:"max_connections" yaml:"max_connections"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout" yaml:"query_timeout"`
}

// ViewOnLoad selects which view state is restored when a document opens.
type ViewOnLoad string

const (
	ViewOnLoadPrevious ViewOnLoad = "previous" // restore the stored view state
	ViewOnLoadInitial  ViewOnLoad = "initial"  // always start from the document's first page
)

// ViewerConfig holds viewer behavior configuration.
type ViewerConfig struct {
	// DefaultZoomValue overrides the stored zoom when non-empty,
	// e.g. "1.25", "page-width", "auto".
	DefaultZoomValue string     `mapstructure:"default_zoom_value" yaml:"default_zoom_value"`
	ViewOnLoad       ViewOnLoad `mapstructure:"view_on_load" yaml:"view_on_load"`
	// SidebarViewOnLoad / ScrollModeOnLoad / SpreadModeOnLoad force the
	// respective modes when >= 0; -1 means "no preference".
	SidebarViewOnLoad int  `mapstructure:"sidebar_view_on_load" yaml:"sidebar_view_on_load"`
	ScrollModeOnLoad  int  `mapstructure:"scroll_mode_on_load" yaml:"scroll_mode_on_load"`
	SpreadModeOnLoad  int  `mapstructure:"spread_mode_on_load" yaml:"spread_mode_on_load"`
	DisableHistory    bool `mapstructure:"disable_history" yaml:"disable_history"`
	DisablePageLabels bool `mapstructure:"disable_page_labels" yaml:"disable_page_labels"`
	EnableScripting   bool `mapstructure:"enable_scripting" yaml:"enable_scripting"`
	// ForcePagesLoadedTimeout bounds how long the initial view waits for
	// every page before re-applying the view on mixed-size documents.
	ForcePagesLoadedTimeout time.Duration `mapstructure:"force_pages_loaded_timeout" yaml:"force_pages_loaded_timeout"`
	PrintResolution         int           `mapstructure:"print_resolution" yaml:"print_resolution"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Supports yaml, json, toml automatically
	v.SetConfigName("config")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"database.path":                     "DATABASE_PATH",
		"database.max_connections":          "DATABASE_MAX_CONNECTIONS",
		"database.query_timeout":            "DATABASE_QUERY_TIMEOUT",
		"viewer.default_zoom_value":         "VIEWER_DEFAULT_ZOOM_VALUE",
		"viewer.view_on_load":               "VIEWER_VIEW_ON_LOAD",
		"viewer.disable_history":            "VIEWER_DISABLE_HISTORY",
		"viewer.disable_page_labels":        "VIEWER_DISABLE_PAGE_LABELS",
		"viewer.enable_scripting":           "VIEWER_ENABLE_SCRIPTING",
		"viewer.force_pages_loaded_timeout": "VIEWER_FORCE_PAGES_LOADED_TIMEOUT",
		"viewer.print_resolution":           "VIEWER_PRINT_RESOLUTION",
		"logging.level":                     "LOGGING_LEVEL",
		"logging.format":                    "LOGGING_FORMAT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "FOLIO_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create default one
			if err := m.createDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set database path if not specified
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}

	// Normalize view-on-load policy
	switch ViewOnLoad(strings.ToLower(string(config.Viewer.ViewOnLoad))) {
	case "", ViewOnLoadPrevious:
		config.Viewer.ViewOnLoad = ViewOnLoadPrevious
	case ViewOnLoadInitial:
		config.Viewer.ViewOnLoad = ViewOnLoadInitial
	default:
		return fmt.Errorf("invalid viewer.view_on_load: %q", config.Viewer.ViewOnLoad)
	}

	if err := validateConfig(config); err != nil {
		return err
	}

	m.config = config
	return nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// OnChange registers a callback invoked after a successful reload.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// Watch starts watching the config file for changes and reloads on change.
func (m *Manager) Watch() {
	m.mu.Lock()
	if m.watching {
		m.mu.Unlock()
		return
	}
	m.watching = true
	m.mu.Unlock()

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			return
		}
		m.mu.RLock()
		cfg := m.config
		callbacks := m.callbacks
		m.mu.RUnlock()
		for _, fn := range callbacks {
			fn(cfg)
		}
	})
}

func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(config); err != nil {
		return err
	}
	m.config = config
	return nil
}

// createDefaultConfig writes a default config file to the config directory.
func (m *Manager) createDefaultConfig() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configDir, "config.yaml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		// Ignore "already exists" races between concurrent starts
		var alreadyExists viper.ConfigFileAlreadyExistsError
		if !errors.As(err, &alreadyExists) {
			return err
		}
	}

	if err := GenerateSchemaFile(); err != nil {
		return fmt.Errorf("failed to generate config schema: %w", err)
	}
	return nil
}
