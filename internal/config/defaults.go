// Package config provides default configuration values for folio.
package config

import (
	"time"
)

// Default configuration constants
const (
	defaultQueryTimeoutSec = 30 // seconds

	// defaultForcePagesLoadedTimeout bounds the wait for the full page set
	// before the initial view is re-applied on mixed-size documents.
	defaultForcePagesLoadedTimeout = 10 * time.Second

	defaultPrintResolution = 150 // DPI

	// ModeUnset marks sidebar/scroll/spread load preferences as "no preference".
	ModeUnset = -1
)

// DefaultConfig returns the default configuration values for folio.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			MaxConnections: 1,
			QueryTimeout:   time.Second * defaultQueryTimeoutSec,
		},
		Viewer: ViewerConfig{
			DefaultZoomValue:        "",
			ViewOnLoad:              ViewOnLoadPrevious,
			SidebarViewOnLoad:       ModeUnset,
			ScrollModeOnLoad:        ModeUnset,
			SpreadModeOnLoad:        ModeUnset,
			DisableHistory:          false,
			DisablePageLabels:       false,
			EnableScripting:         false,
			ForcePagesLoadedTimeout: defaultForcePagesLoadedTimeout,
			PrintResolution:         defaultPrintResolution,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// setDefaults registers defaults with viper so partial config files work.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("database.max_connections", defaults.Database.MaxConnections)
	m.viper.SetDefault("database.query_timeout", defaults.Database.QueryTimeout)

	m.viper.SetDefault("viewer.default_zoom_value", defaults.Viewer.DefaultZoomValue)
	m.viper.SetDefault("viewer.view_on_load", string(defaults.Viewer.ViewOnLoad))
	m.viper.SetDefault("viewer.sidebar_view_on_load", defaults.Viewer.SidebarViewOnLoad)
	m.viper.SetDefault("viewer.scroll_mode_on_load", defaults.Viewer.ScrollModeOnLoad)
	m.viper.SetDefault("viewer.spread_mode_on_load", defaults.Viewer.SpreadModeOnLoad)
	m.viper.SetDefault("viewer.disable_history", defaults.Viewer.DisableHistory)
	m.viper.SetDefault("viewer.disable_page_labels", defaults.Viewer.DisablePageLabels)
	m.viper.SetDefault("viewer.enable_scripting", defaults.Viewer.EnableScripting)
	m.viper.SetDefault("viewer.force_pages_loaded_timeout", defaults.Viewer.ForcePagesLoadedTimeout)
	m.viper.SetDefault("viewer.print_resolution", defaults.Viewer.PrintResolution)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}
