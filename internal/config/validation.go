// Package config provides validation utilities for configuration values.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// namedZoomValues are the non-numeric zoom values the viewer understands.
var namedZoomValues = map[string]struct{}{
	"auto":        {},
	"page-actual": {},
	"page-fit":    {},
	"page-width":  {},
	"page-height": {},
}

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	if config.Database.MaxConnections < 1 {
		validationErrors = append(validationErrors, "database.max_connections must be at least 1")
	}
	if config.Database.QueryTimeout < 0 {
		validationErrors = append(validationErrors, "database.query_timeout must be non-negative")
	}

	if zoom := config.Viewer.DefaultZoomValue; zoom != "" {
		if _, named := namedZoomValues[zoom]; !named {
			factor, err := strconv.ParseFloat(zoom, 64)
			if err != nil || factor < 0.1 || factor > 10.0 {
				validationErrors = append(validationErrors,
					fmt.Sprintf("viewer.default_zoom_value must be a named value or a factor between 0.1 and 10.0 (got: %s)", zoom))
			}
		}
	}

	if config.Viewer.ForcePagesLoadedTimeout < 0 {
		validationErrors = append(validationErrors, "viewer.force_pages_loaded_timeout must be non-negative")
	}
	if config.Viewer.PrintResolution < 72 || config.Viewer.PrintResolution > 1200 {
		validationErrors = append(validationErrors, "viewer.print_resolution must be between 72 and 1200")
	}

	switch config.Logging.Format {
	case "", "console", "json":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be console or json (got: %s)", config.Logging.Format))
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}
