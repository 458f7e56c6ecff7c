// Package config loads the optional TOML configuration shared by the tools.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds tool settings. Every field has a usable default; a config
// file only needs to mention what it overrides.
type Config struct {
	Logging   Logging   `toml:"logging"`
	PhotoSort PhotoSort `toml:"photosort"`
	Organize  Organize  `toml:"organize"`
}

// Logging configures the CLI logger.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// PhotoSort configures the photo sorter.
type PhotoSort struct {
	// Extensions lists the file extensions treated as photos.
	Extensions []string `toml:"extensions"`
}

// Organize configures the category organizer.
type Organize struct {
	// Categories maps folder names to the extensions routed into them.
	Categories map[string][]string `toml:"categories"`

	// SkipNames lists file names (lowercased) never organized.
	SkipNames []string `toml:"skip_names"`
}

// Load reads path and merges it over Default. An empty path yields Default
// unchanged; a named file that is missing or malformed is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
