package config

import (
	"fmt"

	"github.com/liftcore/liftcore/core/dispatch/logging"
)

// LoggingConfig defines settings for the assignment decision log.
type LoggingConfig struct {
	// Backend selects the store type: "jsonl" or "none".
	Backend string `json:"backend"`
	// Path is the file location of the log store.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		c.Path = "assignments.log"
	}
}

// Validate checks mandatory fields.
func (c LoggingConfig) Validate() error {
	if c.Backend != "jsonl" && c.Backend != "none" {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Backend == "jsonl" && c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// NewStore builds the configured log store; a "none" backend yields nil.
func (c LoggingConfig) NewStore() (logging.LogStore, error) {
	if c.Backend == "none" {
		return nil, nil
	}
	return logging.NewJSONLStore(c.Path)
}
