package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// IsInitialized reports whether a project config exists in the working
// directory.
func IsInitialized() bool {
	_, err := os.Stat(ConfigFile)
	return err == nil
}

// InitializeProject scaffolds the default config file and output directory.
// Running it twice is an error so an existing config is never clobbered.
func InitializeProject() error {
	if IsInitialized() {
		return fmt.Errorf("project already initialized: %s exists", ConfigFile)
	}

	cfg := DefaultConfig()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(ConfigFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFile, err)
	}

	if err := os.MkdirAll(cfg.OutputPath, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputPath, err)
	}

	return nil
}
