package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"lightbox/viewer"
)

// Window size constants
const (
	defaultWidth  = 800
	defaultHeight = 600
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., file1, file2, file10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Maintain original order (no sort)
)

// Grid thumbnail size limits
const (
	defaultThumbSize = 160
	minThumbSize     = 64
	maxThumbSize     = 512
)

// validateKeybindings checks that every action exists, every key string parses
// and no key combination is bound twice
func validateKeybindings(keybindings map[string][]string) error {
	mapping := getKeyMapping()
	owner := make(map[KeyCombination]string)

	for action, keys := range keybindings {
		if _, known := actionByName(action); !known {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, keyStr := range keys {
			c, ok := parseKeyString(keyStr, mapping)
			if !ok {
				return fmt.Errorf("invalid key '%s' for action '%s'", keyStr, action)
			}
			if other, taken := owner[c]; taken {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, other, action)
			}
			owner[c] = action
		}
	}

	return nil
}

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

type Config struct {
	WindowWidth  int                 `json:"window_width"`
	WindowHeight int                 `json:"window_height"`
	Fullscreen   bool                `json:"fullscreen"`
	SortMethod   int                 `json:"sort_method"`
	CacheSize    int                 `json:"cache_size"`
	PreloadCount int                 `json:"preload_count"`
	ThumbSize    int                 `json:"thumb_size"`
	Keybindings  map[string][]string `json:"keybindings"`
	Gesture      viewer.Policy       `json:"gesture"`
}

func defaultConfig() Config {
	return Config{
		WindowWidth:  defaultWidth,
		WindowHeight: defaultHeight,
		Fullscreen:   false,
		SortMethod:   SortNatural,
		CacheSize:    16,
		PreloadCount: 2,
		ThumbSize:    defaultThumbSize,
		Keybindings:  GetDefaultKeybindings(),
		Gesture:      viewer.DefaultPolicy(),
	}
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "lightbox.json"
	}
	return filepath.Join(homeDir, ".lightbox.json")
}

func loadConfig() ConfigLoadResult {
	return loadConfigFromPath(getConfigPath())
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	// Missing keys keep their defaults, including individual gesture fields.
	config.Keybindings = nil
	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		log.Printf("Warning: %s", msg)
		result.Status = "Warning"
		result.Warnings = append(result.Warnings, msg)
	}

	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}
	if GetSortStrategy(config.SortMethod).ID() != config.SortMethod {
		config.SortMethod = SortNatural
	}
	if config.CacheSize < 1 {
		config.CacheSize = 16
	}
	config.CacheSize = min(config.CacheSize, 64)
	config.PreloadCount = max(0, min(config.PreloadCount, 8))
	if config.ThumbSize < minThumbSize || config.ThumbSize > maxThumbSize {
		config.ThumbSize = defaultThumbSize
	}

	if err := config.Gesture.Validate(); err != nil {
		warn("Invalid gesture settings, using defaults: %v", err)
		config.Gesture = viewer.DefaultPolicy()
	}

	// Validate keybindings - ensure defaults exist for missing actions
	if config.Keybindings == nil {
		config.Keybindings = GetDefaultKeybindings()
	} else {
		defaults := GetDefaultKeybindings()
		for action, defaultKeys := range defaults {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}

		if err := validateKeybindings(config.Keybindings); err != nil {
			warn("Keybinding errors, using defaults: %v", err)
			config.Keybindings = GetDefaultKeybindings()
		}
	}

	result.Config = config
	return result
}

func saveConfig(config Config) {
	saveConfigToPath(config, getConfigPath())
}

func saveConfigToPath(config Config, configPath string) {
	// Don't save if size is too small
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		log.Printf("Warning: Not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		log.Printf("Error: Failed to marshal config: %v", err)
		return
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		log.Printf("Error: Failed to save config to %s: %v", configPath, err)
	}
}
