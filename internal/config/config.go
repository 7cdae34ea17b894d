// Package config loads sloty configuration from JSONC files and flags.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/slotlist/pkg/slotlist"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	HoleThreshold int    `json:"hole_threshold"`
	Capacity      int    `json:"capacity"`
	HistoryFile   string `json:"history_file"`
	Prompt        string `json:"prompt"`

	// Resolved values (computed, not serialized)
	EffectiveCwd   string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	HistoryFileAbs string `json:"-"` // Absolute history path, empty when history is disabled

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// fileConfig is the on-disk shape. Pointers distinguish "unset" from an
// explicit zero, which matters because hole_threshold 0 and history_file ""
// both mean "disabled".
type fileConfig struct {
	HoleThreshold *int    `json:"hole_threshold"`
	Capacity      *int    `json:"capacity"`
	HistoryFile   *string `json:"history_file"`
	Prompt        *string `json:"prompt"`
}

// DefaultPrompt is the interactive prompt unless configured otherwise.
const DefaultPrompt = "sloty> "

// ConfigFileName is the default project config file name.
const ConfigFileName = ".sloty.json"

// historyFileName is the default history file, relative to $HOME.
const historyFileName = ".sloty_history"

// Default returns the default configuration for the given environment.
func Default(env map[string]string) Config {
	cfg := Config{
		HoleThreshold: slotlist.DefaultHoleThreshold,
		Prompt:        DefaultPrompt,
	}

	if home := env["HOME"]; home != "" {
		cfg.HistoryFile = filepath.Join(home, historyFileName)
	}

	return cfg
}

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/sloty/config.json if set, otherwise
// ~/.config/sloty/config.json. Returns empty string if neither is known.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "sloty", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "sloty", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride   string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath        string            // -c/--config flag value
	ThresholdOverride *int              // -t/--threshold flag value; nil means no override
	CapacityOverride  *int              // --capacity flag value; nil means no override
	NoHistory         bool              // --no-history flag
	Env               map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/sloty/config.json or $XDG_CONFIG_HOME/sloty/config.json)
// 3. Project config file at default location (.sloty.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
// 5. CLI overrides.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default(input.Env)

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if input.ThresholdOverride != nil {
		cfg.HoleThreshold = *input.ThresholdOverride
	}

	if input.CapacityOverride != nil {
		cfg.Capacity = *input.CapacityOverride
	}

	if input.NoHistory {
		cfg.HistoryFile = ""
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir

	switch {
	case cfg.HistoryFile == "":
		cfg.HistoryFileAbs = ""
	case filepath.IsAbs(cfg.HistoryFile):
		cfg.HistoryFileAbs = cfg.HistoryFile
	default:
		cfg.HistoryFileAbs = filepath.Join(workDir, cfg.HistoryFile)
	}

	return cfg, nil
}

// loadGlobalConfig loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobalConfig(env map[string]string) (fileConfig, string, error) {
	globalCfgPath := getGlobalConfigPath(env)
	if globalCfgPath == "" {
		return fileConfig{}, "", nil
	}

	globalCfg, loaded, err := loadConfigFile(globalCfgPath, false)
	if err != nil {
		return fileConfig{}, "", err
	}

	if !loaded {
		return fileConfig{}, "", nil
	}

	return globalCfg, globalCfgPath, nil
}

// loadProjectConfig loads the project config file (.sloty.json) or an
// explicit config file. Returns the config, the path if loaded, and any error.
func loadProjectConfig(workDir, configPath string) (fileConfig, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		// Explicit config file - must exist
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return fileConfig{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	fileCfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return fileConfig{}, "", err
	}

	if !loaded {
		return fileConfig{}, "", nil
	}

	return fileCfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files
// return a zero config. Returns the config, whether the file was loaded, and
// any error.
func loadConfigFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return fileConfig{}, false, nil
		}

		if mustExist {
			return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return fileConfig{}, false, nil
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (fileConfig, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg fileConfig

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	if cfg.HoleThreshold != nil && *cfg.HoleThreshold < 0 {
		return fileConfig{}, ErrNegativeThreshold
	}

	if cfg.Capacity != nil && *cfg.Capacity < 0 {
		return fileConfig{}, ErrNegativeCapacity
	}

	return cfg, nil
}

func mergeConfig(base Config, overlay fileConfig) Config {
	if overlay.HoleThreshold != nil {
		base.HoleThreshold = *overlay.HoleThreshold
	}

	if overlay.Capacity != nil {
		base.Capacity = *overlay.Capacity
	}

	if overlay.HistoryFile != nil {
		base.HistoryFile = *overlay.HistoryFile
	}

	if overlay.Prompt != nil && *overlay.Prompt != "" {
		base.Prompt = *overlay.Prompt
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.HoleThreshold < 0 {
		return ErrNegativeThreshold
	}

	if cfg.Capacity < 0 {
		return ErrNegativeCapacity
	}

	return nil
}

// ListOptions returns the slotlist options this configuration describes.
func (cfg Config) ListOptions() slotlist.Options {
	return slotlist.Options{
		Capacity:      cfg.Capacity,
		HoleThreshold: cfg.HoleThreshold,
	}
}

// Format returns the config as formatted JSON.
func Format(cfg Config) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // keep prompts like "sloty> " readable
	enc.SetIndent("", "  ")

	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}
