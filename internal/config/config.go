package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds all configurable Rapid Reporter settings.
type Config struct {
	TesterName    string `json:"tester_name"`     // default tester for new sessions
	OutputDir     string `json:"output_dir"`      // export destination root
	ScreenshotDir string `json:"screenshot_dir"`  // where captured frames are written
	SnipTimeoutMS int    `json:"snip_timeout_ms"` // OS-native snip wait budget
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		OutputDir:     ".",
		ScreenshotDir: filepath.Join(os.TempDir(), "rapidreporter"),
		SnipTimeoutMS: 45_000,
	}
}

// LoadGlobal reads ~/.config/rapidreporter/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", "rapidreporter", "config.json")
	return loadFile(path, true)
}

// LoadProject reads .rapidreporterconfig in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".rapidreporterconfig", false)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking
// precedence. Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()

	for _, c := range []*Config{global, project} {
		if c == nil {
			continue
		}
		if c.TesterName != "" {
			result.TesterName = c.TesterName
		}
		if c.OutputDir != "" {
			result.OutputDir = c.OutputDir
		}
		if c.ScreenshotDir != "" {
			result.ScreenshotDir = c.ScreenshotDir
		}
		if c.SnipTimeoutMS > 0 {
			result.SnipTimeoutMS = c.SnipTimeoutMS
		}
	}

	return result
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
