package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lu-zhengda/macsweep/internal/utils"
)

// Confirmation modes for categories that need approval.
const (
	ConfirmEach     = "each"
	ConfirmCategory = "category"
)

// Config holds all macsweep configuration.
type Config struct {
	LargeFiles LargeFilesConfig `yaml:"large_files"`
	Containers ContainersConfig `yaml:"containers"`
	Confirm    string           `yaml:"confirm"`
	Detailed   bool             `yaml:"detailed"`
	Disabled   []string         `yaml:"disabled"`
	Exclude    []string         `yaml:"exclude"`
	History    bool             `yaml:"history"`
}

// LargeFilesConfig controls the large downloads category.
type LargeFilesConfig struct {
	MinSize    int64  `yaml:"-"`
	MinSizeStr string `yaml:"min_size"`
	Path       string `yaml:"path"`
}

// ContainersConfig controls the unused application containers category.
type ContainersConfig struct {
	VendorPrefixes []string `yaml:"vendor_prefixes"`
}

// Default returns a Config with all default values populated.
func Default() *Config {
	return &Config{
		LargeFiles: LargeFilesConfig{
			MinSize:    100 * utils.MB,
			MinSizeStr: "100MB",
			Path:       "~/Downloads",
		},
		Containers: ContainersConfig{
			VendorPrefixes: []string{"com.apple."},
		},
		Confirm:  ConfirmEach,
		Disabled: []string{},
		Exclude:  []string{},
		History:  true,
	}
}

// DefaultPath returns ~/.config/macsweep/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "macsweep", "config.yaml"), nil
}

// Load loads config from the given path. If path is empty, it uses the
// default location. If the file does not exist, it creates it with
// default values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	return LoadFrom(path)
}

// LoadFrom loads and parses config from the given path. Missing fields
// keep their default values.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.LargeFiles.MinSizeStr != "" {
		size, err := utils.ParseSize(cfg.LargeFiles.MinSizeStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse large_files.min_size %q: %w", cfg.LargeFiles.MinSizeStr, err)
		}
		cfg.LargeFiles.MinSize = size
	}

	return cfg, nil
}

// Save marshals the config to YAML and writes it to the given path,
// creating parent directories as needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate returns a warning for every setting that will be ignored or
// replaced by its default. known lists the valid category names.
func (c *Config) Validate(known []string) []string {
	var warnings []string

	switch c.Confirm {
	case ConfirmEach, ConfirmCategory, "":
	default:
		warnings = append(warnings, fmt.Sprintf("confirm: unknown mode %q, using %q", c.Confirm, ConfirmEach))
	}

	if c.LargeFiles.MinSize <= 0 {
		warnings = append(warnings, "large_files.min_size: must be positive, using 100MB")
	}
	if strings.TrimSpace(c.LargeFiles.Path) == "" {
		warnings = append(warnings, "large_files.path: empty, using ~/Downloads")
	}

	names := make(map[string]bool, len(known))
	for _, n := range known {
		names[n] = true
	}
	for _, d := range c.Disabled {
		if !names[d] {
			warnings = append(warnings, fmt.Sprintf("disabled: unknown category %q", d))
		}
	}

	for _, p := range c.Exclude {
		if _, err := filepath.Match(p, ""); err != nil {
			warnings = append(warnings, fmt.Sprintf("exclude: bad pattern %q", p))
		}
	}

	return warnings
}

// IsDisabled reports whether the named category was turned off.
func (c *Config) IsDisabled(name string) bool {
	for _, d := range c.Disabled {
		if d == name {
			return true
		}
	}
	return false
}

// ConfirmEachEntry reports whether Confirm categories prompt per entry.
func (c *Config) ConfirmEachEntry() bool {
	return c.Confirm != ConfirmCategory
}

// IsExcluded checks if the given path matches any of the configured
// exclude glob patterns. Matching is done against the full path and
// against the base name. Patterns ending in "/**" are treated as
// directory prefix matches.
func (c *Config) IsExcluded(path string) bool {
	for _, pattern := range c.Exclude {
		if strings.HasSuffix(pattern, "/**") {
			prefix := strings.TrimSuffix(pattern, "/**")
			if strings.HasPrefix(path, prefix+"/") || path == prefix {
				return true
			}
			continue
		}

		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	return false
}
