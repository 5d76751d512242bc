package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when -c is not given.
const DefaultPath = "reportindex.yaml"

// Config represents the application configuration.
type Config struct {
	Target      string            `yaml:"target,omitempty"`      // directory to scan
	Title       string            `yaml:"title"`                 // page title
	Subtitle    string            `yaml:"subtitle,omitempty"`    // line under the title
	Output      string            `yaml:"output,omitempty"`      // output file name inside the target
	Extension   string            `yaml:"extension,omitempty"`   // recognized report extension
	Sections    []string          `yaml:"sections,omitempty"`    // recognized section keys, in display order
	Subsections []string          `yaml:"subsections,omitempty"` // recognized subsection keys, in display order
	Labels      map[string]string `yaml:"labels,omitempty"`      // display label overrides, merged over defaults
	Intro       *bool             `yaml:"intro,omitempty"`       // embed README.md from the target as an intro block
	GitStamp    *bool             `yaml:"git_stamp,omitempty"`   // stamp the footer with the target's HEAD revision
	Watch       WatchConfig       `yaml:"watch,omitempty"`
}

// WatchConfig holds watch-mode tuning. Durations are strings parsed with
// time.ParseDuration; unparseable values fall back to the defaults.
type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty"`
	Interval string `yaml:"interval,omitempty"`
}

// DefaultDebounce coalesces filesystem event bursts into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// DebounceDuration returns the parsed debounce window.
func (w WatchConfig) DebounceDuration() time.Duration {
	if d, err := time.ParseDuration(w.Debounce); err == nil && d > 0 {
		return d
	}
	return DefaultDebounce
}

// IntervalDuration returns the periodic rebuild interval; zero disables it.
func (w WatchConfig) IntervalDuration() time.Duration {
	if d, err := time.ParseDuration(w.Interval); err == nil && d > 0 {
		return d
	}
	return 0
}

// IntroEnabled reports whether README intro embedding is on (default true).
func (c *Config) IntroEnabled() bool { return c.Intro == nil || *c.Intro }

// GitStampEnabled reports whether the footer revision stamp is on (default true).
func (c *Config) GitStampEnabled() bool { return c.GitStamp == nil || *c.GitStamp }

// OutputPath resolves the output document path for a target directory. An
// explicit override wins; otherwise the configured file name is placed
// inside the target.
func (c *Config) OutputPath(target, override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(target, c.Output)
}

// Load loads configuration from the specified file. A missing file is only
// an error when a non-default path was requested explicitly; otherwise the
// defaults apply.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && configPath == DefaultPath {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	defaultLabels := cfg.Labels
	cfg.Labels = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.mergeLabels(defaultLabels)

	cfg.normalize()
	return cfg, nil
}

// mergeLabels folds the keys of the loaded label entries and lays them over
// the defaults, so a file entry wins regardless of its casing.
func (c *Config) mergeLabels(defaults map[string]string) {
	merged := make(map[string]string, len(defaults)+len(c.Labels))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range c.Labels {
		merged[strings.ToLower(strings.TrimSpace(k))] = v
	}
	c.Labels = merged
}

// normalize folds configured keys to lower case so all later matching is
// plain string equality, and tidies the extension and output name.
func (c *Config) normalize() {
	c.Sections = foldList(c.Sections)
	c.Subsections = foldList(c.Subsections)

	c.Extension = strings.ToLower(strings.TrimSpace(c.Extension))
	if c.Extension != "" && !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}
	if c.Extension == "" {
		c.Extension = defaultExtension
	}
	if strings.TrimSpace(c.Output) == "" {
		c.Output = defaultOutput
	}
	if strings.TrimSpace(c.Title) == "" {
		c.Title = defaultTitle
	}
}

func foldList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Default()
	example.Watch = WatchConfig{Debounce: "300ms", Interval: "0s"}

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
