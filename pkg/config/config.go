// Package config handles loading and saving mahar configuration.
//
// The file lives at ~/.config/mahar/config.yaml, following the XDG Base
// Directory specification.
//
// Environment variables (MAHAR_*) and command line flags override the file;
// see Overlay.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "mahar"

// UIConfig holds terminal layout settings.
type UIConfig struct {
	NarrowWidth        int `yaml:"narrow_width,omitempty"`        // Terminal columns below which the layout is narrow
	TestimonialsWide   int `yaml:"testimonials_wide,omitempty"`   // Testimonials per page on wide terminals
	TestimonialsNarrow int `yaml:"testimonials_narrow,omitempty"` // Testimonials per page on narrow terminals
}

// CarouselConfig holds gallery timing.
type CarouselConfig struct {
	Interval time.Duration `yaml:"interval,omitempty"`
	Cooldown time.Duration `yaml:"cooldown,omitempty"` // Pause after manual navigation
}

// ContactConfig controls the contact form submission.
type ContactConfig struct {
	FormEndpoint string        `yaml:"form_endpoint,omitempty"` // Overrides the endpoint from site content
	Timeout      time.Duration `yaml:"timeout,omitempty"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// WatchConfig controls content hot reload.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce,omitempty"`
}

// Config is the top-level configuration for mahar.
type Config struct {
	ContentDir string         `yaml:"content_dir,omitempty"` // Empty uses MAHAR_CONTENT_DIR, ./content or the built-in sample
	StartPath  string         `yaml:"start_path,omitempty"`
	UI         UIConfig       `yaml:"ui,omitempty"`
	Carousel   CarouselConfig `yaml:"carousel,omitempty"`
	Contact    ContactConfig  `yaml:"contact,omitempty"`
	Log        LogConfig      `yaml:"log,omitempty"`
	Watch      WatchConfig    `yaml:"watch"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		StartPath: "/",
		UI: UIConfig{
			NarrowWidth:        100,
			TestimonialsWide:   3,
			TestimonialsNarrow: 1,
		},
		Carousel: CarouselConfig{
			Interval: 5 * time.Second,
			Cooldown: 3 * time.Second,
		},
		Contact: ContactConfig{
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "debug",
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 200 * time.Millisecond,
		},
	}
}

// Validate rejects values the UI cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.UI.NarrowWidth < 1 {
		errs = append(errs, fmt.Errorf("ui.narrow_width must be positive, got %d", c.UI.NarrowWidth))
	}
	if c.UI.TestimonialsWide < 1 || c.UI.TestimonialsNarrow < 1 {
		errs = append(errs, errors.New("ui.testimonials_wide and ui.testimonials_narrow must be at least 1"))
	}
	if c.Carousel.Interval <= 0 || c.Carousel.Cooldown <= 0 {
		errs = append(errs, errors.New("carousel.interval and carousel.cooldown must be positive"))
	}
	if c.Contact.Timeout <= 0 {
		errs = append(errs, errors.New("contact.timeout must be positive"))
	}
	if c.StartPath != "" && !strings.HasPrefix(c.StartPath, "/") && !strings.Contains(c.StartPath, "#") {
		errs = append(errs, fmt.Errorf("start_path %q must start with '/'", c.StartPath))
	}
	return errors.Join(errs...)
}

// ConfigDir returns the XDG config directory for mahar.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.ContentDir = expandHome(cfg.ContentDir)
	cfg.Log.File = expandHome(cfg.Log.File)

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
