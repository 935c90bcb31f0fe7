package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.NarrowWidth != 100 {
		t.Errorf("expected narrow width 100, got %d", cfg.UI.NarrowWidth)
	}
	if cfg.UI.TestimonialsWide != 3 || cfg.UI.TestimonialsNarrow != 1 {
		t.Errorf("expected 3/1 testimonials per page, got %d/%d", cfg.UI.TestimonialsWide, cfg.UI.TestimonialsNarrow)
	}
	if cfg.Carousel.Interval != 5*time.Second || cfg.Carousel.Cooldown != 3*time.Second {
		t.Errorf("unexpected carousel timing %v/%v", cfg.Carousel.Interval, cfg.Carousel.Cooldown)
	}
	if !cfg.Watch.Enabled {
		t.Error("expected watch enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.StartPath != "/" {
		t.Errorf("expected default config, got start path %q", cfg.StartPath)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
content_dir: ~/site/content
start_path: /articles
ui:
  narrow_width: 80
carousel:
  interval: 7s
watch:
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "site/content"); cfg.ContentDir != want {
		t.Errorf("expected expanded content dir %q, got %q", want, cfg.ContentDir)
	}
	if cfg.StartPath != "/articles" {
		t.Errorf("expected start path /articles, got %q", cfg.StartPath)
	}
	if cfg.UI.NarrowWidth != 80 {
		t.Errorf("expected narrow width 80, got %d", cfg.UI.NarrowWidth)
	}
	// Unset keys keep their defaults
	if cfg.UI.TestimonialsWide != 3 {
		t.Errorf("expected default testimonials_wide 3, got %d", cfg.UI.TestimonialsWide)
	}
	if cfg.Carousel.Interval != 7*time.Second {
		t.Errorf("expected interval 7s, got %v", cfg.Carousel.Interval)
	}
	if cfg.Carousel.Cooldown != 3*time.Second {
		t.Errorf("expected default cooldown 3s, got %v", cfg.Carousel.Cooldown)
	}
	if cfg.Watch.Enabled {
		t.Error("expected watch disabled")
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.ContentDir = "/srv/content"
	cfg.Contact.FormEndpoint = "https://forms.example.com/f/abc"
	cfg.Watch.Enabled = false

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load after save failed: %v", err)
	}
	if loaded != cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.NarrowWidth = 0
	cfg.Carousel.Cooldown = 0
	cfg.StartPath = "team"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	}

	cfg = DefaultConfig()
	cfg.StartPath = "https://example.com/#/team"
	if err := cfg.Validate(); err != nil {
		t.Errorf("hash links are valid start paths: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~/foo", filepath.Join(home, "foo")},
		{"~/", filepath.Join(home, "")},
		{"/absolute", "/absolute"},
		{"relative", "relative"},
		{"", ""},
	}

	for _, tt := range tests {
		got := expandHome(tt.input)
		if got != tt.expected {
			t.Errorf("expandHome(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestConfigDir_XDGOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if got, want := ConfigDir(), filepath.Join(dir, "mahar"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got, want := ConfigPath(), filepath.Join(dir, "mahar", "config.yaml"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSetAndGet(t *testing.T) {
	cfg := DefaultConfig()
	for key, value := range map[string]string{
		"ui.narrow_width":   "90",
		"carousel.cooldown": "1500ms",
		"watch.enabled":     "false",
		"log.level":         "info",
	} {
		if err := cfg.Set(key, value); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}
	if got, _ := cfg.Get("carousel.cooldown"); got != "1.5s" {
		t.Errorf("expected 1.5s, got %q", got)
	}
	if got, _ := cfg.Get("ui.narrow_width"); got != "90" {
		t.Errorf("expected 90, got %q", got)
	}
	if cfg.Watch.Enabled {
		t.Error("expected watch disabled")
	}

	if err := cfg.Set("ui.narrow_width", "wide"); err == nil {
		t.Error("expected parse error")
	}
	if err := cfg.Set("nope", "1"); err == nil {
		t.Error("expected unknown key error")
	}
	if _, err := cfg.Get("nope"); err == nil {
		t.Error("expected unknown key error")
	}
	if len(Keys()) != 13 {
		t.Errorf("expected 13 keys, got %d", len(Keys()))
	}
}

func TestOverlay_EnvAndFlags(t *testing.T) {
	t.Setenv("MAHAR_CAROUSEL_INTERVAL", "9s")
	t.Setenv("MAHAR_WATCH_ENABLED", "false")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("content", "", "")
	flags.String("path", "/", "")
	if err := flags.Parse([]string{"--content", "/tmp/site"}); err != nil {
		t.Fatal(err)
	}

	v := NewViper()
	if err := v.BindPFlag("content_dir", flags.Lookup("content")); err != nil {
		t.Fatal(err)
	}
	if err := v.BindPFlag("start_path", flags.Lookup("path")); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.StartPath = "/faq"
	if err := cfg.Overlay(v); err != nil {
		t.Fatalf("Overlay: %v", err)
	}

	if cfg.Carousel.Interval != 9*time.Second {
		t.Errorf("expected env interval 9s, got %v", cfg.Carousel.Interval)
	}
	if cfg.Watch.Enabled {
		t.Error("expected env to disable watch")
	}
	if cfg.ContentDir != "/tmp/site" {
		t.Errorf("expected flag content dir, got %q", cfg.ContentDir)
	}
	if cfg.StartPath != "/faq" {
		t.Errorf("unchanged flag must not override the file, got %q", cfg.StartPath)
	}
}

func TestOverlay_BadEnvValue(t *testing.T) {
	t.Setenv("MAHAR_UI_NARROW_WIDTH", "lots")
	cfg := DefaultConfig()
	if err := cfg.Overlay(NewViper()); err == nil {
		t.Error("expected error for malformed env value")
	}
}
