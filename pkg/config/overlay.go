package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. MAHAR_CAROUSEL_INTERVAL.
const EnvPrefix = "MAHAR"

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

func str(p func(*Config) *string) field {
	return field{
		get: func(c *Config) string { return *p(c) },
		set: func(c *Config, v string) error { *p(c) = expandHome(v); return nil },
	}
}

func num(p func(*Config) *int) field {
	return field{
		get: func(c *Config) string { return strconv.Itoa(*p(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return err
			}
			*p(c) = n
			return nil
		},
	}
}

func dur(p func(*Config) *time.Duration) field {
	return field{
		get: func(c *Config) string { return p(c).String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				return err
			}
			*p(c) = d
			return nil
		},
	}
}

func boolean(p func(*Config) *bool) field {
	return field{
		get: func(c *Config) string { return strconv.FormatBool(*p(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return err
			}
			*p(c) = b
			return nil
		},
	}
}

var fields = map[string]field{
	"content_dir":            str(func(c *Config) *string { return &c.ContentDir }),
	"start_path":             str(func(c *Config) *string { return &c.StartPath }),
	"ui.narrow_width":        num(func(c *Config) *int { return &c.UI.NarrowWidth }),
	"ui.testimonials_wide":   num(func(c *Config) *int { return &c.UI.TestimonialsWide }),
	"ui.testimonials_narrow": num(func(c *Config) *int { return &c.UI.TestimonialsNarrow }),
	"carousel.interval":      dur(func(c *Config) *time.Duration { return &c.Carousel.Interval }),
	"carousel.cooldown":      dur(func(c *Config) *time.Duration { return &c.Carousel.Cooldown }),
	"contact.form_endpoint":  str(func(c *Config) *string { return &c.Contact.FormEndpoint }),
	"contact.timeout":        dur(func(c *Config) *time.Duration { return &c.Contact.Timeout }),
	"log.file":               str(func(c *Config) *string { return &c.Log.File }),
	"log.level":              str(func(c *Config) *string { return &c.Log.Level }),
	"watch.enabled":          boolean(func(c *Config) *bool { return &c.Watch.Enabled }),
	"watch.debounce":         dur(func(c *Config) *time.Duration { return &c.Watch.Debounce }),
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the string form of key.
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	return f.get(c), nil
}

// Set parses value into key.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := f.set(c, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// NewViper returns a viper instance reading MAHAR_* environment variables,
// with dots in keys mapped to underscores.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Overlay applies every key v has a value for (bound flags that were
// changed, environment variables) on top of c.
func (c *Config) Overlay(v *viper.Viper) error {
	for _, k := range Keys() {
		if !v.IsSet(k) {
			continue
		}
		if err := c.Set(k, v.GetString(k)); err != nil {
			return err
		}
	}
	return nil
}
