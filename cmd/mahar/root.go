package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/mahar/internal/datasource"
	"github.com/vanderheijden86/mahar/pkg/config"
	"github.com/vanderheijden86/mahar/pkg/debug"
	"github.com/vanderheijden86/mahar/pkg/model"
	"github.com/vanderheijden86/mahar/pkg/ui"
	"github.com/vanderheijden86/mahar/pkg/version"
	"github.com/vanderheijden86/mahar/pkg/watcher"
)

var rootCmd = &cobra.Command{
	Use:   "mahar",
	Short: "Terminal browser for the Mahar Milhama site",
	Long: "mahar renders the Mahar Milhama marketing site in the terminal: home page\n" +
		"gallery and testimonials, the blog with filters and paging, the FAQ, the\n" +
		"team and method pages and the contact form.",
	Version:       version.Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBrowse,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default ~/.config/mahar/config.yaml)")
	pf.String("content", "", "content directory (default $MAHAR_CONTENT_DIR, ./content or the built-in sample)")
	pf.String("log-file", "", "write the debug log to this file")
	pf.String("log-level", "", "debug log level (debug, info, warn, error)")

	rootCmd.Flags().String("path", "", "start at this route, e.g. /articles or #/faq")
	rootCmd.Flags().Bool("no-watch", false, "do not reload content when files change")
}

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"content_dir": "content",
	"start_path":  "path",
	"log.file":    "log-file",
	"log.level":   "log-level",
}

// loadConfig reads the config file, applies MAHAR_* variables and changed
// flags on top and turns on the debug log when a log file is configured.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	var (
		cfg config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}

	v := config.NewViper()
	for key, name := range flagKeys {
		f := cmd.Flag(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return cfg, fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	if err := cfg.Overlay(v); err != nil {
		return cfg, fmt.Errorf("config overrides: %w", err)
	}
	if f := cmd.Flag("no-watch"); f != nil && f.Changed {
		cfg.Watch.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Log.File != "" {
		if err := debug.Setup(cfg.Log.File, cfg.Log.Level); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func loadContent(ctx context.Context, cfg config.Config) (*model.Content, datasource.DataSource, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	c, src, err := datasource.Load(ctx, datasource.DiscoveryOptions{Dir: cfg.ContentDir})
	if err != nil {
		return nil, src, fmt.Errorf("loading content: %w", err)
	}
	return c, src, nil
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer debug.Sync()

	c, src, err := loadContent(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	debug.Section("browse")
	debug.Log("source: %s", src)

	w := startWatcher(cfg, src)
	if w != nil {
		defer w.Stop()
	}

	m := ui.NewModel(c, ui.Options{
		Config:  cfg,
		Watcher: w,
		Reload: func(ctx context.Context) (*model.Content, error) {
			return datasource.LoadFromSource(ctx, src)
		},
		Source: src.Path,
	})
	defer m.Close()

	if err := runTUIProgram(m); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

// startWatcher watches a content directory for live reload. It returns nil
// for the built-in sample, when watching is off or when the directory
// cannot be watched.
func startWatcher(cfg config.Config, src datasource.DataSource) *watcher.Watcher {
	if !cfg.Watch.Enabled || src.Embedded() {
		return nil
	}
	w, err := watcher.NewWatcher(src.Path,
		watcher.WithDebounceDuration(cfg.Watch.Debounce),
		watcher.WithOnError(func(err error) { debug.Warn("watcher: %v", err) }),
	)
	if err != nil {
		debug.Warn("watcher: %v", err)
		return nil
	}
	if err := w.Start(); err != nil {
		debug.Warn("watcher: %v", err)
		return nil
	}
	return w
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)
	m.Bind(p.Send)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated runs: set MAHAR_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("MAHAR_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
