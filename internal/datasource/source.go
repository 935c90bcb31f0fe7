// Package datasource discovers, validates and selects the content source the
// browser runs on: an explicit directory, $MAHAR_CONTENT_DIR, ./content or the
// built-in sample.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/vanderheijden86/mahar/pkg/content"
)

// SourceType identifies the type of content source
type SourceType string

const (
	// SourceTypeDir is a directory given on the command line or in config
	SourceTypeDir SourceType = "dir"
	// SourceTypeEnvDir is the directory named by $MAHAR_CONTENT_DIR
	SourceTypeEnvDir SourceType = "env_dir"
	// SourceTypeLocalDir is ./content below the working directory
	SourceTypeLocalDir SourceType = "local_dir"
	// SourceTypeEmbedded is the sample content compiled into the binary
	SourceTypeEmbedded SourceType = "embedded"
)

// Priority values for source types (higher = more authoritative)
const (
	PriorityDir      = 100
	PriorityEnvDir   = 80
	PriorityLocalDir = 50
	PriorityEmbedded = 10
)

// EmbeddedPath is the display path of the built-in sample.
const EmbeddedPath = "<embedded>"

// ErrNoSource is returned when discovery finds nothing loadable.
var ErrNoSource = errors.New("no valid content source")

// DataSource represents a potential source of site content
type DataSource struct {
	Type     SourceType `json:"type"`
	Path     string     `json:"path"`
	Priority int        `json:"priority"`
	// ModTime is the newest modification time among the content files
	ModTime time.Time `json:"mod_time"`
	Files   []string  `json:"files,omitempty"`
	Valid   bool      `json:"valid"`
	// ValidationError describes why validation failed (if Valid is false)
	ValidationError string `json:"validation_error,omitempty"`
	// ArticleCount is set during validation
	ArticleCount int `json:"article_count"`
}

// String returns a human-readable description of the source
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	mod := "-"
	if !s.ModTime.IsZero() {
		mod = s.ModTime.Format(time.RFC3339)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, articles=%d, %s)",
		s.Path, s.Type, s.Priority, mod, s.ArticleCount, status)
}

// Embedded reports whether s is the built-in sample.
func (s DataSource) Embedded() bool {
	return s.Type == SourceTypeEmbedded
}

// FS opens the source as a file system.
func (s DataSource) FS() fs.FS {
	if s.Embedded() {
		return content.SampleFS()
	}
	return os.DirFS(s.Path)
}

// DiscoveryOptions configures source discovery behavior
type DiscoveryOptions struct {
	// Dir is an explicitly configured content directory (optional)
	Dir string
	// WorkDir is where ./content is looked for (optional, uses cwd if empty)
	WorkDir string
	// NoEmbedded leaves the built-in sample out of the candidates
	NoEmbedded bool
	// ValidateAfterDiscovery loads each discovered source
	ValidateAfterDiscovery bool
	// IncludeInvalid includes sources that failed validation in results
	IncludeInvalid bool
	// Logger receives progress messages (optional)
	Logger func(msg string)
}

// DiscoverSources finds all candidate content sources, best first.
func DiscoverSources(ctx context.Context, opts DiscoveryOptions) ([]DataSource, error) {
	logf := func(format string, args ...any) {
		if opts.Logger != nil {
			opts.Logger(fmt.Sprintf(format, args...))
		}
	}

	workDir := opts.WorkDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	candidates := []struct {
		typ      SourceType
		path     string
		priority int
	}{
		{SourceTypeDir, opts.Dir, PriorityDir},
		{SourceTypeEnvDir, os.Getenv(content.EnvDir), PriorityEnvDir},
		{SourceTypeLocalDir, filepath.Join(workDir, content.DefaultDir), PriorityLocalDir},
	}

	var sources []DataSource
	seen := make(map[string]bool)
	for _, c := range candidates {
		if c.path == "" {
			continue
		}
		abs, err := filepath.Abs(c.path)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true
		src, ok := discoverDir(c.typ, abs, c.priority)
		if !ok {
			logf("Skipping %s source %s: no content files", c.typ, abs)
			continue
		}
		logf("Found %s source: %s (%d files)", c.typ, abs, len(src.Files))
		sources = append(sources, src)
	}

	if !opts.NoEmbedded {
		fsys := content.SampleFS()
		sources = append(sources, DataSource{
			Type:     SourceTypeEmbedded,
			Path:     EmbeddedPath,
			Priority: PriorityEmbedded,
			Files:    content.Files(fsys),
		})
	}

	if opts.ValidateAfterDiscovery {
		for i := range sources {
			if err := ValidateSource(ctx, &sources[i]); err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				logf("Validation failed for %s: %v", sources[i].Path, err)
			}
		}
		if !opts.IncludeInvalid {
			valid := sources[:0]
			for _, s := range sources {
				if s.Valid {
					valid = append(valid, s)
				}
			}
			sources = valid
		}
	}

	sortSources(sources)
	logf("Discovered %d sources", len(sources))
	return sources, nil
}

func discoverDir(typ SourceType, dir string, priority int) (DataSource, bool) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return DataSource{}, false
	}
	fsys := os.DirFS(dir)
	files := content.Files(fsys)
	if len(files) == 0 {
		return DataSource{}, false
	}
	return DataSource{
		Type:     typ,
		Path:     dir,
		Priority: priority,
		ModTime:  content.ModTime(fsys),
		Files:    files,
	}, true
}

// sortSources orders by priority, then by freshness.
func sortSources(sources []DataSource) {
	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].Priority != sources[j].Priority {
			return sources[i].Priority > sources[j].Priority
		}
		return sources[i].ModTime.After(sources[j].ModTime)
	})
}

// ValidateSource loads s and records whether it decodes.
func ValidateSource(ctx context.Context, s *DataSource) error {
	c, err := content.LoadFS(ctx, s.FS())
	if err != nil {
		s.Valid = false
		s.ValidationError = err.Error()
		return err
	}
	s.Valid = true
	s.ValidationError = ""
	s.ArticleCount = len(c.Articles)
	return nil
}

// SelectBestSource returns the most authoritative valid source.
func SelectBestSource(sources []DataSource) (DataSource, error) {
	ordered := append([]DataSource(nil), sources...)
	sortSources(ordered)
	for _, s := range ordered {
		if s.Valid {
			return s, nil
		}
	}
	return DataSource{}, ErrNoSource
}
