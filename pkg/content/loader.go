// Package content loads the site content bundle from a directory or from
// the built-in sample.
//
// Each collection lives in its own file named after it (site, articles,
// gallery, testimonials, faqs, team, features, pillars) in YAML, JSON or
// TOML. YAML and JSON collections are top-level lists; TOML collections are
// arrays of tables keyed by the collection name ([[articles]]). The site
// file is a single object in every format.
//
// A missing file yields an empty collection. A file that cannot be decoded
// is an error wrapping ErrMalformed.
package content

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/mahar/pkg/debug"
	"github.com/vanderheijden86/mahar/pkg/metrics"
	"github.com/vanderheijden86/mahar/pkg/model"
)

// ErrMalformed wraps decode failures.
var ErrMalformed = errors.New("malformed content file")

// EnvDir names the environment variable that points at a content directory.
const EnvDir = "MAHAR_CONTENT_DIR"

// DefaultDir is the content directory used when nothing else is configured.
const DefaultDir = "content"

// Collections lists the collection file names in load order.
var Collections = []string{"site", "articles", "gallery", "testimonials", "faqs", "team", "features", "pillars"}

// Extensions lists the accepted file extensions in lookup order.
var Extensions = []string{".yaml", ".yml", ".json", ".toml"}

//go:embed sample
var sample embed.FS

// SampleFS returns the built-in sample content.
func SampleFS() fs.FS {
	sub, err := fs.Sub(sample, "sample")
	if err != nil {
		panic(err)
	}
	return sub
}

// ResolveDir picks the content directory: explicit, then $MAHAR_CONTENT_DIR,
// then ./content.
func ResolveDir(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir
	}
	return DefaultDir
}

// Load reads the bundle in dir.
func Load(ctx context.Context, dir string) (*model.Content, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s: not a directory", dir)
	}
	return LoadFS(ctx, os.DirFS(dir))
}

// Embedded loads the built-in sample content.
func Embedded() (*model.Content, error) {
	return LoadFS(context.Background(), SampleFS())
}

// LoadFS reads the bundle from fsys, decoding files concurrently.
func LoadFS(ctx context.Context, fsys fs.FS) (*model.Content, error) {
	start := time.Now()
	defer metrics.Timer(metrics.ContentLoad)()

	c := &model.Content{}
	g, ctx := errgroup.WithContext(ctx)
	// Each goroutine writes a distinct field of c.
	g.Go(func() error { return loadObject(ctx, fsys, "site", &c.Site) })
	g.Go(func() error { return loadList(ctx, fsys, "articles", &c.Articles) })
	g.Go(func() error { return loadList(ctx, fsys, "gallery", &c.Gallery) })
	g.Go(func() error { return loadList(ctx, fsys, "testimonials", &c.Testimonials) })
	g.Go(func() error { return loadList(ctx, fsys, "faqs", &c.FAQs) })
	g.Go(func() error { return loadList(ctx, fsys, "team", &c.Team) })
	g.Go(func() error { return loadList(ctx, fsys, "features", &c.Features) })
	g.Go(func() error { return loadList(ctx, fsys, "pillars", &c.Pillars) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	debug.LogTiming("content load", time.Since(start))
	return c, nil
}

// Files returns the content files present in fsys, one per collection at
// most.
func Files(fsys fs.FS) []string {
	var out []string
	for _, name := range Collections {
		if file, ok := find(fsys, name); ok {
			out = append(out, file)
		}
	}
	return out
}

// ModTime returns the newest modification time among the content files.
func ModTime(fsys fs.FS) time.Time {
	var newest time.Time
	for _, f := range Files(fsys) {
		info, err := fs.Stat(fsys, f)
		if err == nil && info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}
	return newest
}

func find(fsys fs.FS, name string) (string, bool) {
	for _, ext := range Extensions {
		file := name + ext
		if info, err := fs.Stat(fsys, file); err == nil && !info.IsDir() {
			return file, true
		}
	}
	return "", false
}

func read(ctx context.Context, fsys fs.FS, name string) (string, []byte, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	file, ok := find(fsys, name)
	if !ok {
		debug.Log("content: no %s file, using an empty collection", name)
		return "", nil, nil
	}
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", file, err)
	}
	return file, data, nil
}

func loadObject[T any](ctx context.Context, fsys fs.FS, name string, dst *T) error {
	file, data, err := read(ctx, fsys, name)
	if err != nil || file == "" {
		return err
	}
	defer metrics.Timer(metrics.ContentParse)()
	if err := decode(path.Ext(file), data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, file, err)
	}
	return nil
}

func loadList[T any](ctx context.Context, fsys fs.FS, name string, dst *[]T) error {
	file, data, err := read(ctx, fsys, name)
	if err != nil || file == "" {
		return err
	}
	defer metrics.Timer(metrics.ContentParse)()
	ext := path.Ext(file)
	if ext == ".toml" {
		var wrapper map[string][]T
		if err := toml.Unmarshal(data, &wrapper); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformed, file, err)
		}
		*dst = wrapper[name]
	} else if err := decode(ext, data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, file, err)
	}
	debug.Log("content: %s has %d entries", file, len(*dst))
	return nil
}

func decode(ext string, data []byte, dst any) error {
	switch ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, dst)
	case ".json":
		return json.Unmarshal(data, dst)
	case ".toml":
		return toml.Unmarshal(data, dst)
	default:
		return fmt.Errorf("unsupported extension %q", ext)
	}
}
