package datasource

import (
	"context"
	"fmt"

	"github.com/vanderheijden86/mahar/pkg/content"
	"github.com/vanderheijden86/mahar/pkg/debug"
	"github.com/vanderheijden86/mahar/pkg/model"
)

// Load discovers every candidate source, validates them, selects the best
// and loads it. An explicitly configured directory that fails to load is an
// error rather than a silent fallback to the sample.
func Load(ctx context.Context, opts DiscoveryOptions) (*model.Content, DataSource, error) {
	if opts.Logger == nil {
		opts.Logger = func(msg string) { debug.Log("datasource: %s", msg) }
	}
	opts.ValidateAfterDiscovery = true
	opts.IncludeInvalid = true

	sources, err := DiscoverSources(ctx, opts)
	if err != nil {
		return nil, DataSource{}, err
	}
	if opts.Dir != "" {
		found := false
		for _, s := range sources {
			if s.Type != SourceTypeDir {
				continue
			}
			found = true
			if !s.Valid {
				return nil, s, fmt.Errorf("content dir %s: %s", s.Path, s.ValidationError)
			}
		}
		if !found {
			return nil, DataSource{}, fmt.Errorf("%w: %s has no content files", ErrNoSource, opts.Dir)
		}
	}

	best, err := SelectBestSource(sources)
	if err != nil {
		return nil, DataSource{}, err
	}

	c, err := LoadFromSource(ctx, best)
	if err != nil {
		return nil, best, err
	}
	return c, best, nil
}

// LoadFromSource loads content from a specific DataSource.
func LoadFromSource(ctx context.Context, source DataSource) (*model.Content, error) {
	c, err := content.LoadFS(ctx, source.FS())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s source %s: %w", source.Type, source.Path, err)
	}
	debug.Log("datasource: loaded %d articles from %s", len(c.Articles), source.Path)
	return c, nil
}
