package cmd

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/rohmanhakim/docs-crawler/internal/cachepath"
	"github.com/rohmanhakim/docs-crawler/internal/config"
	"github.com/rohmanhakim/docs-crawler/internal/gateway"
	"github.com/rohmanhakim/docs-crawler/internal/metadata"
	"github.com/rohmanhakim/docs-crawler/internal/scheduler"
	"github.com/rohmanhakim/docs-crawler/internal/urlspec"
)

/*
Responsibilities

- Turn one classified SourceSpec into the set of on-disk Markdown paths it
  names, which is what a host command actually operates on.
- Page classifies to exactly one path (gateway). CrawlRoot and Pattern
  both classify to a crawl: a Pattern's root is crawled the same way a
  bare CrawlRoot is, then its manifest is filtered, or, for a
  subtree-wide pattern, the whole subtree directory is returned without
  consulting individual rows.
*/

// resolveSpec resolves a single classified token to the ordered list of
// absolute cache paths it names.
func resolveSpec(ctx context.Context, spec urlspec.SourceSpec, cache cachepath.Cache, opts config.CrawlOptions, sink metadata.Sink, version string) ([]string, error) {
	switch spec.Kind() {
	case urlspec.KindPage:
		gw := gateway.New(cache, opts, sink)
		path, err := gw.EnsurePageCached(ctx, spec.Page())
		if err != nil {
			return nil, err
		}
		return []string{path}, nil

	case urlspec.KindCrawlRoot:
		return crawlAndCollect(ctx, spec.CrawlRoot(), cache, opts, sink, version, nil)

	case urlspec.KindPattern:
		pattern := spec.Pattern()
		if pattern.IsSubtreePattern() {
			engine := scheduler.New(cache, opts, sink, version)
			if _, err := engine.Crawl(ctx, pattern.Root()); err != nil {
				return nil, err
			}
			subtreeDir, err := cache.SubtreeDir(pattern.Root())
			if err != nil {
				return nil, err
			}
			return []string{subtreeDir}, nil
		}
		return crawlAndCollect(ctx, pattern.Root(), cache, opts, sink, version, &pattern)

	default:
		return nil, fmt.Errorf("unrecognized source spec kind")
	}
}

// crawlAndCollect runs a crawl against root and returns the absolute
// cache paths of every resulting page, optionally filtered by a URL
// pattern matched against each page's recorded URL string, so
// "https://h/docs/*" resolves to immediate children only.
func crawlAndCollect(ctx context.Context, root url.URL, cache cachepath.Cache, opts config.CrawlOptions, sink metadata.Sink, version string, filter *urlspec.UrlPattern) ([]string, error) {
	engine := scheduler.New(cache, opts, sink, version)
	m, err := engine.Crawl(ctx, root)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(m.Pages))
	for _, page := range m.Pages {
		if filter != nil && !filter.MatchesString(page.URL) {
			continue
		}
		paths = append(paths, filepath.Join(cache.Root(), page.CachePath))
	}
	return paths, nil
}
