// Package gateway is the single-page entry point: it guarantees one
// Markdown file exists for one URL, reusing the same convert/sanitize
// pipeline the crawl engine runs per page but with none of the
// frontier/admission machinery a one-page request doesn't need.
package gateway

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"os"

	"github.com/rohmanhakim/docs-crawler/internal/cachepath"
	"github.com/rohmanhakim/docs-crawler/internal/config"
	"github.com/rohmanhakim/docs-crawler/internal/fetcher"
	"github.com/rohmanhakim/docs-crawler/internal/mdconvert"
	"github.com/rohmanhakim/docs-crawler/internal/metadata"
	"github.com/rohmanhakim/docs-crawler/internal/sanitizer"
	"golang.org/x/net/html"
)

// Gateway is a thin composition of the open HTTP client plus the
// convert/sanitize pipeline, sharing the Cache every crawl also writes
// through. Unlike crawl pages, a single-page fetch gets no frontmatter
// annotation: the file is exactly the sanitized conversion output.
type Gateway struct {
	cache  cachepath.Cache
	opts   config.CrawlOptions
	client *http.Client
	sink   metadata.Sink
}

// New constructs a Gateway with the open client variant: single-page
// requests are not host-constrained, there's no subtree to protect.
func New(cache cachepath.Cache, opts config.CrawlOptions, sink metadata.Sink) Gateway {
	if sink == nil {
		sink = metadata.NopRecorder{}
	}
	return Gateway{
		cache:  cache,
		opts:   opts,
		client: fetcher.NewOpenClient(opts.HTTP),
		sink:   sink,
	}
}

// EnsurePageCached returns the page's cache path without any network I/O
// when refresh is false and the file already exists; otherwise one
// pipeline pass is run and the resolved path is returned on success.
func (g Gateway) EnsurePageCached(ctx context.Context, target url.URL) (string, *Error) {
	cachePath, pathErr := g.cache.PagePath(target)
	if pathErr != nil {
		return "", &Error{URL: target.String(), Message: pathErr.Error(), Cause: ErrCauseInvalidInput}
	}

	if !g.opts.Refresh {
		if _, statErr := os.Stat(cachePath); statErr == nil {
			return cachePath, nil
		}
	}

	result, fetchErr := fetcher.FetchLimited(ctx, g.client, target, g.opts.HTTP.MaxBodyBytes)
	if fetchErr != nil {
		return "", &Error{URL: target.String(), Message: fetchErr.Error(), Cause: ErrCauseFetchFailed}
	}

	if !fetcher.IsProbablyHTML(result.ContentType, result.Body) {
		return "", &Error{URL: target.String(), Message: "non-HTML content", Cause: ErrCauseNotCacheable}
	}

	doc, err := html.Parse(bytes.NewReader(result.Body))
	if err != nil {
		return "", &Error{URL: target.String(), Message: err.Error(), Cause: ErrCauseNotCacheable}
	}

	converted, convErr := mdconvert.Convert(doc, result.FinalURL, false, g.sink)
	if convErr != nil {
		return "", &Error{URL: target.String(), Message: convErr.Error(), Cause: ErrCauseNotCacheable}
	}

	sanitized := sanitizer.SanitizeMarkdown(converted.Markdown())

	finalCachePath, pathErr := g.cache.PagePath(result.FinalURL)
	if pathErr != nil {
		return "", &Error{URL: target.String(), Message: pathErr.Error(), Cause: ErrCauseInvalidInput}
	}

	if writeErr := cachepath.WriteAtomic(finalCachePath, sanitized); writeErr != nil {
		return "", &Error{URL: target.String(), Message: writeErr.Error(), Cause: ErrCauseIO}
	}

	return finalCachePath, nil
}
