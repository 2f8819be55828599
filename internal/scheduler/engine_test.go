package scheduler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rohmanhakim/docs-crawler/internal/cachepath"
	"github.com/rohmanhakim/docs-crawler/internal/config"
	"github.com/rohmanhakim/docs-crawler/internal/metadata"
	"github.com/rohmanhakim/docs-crawler/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rootBody = `<html><body><h1>Docs</h1><a href="/docs/a">A</a><a href="/docs/b">B</a><a href="https://elsewhere.example/x">off-host</a></body></html>`
const leafBody = `<html><body><h1>Leaf</h1><p>content</p></body></html>`

func newOpts(t *testing.T) config.CrawlOptions {
	t.Helper()
	opts, err := config.WithDefault().WithUseSitemap(false).WithParallelism(2).Build()
	require.NoError(t, err)
	return opts
}

func TestCrawl_BFSStaysWithinHostAndPrefix(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/docs/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if r.URL.Path == "/docs/" {
			w.Write([]byte(rootBody))
			return
		}
		w.Write([]byte(leafBody))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cache, err := cachepath.New(t.TempDir())
	require.NoError(t, err)
	engine := scheduler.New(cache, newOpts(t), metadata.NopRecorder{}, "test")

	root, err := url.Parse(srv.URL + "/docs/")
	require.NoError(t, err)

	m, err := engine.Crawl(context.Background(), *root)
	require.NoError(t, err)

	urls := make([]string, 0, len(m.Pages))
	for _, p := range m.Pages {
		urls = append(urls, p.URL)
	}
	assert.Len(t, urls, 3, "root plus the two same-prefix children; the off-host link must never be fetched")
	assert.Contains(t, urls, srv.URL+"/docs/")
	assert.Contains(t, urls, srv.URL+"/docs/a")
	assert.Contains(t, urls, srv.URL+"/docs/b")
}

func TestCrawl_SecondCallWithoutRefreshSkipsNetwork(t *testing.T) {
	hits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/docs/", func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(leafBody))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cache, err := cachepath.New(t.TempDir())
	require.NoError(t, err)
	engine := scheduler.New(cache, newOpts(t), metadata.NopRecorder{}, "test")

	root, err := url.Parse(srv.URL + "/docs/")
	require.NoError(t, err)

	_, err = engine.Crawl(context.Background(), *root)
	require.NoError(t, err)
	_, err = engine.Crawl(context.Background(), *root)
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
}

func TestCrawl_MaxDepthStopsExpansion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/docs/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(rootBody))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cache, err := cachepath.New(t.TempDir())
	require.NoError(t, err)
	opts := newOpts(t)
	zero := 0
	opts.MaxDepth = &zero
	engine := scheduler.New(cache, opts, metadata.NopRecorder{}, "test")

	root, err := url.Parse(srv.URL + "/docs/")
	require.NoError(t, err)

	m, err := engine.Crawl(context.Background(), *root)
	require.NoError(t, err)
	assert.Len(t, m.Pages, 1, "max_depth=0 admits only the root itself")
}
