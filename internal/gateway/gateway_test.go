package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/rohmanhakim/docs-crawler/internal/cachepath"
	"github.com/rohmanhakim/docs-crawler/internal/config"
	"github.com/rohmanhakim/docs-crawler/internal/gateway"
	"github.com/rohmanhakim/docs-crawler/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpts(t *testing.T) config.CrawlOptions {
	t.Helper()
	opts, err := config.WithDefault().Build()
	require.NoError(t, err)
	return opts
}

func TestEnsurePageCached_WritesMarkdownOnFirstCall(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><h1>Hi</h1><p>Body</p></body></html>"))
	}))
	defer srv.Close()

	cache, err := cachepath.New(t.TempDir())
	require.NoError(t, err)
	gw := gateway.New(cache, newOpts(t), metadata.NopRecorder{})

	target, err := url.Parse(srv.URL + "/a")
	require.NoError(t, err)

	path, gwErr := gw.EnsurePageCached(context.Background(), *target)
	require.Nil(t, gwErr)
	assert.Equal(t, 1, hits)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Hi\n\nBody\n", string(data))
}

func TestEnsurePageCached_SecondCallSkipsNetwork(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><h1>Hi</h1></body></html>"))
	}))
	defer srv.Close()

	cache, err := cachepath.New(t.TempDir())
	require.NoError(t, err)
	gw := gateway.New(cache, newOpts(t), metadata.NopRecorder{})

	target, err := url.Parse(srv.URL + "/a")
	require.NoError(t, err)

	_, gwErr := gw.EnsurePageCached(context.Background(), *target)
	require.Nil(t, gwErr)
	_, gwErr = gw.EnsurePageCached(context.Background(), *target)
	require.Nil(t, gwErr)

	assert.Equal(t, 1, hits, "a second call without refresh must perform no network I/O")
}

func TestEnsurePageCached_NonHTMLFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	cache, err := cachepath.New(t.TempDir())
	require.NoError(t, err)
	gw := gateway.New(cache, newOpts(t), metadata.NopRecorder{})

	target, err := url.Parse(srv.URL + "/a")
	require.NoError(t, err)

	_, gwErr := gw.EnsurePageCached(context.Background(), *target)
	require.NotNil(t, gwErr)
	assert.Equal(t, gateway.ErrCauseNotCacheable, gwErr.Cause)
}

func TestEnsurePageCached_RefreshForcesRefetch(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><h1>Hi</h1></body></html>"))
	}))
	defer srv.Close()

	cache, err := cachepath.New(t.TempDir())
	require.NoError(t, err)
	opts := newOpts(t)
	opts.Refresh = true
	gw := gateway.New(cache, opts, metadata.NopRecorder{})

	target, err := url.Parse(srv.URL + "/a")
	require.NoError(t, err)

	_, gwErr := gw.EnsurePageCached(context.Background(), *target)
	require.Nil(t, gwErr)
	_, gwErr = gw.EnsurePageCached(context.Background(), *target)
	require.Nil(t, gwErr)

	assert.Equal(t, 2, hits)
}
