package scheduler

import (
	"net/url"

	"github.com/rohmanhakim/docs-crawler/internal/cachepath"
	"github.com/rohmanhakim/docs-crawler/internal/config"
	"github.com/rohmanhakim/docs-crawler/internal/metadata"
)

/*
Package scheduler is the crawl engine: the bounded-parallel BFS that
turns a crawl root into a manifest. It is the sole owner of the frontier
and visited set; no other package constructs a frontier.FIFOQueue or
frontier.Set for crawl purposes.

The loop keeps up to Parallelism page tasks in flight at once: an
in-flight counter gates spawning, and every task reports back on one
results channel the loop blocks on whenever it isn't spawning.
*/

// Engine is constructed once per crawl invocation with every dependency
// it needs already resolved: the shared cache, the crawl's options, and
// a metadata sink for observability.
type Engine struct {
	cache   cachepath.Cache
	opts    config.CrawlOptions
	sink    metadata.Sink
	version string
}

// New constructs an Engine. cache must already exist and be writable
// (cachepath.New's own invariant); opts is assumed already validated and
// clamped by config.Builder.Build().
func New(cache cachepath.Cache, opts config.CrawlOptions, sink metadata.Sink, version string) Engine {
	if sink == nil {
		sink = metadata.NopRecorder{}
	}
	return Engine{cache: cache, opts: opts, sink: sink, version: version}
}

// taskResult is what a page task reports back to the single goroutine that
// owns the frontier and visited set. entry is nil when no Markdown file
// was produced, in which case links is also always empty, since an unconverted
// page harvests no links.
type taskResult struct {
	depth int
	entry *pageEntryResult
	links []url.URL
}

type pageEntryResult struct {
	url           string
	cachePath     string
	status        int
	contentType   string
	fetchedAt     int64
	bytes         int
	markdownBytes int
	errString     string
}
