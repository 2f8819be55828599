package metadata

import (
	"log/slog"
	"os"
	"time"
)

/*
Responsibilities

- Give the pipeline stages that report (mdconvert, normalize, scheduler)
  one small interface to report what happened, without
  coupling them to a concrete logging backend.
- Recording is purely observational: nothing downstream reads it back to
  decide whether to retry, continue, or abort. Those decisions live in
  each component's own return values.
*/

// Sink is the narrow interface the reporting pipeline stages depend on to report
// fetches, errors, and terminal crawl statistics.
type Sink interface {
	RecordFetch(FetchEvent)
	RecordError(pkg, action string, cause ErrorCause, err string, attrs ...Attribute)
	RecordCrawlStats(CrawlStats)
}

// StructuredRecorder is the default Sink, backed by an slog.Logger writing
// structured key/value pairs to stderr.
type StructuredRecorder struct {
	log *slog.Logger
}

var _ Sink = (*StructuredRecorder)(nil)

// NewRecorder builds a StructuredRecorder tagged with component, the name
// of the pipeline stage or process invoking it.
func NewRecorder(component string) *StructuredRecorder {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &StructuredRecorder{log: slog.New(handler).With("component", component)}
}

func (r *StructuredRecorder) RecordFetch(ev FetchEvent) {
	r.log.Info("fetch",
		"url", ev.URL,
		"status", ev.Status,
		"duration_ms", ev.Duration.Milliseconds(),
		"content_type", ev.ContentType,
		"depth", ev.Depth,
		"bytes", ev.Bytes,
	)
}

func (r *StructuredRecorder) RecordError(pkg, action string, cause ErrorCause, errString string, attrs ...Attribute) {
	args := make([]any, 0, 8+2*len(attrs))
	args = append(args, "pkg", pkg, "action", action, "cause", cause.String(), "error", errString, "time", time.Now().Format(time.RFC3339))
	for _, a := range attrs {
		args = append(args, a.Key, a.Value)
	}
	r.log.Error("pipeline error", args...)
}

func (r *StructuredRecorder) RecordCrawlStats(stats CrawlStats) {
	r.log.Info("crawl complete",
		"root_url", stats.RootURL,
		"total_pages", stats.TotalPages,
		"total_errors", stats.TotalErrors,
		"duration_ms", stats.Duration.Milliseconds(),
	)
}

// NopRecorder discards everything. Useful for tests and for the
// single-page path, where per-call logging would be noise.
type NopRecorder struct{}

var _ Sink = NopRecorder{}

func (NopRecorder) RecordFetch(FetchEvent)                                       {}
func (NopRecorder) RecordError(string, string, ErrorCause, string, ...Attribute) {}
func (NopRecorder) RecordCrawlStats(CrawlStats)                                  {}
