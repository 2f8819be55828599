package scheduler

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/rohmanhakim/docs-crawler/internal/cachepath"
	"github.com/rohmanhakim/docs-crawler/internal/fetcher"
	"github.com/rohmanhakim/docs-crawler/internal/frontier"
	"github.com/rohmanhakim/docs-crawler/internal/manifest"
	"github.com/rohmanhakim/docs-crawler/internal/mdconvert"
	"github.com/rohmanhakim/docs-crawler/internal/metadata"
	"github.com/rohmanhakim/docs-crawler/internal/normalize"
	"github.com/rohmanhakim/docs-crawler/internal/sanitizer"
	"github.com/rohmanhakim/docs-crawler/internal/sitemap"
	"github.com/rohmanhakim/docs-crawler/pkg/hashutil"
	"github.com/rohmanhakim/docs-crawler/pkg/urlutil"
	"golang.org/x/net/html"
)

const minSitemapBytes = 1 << 20 // 1 MiB floor on the sitemap byte cap

// Crawl runs the bounded BFS against root and returns the resulting
// manifest. If refresh is false and a manifest already exists for root
// (by string equality on root_url), it is returned unmodified and no
// network I/O occurs.
func (e Engine) Crawl(ctx context.Context, root url.URL) (*manifest.Manifest, error) {
	manifestPath, err := e.cache.ManifestPath(root)
	if err != nil {
		return nil, err
	}

	if cached, ok := manifest.FreshFor(manifestPath, root.String(), e.opts.Refresh); ok {
		return cached, nil
	}

	hosts := allowedHosts(root)
	prefix := subtreePrefix(root)
	client := fetcher.NewHostConstrainedClient(e.opts.HTTP, hosts)

	var seeds []url.URL
	if e.opts.UseSitemap {
		maxBytes := e.opts.HTTP.MaxBodyBytes / 2
		if maxBytes < minSitemapBytes {
			maxBytes = minSitemapBytes
		}
		for _, seed := range sitemap.Discover(ctx, client, root, maxBytes) {
			if isAllowedChild(seed, hosts, prefix) {
				seeds = append(seeds, seed)
			}
		}
	}

	generatedAt := time.Now()
	m := e.runBFS(ctx, client, root, hosts, prefix, seeds, generatedAt)

	errCount := 0
	for _, page := range m.Pages {
		if page.Error != "" {
			errCount++
		}
	}
	e.sink.RecordCrawlStats(metadata.CrawlStats{
		RootURL:     root.String(),
		TotalPages:  len(m.Pages),
		TotalErrors: errCount,
		Duration:    time.Since(generatedAt),
	})

	if writeErr := manifest.Write(manifestPath, m); writeErr != nil {
		return m, writeErr
	}
	return m, nil
}

// runBFS alone owns the frontier and visited set, spawning up to
// opts.Parallelism concurrent page tasks and folding each completion's
// extracted links back into the frontier under the same admission
// predicate that gated the seeds.
func (e Engine) runBFS(
	ctx context.Context,
	client *http.Client,
	root url.URL,
	hosts map[string]struct{},
	prefix string,
	seeds []url.URL,
	generatedAt time.Time,
) *manifest.Manifest {
	visited := frontier.NewSet[string]()
	queue := frontier.NewFIFOQueue[frontier.CrawlToken]()

	visited.Insert(urlutil.CanonicalKey(root))
	queue.Enqueue(frontier.NewCrawlToken(root, 0))

	for _, seed := range seeds {
		key := urlutil.CanonicalKey(seed)
		if visited.Insert(key) {
			queue.Enqueue(frontier.NewCrawlToken(seed, 0))
		}
	}

	m := manifest.New(root.String(), generatedAt)
	results := make(chan taskResult)
	inFlight := 0

	for queue.Size() > 0 || inFlight > 0 {
		for inFlight < e.opts.Parallelism {
			task, ok := queue.Dequeue()
			if !ok {
				break
			}
			inFlight++
			go func(t frontier.CrawlToken) {
				results <- e.runPageTask(ctx, client, t)
			}(task)
		}

		if inFlight == 0 {
			break
		}

		res := <-results
		inFlight--

		if res.entry != nil {
			m.Append(manifest.PageEntry{
				URL:           res.entry.url,
				CachePath:     res.entry.cachePath,
				Status:        res.entry.status,
				ContentType:   res.entry.contentType,
				FetchedAt:     res.entry.fetchedAt,
				Bytes:         res.entry.bytes,
				MarkdownBytes: res.entry.markdownBytes,
				Error:         res.entry.errString,
			})
		}

		nextDepth := res.depth + 1
		if e.opts.MaxDepth != nil && nextDepth > *e.opts.MaxDepth {
			continue
		}
		for _, link := range res.links {
			link.Fragment = ""
			if !isAllowedChild(link, hosts, prefix) {
				continue
			}
			key := urlutil.CanonicalKey(link)
			if visited.Insert(key) {
				queue.Enqueue(frontier.NewCrawlToken(link, nextDepth))
			}
		}
	}

	return m
}

// runPageTask handles one page: fetch, HTML-sniff, convert, sanitize,
// normalize, and atomically write. A task never propagates an error up to
// the BFS loop; every failure mode short-circuits to a taskResult with
// entry == nil, omitting the page from the manifest and harvesting none
// of its links.
func (e Engine) runPageTask(ctx context.Context, client *http.Client, task frontier.CrawlToken) taskResult {
	depth := task.Depth()

	taskURL := task.URL()
	result, fetchErr := fetcher.FetchLimited(ctx, client, taskURL, e.opts.HTTP.MaxBodyBytes)
	if fetchErr != nil {
		e.sink.RecordError("scheduler", "FetchLimited", mapFetchErrorToMetadataCause(fetchErr.Cause), fetchErr.Error(),
			metadata.Attr("url", taskURL.String()))
		return taskResult{depth: depth}
	}

	fetchedAt := time.Now().Unix()
	e.sink.RecordFetch(metadata.FetchEvent{
		URL:         result.FinalURL.String(),
		Status:      result.Status,
		ContentType: result.ContentType,
		Depth:       depth,
		Bytes:       len(result.Body),
	})

	if !fetcher.IsProbablyHTML(result.ContentType, result.Body) {
		return taskResult{depth: depth}
	}

	doc, err := html.Parse(bytes.NewReader(result.Body))
	if err != nil {
		e.sink.RecordError("scheduler", "html.Parse", metadata.CauseContentInvalid, err.Error(),
			metadata.Attr("url", result.FinalURL.String()))
		return taskResult{depth: depth}
	}

	converted, convErr := mdconvert.Convert(doc, result.FinalURL, true, e.sink)
	if convErr != nil {
		return taskResult{depth: depth}
	}

	sanitized := sanitizer.SanitizeMarkdown(converted.Markdown())

	normalizeParam := normalize.NewNormalizeParam(e.version, time.Unix(fetchedAt, 0), hashutil.HashAlgoBLAKE3, depth)
	normalized, normErr := normalize.Normalize(result.FinalURL, sanitized, normalizeParam, e.sink)
	var rendered []byte
	if normErr != nil {
		rendered = sanitized
	} else {
		rendered = normalized.Render()
	}

	cachePath, pathErr := e.cache.PagePath(result.FinalURL)
	if pathErr != nil {
		e.sink.RecordError("scheduler", "PagePath", metadata.CauseInvalidInput, pathErr.Error(),
			metadata.Attr("url", result.FinalURL.String()))
		return taskResult{depth: depth}
	}

	if writeErr := cachepath.WriteAtomic(cachePath, rendered); writeErr != nil {
		e.sink.RecordError("scheduler", "WriteAtomic", metadata.CauseStorageFailure, writeErr.Error(),
			metadata.Attr("path", cachePath))
		return taskResult{depth: depth}
	}

	errString := ""
	if result.Status >= 400 {
		errString = httpStatusError(result.Status)
	}

	relPath := cachePath
	if rel, relErr := filepath.Rel(e.cache.Root(), cachePath); relErr == nil {
		relPath = rel
	}

	return taskResult{
		depth: depth,
		entry: &pageEntryResult{
			url:           result.FinalURL.String(),
			cachePath:     relPath,
			status:        result.Status,
			contentType:   result.ContentType,
			fetchedAt:     fetchedAt,
			bytes:         len(result.Body),
			markdownBytes: len(rendered),
			errString:     errString,
		},
		links: converted.Links(),
	}
}
