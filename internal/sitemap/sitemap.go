// Package sitemap discovers and parses sitemap.xml (and its gzipped and
// indexed variants) to seed a crawl's frontier.
package sitemap

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rohmanhakim/docs-crawler/internal/fetcher"
)

var candidateNames = []string{
	"sitemap.xml",
	"sitemap_index.xml",
	"sitemap-index.xml",
	"sitemap.xml.gz",
	"sitemap_index.xml.gz",
	"sitemap-index.xml.gz",
}

// Discover probes the well-known sitemap locations under base's origin,
// then follows nested sitemap indexes (breadth-first, deduplicated by
// URL string) until the queue is empty. Seeding failure anywhere is
// non-fatal: a malformed or unreachable sitemap yields fewer seeds, never
// an error.
func Discover(ctx context.Context, client *http.Client, base url.URL, maxBytes int64) []url.URL {
	origin := url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/"}

	rootSitemap, ok := probe(ctx, client, origin, maxBytes)
	if !ok {
		return nil
	}

	visited := map[string]bool{rootSitemap.FinalURL.String(): true}
	queue := []fetcher.Result{rootSitemap}

	var pages []url.URL
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		entries, sitemaps := parse(current.Body, current.FinalURL)
		pages = append(pages, entries...)

		for _, child := range sitemaps {
			key := child.String()
			if visited[key] {
				continue
			}
			visited[key] = true

			result, err := fetcher.FetchLimited(ctx, client, child, maxBytes)
			if err != nil || result.Status < 200 || result.Status >= 300 {
				continue
			}
			queue = append(queue, result)
		}
	}

	return pages
}

// probe tries each candidate name in order under origin, returning the
// first one that fetches successfully. Candidates are never aggregated;
// the well-known names are typically redundant copies.
func probe(ctx context.Context, client *http.Client, origin url.URL, maxBytes int64) (fetcher.Result, bool) {
	for _, name := range candidateNames {
		candidate := origin
		candidate.Path = "/" + name

		result, err := fetcher.FetchLimited(ctx, client, candidate, maxBytes)
		if err != nil {
			continue
		}
		if result.Status < 200 || result.Status >= 300 {
			continue
		}
		return result, true
	}
	return fetcher.Result{}, false
}

// parse decodes a single sitemap document (gunzipping first if the body
// carries the gzip magic), tolerantly extracting <url><loc> content
// entries and <sitemap><loc> child-index entries. Malformed XML fails
// this one document, not the crawl.
func parse(body []byte, source url.URL) (pages []url.URL, sitemaps []url.URL) {
	body = maybeGunzip(body)

	decoder := xml.NewDecoder(bytes.NewReader(body))

	type container int
	const (
		containerNone container = iota
		containerURL
		containerSitemap
	)
	current := containerNone

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch localName(t.Name.Local) {
			case "url":
				current = containerURL
			case "sitemap":
				current = containerSitemap
			case "loc":
				var loc string
				if err := decoder.DecodeElement(&loc, &t); err != nil {
					continue
				}
				parsed, err := resolveLoc(strings.TrimSpace(loc), source)
				if err != nil {
					continue
				}
				switch current {
				case containerURL:
					pages = append(pages, parsed)
				case containerSitemap:
					sitemaps = append(sitemaps, parsed)
				}
			}
		case xml.EndElement:
			if localName(t.Name.Local) == "url" || localName(t.Name.Local) == "sitemap" {
				current = containerNone
			}
		}
	}

	return pages, sitemaps
}

func resolveLoc(loc string, base url.URL) (url.URL, error) {
	parsed, err := url.Parse(loc)
	if err != nil {
		return url.URL{}, err
	}
	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return url.URL{}, fmt.Errorf("unsupported scheme %q", resolved.Scheme)
	}
	resolved.Fragment = ""
	return *resolved, nil
}

func localName(name string) string {
	return strings.ToLower(name)
}

// maybeGunzip detects the gzip magic (0x1F 0x8B) and transparently
// decompresses; bodies without the magic pass through unchanged.
func maybeGunzip(body []byte) []byte {
	if len(body) < 2 || body[0] != 0x1F || body[1] != 0x8B {
		return body
	}
	reader, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return body
	}
	defer reader.Close()
	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return body
	}
	return decompressed
}
