// Package manifest reads and writes the JSON index of a single subtree
// crawl, stored at <subtree_dir>/.gg/manifest.json.
package manifest

import "time"

const Version = 1

// PageEntry is one crawled page's manifest row.
type PageEntry struct {
	URL           string `json:"url"`
	CachePath     string `json:"cache_path"`
	Status        int    `json:"status"`
	ContentType   string `json:"content_type,omitempty"`
	FetchedAt     int64  `json:"fetched_at"`
	Bytes         int    `json:"bytes"`
	MarkdownBytes int    `json:"markdown_bytes"`
	Error         string `json:"error,omitempty"`
}

// Manifest indexes every page a single subtree crawl produced.
type Manifest struct {
	Version     int         `json:"version"`
	RootURL     string      `json:"root_url"`
	GeneratedAt int64       `json:"generated_at"`
	Pages       []PageEntry `json:"pages"`
}

func New(rootURL string, generatedAt time.Time) *Manifest {
	return &Manifest{
		Version:     Version,
		RootURL:     rootURL,
		GeneratedAt: generatedAt.Unix(),
		Pages:       []PageEntry{},
	}
}

// Append records one page. Concurrent crawl tasks append through the
// engine's single owning goroutine, so Append itself does no locking.
func (m *Manifest) Append(entry PageEntry) {
	m.Pages = append(m.Pages, entry)
}
