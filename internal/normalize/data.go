package normalize

import (
	"time"

	"github.com/rohmanhakim/docs-crawler/pkg/hashutil"
	"gopkg.in/yaml.v3"
)

// NormalizedMarkdownDoc pairs a generated Frontmatter with the sanitized
// Markdown body it describes.
type NormalizedMarkdownDoc struct {
	frontmatter Frontmatter
	content     []byte
}

func NewNormalizedMarkdownDoc(frontmatter Frontmatter, content []byte) NormalizedMarkdownDoc {
	return NormalizedMarkdownDoc{frontmatter: frontmatter, content: content}
}

func (n NormalizedMarkdownDoc) Frontmatter() Frontmatter {
	return n.frontmatter
}

func (n NormalizedMarkdownDoc) Content() []byte {
	return n.content
}

// Render yields the complete file body written to the cache: a YAML
// frontmatter block, delimited by `---` lines, followed by the sanitized
// Markdown. Marshaling failure can only come from a cyclic or unsupported
// value, neither of which frontmatterYAML ever produces, so Render never
// errors.
func (n NormalizedMarkdownDoc) Render() []byte {
	encoded, err := yaml.Marshal(n.frontmatter.yamlDoc())
	if err != nil {
		encoded = []byte{}
	}

	var out []byte
	out = append(out, "---\n"...)
	out = append(out, encoded...)
	out = append(out, "---\n\n"...)
	out = append(out, n.content...)
	return out
}

// frontmatterYAML is the on-disk shape of Frontmatter.
type frontmatterYAML struct {
	Title          string `yaml:"title,omitempty"`
	SourceURL      string `yaml:"source_url"`
	CanonicalURL   string `yaml:"canonical_url"`
	CrawlDepth     int    `yaml:"crawl_depth"`
	DocID          string `yaml:"doc_id"`
	ContentHash    string `yaml:"content_hash"`
	FetchedAt      string `yaml:"fetched_at"`
	CrawlerVersion string `yaml:"crawler_version"`
}

// Frontmatter is the metadata block prepended to every crawl-produced
// Markdown file (single-page gateway output carries none): source_url, canonical_url, crawl_depth, doc_id, content_hash, and
// fetched_at, plus title and crawler_version for provenance.
type Frontmatter struct {
	title          string
	sourceURL      string
	canonicalURL   string
	crawlDepth     int
	docID          string
	contentHash    string
	fetchedAt      time.Time
	crawlerVersion string
}

func NewFrontmatter(
	title string,
	sourceURL string,
	canonicalURL string,
	crawlDepth int,
	docID string,
	contentHash string,
	fetchedAt time.Time,
	crawlerVersion string,
) Frontmatter {
	return Frontmatter{
		title:          title,
		sourceURL:      sourceURL,
		canonicalURL:   canonicalURL,
		crawlDepth:     crawlDepth,
		docID:          docID,
		contentHash:    contentHash,
		fetchedAt:      fetchedAt,
		crawlerVersion: crawlerVersion,
	}
}

func (f Frontmatter) Title() string          { return f.title }
func (f Frontmatter) SourceURL() string      { return f.sourceURL }
func (f Frontmatter) CanonicalURL() string   { return f.canonicalURL }
func (f Frontmatter) CrawlDepth() int        { return f.crawlDepth }
func (f Frontmatter) DocID() string          { return f.docID }
func (f Frontmatter) ContentHash() string    { return f.contentHash }
func (f Frontmatter) FetchedAt() time.Time   { return f.fetchedAt }
func (f Frontmatter) CrawlerVersion() string { return f.crawlerVersion }

func (f Frontmatter) yamlDoc() frontmatterYAML {
	return frontmatterYAML{
		Title:          f.title,
		SourceURL:      f.sourceURL,
		CanonicalURL:   f.canonicalURL,
		CrawlDepth:     f.crawlDepth,
		DocID:          f.docID,
		ContentHash:    f.contentHash,
		FetchedAt:      f.fetchedAt.UTC().Format(time.RFC3339),
		CrawlerVersion: f.crawlerVersion,
	}
}

// NormalizeParam carries the per-crawl inputs Normalize needs but cannot
// derive from the page content alone.
type NormalizeParam struct {
	appVersion string
	fetchedAt  time.Time
	hashAlgo   hashutil.HashAlgo
	crawlDepth int
}

func NewNormalizeParam(appVersion string, fetchedAt time.Time, hashAlgo hashutil.HashAlgo, crawlDepth int) NormalizeParam {
	return NormalizeParam{
		appVersion: appVersion,
		fetchedAt:  fetchedAt,
		hashAlgo:   hashAlgo,
		crawlDepth: crawlDepth,
	}
}
