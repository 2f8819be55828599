package urlspec

import "net/url"

// Kind distinguishes the three ways a user-supplied token can resolve.
type Kind int

const (
	KindPage Kind = iota
	KindCrawlRoot
	KindPattern
)

// SourceSpec is the classified form of a single token passed on the command
// line. Exactly one of Page/CrawlRoot/Pattern is meaningful, selected by
// Kind.
type SourceSpec struct {
	kind      Kind
	page      url.URL
	crawlRoot url.URL
	pattern   UrlPattern
}

func NewPageSpec(u url.URL) SourceSpec {
	return SourceSpec{kind: KindPage, page: u}
}

func NewCrawlRootSpec(u url.URL) SourceSpec {
	return SourceSpec{kind: KindCrawlRoot, crawlRoot: u}
}

func NewPatternSpec(p UrlPattern) SourceSpec {
	return SourceSpec{kind: KindPattern, pattern: p}
}

func (s SourceSpec) Kind() Kind          { return s.kind }
func (s SourceSpec) Page() url.URL       { return s.page }
func (s SourceSpec) CrawlRoot() url.URL  { return s.crawlRoot }
func (s SourceSpec) Pattern() UrlPattern { return s.pattern }

// ParseOpts carries the explicit CLI overrides (`--crawl`, `--page`) that
// short-circuit the default classification rules.
type ParseOpts struct {
	ForceCrawl bool
	ForcePage  bool
}
