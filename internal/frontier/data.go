package frontier

/*
 Frontier - manages crawl state & ordering
*/

import "net/url"

// CrawlToken is a frontier-issued, per-URL crawl token: "this URL, at this
// depth, in this deterministic order, is next". It carries no admission
// policy (that lives in the crawl engine's admission predicate), only
// ordering and depth.
type CrawlToken struct {
	url   url.URL
	depth int
}

func NewCrawlToken(u url.URL, depth int) CrawlToken {
	return CrawlToken{url: u, depth: depth}
}

func (c CrawlToken) URL() url.URL {
	return c.url
}

func (c CrawlToken) Depth() int {
	return c.depth
}
