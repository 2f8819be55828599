package mdconvert

import "net/url"

// Result is the conversion stage's output: rendered Markdown bytes plus
// every link discovered in document order, already resolved against the
// page's final URL, fragment-stripped, and filtered to http/https
// schemes.
type Result struct {
	markdown []byte
	links    []url.URL
}

func NewResult(markdown []byte, links []url.URL) Result {
	return Result{markdown: markdown, links: links}
}

func (r Result) Markdown() []byte { return r.markdown }
func (r Result) Links() []url.URL { return r.links }
