package fetcher

import "net/url"

// Result is one completed fetch. Status is preserved even on 4xx/5xx and
// the body is still returned, so the caller decides what to do with an
// error response.
type Result struct {
	Requested   url.URL
	FinalURL    url.URL
	Status      int
	ContentType string
	Body        []byte
}
