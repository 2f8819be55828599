package fetcher

import (
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/rohmanhakim/docs-crawler/internal/config"
)

const maxRedirects = 10

/*
Responsibilities

- Build the two HTTP client variants: an "open" client that follows
  redirects anywhere, and a "host-constrained" client whose redirect
  policy stops at the crawl's host boundary.
- Stream a response body under a hard byte cap, sniffing for HTML so that
  servers mislabeling their content type are still handled.
*/

// NewOpenClient builds a client that follows up to 10 redirects
// regardless of host.
func NewOpenClient(opts config.HttpOptions) *http.Client {
	return &http.Client{
		Transport: newTransport(opts),
		Timeout:   opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

// NewHostConstrainedClient builds a client whose redirect policy refuses
// to cross outside allowedHosts. When the next hop's lowercased host
// isn't allowed, the client stops following and returns the redirect
// response itself rather than an error, so the crawl records the
// redirect's own status without ever contacting the foreign host.
func NewHostConstrainedClient(opts config.HttpOptions, allowedHosts map[string]struct{}) *http.Client {
	return &http.Client{
		Transport: newTransport(opts),
		Timeout:   opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			if _, ok := allowedHosts[strings.ToLower(req.URL.Hostname())]; !ok {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// newTransport disables the stdlib's automatic (gzip-only) transport
// compression so FetchLimited can advertise gzip/deflate/br explicitly and
// decode gzip and deflate bodies itself through decodeBody; a brotli body
// is passed through undecoded. It wraps the dialing transport in
// userAgentTransport so every request carries opts.UserAgent without
// FetchLimited needing to know which client built it.
func newTransport(opts config.HttpOptions) http.RoundTripper {
	base := &http.Transport{
		DisableCompression: true,
		DialContext: (&net.Dialer{
			Timeout: opts.ConnectTimeout,
		}).DialContext,
	}
	return userAgentTransport{base: base, userAgent: opts.UserAgent}
}

// userAgentTransport sets the configured User-Agent on every outgoing
// request, including redirected ones, since http.Client rebuilds the
// request per hop rather than letting FetchLimited set the header once.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}

// decodeBody wraps body according to the response's Content-Encoding.
// gzip and deflate are decoded; brotli ("br") passes through undecoded.
func decodeBody(contentEncoding string, body io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "gzip":
		return gzip.NewReader(body)
	case "deflate":
		return flate.NewReader(body), nil
	case "", "identity", "br":
		return body, nil
	default:
		return body, nil
	}
}
