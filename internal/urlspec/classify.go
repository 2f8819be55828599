package urlspec

import (
	"net/url"
	"strings"
)

/*
Responsibilities

- Classify a raw command-line token as a single page, a crawl root, or a
  URL-shaped glob pattern.
- Extract the pattern root and compile the glob matcher for Pattern tokens.

Classification does not perform any network I/O; it is a pure parse.
*/

// Classify resolves a raw token into a SourceSpec. Rules apply top-down:
// glob characters win (unless ForcePage), then the token must parse as an
// absolute URL, then ForceCrawl and a trailing slash each select a crawl
// root, and anything left is a single page.
func Classify(token string, opts ParseOpts) (SourceSpec, error) {
	if !opts.ForcePage && containsGlob(token) {
		pattern, err := compilePattern(token)
		if err != nil {
			return SourceSpec{}, &ParseError{
				Token:   token,
				Message: err.Error(),
				Cause:   ErrCauseInvalidPattern,
			}
		}
		return NewPatternSpec(pattern), nil
	}

	parsed, err := url.Parse(token)
	if err != nil || !parsed.IsAbs() {
		msg := "not an absolute URL"
		if err != nil {
			msg = err.Error()
		}
		return SourceSpec{}, &ParseError{
			Token:   token,
			Message: msg,
			Cause:   ErrCauseInvalidURL,
		}
	}

	if opts.ForceCrawl && !opts.ForcePage {
		return NewCrawlRootSpec(*parsed), nil
	}

	if !opts.ForcePage && strings.HasSuffix(strings.TrimSpace(token), "/") {
		return NewCrawlRootSpec(*parsed), nil
	}

	return NewPageSpec(*parsed), nil
}
