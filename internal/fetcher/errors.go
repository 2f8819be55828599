package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/docs-crawler/pkg/failure"
)

type ErrorCause string

const (
	ErrCauseTransport    ErrorCause = "transport"
	ErrCauseBodyTooLarge ErrorCause = "body too large"
)

// FetchError is always scoped to the single URL that produced it. A crawl
// task records it on the page's manifest row rather than aborting the
// crawl, so Severity is always Recoverable here; single-page callers
// surface it directly instead.
type FetchError struct {
	URL     string
	Message string
	Cause   ErrorCause
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher: %s: %s (%s)", e.Cause, e.Message, e.URL)
}

func (e *FetchError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

var _ failure.ClassifiedError = (*FetchError)(nil)
