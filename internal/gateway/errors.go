package gateway

import (
	"fmt"

	"github.com/rohmanhakim/docs-crawler/pkg/failure"
)

type ErrorCause string

const (
	ErrCauseInvalidInput ErrorCause = "invalid input"
	ErrCauseFetchFailed  ErrorCause = "transport"
	ErrCauseNotCacheable ErrorCause = "not cacheable"
	ErrCauseIO           ErrorCause = "io"
)

// Error carries the failing URL so a single-page request surfaces it
// directly to the caller, unlike a crawl task's failure, which is only
// recorded.
type Error struct {
	URL     string
	Message string
	Cause   ErrorCause
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %s: %s (%s)", e.Cause, e.Message, e.URL)
}

func (e *Error) Severity() failure.Severity {
	return failure.SeverityFatal
}

var _ failure.ClassifiedError = (*Error)(nil)
