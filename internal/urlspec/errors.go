package urlspec

import (
	"fmt"

	"github.com/rohmanhakim/docs-crawler/pkg/failure"
)

type ErrorCause string

const (
	ErrCauseInvalidURL     ErrorCause = "invalid url"
	ErrCauseInvalidPattern ErrorCause = "invalid pattern"
)

// ParseError is always fatal to the single classify() call that produced it;
// it never has a retryable variant, since a malformed token cannot become
// well-formed by retrying.
type ParseError struct {
	Token   string
	Message string
	Cause   ErrorCause
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("urlspec: %s: %s (%s)", e.Cause, e.Message, e.Token)
}

func (e *ParseError) Severity() failure.Severity {
	return failure.SeverityFatal
}

var _ failure.ClassifiedError = (*ParseError)(nil)
