package cachepath

import (
	"fmt"

	"github.com/rohmanhakim/docs-crawler/pkg/failure"
)

type ErrorCause string

const (
	ErrCauseInvalidInput ErrorCause = "invalid input"
	ErrCauseIO           ErrorCause = "io"
)

type CacheError struct {
	Message   string
	Retryable bool
	Cause     ErrorCause
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cachepath: %s: %s", e.Cause, e.Message)
}

func (e *CacheError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

var _ failure.ClassifiedError = (*CacheError)(nil)
