package manifest

import (
	"fmt"

	"github.com/rohmanhakim/docs-crawler/pkg/failure"
)

type ErrorCause string

const (
	ErrCauseCorrupt ErrorCause = "manifest corrupt"
	ErrCauseIO      ErrorCause = "io"
)

// Error is never fatal to a crawl: a read failure triggers a full
// recrawl, and a write failure is reported but doesn't retroactively
// invalidate the pages already written to disk.
type Error struct {
	Path    string
	Message string
	Cause   ErrorCause
}

func (e *Error) Error() string {
	return fmt.Sprintf("manifest: %s: %s (%s)", e.Cause, e.Message, e.Path)
}

func (e *Error) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

var _ failure.ClassifiedError = (*Error)(nil)
