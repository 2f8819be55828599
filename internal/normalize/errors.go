package normalize

import (
	"fmt"

	"github.com/rohmanhakim/docs-crawler/internal/metadata"
	"github.com/rohmanhakim/docs-crawler/pkg/failure"
)

type ErrorCause string

const (
	ErrCauseHashComputationFailed ErrorCause = "hash computation failed"
)

// Error is reserved for the one genuinely fatal case left in this
// package: the configured hash algorithm is unsupported. Every structural
// observation (empty content, missing or multiple H1, skipped heading
// level) is
// recorded through metadata.Sink instead of returned as an error; see
// validateStructure.
type Error struct {
	Message string
	Cause   ErrorCause
}

func (e *Error) Error() string {
	return fmt.Sprintf("normalize: %s: %s", e.Cause, e.Message)
}

func (e *Error) Severity() failure.Severity {
	return failure.SeverityFatal
}

var _ failure.ClassifiedError = (*Error)(nil)

func mapObservationToMetadataCause() metadata.ErrorCause {
	return metadata.CauseContentInvalid
}
