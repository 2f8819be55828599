package mdconvert

import (
	"fmt"

	"github.com/rohmanhakim/docs-crawler/internal/metadata"
	"github.com/rohmanhakim/docs-crawler/pkg/failure"
)

type ErrorCause string

const (
	ErrCauseConversionFailure ErrorCause = "conversion failed"
)

type ConversionError struct {
	URL     string
	Message string
	Cause   ErrorCause
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("mdconvert: %s: %s (%s)", e.Cause, e.Message, e.URL)
}

func (e *ConversionError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

var _ failure.ClassifiedError = (*ConversionError)(nil)

func mapConversionErrorToMetadataCause(cause ErrorCause) metadata.ErrorCause {
	switch cause {
	case ErrCauseConversionFailure:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
