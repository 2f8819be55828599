package scheduler

import (
	"fmt"

	"github.com/rohmanhakim/docs-crawler/internal/fetcher"
	"github.com/rohmanhakim/docs-crawler/internal/metadata"
)

// mapFetchErrorToMetadataCause translates a fetch failure into the
// canonical observational table. The mapping is for logging only and
// never steers admission, retry, or termination.
func mapFetchErrorToMetadataCause(cause fetcher.ErrorCause) metadata.ErrorCause {
	switch cause {
	case fetcher.ErrCauseBodyTooLarge:
		return metadata.CauseBodyTooLarge
	case fetcher.ErrCauseTransport:
		return metadata.CauseNetworkFailure
	default:
		return metadata.CauseUnknown
	}
}

// httpStatusError renders the 4xx/5xx note attached to a PageEntry that
// was otherwise fetched and converted successfully: the page is still
// cached, but the status is surfaced so a reader of the manifest knows
// the server considered the request an error.
func httpStatusError(status int) string {
	return fmt.Sprintf("server returned status %d", status)
}
