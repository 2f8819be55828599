package manifest

import (
	"encoding/json"
	"os"

	"github.com/rohmanhakim/docs-crawler/internal/cachepath"
)

// Read loads the manifest at path. A parse failure is reported as
// ErrCauseCorrupt rather than propagated as a hard error; callers treat
// a non-nil error as "absent" and recrawl.
func Read(path string) (*Manifest, *Error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: err.Error(), Cause: ErrCauseIO}
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &Error{Path: path, Message: err.Error(), Cause: ErrCauseCorrupt}
	}
	return &m, nil
}

// Write pretty-prints the manifest and commits it atomically, matching
// cachepath's write-to-tmp-then-rename idiom used for every other
// on-disk artifact.
func Write(path string, m *Manifest) *Error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return &Error{Path: path, Message: err.Error(), Cause: ErrCauseIO}
	}
	data = append(data, '\n')

	if err := cachepath.WriteAtomic(path, data); err != nil {
		return &Error{Path: path, Message: err.Error(), Cause: ErrCauseIO}
	}
	return nil
}

// FreshFor reports whether a manifest previously written for rootURL can
// be reused verbatim: refresh must be false, the file must exist and
// parse, and root_url must match by plain string equality. String
// equality is deliberate: trailing-slash differences force a recrawl.
func FreshFor(path, rootURL string, refresh bool) (*Manifest, bool) {
	if refresh {
		return nil, false
	}
	m, err := Read(path)
	if err != nil {
		return nil, false
	}
	if m.RootURL != rootURL {
		return nil, false
	}
	return m, true
}
