package cachepath

import (
	"fmt"
	"os"

	"github.com/rohmanhakim/docs-crawler/pkg/fileutil"
)

/*
Responsibilities

- Map a URL onto a single, deterministic location on disk.
- Own the cache root directory and the atomic-write mechanism used by every
  writer (crawl pages, single pages, manifests).

Cache is a value: it carries only the root path, is safe to share across
goroutines, and performs no locking of its own. Callers write to distinct
target paths, and WriteAtomic's rename is the only cross-goroutine
synchronization point: last writer wins, readers always observe a complete
file.
*/

// Cache holds the root of the on-disk page cache. Root must exist and be
// writable at construction time.
type Cache struct {
	root string
}

// New constructs a Cache rooted at root, creating it if necessary.
func New(root string) (Cache, error) {
	if err := fileutil.EnsureDir(root); err != nil {
		return Cache{}, &CacheError{
			Message: fmt.Sprintf("cache root %q: %v", root, err),
			Cause:   ErrCauseIO,
		}
	}
	return Cache{root: root}, nil
}

// ResolveRoot picks the cache root: an explicit dir wins; otherwise
// GG_CACHE_DIR; otherwise the platform user cache directory under
// dev/gg/gg.
func ResolveRoot(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if envDir := os.Getenv("GG_CACHE_DIR"); envDir != "" {
		return envDir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", &CacheError{
			Message: fmt.Sprintf("resolving platform cache dir: %v", err),
			Cause:   ErrCauseIO,
		}
	}
	sep := string(os.PathSeparator)
	return base + sep + "dev" + sep + "gg" + sep + "gg", nil
}

func (c Cache) Root() string { return c.root }
