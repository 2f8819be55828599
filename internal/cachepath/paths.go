package cachepath

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/rohmanhakim/docs-crawler/pkg/hashutil"
)

const manifestDirName = ".gg"
const manifestFileName = "manifest.json"

// SiteDir returns R/sites/<scheme>/<host_dir>, where host_dir is the
// lowercased host suffixed with "_port<n>" iff u carries an explicit,
// non-default port.
func (c Cache) SiteDir(u url.URL) (string, error) {
	if u.Hostname() == "" {
		return "", &CacheError{Message: "url has no host", Cause: ErrCauseInvalidInput}
	}
	hostDir := hostPortDirname(u)
	return path.Join(c.root, "sites", strings.ToLower(u.Scheme), hostDir), nil
}

// SubtreeDir joins SiteDir(rootURL) with each non-empty, sanitized path
// segment of rootURL.
func (c Cache) SubtreeDir(rootURL url.URL) (string, error) {
	siteDir, err := c.SiteDir(rootURL)
	if err != nil {
		return "", err
	}
	segments := splitPath(rootURL.Path)
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, siteDir)
	for _, seg := range segments {
		parts = append(parts, sanitizeComponent(seg))
	}
	return path.Join(parts...), nil
}

// PagePath maps u to the Markdown file that caches it. A bare or trailing-
// slash path resolves to index.md; otherwise the last segment becomes the
// file base (html-ish extensions stripped), and a query string appends a
// short hash suffix so query-distinct URLs land on distinct files.
func (c Cache) PagePath(u url.URL) (string, error) {
	siteDir, err := c.SiteDir(u)
	if err != nil {
		return "", err
	}

	if u.Path == "" || u.Path == "/" {
		return path.Join(siteDir, "index.md"), nil
	}

	if strings.HasSuffix(u.Path, "/") {
		subtreeDir, err := c.SubtreeDir(u)
		if err != nil {
			return "", err
		}
		return path.Join(subtreeDir, "index.md"), nil
	}

	segments := splitPath(u.Path)
	dirSegments, lastSegment := segments[:len(segments)-1], segments[len(segments)-1]

	parts := make([]string, 0, len(dirSegments)+1)
	parts = append(parts, siteDir)
	for _, seg := range dirSegments {
		parts = append(parts, sanitizeComponent(seg))
	}

	base := stripHTMLExtension(lastSegment)
	base = sanitizeComponent(base)
	if base == "" {
		base = "index"
	}

	if u.RawQuery != "" {
		queryHash, err := hashutil.HashBytes([]byte(u.RawQuery), hashutil.HashAlgoBLAKE3)
		if err != nil {
			return "", &CacheError{Message: fmt.Sprintf("hashing query: %v", err), Cause: ErrCauseIO}
		}
		base = base + "__q" + queryHash[:8]
	}

	parts = append(parts, base+".md")
	return path.Join(parts...), nil
}

// ManifestPath is <subtree_dir>/.gg/manifest.json.
func (c Cache) ManifestPath(rootURL url.URL) (string, error) {
	subtreeDir, err := c.SubtreeDir(rootURL)
	if err != nil {
		return "", err
	}
	return path.Join(subtreeDir, manifestDirName, manifestFileName), nil
}

// hostPortDirname lowercases the host and appends "_port<n>" iff the URL
// carries an explicit port that differs from the scheme's default
// (80 for http, 443 for https).
func hostPortDirname(u url.URL) string {
	host := strings.ToLower(u.Hostname())
	portStr := u.Port()
	if portStr == "" {
		return host
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host
	}

	defaultPort := 80
	if strings.EqualFold(u.Scheme, "https") {
		defaultPort = 443
	}
	if port == defaultPort {
		return host
	}
	return fmt.Sprintf("%s_port%d", host, port)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// stripHTMLExtension removes a trailing .html, .htm, or .xhtml suffix,
// case-insensitively.
func stripHTMLExtension(segment string) string {
	lower := strings.ToLower(segment)
	for _, ext := range []string{".xhtml", ".html", ".htm"} {
		if strings.HasSuffix(lower, ext) {
			return segment[:len(segment)-len(ext)]
		}
	}
	return segment
}

// sanitizeComponent keeps ASCII alphanumerics, '-', '_', '.'; every other
// byte becomes %XX uppercase hex. Deterministic and injective over byte
// sequences; avoids filesystem-illegal characters and case-folding
// collisions across platforms.
func sanitizeComponent(segment string) string {
	var b strings.Builder
	for i := 0; i < len(segment); i++ {
		c := segment[i]
		if isUnreservedPathByte(c) {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func isUnreservedPathByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.':
		return true
	default:
		return false
	}
}
