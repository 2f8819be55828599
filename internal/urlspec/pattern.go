package urlspec

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/rohmanhakim/docs-crawler/pkg/urlutil"
)

// UrlPattern is a compiled URL-shaped glob. Invariant: Root is a prefix of
// every URL the matcher accepts (enforced by construction: the matcher is
// derived from the same string that produced Root).
type UrlPattern struct {
	original string
	root     url.URL
	matcher  *regexp.Regexp
}

func (p UrlPattern) Original() string { return p.original }
func (p UrlPattern) Root() url.URL    { return p.root }

// Matches reports whether the fragment-stripped form of u satisfies the
// pattern.
func (p UrlPattern) Matches(u url.URL) bool {
	return p.matcher.MatchString(urlutil.CanonicalKey(u))
}

// MatchesString is the manifest-scanning variant: pattern matching against
// page.url strings already stored in a CrawlManifest.
func (p UrlPattern) MatchesString(rawURL string) bool {
	return p.matcher.MatchString(rawURL)
}

// IsSubtreePattern is true iff the pattern's original text ends with one of
// the subtree-wide suffixes, in which case resolution short-circuits to the
// whole subtree directory instead of filtering individual manifest rows.
func (p UrlPattern) IsSubtreePattern() bool {
	return strings.HasSuffix(p.original, "/**") ||
		strings.HasSuffix(p.original, "/**/*") ||
		strings.HasSuffix(p.original, "/**/*.*")
}

// containsGlob reports whether the token carries any glob metacharacter.
func containsGlob(token string) bool {
	return strings.ContainsAny(token, "*?[")
}

// compilePattern extracts the pattern's root (the prefix up to and
// including the last "/" before the first glob character) and compiles an
// anchored URL-matching regex from the glob syntax.
func compilePattern(token string) (UrlPattern, error) {
	idx := firstGlobIndex(token)
	if idx < 0 {
		// containsGlob already guaranteed a glob char exists; unreachable
		// in practice, kept defensive since it guards a slice below.
		return UrlPattern{}, fmt.Errorf("no glob character found")
	}

	slashIdx := strings.LastIndexByte(token[:idx], '/')
	if slashIdx < 0 {
		return UrlPattern{}, fmt.Errorf("no root path separator before glob character")
	}

	rootStr := token[:slashIdx+1]
	root, err := url.Parse(rootStr)
	if err != nil || !root.IsAbs() {
		return UrlPattern{}, fmt.Errorf("pattern root %q is not an absolute URL: %w", rootStr, err)
	}

	matcher, err := compileGlobURLRegex(token)
	if err != nil {
		return UrlPattern{}, err
	}

	return UrlPattern{
		original: token,
		root:     *root,
		matcher:  matcher,
	}, nil
}

func firstGlobIndex(token string) int {
	return strings.IndexAny(token, "*?[")
}

// compileGlobURLRegex translates glob syntax into an anchored regex:
//   - "**" matches any run of characters, including "/"; "**/" matches
//     zero or more whole path segments, so "a/**/*" also matches "a/x"
//   - "*"  matches any run of non-"/" characters
//   - "?"  matches exactly one non-"/" character
//   - "[...]" is passed through as a regex character class
//   - every other regex metacharacter is escaped
func compileGlobURLRegex(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteByte('^')

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				if i+2 < len(runes) && runes[i+2] == '/' {
					b.WriteString("(?:.*/)?")
					i += 2
				} else {
					b.WriteString(".*")
					i++
				}
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		case '[':
			end := i + 1
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			if end >= len(runes) {
				// Unterminated class: treat the bracket literally.
				b.WriteString(regexp.QuoteMeta("["))
				continue
			}
			b.WriteByte('[')
			b.WriteString(string(runes[i+1 : end]))
			b.WriteByte(']')
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(runes[i])))
		}
	}
	b.WriteByte('$')

	return regexp.Compile(b.String())
}
