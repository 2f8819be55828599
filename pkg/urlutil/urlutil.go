package urlutil

import "net/url"

// Canonicalize strips the fragment from a URL, producing the identity used
// for visited-set deduplication. Query strings are deliberately preserved:
// two URLs differing only in query are distinct pages (see cachepath's
// query-hash suffix), so canonicalization must not collapse them.
//
// Properties:
//   - Pure: no state, no memory
//   - Deterministic: same input always produces same output
//   - Idempotent: Canonicalize(Canonicalize(url)) == Canonicalize(url)
//   - Context-free: does not depend on crawl history
func Canonicalize(sourceUrl url.URL) url.URL {
	// Create a copy to avoid mutating the original
	canonical := sourceUrl
	canonical.Fragment = ""
	canonical.RawFragment = ""
	return canonical
}

// CanonicalKey returns the string used as the visited-set identity.
func CanonicalKey(sourceUrl url.URL) string {
	canonical := Canonicalize(sourceUrl)
	return canonical.String()
}

// LowerASCII converts ASCII characters to lowercase without allocating when
// the input is already lowercase. Non-ASCII bytes are left unchanged.
func LowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
