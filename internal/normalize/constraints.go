/*
Responsibilities
  - Generate frontmatter (title, source_url, canonical_url, crawl_depth,
    doc_id, content_hash, fetched_at, crawler_version)
  - Record structural observations without failing the page

Frontmatter generation is best-effort: arbitrary crawled content makes no
promise of exactly one H1 or an unbroken heading hierarchy, so a
structural irregularity here is logged through metadata.Sink and
otherwise ignored; the page is written either way.
*/
package normalize

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rohmanhakim/docs-crawler/internal/metadata"
	"github.com/rohmanhakim/docs-crawler/pkg/hashutil"
	"github.com/rohmanhakim/docs-crawler/pkg/urlutil"
)

// Normalize builds a NormalizedMarkdownDoc from sanitized Markdown
// content: a best-effort title, the canonical URL, content/doc-id hashes,
// and the structural observations recorded along the way.
func Normalize(pageURL url.URL, content []byte, param NormalizeParam, sink metadata.Sink) (NormalizedMarkdownDoc, *Error) {
	for _, observation := range validateStructure(content) {
		sink.RecordError("normalize", "Normalize", mapObservationToMetadataCause(), observation,
			metadata.Attr("url", pageURL.String()))
	}

	title := extractTitle(content, pageURL)
	canonicalURL := urlutil.Canonicalize(pageURL)

	docIDHash, err := hashutil.HashBytes([]byte(canonicalURL.String()), param.hashAlgo)
	if err != nil {
		return NormalizedMarkdownDoc{}, &Error{Message: err.Error(), Cause: ErrCauseHashComputationFailed}
	}
	contentHashValue, err := hashutil.HashBytes(content, param.hashAlgo)
	if err != nil {
		return NormalizedMarkdownDoc{}, &Error{Message: err.Error(), Cause: ErrCauseHashComputationFailed}
	}

	frontmatter := NewFrontmatter(
		title,
		pageURL.String(),
		canonicalURL.String(),
		param.crawlDepth,
		string(param.hashAlgo)+":"+docIDHash,
		string(param.hashAlgo)+":"+contentHashValue,
		param.fetchedAt,
		param.appVersion,
	)

	return NewNormalizedMarkdownDoc(frontmatter, content), nil
}

// validateStructure walks the Markdown AST looking for structural
// irregularities: missing H1, more than one H1, and skipped heading
// levels. It only reports them as strings for the caller to log.
func validateStructure(content []byte) []string {
	if len(bytes.TrimSpace(content)) == 0 {
		return []string{"markdown content is empty"}
	}

	p := parser.New()
	doc := markdown.Parse(content, p)

	var observations []string
	var headings []*ast.Heading

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if h, ok := node.(*ast.Heading); ok && entering {
			headings = append(headings, h)
		}
		return ast.GoToNext
	})

	h1Count := 0
	for _, h := range headings {
		if h.Level == 1 {
			h1Count++
		}
	}
	switch {
	case h1Count == 0:
		observations = append(observations, "document has no H1 heading")
	case h1Count > 1:
		observations = append(observations, fmt.Sprintf("document has %d H1 headings, expected exactly one", h1Count))
	}

	prevLevel := 0
	for _, h := range headings {
		if prevLevel != 0 && h.Level > prevLevel+1 {
			observations = append(observations, fmt.Sprintf("heading level skipped: H%d follows H%d", h.Level, prevLevel))
		}
		prevLevel = h.Level
	}

	return observations
}

// extractTitle returns the text of the first H1 heading, or, when none
// is present, the last non-empty path segment of pageURL.
func extractTitle(content []byte, pageURL url.URL) string {
	lines := bytes.Split(content, []byte("\n"))

	for _, line := range lines {
		line = bytes.TrimSpace(line)
		if bytes.HasPrefix(line, []byte("# ")) {
			title := strings.TrimSpace(stripInlineMarkdown(string(line[2:])))
			if title != "" {
				return title
			}
		}
	}

	return titleFromURL(pageURL)
}

func titleFromURL(pageURL url.URL) string {
	segments := strings.Split(strings.Trim(pageURL.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return pageURL.Host
}

// stripInlineMarkdown removes common inline markdown formatting from text.
func stripInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "`", "")
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = strings.ReplaceAll(text, "*", "")
	text = strings.ReplaceAll(text, "_", "")
	text = strings.ReplaceAll(text, "[", "")
	text = strings.ReplaceAll(text, "]", "")
	return text
}
