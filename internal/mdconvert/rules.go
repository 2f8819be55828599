/*
Responsibilities
  - HTML -> Markdown conversion with no inferred structure, no code
    reformatting
  - Code-block language normalization with forced fenced output
  - Chrome removal: navigation, forms, and media elements
  - Link harvesting, resolved against the page's final URL

Conversion Rules
  - Headings map directly (h1-h6 to # - ######)
  - Code blocks are rendered fenced, never indented, with a normalized
    language tag
  - Tables converted structurally (GFM)
  - DOM order preserved throughout
*/
package mdconvert

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/docs-crawler/internal/metadata"
	"github.com/rohmanhakim/docs-crawler/internal/sanitizer"
	"golang.org/x/net/html"
)

// chromeSelectors lists the elements the Convert stage strips before
// rendering: navigation and form chrome, plus media elements that have
// no Markdown rendering worth keeping.
var chromeSelectors = []string{"nav", "form", "img", "svg", "picture", "source"}

var (
	langClassRe = regexp.MustCompile(`(?:^|\s)(?:language|lang)-([a-zA-Z0-9+#.]+)`)
	langAliases = map[string]string{
		"ts":    "typescript",
		"js":    "javascript",
		"py":    "python",
		"sh":    "bash",
		"shell": "bash",
	}
)

// sentinelMarker delimits the placeholder text Convert substitutes for
// each <pre> before handing the tree to the Markdown converter, so that a
// forced fenced block can be spliced back in verbatim afterward,
// unaffected by the converter's own code-block rendering or any inline
// escaping it applies to ordinary text.
const sentinelMarker = '\uE000'

// Convert runs the conversion stage against a DOM already produced by
// the HTML parser: DOM repair, link harvesting (before chrome is
// stripped, so navigation links remain discoverable for crawling), chrome
// removal, code-block language normalization, and HTML->Markdown
// rendering.
func Convert(doc *html.Node, finalURL url.URL, recordLinks bool, sink metadata.Sink) (Result, *ConversionError) {
	if doc == nil {
		convErr := &ConversionError{URL: finalURL.String(), Message: "cannot convert nil HTML document", Cause: ErrCauseConversionFailure}
		sink.RecordError("mdconvert", "Convert", mapConversionErrorToMetadataCause(convErr.Cause), convErr.Error())
		return Result{}, convErr
	}

	repaired := sanitizer.Repair(doc)

	var links []url.URL
	if recordLinks {
		links = extractLinks(repaired, finalURL)
	}

	stripChrome(repaired)
	sentinels := substituteCodeBlocks(repaired)

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	markdown, err := conv.ConvertNode(repaired)
	if err != nil {
		convErr := &ConversionError{URL: finalURL.String(), Message: err.Error(), Cause: ErrCauseConversionFailure}
		sink.RecordError("mdconvert", "Convert", mapConversionErrorToMetadataCause(convErr.Cause), convErr.Error())
		return Result{}, convErr
	}

	markdown = resolveSentinels(markdown, sentinels)

	return NewResult(markdown, links), nil
}

// stripChrome removes every element matching chromeSelectors from doc in
// place.
func stripChrome(doc *html.Node) {
	docQuery := goquery.NewDocumentFromNode(doc)
	docQuery.Find(strings.Join(chromeSelectors, ", ")).Each(func(i int, s *goquery.Selection) {
		if node := s.Get(0); node != nil && node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
	})
}

// substituteCodeBlocks replaces every <pre> subtree with a single text
// node carrying a unique sentinel, returning the map from sentinel to the
// literal fenced block it stands for. The converter never sees the
// original <pre>/<code> markup, so its own (indented-by-default) code
// handling never applies.
func substituteCodeBlocks(doc *html.Node) map[string]string {
	sentinels := make(map[string]string)
	var idx int

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "pre" {
			idx++
			key := fmt.Sprintf("%cCODEBLOCK%d%c", sentinelMarker, idx, sentinelMarker)
			lang := codeLanguage(n)
			text := strings.TrimRight(extractText(n), "\n")
			sentinels[key] = "```" + lang + "\n" + text + "\n```\n"

			if n.Parent != nil {
				n.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: key}, n)
				n.Parent.RemoveChild(n)
			}
			return
		}
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			walk(c)
			c = next
		}
	}
	walk(doc)

	return sentinels
}

// resolveSentinels splices each sentinel's literal fenced block back into
// the rendered Markdown.
func resolveSentinels(markdown []byte, sentinels map[string]string) []byte {
	result := string(markdown)
	for key, fenced := range sentinels {
		result = strings.ReplaceAll(result, key, fenced)
	}
	return []byte(result)
}

// codeLanguage extracts a language hint from a <pre> (or its <code>
// child)'s class attribute and normalizes common aliases.
func codeLanguage(pre *html.Node) string {
	if lang := langFromAttrs(pre); lang != "" {
		return lang
	}
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "code" {
			if lang := langFromAttrs(c); lang != "" {
				return lang
			}
		}
	}
	return ""
}

func langFromAttrs(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		if m := langClassRe.FindStringSubmatch(" " + a.Val); m != nil {
			return normalizeLang(m[1])
		}
	}
	return ""
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(lang)
	if alias, ok := langAliases[lang]; ok {
		return alias
	}
	return lang
}

// extractText concatenates every descendant text node under n, in
// document order; syntax-highlighted code is usually wrapped in nested
// <span> elements, so a naive n.FirstChild.Data would drop most of it.
func extractText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// extractLinks harvests <a href> targets in document order, resolved
// against finalURL, fragment-stripped, and filtered to http/https.
func extractLinks(doc *html.Node, finalURL url.URL) []url.URL {
	docQuery := goquery.NewDocumentFromNode(doc)
	seen := make(map[string]bool)
	var links []url.URL

	docQuery.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		parsed, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := finalURL.ResolveReference(parsed)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		resolved.Fragment = ""

		key := resolved.String()
		if seen[key] {
			return
		}
		seen[key] = true
		links = append(links, *resolved)
	})

	return links
}
