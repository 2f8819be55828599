package sanitizer_test

import (
	"testing"

	"github.com/rohmanhakim/docs-crawler/internal/sanitizer"
	"github.com/stretchr/testify/assert"
)

func sanitize(s string) string {
	return string(sanitizer.SanitizeMarkdown([]byte(s)))
}

func TestSanitizeMarkdown_DropsFrontmatter(t *testing.T) {
	in := "---\ntitle: Page\nlayout: doc\n---\n\n# Hi\n\nBody\n"
	assert.Equal(t, "# Hi\n\nBody\n", sanitize(in))
}

func TestSanitizeMarkdown_FrontmatterAfterLeadingBlankLines(t *testing.T) {
	in := "\n\n---\ntitle: Page\n---\n# Hi\n"
	assert.Equal(t, "# Hi\n", sanitize(in))
}

func TestSanitizeMarkdown_PreservesFencedCodeVerbatim(t *testing.T) {
	in := "# Hi\n\n```go\n![not an image](x)\n<svg>\nCopy\n```\n"
	out := sanitize(in)
	assert.Contains(t, out, "![not an image](x)")
	assert.Contains(t, out, "<svg>")
	assert.Contains(t, out, "Copy")
}

func TestSanitizeMarkdown_DropsLeadingNavigationLinks(t *testing.T) {
	in := "[Home](/) | [Docs](/docs) | [Blog](/blog)\n\n# Hi\n\nBody\n"
	assert.Equal(t, "# Hi\n\nBody\n", sanitize(in))
}

func TestSanitizeMarkdown_DropsTrailingLinkBlock(t *testing.T) {
	in := "# Hi\n\nBody\n\n[Prev](/a)\n[Next](/b)\n"
	assert.Equal(t, "# Hi\n\nBody\n", sanitize(in))
}

func TestSanitizeMarkdown_TrailingLinksEndOnHeading(t *testing.T) {
	in := "# Hi\n\nBody\n\n[Prev](/a)\n\n# More\n\nText\n"
	out := sanitize(in)
	assert.NotContains(t, out, "[Prev](/a)")
	assert.Contains(t, out, "# More")
	assert.Contains(t, out, "Text")
}

func TestSanitizeMarkdown_DropsFooterSection(t *testing.T) {
	in := "# Hi\n\nBody\n\n## Footer\n\nlegal stuff\nmore legal\n\n# After\n\nkept\n"
	out := sanitize(in)
	assert.NotContains(t, out, "legal stuff")
	assert.Contains(t, out, "# After")
	assert.Contains(t, out, "kept")
}

func TestSanitizeMarkdown_StripsImagesAndSVG(t *testing.T) {
	in := "# Hi\n\n![logo](logo.png) Body <img src=\"x.png\">\n\n<svg>\n<path d=\"z\"/>\n</svg>\n\nmore\n"
	out := sanitize(in)
	assert.NotContains(t, out, "logo.png")
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "path")
	assert.Contains(t, out, "Body")
	assert.Contains(t, out, "more")
}

func TestSanitizeMarkdown_DropsCopyrightAndButtonResidue(t *testing.T) {
	in := "# Hi\n\nBody\n\nCopy\n\nCopied\n\n© Example Corp 2024\n"
	assert.Equal(t, "# Hi\n\nBody\n", sanitize(in))
}

func TestSanitizeMarkdown_StripsSVGImageLiteral(t *testing.T) {
	in := "# Hi\n\n[SVG Image]\n\nBody [SVG Image] tail\n"
	out := sanitize(in)
	assert.NotContains(t, out, "[SVG Image]")
	assert.Contains(t, out, "Body  tail")
}

func TestSanitizeMarkdown_CollapsesBlankRuns(t *testing.T) {
	in := "# Hi\n\n\n\nBody\n"
	assert.Equal(t, "# Hi\n\nBody\n", sanitize(in))
}

func TestSanitizeMarkdown_Idempotent(t *testing.T) {
	inputs := []string{
		"---\ntitle: x\n---\n# Hi\n\nBody\n",
		"[Home](/)\n\n# Hi\n\nBody\n\n[Next](/n)\n",
		"# Hi\n\n```py\nprint('x')\n```\n\ntext\n",
		"# Hi\n\nBody\n\n## Footer\n\ndropped\n",
		"",
	}
	for _, in := range inputs {
		once := sanitize(in)
		assert.Equal(t, once, sanitize(once))
	}
}

func TestSanitizeMarkdown_AlwaysEndsWithNewline(t *testing.T) {
	assert.Equal(t, "\n", sanitize(""))
	assert.Equal(t, "text\n", sanitize("text"))
}
