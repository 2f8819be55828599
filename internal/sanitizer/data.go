/*
Package sanitizer covers the cleanup halves of the Markdown pipeline that
aren't the HTML->Markdown conversion itself:

  - DOM repair, applied to the parsed document before conversion
    (Repair in html.go): heading-level renumbering and bottom-up
    removal of empty/duplicate nodes. This is unconditional structural
    cleanup, not a content-quality gate; it never fails a document.
  - Markdown sanitize, applied to the converted Markdown text
    (SanitizeMarkdown in linefilter.go): a line-oriented stream filter
    removing frontmatter, chrome, and boilerplate, driven by a small
    set of state bits.

No document is ever rejected on structural grounds; the whole document is
always converted and the line filter does the cleanup.
*/
package sanitizer
