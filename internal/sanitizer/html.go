package sanitizer

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Repair runs structural DOM cleanup ahead of Markdown conversion: heading
// levels are renumbered so they never skip more than one level, then empty
// and duplicate nodes are pruned bottom-up. It operates on a clone and
// never mutates doc, and it never fails: a document with no headings at
// all, or no duplicates, simply passes through unchanged.
func Repair(doc *html.Node) *html.Node {
	if doc == nil {
		return doc
	}
	normalized := normalizeHeadingLevels(doc)
	return removeDuplicateAndEmptyNode(normalized)
}

// normalizeHeadingLevels renumbers heading levels to fix skipped levels.
// Headings should not skip more than one level: h1 -> h3 becomes h1 -> h2.
// Going backward (e.g. h4 -> h2) is left alone, since it legitimately opens
// a new section.
func normalizeHeadingLevels(doc *html.Node) *html.Node {
	docQuery := goquery.NewDocumentFromNode(doc)
	clonedDoc := goquery.CloneDocument(docQuery)

	var headings []*html.Node
	clonedDoc.Find("h1, h2, h3, h4, h5, h6").Each(func(i int, s *goquery.Selection) {
		if node := s.Get(0); node != nil {
			headings = append(headings, node)
		}
	})

	if len(headings) == 0 {
		return clonedDoc.Get(0)
	}

	prevEffectiveLevel := 0
	for _, node := range headings {
		currentLevel := 0
		if len(node.Data) == 2 && node.Data[0] == 'h' {
			currentLevel = int(node.Data[1] - '0')
		}
		if currentLevel < 1 || currentLevel > 6 {
			continue
		}

		effectiveLevel := currentLevel
		if prevEffectiveLevel == 0 || currentLevel > prevEffectiveLevel {
			if currentLevel > prevEffectiveLevel+1 {
				newLevel := prevEffectiveLevel + 1
				if newLevel >= 1 && newLevel <= 6 {
					node.Data = fmt.Sprintf("h%d", newLevel)
					effectiveLevel = newLevel
				}
			}
		}

		prevEffectiveLevel = effectiveLevel
	}

	return clonedDoc.Get(0)
}

// removeDuplicateAndEmptyNode prunes empty containers bottom-up, then
// removes duplicate structural nodes (keeping the first occurrence).
// Headings and semantic containers are never deduplicated.
func removeDuplicateAndEmptyNode(doc *html.Node) *html.Node {
	docQuery := goquery.NewDocumentFromNode(doc)
	clonedDoc := goquery.CloneDocument(docQuery)
	rootNode := clonedDoc.Get(0)

	removeEmptyNodesBottomUp(rootNode)
	removeDuplicateNodes(rootNode)

	return rootNode
}
