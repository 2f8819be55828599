package sanitizer

import (
	"regexp"
	"strings"
)

var (
	fenceBacktickRe = regexp.MustCompile("^\\s*(`{3,})(.*)$")
	fenceTildeRe    = regexp.MustCompile(`^\s*(~{3,})(.*)$`)

	headingRe       = regexp.MustCompile(`^#{1,6}\s`)
	footerHeadingRe = regexp.MustCompile(`(?i)^#{1,6}\s*footer\b`)
	hrRe            = regexp.MustCompile(`^(-{3,}|\*{3,}|_{3,})\s*$`)

	imgMarkdownRe = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	imgTagRe      = regexp.MustCompile(`(?i)<img\b[^>]*/?>`)
	svgOpenRe     = regexp.MustCompile(`(?i)<svg\b`)
	svgCloseRe    = regexp.MustCompile(`(?i)</svg\s*>`)

	linkRe       = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
	linkSepRe    = regexp.MustCompile(`[\s|,·•]+`)
	copyrightRe  = regexp.MustCompile(`(?i)^(©|\(c\))\s.*\b(19|20)\d{2}\b`)
	junkRe       = regexp.MustCompile(`^[\s[:punct:]]+$`)
	copyButtonRe = regexp.MustCompile(`(?i)^(copy|copy page|copied)$`)

	svgImageLiteral = "[SVG Image]"
)

// SanitizeMarkdown makes a single forward pass over the converted
// Markdown, line by line, dropping frontmatter, site
// chrome, and boilerplate while leaving headings, prose, and fenced code
// untouched. It never buffers more than the current line, so a
// "trailing-links block" or "footer section" is recognized and closed
// without lookahead: the line that ends the run is itself the line that
// flips the state bit back off.
func SanitizeMarkdown(raw []byte) []byte {
	lines := strings.Split(string(raw), "\n")

	var out []string
	var st lineState

	for _, line := range lines {
		emitted, ok := st.process(line)
		if !ok {
			continue
		}

		trimmed := strings.TrimRight(emitted, " \t\r")
		if trimmed == "" {
			if st.lastWasBlank {
				continue
			}
			st.lastWasBlank = true
		} else {
			st.lastWasBlank = false
		}
		out = append(out, trimmed)
	}

	result := strings.Join(out, "\n")
	result = strings.TrimRight(result, "\n")
	return []byte(result + "\n")
}

// process decides the fate of a single input line. The returned bool is
// false when the line is dropped; otherwise the returned string is the
// (possibly rewritten) line to emit, before the final right-trim and
// blank-collapse pass in SanitizeMarkdown.
func (st *lineState) process(line string) (string, bool) {
	if !st.frontDecided {
		if strings.TrimSpace(line) == "" {
			return "", false
		}
		st.frontDecided = true
		if strings.TrimSpace(line) == "---" {
			st.skippingFront = true
			return "", false
		}
	} else if st.skippingFront {
		if strings.TrimSpace(line) == "---" {
			st.skippingFront = false
		}
		return "", false
	}

	if st.inCodeFence {
		if st.closesFence(line) {
			st.inCodeFence = false
		}
		return line, true
	}
	if char, length, ok := detectFenceOpen(line); ok {
		st.inCodeFence = true
		st.fenceChar = char
		st.fenceLen = length
		return line, true
	}

	if st.inSVG {
		if svgCloseRe.MatchString(line) {
			st.inSVG = false
		}
		return "", false
	}
	if svgOpenRe.MatchString(line) {
		if !svgCloseRe.MatchString(line) {
			st.inSVG = true
		}
		return "", false
	}

	if st.inFooter {
		if headingRe.MatchString(line) {
			st.inFooter = false
		} else {
			return "", false
		}
	} else if footerHeadingRe.MatchString(line) {
		st.inFooter = true
		return "", false
	}

	if !st.sawContent && !st.sawHeading {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || hrRe.MatchString(trimmed) {
			return "", false
		}
	}

	line = imgMarkdownRe.ReplaceAllString(line, "")
	line = imgTagRe.ReplaceAllString(line, "")

	trimmed := strings.TrimSpace(line)
	isHeading := headingRe.MatchString(line)
	isBlank := trimmed == ""
	isLinkOnly := !isBlank && isLinkOnlyLine(trimmed)

	if isHeading {
		st.sawHeading = true
		st.sawContent = true
		st.inTrailingLinks = false
	} else if st.inTrailingLinks {
		if isBlank || isLinkOnly {
			return "", false
		}
		st.inTrailingLinks = false
	} else if !st.sawHeading && isLinkOnly {
		return "", false
	} else if st.sawContent && isLinkOnly {
		st.inTrailingLinks = true
		return "", false
	}

	if copyrightRe.MatchString(trimmed) {
		return "", false
	}
	if !isBlank && junkRe.MatchString(trimmed) {
		return "", false
	}
	if copyButtonRe.MatchString(trimmed) {
		return "", false
	}

	if strings.Contains(line, svgImageLiteral) {
		line = strings.ReplaceAll(line, svgImageLiteral, "")
		if strings.TrimSpace(line) == "" {
			return "", false
		}
	}

	if !isBlank {
		st.sawContent = true
	}

	return line, true
}

// detectFenceOpen reports whether line opens a fenced code block, along
// with the fence character and run length (CommonMark requires the
// closing fence to be at least as long as the opening one).
func detectFenceOpen(line string) (byte, int, bool) {
	if m := fenceBacktickRe.FindStringSubmatch(line); m != nil {
		return '`', len(m[1]), true
	}
	if m := fenceTildeRe.FindStringSubmatch(line); m != nil {
		return '~', len(m[1]), true
	}
	return 0, 0, false
}

// closesFence reports whether line closes the currently open fence: a
// line consisting only of the same fence character, run at least as long
// as the opener.
func (st *lineState) closesFence(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if byte(r) != st.fenceChar {
			return false
		}
	}
	return len(trimmed) >= st.fenceLen
}

// isLinkOnlyLine reports whether a trimmed, non-blank line is composed
// entirely of Markdown links and separator punctuation, the shape of a
// navigation bar or a trailing "related links" block.
func isLinkOnlyLine(trimmed string) bool {
	stripped := linkRe.ReplaceAllString(trimmed, "")
	stripped = linkSepRe.ReplaceAllString(stripped, "")
	return stripped == "" && linkRe.MatchString(trimmed)
}
