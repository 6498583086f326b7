package markdown

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Caret block quote shorthand at line start
	caretQuote = regexp.MustCompile(`(?m)^\^ *`)

	// ATX header missing the space after its marker run
	headerMissingSpace = regexp.MustCompile(`(?m)^(#{1,6})([^#\s])`)

	// Ordered list marker missing its trailing space
	orderedMissingSpace = regexp.MustCompile(`(?m)^([ \t]*)(\d+\.)(\S)`)

	// Literal bullet characters used as list markers
	bulletMarker = regexp.MustCompile(`(?m)^([ \t]*)•[ \t]*`)

	// Dash or asterisk marker missing its trailing space. The doubled
	// forms (** and --) are emphasis and rules, not list markers.
	dashMissingSpace     = regexp.MustCompile(`(?m)^([ \t]*)-([^\s-])`)
	asteriskMissingSpace = regexp.MustCompile(`(?m)^([ \t]*)\*([^\s*])`)

	// A plus sign is not a list marker here; escape it so it stays text.
	leadingPlus = regexp.MustCompile(`(?m)^([ \t]*)\+`)

	// Action link shorthand: a whole line of the form >>[text](url).
	// The double angle bracket may already be HTML-escaped.
	actionLink       = regexp.MustCompile(`(?m)^[ \t]*(?:&gt;&gt;|>>)[ \t]*\[([^\]\n]+)\]\((\S+?)\)[ \t]*$`)
	actionLinkMarker = regexp.MustCompile(`(?m)^([ \t]*)(?:&gt;&gt;|>>)[ \t]*(\[)`)

	// Placeholder inside a Markdown link destination
	placeholderInLink    = regexp.MustCompile(`\]\(([^()\s]*)\(\(([\w -]+)\)\)([^()\s]*)\)`)
	protectedPlaceholder = regexp.MustCompile(`!!([\w -]+)##`)

	// Fenced code block delimiter (backticks or tildes)
	fencedCodeBlock = regexp.MustCompile("^(```|~~~)")

	// Header pattern (ATX style)
	headerPattern = regexp.MustCompile(`^#{1,6}\s`)

	// Blockquote pattern
	blockquotePattern = regexp.MustCompile(`^>`)

	// List item patterns (unordered and ordered)
	unorderedListPattern = regexp.MustCompile(`^[-*]\s`)
	orderedListPattern   = regexp.MustCompile(`^[0-9]+\.\s`)

	// List in blockquote patterns
	blockquoteUnorderedList = regexp.MustCompile(`^>\s*[-*]\s`)
	blockquoteOrderedList   = regexp.MustCompile(`^>\s*[0-9]+\.\s`)

	// Indented code block (4 spaces or tab)
	indentedCodeBlock = regexp.MustCompile(`^(    |\t)`)
)

const defaultActionLinkImage = "https://static.notifications.service.gov/images/action-link-arrow.png"

// actionLinkImageURL resolves the call-to-action arrow asset, which differs
// per deployment environment.
func actionLinkImageURL() string {
	if v := os.Getenv("NOTIFY_ACTION_LINK_IMAGE_URL"); v != "" {
		return v
	}
	return defaultActionLinkImage
}

// prepareEmail normalizes template Markdown for the email HTML renderer.
// Order matters: line endings first, then shorthand conversions, then
// spacing fixes, then link placeholder protection.
func prepareEmail(content string) string {
	content = normalizeLineEndings(content)
	content = insertActionLinks(content)
	content = convertCaretQuotes(content)
	content = insertMarkerSpaces(content)
	content = ensureBlankBeforeBlocks(content)
	content = protectPlaceholdersInLinks(content)
	content = compressBlankLines(content)
	return content
}

// prepareLetter normalizes template Markdown for the letter preview
// renderer. Action links carry no styling in letters and degrade to
// ordinary links.
func prepareLetter(content string) string {
	content = normalizeLineEndings(content)
	content = stripActionLinkMarkers(content)
	content = convertCaretQuotes(content)
	content = insertMarkerSpaces(content)
	content = ensureBlankBeforeBlocks(content)
	content = protectPlaceholdersInLinks(content)
	content = compressBlankLines(content)
	return content
}

// prepareText normalizes template Markdown for the plain text renderer.
func prepareText(content string) string {
	return prepareLetter(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertCaretQuotes turns the ^ inset shorthand into block quotes.
func convertCaretQuotes(content string) string {
	return caretQuote.ReplaceAllString(content, "> ")
}

// insertMarkerSpaces repairs heading and list markers written without a
// trailing space, normalizes literal bullets to dashes, and escapes
// leading plus signs so they render as text.
func insertMarkerSpaces(content string) string {
	content = headerMissingSpace.ReplaceAllString(content, "$1 $2")
	content = bulletMarker.ReplaceAllString(content, "$1- ")
	content = orderedMissingSpace.ReplaceAllString(content, "$1$2 $3")
	content = dashMissingSpace.ReplaceAllString(content, "$1- $2")
	content = asteriskMissingSpace.ReplaceAllString(content, "$1* $2")
	content = leadingPlus.ReplaceAllString(content, `$1\+`)
	return content
}

// insertActionLinks replaces the >>[text](url) shorthand with a styled
// call-to-action anchor, left as a raw HTML block for the email renderer.
func insertActionLinks(content string) string {
	return actionLink.ReplaceAllStringFunc(content, func(m string) string {
		groups := actionLink.FindStringSubmatch(m)
		return fmt.Sprintf(
			"\n<a href=%q><img alt=%q src=%q style=%q> <b>%s</b></a>\n",
			groups[2], actionLinkImageAlt, actionLinkImageURL(), actionLinkImageStyle, groups[1],
		)
	})
}

// stripActionLinkMarkers removes the >> prefix so an action link renders
// as an ordinary link.
func stripActionLinkMarkers(content string) string {
	return actionLinkMarker.ReplaceAllString(content, "$1$2")
}

// protectPlaceholdersInLinks rewrites ((name)) inside link destinations to
// !!name## so the parser does not treat the parentheses as the end of the
// destination. restorePlaceholders undoes this after rendering.
func protectPlaceholdersInLinks(content string) string {
	for {
		replaced := placeholderInLink.ReplaceAllString(content, "]($1!!$2##$3)")
		if replaced == content {
			return replaced
		}
		content = replaced
	}
}

// restorePlaceholders reverses protectPlaceholdersInLinks on rendered
// output.
func restorePlaceholders(content string) string {
	return protectedPlaceholder.ReplaceAllString(content, "(($1))")
}

// ensureBlankBeforeBlocks adds the blank lines the parser needs before
// headers, block quotes, and lists that follow running text. Lists inside
// block quotes get a bare > separator line instead.
func ensureBlankBeforeBlocks(content string) string {
	content = processLinesWithCodeBlockAwareness(content, func(prev, current string) string {
		if headerPattern.MatchString(current) && prev != "" && !isBlankLine(prev) {
			return "\n" + current
		}
		return current
	})
	content = processLinesWithCodeBlockAwareness(content, func(prev, current string) string {
		if blockquotePattern.MatchString(current) &&
			prev != "" &&
			!isBlankLine(prev) &&
			!blockquotePattern.MatchString(prev) {
			return "\n" + current
		}
		return current
	})
	content = processLinesWithCodeBlockAwareness(content, func(prev, current string) string {
		if isBlockquoteList(current) && blockquotePattern.MatchString(prev) && !isBlockquoteList(prev) && !isBlankLine(prev) {
			return ">\n" + current
		}
		if isListItem(current) && prev != "" && !isBlankLine(prev) && !isListItem(prev) && !headerPattern.MatchString(prev) {
			return "\n" + current
		}
		return current
	})
	return content
}

// processLinesWithCodeBlockAwareness processes each line with a callback,
// but skips lines inside fenced code blocks.
func processLinesWithCodeBlockAwareness(content string, process func(prev, current string) string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	inCodeBlock := false
	var previousLine string

	for i, line := range lines {
		// Track fenced code blocks
		if fencedCodeBlock.MatchString(line) {
			inCodeBlock = !inCodeBlock
		}

		// Skip processing inside code blocks or indented code blocks
		if inCodeBlock || indentedCodeBlock.MatchString(line) {
			result = append(result, line)
			previousLine = line
			continue
		}

		// First line has no previous
		if i == 0 {
			result = append(result, line)
			previousLine = line
			continue
		}

		processed := process(previousLine, line)
		if strings.HasPrefix(processed, "\n") {
			// Insert blank line before current line
			result = append(result, "")
			result = append(result, processed[1:])
		} else if strings.HasPrefix(processed, ">\n") {
			// Insert bare blockquote separator before current line
			result = append(result, ">")
			result = append(result, processed[2:])
		} else {
			result = append(result, processed)
		}

		// Use original line (not processed) to detect structure in next iteration.
		// This ensures we match against the original Markdown syntax, not inserted lines.
		previousLine = line
	}

	return strings.Join(result, "\n")
}

// isBlankLine returns true if the line is empty or contains only whitespace.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// isListItem returns true if the line starts with a list marker (-, *, or 1.).
func isListItem(line string) bool {
	return unorderedListPattern.MatchString(line) || orderedListPattern.MatchString(line)
}

// isBlockquoteList returns true if the line is a list item inside a blockquote.
func isBlockquoteList(line string) bool {
	return blockquoteUnorderedList.MatchString(line) || blockquoteOrderedList.MatchString(line)
}
