package notifyutils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// Precompiled regex patterns for performance.
var (
	// Whitespace squeezed out before commas and full stops
	whitespaceBeforePunctuation = regexp.MustCompile(`[ \t]+([,.])`)

	// One to three hyphens or dashes between spaces become an en dash
	spacedHyphens = regexp.MustCompile(`[ \t]+[-–—]{1,3}[ \t]+`)

	// Anything that looks like an email address
	emailLike = regexp.MustCompile(`[^\s@<>]+@[^\s@<>]+`)

	// HTML tags, for walking marked-up text
	htmlTag = regexp.MustCompile(`<[^>]*>`)

	// Bare http(s) URLs, for SMS preview autolinking
	bareURL = regexp.MustCompile(`https?://\S+`)

	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

var strictPolicy = bluemonday.StrictPolicy()

// EscapeHTML escapes angle brackets and ampersands so user-entered HTML
// renders as text. Quotes are left alone; they are common in prose.
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// StripHTML removes all HTML tags from s.
func StripHTML(s string) string {
	return strictPolicy.Sanitize(s)
}

// NormalizeNewlines converts \r\n and \r to \n.
func NormalizeNewlines(s string) string {
	return crlfOrCR.ReplaceAllString(s, "\n")
}

// RemoveWhitespaceBeforePunctuation deletes spaces and tabs that sit
// before a comma or full stop.
func RemoveWhitespaceBeforePunctuation(s string) string {
	return whitespaceBeforePunctuation.ReplaceAllString(s, "$1")
}

// ReplaceHyphensWithEnDashes turns spaced hyphen runs into a spaced en
// dash. Unspaced hyphens, as in compound words, are kept.
func ReplaceHyphensWithEnDashes(s string) string {
	return spacedHyphens.ReplaceAllString(s, " – ")
}

// ReplaceHyphensWithNonBreakingHyphens keeps hyphenated words together
// on printed letters.
func ReplaceHyphensWithNonBreakingHyphens(s string) string {
	return strings.ReplaceAll(s, "-", "‑")
}

// SmartenQuotes converts straight quotes to typographic ones. Markup is
// left alone: tag attributes are never touched and anchor text is
// skipped entirely, since quotes inside URLs must survive as written.
func SmartenQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	anchorDepth := 0
	var prev rune

	rest := s
	for len(rest) > 0 {
		loc := htmlTag.FindStringIndex(rest)
		var text, tag string
		if loc == nil {
			text, rest = rest, ""
		} else {
			text, tag = rest[:loc[0]], rest[loc[0]:loc[1]]
			rest = rest[loc[1]:]
		}

		if anchorDepth > 0 {
			b.WriteString(text)
		} else {
			prev = smartenInto(&b, text, prev)
		}

		b.WriteString(tag)
		switch {
		case strings.HasPrefix(tag, "</a"):
			if anchorDepth > 0 {
				anchorDepth--
			}
		case strings.HasPrefix(tag, "<a ") || strings.HasPrefix(tag, "<a>"):
			anchorDepth++
		}
		if tag != "" {
			prev = 0
		}
	}
	return b.String()
}

// smartenInto writes text with curled quotes, returning the last rune
// written so quoting context carries across tag boundaries.
func smartenInto(b *strings.Builder, text string, prev rune) rune {
	runes := []rune(text)
	for i, r := range runes {
		switch r {
		case '"':
			if opensQuote(prev) {
				b.WriteRune('“')
			} else {
				b.WriteRune('”')
			}
		case '\'':
			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			switch {
			case unicode.IsLetter(prev) || unicode.IsDigit(prev):
				b.WriteRune('’')
			case opensQuote(prev) && (unicode.IsLetter(next) || unicode.IsDigit(next) || next == 0):
				b.WriteRune('‘')
			default:
				b.WriteRune('’')
			}
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	return prev
}

// opensQuote reports whether a quote after prev starts quoted text.
func opensQuote(prev rune) bool {
	if prev == 0 {
		return true
	}
	return unicode.IsSpace(prev) || strings.ContainsRune("([{-–—", prev)
}

// RemoveSmartQuotesFromEmailAddresses straightens any curled apostrophe
// inside something that looks like an email address.
func RemoveSmartQuotesFromEmailAddresses(s string) string {
	return emailLike.ReplaceAllStringFunc(s, func(address string) string {
		return strings.NewReplacer("‘", "'", "’", "'").Replace(address)
	})
}

// NiceTypography applies the typography pass shared by email and letter
// output: punctuation spacing, smart quotes, and en dashes.
func NiceTypography(s string) string {
	s = RemoveWhitespaceBeforePunctuation(s)
	s = SmartenQuotes(s)
	s = RemoveSmartQuotesFromEmailAddresses(s)
	s = ReplaceHyphensWithEnDashes(s)
	return s
}

// AutolinkURLs wraps bare http(s) URLs in a styled anchor for HTML
// previews of plain-text channels.
func AutolinkURLs(s string) string {
	return bareURL.ReplaceAllString(s, `<a style="word-wrap: break-word;" href="$0">$0</a>`)
}

// Nl2br converts newlines to <br> tags for HTML previews of plain-text
// channels.
func Nl2br(s string) string {
	return strings.ReplaceAll(s, "\n", "<br>")
}

// FormattedList joins items into prose: "a, b and c". Each item is
// wrapped in beforeEach and afterEach.
func FormattedList(items []string, beforeEach, afterEach string) string {
	wrapped := make([]string, len(items))
	for i, item := range items {
		wrapped[i] = beforeEach + item + afterEach
	}
	switch len(wrapped) {
	case 0:
		return ""
	case 1:
		return wrapped[0]
	default:
		return strings.Join(wrapped[:len(wrapped)-1], ", ") + " and " + wrapped[len(wrapped)-1]
	}
}
