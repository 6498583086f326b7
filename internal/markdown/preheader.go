package markdown

import (
	"regexp"
	"strings"
)

var (
	preheaderHeading = regexp.MustCompile(`(?m)^#+ *`)
	preheaderLink    = regexp.MustCompile(`(?:&gt;&gt;|>>)? *\[([^\]\n]+)\]\(\S+?\)`)
	preheaderBullet  = regexp.MustCompile(`(?m)^[ \t]*[-*•][ \t]*`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// Preheader flattens template Markdown into the single line of summary
// text email clients show next to the subject. Heading markers go, links
// keep their text only, list markers become literal bullets, and all
// whitespace collapses. Truncation is the caller's concern.
func Preheader(content string) string {
	content = normalizeLineEndings(content)
	content = preheaderHeading.ReplaceAllString(content, "")
	content = preheaderLink.ReplaceAllString(content, "$1")
	content = preheaderBullet.ReplaceAllString(content, "• ")
	content = whitespaceRun.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}
