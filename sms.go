package notifyutils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// SMS length rules. A message that fits in one fragment may use the
// full fragment; longer messages lose header space to concatenation.
const (
	SMSCharCountLimit = 612

	gsmSingleFragmentLength = 160
	gsmMultiFragmentLength  = 153

	unicodeSingleFragmentLength = 70
	unicodeMultiFragmentLength  = 67
)

// GSM 03.38 basic character set, including the two mandatory control
// characters.
const gsmCharacters = "@£$¥èéùìòÇ\nØø\rÅåΔ_ΦΓΛΩΠΨΣΘΞÆæßÉ !\"#¤%&'()*+,-./0123456789:;<=>?¡ABCDEFGHIJKLMNOPQRSTUVWXYZÄÖÑܧ¿abcdefghijklmnopqrstuvwxyzäöñüà"

// GSM 03.38 extension table characters (sent as escape pairs).
const gsmExtensionCharacters = "^{}\\[~]|€"

// Accented characters accepted in SMS content for Welsh and French
// text. Messages containing them are sent as unicode.
const accentedSMSCharacters = "ÂâÊêÎîÔôÛûŴŵŶŷÁáÉéÍíÓóÚúẂẃÝýËëÏïŸÿÇç"

var (
	gsmSet        = runeSet(gsmCharacters + gsmExtensionCharacters)
	smsAllowedSet = runeSet(gsmCharacters + gsmExtensionCharacters + accentedSMSCharacters)
)

// downgradeReplacements maps characters with a close plain equivalent.
// Anything not listed, not allowed, and not reducible by decomposition
// becomes a question mark.
var downgradeReplacements = map[rune]string{
	'\u2013': "-",   // en dash
	'\u2014': "-",   // em dash
	'\u2010': "-",   // hyphen
	'\u2026': "...", // ellipsis
	'\u2018': "'",
	'\u2019': "'",
	'\u201c': `"`,
	'\u201d': `"`,
	'\u00ab': `"`,
	'\u00bb': `"`,
	'\t':     " ",
	'\u00a0': " ",  // no-break space
	'\u200b': "",   // zero width space
	'\u200c': "",   // zero width non-joiner
	'\u00ad': "",   // soft hyphen
	'\u2028': "\n", // line separator
	'\u2029': "\n", // paragraph separator
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

// SanitizeSMS downgrades content to characters that can be sent in an
// SMS: the GSM 03.38 tables plus accepted accented letters. Diacritics
// with no slot are decomposed to their base letter; anything else
// unmappable becomes a question mark.
func SanitizeSMS(s string) string {
	return sanitize(s, func(r rune) bool {
		_, ok := smsAllowedSet[r]
		return ok
	})
}

// SanitizeASCII downgrades content to printable ASCII plus newlines,
// the character set accepted by the letter production pipeline.
func SanitizeASCII(s string) string {
	return sanitize(s, func(r rune) bool {
		return r == '\n' || (r >= 0x20 && r < 0x7f)
	})
}

func sanitize(s string, allowed func(rune) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case allowed(r):
			b.WriteRune(r)
		default:
			b.WriteString(downgrade(r, allowed))
		}
	}
	return b.String()
}

func downgrade(r rune, allowed func(rune) bool) string {
	if replacement, ok := downgradeReplacements[r]; ok {
		return replacement
	}
	decomposed := norm.NFD.String(string(r))
	if first, _ := utf8.DecodeRuneInString(decomposed); first != r && allowed(first) {
		return string(first)
	}
	return "?"
}

// ContainsNonGSMCharacters reports whether content needs unicode SMS
// encoding, which shortens each fragment.
func ContainsNonGSMCharacters(s string) bool {
	for _, r := range s {
		if _, ok := gsmSet[r]; !ok {
			return true
		}
	}
	return false
}

// SMSFragmentCount returns how many SMS fragments content occupies once
// encoded.
func SMSFragmentCount(content string) int {
	single, multi := gsmSingleFragmentLength, gsmMultiFragmentLength
	if ContainsNonGSMCharacters(content) {
		single, multi = unicodeSingleFragmentLength, unicodeMultiFragmentLength
	}
	length := utf8.RuneCountInString(content)
	if length <= single {
		return 1
	}
	return (length + multi - 1) / multi
}

// SMSCharCount returns the number of characters counted against the
// SMS length limit.
func SMSCharCount(content string) int {
	return utf8.RuneCountInString(content)
}

// SMSTooLong reports whether content exceeds the character count limit.
func SMSTooLong(content string) bool {
	return SMSCharCount(content) > SMSCharCountLimit
}
