package notifyutils

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

// Email address length limits from RFC 5321 and RFC 1035.
const (
	maxEmailLength    = 320
	maxHostnameLength = 253
	maxDNSLabelLength = 63
)

// Letter address line bounds: name, at least one address line, and a
// postal code at minimum.
const (
	MinAddressLines = 3
	MaxAddressLines = 7
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~\-]+@([^.@][^@\s]+)$`)
	hostnamePart    = regexp.MustCompile(`(?i)^(xn|[a-z0-9]+)(-?-[a-z0-9]+)*$`)
	tldPart         = regexp.MustCompile(`(?i)^([a-z]{2,63}|xn--([a-z0-9]+-)*[a-z0-9]+)$`)
	phoneCharacters = regexp.MustCompile(`^[0-9 +().-]+$`)
)

// defaultPhoneRegion resolves the region used to parse numbers written
// without a country prefix.
func defaultPhoneRegion() string {
	if region := os.Getenv("NOTIFY_PHONE_REGION"); region != "" {
		return region
	}
	return "US"
}

// PhoneNumber is a parsed, valid phone number.
type PhoneNumber struct {
	parsed *phonenumbers.PhoneNumber
}

// ParsePhoneNumber validates raw and returns the parsed number. Numbers
// without an international prefix are parsed in the default region.
func ParsePhoneNumber(raw string) (PhoneNumber, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PhoneNumber{}, ErrPhoneTooShort
	}
	if !phoneCharacters.MatchString(trimmed) {
		return PhoneNumber{}, fmt.Errorf("%w: %q", ErrPhoneNotANumber, raw)
	}

	// E.164 allows at most 15 digits; anything under 7 cannot be a
	// dialable number anywhere.
	digits := countDigits(trimmed)
	if digits < 7 {
		return PhoneNumber{}, ErrPhoneTooShort
	}
	if digits > 15 {
		return PhoneNumber{}, ErrPhoneTooLong
	}

	parsed, err := phonenumbers.Parse(trimmed, defaultPhoneRegion())
	if err != nil {
		return PhoneNumber{}, fmt.Errorf("%w: %v", ErrPhoneInvalid, err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return PhoneNumber{}, ErrPhoneInvalid
	}
	if phonenumbers.GetRegionCodeForNumber(parsed) == "" {
		return PhoneNumber{}, ErrPhoneUnsupportedCountry
	}
	return PhoneNumber{parsed: parsed}, nil
}

// E164 returns the number in E.164 form, the canonical form stored and
// handed to SMS providers.
func (p PhoneNumber) E164() string {
	return phonenumbers.Format(p.parsed, phonenumbers.E164)
}

// International returns the human-readable international form.
func (p PhoneNumber) International() string {
	return phonenumbers.Format(p.parsed, phonenumbers.INTERNATIONAL)
}

// CountryCode returns the calling code prefix.
func (p PhoneNumber) CountryCode() int {
	return int(p.parsed.GetCountryCode())
}

func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}

// ValidatePhoneNumber validates raw and returns its E.164 form.
func ValidatePhoneNumber(raw string) (string, error) {
	number, err := ParsePhoneNumber(raw)
	if err != nil {
		return "", err
	}
	return number.E164(), nil
}

// ValidateEmailAddress checks the shape and length of an email address
// and returns it normalized: trimmed, with the hostname lowercased and
// IDNA-encoded.
func ValidateEmailAddress(email string) (string, error) {
	trimmed := strings.TrimSpace(email)

	match := emailPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return "", ErrEmailInvalid
	}
	if len(trimmed) > maxEmailLength {
		return "", ErrEmailTooLong
	}
	if strings.Contains(trimmed, "..") {
		return "", ErrEmailInvalid
	}

	hostname := strings.ToLower(match[1])
	encoded, err := idna.Lookup.ToASCII(hostname)
	if err != nil {
		return "", ErrEmailInvalid
	}
	if len(encoded) > maxHostnameLength {
		return "", ErrEmailTooLong
	}

	labels := strings.Split(encoded, ".")
	if len(labels) < 2 {
		return "", ErrEmailInvalid
	}
	for _, label := range labels {
		if len(label) > maxDNSLabelLength {
			return "", ErrEmailTooLong
		}
		if !hostnamePart.MatchString(label) {
			return "", ErrEmailInvalid
		}
	}
	if !tldPart.MatchString(labels[len(labels)-1]) {
		return "", ErrEmailInvalid
	}

	local := trimmed[:strings.LastIndex(trimmed, "@")]
	return local + "@" + encoded, nil
}

// PostalAddress is the address block of a letter, one line per entry.
type PostalAddress struct {
	Lines []string
}

// NewPostalAddress splits a raw address block into cleaned lines:
// surrounding whitespace and trailing commas go, empty lines go.
func NewPostalAddress(raw string) PostalAddress {
	var lines []string
	for _, line := range strings.Split(NormalizeNewlines(raw), "\n") {
		line = strings.Trim(strings.TrimSpace(line), ",")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return PostalAddress{Lines: lines}
}

// Validate checks the line count bounds.
func (a PostalAddress) Validate() error {
	if len(a.Lines) < MinAddressLines {
		return fmt.Errorf("%w: got %d, need at least %d", ErrAddressTooFewLines, len(a.Lines), MinAddressLines)
	}
	if len(a.Lines) > MaxAddressLines {
		return fmt.Errorf("%w: got %d, at most %d allowed", ErrAddressTooManyLines, len(a.Lines), MaxAddressLines)
	}
	return nil
}

// String renders the address one line per entry.
func (a PostalAddress) String() string {
	return strings.Join(a.Lines, "\n")
}
