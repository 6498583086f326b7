package notifyutils

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholder syntax: ((name)) or the conditional form ((name??text)).
// Names are word characters, spaces, and dashes.
var placeholderPattern = regexp.MustCompile(`\(\(([\w -]+(?:\?\?.*?)?)\)\)`)

const (
	placeholderSpanFormat = "<span class='placeholder'>((%s))</span>"
	redactedSpan          = "<span class='placeholder-redacted'>hidden</span>"
)

// SanitizeMode controls how a Field treats HTML in template content and
// personalisation values.
type SanitizeMode int

const (
	// SanitizeNone passes content through untouched (plain text
	// channels).
	SanitizeNone SanitizeMode = iota
	// SanitizeEscape escapes angle brackets and ampersands so user HTML
	// shows as text.
	SanitizeEscape
	// SanitizeStrip removes HTML tags entirely.
	SanitizeStrip
)

// Placeholder is one ((name)) occurrence parsed out of template content.
type Placeholder struct {
	Name        string
	Conditional bool
	Text        string
}

// parsePlaceholder splits the body between the double parentheses.
func parsePlaceholder(body string) Placeholder {
	name, text, conditional := strings.Cut(body, "??")
	return Placeholder{
		Name:        strings.TrimSpace(name),
		Conditional: conditional,
		Text:        text,
	}
}

func (p Placeholder) body() string {
	if p.Conditional {
		return p.Name + "??" + p.Text
	}
	return p.Name
}

// Field is template content with placeholders, optionally paired with
// personalisation values. Without values, rendering highlights each
// placeholder; with values, it substitutes them.
type Field struct {
	Content string

	values        Columns
	hasValues     bool
	mode          SanitizeMode
	redactMissing bool
	markdownLists bool
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// WithValues supplies personalisation values for substitution.
func WithValues(personalisation Personalisation) FieldOption {
	return func(f *Field) {
		f.values = NewColumns(personalisation)
		f.hasValues = len(personalisation) > 0
	}
}

// WithSanitizeMode sets HTML handling for content and values.
func WithSanitizeMode(mode SanitizeMode) FieldOption {
	return func(f *Field) { f.mode = mode }
}

// WithRedactMissing renders missing values as a redaction marker
// instead of a highlighted placeholder.
func WithRedactMissing() FieldOption {
	return func(f *Field) { f.redactMissing = true }
}

// WithMarkdownLists renders slice values as Markdown bullet lists
// instead of an inline formatted list.
func WithMarkdownLists() FieldOption {
	return func(f *Field) { f.markdownLists = true }
}

// NewField builds a Field over content.
func NewField(content string, opts ...FieldOption) Field {
	f := Field{Content: content, values: NewColumns(nil)}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Placeholders returns each distinct placeholder in order of first
// appearance.
func (f Field) Placeholders() []Placeholder {
	var placeholders []Placeholder
	seen := make(map[string]struct{})
	for _, match := range placeholderPattern.FindAllStringSubmatch(f.Content, -1) {
		p := parsePlaceholder(match[1])
		key := NormalizeKey(p.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		placeholders = append(placeholders, p)
	}
	return placeholders
}

// PlaceholderNames returns the distinct placeholder names in order of
// first appearance.
func (f Field) PlaceholderNames() []string {
	placeholders := f.Placeholders()
	names := make([]string, len(placeholders))
	for i, p := range placeholders {
		names[i] = p.Name
	}
	return names
}

// String renders the content for preview. Placeholders with values are
// substituted; the rest are highlighted, or redacted when configured.
func (f Field) String() string {
	return placeholderPattern.ReplaceAllStringFunc(f.sanitize(f.Content), func(match string) string {
		p := parsePlaceholder(match[2 : len(match)-2])
		value, ok := f.values.Get(p.Name)
		if !ok {
			return f.missing(p)
		}
		if p.Conditional {
			return f.conditionalText(p, value)
		}
		return f.formatValue(value)
	})
}

// Replaced renders the content with every non-conditional placeholder
// substituted. A missing or nil value is an error.
func (f Field) Replaced() (string, error) {
	var firstErr error
	result := placeholderPattern.ReplaceAllStringFunc(f.sanitize(f.Content), func(match string) string {
		p := parsePlaceholder(match[2 : len(match)-2])
		value, ok := f.values.Get(p.Name)
		if p.Conditional {
			if !ok {
				return ""
			}
			return f.conditionalText(p, value)
		}
		if !ok || value == nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: %s", ErrMissingPersonalisation, p.Name)
			}
			return ""
		}
		return f.formatValue(value)
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

func (f Field) missing(p Placeholder) string {
	if f.redactMissing {
		return redactedSpan
	}
	return fmt.Sprintf(placeholderSpanFormat, p.body())
}

// conditionalText renders the conditional body when the value is truthy,
// substituting {} with the value itself.
func (f Field) conditionalText(p Placeholder, value any) string {
	if !truthy(value) {
		return ""
	}
	return strings.ReplaceAll(p.Text, "{}", f.formatValue(value))
}

func (f Field) formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return f.sanitize(v)
	case []string:
		return f.formatList(v)
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = f.formatValue(item)
		}
		return f.formatList(items)
	default:
		return f.sanitize(fmt.Sprint(v))
	}
}

func (f Field) formatList(items []string) string {
	if f.markdownLists {
		var b strings.Builder
		b.WriteString("\n")
		for _, item := range items {
			b.WriteString("\n* ")
			b.WriteString(f.sanitize(item))
		}
		return b.String()
	}
	sanitized := make([]string, len(items))
	for i, item := range items {
		sanitized[i] = f.sanitize(item)
	}
	return FormattedList(sanitized, "", "")
}

func (f Field) sanitize(s string) string {
	switch f.mode {
	case SanitizeEscape:
		return EscapeHTML(s)
	case SanitizeStrip:
		return StripHTML(s)
	default:
		return s
	}
}

// truthy reports whether a personalisation value switches a conditional
// placeholder on. Empty strings, false, zero, and the words "false" and
// "no" switch it off.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "false", "no", "0":
			return false
		}
		return true
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}
