package notifyutils

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/govnotify/notifyutils/internal/assets"
	"github.com/govnotify/notifyutils/internal/markdown"
)

// PreheaderLength is the number of characters email clients show next
// to the subject line.
const PreheaderLength = 256

// Template carries the stored attributes of a notification template.
type Template struct {
	ID      string
	Name    string
	Type    string
	Subject string
	Content string
}

// Placeholders returns the distinct placeholder names used in the
// subject and content, in order of first appearance.
func (t Template) Placeholders() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, source := range []string{t.Subject, t.Content} {
		for _, name := range NewField(source).PlaceholderNames() {
			key := NormalizeKey(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// MissingPersonalisation lists the non-conditional placeholders values
// gives no value for.
func (t Template) MissingPersonalisation(values Personalisation) []string {
	columns := NewColumns(values)
	var missing []string
	for _, source := range []string{t.Subject, t.Content} {
		for _, p := range NewField(source).Placeholders() {
			if p.Conditional {
				continue
			}
			if !columns.Contains(p.Name) {
				missing = append(missing, p.Name)
			}
		}
	}
	return missing
}

// SMSMessageTemplate renders the message actually handed to the SMS
// provider. Every placeholder must have a value.
type SMSMessageTemplate struct {
	Template
	Values Personalisation

	// Prefix is the service name prepended to the message when
	// ShowPrefix is set.
	Prefix     string
	ShowPrefix bool
}

// Render substitutes values, applies the prefix, and downgrades the
// content to sendable SMS characters.
func (t SMSMessageTemplate) Render() (string, error) {
	content, err := NewField(t.Content, WithValues(t.Values)).Replaced()
	if err != nil {
		return "", err
	}
	content = strings.TrimSpace(content)
	if t.ShowPrefix && t.Prefix != "" {
		content = t.Prefix + ": " + content
	}
	content = SanitizeSMS(content)
	content = NormalizeNewlines(content)
	content = RemoveWhitespaceBeforePunctuation(content)
	return strings.TrimSpace(content), nil
}

// rendered returns the message content, falling back to the raw
// template when values are incomplete, so counts work during authoring.
func (t SMSMessageTemplate) rendered() string {
	content, err := t.Render()
	if err != nil {
		return SanitizeSMS(t.Content)
	}
	return content
}

// CharCount returns the characters counted against the SMS limit.
func (t SMSMessageTemplate) CharCount() int {
	return SMSCharCount(t.rendered())
}

// FragmentCount returns how many fragments the message will be billed
// as.
func (t SMSMessageTemplate) FragmentCount() int {
	return SMSFragmentCount(t.rendered())
}

// IsMessageTooLong reports whether the rendered message exceeds the
// character limit.
func (t SMSMessageTemplate) IsMessageTooLong() bool {
	return SMSTooLong(t.rendered())
}

// SMSPreviewTemplate renders an HTML preview of an SMS: placeholders
// without values are highlighted or redacted, URLs become links, and
// newlines become breaks.
type SMSPreviewTemplate struct {
	SMSMessageTemplate
	RedactMissing bool
}

// Render returns the preview HTML fragment.
func (t SMSPreviewTemplate) Render() string {
	opts := []FieldOption{
		WithValues(t.Values),
		WithSanitizeMode(SanitizeEscape),
	}
	if t.RedactMissing {
		opts = append(opts, WithRedactMissing())
	}
	content := NewField(t.Content, opts...).String()
	content = strings.TrimSpace(content)
	if t.ShowPrefix && t.Prefix != "" {
		content = EscapeHTML(t.Prefix) + ": " + content
	}
	content = AutolinkURLs(content)
	return Nl2br(content)
}

// PlainTextEmailTemplate renders the text part of an email. Every
// placeholder must have a value.
type PlainTextEmailTemplate struct {
	Template
	Values Personalisation
}

// Render returns the email text body with a single trailing newline.
func (t PlainTextEmailTemplate) Render() (string, error) {
	content, err := NewField(t.Content, WithValues(t.Values), WithMarkdownLists()).Replaced()
	if err != nil {
		return "", err
	}
	rendered, err := markdown.RenderPlainText(content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	rendered = NiceTypography(rendered)
	rendered = html.UnescapeString(rendered)
	return strings.TrimLeft(rendered, "\n ") + "\n", nil
}

// RenderSubject returns the subject with values substituted.
func (t PlainTextEmailTemplate) RenderSubject() (string, error) {
	subject, err := NewField(t.Subject, WithValues(t.Values)).Replaced()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(NiceTypography(subject)), nil
}

// HTMLEmailTemplate renders the HTML part of an email. Missing values
// render as highlighted placeholders, so the same type serves previews.
type HTMLEmailTemplate struct {
	Template
	Values        Personalisation
	RedactMissing bool

	// Branding for the full document wrapper.
	BrandLogo   string
	BrandText   string
	BrandName   string
	BrandColour string
}

func (t HTMLEmailTemplate) fieldOptions(extra ...FieldOption) []FieldOption {
	opts := []FieldOption{
		WithValues(t.Values),
		WithSanitizeMode(SanitizeEscape),
	}
	if t.RedactMissing {
		opts = append(opts, WithRedactMissing())
	}
	return append(opts, extra...)
}

// RenderBody returns the styled HTML body fragment.
func (t HTMLEmailTemplate) RenderBody() (string, error) {
	content := NewField(t.Content, t.fieldOptions(WithMarkdownLists())...).String()
	rendered, err := markdown.RenderEmail(content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return NiceTypography(rendered), nil
}

// RenderPreheader returns the hidden summary line, truncated to the
// length clients display.
func (t HTMLEmailTemplate) RenderPreheader() string {
	content := NewField(t.Content, t.fieldOptions()...).String()
	preheader := html.UnescapeString(markdown.Preheader(content))
	runes := []rune(preheader)
	if len(runes) > PreheaderLength {
		runes = runes[:PreheaderLength]
	}
	return string(runes)
}

// RenderDocument wraps the body in the full email HTML shell with
// branding and preheader.
func (t HTMLEmailTemplate) RenderDocument() (string, error) {
	body, err := t.RenderBody()
	if err != nil {
		return "", err
	}
	return assets.RenderEmailDocument(assets.EmailDocumentData{
		Body:        body,
		Preheader:   t.RenderPreheader(),
		BrandLogo:   t.BrandLogo,
		BrandText:   t.BrandText,
		BrandName:   t.BrandName,
		BrandColour: t.BrandColour,
	})
}

// EmailPreviewTemplate is an HTML email plus the sender details shown
// in previews.
type EmailPreviewTemplate struct {
	HTMLEmailTemplate
	From    string
	ReplyTo string
}

// RenderSubject returns the subject with placeholders highlighted or
// substituted.
func (t EmailPreviewTemplate) RenderSubject() string {
	subject := NewField(t.Subject, t.fieldOptions()...).String()
	return strings.TrimSpace(NiceTypography(subject))
}

// LetterPreviewTemplate renders the on-screen preview of a letter.
type LetterPreviewTemplate struct {
	Template
	Values Personalisation

	// AddressBlock holds the recipient address, one line per entry,
	// possibly containing placeholders.
	AddressBlock string
	// ContactBlock is the sender address shown top right.
	ContactBlock string
	// Date is the letter date; zero means today.
	Date time.Time
}

// RenderBody returns the letter body HTML.
func (t LetterPreviewTemplate) RenderBody() (string, error) {
	content := NewField(t.Content, WithValues(t.Values), WithSanitizeMode(SanitizeEscape), WithMarkdownLists()).String()
	rendered, err := markdown.RenderLetter(content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return NiceTypography(rendered), nil
}

// RenderSubject returns the letter heading with non-breaking hyphens.
func (t LetterPreviewTemplate) RenderSubject() string {
	subject := NewField(t.Subject, WithValues(t.Values), WithSanitizeMode(SanitizeEscape)).String()
	subject = NiceTypography(subject)
	return ReplaceHyphensWithNonBreakingHyphens(strings.TrimSpace(subject))
}

// Address returns the cleaned recipient address with values
// substituted.
func (t LetterPreviewTemplate) Address() PostalAddress {
	block := NewField(t.AddressBlock, WithValues(t.Values), WithSanitizeMode(SanitizeEscape)).String()
	return NewPostalAddress(block)
}

// DateLine returns the letter date as printed.
func (t LetterPreviewTemplate) DateLine() string {
	date := t.Date
	if date.IsZero() {
		date = time.Now()
	}
	return date.Format("2 January 2006")
}

// RenderDocument wraps address, contact block, date, subject, and body
// in the letter HTML shell.
func (t LetterPreviewTemplate) RenderDocument() (string, error) {
	body, err := t.RenderBody()
	if err != nil {
		return "", err
	}
	return assets.RenderLetterDocument(assets.LetterDocumentData{
		AddressLines: t.Address().Lines,
		ContactBlock: Nl2br(EscapeHTML(NormalizeNewlines(t.ContactBlock))),
		Date:         t.DateLine(),
		Subject:      t.RenderSubject(),
		Body:         body,
	})
}
