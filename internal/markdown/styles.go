package markdown

// Inline styles for email client compatibility. Email clients ignore
// stylesheets, so every block carries its full style attribute.
const (
	emailParagraphStyle = `Margin: 0 0 20px 0; font-size: 19px; line-height: 25px; color: #0B0C0C;`

	emailH2Style = `Margin: 0 0 20px 0; padding: 0; font-size: 27px; line-height: 35px; font-weight: bold; color: #0B0C0C;`
	emailH3Style = `Margin: 0 0 15px 0; padding: 0; line-height: 26px; color: #0B0C0C;font-size: 24px; font-weight: bold;`

	emailLinkStyle = `word-wrap: break-word;`

	emailListTableOpen  = `<table role="presentation" style="padding: 0 0 20px 0;"><tr><td style="font-family: Helvetica, Arial, sans-serif;">`
	emailListTableClose = `</td></tr></table>`

	emailUnorderedListStyle = `margin: 0; padding: 0; list-style-type: disc; margin-inline-start: 20px;`
	emailOrderedListStyle   = `margin: 0; padding: 0; list-style-type: decimal; margin-inline-start: 20px;`
	emailListItemStyle      = `Margin: 5px 0 5px; padding: 0 0 0 5px; font-size: 19px; line-height: 25px; color: #0B0C0C; text-align:start;`

	emailBlockquoteStyle = `Margin: 0 0 20px 0; border-left: 10px solid #BFC1C3;padding: 15px 0 0.1px 15px; font-size: 19px; line-height: 25px;`

	emailHorizontalRule = `<hr style="border: 0; height: 1px; background: #BFC1C3; Margin: 30px 0 30px 0;">`

	actionLinkImageStyle = `vertical-align: middle;`
	actionLinkImageAlt   = `call to action img`
)

// Plain text layout.
const textRuleWidth = 65
