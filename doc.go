// Package notifyutils renders notification templates for email, SMS,
// and letter channels.
//
// # Quick Start
//
// Pair a stored template with personalisation values and render the
// channel-specific output:
//
//	template := notifyutils.Template{
//	    Subject: "Your ((document)) is ready",
//	    Content: "Hello ((name)), collect it by ((deadline)).",
//	}
//
//	email := notifyutils.HTMLEmailTemplate{
//	    Template: template,
//	    Values:   notifyutils.Personalisation{"name": "Jo", "document": "passport", "deadline": "Friday"},
//	}
//	body, err := email.RenderBody()
//
// # Placeholders
//
// Template content uses ((name)) placeholders. Names are matched case
// insensitively, ignoring spaces, hyphens, and underscores, so
// ((First Name)) and ((first_name)) address the same value. The
// conditional form ((name??text)) shows its text only when the value is
// truthy. Preview renderers highlight placeholders without values;
// sending renderers treat a missing value as an error.
//
// # Channels
//
// Template content is Markdown. Each channel renders it differently:
//
//   - HTMLEmailTemplate produces the inline-styled HTML body, the hidden
//     preheader line, and the full branded document.
//   - PlainTextEmailTemplate produces the text part with drawn heading
//     underlines and literal emphasis markers.
//   - SMSMessageTemplate downgrades content to sendable SMS characters
//     and counts billable fragments; SMSPreviewTemplate renders the
//     on-screen preview.
//   - LetterPreviewTemplate produces print-oriented HTML, and
//     LetterRenderer turns it into an A4 PDF with headless Chrome.
//
// Images and tables are not supported in notification Markdown and are
// removed from the output.
//
// # Recipient Uploads
//
// RecipientCSV parses an uploaded CSV of recipients, validates phone
// numbers, email addresses, and postal addresses row by row, and pairs
// each row's columns with the template's placeholders.
//
// # Browser Requirements
//
// Letter PDF rendering requires Chrome/Chromium. The go-rod library
// automatically downloads a managed Chromium instance on first run
// (~/.cache/rod/browser/). Use ROD_BROWSER_BIN to specify a custom
// Chrome binary; the sandbox is disabled automatically when CI=true.
package notifyutils
