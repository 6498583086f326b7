package notifyutils

import "errors"

// Sentinel errors for library operations.
var (
	ErrMissingPersonalisation = errors.New("missing personalisation value")
	ErrRenderFailed           = errors.New("template rendering failed")

	// Phone number validation errors.
	ErrPhoneTooShort           = errors.New("phone number is too short")
	ErrPhoneTooLong            = errors.New("phone number is too long")
	ErrPhoneNotANumber         = errors.New("phone number can only include digits and plus")
	ErrPhoneInvalid            = errors.New("phone number is not valid")
	ErrPhoneUnsupportedCountry = errors.New("phone number country code is not supported")

	// Email address validation errors.
	ErrEmailInvalid = errors.New("email address is not valid")
	ErrEmailTooLong = errors.New("email address is too long")

	// Letter address validation errors.
	ErrAddressTooFewLines  = errors.New("address needs more lines")
	ErrAddressTooManyLines = errors.New("address has too many lines")

	// SMS content errors.
	ErrMessageTooLong = errors.New("message content is too long")

	// Recipient CSV errors.
	ErrCSVParse       = errors.New("could not parse CSV data")
	ErrCSVMissingData = errors.New("row is missing required data")
	ErrBadRecipient   = errors.New("recipient is not valid")
	ErrNotInSafelist  = errors.New("recipient is not in the safelist")

	// PDF handling errors.
	ErrPDFRead        = errors.New("could not read PDF data")
	ErrPageOutOfRange = errors.New("page number out of range")

	// Letter PDF rendering errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)
