package assets

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*
var templates embed.FS

var documentShells = template.Must(template.ParseFS(templates, "templates/*.tmpl"))

// EmailDocumentData fills the email document shell. Body is rendered
// HTML from the email renderer and is trusted; everything else is
// escaped.
type EmailDocumentData struct {
	Body        string
	Preheader   string
	BrandLogo   string
	BrandText   string
	BrandName   string
	BrandColour string
}

// LetterDocumentData fills the letter document shell. Body and
// ContactBlock are rendered HTML and are trusted.
type LetterDocumentData struct {
	AddressLines []string
	ContactBlock string
	Date         string
	Subject      string
	Body         string
}

// RenderEmailDocument wraps an email body in the full HTML document.
func RenderEmailDocument(data EmailDocumentData) (string, error) {
	return render("email.html.tmpl", struct {
		EmailDocumentData
		BodyHTML template.HTML
	}{data, template.HTML(data.Body)})
}

// RenderLetterDocument wraps a letter in the full HTML document.
func RenderLetterDocument(data LetterDocumentData) (string, error) {
	return render("letter.html.tmpl", struct {
		LetterDocumentData
		BodyHTML    template.HTML
		ContactHTML template.HTML
		SubjectHTML template.HTML
	}{data, template.HTML(data.Body), template.HTML(data.ContactBlock), template.HTML(data.Subject)})
}

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := documentShells.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return b.String(), nil
}
