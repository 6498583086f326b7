package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	notifyutils "github.com/govnotify/notifyutils"
)

// Sentinel errors for the preview command.
var (
	ErrNoTemplate          = errors.New("no template given")
	ErrUnknownFormat       = errors.New("unknown output format")
	ErrReadTemplate        = errors.New("failed to read template")
	ErrReadPersonalisation = errors.New("failed to read personalisation")
	ErrWriteOutput         = errors.New("failed to write output")
)

// run renders the template in the requested format and writes the
// result to the output file or stdout.
func run(flags *previewFlags) error {
	if flags.template == "" {
		return ErrNoTemplate
	}

	content, err := readInput(flags.template)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadTemplate, err)
	}

	values, err := readPersonalisation(flags.personalisation)
	if err != nil {
		return err
	}

	tmpl := notifyutils.Template{
		Name:    "preview",
		Subject: flags.subject,
		Content: content,
	}

	rendered, err := render(flags, tmpl, values)
	if err != nil {
		return err
	}

	if err := writeOutput(flags.output, rendered); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if flags.verbose && flags.output != "" {
		fmt.Fprintf(os.Stderr, "Created %s\n", flags.output)
	}
	return nil
}

func render(flags *previewFlags, tmpl notifyutils.Template, values notifyutils.Personalisation) ([]byte, error) {
	switch flags.format {
	case formatEmailHTML:
		t := notifyutils.HTMLEmailTemplate{Template: tmpl, Values: values, RedactMissing: flags.redact}
		body, err := t.RenderBody()
		return []byte(body), err

	case formatEmailDocument:
		t := notifyutils.HTMLEmailTemplate{Template: tmpl, Values: values, RedactMissing: flags.redact}
		doc, err := t.RenderDocument()
		return []byte(doc), err

	case formatEmailText:
		t := notifyutils.PlainTextEmailTemplate{Template: tmpl, Values: values}
		body, err := t.Render()
		return []byte(body), err

	case formatPreheader:
		t := notifyutils.HTMLEmailTemplate{Template: tmpl, Values: values, RedactMissing: flags.redact}
		return []byte(t.RenderPreheader() + "\n"), nil

	case formatSMS:
		t := notifyutils.SMSMessageTemplate{
			Template: tmpl, Values: values,
			Prefix: flags.prefix, ShowPrefix: flags.showPrefix,
		}
		msg, err := t.Render()
		if err != nil {
			return nil, err
		}
		if t.IsMessageTooLong() {
			return nil, fmt.Errorf("%w: %d characters", notifyutils.ErrMessageTooLong, t.CharCount())
		}
		return []byte(msg + "\n"), nil

	case formatSMSPreview:
		t := notifyutils.SMSPreviewTemplate{
			SMSMessageTemplate: notifyutils.SMSMessageTemplate{
				Template: tmpl, Values: values,
				Prefix: flags.prefix, ShowPrefix: flags.showPrefix,
			},
			RedactMissing: flags.redact,
		}
		return []byte(t.Render() + "\n"), nil

	case formatLetterHTML, formatLetterPDF:
		t, err := letterTemplate(flags, tmpl, values)
		if err != nil {
			return nil, err
		}
		doc, err := t.RenderDocument()
		if err != nil {
			return nil, err
		}
		if flags.format == formatLetterHTML {
			return []byte(doc), nil
		}
		renderer := notifyutils.NewLetterRenderer()
		defer renderer.Close()
		return renderer.RenderPDF(context.Background(), doc)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, flags.format)
	}
}

func letterTemplate(flags *previewFlags, tmpl notifyutils.Template, values notifyutils.Personalisation) (notifyutils.LetterPreviewTemplate, error) {
	t := notifyutils.LetterPreviewTemplate{Template: tmpl, Values: values}
	if flags.addressBlock != "" {
		block, err := readInput(flags.addressBlock)
		if err != nil {
			return t, fmt.Errorf("%w: %v", ErrReadTemplate, err)
		}
		t.AddressBlock = block
	}
	if flags.contactBlock != "" {
		block, err := readInput(flags.contactBlock)
		if err != nil {
			return t, fmt.Errorf("%w: %v", ErrReadTemplate, err)
		}
		t.ContactBlock = block
	}
	return t, nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func readPersonalisation(path string) (notifyutils.Personalisation, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadPersonalisation, err)
	}
	values := notifyutils.Personalisation{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadPersonalisation, err)
	}
	return values, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
