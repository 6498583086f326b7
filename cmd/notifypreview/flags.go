package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// Output formats.
const (
	formatEmailHTML     = "email-html"
	formatEmailDocument = "email-document"
	formatEmailText     = "email-text"
	formatPreheader     = "preheader"
	formatSMS           = "sms"
	formatSMSPreview    = "sms-preview"
	formatLetterHTML    = "letter-html"
	formatLetterPDF     = "letter-pdf"
)

// previewFlags holds all flags for the preview command.
type previewFlags struct {
	template        string
	subject         string
	personalisation string
	format          string
	output          string

	prefix     string
	showPrefix bool
	redact     bool

	addressBlock string
	contactBlock string

	verbose bool
}

// parseFlags parses command line flags and returns positional args.
func parseFlags(args []string) (*previewFlags, []string, error) {
	fs := flag.NewFlagSet("notifypreview", flag.ContinueOnError)
	f := &previewFlags{}

	fs.StringVarP(&f.template, "template", "t", "", "template Markdown file (\"-\" = stdin)")
	fs.StringVarP(&f.subject, "subject", "s", "", "template subject line")
	fs.StringVarP(&f.personalisation, "personalisation", "p", "", "YAML file of placeholder values")
	fs.StringVarP(&f.format, "format", "f", formatEmailHTML, "output format: email-html, email-document, email-text, preheader, sms, sms-preview, letter-html, letter-pdf")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")

	fs.StringVar(&f.prefix, "prefix", "", "service name prefixed to SMS content")
	fs.BoolVar(&f.showPrefix, "show-prefix", false, "prepend the prefix to SMS output")
	fs.BoolVar(&f.redact, "redact", false, "redact missing personalisation instead of highlighting it")

	fs.StringVar(&f.addressBlock, "address", "", "letter address block file")
	fs.StringVar(&f.contactBlock, "contact", "", "letter contact block file")

	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log progress to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: notifypreview -t template.md [flags]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
