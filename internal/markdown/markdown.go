package markdown

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Only http and https URLs are linkified. Bare www hosts and email
// addresses stay as text.
var neverLinkify = regexp.MustCompile(`\b\B`)

// newEngine builds a goldmark instance with the shared parse
// configuration and the given target renderer layered over the defaults.
func newEngine(target renderer.NodeRenderer, opts ...renderer.Option) goldmark.Markdown {
	renderOpts := append([]renderer.Option{
		renderer.WithNodeRenderers(util.Prioritized(target, 100)),
	}, opts...)
	return goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.NewLinkify(
				extension.WithLinkifyAllowedProtocols([][]byte{[]byte("http:"), []byte("https:")}),
				extension.WithLinkifyWWWRegexp(neverLinkify),
				extension.WithLinkifyEmailRegexp(neverLinkify),
			),
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(&pruneTransformer{}, 100)),
		),
		goldmark.WithRendererOptions(renderOpts...),
	)
}

var (
	emailEngine = newEngine(&emailRenderer{},
		html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe())
	letterEngine = newEngine(&letterRenderer{},
		html.WithHardWraps(), html.WithUnsafe())
	textEngine = newEngine(&textRenderer{})
)

// RenderEmail converts template Markdown to inline-styled email HTML.
func RenderEmail(content string) (string, error) {
	return render(emailEngine, prepareEmail(content))
}

// RenderLetter converts template Markdown to the structural HTML used
// for letter previews.
func RenderLetter(content string) (string, error) {
	return render(letterEngine, prepareLetter(content))
}

// RenderPlainText converts template Markdown to the text part of an
// email.
func RenderPlainText(content string) (string, error) {
	return render(textEngine, prepareText(content))
}

func render(engine goldmark.Markdown, source string) (string, error) {
	var buf bytes.Buffer
	if err := engine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return restorePlaceholders(buf.String()), nil
}
