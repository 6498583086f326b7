package markdown

import (
	"fmt"
	"regexp"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

var urlScheme = regexp.MustCompile(`^https?://`)

// letterRenderer writes the bare structural HTML used for letter
// previews. Print stylesheets do the styling, so blocks carry no
// attributes. Links cannot be followed on paper and render as their
// destination in bold; horizontal rules become page breaks.
type letterRenderer struct{}

var _ renderer.NodeRenderer = (*letterRenderer)(nil)

func (r *letterRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindBlockquote, r.renderBlockquote)
	reg.Register(ast.KindThematicBreak, r.renderThematicBreak)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindCodeSpan, r.renderInlinePassthrough)
	reg.Register(ast.KindEmphasis, r.renderInlinePassthrough)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	reg.Register(east.KindStrikethrough, r.renderInlinePassthrough)
}

func (r *letterRenderer) renderHeading(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if n.Level == 1 {
		if entering {
			_, _ = w.WriteString("<h2>")
		} else {
			_, _ = w.WriteString("</h2>\n")
		}
		return ast.WalkContinue, nil
	}
	// Subheadings carry no weight in the letter layout.
	if entering {
		_, _ = w.WriteString("<p>")
	} else {
		_, _ = w.WriteString("</p>\n")
	}
	return ast.WalkContinue, nil
}

func (r *letterRenderer) renderParagraph(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<p>")
	} else {
		_, _ = w.WriteString("</p>\n")
	}
	return ast.WalkContinue, nil
}

// Block quotes have no distinct letter treatment; their content flows as
// ordinary paragraphs.
func (r *letterRenderer) renderBlockquote(_ util.BufWriter, _ []byte, _ ast.Node, _ bool) (ast.WalkStatus, error) {
	return ast.WalkContinue, nil
}

func (r *letterRenderer) renderThematicBreak(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<div class="page-break">&nbsp;</div>` + "\n")
	}
	return ast.WalkContinue, nil
}

func (r *letterRenderer) renderList(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	tag := "ul"
	if node.(*ast.List).IsOrdered() {
		tag = "ol"
	}
	if entering {
		fmt.Fprintf(w, "<%s>\n", tag)
	} else {
		fmt.Fprintf(w, "</%s>\n", tag)
	}
	return ast.WalkContinue, nil
}

func (r *letterRenderer) renderListItem(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<li>")
	} else {
		_, _ = w.WriteString("</li>\n")
	}
	return ast.WalkContinue, nil
}

func (r *letterRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.Write(util.EscapeHTML(codeBlockText(source, node)))
	}
	return ast.WalkContinue, nil
}

func (r *letterRenderer) renderInlinePassthrough(_ util.BufWriter, _ []byte, _ ast.Node, _ bool) (ast.WalkStatus, error) {
	return ast.WalkContinue, nil
}

func (r *letterRenderer) renderLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if entering {
		return ast.WalkContinue, nil
	}
	if n.ChildCount() > 0 {
		_, _ = w.WriteString(": ")
	}
	_, _ = w.WriteString("<strong>")
	_, _ = w.Write(util.EscapeHTML([]byte(stripScheme(string(n.Destination)))))
	_, _ = w.WriteString("</strong>")
	return ast.WalkContinue, nil
}

func (r *letterRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.AutoLink)
	_, _ = w.WriteString("<strong>")
	_, _ = w.Write(util.EscapeHTML([]byte(stripScheme(string(n.URL(source))))))
	_, _ = w.WriteString("</strong>")
	return ast.WalkContinue, nil
}

// stripScheme removes the http or https scheme from a URL for display in
// printed letters.
func stripScheme(url string) string {
	return urlScheme.ReplaceAllString(url, "")
}
