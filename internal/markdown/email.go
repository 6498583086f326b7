package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// emailRenderer writes email client HTML: every block carries inline
// styles, lists sit inside a presentational table, and code constructs
// collapse to their literal text. Inline emphasis and raw HTML fall
// through to goldmark's defaults.
type emailRenderer struct{}

var _ renderer.NodeRenderer = (*emailRenderer)(nil)

func (r *emailRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindBlockquote, r.renderBlockquote)
	reg.Register(ast.KindThematicBreak, r.renderThematicBreak)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	reg.Register(east.KindStrikethrough, r.renderStrikethrough)
}

func (r *emailRenderer) renderHeading(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	tag, style := "h3", emailH3Style
	if n.Level == 1 {
		tag, style = "h2", emailH2Style
	}
	if entering {
		fmt.Fprintf(w, `<%s style="%s">`, tag, style)
	} else {
		fmt.Fprintf(w, "</%s>", tag)
	}
	return ast.WalkContinue, nil
}

func (r *emailRenderer) renderParagraph(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		fmt.Fprintf(w, `<p style="%s">`, emailParagraphStyle)
	} else {
		_, _ = w.WriteString("</p>")
	}
	return ast.WalkContinue, nil
}

func (r *emailRenderer) renderBlockquote(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		fmt.Fprintf(w, `<blockquote style="%s">`, emailBlockquoteStyle)
	} else {
		_, _ = w.WriteString("</blockquote>")
	}
	return ast.WalkContinue, nil
}

func (r *emailRenderer) renderThematicBreak(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(emailHorizontalRule)
	}
	return ast.WalkContinue, nil
}

func (r *emailRenderer) renderList(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.List)
	tag, style := "ul", emailUnorderedListStyle
	if n.IsOrdered() {
		tag, style = "ol", emailOrderedListStyle
	}
	if entering {
		_, _ = w.WriteString(emailListTableOpen)
		fmt.Fprintf(w, `<%s style="%s">`, tag, style)
	} else {
		fmt.Fprintf(w, "</%s>", tag)
		_, _ = w.WriteString(emailListTableClose)
	}
	return ast.WalkContinue, nil
}

func (r *emailRenderer) renderListItem(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		fmt.Fprintf(w, `<li style="%s">`, emailListItemStyle)
	} else {
		_, _ = w.WriteString("</li>")
	}
	return ast.WalkContinue, nil
}

// Code blocks render as their literal text. Notifications have no use for
// monospace markup and email clients style <pre> unpredictably.
func (r *emailRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.Write(util.EscapeHTML(codeBlockText(source, node)))
	}
	return ast.WalkContinue, nil
}

func (r *emailRenderer) renderCodeSpan(_ util.BufWriter, _ []byte, _ ast.Node, _ bool) (ast.WalkStatus, error) {
	return ast.WalkContinue, nil
}

func (r *emailRenderer) renderStrikethrough(_ util.BufWriter, _ []byte, _ ast.Node, _ bool) (ast.WalkStatus, error) {
	return ast.WalkContinue, nil
}

func (r *emailRenderer) renderLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}
	fmt.Fprintf(w, `<a style="%s" href="`, emailLinkStyle)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}

func (r *emailRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.AutoLink)
	url := n.URL(source)
	fmt.Fprintf(w, `<a style="%s" href="`, emailLinkStyle)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(url, false)))
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML(n.Label(source)))
	_, _ = w.WriteString("</a>")
	return ast.WalkContinue, nil
}

// codeBlockText collects a code block's raw lines without the trailing
// newline.
func codeBlockText(source []byte, node ast.Node) []byte {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		_, _ = buf.Write(segment.Value(source))
	}
	return bytes.TrimRight(buf.Bytes(), "\n")
}
