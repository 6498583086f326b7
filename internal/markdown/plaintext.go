package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// textRenderer serializes the tree back to plain text for text-part
// emails. Blocks are introduced by blank lines, headings and rules draw
// 65-character underlines, and emphasis keeps its Markdown markers so the
// text still reads as written. HTML constructs are dropped.
type textRenderer struct{}

var _ renderer.NodeRenderer = (*textRenderer)(nil)

func (r *textRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindDocument, r.renderNothing)
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindTextBlock, r.renderNothing)
	reg.Register(ast.KindBlockquote, r.renderNothing)
	reg.Register(ast.KindThematicBreak, r.renderThematicBreak)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindHTMLBlock, r.renderSkip)
	reg.Register(ast.KindText, r.renderText)
	reg.Register(ast.KindString, r.renderString)
	reg.Register(ast.KindCodeSpan, r.renderNothing)
	reg.Register(ast.KindEmphasis, r.renderEmphasis)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	reg.Register(ast.KindRawHTML, r.renderSkip)
	reg.Register(east.KindStrikethrough, r.renderNothing)
}

func (r *textRenderer) renderNothing(_ util.BufWriter, _ []byte, _ ast.Node, _ bool) (ast.WalkStatus, error) {
	return ast.WalkContinue, nil
}

func (r *textRenderer) renderSkip(_ util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) renderHeading(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		if node.(*ast.Heading).Level == 1 {
			_, _ = w.WriteString("\n\n\n")
		} else {
			_, _ = w.WriteString("\n\n")
		}
	} else {
		_ = w.WriteByte('\n')
		_, _ = w.WriteString(strings.Repeat("-", textRuleWidth))
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) renderParagraph(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering && node.Parent() != nil && node.Parent().Kind() != ast.KindListItem {
		_, _ = w.WriteString("\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) renderThematicBreak(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("\n\n")
		_, _ = w.WriteString(strings.Repeat("=", textRuleWidth))
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) renderList(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) renderListItem(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	parent, _ := node.Parent().(*ast.List)
	if parent != nil && parent.IsOrdered() {
		number := parent.Start
		for sibling := node.PreviousSibling(); sibling != nil; sibling = sibling.PreviousSibling() {
			number++
		}
		fmt.Fprintf(w, "\n%d. ", number)
	} else {
		_, _ = w.WriteString("\n• ")
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.Write(codeBlockText(source, node))
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) renderText(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Text)
	value := n.Segment.Value(source)
	if n.IsRaw() {
		_, _ = w.Write(value)
	} else {
		// Resolves backslash escapes and entity references. The HTML
		// escaping it applies is undone by the unescape stage of the
		// plain text pipeline.
		html.DefaultWriter.Write(w, value)
	}
	if n.SoftLineBreak() || n.HardLineBreak() {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) renderString(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.Write(node.(*ast.String).Value)
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) renderEmphasis(w util.BufWriter, _ []byte, node ast.Node, _ bool) (ast.WalkStatus, error) {
	if node.(*ast.Emphasis).Level == 2 {
		_, _ = w.WriteString("**")
	} else {
		_ = w.WriteByte('_')
	}
	return ast.WalkContinue, nil
}

// renderLink writes the link text followed by its destination, the only
// form that survives a text-only email client.
func (r *textRenderer) renderLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Link)
	if len(n.Title) > 0 {
		fmt.Fprintf(w, " (%s)", n.Title)
	}
	_, _ = w.WriteString(": ")
	_, _ = w.Write(n.Destination)
	return ast.WalkContinue, nil
}

func (r *textRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.Write(node.(*ast.AutoLink).URL(source))
	}
	return ast.WalkContinue, nil
}
