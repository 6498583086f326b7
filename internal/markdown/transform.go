package markdown

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// pruneTransformer removes images and authored pipe tables from the tree.
// Notification channels cannot carry either, so they are dropped rather
// than rendered as alt text or raw pipes. A paragraph left empty by the
// removal is dropped with it.
type pruneTransformer struct{}

var _ parser.ASTTransformer = (*pruneTransformer)(nil)

func (pruneTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	var unsupported []ast.Node

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindImage, east.KindTable:
			unsupported = append(unsupported, n)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, n := range unsupported {
		parent := n.Parent()
		if parent == nil {
			continue
		}
		parent.RemoveChild(parent, n)

		// Unwind paragraphs emptied by the removal.
		for parent != nil && parent.Kind() == ast.KindParagraph && parent.ChildCount() == 0 {
			grandparent := parent.Parent()
			if grandparent == nil {
				break
			}
			grandparent.RemoveChild(grandparent, parent)
			parent = grandparent
		}
	}
}
