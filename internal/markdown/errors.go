package markdown

import "errors"

// Sentinel errors for rendering operations.
var (
	ErrRender = errors.New("markdown rendering failed")
)
