package assets

import "errors"

// Sentinel errors for document shell rendering.
var (
	ErrDocumentRender = errors.New("document shell rendering failed")
)
