// Package assets holds the embedded HTML document shells wrapped
// around rendered email bodies and letter previews.
package assets
