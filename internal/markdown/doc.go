// Package markdown renders notification template Markdown to the four
// output targets used across channels: letter preview HTML, email HTML,
// plain text email, and email preheader text.
//
// All targets share one goldmark parse configuration. Images and authored
// pipe tables are stripped from the tree before rendering; each target
// installs its own node renderer over goldmark's defaults.
package markdown
