// Package markdown holds the text plumbing shared by the parsers: front-matter
// splitting, normalisation, inline stripping and pipe-table scanning.
package markdown
