package markdown

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	inlineLinkPattern    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	referenceLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\[[^\]]*\]`)
	linkDefinitionLine   = regexp.MustCompile(`(?m)^\[[^\]]+\]:[ \t]+.*$`)
	boldPattern          = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	blockquotePrefix     = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?(?:>[ \t]?)?`)
	htmlCommentPattern   = regexp.MustCompile(`(?s)<!--.*?-->`)
	blankRunPattern      = regexp.MustCompile(`\n{3,}`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// Normalize prepares raw document text for parsing: NFC composition, LF line
// endings and no byte order mark. It reports false for invalid UTF-8.
func Normalize(raw []byte) (string, bool) {
	if !utf8.Valid(raw) {
		return "", false
	}
	s := norm.NFC.String(string(raw))
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s, true
}

// StripLinks replaces markdown links with their text and drops link
// definition lines
func StripLinks(s string) string {
	s = inlineLinkPattern.ReplaceAllString(s, "$1")
	s = referenceLinkPattern.ReplaceAllString(s, "$1")
	return linkDefinitionLine.ReplaceAllString(s, "")
}

// StripBold removes ** emphasis markers
func StripBold(s string) string {
	return boldPattern.ReplaceAllString(s, "$1")
}

// StripBlockquote removes up to two levels of leading > markers from every line
func StripBlockquote(s string) string {
	return blockquotePrefix.ReplaceAllString(s, "")
}

// StripComments removes HTML comments
func StripComments(s string) string {
	return htmlCommentPattern.ReplaceAllString(s, "")
}

// CollapseBlankLines squeezes runs of blank lines down to one
func CollapseBlankLines(s string) string {
	return blankRunPattern.ReplaceAllString(s, "\n\n")
}

// CollapseSpace squeezes all whitespace runs into single spaces
func CollapseSpace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
