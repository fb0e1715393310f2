package parser

import (
	"regexp"
	"strings"
)

// Section bounds. Each matches at the newline that ends the previous section.
var (
	lineLabelBound   = regexp.MustCompile(`\n[ \t]*(?:>[ \t]*)*\*\*[^*\n]+\*\*`)
	blankLineBound   = regexp.MustCompile(`\n[ \t]*(?:>[ \t]*)*\n`)
	headingBound     = regexp.MustCompile(`\n[ \t]*(?:>[ \t]*)*#{1,6}[ \t]`)
	abilityHeadBound = regexp.MustCompile(`\n[ \t]*(?:>[ \t]*)*#{5,6}[ \t]`)
)

// cut returns the offset of the earliest bound found at or after from, or
// len(s) when none matches
func cut(s string, from int, bounds ...*regexp.Regexp) int {
	end := len(s)
	for _, b := range bounds {
		if loc := b.FindStringIndex(s[from:]); loc != nil && from+loc[0] < end {
			end = from + loc[0]
		}
	}
	return end
}

// atLineStart reports whether only whitespace or blockquote markers sit
// between the previous newline and pos
func atLineStart(s string, pos int) bool {
	lineStart := strings.LastIndexByte(s[:pos], '\n') + 1
	return strings.Trim(s[lineStart:pos], " \t>") == ""
}

// labelAt returns the first match of label at a line start within
// s[from:to], as absolute offsets
func labelAt(s string, label *regexp.Regexp, from, to int) []int {
	if from >= to {
		return nil
	}
	for _, loc := range label.FindAllStringIndex(s[from:to], -1) {
		start := from + loc[0]
		if atLineStart(s, start) {
			return []int{start, from + loc[1]}
		}
	}
	return nil
}
