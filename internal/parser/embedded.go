package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
)

var (
	quotedAbilityHeading = regexp.MustCompile(`(?m)^[ \t]*>[ \t]*#{5,6}[ \t]+(.+?)[ \t]*$`)
	bareAbilityHeading   = regexp.MustCompile(`(?m)^#{6}[ \t]+(.+?)[ \t]*$`)
	headingCostPattern   = regexp.MustCompile(`^(.*?)\s*\(([^)]*)\)\s*$`)
	costNumberPattern    = regexp.MustCompile(`\d+`)
	statblockSuffix      = regexp.MustCompile(`(?i)\s+Statblock$`)
	slugStrip            = regexp.MustCompile(`[^\w\s-]`)
	slugJoin             = regexp.MustCompile(`[-\s]+`)
)

// embeddedBlock is one headed block inside a carrier document
type embeddedBlock struct {
	heading   string
	start     int
	bodyStart int
	end       int
}

func (b embeddedBlock) isStatblock() bool {
	return statblockSuffix.MatchString(b.heading)
}

// HasEmbeddedAbilities reports whether content carries blockquoted ability
// headings. Stat block headings do not count.
func HasEmbeddedAbilities(content string) bool {
	for _, m := range quotedAbilityHeading.FindAllStringSubmatch(content, -1) {
		if !statblockSuffix.MatchString(strings.TrimSpace(m[1])) {
			return true
		}
	}
	return false
}

// embeddedBlocks finds the ability blocks of content. Blockquoted headings
// are preferred; bare level-6 headings are used when there are none.
func embeddedBlocks(content string) []embeddedBlock {
	heading, quoted := quotedAbilityHeading, true
	if !heading.MatchString(content) {
		heading, quoted = bareAbilityHeading, false
	}

	matches := heading.FindAllStringSubmatchIndex(content, -1)
	blocks := make([]embeddedBlock, 0, len(matches))
	for i, m := range matches {
		b := embeddedBlock{
			heading:   strings.TrimSpace(content[m[2]:m[3]]),
			start:     m[0],
			bodyStart: m[1],
			end:       len(content),
		}
		if i+1 < len(matches) {
			b.end = matches[i+1][0]
		}
		if quoted {
			b.end = quoteEnd(content, b.bodyStart, b.end)
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// quoteEnd returns the start of the first non-blank line in content[from:to]
// that is not blockquoted, or to
func quoteEnd(content string, from, to int) int {
	offset := from
	for _, line := range strings.SplitAfter(content[from:to], "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, ">") {
			return offset
		}
		offset += len(line)
	}
	return to
}

// ExtractEmbedded parses every embedded ability of a carrier document. A
// stat block heading attaches its creature to the ability just before it.
func (p *Parser) ExtractEmbedded(content string) []*drawsteel.AbilityRecord {
	var abilities []*drawsteel.AbilityRecord
	for _, b := range embeddedBlocks(content) {
		if b.isStatblock() {
			if n := len(abilities); n > 0 && abilities[n-1].StatBlock == nil {
				abilities[n-1].StatBlock = p.StatBlock(content[b.start:b.end])
			}
			continue
		}

		name, cost := SplitHeadingCost(b.heading)
		rec := p.ParseEmbedded(content[b.bodyStart:b.end], name)
		if rec == nil {
			continue
		}
		rec.Cost = cost
		rec.ID = Slugify(name)
		rec.BaseID = rec.ID
		abilities = append(abilities, rec)
	}
	return abilities
}

// SplitHeadingCost separates a "Name (3 Wrath)" heading into the name and
// its cost. "Heroic Resource 5" reads the same way. A parenthesis without a
// number stays part of the name.
func SplitHeadingCost(heading string) (string, *drawsteel.Cost) {
	m := headingCostPattern.FindStringSubmatch(heading)
	if m == nil {
		return heading, nil
	}

	num := costNumberPattern.FindString(m[2])
	if num == "" {
		return heading, nil
	}
	amount, err := strconv.Atoi(num)
	if err != nil {
		return heading, nil
	}

	resource := strings.TrimSpace(strings.Replace(m[2], num, "", 1))
	return strings.TrimSpace(m[1]), &drawsteel.Cost{Amount: amount, Resource: resource}
}

// Slugify lowercases s and joins its words with hyphens
func Slugify(s string) string {
	slug := strings.ToLower(s)
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugJoin.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
