package parser

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
)

var (
	standaloneFlavor = regexp.MustCompile(`#+ .+?\n\n\*([^*\n]+)\*`)
	italicSpan       = regexp.MustCompile(`(?:^|[^*])\*([^*\n]+)\*(?:[^*]|$)`)
	singleQuote      = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
)

// ParseAbility assembles a standalone ability body (front matter already
// removed) and attaches id. It returns nil when no section is recoverable.
func (p *Parser) ParseAbility(body string, id drawsteel.Identity) *drawsteel.AbilityRecord {
	rec := p.assemble(body)
	if rec == nil {
		return nil
	}

	rec.Identity = id
	if m := standaloneFlavor.FindStringSubmatch(body); m != nil {
		rec.Flavor = strings.TrimSpace(m[1])
	}
	return rec
}

// ParseEmbedded assembles the text under an embedded ability heading. One
// level of blockquote is removed first and name becomes the record name.
func (p *Parser) ParseEmbedded(text, name string) *drawsteel.AbilityRecord {
	text = strings.TrimSpace(singleQuote.ReplaceAllString(text, ""))

	rec := p.assemble(text)
	if rec == nil {
		return nil
	}

	rec.Name = name
	if m := italicSpan.FindStringSubmatch(text); m != nil {
		rec.Flavor = strings.TrimSpace(m[1])
	}
	return rec
}

// assemble runs every extractor over body. Sections are read from the text
// before any stat block so creature traits do not leak into the ability.
func (p *Parser) assemble(body string) *drawsteel.AbilityRecord {
	sections := body
	if at := statblockStart(body); at >= 0 {
		sections = body[:at]
	}

	rec := &drawsteel.AbilityRecord{}

	roll := p.scanPowerRoll(sections)
	if roll != nil {
		rec.PowerRoll = roll.roll
	}
	spans := p.scanEffects(sections, roll)
	rec.Effects = spans.result()
	rec.Persistent = p.Persistent(sections)
	rec.CostOptions = p.CostOptions(sections)
	rec.Targeting = p.Targeting(sections)

	if meta := p.Table(sections); meta != nil {
		rec.Action = &drawsteel.Action{Type: meta.ActionType, Keywords: meta.Keywords}
		if rec.Action.Keywords == nil {
			rec.Action.Keywords = []string{}
		}
		if rec.Targeting == nil {
			rec.Targeting = &drawsteel.Targeting{}
		}
		if rec.Targeting.Distance == "" {
			rec.Targeting.Distance = meta.Distance
		}
		if rec.Targeting.Target == "" {
			rec.Targeting.Target = meta.Target
		}
		if *rec.Targeting == (drawsteel.Targeting{}) {
			rec.Targeting = nil
		}
	}

	rec.StatBlock = p.StatBlock(body)
	rec.ComponentOrder = componentOrder(sections, rec, spans)

	if !recoverable(rec) {
		return nil
	}
	return rec
}

// recoverable reports whether any body section was found
func recoverable(rec *drawsteel.AbilityRecord) bool {
	return rec.PowerRoll != nil ||
		rec.Effects != nil ||
		rec.Persistent != nil ||
		len(rec.CostOptions) > 0 ||
		rec.Targeting != nil ||
		rec.Action != nil ||
		rec.StatBlock != nil
}
