package parser

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/markdown"
)

var (
	powerRollMarker    = regexp.MustCompile(`\*\*Power Roll \+ ([^:*\n]+):\*\*`)
	conditionalPattern = regexp.MustCompile(`(?i)\*\*Effect:\*\*\s*([^.]+)\.\s*(?:If you target an enemy|Otherwise),?\s*you make a power roll`)
	tierBulletPattern  = regexp.MustCompile(`(?m)^[ \t]*(?:>[ \t]*)*-[ \t]*\*\*([^:*\n]+):\*\*[ \t]*`)
)

// powerRollScan is a power roll plus where it sits in the body
type powerRollScan struct {
	roll        *drawsteel.PowerRoll
	markerStart int
	// tiersEnd is the offset just past the last tier result
	tiersEnd int
}

// PowerRoll segments the "Power Roll + X:" tier list of body. It returns nil
// when there is no marker or when no tier bullet follows it.
func (p *Parser) PowerRoll(body string) *drawsteel.PowerRoll {
	if scan := p.scanPowerRoll(body); scan != nil {
		return scan.roll
	}
	return nil
}

func (p *Parser) scanPowerRoll(body string) *powerRollScan {
	marker := powerRollMarker.FindStringSubmatchIndex(body)
	if marker == nil {
		return nil
	}

	scopeStart := marker[1]
	scopeEnd := cut(body, scopeStart, lineLabelBound)
	scope := body[scopeStart:scopeEnd]

	bullets := tierBulletPattern.FindAllStringSubmatchIndex(scope, -1)
	if len(bullets) == 0 {
		return nil
	}

	scan := &powerRollScan{
		roll: &drawsteel.PowerRoll{
			Characteristic: strings.TrimSpace(body[marker[2]:marker[3]]),
			Tiers:          make([]drawsteel.Tier, 0, len(bullets)),
		},
		markerStart: marker[0],
	}

	if m := conditionalPattern.FindStringSubmatch(body); m != nil {
		scan.roll.Conditional = strings.TrimSpace(m[1])
	}

	for i, b := range bullets {
		resultEnd := len(scope)
		if i+1 < len(bullets) {
			resultEnd = bullets[i+1][0]
		}
		resultEnd = cut(scope[:resultEnd], b[1], blankLineBound)

		rangeText := strings.TrimSpace(scope[b[2]:b[3]])
		result := markdown.CollapseSpace(markdown.StripBlockquote(scope[b[1]:resultEnd]))
		scan.roll.Tiers = append(scan.roll.Tiers, p.tier(rangeText, result))
		scan.tiersEnd = scopeStart + resultEnd
	}

	return scan
}

// tier splits a tier result on semicolons. The first clause that validates
// as damage fills Damage; every other clause is kept, in order, as an effect.
func (p *Parser) tier(rangeText, result string) drawsteel.Tier {
	t := drawsteel.Tier{
		Tier:    p.vocab.ClassifyTier(rangeText),
		Range:   rangeText,
		Effects: []string{},
	}

	for _, part := range strings.Split(result, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if t.Damage == nil {
			if dc := p.Damage(part); dc != nil {
				t.Damage = dc
				continue
			}
		}
		t.Effects = append(t.Effects, part)
	}

	return t
}

// ClassifyTier maps range text to a tier name
func (p *Parser) ClassifyTier(rangeText string) drawsteel.TierName {
	return p.vocab.ClassifyTier(rangeText)
}
