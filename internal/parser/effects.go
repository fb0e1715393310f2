package parser

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
)

var (
	triggerLabel     = regexp.MustCompile(`\*\*Trigger:\*\*`)
	effectLabel      = regexp.MustCompile(`\*\*Effect:\*\*`)
	markBenefitLabel = regexp.MustCompile(`\*\*Mark Benefit:\*\*`)
	strainedLabel    = regexp.MustCompile(`\*\*Strained:\*\*`)
	beforeAnchor     = regexp.MustCompile(`\*\*🎯[^*]+\*\*|\*\*Trigger:\*\*[^\n]+`)
)

// effectSpans is the extracted effect text together with the label offset
// each populated key came from
type effectSpans struct {
	effects drawsteel.Effects
	from    map[int]drawsteel.Component
}

// Effects extracts the labelled effect sections of body. hasPowerRoll selects
// between the before/after scheme and the single multi-paragraph effect.
// It returns nil when no section is found.
func (p *Parser) Effects(body string, hasPowerRoll bool) *drawsteel.Effects {
	var roll *powerRollScan
	if hasPowerRoll {
		roll = p.scanPowerRoll(body)
	}
	return p.scanEffects(body, roll).result()
}

func (p *Parser) scanEffects(body string, roll *powerRollScan) *effectSpans {
	spans := &effectSpans{from: make(map[int]drawsteel.Component)}

	if loc := triggerLabel.FindStringIndex(body); loc != nil {
		end := cut(body, loc[1], lineLabelBound, headingBound)
		spans.set(loc[0], drawsteel.ComponentTrigger, body[loc[1]:end])
	}

	if roll != nil {
		beforeAt, before := beforeEffect(body, roll)
		afterAt, after := afterEffect(body, roll)
		switch {
		case before != "" && after != "":
			spans.set(beforeAt, drawsteel.ComponentBefore, before)
			spans.set(afterAt, drawsteel.ComponentAfter, after)
		case before != "":
			spans.set(beforeAt, drawsteel.ComponentEffect, before)
		case after != "":
			spans.set(afterAt, drawsteel.ComponentEffect, after)
		}
	} else if loc := effectLabel.FindStringIndex(body); loc != nil {
		end := cut(body, loc[1], abilityHeadBound)
		spans.set(loc[0], drawsteel.ComponentEffect, body[loc[1]:end])
	}

	if loc := markBenefitLabel.FindStringIndex(body); loc != nil {
		end := cut(body, loc[1], blankLineBound, lineLabelBound, headingBound)
		spans.set(loc[0], drawsteel.ComponentMarkBenefit, body[loc[1]:end])
	}

	if loc := strainedLabel.FindStringIndex(body); loc != nil {
		end := cut(body, loc[1], blankLineBound, lineLabelBound, headingBound)
		spans.set(loc[0], drawsteel.ComponentStrained, body[loc[1]:end])
	}

	return spans
}

// beforeEffect is the Effect paragraph between the targeting or trigger
// line and the power roll marker
func beforeEffect(body string, roll *powerRollScan) (int, string) {
	from := 0
	if anchor := beforeAnchor.FindStringIndex(body[:roll.markerStart]); anchor != nil {
		from = anchor[1]
	}

	loc := labelAt(body, effectLabel, from, roll.markerStart)
	if loc == nil {
		return 0, ""
	}

	end := cut(body[:roll.markerStart], loc[1], lineLabelBound, headingBound)
	return loc[0], strings.TrimSpace(body[loc[1]:end])
}

// afterEffect is the first Effect paragraph after the tier list
func afterEffect(body string, roll *powerRollScan) (int, string) {
	loc := labelAt(body, effectLabel, roll.tiersEnd, len(body))
	if loc == nil {
		return 0, ""
	}

	end := cut(body, loc[1], blankLineBound, lineLabelBound, headingBound)
	return loc[0], strings.TrimSpace(body[loc[1]:end])
}

func (s *effectSpans) set(at int, c drawsteel.Component, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	switch c {
	case drawsteel.ComponentTrigger:
		s.effects.Trigger = text
	case drawsteel.ComponentBefore:
		s.effects.Before = text
	case drawsteel.ComponentAfter:
		s.effects.After = text
	case drawsteel.ComponentEffect:
		s.effects.Effect = text
	case drawsteel.ComponentMarkBenefit:
		s.effects.MarkBenefit = text
	case drawsteel.ComponentStrained:
		s.effects.Strained = text
	default:
		return
	}
	s.from[at] = c
}

// result returns a copy of the effects, or nil when none were found
func (s *effectSpans) result() *drawsteel.Effects {
	if s.effects == (drawsteel.Effects{}) {
		return nil
	}
	out := s.effects
	return &out
}
