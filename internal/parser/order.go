package parser

import (
	"regexp"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
)

var orderLabelPattern = regexp.MustCompile(`\*\*(Trigger:|Effect:|Power Roll|Mark Benefit:|Strained:|Persistent|Spend)`)

// fallbackOrder is used when the body has no section labels at all
var fallbackOrder = []drawsteel.Component{
	drawsteel.ComponentTrigger,
	drawsteel.ComponentBefore,
	drawsteel.ComponentPowerRoll,
	drawsteel.ComponentAfter,
	drawsteel.ComponentMarkBenefit,
	drawsteel.ComponentPersistent,
	drawsteel.ComponentEffect,
}

// canonicalOrder is the order used to append populated components that no
// label accounted for
var canonicalOrder = []drawsteel.Component{
	drawsteel.ComponentTrigger,
	drawsteel.ComponentBefore,
	drawsteel.ComponentPowerRoll,
	drawsteel.ComponentAfter,
	drawsteel.ComponentEffect,
	drawsteel.ComponentMarkBenefit,
	drawsteel.ComponentStrained,
	drawsteel.ComponentPersistent,
	drawsteel.ComponentCostOptions,
}

// ComponentOrder lists the populated sections of rec in the order their
// labels appear in body. Every populated section appears exactly once.
func (p *Parser) ComponentOrder(body string, rec *drawsteel.AbilityRecord) []drawsteel.Component {
	spans := p.scanEffects(body, p.scanPowerRoll(body))
	return componentOrder(body, rec, spans)
}

func componentOrder(body string, rec *drawsteel.AbilityRecord, spans *effectSpans) []drawsteel.Component {
	var (
		order []drawsteel.Component
		seen  = make(map[drawsteel.Component]bool)
	)
	add := func(c drawsteel.Component) {
		if c == "" || seen[c] || !populated(rec, c) {
			return
		}
		seen[c] = true
		order = append(order, c)
	}

	labels := orderLabelPattern.FindAllStringSubmatchIndex(body, -1)
	for _, m := range labels {
		switch body[m[2]:m[3]] {
		case "Trigger:":
			add(drawsteel.ComponentTrigger)
		case "Effect:":
			add(spans.from[m[0]])
		case "Power Roll":
			add(drawsteel.ComponentPowerRoll)
		case "Mark Benefit:":
			add(drawsteel.ComponentMarkBenefit)
		case "Strained:":
			add(drawsteel.ComponentStrained)
		case "Persistent":
			add(drawsteel.ComponentPersistent)
		case "Spend":
			add(drawsteel.ComponentCostOptions)
		}
	}

	if len(labels) == 0 {
		for _, c := range fallbackOrder {
			add(c)
		}
	}

	for _, c := range canonicalOrder {
		add(c)
	}

	return order
}

func populated(rec *drawsteel.AbilityRecord, c drawsteel.Component) bool {
	switch c {
	case drawsteel.ComponentPowerRoll:
		return rec.PowerRoll != nil
	case drawsteel.ComponentPersistent:
		return rec.Persistent != nil
	case drawsteel.ComponentCostOptions:
		return len(rec.CostOptions) > 0
	default:
		return rec.Effects.Has(c)
	}
}
