package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
)

var (
	persistentLabel = regexp.MustCompile(`\*\*Persistent (\d+):\*\*`)
	spendLabel      = regexp.MustCompile(`\*\*Spend (\d+\+?) ([^:*\n]+):\*\*`)
)

// Persistent extracts the first "Persistent N:" clause, bounded to its
// paragraph
func (p *Parser) Persistent(body string) *drawsteel.Persistent {
	m := persistentLabel.FindStringSubmatchIndex(body)
	if m == nil {
		return nil
	}

	turns, err := strconv.Atoi(body[m[2]:m[3]])
	if err != nil {
		return nil
	}

	end := cut(body, m[1], blankLineBound, headingBound)
	return &drawsteel.Persistent{
		Turns:       turns,
		Description: strings.TrimSpace(body[m[1]:end]),
	}
}

// CostOptions extracts every "Spend N[+] Resource:" clause in order. Each
// runs to the next Spend label or the end of the ability. The result is
// never nil.
func (p *Parser) CostOptions(body string) []drawsteel.CostOption {
	options := []drawsteel.CostOption{}

	matches := spendLabel.FindAllStringSubmatchIndex(body, -1)
	for i, m := range matches {
		end := len(body)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		end = cut(body[:end], m[1], abilityHeadBound)

		options = append(options, drawsteel.CostOption{
			Amount:   body[m[2]:m[3]],
			Resource: strings.TrimSpace(body[m[4]:m[5]]),
			Effect:   strings.TrimSpace(body[m[1]:end]),
		})
	}

	return options
}
