package parser

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/markdown"
)

var (
	statblockHeading = regexp.MustCompile(`(?im)^[ \t]*>?[ \t]*#{6}[ \t]+(.+?)[ \t]+Statblock[ \t]*$`)
	nextAnyHeading   = regexp.MustCompile(`\n(?:>[ \t]*)?#{1,6}[ \t]+`)
	creatureLine     = regexp.MustCompile(`>?[ \t]*\*\*(.+?)\*\*[ \t]*\n`)
	traitHeading     = regexp.MustCompile(`\n>[ \t]*>[ \t]*\*\*([^*]+)\*\*[ \t]*\n`)
	sectionLabelName = regexp.MustCompile(`(?i)^(?:Power Roll\s*\+|Persistent\s+\d|Spend\s+\d|(?:Effect|Trigger|Mark Benefit|Strained)\s*:?$)`)
	traitQuote       = regexp.MustCompile(`(?m)^>[ \t]*>?[ \t]*`)
	tableQuote       = regexp.MustCompile(`(?m)^>[ \t]*`)
	cellBold         = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	cellBreak        = regexp.MustCompile(`(?i)<br\s*/?>`)
	levelCell        = regexp.MustCompile(`Level\s+(\d+)`)
	evCell           = regexp.MustCompile(`^EV\s+(.+)`)
)

// statblockStart returns the offset of the first stat block heading in
// body, or -1
func statblockStart(body string) int {
	if loc := statblockHeading.FindStringIndex(body); loc != nil {
		return loc[0]
	}
	return -1
}

// StatBlock extracts the first "###### X Statblock" section of content. Trait
// entries that carry a table are parsed as embedded abilities.
func (p *Parser) StatBlock(content string) *drawsteel.StatBlock {
	m := statblockHeading.FindStringSubmatchIndex(content)
	if m == nil {
		return nil
	}

	headingName := strings.TrimSpace(content[m[2]:m[3]])
	start := m[1]
	if start < len(content) && content[start] == '\n' {
		start++
	}
	end := len(content)
	if loc := nextAnyHeading.FindStringIndex(content[start:]); loc != nil {
		end = start + loc[0]
	}
	section := content[start:end]

	block := &drawsteel.StatBlock{
		Name:        headingName,
		FullContent: strings.TrimSpace(section),
	}
	if cm := creatureLine.FindStringSubmatch(section); cm != nil {
		block.Name = strings.TrimSpace(cm[1])
	}

	table, tableEnd := statTable(section, block.Name)
	if table != "" {
		block.StatTable = table
		block.Stats = p.stats(table)
	}

	block.Traits = p.traits(section[tableEnd:])

	return block
}

// statTable collects the run of table lines under the creature name. It
// returns the cleaned table and the offset just past its last line.
func statTable(section, creature string) (string, int) {
	var (
		lines   []string
		inTable bool
		offset  int
		end     int
	)
	for _, line := range strings.SplitAfter(section, "\n") {
		lineStart := offset
		offset += len(line)
		trimmed := strings.TrimSpace(line)

		if strings.Contains(line, creature) && strings.Contains(line, "**") {
			continue
		}
		if strings.Contains(line, "|") && !strings.HasPrefix(trimmed, "> >") {
			lines = append(lines, strings.TrimRight(line, "\n"))
			inTable = true
			end = lineStart + len(strings.TrimRight(line, "\n"))
			continue
		}
		if inTable && (trimmed == "" || trimmed == ">") {
			break
		}
	}

	if len(lines) == 0 {
		return "", 0
	}
	table := strings.TrimSpace(strings.Join(lines, "\n"))
	return tableQuote.ReplaceAllString(table, ""), end
}

func (p *Parser) traits(section string) []drawsteel.Trait {
	var matches [][]int
	for _, m := range traitHeading.FindAllStringSubmatchIndex(section, -1) {
		if isTraitName(section[m[2]:m[3]]) {
			matches = append(matches, m)
		}
	}

	var traits []drawsteel.Trait
	for i, m := range matches {
		end := len(section)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		name := strings.TrimSpace(section[m[2]:m[3]])
		text := strings.TrimSpace(traitQuote.ReplaceAllString(section[m[1]:end], ""))

		if strings.Contains(text, "|") {
			traits = append(traits, drawsteel.Trait{
				Name:    name,
				Type:    drawsteel.TraitTypeAbility,
				Content: text,
				Ability: p.ParseEmbedded(text, name),
			})
			continue
		}
		traits = append(traits, drawsteel.Trait{
			Name:        name,
			Type:        drawsteel.TraitTypeTrait,
			Description: text,
		})
	}
	return traits
}

// isTraitName rejects bold lines that are an ability's own section labels
func isTraitName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && !strings.HasSuffix(name, ":") && !sectionLabelName.MatchString(name)
}

// stats maps stat table cells to canonical keys. A cell label found in the
// vocabulary wins over the cell position.
func (p *Parser) stats(table string) *drawsteel.Stats {
	lines := strings.Split(table, "\n")
	if len(lines) < 5 {
		return nil
	}

	st := &drawsteel.Stats{}
	for row, line := range lines {
		if row >= len(p.vocab.StatLayout) || len(p.vocab.StatLayout[row]) == 0 {
			continue
		}
		layout := p.vocab.StatLayout[row]
		cells := markdown.SplitRow(line)
		if len(cells) < len(layout) {
			continue
		}
		for i, cell := range cells {
			value, label := splitCell(cell)
			if value == "" {
				continue
			}
			key := p.vocab.StatKeys[strings.ToLower(label)]
			if key == "" && i < len(layout) {
				key = layout[i]
			}
			setStat(st, key, value)
		}
	}

	if *st == (drawsteel.Stats{}) {
		return nil
	}
	return st
}

// splitCell reads "**value**<br/> Label" cells
func splitCell(cell string) (string, string) {
	cell = strings.TrimSpace(cell)

	var value, label string
	parts := cellBreak.Split(cell, 2)
	if len(parts) == 2 {
		label = strings.TrimSpace(markdown.StripBold(parts[1]))
	}
	if m := cellBold.FindStringSubmatch(cell); m != nil {
		value = strings.TrimSpace(m[1])
	} else {
		value = strings.TrimSpace(parts[0])
	}

	if value == "-" {
		value = ""
	}
	return value, label
}

func setStat(st *drawsteel.Stats, key, value string) {
	chars := func() *drawsteel.Characteristics {
		if st.Characteristics == nil {
			st.Characteristics = &drawsteel.Characteristics{}
		}
		return st.Characteristics
	}

	switch key {
	case StatAncestry:
		st.Ancestry = value
	case StatLevel:
		if m := levelCell.FindStringSubmatch(value); m != nil {
			st.Level = drawsteel.ParseStatValue(m[1])
		} else {
			st.Level = &drawsteel.StatValue{Text: value}
		}
	case StatRole:
		st.Role = value
	case StatEV:
		if m := evCell.FindStringSubmatch(value); m != nil {
			st.EV = strings.TrimSpace(m[1])
		}
	case StatSize:
		st.Size = value
	case StatSpeed:
		st.Speed = drawsteel.ParseStatValue(value)
	case StatStamina:
		st.Stamina = drawsteel.ParseStatValue(value)
	case StatStability:
		st.Stability = drawsteel.ParseStatValue(value)
	case StatFreeStrike:
		st.FreeStrike = drawsteel.ParseStatValue(value)
	case StatImmunities:
		st.Immunities = value
	case StatMovement:
		st.Movement = value
	case StatWithCaptain:
		st.WithCaptain = value
	case StatWeaknesses:
		st.Weaknesses = value
	case StatMight:
		chars().Might = drawsteel.ParseStatValue(value)
	case StatAgility:
		chars().Agility = drawsteel.ParseStatValue(value)
	case StatReason:
		chars().Reason = drawsteel.ParseStatValue(value)
	case StatIntuition:
		chars().Intuition = drawsteel.ParseStatValue(value)
	case StatPresence:
		chars().Presence = drawsteel.ParseStatValue(value)
	}
}
