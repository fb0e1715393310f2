package parser

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/markdown"
)

var (
	distanceMarker = regexp.MustCompile(`\*\*📏\s*([^*]+?)\*\*`)
	targetMarker   = regexp.MustCompile(`\*\*🎯\s*([^*]+?)\*\*`)
	cellCleaner    = strings.NewReplacer("**", "", "📏", "", "🎯", "")
)

// TableMetadata is what an ability's keyword table says about it
type TableMetadata struct {
	Keywords   []string
	ActionType string
	Distance   string
	Target     string
}

// Targeting finds the 📏 distance and 🎯 target markers. Either may be
// missing; nil means neither was found.
func (p *Parser) Targeting(body string) *drawsteel.Targeting {
	var t drawsteel.Targeting
	if m := distanceMarker.FindStringSubmatch(body); m != nil {
		t.Distance = strings.TrimSpace(m[1])
	}
	if m := targetMarker.FindStringSubmatch(body); m != nil {
		t.Target = strings.TrimSpace(m[1])
	}
	if t == (drawsteel.Targeting{}) {
		return nil
	}
	return &t
}

// Table reads keywords, action type, distance and target from the first
// usable table of body. Two-column tables follow the keywords/action over
// distance/target layout; wider tables are matched by header vocabulary.
func (p *Parser) Table(body string) *TableMetadata {
	for _, table := range markdown.Tables(body, 3) {
		header := cleanCells(table.Rows[0])
		data := cleanCells(table.Rows[2])
		if len(header) != len(data) || len(header) < 2 {
			continue
		}

		var meta *TableMetadata
		if len(header) == 2 {
			meta = twoColumnTable(header, data)
		} else {
			meta = p.vocabularyTable(header, data)
		}
		return meta
	}
	return nil
}

func twoColumnTable(header, data []string) *TableMetadata {
	meta := &TableMetadata{
		Keywords:   markdown.SplitList(header[0]),
		ActionType: header[1],
		Distance:   data[0],
		Target:     data[1],
	}
	if meta.empty() {
		return nil
	}
	return meta
}

func (p *Parser) vocabularyTable(header, data []string) *TableMetadata {
	meta := &TableMetadata{}
	for i, h := range header {
		value := data[i]
		if value == "" {
			continue
		}

		lowered := strings.ToLower(h)
		switch {
		case matchTerm(lowered, p.vocab.KeywordTerms):
			meta.Keywords = append(meta.Keywords, markdown.SplitList(value)...)
		case matchTerm(lowered, p.vocab.DistanceTerms):
			meta.Distance = value
		case matchTerm(lowered, p.vocab.ActionTerms):
			meta.ActionType = value
		case matchTerm(lowered, p.vocab.TargetTerms):
			meta.Target = value
		}
	}
	if meta.empty() {
		return nil
	}
	return meta
}

func (m *TableMetadata) empty() bool {
	return len(m.Keywords) == 0 && m.ActionType == "" && m.Distance == "" && m.Target == ""
}

func cleanCells(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(cellCleaner.Replace(c))
	}
	return out
}
