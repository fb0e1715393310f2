package parser

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
	"github.com/KirkDiggler/steel-compendium/internal/markdown"
)

var (
	costSuffixPattern = regexp.MustCompile(`-\d+-\w+$`)
	firstHeading      = regexp.MustCompile(`(?m)^[ \t]*>?[ \t]*#{1,6}[ \t]+(.+?)[ \t]*$`)
)

// Document is one parsed source file. Exactly one of Ability and Feature is
// set.
type Document struct {
	Path    string
	Kind    drawsteel.Kind
	Ability *drawsteel.AbilityRecord
	Feature *drawsteel.FeatureRecord
}

// ParseDocument parses a raw markdown file. Unreadable text, a missing front
// matter block and a document with nothing to extract are reported as
// skippable errors.
func (p *Parser) ParseDocument(path string, raw []byte) (*Document, error) {
	text, ok := markdown.Normalize(raw)
	if !ok {
		return nil, errors.Unreadable(path, errors.InvalidArgument("invalid UTF-8"))
	}

	fm, body, err := markdown.SplitFrontMatter(text)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read front matter").WithMeta("path", path)
	}
	if len(fm) == 0 {
		return nil, errors.MissingFrontMatter(path)
	}

	doc := &Document{Path: path, Kind: InferKind(fm, body)}

	if doc.Kind == drawsteel.KindAbility {
		doc.Ability = p.ParseStandalone(fm, body)
		if doc.Ability == nil {
			return nil, errors.EmptyDocument(path)
		}
		return doc, nil
	}

	doc.Feature = p.ParseFeature(fm, body, doc.Kind)
	if doc.Feature == nil {
		return nil, errors.EmptyDocument(path)
	}
	return doc, nil
}

// InferKind classifies a document from its front matter type, falling back
// to the shape of the body
func InferKind(fm markdown.FrontMatter, body string) drawsteel.Kind {
	declared := strings.ToLower(fm.String("type"))
	if i := strings.IndexAny(declared, "/:"); i >= 0 {
		declared = declared[:i]
	}
	for _, k := range drawsteel.Kinds() {
		if declared == string(k) {
			return k
		}
	}

	if HasEmbeddedAbilities(body) {
		return drawsteel.KindFeature
	}
	return drawsteel.KindAbility
}

// IdentityFromFrontMatter reads the identity fields of a record
func IdentityFromFrontMatter(fm markdown.FrontMatter, defaultType string) drawsteel.Identity {
	id := drawsteel.Identity{
		ID:          fm.String("item_id"),
		Name:        fm.String("item_name"),
		Index:       fm.String("item_index"),
		Source:      fm.String("source"),
		Type:        fm.String("type"),
		Class:       fm.String("class"),
		Subclass:    fm.String("subclass"),
		Level:       fm.Int("level"),
		AbilityType: fm.String("ability_type"),
		FeatureType: fm.String("feature_type"),
	}
	if id.Name == "" {
		id.Name = fm.String("name")
	}
	if id.Source == "" {
		id.Source = drawsteel.DefaultSource
	}
	if id.Type == "" {
		id.Type = defaultType
	}
	id.BaseID = costSuffixPattern.ReplaceAllString(id.ID, "")
	return id
}

// ParseStandalone assembles a standalone ability document. Front matter
// action and cost win over anything found in the body.
func (p *Parser) ParseStandalone(fm markdown.FrontMatter, body string) *drawsteel.AbilityRecord {
	id := IdentityFromFrontMatter(fm, string(drawsteel.KindAbility))
	if id.Name == "" {
		id.Name = headingText(body)
	}

	rec := p.ParseAbility(body, id)
	if rec == nil {
		return nil
	}

	actionType := fm.String("action_type")
	keywords := fm.Strings("keywords")
	if actionType != "" || len(keywords) > 0 {
		if keywords == nil {
			keywords = []string{}
		}
		rec.Action = &drawsteel.Action{Type: actionType, Keywords: keywords}
	}

	if amount, resource := fm.Int("cost_amount"), fm.String("cost_resource"); amount > 0 && resource != "" {
		rec.Cost = &drawsteel.Cost{Amount: amount, Resource: resource}
	}

	if rec.Flavor == "" {
		rec.Flavor = fm.String("flavor")
	}

	return rec
}

// ParseFeature assembles a carrier document: its description, embedded
// abilities and stat block. It returns nil when all three are empty.
func (p *Parser) ParseFeature(fm markdown.FrontMatter, body string, kind drawsteel.Kind) *drawsteel.FeatureRecord {
	feature := &drawsteel.FeatureRecord{
		Identity: IdentityFromFrontMatter(fm, string(kind)),
		Kind:     kind,
	}
	if feature.Name == "" {
		feature.Name = headingText(body)
	}
	if feature.ID == "" {
		feature.ID = Slugify(feature.Name)
		feature.BaseID = feature.ID
	}

	if m := standaloneFlavor.FindStringSubmatch(body); m != nil {
		feature.Flavor = strings.TrimSpace(m[1])
	} else {
		feature.Flavor = fm.String("flavor")
	}

	feature.Description = describe(body)
	feature.StatBlock = p.StatBlock(body)

	for _, rec := range p.ExtractEmbedded(body) {
		rec.OwnerKind = kind
		rec.OwnerID = feature.ID
		rec.ID = feature.ID + "-" + rec.ID
		rec.Source = feature.Source
		rec.Type = string(drawsteel.KindAbility)
		if rec.Class == "" {
			rec.Class = feature.Class
		}
		if rec.Subclass == "" {
			rec.Subclass = feature.Subclass
		}
		if rec.Level == 0 {
			rec.Level = feature.Level
		}
		feature.Abilities = append(feature.Abilities, rec)
	}

	if feature.Description == "" && len(feature.Abilities) == 0 && feature.StatBlock == nil {
		return nil
	}
	return feature
}

// describe is the carrier prose with ability blocks, comments and links
// removed
func describe(body string) string {
	var b strings.Builder
	last := 0
	for _, block := range embeddedBlocks(body) {
		b.WriteString(body[last:block.start])
		last = block.end
	}
	b.WriteString(body[last:])

	text := markdown.StripComments(b.String())
	text = markdown.StripLinks(text)
	return strings.TrimSpace(markdown.CollapseBlankLines(text))
}

func headingText(body string) string {
	if m := firstHeading.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
