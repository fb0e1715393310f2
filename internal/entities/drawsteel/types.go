// Package drawsteel holds the normalized records produced from Draw Steel rules markdown.
package drawsteel

// Identity carries the fields a caller attaches to a parsed record. The parser
// core never fills these from body text; they come from front matter or from
// the heading that introduced an embedded block.
type Identity struct {
	ID          string `json:"id,omitempty"`
	BaseID      string `json:"base_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Index       string `json:"index,omitempty"`
	Source      string `json:"source,omitempty"`
	Type        string `json:"type,omitempty"`
	Class       string `json:"class,omitempty"`
	Subclass    string `json:"subclass,omitempty"`
	Level       int    `json:"level,omitempty"`
	AbilityType string `json:"ability_type,omitempty"`
	FeatureType string `json:"feature_type,omitempty"`
	OwnerKind   Kind   `json:"owner_kind,omitempty"`
	OwnerID     string `json:"owner_id,omitempty"`
}

// AbilityRecord is one normalized ability, standalone or embedded.
type AbilityRecord struct {
	Identity

	Flavor string `json:"flavor,omitempty"`

	// Cost is the up-front heroic resource cost, from front matter or a
	// parenthesised heading suffix.
	Cost *Cost `json:"cost,omitempty"`

	Action    *Action    `json:"action,omitempty"`
	Targeting *Targeting `json:"targeting,omitempty"`

	PowerRoll   *PowerRoll   `json:"power_roll"`
	Effects     *Effects     `json:"effects"`
	Persistent  *Persistent  `json:"persistent"`
	CostOptions []CostOption `json:"cost_options"`

	// ComponentOrder lists the populated sections in authored order.
	ComponentOrder []Component `json:"component_order,omitempty"`

	StatBlock *StatBlock `json:"stat_block"`
}

// Cost is a fixed resource cost paid to use an ability
type Cost struct {
	Amount   int    `json:"amount"`
	Resource string `json:"resource"`
}

// Action describes how an ability is used
type Action struct {
	Type     string   `json:"type,omitempty"`
	Keywords []string `json:"keywords"`
}

// Targeting holds the free-text distance and target of an ability
type Targeting struct {
	Distance string `json:"distance,omitempty"`
	Target   string `json:"target,omitempty"`
}

// PowerRoll is the tiered outcome table of an ability
type PowerRoll struct {
	Characteristic string `json:"characteristic"`
	Conditional    string `json:"conditional,omitempty"`
	Tiers          []Tier `json:"tiers"`
}

// Tier is one outcome row of a power roll
type Tier struct {
	Tier    TierName      `json:"tier"`
	Range   string        `json:"range"`
	Damage  *DamageClause `json:"damage"`
	Effects []string      `json:"effects"`
}

// DamageClause is a normalized damage expression
type DamageClause struct {
	Formula         string   `json:"formula"`
	Type            string   `json:"type,omitempty"`
	Characteristics []string `json:"characteristics,omitempty"`
}

// Effects groups the labelled prose sections of an ability.
// Before/After and Effect are never populated together.
type Effects struct {
	Trigger     string `json:"trigger,omitempty"`
	Before      string `json:"before,omitempty"`
	After       string `json:"after,omitempty"`
	Effect      string `json:"effect,omitempty"`
	MarkBenefit string `json:"mark_benefit,omitempty"`
	Strained    string `json:"strained,omitempty"`
}

// Has reports whether the effect section for c is populated
func (e *Effects) Has(c Component) bool {
	if e == nil {
		return false
	}
	switch c {
	case ComponentTrigger:
		return e.Trigger != ""
	case ComponentBefore:
		return e.Before != ""
	case ComponentAfter:
		return e.After != ""
	case ComponentEffect:
		return e.Effect != ""
	case ComponentMarkBenefit:
		return e.MarkBenefit != ""
	case ComponentStrained:
		return e.Strained != ""
	default:
		return false
	}
}

// Persistent is an effect that keeps going for a number of turns
type Persistent struct {
	Turns       int    `json:"turns"`
	Description string `json:"description"`
}

// CostOption is a "Spend N Resource:" enhancement. Amount keeps the
// trailing "+" when the source says "or more".
type CostOption struct {
	Amount   string `json:"amount"`
	Resource string `json:"resource"`
	Effect   string `json:"effect"`
}

// FeatureRecord is a document that carries embedded abilities: a class
// feature, title, treasure, kit or ancestry.
type FeatureRecord struct {
	Identity

	Kind        Kind             `json:"kind"`
	Flavor      string           `json:"flavor,omitempty"`
	Description string           `json:"description,omitempty"`
	Abilities   []*AbilityRecord `json:"abilities,omitempty"`
	StatBlock   *StatBlock       `json:"stat_block,omitempty"`
}
