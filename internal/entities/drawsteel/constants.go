package drawsteel

// TierName is the closed set of power roll outcome labels
type TierName string

// Tier labels
const (
	TierWeak    TierName = "weak"
	TierAverage TierName = "average"
	TierStrong  TierName = "strong"
	TierUnknown TierName = "unknown"
)

// Component names a structural section of an ability
type Component string

// Component tokens used in AbilityRecord.ComponentOrder
const (
	ComponentTrigger     Component = "trigger"
	ComponentBefore      Component = "before"
	ComponentAfter       Component = "after"
	ComponentEffect      Component = "effect"
	ComponentPowerRoll   Component = "power_roll"
	ComponentMarkBenefit Component = "mark_benefit"
	ComponentStrained    Component = "strained"
	ComponentPersistent  Component = "persistent"
	ComponentCostOptions Component = "cost_options"
)

// Kind is the type of source document a record came from
type Kind string

// Document kinds
const (
	KindAbility  Kind = "ability"
	KindFeature  Kind = "feature"
	KindTitle    Kind = "title"
	KindTreasure Kind = "treasure"
	KindKit      Kind = "kit"
	KindAncestry Kind = "ancestry"
)

// Kinds lists every known document kind
func Kinds() []Kind {
	return []Kind{KindAbility, KindFeature, KindTitle, KindTreasure, KindKit, KindAncestry}
}

// IsCarrier reports whether documents of this kind embed abilities rather
// than being one
func (k Kind) IsCarrier() bool {
	return k != KindAbility && k != ""
}

// TraitType distinguishes stat block traits from stat block abilities
type TraitType string

// Trait types
const (
	TraitTypeTrait   TraitType = "trait"
	TraitTypeAbility TraitType = "ability"
)

// DefaultSource is the source tag used when front matter omits one
const DefaultSource = "mcdm.heroes.v1"
