package parser

import (
	"strings"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
)

// Vocabulary is the data the extractors match against. Everything dialect
// specific lives here so new phrasing can be handled without code changes.
type Vocabulary struct {
	// Characteristics are the single-letter codes that may appear in damage
	// formulas
	Characteristics []string `yaml:"characteristics"`

	// TierRanges maps each tier to substrings that identify its range text
	TierRanges TierRanges `yaml:"tier_ranges"`

	// Header terms used by the table fallback when a table does not follow
	// the two-column keywords/action layout
	KeywordTerms  []string `yaml:"keyword_terms"`
	DistanceTerms []string `yaml:"distance_terms"`
	ActionTerms   []string `yaml:"action_terms"`
	TargetTerms   []string `yaml:"target_terms"`

	// StatKeys maps a stat cell label ("Free Strike") to its canonical key
	StatKeys map[string]string `yaml:"stat_keys"`

	// StatLayout gives the canonical key of each cell by table line when a
	// cell has no recognised label. Line 1 is the separator.
	StatLayout [][]string `yaml:"stat_layout"`

	characteristicSet map[string]bool
}

// TierRanges holds the range markers per tier
type TierRanges struct {
	Weak    []string `yaml:"weak"`
	Average []string `yaml:"average"`
	Strong  []string `yaml:"strong"`
}

// Stat keys
const (
	StatAncestry    = "ancestry"
	StatLevel       = "level"
	StatRole        = "role"
	StatEV          = "ev"
	StatSize        = "size"
	StatSpeed       = "speed"
	StatStamina     = "stamina"
	StatStability   = "stability"
	StatFreeStrike  = "free_strike"
	StatImmunities  = "immunities"
	StatMovement    = "movement"
	StatWithCaptain = "with_captain"
	StatWeaknesses  = "weaknesses"
	StatMight       = "might"
	StatAgility     = "agility"
	StatReason      = "reason"
	StatIntuition   = "intuition"
	StatPresence    = "presence"
)

// DefaultVocabulary returns the built-in vocabulary
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Characteristics: []string{"M", "A", "R", "I", "P"},
		TierRanges: TierRanges{
			Weak:    []string{"≤11", "≤ 11", "11-", "11 or lower", "11 or less"},
			Average: []string{"12-16", "12–16", "12—16", "12 - 16", "12 – 16"},
			Strong:  []string{"17+", "17–", "17 +", "≥17", "17 or higher"},
		},
		KeywordTerms: []string{
			"keyword", "area", "magic", "psionic", "ranged", "melee", "strike", "telepathy",
			"force", "fire", "cold", "lightning", "poison", "necrotic", "radiant",
			"weapon", "spell", "divine", "martial",
		},
		DistanceTerms: []string{"distance", "ranged", "melee", "reach"},
		ActionTerms:   []string{"maneuver", "main action", "free action", "reaction", "bonus action", "action"},
		TargetTerms:   []string{"target"},
		StatKeys: map[string]string{
			"size":         StatSize,
			"speed":        StatSpeed,
			"stamina":      StatStamina,
			"stability":    StatStability,
			"free strike":  StatFreeStrike,
			"immunity":     StatImmunities,
			"immunities":   StatImmunities,
			"movement":     StatMovement,
			"with captain": StatWithCaptain,
			"weakness":     StatWeaknesses,
			"weaknesses":   StatWeaknesses,
			"might":        StatMight,
			"agility":      StatAgility,
			"reason":       StatReason,
			"intuition":    StatIntuition,
			"presence":     StatPresence,
		},
		StatLayout: [][]string{
			{StatAncestry, "", StatLevel, StatRole, StatEV},
			nil,
			{StatSize, StatSpeed, StatStamina, StatStability, StatFreeStrike},
			{StatImmunities, StatMovement, "", StatWithCaptain, StatWeaknesses},
			{StatMight, StatAgility, StatReason, StatIntuition, StatPresence},
		},
	}
}

// Validate checks the vocabulary can drive the extractors
func (v *Vocabulary) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(v.Characteristics) == 0 {
		vb.RequiredField("characteristics")
	}
	for _, c := range v.Characteristics {
		if len([]rune(strings.TrimSpace(c))) != 1 {
			vb.InvalidField("characteristics", "codes must be single letters, got "+c)
		}
	}
	if len(v.TierRanges.Weak) == 0 || len(v.TierRanges.Average) == 0 || len(v.TierRanges.Strong) == 0 {
		vb.InvalidField("tier_ranges", "every tier needs at least one marker")
	}

	return vb.Build()
}

// Merge overlays the non-empty parts of other onto a copy of v
func (v *Vocabulary) Merge(other *Vocabulary) *Vocabulary {
	out := *v
	if other == nil {
		return &out
	}
	if len(other.Characteristics) > 0 {
		out.Characteristics = other.Characteristics
	}
	if len(other.TierRanges.Weak) > 0 {
		out.TierRanges.Weak = other.TierRanges.Weak
	}
	if len(other.TierRanges.Average) > 0 {
		out.TierRanges.Average = other.TierRanges.Average
	}
	if len(other.TierRanges.Strong) > 0 {
		out.TierRanges.Strong = other.TierRanges.Strong
	}
	if len(other.KeywordTerms) > 0 {
		out.KeywordTerms = other.KeywordTerms
	}
	if len(other.DistanceTerms) > 0 {
		out.DistanceTerms = other.DistanceTerms
	}
	if len(other.ActionTerms) > 0 {
		out.ActionTerms = other.ActionTerms
	}
	if len(other.TargetTerms) > 0 {
		out.TargetTerms = other.TargetTerms
	}
	if len(other.StatKeys) > 0 {
		keys := make(map[string]string, len(v.StatKeys)+len(other.StatKeys))
		for k, val := range v.StatKeys {
			keys[k] = val
		}
		for k, val := range other.StatKeys {
			keys[strings.ToLower(k)] = val
		}
		out.StatKeys = keys
	}
	if len(other.StatLayout) > 0 {
		out.StatLayout = other.StatLayout
	}
	out.characteristicSet = nil
	return &out
}

func (v *Vocabulary) compile() *Vocabulary {
	out := *v
	out.characteristicSet = make(map[string]bool, len(v.Characteristics))
	for _, c := range v.Characteristics {
		out.characteristicSet[strings.ToUpper(strings.TrimSpace(c))] = true
	}
	return &out
}

// IsCharacteristic reports whether s is a characteristic code, ignoring case
func (v *Vocabulary) IsCharacteristic(s string) bool {
	if v.characteristicSet == nil {
		for _, c := range v.Characteristics {
			if strings.EqualFold(c, s) {
				return true
			}
		}
		return false
	}
	return v.characteristicSet[strings.ToUpper(s)]
}

// ClassifyTier maps power roll range text to a tier. Every input yields
// exactly one of the four tier names.
func (v *Vocabulary) ClassifyTier(rangeText string) drawsteel.TierName {
	switch {
	case containsAny(rangeText, v.TierRanges.Weak):
		return drawsteel.TierWeak
	case containsAny(rangeText, v.TierRanges.Average):
		return drawsteel.TierAverage
	case containsAny(rangeText, v.TierRanges.Strong):
		return drawsteel.TierStrong
	default:
		return drawsteel.TierUnknown
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// matchTerm returns whether any term occurs in the lowered text
func matchTerm(lowered string, terms []string) bool {
	for _, t := range terms {
		if t != "" && strings.Contains(lowered, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
