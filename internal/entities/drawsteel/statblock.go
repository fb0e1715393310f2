package drawsteel

import (
	"encoding/json"
	"strconv"
)

// StatBlock is a creature stat block embedded in an ability or feature
type StatBlock struct {
	Name        string  `json:"name"`
	FullContent string  `json:"full_content"`
	StatTable   string  `json:"stat_table,omitempty"`
	Stats       *Stats  `json:"stats,omitempty"`
	Traits      []Trait `json:"traits,omitempty"`
}

// Stats are the normalized fields of a stat table
type Stats struct {
	Ancestry        string           `json:"ancestry,omitempty"`
	Level           *StatValue       `json:"level,omitempty"`
	Role            string           `json:"role,omitempty"`
	EV              string           `json:"ev,omitempty"`
	Size            string           `json:"size,omitempty"`
	Speed           *StatValue       `json:"speed,omitempty"`
	Stamina         *StatValue       `json:"stamina,omitempty"`
	Stability       *StatValue       `json:"stability,omitempty"`
	FreeStrike      *StatValue       `json:"free_strike,omitempty"`
	Immunities      string           `json:"immunities,omitempty"`
	Movement        string           `json:"movement,omitempty"`
	WithCaptain     string           `json:"with_captain,omitempty"`
	Weaknesses      string           `json:"weaknesses,omitempty"`
	Characteristics *Characteristics `json:"characteristics,omitempty"`
}

// Characteristics are the five core creature statistics
type Characteristics struct {
	Might     *StatValue `json:"might,omitempty"`
	Agility   *StatValue `json:"agility,omitempty"`
	Reason    *StatValue `json:"reason,omitempty"`
	Intuition *StatValue `json:"intuition,omitempty"`
	Presence  *StatValue `json:"presence,omitempty"`
}

// Trait is a named entry under a stat block. Traits that carry a table are
// abilities and keep their raw Content; the rest keep a Description.
type Trait struct {
	Name        string         `json:"name"`
	Type        TraitType      `json:"type"`
	Description string         `json:"description,omitempty"`
	Content     string         `json:"content,omitempty"`
	Ability     *AbilityRecord `json:"ability,omitempty"`
}

// StatValue is a stat cell that is an integer when the cell is purely
// numeric and the cell text otherwise ("2x your level").
type StatValue struct {
	Int     int
	Text    string
	Numeric bool
}

// ParseStatValue builds a StatValue from a cell
func ParseStatValue(s string) *StatValue {
	if n, err := strconv.Atoi(s); err == nil {
		return IntStat(n)
	}
	return &StatValue{Text: s}
}

// IntStat returns a numeric StatValue
func IntStat(n int) *StatValue {
	return &StatValue{Int: n, Numeric: true}
}

// String returns the value as text
func (v *StatValue) String() string {
	if v == nil {
		return ""
	}
	if v.Numeric {
		return strconv.Itoa(v.Int)
	}
	return v.Text
}

// MarshalJSON writes a number for numeric values and a string otherwise
func (v StatValue) MarshalJSON() ([]byte, error) {
	if v.Numeric {
		return json.Marshal(v.Int)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts either a JSON number or a string
func (v *StatValue) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*v = StatValue{Int: n, Numeric: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = StatValue{Text: s}
	return nil
}
