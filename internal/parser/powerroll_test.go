package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/parser"
)

func TestPowerRoll(t *testing.T) {
	p := parser.Default()

	t.Run("three tiers", func(t *testing.T) {
		body := "**Power Roll + Might:**\n" +
			"- **≤11:** 3 damage\n" +
			"- **12-16:** 5 damage\n" +
			"- **17+:** 8 damage; target is weakened"

		want := &drawsteel.PowerRoll{
			Characteristic: "Might",
			Tiers: []drawsteel.Tier{
				{Tier: drawsteel.TierWeak, Range: "≤11", Damage: &drawsteel.DamageClause{Formula: "3"}, Effects: []string{}},
				{Tier: drawsteel.TierAverage, Range: "12-16", Damage: &drawsteel.DamageClause{Formula: "5"}, Effects: []string{}},
				{Tier: drawsteel.TierStrong, Range: "17+", Damage: &drawsteel.DamageClause{Formula: "8"}, Effects: []string{"target is weakened"}},
			},
		}
		assert.Equal(t, want, p.PowerRoll(body))
	})

	t.Run("demoted damage clause", func(t *testing.T) {
		body := "**Power Roll + Presence:**\n- **12-16:** no damage this turn; target is dazed"

		roll := p.PowerRoll(body)
		require.NotNil(t, roll)
		require.Len(t, roll.Tiers, 1)
		assert.Nil(t, roll.Tiers[0].Damage)
		assert.Equal(t, []string{"no damage this turn", "target is dazed"}, roll.Tiers[0].Effects)
	})

	t.Run("first damage clause wins", func(t *testing.T) {
		// A second damage instance is kept as text rather than merged.
		body := "**Power Roll + Might:**\n- **17+:** 8 damage; 3 fire damage"

		roll := p.PowerRoll(body)
		require.NotNil(t, roll)
		assert.Equal(t, &drawsteel.DamageClause{Formula: "8"}, roll.Tiers[0].Damage)
		assert.Equal(t, []string{"3 fire damage"}, roll.Tiers[0].Effects)
	})

	t.Run("blockquoted tiers", func(t *testing.T) {
		body := "> **Power Roll + Agility:**\n>\n> - **≤11:** 2 damage\n> - **12-16:** 4 damage\n> - **17+:** 6 damage\n"

		roll := p.PowerRoll(body)
		require.NotNil(t, roll)
		require.Len(t, roll.Tiers, 3)
		assert.Equal(t, "Agility", roll.Characteristic)
		assert.Equal(t, "6", roll.Tiers[2].Damage.Formula)
	})

	t.Run("tier list stops at the next label", func(t *testing.T) {
		body := "**Power Roll + Might:**\n\n- **≤11:** 2 damage\n\n**Effect:** - **17+:** not a tier"

		roll := p.PowerRoll(body)
		require.NotNil(t, roll)
		assert.Len(t, roll.Tiers, 1)
	})

	t.Run("conditional", func(t *testing.T) {
		body := "**Effect:** You shift 2 squares. If you target an enemy, you make a power roll.\n\n" +
			"**Power Roll + Might:**\n- **≤11:** 2 damage"

		roll := p.PowerRoll(body)
		require.NotNil(t, roll)
		assert.Equal(t, "You shift 2 squares", roll.Conditional)
	})

	t.Run("no marker", func(t *testing.T) {
		assert.Nil(t, p.PowerRoll("- **≤11:** 2 damage"))
	})

	t.Run("marker without tiers", func(t *testing.T) {
		assert.Nil(t, p.PowerRoll("**Power Roll + Might:**\n\nThe GM decides."))
	})
}

func TestClassifyTier(t *testing.T) {
	p := parser.Default()

	tests := map[string]drawsteel.TierName{
		"≤11":         drawsteel.TierWeak,
		"11 or lower": drawsteel.TierWeak,
		"12-16":       drawsteel.TierAverage,
		"12–16":       drawsteel.TierAverage,
		"17+":         drawsteel.TierStrong,
		"17–19":       drawsteel.TierStrong,
		"foo":         drawsteel.TierUnknown,
		"":            drawsteel.TierUnknown,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, p.ClassifyTier(in))
		})
	}
}
