package drawsteel_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
)

func TestStatValueJSON(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{name: "numeric cell", cell: "12", want: `12`},
		{name: "negative cell", cell: "-1", want: `-1`},
		{name: "formula cell", cell: "2x your level", want: `"2x your level"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := drawsteel.ParseStatValue(tt.cell)
			data, err := json.Marshal(v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			var back drawsteel.StatValue
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, *v, back)
			assert.Equal(t, tt.cell, back.String())
		})
	}
}

func TestAbilityRecordNullSections(t *testing.T) {
	rec := drawsteel.AbilityRecord{
		Identity:    drawsteel.Identity{Name: "Gouge"},
		CostOptions: []drawsteel.CostOption{},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"power_roll", "effects", "persistent", "stat_block"} {
		v, ok := raw[key]
		assert.True(t, ok, "expected %s key", key)
		assert.Nil(t, v, "expected %s to be null", key)
	}
	assert.Equal(t, []any{}, raw["cost_options"])
	assert.NotContains(t, raw, "targeting")
	assert.NotContains(t, raw, "component_order")
}

func TestEffectsHas(t *testing.T) {
	var none *drawsteel.Effects
	assert.False(t, none.Has(drawsteel.ComponentEffect))

	e := &drawsteel.Effects{After: "You shift 1 square."}
	assert.True(t, e.Has(drawsteel.ComponentAfter))
	assert.False(t, e.Has(drawsteel.ComponentBefore))
	assert.False(t, e.Has(drawsteel.ComponentPowerRoll))
}

func TestAbilityRecordJSONOmitsEmptyIdentity(t *testing.T) {
	data, err := json.Marshal(&drawsteel.AbilityRecord{Flavor: "A quick jab."})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "name")
	assert.NotContains(t, fields, "id")
	assert.Equal(t, "A quick jab.", fields["flavor"])
}
