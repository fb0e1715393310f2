package powerroll

import (
	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
)

// ResolveInput defines the request for resolving a power roll
type ResolveInput struct {
	Ability *drawsteel.AbilityRecord
	// Bonus is the characteristic score added to the dice
	Bonus int
}

// ResolveOutput defines the outcome of a power roll
type ResolveOutput struct {
	Dice     []int
	Natural  int
	Bonus    int
	Total    int
	Critical bool
	TierName drawsteel.TierName
	// Tier is the matching row of the ability's power roll
	Tier *drawsteel.Tier
}
