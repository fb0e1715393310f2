// Package powerroll resolves an ability's power roll: 2d10 plus a
// characteristic bonus, classified into one of the three outcome tiers
package powerroll

//go:generate mockgen -destination=mock/mock_service.go -package=powerrollmock github.com/KirkDiggler/steel-compendium/internal/orchestrators/powerroll Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
)

// Power roll thresholds
const (
	DiceCount = 2
	DiceSize  = 10

	// AverageMin is the lowest total with an average outcome
	AverageMin = 12
	// StrongMin is the lowest total with a strong outcome
	StrongMin = 17
	// CriticalMin is the lowest natural roll that is always strong
	CriticalMin = 19
)

// Service defines power roll operations
type Service interface {
	// Resolve rolls the ability's power roll
	// Returns errors.InvalidArgument when no ability is given
	// Returns errors.FailedPrecondition when the ability has no power roll
	// Returns errors.Internal when the dice roller fails
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)
}

// Config holds the dependencies for the power roll orchestrator
type Config struct {
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

type orchestrator struct {
	roller dice.Roller
}

// New creates a power roll orchestrator
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{roller: cfg.Roller}, nil
}

func (o *orchestrator) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input == nil || input.Ability == nil {
		return nil, errors.InvalidArgument("ability is required")
	}

	ability := input.Ability
	if ability.PowerRoll == nil || len(ability.PowerRoll.Tiers) == 0 {
		return nil, errors.FailedPreconditionf("ability %q has no power roll", ability.Name).
			WithMeta("ability_id", ability.ID)
	}

	rolls, err := o.roller.RollN(DiceCount, DiceSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll power roll dice")
	}

	natural := 0
	for _, r := range rolls {
		natural += r
	}

	out := &ResolveOutput{
		Dice:     rolls,
		Natural:  natural,
		Bonus:    input.Bonus,
		Total:    natural + input.Bonus,
		Critical: natural >= CriticalMin,
	}
	out.TierName = Classify(out.Total)
	if out.Critical {
		out.TierName = drawsteel.TierStrong
	}
	out.Tier = tierFor(ability.PowerRoll, out.TierName)

	slog.DebugContext(ctx, "power roll resolved",
		"ability_id", ability.ID,
		"characteristic", ability.PowerRoll.Characteristic,
		"dice", rolls,
		"total", out.Total,
		"tier", out.TierName,
	)

	return out, nil
}

// Classify maps a power roll total to its tier
func Classify(total int) drawsteel.TierName {
	switch {
	case total >= StrongMin:
		return drawsteel.TierStrong
	case total >= AverageMin:
		return drawsteel.TierAverage
	default:
		return drawsteel.TierWeak
	}
}

// tierFor finds the tier row by label, falling back to its position when
// the ranges were not recognised
func tierFor(roll *drawsteel.PowerRoll, name drawsteel.TierName) *drawsteel.Tier {
	for i := range roll.Tiers {
		if roll.Tiers[i].Tier == name {
			return &roll.Tiers[i]
		}
	}

	pos := map[drawsteel.TierName]int{
		drawsteel.TierWeak:    0,
		drawsteel.TierAverage: 1,
		drawsteel.TierStrong:  2,
	}[name]
	if pos < len(roll.Tiers) {
		return &roll.Tiers[pos]
	}
	return nil
}
