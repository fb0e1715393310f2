package powerroll_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
	"github.com/KirkDiggler/steel-compendium/internal/orchestrators/powerroll"
	"github.com/KirkDiggler/steel-compendium/internal/parser"
	"github.com/KirkDiggler/steel-compendium/internal/testutils/fixtures"
)

// stubRoller returns fixed dice
type stubRoller struct {
	rolls []int
	err   error
	calls int
}

func (s *stubRoller) Roll(_ int) (int, error) {
	s.calls++
	return s.rolls[0], s.err
}

func (s *stubRoller) RollN(count, size int) ([]int, error) {
	s.calls++
	if count != powerroll.DiceCount || size != powerroll.DiceSize {
		return nil, errors.InvalidArgumentf("unexpected %dd%d", count, size)
	}
	return s.rolls, s.err
}

var _ dice.Roller = (*stubRoller)(nil)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx    context.Context
	roller *stubRoller
	gouge  *drawsteel.AbilityRecord
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.roller = &stubRoller{}

	doc, err := parser.Default().ParseDocument("gouge.md", []byte(fixtures.Gouge))
	s.Require().NoError(err)
	s.gouge = doc.Ability
}

func (s *OrchestratorTestSuite) service() powerroll.Service {
	svc, err := powerroll.New(&powerroll.Config{Roller: s.roller})
	s.Require().NoError(err)
	return svc
}

func (s *OrchestratorTestSuite) TestNewRequiresRoller() {
	_, err := powerroll.New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = powerroll.New(&powerroll.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Roller")
}

func (s *OrchestratorTestSuite) TestResolveTiers() {
	testCases := []struct {
		name    string
		rolls   []int
		bonus   int
		tier    drawsteel.TierName
		formula string
	}{
		{name: "weak", rolls: []int{3, 4}, bonus: 2, tier: drawsteel.TierWeak, formula: "3 + M"},
		{name: "eleven is still weak", rolls: []int{5, 4}, bonus: 2, tier: drawsteel.TierWeak, formula: "3 + M"},
		{name: "twelve is average", rolls: []int{5, 5}, bonus: 2, tier: drawsteel.TierAverage, formula: "5 + M"},
		{name: "sixteen is average", rolls: []int{7, 7}, bonus: 2, tier: drawsteel.TierAverage, formula: "5 + M"},
		{name: "seventeen is strong", rolls: []int{8, 7}, bonus: 2, tier: drawsteel.TierStrong, formula: "8 + M"},
		{name: "negative bonus", rolls: []int{6, 6}, bonus: -1, tier: drawsteel.TierWeak, formula: "3 + M"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.roller.rolls = tc.rolls

			out, err := s.service().Resolve(s.ctx, &powerroll.ResolveInput{Ability: s.gouge, Bonus: tc.bonus})
			s.Require().NoError(err)

			s.Equal(tc.rolls, out.Dice)
			s.Equal(tc.rolls[0]+tc.rolls[1], out.Natural)
			s.Equal(out.Natural+tc.bonus, out.Total)
			s.Equal(tc.tier, out.TierName)
			s.False(out.Critical)
			s.Require().NotNil(out.Tier)
			s.Equal(tc.tier, out.Tier.Tier)
			s.Require().NotNil(out.Tier.Damage)
			s.Equal(tc.formula, out.Tier.Damage.Formula)
		})
	}
}

func (s *OrchestratorTestSuite) TestResolveCritical() {
	s.roller.rolls = []int{10, 9}

	out, err := s.service().Resolve(s.ctx, &powerroll.ResolveInput{Ability: s.gouge, Bonus: -5})
	s.Require().NoError(err)

	s.Equal(14, out.Total)
	s.True(out.Critical)
	s.Equal(drawsteel.TierStrong, out.TierName)
}

func (s *OrchestratorTestSuite) TestResolveFallsBackToTierPosition() {
	s.roller.rolls = []int{1, 1}
	ability := &drawsteel.AbilityRecord{
		Identity: drawsteel.Identity{ID: "odd", Name: "Odd"},
		PowerRoll: &drawsteel.PowerRoll{
			Characteristic: "Might",
			Tiers: []drawsteel.Tier{
				{Tier: drawsteel.TierUnknown, Range: "low", Effects: []string{"first"}},
				{Tier: drawsteel.TierUnknown, Range: "mid", Effects: []string{"second"}},
			},
		},
	}

	out, err := s.service().Resolve(s.ctx, &powerroll.ResolveInput{Ability: ability})
	s.Require().NoError(err)
	s.Require().NotNil(out.Tier)
	s.Equal("low", out.Tier.Range)

	s.roller.rolls = []int{10, 8}
	out, err = s.service().Resolve(s.ctx, &powerroll.ResolveInput{Ability: ability})
	s.Require().NoError(err)
	s.Equal(drawsteel.TierStrong, out.TierName)
	s.Nil(out.Tier)
}

func (s *OrchestratorTestSuite) TestResolveWithoutPowerRoll() {
	doc, err := parser.Default().ParseDocument("back-blast.md", []byte(fixtures.BackBlast))
	s.Require().NoError(err)

	_, err = s.service().Resolve(s.ctx, &powerroll.ResolveInput{Ability: doc.Ability})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal("back-blast-3-wrath", errors.GetMeta(err)["ability_id"])
	s.Zero(s.roller.calls)
}

func (s *OrchestratorTestSuite) TestResolveInvalidInput() {
	_, err := s.service().Resolve(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.service().Resolve(s.ctx, &powerroll.ResolveInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestResolveRollerFailure() {
	s.roller.err = errors.Internal("dice fell off the table")
	s.roller.rolls = []int{1, 1}

	_, err := s.service().Resolve(s.ctx, &powerroll.ResolveInput{Ability: s.gouge})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *OrchestratorTestSuite) TestResolveWithDefaultRoller() {
	svc, err := powerroll.New(&powerroll.Config{Roller: dice.DefaultRoller})
	s.Require().NoError(err)

	for range 20 {
		out, err := svc.Resolve(s.ctx, &powerroll.ResolveInput{Ability: s.gouge, Bonus: 2})
		s.Require().NoError(err)
		s.Len(out.Dice, 2)
		s.GreaterOrEqual(out.Natural, 2)
		s.LessOrEqual(out.Natural, 20)
		s.NotNil(out.Tier)
	}
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func TestClassifyBoundaries(t *testing.T) {
	cases := map[int]drawsteel.TierName{
		-3: drawsteel.TierWeak,
		11: drawsteel.TierWeak,
		12: drawsteel.TierAverage,
		16: drawsteel.TierAverage,
		17: drawsteel.TierStrong,
		25: drawsteel.TierStrong,
	}
	for total, want := range cases {
		if got := powerroll.Classify(total); got != want {
			t.Errorf("Classify(%d) = %s, want %s", total, got, want)
		}
	}
}
