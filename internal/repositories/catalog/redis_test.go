package catalog_test

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
	"github.com/KirkDiggler/steel-compendium/internal/parser"
	"github.com/KirkDiggler/steel-compendium/internal/repositories/catalog"
	"github.com/KirkDiggler/steel-compendium/internal/testutils"
	"github.com/KirkDiggler/steel-compendium/internal/testutils/fixtures"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	repo catalog.Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()

	client, _ := testutils.CreateTestRedisClient(s.T())

	var err error
	s.repo, err = catalog.NewRedis(&catalog.RedisConfig{Client: client})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) TestNewRedisRequiresClient() {
	_, err := catalog.NewRedis(&catalog.RedisConfig{})
	s.True(errors.IsInvalidArgument(err))

	_, err = catalog.NewRedis(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetAbility() {
	doc, err := parser.Default().ParseDocument("gouge.md", []byte(fixtures.Gouge))
	s.Require().NoError(err)

	saved, err := s.repo.SaveAbilities(s.ctx, catalog.SaveAbilitiesInput{
		Abilities: []*drawsteel.AbilityRecord{doc.Ability},
	})
	s.Require().NoError(err)
	s.Equal(1, saved.Saved)

	got, err := s.repo.GetAbility(s.ctx, catalog.GetAbilityInput{ID: "gouge"})
	s.Require().NoError(err)
	s.Equal(doc.Ability, got.Ability)
}

func (s *RedisRepositoryTestSuite) TestGetAbilityErrors() {
	_, err := s.repo.GetAbility(s.ctx, catalog.GetAbilityInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.GetAbility(s.ctx, catalog.GetAbilityInput{ID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSaveRejectsRecordsWithoutID() {
	_, err := s.repo.SaveAbilities(s.ctx, catalog.SaveAbilitiesInput{
		Abilities: []*drawsteel.AbilityRecord{{Identity: drawsteel.Identity{Name: "Nameless"}}},
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.SaveFeatures(s.ctx, catalog.SaveFeaturesInput{
		Features: []*drawsteel.FeatureRecord{nil},
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestListAbilities() {
	_, err := s.repo.SaveAbilities(s.ctx, catalog.SaveAbilitiesInput{Abilities: []*drawsteel.AbilityRecord{
		ability("gouge", "Gouge", "fury", "", 1),
		ability("back-blast", "Back Blast", "censor", "", 1),
		ability("judgment-smite", "Smite", "censor", "judgment", 1),
		ability("judgment-judgment", "Judgment", "censor", "judgment", 1),
	}})
	s.Require().NoError(err)

	testCases := []struct {
		name  string
		input catalog.ListAbilitiesInput
		want  []string
	}{
		{name: "all", input: catalog.ListAbilitiesInput{}, want: []string{"back-blast", "judgment-judgment", "judgment-smite", "gouge"}},
		{name: "by class", input: catalog.ListAbilitiesInput{Class: "fury"}, want: []string{"gouge"}},
		{name: "by owner", input: catalog.ListAbilitiesInput{OwnerID: "judgment"}, want: []string{"judgment-judgment", "judgment-smite"}},
		{name: "class and owner", input: catalog.ListAbilitiesInput{Class: "fury", OwnerID: "judgment"}, want: []string{}},
		{name: "unknown class", input: catalog.ListAbilitiesInput{Class: "shadow"}, want: []string{}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.repo.ListAbilities(s.ctx, tc.input)
			s.Require().NoError(err)
			s.Equal(tc.want, ids(out.Abilities))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestResaveMovesIndexes() {
	_, err := s.repo.SaveAbilities(s.ctx, catalog.SaveAbilitiesInput{Abilities: []*drawsteel.AbilityRecord{
		ability("gouge", "Gouge", "fury", "", 1),
	}})
	s.Require().NoError(err)

	_, err = s.repo.SaveAbilities(s.ctx, catalog.SaveAbilitiesInput{Abilities: []*drawsteel.AbilityRecord{
		ability("gouge", "Gouge", "shadow", "", 1),
	}})
	s.Require().NoError(err)

	fury, err := s.repo.ListAbilities(s.ctx, catalog.ListAbilitiesInput{Class: "fury"})
	s.Require().NoError(err)
	s.Empty(fury.Abilities)

	shadow, err := s.repo.ListAbilities(s.ctx, catalog.ListAbilitiesInput{Class: "shadow"})
	s.Require().NoError(err)
	s.Equal([]string{"gouge"}, ids(shadow.Abilities))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetFeature() {
	doc, err := parser.Default().ParseDocument("judgment.md", []byte(fixtures.Judgment))
	s.Require().NoError(err)

	saved, err := s.repo.SaveFeatures(s.ctx, catalog.SaveFeaturesInput{
		Features: []*drawsteel.FeatureRecord{doc.Feature},
	})
	s.Require().NoError(err)
	s.Equal(1, saved.Saved)

	got, err := s.repo.GetFeature(s.ctx, catalog.GetFeatureInput{ID: "judgment"})
	s.Require().NoError(err)
	s.Equal(doc.Feature, got.Feature)

	_, err = s.repo.GetFeature(s.ctx, catalog.GetFeatureInput{ID: "missing"})
	s.True(errors.IsNotFound(err))
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func TestRedisRepositoryStorageErrors(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()

	repo, err := catalog.NewRedis(&catalog.RedisConfig{Client: client})
	require.NoError(t, err)

	mock.ExpectGet("ability:gouge").SetErr(errors.Unavailable("connection refused"))
	_, err = repo.GetAbility(ctx, catalog.GetAbilityInput{ID: "gouge"})
	require.Error(t, err)
	assert.False(t, errors.IsNotFound(err))

	mock.ExpectSInter("abilities:all").SetErr(errors.Unavailable("connection refused"))
	_, err = repo.ListAbilities(ctx, catalog.ListAbilitiesInput{})
	assert.Error(t, err)

	mock.ExpectGet("feature:judgment").RedisNil()
	_, err = repo.GetFeature(ctx, catalog.GetFeatureInput{ID: "judgment"})
	assert.True(t, errors.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func ability(id, name, class, owner string, level int) *drawsteel.AbilityRecord {
	return &drawsteel.AbilityRecord{
		Identity: drawsteel.Identity{
			ID:      id,
			Name:    name,
			Class:   class,
			Level:   level,
			OwnerID: owner,
		},
		CostOptions: []drawsteel.CostOption{},
	}
}

func ids(records []*drawsteel.AbilityRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
