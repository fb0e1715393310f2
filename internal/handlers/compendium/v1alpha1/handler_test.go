package v1alpha1_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
	v1alpha1 "github.com/KirkDiggler/steel-compendium/internal/handlers/compendium/v1alpha1"
	"github.com/KirkDiggler/steel-compendium/internal/orchestrators/powerroll"
	powerrollmock "github.com/KirkDiggler/steel-compendium/internal/orchestrators/powerroll/mock"
	"github.com/KirkDiggler/steel-compendium/internal/parser"
	"github.com/KirkDiggler/steel-compendium/internal/repositories/catalog"
	catalogmock "github.com/KirkDiggler/steel-compendium/internal/repositories/catalog/mock"
	"github.com/KirkDiggler/steel-compendium/internal/testutils/fixtures"
)

type HandlerTestSuite struct {
	suite.Suite
	ctx           context.Context
	ctrl          *gomock.Controller
	mockRepo      *catalogmock.MockRepository
	mockPowerRoll *powerrollmock.MockService
	handler       *v1alpha1.Handler
	gouge         *drawsteel.AbilityRecord
	judgment      *drawsteel.FeatureRecord
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = catalogmock.NewMockRepository(s.ctrl)
	s.mockPowerRoll = powerrollmock.NewMockService(s.ctrl)

	var err error
	s.handler, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		Repository: s.mockRepo,
		PowerRoll:  s.mockPowerRoll,
	})
	s.Require().NoError(err)

	p := parser.Default()
	doc, err := p.ParseDocument("gouge.md", []byte(fixtures.Gouge))
	s.Require().NoError(err)
	s.gouge = doc.Ability

	doc, err = p.ParseDocument("judgment.md", []byte(fixtures.Judgment))
	s.Require().NoError(err)
	s.judgment = doc.Feature
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) TestNewHandlerValidatesConfig() {
	_, err := v1alpha1.NewHandler(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Repository")
	s.Contains(err.Error(), "PowerRoll")
}

func (s *HandlerTestSuite) TestGetAbility() {
	s.mockRepo.EXPECT().
		GetAbility(s.ctx, catalog.GetAbilityInput{ID: "gouge"}).
		Return(&catalog.GetAbilityOutput{Ability: s.gouge}, nil)

	resp, err := s.handler.GetAbility(s.ctx, wrapperspb.String(" gouge "))
	s.Require().NoError(err)

	s.Equal("gouge", resp.GetFields()["id"].GetStringValue())
	s.Equal("Might", resp.GetFields()["power_roll"].GetStructValue().GetFields()["characteristic"].GetStringValue())

	decoded, err := v1alpha1.DecodeAbility(resp)
	s.Require().NoError(err)
	s.Equal(s.gouge, decoded)
}

func (s *HandlerTestSuite) TestGetAbilityErrors() {
	_, err := s.handler.GetAbility(s.ctx, wrapperspb.String(""))
	s.Equal(codes.InvalidArgument, status.Code(err))

	s.mockRepo.EXPECT().
		GetAbility(s.ctx, catalog.GetAbilityInput{ID: "missing"}).
		Return(nil, errors.NotFoundf("ability %s not found", "missing"))

	_, err = s.handler.GetAbility(s.ctx, wrapperspb.String("missing"))
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *HandlerTestSuite) TestListAbilities() {
	s.mockRepo.EXPECT().
		ListAbilities(s.ctx, catalog.ListAbilitiesInput{Class: "censor", OwnerID: "judgment"}).
		Return(&catalog.ListAbilitiesOutput{Abilities: s.judgment.Abilities}, nil)

	resp, err := s.handler.ListAbilities(s.ctx, v1alpha1.ListRequest("censor", "judgment"))
	s.Require().NoError(err)

	list, err := v1alpha1.DecodeAbilityList(resp)
	s.Require().NoError(err)
	s.Equal(2, list.Total)
	s.Equal(s.judgment.Abilities, list.Abilities)
}

func (s *HandlerTestSuite) TestListAbilitiesWithoutFilters() {
	s.mockRepo.EXPECT().
		ListAbilities(s.ctx, catalog.ListAbilitiesInput{}).
		Return(&catalog.ListAbilitiesOutput{Abilities: []*drawsteel.AbilityRecord{}}, nil)

	resp, err := s.handler.ListAbilities(s.ctx, nil)
	s.Require().NoError(err)

	list, err := v1alpha1.DecodeAbilityList(resp)
	s.Require().NoError(err)
	s.Zero(list.Total)
	s.Empty(list.Abilities)
}

func (s *HandlerTestSuite) TestGetFeature() {
	s.mockRepo.EXPECT().
		GetFeature(s.ctx, catalog.GetFeatureInput{ID: "judgment"}).
		Return(&catalog.GetFeatureOutput{Feature: s.judgment}, nil)

	resp, err := s.handler.GetFeature(s.ctx, wrapperspb.String("judgment"))
	s.Require().NoError(err)

	decoded, err := v1alpha1.DecodeFeature(resp)
	s.Require().NoError(err)
	s.Equal(s.judgment, decoded)
}

func (s *HandlerTestSuite) TestRollAbility() {
	strong := s.gouge.PowerRoll.Tiers[2]

	s.mockRepo.EXPECT().
		GetAbility(s.ctx, catalog.GetAbilityInput{ID: "gouge"}).
		Return(&catalog.GetAbilityOutput{Ability: s.gouge}, nil)
	s.mockPowerRoll.EXPECT().
		Resolve(s.ctx, &powerroll.ResolveInput{Ability: s.gouge, Bonus: 2}).
		Return(&powerroll.ResolveOutput{
			Dice:     []int{8, 7},
			Natural:  15,
			Bonus:    2,
			Total:    17,
			TierName: drawsteel.TierStrong,
			Tier:     &strong,
		}, nil)

	req, err := v1alpha1.RollRequest("gouge", 2)
	s.Require().NoError(err)

	resp, err := s.handler.RollAbility(s.ctx, req)
	s.Require().NoError(err)

	res, err := v1alpha1.DecodeRollResult(resp)
	s.Require().NoError(err)
	s.Equal(&v1alpha1.RollResult{
		AbilityID: "gouge",
		Dice:      []int{8, 7},
		Natural:   15,
		Bonus:     2,
		Total:     17,
		TierName:  drawsteel.TierStrong,
		Tier:      &strong,
	}, res)
}

func (s *HandlerTestSuite) TestRollAbilityErrors() {
	testCases := []struct {
		name  string
		req   *structpb.Struct
		setup func()
		code  codes.Code
	}{
		{
			name: "missing id",
			req:  v1alpha1.ListRequest("", ""),
			code: codes.InvalidArgument,
		},
		{
			name: "fractional bonus",
			req: &structpb.Struct{Fields: map[string]*structpb.Value{
				"id":    structpb.NewStringValue("gouge"),
				"bonus": structpb.NewNumberValue(1.5),
			}},
			code: codes.InvalidArgument,
		},
		{
			name: "bonus is not a number",
			req: &structpb.Struct{Fields: map[string]*structpb.Value{
				"id":    structpb.NewStringValue("gouge"),
				"bonus": structpb.NewStringValue("two"),
			}},
			code: codes.InvalidArgument,
		},
		{
			name: "unknown ability",
			req: &structpb.Struct{Fields: map[string]*structpb.Value{
				"id": structpb.NewStringValue("nope"),
			}},
			setup: func() {
				s.mockRepo.EXPECT().
					GetAbility(gomock.Any(), catalog.GetAbilityInput{ID: "nope"}).
					Return(nil, errors.NotFound("ability not found"))
			},
			code: codes.NotFound,
		},
		{
			name: "no power roll",
			req: &structpb.Struct{Fields: map[string]*structpb.Value{
				"id": structpb.NewStringValue("back-blast"),
			}},
			setup: func() {
				ability := &drawsteel.AbilityRecord{Identity: drawsteel.Identity{ID: "back-blast"}}
				s.mockRepo.EXPECT().
					GetAbility(gomock.Any(), catalog.GetAbilityInput{ID: "back-blast"}).
					Return(&catalog.GetAbilityOutput{Ability: ability}, nil)
				s.mockPowerRoll.EXPECT().
					Resolve(gomock.Any(), &powerroll.ResolveInput{Ability: ability}).
					Return(nil, errors.FailedPrecondition("ability has no power roll"))
			},
			code: codes.FailedPrecondition,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			if tc.setup != nil {
				tc.setup()
			}

			_, err := s.handler.RollAbility(s.ctx, tc.req)
			s.Equal(tc.code, status.Code(err))
		})
	}
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
