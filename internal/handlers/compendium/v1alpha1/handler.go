// Package v1alpha1 serves the parsed catalog over gRPC
package v1alpha1

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/KirkDiggler/steel-compendium/internal/errors"
	"github.com/KirkDiggler/steel-compendium/internal/orchestrators/powerroll"
	"github.com/KirkDiggler/steel-compendium/internal/repositories/catalog"
)

// HandlerConfig holds dependencies for the catalog handler
type HandlerConfig struct {
	Repository catalog.Repository
	PowerRoll  powerroll.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.PowerRoll == nil {
		vb.RequiredField("PowerRoll")
	}

	return vb.Build()
}

// Handler implements CatalogServiceServer
type Handler struct {
	repo      catalog.Repository
	powerRoll powerroll.Service
}

var _ CatalogServiceServer = (*Handler)(nil)

// NewHandler creates a catalog handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		repo:      cfg.Repository,
		powerRoll: cfg.PowerRoll,
	}, nil
}

// GetAbility returns one ability record by ID
func (h *Handler) GetAbility(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id := strings.TrimSpace(req.GetValue())
	if id == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("id is required"))
	}

	out, err := h.repo.GetAbility(ctx, catalog.GetAbilityInput{ID: id})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := toStruct(out.Ability)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// ListAbilities returns abilities, filtered by the optional class and owner
// fields of the request
func (h *Handler) ListAbilities(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input := catalog.ListAbilitiesInput{
		Class:   stringField(req, FieldClass),
		OwnerID: stringField(req, FieldOwner),
	}

	out, err := h.repo.ListAbilities(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := toStruct(AbilityList{Abilities: out.Abilities, Total: len(out.Abilities)})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// GetFeature returns one feature record by ID
func (h *Handler) GetFeature(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id := strings.TrimSpace(req.GetValue())
	if id == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("id is required"))
	}

	out, err := h.repo.GetFeature(ctx, catalog.GetFeatureInput{ID: id})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := toStruct(out.Feature)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// RollAbility rolls a stored ability's power roll with the request bonus
func (h *Handler) RollAbility(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, FieldID)
	if id == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("id is required"))
	}

	bonus, err := intField(req, FieldBonus)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	ability, err := h.repo.GetAbility(ctx, catalog.GetAbilityInput{ID: id})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.powerRoll.Resolve(ctx, &powerroll.ResolveInput{
		Ability: ability.Ability,
		Bonus:   bonus,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	slog.InfoContext(ctx, "ability rolled",
		"ability_id", id,
		"total", out.Total,
		"tier", out.TierName,
	)

	resp, err := toStruct(RollResult{
		AbilityID: id,
		Dice:      out.Dice,
		Natural:   out.Natural,
		Bonus:     out.Bonus,
		Total:     out.Total,
		Critical:  out.Critical,
		TierName:  out.TierName,
		Tier:      out.Tier,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

func stringField(s *structpb.Struct, name string) string {
	return strings.TrimSpace(s.GetFields()[name].GetStringValue())
}

// intField reads an optional whole number field. Missing means zero.
func intField(s *structpb.Struct, name string) (int, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, nil
	}

	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, errors.InvalidArgumentf("%s must be a whole number", name)
	}
	return int(n.NumberValue), nil
}
