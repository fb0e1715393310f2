// Package catalog persists parsed abilities and features so they can be
// served without re-reading the rules markdown
package catalog

//go:generate mockgen -destination=mock/mock_repository.go -package=catalogmock github.com/KirkDiggler/steel-compendium/internal/repositories/catalog Repository

import (
	"context"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
)

// Repository stores ability and feature records
type Repository interface {
	// SaveAbilities upserts ability records and their class and owner indexes
	// Returns errors.InvalidArgument when a record has no ID
	// Returns errors.Internal for storage failures
	SaveAbilities(ctx context.Context, input SaveAbilitiesInput) (*SaveAbilitiesOutput, error)

	// SaveFeatures upserts feature records
	// Returns errors.InvalidArgument when a record has no ID
	// Returns errors.Internal for storage failures
	SaveFeatures(ctx context.Context, input SaveFeaturesInput) (*SaveFeaturesOutput, error)

	// GetAbility retrieves an ability by ID
	// Returns errors.InvalidArgument for an empty ID
	// Returns errors.NotFound if the ability doesn't exist
	GetAbility(ctx context.Context, input GetAbilityInput) (*GetAbilityOutput, error)

	// ListAbilities returns abilities sorted by class, level and name. Class
	// and OwnerID filter when set; both set means both must match.
	ListAbilities(ctx context.Context, input ListAbilitiesInput) (*ListAbilitiesOutput, error)

	// GetFeature retrieves a feature by ID
	// Returns errors.InvalidArgument for an empty ID
	// Returns errors.NotFound if the feature doesn't exist
	GetFeature(ctx context.Context, input GetFeatureInput) (*GetFeatureOutput, error)
}

// SaveAbilitiesInput defines the input for saving abilities
type SaveAbilitiesInput struct {
	Abilities []*drawsteel.AbilityRecord
}

// SaveAbilitiesOutput defines the output for saving abilities
type SaveAbilitiesOutput struct {
	Saved int
}

// SaveFeaturesInput defines the input for saving features
type SaveFeaturesInput struct {
	Features []*drawsteel.FeatureRecord
}

// SaveFeaturesOutput defines the output for saving features
type SaveFeaturesOutput struct {
	Saved int
}

// GetAbilityInput defines the input for getting an ability
type GetAbilityInput struct {
	ID string
}

// GetAbilityOutput defines the output for getting an ability
type GetAbilityOutput struct {
	Ability *drawsteel.AbilityRecord
}

// ListAbilitiesInput defines the filters for listing abilities
type ListAbilitiesInput struct {
	Class   string
	OwnerID string
}

// ListAbilitiesOutput defines the output for listing abilities
type ListAbilitiesOutput struct {
	Abilities []*drawsteel.AbilityRecord
}

// GetFeatureInput defines the input for getting a feature
type GetFeatureInput struct {
	ID string
}

// GetFeatureOutput defines the output for getting a feature
type GetFeatureOutput struct {
	Feature *drawsteel.FeatureRecord
}

// Error messages
const (
	errIDEmpty    = "id cannot be empty"
	errRecordNoID = "record %q has no id"
)
