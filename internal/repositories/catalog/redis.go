package catalog

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
	redisclient "github.com/KirkDiggler/steel-compendium/internal/redis"
)

const (
	// Key patterns
	abilityKeyPrefix  = "ability:"
	featureKeyPrefix  = "feature:"
	abilityIndexAll   = "abilities:all"
	abilityIndexClass = "abilities:class:"
	abilityIndexOwner = "abilities:owner:"
	featureIndexAll   = "features:all"
	featureIndexClass = "features:class:"
)

// RedisConfig contains configuration for the redis catalog
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("client")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a redis-backed catalog
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) SaveAbilities(ctx context.Context, input SaveAbilitiesInput) (*SaveAbilitiesOutput, error) {
	if len(input.Abilities) == 0 {
		return &SaveAbilitiesOutput{}, nil
	}

	keys := make([]string, 0, len(input.Abilities))
	for _, a := range input.Abilities {
		if a == nil || a.ID == "" {
			return nil, errors.InvalidArgumentf(errRecordNoID, recordName(a))
		}
		keys = append(keys, abilityKeyPrefix+a.ID)
	}

	// previous versions tell us which index entries went stale
	previous, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read existing abilities")
	}

	pipe := r.client.TxPipeline()
	for i, a := range input.Abilities {
		data, err := json.Marshal(a)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal ability %s", a.ID)
		}

		if old := decodeAbility(previous[i]); old != nil {
			if old.Class != a.Class && old.Class != "" {
				pipe.SRem(ctx, abilityIndexClass+old.Class, a.ID)
			}
			if old.OwnerID != a.OwnerID && old.OwnerID != "" {
				pipe.SRem(ctx, abilityIndexOwner+old.OwnerID, a.ID)
			}
		}

		pipe.Set(ctx, keys[i], data, 0)
		pipe.SAdd(ctx, abilityIndexAll, a.ID)
		if a.Class != "" {
			pipe.SAdd(ctx, abilityIndexClass+a.Class, a.ID)
		}
		if a.OwnerID != "" {
			pipe.SAdd(ctx, abilityIndexOwner+a.OwnerID, a.ID)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to save abilities")
	}

	slog.DebugContext(ctx, "saved abilities", "count", len(input.Abilities))

	return &SaveAbilitiesOutput{Saved: len(input.Abilities)}, nil
}

func (r *redisRepository) SaveFeatures(ctx context.Context, input SaveFeaturesInput) (*SaveFeaturesOutput, error) {
	if len(input.Features) == 0 {
		return &SaveFeaturesOutput{}, nil
	}

	pipe := r.client.TxPipeline()
	for _, f := range input.Features {
		if f == nil || f.ID == "" {
			return nil, errors.InvalidArgumentf(errRecordNoID, featureName(f))
		}

		data, err := json.Marshal(f)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal feature %s", f.ID)
		}

		pipe.Set(ctx, featureKeyPrefix+f.ID, data, 0)
		pipe.SAdd(ctx, featureIndexAll, f.ID)
		if f.Class != "" {
			pipe.SAdd(ctx, featureIndexClass+f.Class, f.ID)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to save features")
	}

	slog.DebugContext(ctx, "saved features", "count", len(input.Features))

	return &SaveFeaturesOutput{Saved: len(input.Features)}, nil
}

func (r *redisRepository) GetAbility(ctx context.Context, input GetAbilityInput) (*GetAbilityOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	result, err := r.client.Get(ctx, abilityKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("ability %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get ability %s", input.ID)
	}

	var ability drawsteel.AbilityRecord
	if err := json.Unmarshal([]byte(result), &ability); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal ability %s", input.ID)
	}

	return &GetAbilityOutput{Ability: &ability}, nil
}

func (r *redisRepository) ListAbilities(ctx context.Context, input ListAbilitiesInput) (*ListAbilitiesOutput, error) {
	var indexes []string
	if input.Class != "" {
		indexes = append(indexes, abilityIndexClass+input.Class)
	}
	if input.OwnerID != "" {
		indexes = append(indexes, abilityIndexOwner+input.OwnerID)
	}
	if len(indexes) == 0 {
		indexes = append(indexes, abilityIndexAll)
	}

	slog.DebugContext(ctx, "listing abilities", "indexes", indexes)

	ids, err := r.client.SInter(ctx, indexes...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read ability index")
	}
	if len(ids) == 0 {
		return &ListAbilitiesOutput{Abilities: []*drawsteel.AbilityRecord{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = abilityKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get abilities")
	}

	abilities := make([]*drawsteel.AbilityRecord, 0, len(values))
	for i, v := range values {
		ability := decodeAbility(v)
		if ability == nil {
			slog.WarnContext(ctx, "ability missing or unreadable, skipping", "ability_id", ids[i])
			continue
		}
		abilities = append(abilities, ability)
	}

	drawsteel.SortAbilities(abilities)

	return &ListAbilitiesOutput{Abilities: abilities}, nil
}

func (r *redisRepository) GetFeature(ctx context.Context, input GetFeatureInput) (*GetFeatureOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	result, err := r.client.Get(ctx, featureKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("feature %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get feature %s", input.ID)
	}

	var feature drawsteel.FeatureRecord
	if err := json.Unmarshal([]byte(result), &feature); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal feature %s", input.ID)
	}

	return &GetFeatureOutput{Feature: &feature}, nil
}

// decodeAbility reads an MGet value, returning nil for missing keys
func decodeAbility(v any) *drawsteel.AbilityRecord {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	var ability drawsteel.AbilityRecord
	if err := json.Unmarshal([]byte(s), &ability); err != nil {
		return nil
	}
	return &ability
}

func recordName(a *drawsteel.AbilityRecord) string {
	if a == nil {
		return "<nil>"
	}
	return a.Name
}

func featureName(f *drawsteel.FeatureRecord) string {
	if f == nil {
		return "<nil>"
	}
	return f.Name
}
