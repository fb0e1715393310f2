package v1alpha1

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
)

// Request and response field names
const (
	FieldID        = "id"
	FieldClass     = "class"
	FieldOwner     = "owner"
	FieldBonus     = "bonus"
	FieldAbilities = "abilities"
	FieldTotal     = "total"
)

// toStruct converts a record to its JSON shape as a Struct
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode record")
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to convert record")
	}
	return out, nil
}

// fromStruct decodes a Struct into v through its JSON shape
func fromStruct(s *structpb.Struct, v any) error {
	data, err := protojson.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "failed to encode struct")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "struct does not match record")
	}
	return nil
}

// DecodeAbility reads an ability record returned by the service
func DecodeAbility(s *structpb.Struct) (*drawsteel.AbilityRecord, error) {
	var rec drawsteel.AbilityRecord
	if err := fromStruct(s, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DecodeFeature reads a feature record returned by the service
func DecodeFeature(s *structpb.Struct) (*drawsteel.FeatureRecord, error) {
	var rec drawsteel.FeatureRecord
	if err := fromStruct(s, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// AbilityList is the decoded ListAbilities response
type AbilityList struct {
	Abilities []*drawsteel.AbilityRecord `json:"abilities"`
	Total     int                        `json:"total"`
}

// DecodeAbilityList reads a ListAbilities response
func DecodeAbilityList(s *structpb.Struct) (*AbilityList, error) {
	var list AbilityList
	if err := fromStruct(s, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// RollResult is the RollAbility response
type RollResult struct {
	AbilityID string             `json:"ability_id"`
	Dice      []int              `json:"dice"`
	Natural   int                `json:"natural"`
	Bonus     int                `json:"bonus"`
	Total     int                `json:"total"`
	Critical  bool               `json:"critical"`
	TierName  drawsteel.TierName `json:"tier_name"`
	Tier      *drawsteel.Tier    `json:"tier,omitempty"`
}

// DecodeRollResult reads a RollAbility response
func DecodeRollResult(s *structpb.Struct) (*RollResult, error) {
	var res RollResult
	if err := fromStruct(s, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RollRequest builds a RollAbility request
func RollRequest(id string, bonus int) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		FieldID:    id,
		FieldBonus: bonus,
	})
}

// ListRequest builds a ListAbilities request. Empty filters are omitted.
func ListRequest(class, owner string) *structpb.Struct {
	fields := make(map[string]*structpb.Value)
	if class != "" {
		fields[FieldClass] = structpb.NewStringValue(class)
	}
	if owner != "" {
		fields[FieldOwner] = structpb.NewStringValue(owner)
	}
	return &structpb.Struct{Fields: fields}
}
