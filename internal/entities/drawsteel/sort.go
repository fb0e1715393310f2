package drawsteel

import (
	"cmp"
	"slices"
)

// SortAbilities orders records by class, level, name and then ID
func SortAbilities(records []*AbilityRecord) {
	slices.SortStableFunc(records, func(a, b *AbilityRecord) int {
		return compareIdentity(&a.Identity, &b.Identity)
	})
}

// SortFeatures orders records by class, level, name and then ID
func SortFeatures(records []*FeatureRecord) {
	slices.SortStableFunc(records, func(a, b *FeatureRecord) int {
		return compareIdentity(&a.Identity, &b.Identity)
	})
}

func compareIdentity(a, b *Identity) int {
	return cmp.Or(
		cmp.Compare(a.Class, b.Class),
		cmp.Compare(a.Level, b.Level),
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.ID, b.ID),
	)
}
