// Package policies holds selection rules that sit beside, but outside,
// the core solving algorithm: picking a build's default option variant
// is a policy decision the algorithm defers to rather than a search
// step of its own.
package policies

import "avular-packages/internal/types"

// SelectVariant picks the first of variants compatible with current's
// already-bound option values (spec.md §4.G "Variants"): a variant
// conflicts when it names a key current already carries a different
// value for. Declaration order is the sole tie-break — first
// compatible variant wins.
func SelectVariant(variants []*types.OptionMap, current *types.OptionMap) *types.OptionMap {
	for _, variant := range variants {
		if compatibleVariant(variant, current) {
			return variant
		}
	}
	return nil
}

func compatibleVariant(variant, current *types.OptionMap) bool {
	if variant == nil {
		return false
	}
	for _, key := range variant.Keys() {
		value, _ := variant.Get(key)
		if existing, ok := current.Get(key); ok && existing != value {
			return false
		}
	}
	return true
}

// ApplyVariant overlays variant's bindings onto base for every key base
// does not already carry, leaving pre-existing bindings untouched —
// variants only fill in what the user left unconstrained.
func ApplyVariant(base *types.OptionMap, variant *types.OptionMap) *types.OptionMap {
	out := base.Clone()
	if variant == nil {
		return out
	}
	for _, key := range variant.Keys() {
		if _, ok := out.Get(key); ok {
			continue
		}
		value, _ := variant.Get(key)
		out.Set(key, value)
	}
	return out
}
