// Package config loads, merges, and resolves fmtlint configuration.
//
// Configuration is hierarchical: a .fmtlint.yaml anywhere above a checked
// file applies to it, with files nearer the checked file overriding files
// farther up, and inline overrides (CLI flags) winning over everything.
package config

// Merge deep-merges two configuration trees and returns a freshly allocated
// result; neither input is mutated. A nil side yields a copy of the other
// side. When both sides hold string-keyed maps the merge recurses key by key;
// on any other conflict the override value wins wholesale. Arrays are atomic:
// an override list replaces the base list, it is never concatenated.
func Merge(base, override any) any {
	if base == nil {
		return clone(override)
	}
	if override == nil {
		return clone(base)
	}
	return mergeValue(base, override)
}

// mergeValue implements the per-key rule. Unlike Merge it lets an explicit
// null override win: "key: null" in a nearer config clears the base value.
func mergeValue(base, override any) any {
	baseMap, baseOK := base.(map[string]any)
	overrideMap, overrideOK := override.(map[string]any)
	if !baseOK || !overrideOK {
		return clone(override)
	}

	merged := make(map[string]any, len(baseMap)+len(overrideMap))
	for k, v := range baseMap {
		merged[k] = clone(v)
	}
	for k, v := range overrideMap {
		if prev, ok := baseMap[k]; ok {
			merged[k] = mergeValue(prev, v)
		} else {
			merged[k] = clone(v)
		}
	}
	return merged
}

// clone deep-copies a configuration tree so merge results never alias their
// inputs. Scalars are returned as-is.
func clone(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = clone(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = clone(e)
		}
		return out
	default:
		return v
	}
}
