package frontmatter

import "strings"

// Merge combines existing frontmatter with model-proposed frontmatter.
//
// The contract is that existing data is never destroyed:
//   - keys absent, null, or empty-string in existing adopt the proposed value
//   - two lists union, keeping every existing item in place and appending
//     proposed items not already present
//   - a proposed string replaces an existing one only when it strictly
//     extends it (longer and containing the old string verbatim)
//   - any other combination keeps the existing value untouched
//
// Either argument may be nil.
func Merge(existing, enhanced *Data) *Data {
	if existing == nil {
		existing = NewData()
	}
	merged := existing.Clone()
	if enhanced == nil {
		return merged
	}

	for _, key := range enhanced.Keys() {
		newVal, _ := enhanced.Get(key)
		oldVal, present := merged.Get(key)

		if !present || oldVal.IsEmpty() {
			merged.Set(key, newVal)
			continue
		}

		if oldItems, ok := oldVal.AsList(); ok {
			if newItems, ok := newVal.AsList(); ok {
				merged.Set(key, unionLists(oldItems, newItems))
			}
			continue
		}

		if oldStr, ok := oldVal.AsString(); ok {
			if newStr, ok := newVal.AsString(); ok {
				if len(newStr) > len(oldStr) && strings.Contains(newStr, oldStr) {
					merged.Set(key, newVal)
				}
			}
			continue
		}

		// Numbers, booleans, and mismatched types: keep what the user has.
	}

	return merged
}

// unionLists appends items from proposed that are not already in existing,
// comparing by canonical string form. Existing items keep their order.
func unionLists(existing, proposed []Value) Value {
	seen := make(map[string]bool, len(existing))
	out := make([]Value, 0, len(existing)+len(proposed))
	for _, item := range existing {
		seen[item.Key()] = true
		out = append(out, item)
	}
	for _, item := range proposed {
		if !seen[item.Key()] {
			seen[item.Key()] = true
			out = append(out, item)
		}
	}
	return List(out)
}

// Order re-emits data with keys listed in propertyOrder first (in that
// order, skipping absent ones), then all remaining keys in their original
// relative order. Values are untouched.
func Order(data *Data, propertyOrder []string) *Data {
	if data == nil || len(propertyOrder) == 0 {
		return data
	}

	ordered := NewData()
	for _, key := range propertyOrder {
		if v, ok := data.Get(key); ok {
			ordered.Set(key, v)
		}
	}
	for _, key := range data.Keys() {
		if !ordered.Has(key) {
			v, _ := data.Get(key)
			ordered.Set(key, v)
		}
	}
	return ordered
}
