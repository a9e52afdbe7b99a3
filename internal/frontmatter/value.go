// Package frontmatter parses, merges, and serializes YAML frontmatter blocks.
package frontmatter

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Value represents a frontmatter property value.
// It is a closed variant: string, number, bool, null, or a list of those.
// Shapes outside the variant (nested mappings, mixed nesting) are carried
// as opaque YAML nodes so a rebuild round-trips them unchanged.
type Value struct {
	v interface{}
}

// String creates a string Value.
func String(s string) Value {
	return Value{v: s}
}

// Number creates a number Value.
func Number(n float64) Value {
	return Value{v: n}
}

// Bool creates a boolean Value.
func Bool(b bool) Value {
	return Value{v: b}
}

// Null creates a null Value.
func Null() Value {
	return Value{v: nil}
}

// List creates a list Value.
func List(items []Value) Value {
	return Value{v: items}
}

// opaque wraps a YAML node outside the closed variant. The node is kept
// verbatim: the merge logic treats it as an unmodelable type and never
// replaces it, and serialization re-emits it as written.
func opaque(node *yaml.Node) Value {
	return Value{v: node}
}

// FromYAML converts a decoded YAML value into a Value.
// Shapes outside the closed variant (nested maps, etc.) are wrapped as
// opaque nodes rather than leaking untyped data into the merge logic.
func FromYAML(value interface{}) Value {
	switch v := value.(type) {
	case string:
		return String(v)
	case int:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case float64:
		return Number(v)
	case bool:
		return Bool(v)
	case []interface{}:
		items := make([]Value, 0, len(v))
		for _, item := range v {
			items = append(items, FromYAML(item))
		}
		return List(items)
	case nil:
		return Null()
	default:
		node := &yaml.Node{}
		if err := node.Encode(value); err != nil {
			return Null()
		}
		return opaque(node)
	}
}

// IsNull returns true if the value is null.
func (val Value) IsNull() bool {
	return val.v == nil
}

// IsEmpty returns true if the value is null or an empty string.
func (val Value) IsEmpty() bool {
	if val.v == nil {
		return true
	}
	if s, ok := val.v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// AsString returns the value as a string, if it is one.
func (val Value) AsString() (string, bool) {
	s, ok := val.v.(string)
	return s, ok
}

// AsNumber returns the value as a number, if it is one.
func (val Value) AsNumber() (float64, bool) {
	n, ok := val.v.(float64)
	return n, ok
}

// AsBool returns the value as a boolean, if it is one.
func (val Value) AsBool() (bool, bool) {
	b, ok := val.v.(bool)
	return b, ok
}

// AsList returns the value as a list, if it is one.
func (val Value) AsList() ([]Value, bool) {
	items, ok := val.v.([]Value)
	return items, ok
}

// IsOpaque returns true if the value carries a YAML shape outside the
// closed variant.
func (val Value) IsOpaque() bool {
	_, ok := val.v.(*yaml.Node)
	return ok
}

// Raw returns the underlying value with lists expanded to []interface{}.
// Opaque values return their *yaml.Node.
func (val Value) Raw() interface{} {
	if items, ok := val.v.([]Value); ok {
		raw := make([]interface{}, len(items))
		for i, item := range items {
			raw[i] = item.Raw()
		}
		return raw
	}
	return val.v
}

// Key returns a canonical string form used for list-membership comparisons.
func (val Value) Key() string {
	switch v := val.v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []Value:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = item.Key()
		}
		return "[" + strings.Join(parts, ",") + "]"
	case *yaml.Node:
		encoded, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return strings.TrimSpace(string(encoded))
	default:
		return fmt.Sprintf("%v", v)
	}
}
