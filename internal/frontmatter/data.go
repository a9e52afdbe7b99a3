package frontmatter

import (
	"gopkg.in/yaml.v3"
)

// Data is a property-name → Value map that preserves key insertion order.
type Data struct {
	keys   []string
	values map[string]Value
}

// NewData creates an empty Data.
func NewData() *Data {
	return &Data{values: make(map[string]Value)}
}

// Set stores a value, appending the key if it is new.
func (d *Data) Set(key string, value Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value for a key.
func (d *Data) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Has returns true if the key is present.
func (d *Data) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (d *Data) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of properties.
func (d *Data) Len() int {
	return len(d.keys)
}

// Clone returns a shallow copy preserving key order.
func (d *Data) Clone() *Data {
	out := NewData()
	for _, k := range d.keys {
		out.Set(k, d.values[k])
	}
	return out
}

// Tags returns the string items of the "tags" property, if present.
// A scalar string tag is treated as a single-item list.
func (d *Data) Tags() []string {
	v, ok := d.values["tags"]
	if !ok {
		return nil
	}
	if s, ok := v.AsString(); ok && s != "" {
		return []string{s}
	}
	items, ok := v.AsList()
	if !ok {
		return nil
	}
	var tags []string
	for _, item := range items {
		if s, ok := item.AsString(); ok && s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}

// MarshalYAML emits the map as a YAML mapping in insertion order.
func (d *Data) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range d.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: k}
		if orig, ok := d.values[k].v.(*yaml.Node); ok {
			// Opaque values re-emit the node as parsed, nested key
			// order included.
			node.Content = append(node.Content, keyNode, orig)
			continue
		}
		valNode := &yaml.Node{}
		if err := valNode.Encode(d.values[k].Raw()); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// dataFromNode builds a Data from a YAML mapping node, preserving key order.
func dataFromNode(node *yaml.Node) (*Data, bool) {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, false
	}

	data := NewData()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, false
		}
		data.Set(keyNode.Value, valueFromNode(node.Content[i+1]))
	}
	return data, true
}

// valueFromNode converts a YAML value node into a Value. Scalars and
// sequences decode into the closed variant; mappings and anything else
// are carried opaquely.
func valueFromNode(node *yaml.Node) Value {
	switch node.Kind {
	case yaml.ScalarNode, yaml.SequenceNode:
		var raw interface{}
		if err := node.Decode(&raw); err != nil {
			return opaque(node)
		}
		return FromYAML(raw)
	default:
		return opaque(node)
	}
}
