package grid

import (
	"slices"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Record is an ordered key/value record. Key order is column order.
// The zero value is an empty record ready to use.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord builds a record from alternating key/value pairs.
// It panics if a key is not a string or a value is missing.
func NewRecord(kv ...any) *Record {
	if len(kv)%2 != 0 {
		panic("grid.NewRecord: odd number of arguments")
	}
	r := &Record{}
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic("grid.NewRecord: key is not a string")
		}
		r.Set(key, kv[i+1])
	}
	return r
}

// Set assigns value to key, appending key to the order if it is new.
func (r *Record) Set(key string, value any) *Record {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.keys)
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// At returns the i-th key and its value.
func (r *Record) At(i int) (string, any) {
	key := r.keys[i]
	return key, r.values[key]
}

// Map returns an unordered copy, the shape expression evaluators expect.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, r.Len())
	if r == nil {
		return out
	}
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// UnmarshalYAML decodes a mapping node keeping the key order of the document.
// JSON objects decode the same way since yaml.v3 reads JSON.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: record must be a mapping, got %s", node.Line, kindName(node.Kind))
	}
	r.keys = nil
	r.values = make(map[string]any, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var value any
		if err := valueNode.Decode(&value); err != nil {
			return errors.Wrapf(err, "line %d: decode value of %q", valueNode.Line, keyNode.Value)
		}
		r.Set(keyNode.Value, value)
	}
	return nil
}

// MarshalYAML encodes the record as a mapping in key order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := range r.Len() {
		key, value := r.At(i)
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return nil, errors.Wrapf(err, "encode value of %q", key)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			valueNode,
		)
	}
	return node, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
