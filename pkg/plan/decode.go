package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode parses plan bytes into a Value tree. The payload may be JSON or
// YAML; both go through the yaml.v3 node API because it is a JSON superset
// and, unlike map unmarshalling, preserves the order of record fields.
func Decode(raw []byte) (Value, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Value{}, fmt.Errorf("plan: document is empty")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return Value{}, fmt.Errorf("plan: parse document: %w", err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return Value{}, fmt.Errorf("plan: document has no content")
		}
		node = node.Content[0]
	}

	value, err := valueFromNode(node)
	if err != nil {
		return Value{}, err
	}
	return value, nil
}

func valueFromNode(node *yaml.Node) (Value, error) {
	if node == nil {
		return Absent(), nil
	}
	if node.Kind == yaml.AliasNode {
		return valueFromNode(node.Alias)
	}

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return Absent(), nil
		}
		return Scalar(node.Value), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := valueFromNode(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, value)
		}
		return Sequence(items...), nil
	case yaml.MappingNode:
		fields := make([]Field, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind == yaml.AliasNode {
				key = key.Alias
			}
			name := strings.TrimSpace(key.Value)
			if name == "" {
				continue
			}
			value, err := valueFromNode(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			fields = append(fields, Field{Name: name, Value: value})
		}
		return Record(fields...), nil
	default:
		return Value{}, fmt.Errorf("plan: unsupported node kind %d at line %d", node.Kind, node.Line)
	}
}

// EncodeJSON re-serializes a Value tree as indented JSON, keeping record
// fields in their original order. Absent values encode as null.
func EncodeJSON(value Value) []byte {
	var buf bytes.Buffer
	encodeValue(&buf, value, 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

func encodeValue(buf *bytes.Buffer, value Value, depth int) {
	switch value.Kind() {
	case KindScalar:
		encoded, _ := json.Marshal(value.Text())
		buf.Write(encoded)
	case KindSequence:
		items := value.Items()
		if len(items) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, item := range items {
			indent(buf, depth+1)
			encodeValue(buf, item, depth+1)
			if i < len(items)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		indent(buf, depth)
		buf.WriteByte(']')
	case KindRecord:
		names := value.FieldNames()
		if len(names) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for i, name := range names {
			indent(buf, depth+1)
			encodedName, _ := json.Marshal(name)
			buf.Write(encodedName)
			buf.WriteString(": ")
			encodeValue(buf, value.Field(name), depth+1)
			if i < len(names)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		indent(buf, depth)
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
}

func indent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}
