package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedNode is returned when a YAML node cannot be represented as a Value.
var ErrUnsupportedNode = errors.New("unsupported document node")

// FromYAMLNode converts a decoded YAML node tree into a Value. Object member
// order follows the document.
func FromYAMLNode(n *yaml.Node) (Value, error) {
	if n == nil {
		return Null{}, nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return FromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(n.Alias)
	case yaml.SequenceNode:
		arr := make(Array, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := FromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			v, err := FromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.set(key, v)
		}
		return obj, nil
	case yaml.ScalarNode:
		return scalarFromYAML(n)
	}
	return nil, fmt.Errorf("%w: kind %d at line %d", ErrUnsupportedNode, n.Kind, n.Line)
}

func scalarFromYAML(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return Number(f), nil
	default:
		return String(n.Value), nil
	}
}

// DecodeJSON reads one JSON value from r.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level JSON value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("invalid object key %v", kt)
				}
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := Array{}
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return String(t), nil
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return nil, err
		}
		return Number(f), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null{}, nil
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

// UnmarshalYAML decodes a sequence of rows.
func (r *Rows) UnmarshalYAML(n *yaml.Node) error {
	v, err := FromYAMLNode(n)
	if err != nil {
		return err
	}
	return r.assign(v)
}

// UnmarshalJSON decodes a sequence of rows.
func (r *Rows) UnmarshalJSON(data []byte) error {
	v, err := DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return r.assign(v)
}

func (r *Rows) assign(v Value) error {
	switch t := v.(type) {
	case Null:
		*r = nil
	case Array:
		*r = Rows(t)
	default:
		return fmt.Errorf("rows must be a list, got %s", v.Kind())
	}
	return nil
}
