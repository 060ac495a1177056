package value

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FuncTag is the YAML tag for a named callback: `formatter: !fn percent`.
const FuncTag = "!fn"

// UnmarshalYAML decodes a YAML node into v. Nodes tagged !fn, and mappings
// of the form {$fn: name}, become unresolved callables.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	out, err := fromNode(node)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// UnmarshalYAML decodes a YAML mapping into o.
func (o *Object) UnmarshalYAML(node *yaml.Node) error {
	v, err := fromNode(node)
	if err != nil {
		return err
	}
	switch v.kind {
	case KindObject:
		*o = v.obj
	case KindNull:
		*o = Object{}
	default:
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, v.kind)
	}
	return nil
}

func fromNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return fromNode(node.Content[0])
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.ScalarNode:
		return fromScalar(node)
	case yaml.SequenceNode:
		if node.Tag == FuncTag {
			return Value{}, fmt.Errorf("line %d: %s expects a scalar name", node.Line, FuncTag)
		}
		out := make(Array, len(node.Content))
		for i, child := range node.Content {
			v, err := fromNode(child)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return ArrayOf(out...), nil
	case yaml.MappingNode:
		return fromMapping(node)
	}
	return Value{}, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
}

func fromScalar(node *yaml.Node) (Value, error) {
	if node.Tag == FuncTag {
		if node.Value == "" {
			return Value{}, fmt.Errorf("line %d: %s needs a callback name", node.Line, FuncTag)
		}
		return Ref(node.Value), nil
	}
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, err
		}
		return Number(f), nil
	default:
		return String(node.Value), nil
	}
}

func fromMapping(node *yaml.Node) (Value, error) {
	out := make(Object, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if key.ShortTag() == "!!merge" {
			if err := mergeInto(out, val); err != nil {
				return Value{}, err
			}
			continue
		}
		v, err := fromNode(val)
		if err != nil {
			return Value{}, err
		}
		out[key.Value] = v
	}
	if len(out) == 1 {
		if ref, ok := out[FuncRefKey]; ok {
			if name, ok := ref.AsString(); ok {
				return Ref(name), nil
			}
		}
	}
	return ObjectOf(out), nil
}

// mergeInto applies a YAML merge key (<<) without overriding explicit keys.
func mergeInto(out Object, val *yaml.Node) error {
	srcs := []*yaml.Node{val}
	if val.Kind == yaml.SequenceNode {
		srcs = val.Content
	}
	for _, src := range srcs {
		v, err := fromNode(src)
		if err != nil {
			return err
		}
		obj, ok := v.AsObject()
		if !ok {
			return fmt.Errorf("line %d: merge source must be a mapping", src.Line)
		}
		for k, e := range obj {
			if _, exists := out[k]; !exists {
				out[k] = e
			}
		}
	}
	return nil
}

// MarshalYAML encodes v, writing callables as !fn name.
func (v Value) MarshalYAML() (any, error) {
	return v.node(), nil
}

// MarshalYAML encodes o as a mapping with sorted keys.
func (o Object) MarshalYAML() (any, error) {
	return ObjectOf(o).node(), nil
}

func (v Value) node() *yaml.Node {
	switch v.kind {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindNumber:
		tag, text := yamlNumber(v.n)
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
	case KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.arr {
			n.Content = append(n.Content, e.node())
		}
		return n
	case KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.obj.Keys() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				v.obj[k].node())
		}
		return n
	case KindCallable:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: FuncTag, Value: v.fn.Name}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func yamlNumber(f float64) (tag, text string) {
	switch {
	case math.IsNaN(f):
		return "!!float", ".nan"
	case math.IsInf(f, 1):
		return "!!float", ".inf"
	case math.IsInf(f, -1):
		return "!!float", "-.inf"
	case f == math.Trunc(f) && math.Abs(f) < 1e15:
		return "!!int", strconv.FormatFloat(f, 'f', -1, 64)
	}
	return "!!float", strconv.FormatFloat(f, 'g', -1, 64)
}
