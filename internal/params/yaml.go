package params

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"pixelprobe/pkg/probetypes"
)

// MarshalYAML renders the set as a plain name→value mapping suitable
// for saving, hand-editing, and reapplying with ApplyYAML.
func (s *Set) MarshalYAML() ([]byte, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range s.order {
		opt := s.options[name]
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: name}
		val := &yaml.Node{Kind: yaml.ScalarNode, Value: opt.Value.String(), LineComment: opt.Description}
		node.Content = append(node.Content, key, val)
	}
	return yaml.Marshal(node)
}

// ApplyYAML bulk-edits the set from a name→value YAML mapping. Unknown
// names and kind mismatches fail with the same typed errors Set uses;
// the first failure stops the edit.
func (s *Set) ApplyYAML(data []byte) error {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse parameter YAML for %s: %w", s.function, err)
	}
	return s.ApplyValues(raw)
}

// ApplyValues bulk-edits the set from decoded scalars (YAML or config
// file values). Names are applied in sorted order so failures are
// deterministic.
func (s *Set) ApplyValues(values map[string]interface{}) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		pv, err := s.coerce(name, values[name])
		if err != nil {
			return err
		}
		if err := s.Set(name, pv); err != nil {
			return err
		}
	}
	return nil
}

// coerce converts a decoded scalar to a ParamValue of the option's
// declared kind. Wrong-shaped scalars become InvalidParameter, never a
// silent corruption.
func (s *Set) coerce(name string, raw interface{}) (probetypes.ParamValue, error) {
	opt, ok := s.options[name]
	if !ok {
		return probetypes.ParamValue{}, &probetypes.UnknownOptionError{Set: s.function, Name: name}
	}

	invalid := func(reason string) error {
		return &probetypes.InvalidParameterError{Set: s.function, Name: name, Reason: reason}
	}

	switch opt.Kind {
	case probetypes.KindBool:
		if b, ok := raw.(bool); ok {
			return probetypes.BoolValue(b), nil
		}
		return probetypes.ParamValue{}, invalid(fmt.Sprintf("expected bool, got %T", raw))
	case probetypes.KindInt:
		if i, ok := raw.(int); ok {
			return probetypes.IntValue(i), nil
		}
		return probetypes.ParamValue{}, invalid(fmt.Sprintf("expected int, got %T", raw))
	case probetypes.KindFloat:
		switch v := raw.(type) {
		case float64:
			return probetypes.FloatValue(v), nil
		case int:
			return probetypes.FloatValue(float64(v)), nil
		}
		return probetypes.ParamValue{}, invalid(fmt.Sprintf("expected float, got %T", raw))
	case probetypes.KindString:
		if str, ok := raw.(string); ok {
			return probetypes.StringValue(str), nil
		}
		return probetypes.ParamValue{}, invalid(fmt.Sprintf("expected string, got %T", raw))
	case probetypes.KindEnum:
		if str, ok := raw.(string); ok {
			return probetypes.EnumValue(str), nil
		}
		return probetypes.ParamValue{}, invalid(fmt.Sprintf("expected string, got %T", raw))
	}
	return probetypes.ParamValue{}, invalid("unsupported option kind")
}
