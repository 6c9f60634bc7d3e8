// Package params implements the tunable parameter sets attached to
// analysis functions. Each set is an ordered collection of kind-checked
// options with documented defaults, mutable in place and resettable.
package params

import (
	"fmt"
	"strconv"

	"pixelprobe/pkg/probetypes"
)

// Option is one tunable entry in a set: a named value with a declared
// kind, the default recorded at construction, and a description shown
// in listings.
type Option struct {
	Name        string
	Kind        probetypes.ParamKind
	Value       probetypes.ParamValue
	Default     probetypes.ParamValue
	Description string
	// Choices restricts enum options to this list.
	Choices []string
}

// Set is a named, ordered collection of options for one analysis
// function. Option order is stable and matches the function's natural
// argument order.
type Set struct {
	function     string
	regionOption string
	order        []string
	options      map[string]*Option
}

// NewSet builds a parameter set for the named function. The option
// order given here is preserved in snapshots and listings. Construction
// mistakes (duplicate names, enum defaults outside the choice list)
// panic: sets are built at registry-initialization time and a bad
// default is a programming error.
func NewSet(function string, opts ...Option) *Set {
	s := &Set{
		function: function,
		options:  make(map[string]*Option, len(opts)),
	}
	for _, opt := range opts {
		if _, dup := s.options[opt.Name]; dup {
			panic(fmt.Sprintf("params: duplicate option %q in set %s", opt.Name, function))
		}
		o := opt
		o.Default = opt.Value
		if o.Kind == probetypes.KindEnum && !containsString(o.Choices, o.Value.S) {
			panic(fmt.Sprintf("params: default %q not among choices for %s.%s", o.Value.S, function, o.Name))
		}
		s.order = append(s.order, o.Name)
		s.options[o.Name] = &o
	}
	return s
}

// WithRegionOption declares which option controls the size of the data
// window sliced for the function. Returns the set for chaining.
func (s *Set) WithRegionOption(name string) *Set {
	if _, ok := s.options[name]; !ok {
		panic(fmt.Sprintf("params: region option %q not declared in set %s", name, s.function))
	}
	s.regionOption = name
	return s
}

// Function returns the analysis routine name this set belongs to.
func (s *Set) Function() string { return s.function }

// RegionOption returns the name of the declared region-size option, or
// "" when the function reads the full frame.
func (s *Set) RegionOption() string { return s.regionOption }

// Has reports whether the named option exists.
func (s *Set) Has(name string) bool {
	_, ok := s.options[name]
	return ok
}

// Names returns the option names in declaration order.
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the current value of the named option.
func (s *Set) Get(name string) (probetypes.ParamValue, error) {
	opt, ok := s.options[name]
	if !ok {
		return probetypes.ParamValue{}, &probetypes.UnknownOptionError{Set: s.function, Name: name}
	}
	return opt.Value, nil
}

// Set assigns a new value to the named option. The value's kind must
// match the option's declared kind; the single permitted coercion is an
// int assigned to a float option (lossless). Enum values must be one of
// the declared choices.
func (s *Set) Set(name string, v probetypes.ParamValue) error {
	opt, ok := s.options[name]
	if !ok {
		return &probetypes.UnknownOptionError{Set: s.function, Name: name}
	}

	if opt.Kind == probetypes.KindFloat && v.Kind == probetypes.KindInt {
		v = probetypes.FloatValue(float64(v.I))
	}
	if v.Kind != opt.Kind {
		return &probetypes.InvalidParameterError{
			Set:    s.function,
			Name:   name,
			Reason: fmt.Sprintf("expected %s, got %s", opt.Kind, v.Kind),
		}
	}
	if opt.Kind == probetypes.KindEnum && !containsString(opt.Choices, v.S) {
		return &probetypes.InvalidParameterError{
			Set:    s.function,
			Name:   name,
			Reason: fmt.Sprintf("%q is not one of %v", v.S, opt.Choices),
		}
	}

	opt.Value = v
	return nil
}

// SetString parses raw according to the option's declared kind and
// assigns it. This is the edit path for text surfaces: the command
// line, config files, and interactive option editing.
func (s *Set) SetString(name, raw string) error {
	opt, ok := s.options[name]
	if !ok {
		return &probetypes.UnknownOptionError{Set: s.function, Name: name}
	}
	switch opt.Kind {
	case probetypes.KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return &probetypes.InvalidParameterError{Set: s.function, Name: name,
				Reason: fmt.Sprintf("%q is not a bool", raw)}
		}
		return s.Set(name, probetypes.BoolValue(b))
	case probetypes.KindInt:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return &probetypes.InvalidParameterError{Set: s.function, Name: name,
				Reason: fmt.Sprintf("%q is not an int", raw)}
		}
		return s.Set(name, probetypes.IntValue(i))
	case probetypes.KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return &probetypes.InvalidParameterError{Set: s.function, Name: name,
				Reason: fmt.Sprintf("%q is not a float", raw)}
		}
		return s.Set(name, probetypes.FloatValue(f))
	case probetypes.KindEnum:
		return s.Set(name, probetypes.EnumValue(raw))
	default:
		return s.Set(name, probetypes.StringValue(raw))
	}
}

// Reset restores every option to the value recorded at construction.
func (s *Set) Reset() {
	for _, opt := range s.options {
		opt.Value = opt.Default
	}
}

// Snapshot returns ordered copies of every option for display and
// editing. Mutating the returned slice does not affect the set.
func (s *Set) Snapshot() []Option {
	out := make([]Option, 0, len(s.order))
	for _, name := range s.order {
		opt := *s.options[name]
		opt.Choices = append([]string(nil), opt.Choices...)
		out = append(out, opt)
	}
	return out
}

// Bool returns the named option as a bool, panicking when the option is
// absent or of another kind. The built-in analysis functions read their
// own sets with these accessors; a mismatch is converted to a reported
// failure at the invoker boundary.
func (s *Set) Bool(name string) bool {
	v := s.mustGet(name)
	if v.Kind != probetypes.KindBool {
		panic(fmt.Sprintf("params: %s.%s is %s, not bool", s.function, name, v.Kind))
	}
	return v.B
}

// Int returns the named option as an int, panicking on absence or kind
// mismatch.
func (s *Set) Int(name string) int {
	v := s.mustGet(name)
	if v.Kind != probetypes.KindInt {
		panic(fmt.Sprintf("params: %s.%s is %s, not int", s.function, name, v.Kind))
	}
	return v.I
}

// Float returns the named option as a float64. Int options promote.
func (s *Set) Float(name string) float64 {
	v := s.mustGet(name)
	f, ok := v.AsFloat()
	if !ok {
		panic(fmt.Sprintf("params: %s.%s is %s, not numeric", s.function, name, v.Kind))
	}
	return f
}

// Str returns the named option as a string (string or enum kinds).
func (s *Set) Str(name string) string {
	v := s.mustGet(name)
	if v.Kind != probetypes.KindString && v.Kind != probetypes.KindEnum {
		panic(fmt.Sprintf("params: %s.%s is %s, not string", s.function, name, v.Kind))
	}
	return v.S
}

func (s *Set) mustGet(name string) probetypes.ParamValue {
	opt, ok := s.options[name]
	if !ok {
		panic(fmt.Sprintf("params: set %s has no option %q", s.function, name))
	}
	return opt.Value
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
