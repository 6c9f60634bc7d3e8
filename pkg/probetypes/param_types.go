// Package probetypes defines the shared types for pixelprobe.
// This file contains the tagged parameter value type used by analysis
// parameter sets, so that options carry a declared kind instead of an
// untyped slot.
package probetypes

import (
	"fmt"
	"strconv"
)

// ParamKind identifies the declared kind of a parameter value.
type ParamKind int

const (
	// KindBool is a boolean toggle.
	KindBool ParamKind = iota
	// KindInt is a signed integer.
	KindInt
	// KindFloat is a float64.
	KindFloat
	// KindString is free-form text.
	KindString
	// KindEnum is a string restricted to a declared choice list.
	KindEnum
)

// String returns the human-readable kind name.
func (k ParamKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("ParamKind(%d)", int(k))
	}
}

// ParamValue is a tagged variant holding one parameter value.
// Exactly the field matching Kind is meaningful.
type ParamValue struct {
	Kind ParamKind
	B    bool
	I    int
	F    float64
	S    string
}

// BoolValue wraps a bool.
func BoolValue(v bool) ParamValue { return ParamValue{Kind: KindBool, B: v} }

// IntValue wraps an int.
func IntValue(v int) ParamValue { return ParamValue{Kind: KindInt, I: v} }

// FloatValue wraps a float64.
func FloatValue(v float64) ParamValue { return ParamValue{Kind: KindFloat, F: v} }

// StringValue wraps a string.
func StringValue(v string) ParamValue { return ParamValue{Kind: KindString, S: v} }

// EnumValue wraps a string that must match one of the option's choices.
func EnumValue(v string) ParamValue { return ParamValue{Kind: KindEnum, S: v} }

// AsFloat returns the value as a float64. Int values promote losslessly;
// any other kind reports false.
func (v ParamValue) AsFloat() (float64, bool) {
	switch v.Kind {
	case KindFloat:
		return v.F, true
	case KindInt:
		return float64(v.I), true
	default:
		return 0, false
	}
}

// Equal reports whether two values have the same kind and payload.
func (v ParamValue) Equal(o ParamValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.B == o.B
	case KindInt:
		return v.I == o.I
	case KindFloat:
		return v.F == o.F
	default:
		return v.S == o.S
	}
}

// String formats the payload for display and logging.
func (v ParamValue) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.B)
	case KindInt:
		return strconv.Itoa(v.I)
	case KindFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	default:
		return v.S
	}
}
