package form

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind is the declared type of a field.
type Kind int

const (
	KindString  Kind = iota // Free text or single choice
	KindInt                 // Whole number
	KindBool                // Toggle
	KindStrings             // Ordered multi-select
)

// String returns the string representation of a kind
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindStrings:
		return "strings"
	default:
		return "unknown"
	}
}

// Value holds one field value. The zero Value is an empty string.
type Value struct {
	kind Kind
	s    string
	i    int
	b    bool
	list []string
}

// String creates a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int creates an integer value.
func Int(i int) Value { return Value{kind: KindInt, i: i} }

// Bool creates a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Strings creates a multi-select value. The slice is copied.
func Strings(items ...string) Value {
	return Value{kind: KindStrings, list: slices.Clone(items)}
}

// Zero returns the zero value for a kind.
func Zero(k Kind) Value {
	switch k {
	case KindInt:
		return Int(0)
	case KindBool:
		return Bool(false)
	case KindStrings:
		return Strings()
	default:
		return String("")
	}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload (empty for other kinds).
func (v Value) Str() string { return v.s }

// IntVal returns the integer payload (0 for other kinds).
func (v Value) IntVal() int { return v.i }

// BoolVal returns the boolean payload (false for other kinds).
func (v Value) BoolVal() bool { return v.b }

// List returns a copy of the multi-select payload.
func (v Value) List() []string { return slices.Clone(v.list) }

// Len returns the number of selected options for a multi-select value.
func (v Value) Len() int { return len(v.list) }

// Contains reports whether option is selected.
func (v Value) Contains(option string) bool { return slices.Contains(v.list, option) }

// Toggle returns a copy of a multi-select value with option flipped.
// Selection order is preserved; newly selected options are appended.
func (v Value) Toggle(option string) Value {
	if idx := slices.Index(v.list, option); idx >= 0 {
		return Strings(slices.Delete(slices.Clone(v.list), idx, idx+1)...)
	}
	return Strings(append(slices.Clone(v.list), option)...)
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i
	case KindBool:
		return v.b == o.b
	case KindStrings:
		return slices.Equal(v.list, o.list)
	default:
		return v.s == o.s
	}
}

// Interface returns the payload as a plain Go value (string, int, bool or []string).
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindBool:
		return v.b
	case KindStrings:
		return v.List()
	default:
		return v.s
	}
}

// Display renders the value for humans.
func (v Value) Display() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindBool:
		if v.b {
			return "yes"
		}
		return "no"
	case KindStrings:
		return strings.Join(v.list, ", ")
	default:
		return v.s
	}
}

// MarshalJSON encodes the plain payload.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindStrings && v.list == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.Interface())
}

// Parse converts raw text input into a value of kind k.
// Multi-select input is comma separated.
func Parse(k Kind, raw string) (Value, error) {
	switch k {
	case KindInt:
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return Int(0), nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a whole number", ErrKindMismatch, raw)
		}
		return Int(n), nil
	case KindBool:
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return Bool(false), nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a boolean", ErrKindMismatch, raw)
		}
		return Bool(b), nil
	case KindStrings:
		var items []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		return Strings(items...), nil
	default:
		return String(raw), nil
	}
}

// FromInterface converts a decoded JSON value into a value of kind k.
// JSON numbers arrive as float64 and must be whole and fit in an int.
func FromInterface(k Kind, raw any) (Value, error) {
	switch x := raw.(type) {
	case string:
		return Parse(k, x)
	case float64:
		if k != KindInt {
			return Value{}, fmt.Errorf("%w: got number for %s field", ErrKindMismatch, k)
		}
		if x != math.Trunc(x) || x < math.MinInt || x >= -math.MinInt {
			return Value{}, fmt.Errorf("%w: %v is not a whole number", ErrKindMismatch, x)
		}
		return Int(int(x)), nil
	case int:
		if k != KindInt {
			return Value{}, fmt.Errorf("%w: got number for %s field", ErrKindMismatch, k)
		}
		return Int(x), nil
	case bool:
		if k != KindBool {
			return Value{}, fmt.Errorf("%w: got boolean for %s field", ErrKindMismatch, k)
		}
		return Bool(x), nil
	case []any:
		if k != KindStrings {
			return Value{}, fmt.Errorf("%w: got list for %s field", ErrKindMismatch, k)
		}
		items := make([]string, 0, len(x))
		for i, item := range x {
			s, ok := item.(string)
			if !ok {
				return Value{}, fmt.Errorf("%w: list item %d is not a string", ErrKindMismatch, i)
			}
			items = append(items, s)
		}
		return Strings(items...), nil
	case []string:
		if k != KindStrings {
			return Value{}, fmt.Errorf("%w: got list for %s field", ErrKindMismatch, k)
		}
		return Strings(x...), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported value type %T", ErrKindMismatch, raw)
	}
}
