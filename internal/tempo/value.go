package tempo

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ValueKind enumerates the JSON shapes a Value can hold.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a tagged union over arbitrary JSON, used for server metadata
// blobs whose shape the client does not model. It round-trips exactly and
// exposes typed optional views instead of runtime type inspection.
type Value struct {
	kind ValueKind
	b    bool
	n    float64
	s    string
	a    []Value
	o    map[string]Value
}

// Kind returns the shape this value holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is JSON null (or was never set).
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean view of the value.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Number returns the numeric view of the value.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.n, true
}

// String returns the string view of the value.
func (v Value) String() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Array returns the element slice when the value is an array.
func (v Value) Array() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.a, true
}

// Field returns the named member when the value is an object.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	member, ok := v.o[name]
	return member, ok
}

// Keys returns the sorted member names when the value is an object.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.o))
	for k := range v.o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnmarshalJSON decodes any JSON value into the union.
func (v *Value) UnmarshalJSON(data []byte) error {
	*v = Value{}
	if isNull(data) {
		return nil
	}
	switch data[0] {
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		members := make(map[string]Value, len(raw))
		for k, r := range raw {
			var member Value
			if err := member.UnmarshalJSON(r); err != nil {
				return err
			}
			members[k] = member
		}
		v.kind = KindObject
		v.o = members
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		elems := make([]Value, len(raw))
		for i, r := range raw {
			if err := elems[i].UnmarshalJSON(r); err != nil {
				return err
			}
		}
		v.kind = KindArray
		v.a = elems
	case '"':
		if err := json.Unmarshal(data, &v.s); err != nil {
			return err
		}
		v.kind = KindString
	case 't', 'f':
		if err := json.Unmarshal(data, &v.b); err != nil {
			return err
		}
		v.kind = KindBool
	default:
		if err := json.Unmarshal(data, &v.n); err != nil {
			return err
		}
		v.kind = KindNumber
	}
	return nil
}

// MarshalJSON re-encodes the union with full fidelity.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindArray:
		return json.Marshal(v.a)
	case KindObject:
		return json.Marshal(v.o)
	default:
		return nil, fmt.Errorf("unknown value kind %d", v.kind)
	}
}
