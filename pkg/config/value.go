package config

import (
	"strconv"
)

// Kind is the variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindList
	KindMapping
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// YAML core schema tags carried by scalars.
const (
	TagString = "!!str"
	TagInt    = "!!int"
	TagFloat  = "!!float"
	TagBool   = "!!bool"
)

// Value is a node of the configuration tree: null, scalar, list or mapping.
//
// Scalars keep the literal text they were written with, so "temp: 1.0"
// renders as 1.0 rather than a re-formatted float. Mappings keep insertion
// order; replacing an existing key keeps its position.
type Value struct {
	kind Kind

	tag  string
	text string

	items []*Value

	keys   []string
	fields map[string]*Value
}

// Null returns a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Scalar returns a scalar with an explicit tag.
func Scalar(tag, text string) *Value {
	return &Value{kind: KindScalar, tag: tag, text: text}
}

// String returns a string scalar.
func String(s string) *Value {
	return Scalar(TagString, s)
}

// Int returns an integer scalar.
func Int(i int64) *Value {
	return Scalar(TagInt, strconv.FormatInt(i, 10))
}

// Bool returns a boolean scalar.
func Bool(b bool) *Value {
	return Scalar(TagBool, strconv.FormatBool(b))
}

// List returns a list of the given items.
func List(items ...*Value) *Value {
	return &Value{kind: KindList, items: items}
}

// Mapping returns an empty mapping.
func Mapping() *Value {
	return &Value{kind: KindMapping, fields: map[string]*Value{}}
}

// Kind returns the variant of v. A nil Value is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether v is null (or nil).
func (v *Value) IsNull() bool { return v.Kind() == KindNull }

// IsScalar reports whether v is a scalar.
func (v *Value) IsScalar() bool { return v.Kind() == KindScalar }

// IsList reports whether v is a list.
func (v *Value) IsList() bool { return v.Kind() == KindList }

// IsMapping reports whether v is a mapping.
func (v *Value) IsMapping() bool { return v.Kind() == KindMapping }

// Text returns the literal text of a scalar, or "" for other kinds.
func (v *Value) Text() string {
	if !v.IsScalar() {
		return ""
	}
	return v.text
}

// Keys returns the keys of a mapping in insertion order.
func (v *Value) Keys() []string {
	if !v.IsMapping() {
		return nil
	}
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Len returns the number of list items or mapping keys.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindList:
		return len(v.items)
	case KindMapping:
		return len(v.keys)
	default:
		return 0
	}
}

// Get returns the value stored under key in a mapping.
func (v *Value) Get(key string) (*Value, bool) {
	if !v.IsMapping() {
		return nil, false
	}
	f, ok := v.fields[key]
	return f, ok
}

// Has reports whether a mapping contains key.
func (v *Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Set stores val under key. Set panics when v is not a mapping.
func (v *Value) Set(key string, val *Value) *Value {
	if !v.IsMapping() {
		panic("config: Set on " + v.Kind().String())
	}
	if val == nil {
		val = Null()
	}
	if _, ok := v.fields[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = val
	return v
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	switch v.Kind() {
	case KindScalar:
		return Scalar(v.tag, v.text)
	case KindList:
		items := make([]*Value, len(v.items))
		for i, it := range v.items {
			items[i] = it.Clone()
		}
		return List(items...)
	case KindMapping:
		out := Mapping()
		for _, k := range v.keys {
			out.Set(k, v.fields[k].Clone())
		}
		return out
	default:
		return Null()
	}
}

// Equal reports whether two values are structurally identical, including
// mapping key order.
func (v *Value) Equal(o *Value) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case KindScalar:
		return v.tag == o.tag && v.text == o.text
	case KindList:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.keys) != len(o.keys) {
			return false
		}
		for i, k := range v.keys {
			if o.keys[i] != k || !v.fields[k].Equal(o.fields[k]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Interface converts v into plain Go values: map[string]interface{},
// []interface{}, string, int64, float64, bool or nil. Scalars whose text
// does not parse under their tag are returned as strings.
func (v *Value) Interface() interface{} {
	switch v.Kind() {
	case KindScalar:
		switch v.tag {
		case TagInt:
			if i, err := strconv.ParseInt(v.text, 0, 64); err == nil {
				return i
			}
		case TagFloat:
			if f, err := strconv.ParseFloat(v.text, 64); err == nil {
				return f
			}
		case TagBool:
			if b, err := strconv.ParseBool(v.text); err == nil {
				return b
			}
		}
		return v.text
	case KindList:
		out := make([]interface{}, len(v.items))
		for i, it := range v.items {
			out[i] = it.Interface()
		}
		return out
	case KindMapping:
		out := make(map[string]interface{}, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.fields[k].Interface()
		}
		return out
	default:
		return nil
	}
}

// Bool interprets a scalar as a boolean. Null and unparsable scalars are false.
func (v *Value) Bool() bool {
	if !v.IsScalar() {
		return false
	}
	b, err := strconv.ParseBool(v.text)
	return err == nil && b
}
