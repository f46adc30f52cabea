package models

import (
	"sort"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

var kindNames = [...]string{
	KindNull:   "null",
	KindString: "string",
	KindNumber: "number",
	KindBool:   "bool",
	KindObject: "object",
	KindArray:  "array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a node of a parsed structured document.
//
// The set of implementations is closed: String, Number, Bool, Null, *Object
// and Array. Values are immutable once decoded.
type Value interface {
	Kind() Kind
	isValue()
}

// String is a text scalar.
type String string

// Number is a numeric scalar. Integers are held as float64.
type Number float64

// Bool is a boolean scalar.
type Bool bool

// Null is the absent value.
type Null struct{}

// Array is an ordered sequence of values.
type Array []Value

func (String) Kind() Kind  { return KindString }
func (Number) Kind() Kind  { return KindNumber }
func (Bool) Kind() Kind    { return KindBool }
func (Null) Kind() Kind    { return KindNull }
func (Array) Kind() Kind   { return KindArray }
func (*Object) Kind() Kind { return KindObject }

func (String) isValue()  {}
func (Number) isValue()  {}
func (Bool) isValue()    {}
func (Null) isValue()    {}
func (Array) isValue()   {}
func (*Object) isValue() {}

// Entry is one member of an Object.
type Entry struct {
	Key   string
	Value Value
}

// Object is a mapping of names to values that remembers the order in which
// members were first seen.
type Object struct {
	entries []Entry
	index   map[string]int
}

// NewObject builds an Object from entries. A repeated key keeps its first
// position and its last value.
func NewObject(entries ...Entry) *Object {
	o := &Object{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		o.set(e.Key, e.Value)
	}
	return o
}

func (o *Object) set(key string, v Value) {
	if v == nil {
		v = Null{}
	}
	if i, ok := o.index[key]; ok {
		o.entries[i].Value = v
		return
	}
	o.index[key] = len(o.entries)
	o.entries = append(o.entries, Entry{Key: key, Value: v})
}

// Get returns the member stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.entries[i].Value, true
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}

// Keys returns member names in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.entries))
	for i, e := range o.entries {
		keys[i] = e.Key
	}
	return keys
}

// SortedKeys returns member names in lexicographic order.
func (o *Object) SortedKeys() []string {
	keys := o.Keys()
	sort.Strings(keys)
	return keys
}

// Entries returns a copy of the members in insertion order.
func (o *Object) Entries() []Entry {
	if o == nil {
		return nil
	}
	out := make([]Entry, len(o.entries))
	copy(out, o.entries)
	return out
}

// Rows is a list of table rows. Each row is either an *Object (keyed by
// column name) or an Array (positional).
type Rows []Value
