// Package jsonvalue implements the in-memory JSON value tree: a tagged
// variant over Null, Boolean, Number, String, List and Object, with
// the query and ordering helpers the rest of the core relies on.
package jsonvalue

import "strings"

// Kind identifies which case of the Value variant is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindList:
		return "List"
	case KindObject:
		return "Object"
	default:
		return "<unknown>"
	}
}

// Value is the JSON data variant. The zero Value is Null.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	str     string
	list    []Value
	object  *Object
}

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a JSON Boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, boolean: b} }

// Num returns a JSON Number value. The caller is responsible for
// passing only finite values; encoders reject non-finite numbers.
func Num(f float64) Value { return Value{kind: KindNumber, number: f} }

// Str returns a JSON String value.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// List returns a JSON List value wrapping xs. xs is taken by reference;
// callers that want an independent copy should Clone the result.
func List(xs []Value) Value { return Value{kind: KindList, list: xs} }

// Obj returns a JSON Object value wrapping o. A nil o is treated as an
// empty object.
func Obj(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, object: o}
}

// Kind reports which variant case v holds.
func (v Value) Kind() Kind { return v.kind }

// Clone returns a structurally equal, disjoint deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindList:
		cp := make([]Value, len(v.list))
		for i, e := range v.list {
			cp[i] = e.Clone()
		}
		return Value{kind: KindList, list: cp}
	case KindObject:
		return Value{kind: KindObject, object: v.object.Clone()}
	default:
		return v
	}
}

// --- narrowing accessors ---

func (v Value) AsNull() (struct{}, bool) {
	if v.kind == KindNull {
		return struct{}{}, true
	}
	return struct{}{}, false
}

func (v Value) AsBoolean() (bool, bool) {
	if v.kind == KindBoolean {
		return v.boolean, true
	}
	return false, false
}

func (v Value) AsNumber() (float64, bool) {
	if v.kind == KindNumber {
		return v.number, true
	}
	return 0, false
}

func (v Value) AsString() (string, bool) {
	if v.kind == KindString {
		return v.str, true
	}
	return "", false
}

func (v Value) AsList() ([]Value, bool) {
	if v.kind == KindList {
		return v.list, true
	}
	return nil, false
}

func (v Value) AsObject() (*Object, bool) {
	if v.kind == KindObject {
		return v.object, true
	}
	return nil, false
}

func (v Value) IsNull() bool    { return v.kind == KindNull }
func (v Value) IsBoolean() bool { return v.kind == KindBoolean }
func (v Value) IsNumber() bool  { return v.kind == KindNumber }
func (v Value) IsString() bool  { return v.kind == KindString }
func (v Value) IsList() bool    { return v.kind == KindList }
func (v Value) IsObject() bool  { return v.kind == KindObject }

// --- query operations ---

// Find looks up key on v if v is an Object; absent otherwise.
func (v Value) Find(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	return v.object.Find(key)
}

// FindPath folds Find along keys, short-circuiting on the first miss.
func (v Value) FindPath(keys ...string) (Value, bool) {
	target := v
	for _, key := range keys {
		next, ok := target.Find(key)
		if !ok {
			return Value{}, false
		}
		target = next
	}
	return target, true
}

// Search performs a depth-first search for key over nested Objects, in
// each Object's iteration order. Returns absent if v is not an Object
// or key is not found anywhere in the tree below v.
func (v Value) Search(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	if found, ok := v.object.Find(key); ok {
		return found, true
	}
	var result Value
	found := false
	v.object.Iterate(func(_ string, child Value) bool {
		if r, ok := child.Search(key); ok {
			result, found = r, true
			return false
		}
		return true
	})
	return result, found
}

// --- total ordering ---

func kindRank(k Kind) int {
	switch k {
	case KindNumber:
		return 0
	case KindString:
		return 1
	case KindBoolean:
		return 2
	case KindList:
		return 3
	case KindObject:
		return 4
	case KindNull:
		return 5
	default:
		return 6
	}
}

// Compare returns a negative number if v < other, zero if v == other,
// and a positive number otherwise, per Value's total ordering: variant
// tag precedence Number < String < Boolean < List < Object < Null, and
// the natural order within a tag.
func (v Value) Compare(other Value) int {
	rv, ro := kindRank(v.kind), kindRank(other.kind)
	if rv != ro {
		return rv - ro
	}
	switch v.kind {
	case KindNull:
		return 0
	case KindBoolean:
		return boolCompare(v.boolean, other.boolean)
	case KindNumber:
		switch {
		case v.number < other.number:
			return -1
		case v.number > other.number:
			return 1
		default:
			return 0
		}
	case KindString:
		return strings.Compare(v.str, other.str)
	case KindList:
		return compareLists(v.list, other.list)
	case KindObject:
		return v.object.Compare(other.object)
	default:
		return 0
	}
}

func boolCompare(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func compareLists(a, b []Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// Less reports whether v sorts before other under Compare.
func (v Value) Less(other Value) bool { return v.Compare(other) < 0 }

// Equal reports whether v and other are the same variant with equal
// payloads.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.object.Equal(other.object)
	default:
		return v.Compare(other) == 0
	}
}
