// Package jsondecode implements the Typed-Decoder Facade: a
// schema-directed decoding API over a JSON document, driven by a
// consumer (hand-written here, generated by a derivation layer in a
// full distribution) that requests each field/element in traversal
// order. The document is parsed into a jsonvalue.Value tree on first
// use, then walked by pushing children onto an explicit stack and
// popping them in the order the consumer asks for them.
package jsondecode

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lattice-substrate/gojson/jsonenc"
	"github.com/lattice-substrate/gojson/jsonerr"
	"github.com/lattice-substrate/gojson/jsonnum"
	"github.com/lattice-substrate/gojson/jsonparse"
	"github.com/lattice-substrate/gojson/jsonvalue"
)

// Decoder walks one parsed JSON document. The zero value is not
// usable; construct with NewFromReader/NewFromString/NewFromBytes.
type Decoder struct {
	src    io.RuneReader
	parsed bool
	stack  []jsonvalue.Value
}

// NewFromReader returns a Decoder reading its document lazily from r
// on first access.
func NewFromReader(r io.RuneReader) *Decoder {
	return &Decoder{src: r}
}

// NewFromString returns a Decoder over s.
func NewFromString(s string) *Decoder {
	return NewFromReader(strings.NewReader(s))
}

// NewFromBytes returns a Decoder over b, which must be valid UTF-8.
func NewFromBytes(b []byte) (*Decoder, error) {
	if !utf8.Valid(b) {
		return nil, jsonerr.NewParseError("contents not utf-8", 0, 0)
	}
	return NewFromString(string(b)), nil
}

// pop parses the document on first call (the unparsed -> parsed
// transition), then pops the top of the stack.
func (d *Decoder) pop() (jsonvalue.Value, error) {
	if !d.parsed {
		v, err := jsonparse.Parse(d.src)
		if err != nil {
			return jsonvalue.Value{}, err
		}
		d.stack = append(d.stack, v)
		d.parsed = true
	}
	if len(d.stack) == 0 {
		return jsonvalue.Value{}, jsonerr.NewExpectedError("value", "end of input")
	}
	n := len(d.stack) - 1
	v := d.stack[n]
	d.stack = d.stack[:n]
	return v, nil
}

func (d *Decoder) push(v jsonvalue.Value) {
	d.stack = append(d.stack, v)
}

// renderValue renders v as compact JSON text for use in an
// ExpectedError's "actual" field.
func renderValue(v jsonvalue.Value) string {
	b, err := jsonenc.Marshal(v)
	if err != nil {
		return v.Kind().String()
	}
	return string(b)
}

// --- primitive reads ---

// ReadNil expects Null.
func (d *Decoder) ReadNil() error {
	v, err := d.pop()
	if err != nil {
		return err
	}
	if !v.IsNull() {
		return jsonerr.NewExpectedError("Null", renderValue(v))
	}
	return nil
}

// ReadBool expects Boolean.
func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.pop()
	if err != nil {
		return false, err
	}
	b, ok := v.AsBoolean()
	if !ok {
		return false, jsonerr.NewExpectedError("Boolean", renderValue(v))
	}
	return b, nil
}

// ReadF64 expects Number; if the popped value is a String instead, it
// falls back to parsing the string under the number grammar, so a map
// keyed by a numeric type round-trips through JSON's string-only keys.
func (d *Decoder) ReadF64() (float64, error) {
	v, err := d.pop()
	if err != nil {
		return 0, err
	}
	if f, ok := v.AsNumber(); ok {
		return f, nil
	}
	if s, ok := v.AsString(); ok {
		f, err := jsonnum.ParseNumberString(s)
		if err != nil {
			return 0, jsonerr.NewExpectedError("Number", renderValue(v))
		}
		return f, nil
	}
	return 0, jsonerr.NewExpectedError("Number", renderValue(v))
}

func (d *Decoder) ReadF32() (float32, error) {
	f, err := d.ReadF64()
	return float32(f), err
}

func (d *Decoder) ReadI8() (int8, error) {
	f, err := d.ReadF64()
	return int8(f), err
}

func (d *Decoder) ReadI16() (int16, error) {
	f, err := d.ReadF64()
	return int16(f), err
}

func (d *Decoder) ReadI32() (int32, error) {
	f, err := d.ReadF64()
	return int32(f), err
}

func (d *Decoder) ReadI64() (int64, error) {
	f, err := d.ReadF64()
	return int64(f), err
}

func (d *Decoder) ReadU8() (uint8, error) {
	f, err := d.ReadF64()
	return uint8(f), err
}

func (d *Decoder) ReadU16() (uint16, error) {
	f, err := d.ReadF64()
	return uint16(f), err
}

func (d *Decoder) ReadU32() (uint32, error) {
	f, err := d.ReadF64()
	return uint32(f), err
}

func (d *Decoder) ReadU64() (uint64, error) {
	f, err := d.ReadF64()
	return uint64(f), err
}

// ReadChar expects a String of exactly one Unicode scalar value.
func (d *Decoder) ReadChar() (rune, error) {
	v, err := d.pop()
	if err != nil {
		return 0, err
	}
	s, ok := v.AsString()
	if !ok {
		return 0, jsonerr.NewExpectedError("single character string", renderValue(v))
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, jsonerr.NewExpectedError("single character string", strconv.Quote(s))
	}
	return runes[0], nil
}

// ReadStr expects String.
func (d *Decoder) ReadStr() (string, error) {
	v, err := d.pop()
	if err != nil {
		return "", err
	}
	s, ok := v.AsString()
	if !ok {
		return "", jsonerr.NewExpectedError("String", renderValue(v))
	}
	return s, nil
}

// --- struct reads ---

// ReadStruct expects an Object, runs body, then discards the Object.
func (d *Decoder) ReadStruct(name string, length int, body func(*Decoder) error) error {
	if err := body(d); err != nil {
		return err
	}
	v, err := d.pop()
	if err != nil {
		return err
	}
	if !v.IsObject() {
		return jsonerr.NewExpectedError("Object", renderValue(v))
	}
	return nil
}

// ReadStructField pops the Object left on the stack by ReadStruct,
// removes its entry for name (MissingFieldError if absent), pushes the
// removed value, runs body, then re-pushes the remainder Object so a
// later field read (or ReadStruct's final pop) finds it.
func (d *Decoder) ReadStructField(name string, idx int, body func(*Decoder) error) error {
	v, err := d.pop()
	if err != nil {
		return err
	}
	obj, ok := v.AsObject()
	if !ok {
		return jsonerr.NewExpectedError("Object", renderValue(v))
	}
	field, ok := obj.Delete(name)
	if !ok {
		return jsonerr.NewMissingFieldError(name)
	}
	d.push(field)
	if err := body(d); err != nil {
		return err
	}
	d.push(jsonvalue.Obj(obj))
	return nil
}

// --- enum reads ---

// ReadEnumVariant accepts a String (nullary variant name) or an Object
// of shape {"variant": <string>, "fields": <list>}, pushing the list
// elements in reverse so body's subsequent ReadEnumVariantArg calls
// pull them left-to-right.
func (d *Decoder) ReadEnumVariant(names []string, body func(*Decoder, int) error) error {
	v, err := d.pop()
	if err != nil {
		return err
	}

	var name string
	switch {
	case v.IsString():
		name, _ = v.AsString()
	case v.IsObject():
		obj, _ := v.AsObject()
		variantVal, ok := obj.Find("variant")
		if !ok {
			return jsonerr.NewMissingFieldError("variant")
		}
		vname, ok := variantVal.AsString()
		if !ok {
			return jsonerr.NewExpectedError("String", renderValue(variantVal))
		}
		fieldsVal, ok := obj.Find("fields")
		if !ok {
			return jsonerr.NewMissingFieldError("fields")
		}
		fields, ok := fieldsVal.AsList()
		if !ok {
			return jsonerr.NewExpectedError("List", renderValue(fieldsVal))
		}
		for i := len(fields) - 1; i >= 0; i-- {
			d.push(fields[i])
		}
		name = vname
	default:
		return jsonerr.NewExpectedError("String or Object", renderValue(v))
	}

	idx := indexOf(names, name)
	if idx < 0 {
		return jsonerr.NewUnknownVariantError(name)
	}
	return body(d, idx)
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func (d *Decoder) ReadEnumVariantArg(idx int, body func(*Decoder) error) error {
	return body(d)
}

// --- sequence reads ---

// ReadSeq expects a List; pushes all elements in reverse onto the
// stack and passes the length to body, which must issue exactly that
// many ReadSeqElt calls.
func (d *Decoder) ReadSeq(body func(*Decoder, int) error) error {
	v, err := d.pop()
	if err != nil {
		return err
	}
	list, ok := v.AsList()
	if !ok {
		return jsonerr.NewExpectedError("List", renderValue(v))
	}
	for i := len(list) - 1; i >= 0; i-- {
		d.push(list[i])
	}
	return body(d, len(list))
}

func (d *Decoder) ReadSeqElt(idx int, body func(*Decoder) error) error {
	return body(d)
}

// --- map reads ---

// ReadMap expects an Object; for each entry it pushes value then key
// (so a subsequent key read pops the key first) and passes the entry
// count to body.
func (d *Decoder) ReadMap(body func(*Decoder, int) error) error {
	v, err := d.pop()
	if err != nil {
		return err
	}
	obj, ok := v.AsObject()
	if !ok {
		return jsonerr.NewExpectedError("Object", renderValue(v))
	}
	members := obj.Members()
	for i := len(members) - 1; i >= 0; i-- {
		d.push(members[i].Value)
		d.push(jsonvalue.Str(members[i].Key))
	}
	return body(d, len(members))
}

func (d *Decoder) ReadMapEltKey(idx int, body func(*Decoder) error) error {
	return body(d)
}

func (d *Decoder) ReadMapEltVal(idx int, body func(*Decoder) error) error {
	return body(d)
}

// --- option reads ---

// ReadOption consumes a Null top-of-stack and calls body(false); any
// other value is re-pushed and body(true) is called.
func (d *Decoder) ReadOption(body func(*Decoder, bool) error) error {
	v, err := d.pop()
	if err != nil {
		return err
	}
	if v.IsNull() {
		return body(d, false)
	}
	d.push(v)
	return body(d, true)
}

// --- tuple reads (aliases of the sequence reads) ---

func (d *Decoder) ReadTuple(body func(*Decoder, int) error) error {
	return d.ReadSeq(body)
}

func (d *Decoder) ReadTupleArg(idx int, body func(*Decoder) error) error {
	return d.ReadSeqElt(idx, body)
}

func (d *Decoder) ReadTupleStruct(name string, body func(*Decoder, int) error) error {
	return d.ReadSeq(body)
}

func (d *Decoder) ReadTupleStructArg(idx int, body func(*Decoder) error) error {
	return d.ReadSeqElt(idx, body)
}
