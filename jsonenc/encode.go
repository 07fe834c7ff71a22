// Package jsonenc implements the Encoder: a schema-directed Emit*
// collaborator surface for a derivation layer, plus a tree-walker that
// emits a jsonvalue.Value directly. Both share one writer and one
// indentation level.
package jsonenc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/lattice-substrate/gojson/jsonerr"
	"github.com/lattice-substrate/gojson/jsonnum"
	"github.com/lattice-substrate/gojson/jsonvalue"
)

// Encoder writes JSON text to an io.Writer. spaces is the number of
// spaces per nesting level (0 disables pretty-printing); indent tracks
// the encoder's current depth in spaces.
type Encoder struct {
	w      io.Writer
	spaces int
	indent int
}

// EncodeOption configures a new Encoder.
type EncodeOption func(*Encoder)

// WithSpaces sets the pretty-printing indent width. 0 (the default)
// disables pretty-printing.
func WithSpaces(spaces int) EncodeOption {
	return func(e *Encoder) { e.spaces = spaces }
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer, opts ...EncodeOption) *Encoder {
	e := &Encoder{w: w}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Encoder) write(s string) error {
	if _, err := io.WriteString(e.w, s); err != nil {
		return jsonerr.NewIoError(err)
	}
	return nil
}

func (e *Encoder) newlineIndent() error {
	if e.spaces <= 0 {
		return nil
	}
	return e.write("\n" + strings.Repeat(" ", e.indent))
}

// --- primitive emitters ---

func (e *Encoder) EmitNil() error { return e.write("null") }

func (e *Encoder) EmitBool(v bool) error {
	if v {
		return e.write("true")
	}
	return e.write("false")
}

func (e *Encoder) EmitF64(v float64) error {
	s, err := jsonnum.FormatNumber(v)
	if err != nil {
		return err
	}
	return e.write(s)
}

func (e *Encoder) EmitF32(v float32) error { return e.EmitF64(float64(v)) }

func (e *Encoder) EmitI8(v int8) error   { return e.EmitF64(float64(v)) }
func (e *Encoder) EmitI16(v int16) error { return e.EmitF64(float64(v)) }
func (e *Encoder) EmitI32(v int32) error { return e.EmitF64(float64(v)) }
func (e *Encoder) EmitI64(v int64) error { return e.EmitF64(float64(v)) }

func (e *Encoder) EmitU8(v uint8) error   { return e.EmitF64(float64(v)) }
func (e *Encoder) EmitU16(v uint16) error { return e.EmitF64(float64(v)) }
func (e *Encoder) EmitU32(v uint32) error { return e.EmitF64(float64(v)) }
func (e *Encoder) EmitU64(v uint64) error { return e.EmitF64(float64(v)) }

func (e *Encoder) EmitChar(v rune) error { return e.EmitStr(string(v)) }

func (e *Encoder) EmitStr(v string) error { return e.write(escapeString(v)) }

// escapeString applies the parser's escape set in reverse: the named
// escapes only, every other character (including non-ASCII) emitted
// verbatim. No \uXXXX escaping of non-ASCII characters.
func escapeString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// --- sequence emitters ---

func (e *Encoder) EmitSeq(length int, body func(*Encoder) error) error {
	if length == 0 {
		return e.write("[]")
	}
	if err := e.write("["); err != nil {
		return err
	}
	e.indent += e.spaces
	if err := body(e); err != nil {
		return err
	}
	e.indent -= e.spaces
	if err := e.newlineIndent(); err != nil {
		return err
	}
	return e.write("]")
}

func (e *Encoder) EmitSeqElt(idx int, body func(*Encoder) error) error {
	if idx != 0 {
		if err := e.write(","); err != nil {
			return err
		}
	}
	if err := e.newlineIndent(); err != nil {
		return err
	}
	return body(e)
}

// --- struct / map emitters ---

func (e *Encoder) EmitStruct(name string, length int, body func(*Encoder) error) error {
	if length == 0 {
		return e.write("{}")
	}
	if err := e.write("{"); err != nil {
		return err
	}
	e.indent += e.spaces
	if err := body(e); err != nil {
		return err
	}
	e.indent -= e.spaces
	if err := e.newlineIndent(); err != nil {
		return err
	}
	return e.write("}")
}

func (e *Encoder) EmitStructField(name string, idx int, body func(*Encoder) error) error {
	if idx != 0 {
		if err := e.write(","); err != nil {
			return err
		}
	}
	if err := e.newlineIndent(); err != nil {
		return err
	}
	if err := e.write(escapeString(name) + ":"); err != nil {
		return err
	}
	return body(e)
}

func (e *Encoder) EmitMap(length int, body func(*Encoder) error) error {
	return e.EmitStruct("", length, body)
}

// EmitMapEltKey buffers the key's encoded form into a scratch encoder,
// then wraps the resulting text in escaped-string form before
// emission. This guarantees a JSON-legal key token for maps keyed by a
// non-string type; the Value-model tree-walker below never calls this
// (jsonvalue.Object keys are always already strings).
func (e *Encoder) EmitMapEltKey(idx int, body func(*Encoder) error) error {
	if idx != 0 {
		if err := e.write(","); err != nil {
			return err
		}
	}
	if err := e.newlineIndent(); err != nil {
		return err
	}
	var buf bytes.Buffer
	check := NewEncoder(&buf)
	if err := body(check); err != nil {
		return err
	}
	if err := e.write(escapeString(buf.String()) + ":"); err != nil {
		return err
	}
	return nil
}

func (e *Encoder) EmitMapEltVal(idx int, body func(*Encoder) error) error {
	return body(e)
}

// --- enum emitters ---

func (e *Encoder) EmitEnum(name string, body func(*Encoder) error) error {
	return body(e)
}

// EmitEnumVariant emits a nullary variant as its bare name, or a
// non-nullary variant as {"variant": name, "fields": [...]}.
func (e *Encoder) EmitEnumVariant(name string, id, cnt int, body func(*Encoder) error) error {
	if cnt == 0 {
		return e.EmitStr(name)
	}
	return e.EmitStruct(name, 2, func(e *Encoder) error {
		if err := e.EmitStructField("variant", 0, func(e *Encoder) error {
			return e.EmitStr(name)
		}); err != nil {
			return err
		}
		return e.EmitStructField("fields", 1, func(e *Encoder) error {
			return e.EmitSeq(cnt, body)
		})
	})
}

func (e *Encoder) EmitEnumVariantArg(idx int, body func(*Encoder) error) error {
	return e.EmitSeqElt(idx, body)
}

// --- option emitters ---

func (e *Encoder) EmitOption(body func(*Encoder) error) error { return body(e) }
func (e *Encoder) EmitOptionNone() error                      { return e.EmitNil() }
func (e *Encoder) EmitOptionSome(body func(*Encoder) error) error {
	return body(e)
}

// --- tuple emitters (aliases of the sequence emitters) ---

func (e *Encoder) EmitTuple(length int, body func(*Encoder) error) error {
	return e.EmitSeq(length, body)
}

func (e *Encoder) EmitTupleArg(idx int, body func(*Encoder) error) error {
	return e.EmitSeqElt(idx, body)
}

// --- Value-model tree-walker ---

// EncodeValue emits v to w. Pretty-printing is controlled by opts.
func EncodeValue(w io.Writer, v jsonvalue.Value, opts ...EncodeOption) error {
	e := NewEncoder(w, opts...)
	return e.encodeValue(v)
}

// Marshal renders v as compact (non-pretty) JSON text.
func Marshal(v jsonvalue.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent renders v as pretty-printed JSON text using spaces
// spaces per nesting level.
func MarshalIndent(v jsonvalue.Value, spaces int) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeValue(&buf, v, WithSpaces(spaces)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) encodeValue(v jsonvalue.Value) error {
	switch v.Kind() {
	case jsonvalue.KindNull:
		return e.EmitNil()
	case jsonvalue.KindBoolean:
		b, _ := v.AsBoolean()
		return e.EmitBool(b)
	case jsonvalue.KindNumber:
		f, _ := v.AsNumber()
		return e.EmitF64(f)
	case jsonvalue.KindString:
		s, _ := v.AsString()
		return e.EmitStr(s)
	case jsonvalue.KindList:
		list, _ := v.AsList()
		return e.encodeList(list)
	case jsonvalue.KindObject:
		obj, _ := v.AsObject()
		return e.encodeObject(obj)
	default:
		return fmt.Errorf("jsonenc: unknown value kind %v", v.Kind())
	}
}

func (e *Encoder) encodeList(list []jsonvalue.Value) error {
	if len(list) == 0 {
		return e.write("[]")
	}
	if err := e.write("["); err != nil {
		return err
	}
	e.indent += e.spaces
	for i, elem := range list {
		if i != 0 {
			if err := e.write(","); err != nil {
				return err
			}
		}
		if err := e.newlineIndent(); err != nil {
			return err
		}
		if err := e.encodeValue(elem); err != nil {
			return err
		}
	}
	e.indent -= e.spaces
	if err := e.newlineIndent(); err != nil {
		return err
	}
	return e.write("]")
}

func (e *Encoder) encodeObject(obj *jsonvalue.Object) error {
	members := obj.Members()
	if len(members) == 0 {
		return e.write("{}")
	}
	if err := e.write("{"); err != nil {
		return err
	}
	e.indent += e.spaces
	for i, m := range members {
		if i != 0 {
			if err := e.write(","); err != nil {
				return err
			}
		}
		if err := e.newlineIndent(); err != nil {
			return err
		}
		if err := e.write(escapeString(m.Key) + ":"); err != nil {
			return err
		}
		if err := e.encodeValue(m.Value); err != nil {
			return err
		}
	}
	e.indent -= e.spaces
	if err := e.newlineIndent(); err != nil {
		return err
	}
	return e.write("}")
}
