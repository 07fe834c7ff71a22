package jsondecode

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lattice-substrate/gojson/jsonerr"
)

func TestReadScalars(t *testing.T) {
	d := NewFromString(`[null,true,false,1.0,"hi"]`)
	var n int
	var elt1, elt2 bool
	var elt3 float64
	var elt4 string
	err := d.ReadSeq(func(d *Decoder, length int) error {
		n = length
		if err := d.ReadSeqElt(0, func(d *Decoder) error { return d.ReadNil() }); err != nil {
			return err
		}
		if err := d.ReadSeqElt(1, func(d *Decoder) error {
			v, err := d.ReadBool()
			elt1 = v
			return err
		}); err != nil {
			return err
		}
		if err := d.ReadSeqElt(2, func(d *Decoder) error {
			v, err := d.ReadBool()
			elt2 = v
			return err
		}); err != nil {
			return err
		}
		if err := d.ReadSeqElt(3, func(d *Decoder) error {
			v, err := d.ReadF64()
			elt3 = v
			return err
		}); err != nil {
			return err
		}
		return d.ReadSeqElt(4, func(d *Decoder) error {
			v, err := d.ReadStr()
			elt4 = v
			return err
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("length = %d, want 5", n)
	}
	if !elt1 || elt2 || elt3 != 1.0 || elt4 != "hi" {
		t.Fatalf("decoded elements = (%v,%v,%v,%q), want (true,false,1,hi)", elt1, elt2, elt3, elt4)
	}
}

// TestReadSeqOrderMatchesDocument covers the reverse-push load-bearing
// detail: a sequence with >= 2 elements must be consumed in document
// order by the body, not reversed.
func TestReadSeqOrderMatchesDocument(t *testing.T) {
	d := NewFromString(`[10,20,30]`)
	var got []int64
	err := d.ReadSeq(func(d *Decoder, length int) error {
		for i := 0; i < length; i++ {
			if err := d.ReadSeqElt(i, func(d *Decoder) error {
				v, err := d.ReadI64()
				got = append(got, v)
				return err
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{10, 20, 30}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadSeq order mismatch (-want +got):\n%s", diff)
	}
}

func TestReadStructField(t *testing.T) {
	d := NewFromString(`{"a":1.0,"b":[true]}`)
	type record struct {
		A float64
		B []bool
	}
	var rec record
	err := d.ReadStruct("record", 2, func(d *Decoder) error {
		if err := d.ReadStructField("a", 0, func(d *Decoder) error {
			v, err := d.ReadF64()
			rec.A = v
			return err
		}); err != nil {
			return err
		}
		return d.ReadStructField("b", 1, func(d *Decoder) error {
			return d.ReadSeq(func(d *Decoder, length int) error {
				rec.B = make([]bool, length)
				for i := 0; i < length; i++ {
					if err := d.ReadSeqElt(i, func(d *Decoder) error {
						v, err := d.ReadBool()
						rec.B[i] = v
						return err
					}); err != nil {
						return err
					}
				}
				return nil
			})
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.A != 1.0 || len(rec.B) != 1 || !rec.B[0] {
		t.Fatalf("decoded record = %+v, want {A:1 B:[true]}", rec)
	}
}

func TestReadStructFieldMissing(t *testing.T) {
	d := NewFromString(`{"a":1.0}`)
	err := d.ReadStruct("record", 1, func(d *Decoder) error {
		return d.ReadStructField("b", 0, func(d *Decoder) error {
			_, err := d.ReadF64()
			return err
		})
	})
	mfe, ok := err.(*jsonerr.MissingFieldError)
	if !ok {
		t.Fatalf("err type = %T, want *jsonerr.MissingFieldError", err)
	}
	if mfe.Field != "b" {
		t.Fatalf("missing field = %q, want b", mfe.Field)
	}
}

func TestReadEnumVariantNullary(t *testing.T) {
	d := NewFromString(`"Bunny"`)
	names := []string{"Bunny", "Frog"}
	err := d.ReadEnumVariant(names, func(d *Decoder, idx int) error {
		if names[idx] != "Bunny" {
			t.Fatalf("variant idx = %d, want Bunny", idx)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadEnumVariantWithFields(t *testing.T) {
	d := NewFromString(`{"variant":"Frog","fields":["Henry",349]}`)
	names := []string{"Bunny", "Frog"}
	var name string
	var age int64
	err := d.ReadEnumVariant(names, func(d *Decoder, idx int) error {
		if names[idx] != "Frog" {
			t.Fatalf("variant idx = %d, want Frog", idx)
		}
		if length := len(d.stack); length != 2 {
			t.Fatalf("fields length = %d, want 2", length)
		}
		if err := d.ReadEnumVariantArg(0, func(d *Decoder) error {
			s, err := d.ReadStr()
			name = s
			return err
		}); err != nil {
			return err
		}
		return d.ReadEnumVariantArg(1, func(d *Decoder) error {
			v, err := d.ReadI64()
			age = v
			return err
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	if name != "Henry" || age != 349 {
		t.Fatalf("decoded variant = (%q, %d), want (Henry, 349)", name, age)
	}
}

func TestReadEnumVariantUnknown(t *testing.T) {
	d := NewFromString(`"Kraken"`)
	err := d.ReadEnumVariant([]string{"Bunny", "Frog"}, func(*Decoder, int) error { return nil })
	uve, ok := err.(*jsonerr.UnknownVariantError)
	if !ok {
		t.Fatalf("err type = %T, want *jsonerr.UnknownVariantError", err)
	}
	if uve.Name != "Kraken" {
		t.Fatalf("unknown variant name = %q, want Kraken", uve.Name)
	}
}

func TestReadMap(t *testing.T) {
	d := NewFromString(`{"1":true,"2":false}`)
	got := map[int64]bool{}
	err := d.ReadMap(func(d *Decoder, length int) error {
		for i := 0; i < length; i++ {
			var key int64
			if err := d.ReadMapEltKey(i, func(d *Decoder) error {
				v, err := d.ReadI64()
				key = v
				return err
			}); err != nil {
				return err
			}
			if err := d.ReadMapEltVal(i, func(d *Decoder) error {
				v, err := d.ReadBool()
				got[key] = v
				return err
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := map[int64]bool{1: true, 2: false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadMap mismatch (-want +got):\n%s", diff)
	}
}

func TestReadF64NumericKeyFallback(t *testing.T) {
	d := NewFromString(`"42.5"`)
	f, err := d.ReadF64()
	if err != nil {
		t.Fatal(err)
	}
	if f != 42.5 {
		t.Fatalf("ReadF64 string fallback = %v, want 42.5", f)
	}
}

func TestReadOption(t *testing.T) {
	for _, tc := range []struct {
		in       string
		wantSome bool
	}{
		{"null", false},
		{"5.0", true},
	} {
		d := NewFromString(tc.in)
		var some bool
		var value float64
		err := d.ReadOption(func(d *Decoder, isSome bool) error {
			some = isSome
			if isSome {
				v, err := d.ReadF64()
				value = v
				return err
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if some != tc.wantSome {
			t.Fatalf("ReadOption(%q) isSome = %v, want %v", tc.in, some, tc.wantSome)
		}
		if tc.wantSome && value != 5.0 {
			t.Fatalf("ReadOption(%q) value = %v, want 5.0", tc.in, value)
		}
	}
}

func TestReadCharSingle(t *testing.T) {
	d := NewFromString(`"x"`)
	r, err := d.ReadChar()
	if err != nil {
		t.Fatal(err)
	}
	if r != 'x' {
		t.Fatalf("ReadChar = %q, want x", r)
	}
}

func TestReadCharMultipleFails(t *testing.T) {
	d := NewFromString(`"xy"`)
	_, err := d.ReadChar()
	if _, ok := err.(*jsonerr.ExpectedError); !ok {
		t.Fatalf("err type = %T, want *jsonerr.ExpectedError", err)
	}
}

func TestNewFromBytesInvalidUTF8(t *testing.T) {
	_, err := NewFromBytes([]byte{0xff, 0xfe})
	if _, ok := err.(*jsonerr.ParseError); !ok {
		t.Fatalf("err type = %T, want *jsonerr.ParseError", err)
	}
}
