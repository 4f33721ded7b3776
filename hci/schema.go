package hci

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// FieldType selects how a field's octets are interpreted.
type FieldType uint8

// Field interpretations. All integers are little-endian on the wire;
// Int fields are two's-complement. Bytes fields keep wire octet order.
const (
	TypeUint FieldType = iota
	TypeInt
	TypeHex
	TypeBytes
	TypeAddr
)

// Field describes one parameter in a command or return schema.
//
// A Field is one of three shapes:
//   - fixed width: Size octets, interpreted per Type;
//   - variable width: Size 0 with SizeRef naming an earlier count
//     field, or Size 0 with no refs to consume the remaining payload;
//   - repeated group: Group is non-nil and the group is decoded
//     CountRef-many times, each iteration walking Group in order.
type Field struct {
	Name     string
	Size     int
	Type     FieldType
	SizeRef  string
	CountRef string
	Group    []Field
}

// Schema construction helpers, used by the built-in tables and by
// vendor-specific registration.

// U8 declares a 1-octet unsigned field.
func U8(name string) Field { return Field{Name: name, Size: 1} }

// U16 declares a 2-octet little-endian unsigned field.
func U16(name string) Field { return Field{Name: name, Size: 2} }

// U24 declares a 3-octet little-endian unsigned field.
func U24(name string) Field { return Field{Name: name, Size: 3} }

// U32 declares a 4-octet little-endian unsigned field.
func U32(name string) Field { return Field{Name: name, Size: 4} }

// U64 declares an 8-octet little-endian unsigned field.
func U64(name string) Field { return Field{Name: name, Size: 8} }

// S8 declares a 1-octet two's-complement field (RSSI, TX power).
func S8(name string) Field { return Field{Name: name, Size: 1, Type: TypeInt} }

// S16 declares a 2-octet two's-complement field.
func S16(name string) Field { return Field{Name: name, Size: 2, Type: TypeInt} }

// Hex8 declares a 1-octet field rendered in hexadecimal.
func Hex8(name string) Field { return Field{Name: name, Size: 1, Type: TypeHex} }

// Hex16 declares a 2-octet field rendered in hexadecimal.
func Hex16(name string) Field { return Field{Name: name, Size: 2, Type: TypeHex} }

// Hex32 declares a 4-octet field rendered in hexadecimal.
func Hex32(name string) Field { return Field{Name: name, Size: 4, Type: TypeHex} }

// Hex64 declares an 8-octet field rendered in hexadecimal.
func Hex64(name string) Field { return Field{Name: name, Size: 8, Type: TypeHex} }

// Addr declares a 6-octet device address field, wire octet order.
func Addr(name string) Field { return Field{Name: name, Size: 6, Type: TypeAddr} }

// Raw declares a fixed-width byte-array field, wire octet order.
func Raw(name string, size int) Field { return Field{Name: name, Size: size, Type: TypeBytes} }

// Var declares a byte-array field whose length was carried by the
// earlier field named by sizeRef.
func Var(name, sizeRef string) Field { return Field{Name: name, Type: TypeBytes, SizeRef: sizeRef} }

// Tail declares a byte-array field consuming the remaining payload.
func Tail(name string) Field { return Field{Name: name, Type: TypeBytes} }

// Rep declares a repeated group decoded countRef-many times.
func Rep(countRef string, fields ...Field) Field {
	return Field{CountRef: countRef, Group: fields}
}

// Param is one decoded field value. Integer fields populate Value;
// byte-array fields populate Data. Index is the iteration ordinal for
// fields decoded inside a repeated group, -1 otherwise.
type Param struct {
	Name  string
	Type  FieldType
	Value int64
	Data  []byte
	Index int
}

func (p Param) String() string {
	switch p.Type {
	case TypeHex:
		return fmt.Sprintf("0x%X", uint64(p.Value))
	case TypeAddr:
		if len(p.Data) == 6 {
			a := p.Data
			return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", a[5], a[4], a[3], a[2], a[1], a[0])
		}
		return fmt.Sprintf("% X", p.Data)
	case TypeBytes:
		return fmt.Sprintf("% X", p.Data)
	}
	return fmt.Sprintf("%d", p.Value)
}

// Label returns the parameter name, with the group iteration ordinal
// appended for repeated fields.
func (p Param) Label() string {
	if p.Index >= 0 {
		return fmt.Sprintf("%s[%d]", p.Name, p.Index)
	}
	return p.Name
}

// Record holds the ordered, named fields decoded from one payload.
type Record struct {
	params []Param
}

// Params returns the decoded fields in wire order.
func (r *Record) Params() []Param { return r.params }

// Len returns the number of decoded fields.
func (r *Record) Len() int { return len(r.params) }

// Get returns the first field with the given name.
func (r *Record) Get(name string) (Param, bool) {
	for _, p := range r.params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// At returns the field with the given name from group iteration i.
func (r *Record) At(name string, i int) (Param, bool) {
	for _, p := range r.params {
		if p.Name == name && p.Index == i {
			return p, true
		}
	}
	return Param{}, false
}

// Uint returns the unsigned value of the named field, or 0 when the
// field is absent.
func (r *Record) Uint(name string) uint64 {
	p, ok := r.Get(name)
	if !ok {
		return 0
	}
	return uint64(p.Value)
}

// Int returns the signed value of the named field, or 0 when absent.
func (r *Record) Int(name string) int64 {
	p, _ := r.Get(name)
	return p.Value
}

// Bytes returns the byte-array value of the named field.
func (r *Record) Bytes(name string) []byte {
	p, _ := r.Get(name)
	return p.Data
}

// decodeValue interprets b per the field type. Signed fields are
// sign-extended from their declared width; sentinel octets (for
// example RSSI 0x7F) survive untouched.
func decodeValue(f Field, b []byte) int64 {
	var u uint64
	for i, c := range b {
		u |= uint64(c) << (8 * uint(i))
	}
	if f.Type != TypeInt {
		return int64(u)
	}
	shift := 64 - 8*uint(len(b))
	return int64(u<<shift) >> shift
}

// walkSchema decodes b against schema, returning the ordered fields
// and the number of octets consumed. The count field of a repeated
// group and the size field of a variable tail must precede their
// reference; the most recently decoded value wins, which is what lets
// a length-prefixed blob inside a group iteration resolve against that
// iteration's own length octet.
func walkSchema(schema []Field, b []byte) (*Record, int, error) {
	rec := &Record{}
	last := make(map[string]int64)
	n, err := walkFields(schema, b, 0, -1, rec, last)
	if err != nil {
		return nil, n, err
	}
	return rec, n, nil
}

func walkFields(fields []Field, b []byte, off, idx int, rec *Record, last map[string]int64) (int, error) {
	for _, f := range fields {
		if f.Group != nil {
			count, ok := last[f.CountRef]
			if !ok {
				return off, errors.Errorf("hci: group references undecoded count field %q", f.CountRef)
			}
			for i := 0; i < int(count); i++ {
				var err error
				off, err = walkFields(f.Group, b, off, i, rec, last)
				if err != nil {
					return off, err
				}
			}
			continue
		}

		size := f.Size
		if f.SizeRef != "" {
			ref, ok := last[f.SizeRef]
			if !ok {
				return off, errors.Errorf("hci: field %s references undecoded size field %q", f.Name, f.SizeRef)
			}
			size = int(ref)
		} else if size == 0 {
			size = len(b) - off
		}
		if off+size > len(b) {
			return off, errors.Errorf("hci: field %s needs %d octet(s), %d remain", f.Name, size, len(b)-off)
		}

		p := Param{Name: f.Name, Type: f.Type, Index: idx}
		if f.Type == TypeBytes || f.Type == TypeAddr {
			p.Data = append([]byte(nil), b[off:off+size]...)
		} else {
			p.Value = decodeValue(f, b[off:off+size])
			last[f.Name] = p.Value
		}
		rec.params = append(rec.params, p)
		off += size
	}
	return off, nil
}

// putUint appends v to b as size little-endian octets.
func putUint(b []byte, v uint64, size int) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(b, tmp[:size]...)
}
