package hci

import (
	"github.com/pkg/errors"
)

// EncodeCommand serializes a command packet:
//
//	[type:1][opcode:2][param_len:1][params]
//
// Arguments are supplied in declared schema order. Integer arguments
// are range-checked against their field width; byte-slice arguments
// (addresses, keys, data blobs) are written in the literal wire octet
// order given, never reformatted. The encoder is a pure
// transformation; the caller owns writing the result to the
// transport.
func (r *Registry) EncodeCommand(op Opcode, args ...interface{}) ([]byte, error) {
	def, err := r.Lookup(op)
	if err != nil {
		return nil, err
	}
	params, err := encodeParams(def.Params, args)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s", def.QualifiedName())
	}
	if len(params) > MaxParamLen {
		return nil, &ParameterRangeError{Field: "Parameter_Total_Length", Value: len(params), Size: 1}
	}

	b := make([]byte, 0, 4+len(params))
	b = append(b, byte(PacketTypeCommand))
	b = append(b, byte(op), byte(op>>8))
	b = append(b, byte(len(params)))
	return append(b, params...), nil
}

// EncodeExtended serializes the vendor extended command packet, which
// carries a 16-bit parameter length:
//
//	[type:1][opcode:2][param_len:2][params]
func (r *Registry) EncodeExtended(op Opcode, payload []byte) ([]byte, error) {
	if len(payload) > 0xFFFF {
		return nil, &ParameterRangeError{Field: "Parameter_Total_Length", Value: len(payload), Size: 2}
	}
	b := make([]byte, 0, 5+len(payload))
	b = append(b, byte(PacketTypeExtended))
	b = append(b, byte(op), byte(op>>8))
	b = append(b, byte(len(payload)), byte(len(payload)>>8))
	return append(b, payload...), nil
}

func encodeParams(schema []Field, args []interface{}) ([]byte, error) {
	if len(args) != len(schema) {
		return nil, errors.Errorf("want %d parameter(s), got %d", len(schema), len(args))
	}
	var out []byte
	for i, f := range schema {
		var err error
		out, err = encodeParam(out, f, args[i])
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func encodeParam(out []byte, f Field, arg interface{}) ([]byte, error) {
	if f.Group != nil {
		return nil, errors.Errorf("field %s: repeated groups are not encodable", f.CountRef)
	}

	switch f.Type {
	case TypeBytes, TypeAddr:
		b, ok := arg.([]byte)
		if !ok {
			return nil, errors.Errorf("field %s: want []byte, got %T", f.Name, arg)
		}
		if f.Size > 0 && len(b) != f.Size {
			return nil, &ParameterRangeError{Field: f.Name, Value: len(b), Size: f.Size}
		}
		return append(out, b...), nil
	}

	size := f.Size
	if size == 0 {
		return nil, errors.Errorf("field %s: variable integer fields are not encodable", f.Name)
	}

	if f.Type == TypeInt {
		v, err := toInt64(f, arg)
		if err != nil {
			return nil, err
		}
		lo := int64(-1) << (8*uint(size) - 1)
		hi := -lo - 1
		if v < lo || v > hi {
			return nil, &ParameterRangeError{Field: f.Name, Value: v, Size: size}
		}
		return putUint(out, uint64(v), size), nil
	}

	v, err := toUint64(f, arg)
	if err != nil {
		return nil, err
	}
	if size < 8 && v >= 1<<(8*uint(size)) {
		return nil, &ParameterRangeError{Field: f.Name, Value: v, Size: size}
	}
	return putUint(out, v, size), nil
}

func toUint64(f Field, arg interface{}) (uint64, error) {
	switch v := arg.(type) {
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case uint8:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint64:
		return v, nil
	case uint:
		return uint64(v), nil
	case int:
		if v < 0 {
			return 0, &ParameterRangeError{Field: f.Name, Value: v, Size: f.Size}
		}
		return uint64(v), nil
	case StatusCode:
		return uint64(v), nil
	case Opcode:
		return uint64(v), nil
	}
	return 0, errors.Errorf("field %s: want unsigned integer, got %T", f.Name, arg)
}

func toInt64(f Field, arg interface{}) (int64, error) {
	switch v := arg.(type) {
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	}
	return 0, errors.Errorf("field %s: want signed integer, got %T", f.Name, arg)
}
