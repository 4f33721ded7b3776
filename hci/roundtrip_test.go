package hci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedWidth reports whether every field has a declared width: no
// repeated groups, no length-referenced blobs, no tails.
func fixedWidth(fields []Field) bool {
	for _, f := range fields {
		if f.Group != nil || f.SizeRef != "" || f.Size == 0 {
			return false
		}
	}
	return true
}

// sampleInt is an in-range two's-complement value for f, varied by
// field position so adjacent fields cannot be confused.
func sampleInt(i int) int64 { return -(int64(i%100) + 2) }

// sampleUint builds a distinct little-endian byte pattern across the
// field's width, capped below the int64 ceiling.
func sampleUint(f Field, i int) int64 {
	n := f.Size
	if n > 7 {
		n = 7
	}
	var v uint64
	for j := 0; j < n; j++ {
		v |= uint64(byte(0x11*(j+1)+i)) << (8 * uint(j))
	}
	return int64(v)
}

func sampleBytes(f Field, i int) []byte {
	b := make([]byte, f.Size)
	for j := range b {
		b[j] = byte(0xA0 + i + j)
	}
	return b
}

// TestFixedWidthSchemasRoundTrip drives every registered command
// whose parameter schema is purely fixed-width through
// encode-then-decode and checks each field comes back attributed to
// the right name with the right value.
func TestFixedWidthSchemasRoundTrip(t *testing.T) {
	r := NewRegistry()
	for _, defs := range [][]CommandDef{standardCommands, vendorCommands} {
		for _, def := range defs {
			if !fixedWidth(def.Params) {
				continue
			}
			def := def
			t.Run(def.QualifiedName(), func(t *testing.T) {
				args := make([]interface{}, len(def.Params))
				for i, f := range def.Params {
					switch f.Type {
					case TypeBytes, TypeAddr:
						args[i] = sampleBytes(f, i)
					case TypeInt:
						args[i] = sampleInt(i)
					default:
						args[i] = uint64(sampleUint(f, i))
					}
				}

				b, err := r.EncodeCommand(def.Opcode, args...)
				require.NoError(t, err)

				c, err := r.DecodeCommand(b)
				require.NoError(t, err)
				require.NotNil(t, c.Params)
				require.Equal(t, len(def.Params), c.Params.Len())

				for i, f := range def.Params {
					p := c.Params.Params()[i]
					require.Equal(t, f.Name, p.Name)
					switch f.Type {
					case TypeBytes, TypeAddr:
						assert.Equal(t, args[i], p.Data, f.Name)
					case TypeInt:
						assert.Equal(t, sampleInt(i), p.Value, f.Name)
					default:
						assert.Equal(t, sampleUint(f, i), p.Value, f.Name)
					}
				}
			})
		}
	}
}
