package hci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpcodeComposition(t *testing.T) {
	assert.Equal(t, Opcode(0x0C03), OpReset)
	assert.Equal(t, Opcode(0x2006), OpLESetAdvParam)
	assert.Equal(t, Opcode(0xFFF0), OpVSSetBDAddr)

	assert.Equal(t, uint8(0x3F), OpVSSetBDAddr.OGF())
	assert.Equal(t, uint16(0x3F0), OpVSSetBDAddr.OCF())
}

func TestLookupName(t *testing.T) {
	r := NewRegistry()

	d, err := r.LookupName("CONTROLLER.RESET")
	require.NoError(t, err)
	assert.Equal(t, OpReset, d.Opcode)

	// Same short name in two groups stays unambiguous.
	d, err = r.LookupName("LE_CONTROLLER.SET_EVENT_MASK")
	require.NoError(t, err)
	assert.Equal(t, OpLESetEventMask, d.Opcode)
	d, err = r.LookupName("VENDOR_SPEC.SET_EVENT_MASK")
	require.NoError(t, err)
	assert.Equal(t, OpVSSetEventMask, d.Opcode)

	_, err = r.LookupName("CONTROLLER.NO_SUCH_CMD")
	var unknown *UnknownOpcodeError
	require.ErrorAs(t, err, &unknown)
}

func TestRegisterVendorCommand(t *testing.T) {
	r := NewRegistry()
	op := NewOpcode(OGFVendorSpec, 0x2A0)
	err := r.Register(CommandDef{
		Name:    "FROB_RADIO",
		Opcode:  op,
		Params:  []Field{U8("Mode")},
		Returns: []Field{U8("Status"), U16("Result")},
	})
	require.NoError(t, err)

	b, err := r.EncodeCommand(op, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0xA0, 0xFE, 0x01, 0x02}, b)

	e, err := r.DecodeEvent([]byte{0x04, 0x0E, 0x06, 0x01, 0xA0, 0xFE, 0x00, 0x34, 0x12})
	require.NoError(t, err)
	assert.True(t, e.Success())
	assert.Equal(t, uint64(0x1234), e.Params.Uint("Result"))
}

func TestRegisterNeedsName(t *testing.T) {
	r := NewRegistry()
	err := r.Register(CommandDef{Opcode: NewOpcode(OGFVendorSpec, 0x2A1)})
	require.Error(t, err)
}

func TestRegisterSubevent(t *testing.T) {
	r := NewRegistry()
	r.RegisterSubevent(SubeventCode(0x20), []Field{U16("Sync_Handle")})

	e, err := r.DecodeEvent([]byte{0x04, 0x3E, 0x03, 0x20, 0x10, 0x00})
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0010), e.Params.Uint("Sync_Handle"))
}

func TestUnknownSubeventPreservesRaw(t *testing.T) {
	r := NewRegistry()
	e, err := r.DecodeEvent([]byte{0x04, 0x3E, 0x03, 0x7E, 0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, SubeventCode(0x7E), e.Subcode)
	assert.Equal(t, []byte{0x01, 0x02}, e.Raw)
}

func TestBuiltinTablesAreWellFormed(t *testing.T) {
	r := NewRegistry()
	for _, defs := range [][]CommandDef{standardCommands, vendorCommands} {
		for i := range defs {
			d, err := r.Lookup(defs[i].Opcode)
			require.NoError(t, err)
			assert.NotEmpty(t, d.Name)
		}
	}
}
