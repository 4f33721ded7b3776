package hci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeReset(t *testing.T) {
	r := NewRegistry()
	b, err := r.EncodeCommand(OpReset)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x03, 0x0C, 0x00}, b)
}

func TestEncodeDisconnect(t *testing.T) {
	r := NewRegistry()
	b, err := r.EncodeCommand(OpDisconnect, uint16(0x0041), 0x16)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x06, 0x04, 0x03, 0x41, 0x00, 0x16}, b)
}

func TestEncodeAddressWireOrder(t *testing.T) {
	r := NewRegistry()
	// 00:11:22:33:44:55 is carried LSB first on the wire; the encoder
	// writes the slice exactly as given.
	addr := []byte{0x55, 0x44, 0x33, 0x22, 0x11, 0x00}
	b, err := r.EncodeCommand(OpVSSetBDAddr, addr)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0xF0, 0xFF, 0x06, 0x55, 0x44, 0x33, 0x22, 0x11, 0x00}, b)
}

func TestEncodeWidthBoundary(t *testing.T) {
	r := NewRegistry()

	// 255 is the last encodable value of a 1-octet field.
	b, err := r.EncodeCommand(OpLESetAdvEnable, 255)
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), b[4])

	_, err = r.EncodeCommand(OpLESetAdvEnable, 256)
	require.Error(t, err)
	var rangeErr *ParameterRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "Advertising_Enable", rangeErr.Field)

	_, err = r.EncodeCommand(OpLESetScanParam, 1, 0x10000, 0x10, 0, 0)
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "LE_Scan_Interval", rangeErr.Field)
}

func TestEncodeSignedRange(t *testing.T) {
	r := NewRegistry()

	b, err := r.EncodeCommand(OpVSSetAdvTxPower, int8(-10))
	require.NoError(t, err)
	assert.Equal(t, byte(0xF6), b[4])

	var rangeErr *ParameterRangeError
	_, err = r.EncodeCommand(OpVSSetAdvTxPower, 128)
	require.ErrorAs(t, err, &rangeErr)
	_, err = r.EncodeCommand(OpVSSetAdvTxPower, -129)
	require.ErrorAs(t, err, &rangeErr)
}

func TestEncodeNegativeForUnsignedField(t *testing.T) {
	r := NewRegistry()
	var rangeErr *ParameterRangeError
	_, err := r.EncodeCommand(OpLESetAdvEnable, -1)
	require.ErrorAs(t, err, &rangeErr)
}

func TestEncodeUnknownOpcode(t *testing.T) {
	r := NewRegistry()
	_, err := r.EncodeCommand(NewOpcode(OGFLEController, 0x3F3))
	var unknown *UnknownOpcodeError
	require.ErrorAs(t, err, &unknown)
}

func TestEncodeArgumentCount(t *testing.T) {
	r := NewRegistry()
	_, err := r.EncodeCommand(OpDisconnect, uint16(0x0041))
	require.Error(t, err)
}

func TestEncodeByteFieldSize(t *testing.T) {
	r := NewRegistry()
	var rangeErr *ParameterRangeError
	_, err := r.EncodeCommand(OpVSSetBDAddr, []byte{0x01, 0x02})
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 6, rangeErr.Size)
}

func TestEncodeVendorTxTest(t *testing.T) {
	r := NewRegistry()
	b, err := r.EncodeCommand(OpVSTxTest, 0, 255, 0, 1, uint16(1000))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x03, 0xFF, 0x06, 0x00, 0xFF, 0x00, 0x01, 0xE8, 0x03}, b)
}

func TestEncodeExtended(t *testing.T) {
	r := NewRegistry()
	payload := make([]byte, 300)
	b, err := r.EncodeExtended(OpVSRegWrite, payload)
	require.NoError(t, err)
	assert.Equal(t, byte(0x09), b[0])
	assert.Equal(t, byte(0x2C), b[3]) // 300 = 0x012C
	assert.Equal(t, byte(0x01), b[4])
	assert.Len(t, b, 5+300)
}

func TestEncodeParamLenCeiling(t *testing.T) {
	r := NewRegistry()
	err := r.Register(CommandDef{
		Name:   "BIG_BLOB",
		Opcode: NewOpcode(OGFVendorSpec, 0x2FF),
		Params: []Field{Raw("Blob", 256)},
	})
	require.NoError(t, err)

	var rangeErr *ParameterRangeError
	_, err = r.EncodeCommand(NewOpcode(OGFVendorSpec, 0x2FF), make([]byte, 256))
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "Parameter_Total_Length", rangeErr.Field)
}
