package hci

import "fmt"

// Opcode packs a 6-bit Opcode Group Field and a 10-bit Opcode Command
// Field into the 16-bit little-endian value sent on the wire.
type Opcode uint16

// Opcode Group Fields.
const (
	OGFNop           uint8 = 0x00
	OGFLinkControl   uint8 = 0x01
	OGFLinkPolicy    uint8 = 0x02
	OGFController    uint8 = 0x03
	OGFInformational uint8 = 0x04
	OGFStatus        uint8 = 0x05
	OGFTesting       uint8 = 0x06
	OGFLEController  uint8 = 0x08
	OGFVendorSpec    uint8 = 0x3F
)

// NewOpcode builds an opcode from its group and command fields.
func NewOpcode(ogf uint8, ocf uint16) Opcode {
	return Opcode(ogf&0x3F)<<10 | Opcode(ocf&0x3FF)
}

// OGF returns the opcode group field.
func (op Opcode) OGF() uint8 { return uint8(op >> 10) }

// OCF returns the opcode command field.
func (op Opcode) OCF() uint16 { return uint16(op) & 0x3FF }

func (op Opcode) String() string {
	return fmt.Sprintf("0x%04X", uint16(op))
}

// GroupName returns the symbolic name of an opcode group field.
func GroupName(ogf uint8) string {
	switch ogf {
	case OGFNop:
		return "NOP"
	case OGFLinkControl:
		return "LINK_CONTROL"
	case OGFLinkPolicy:
		return "LINK_POLICY"
	case OGFController:
		return "CONTROLLER"
	case OGFInformational:
		return "INFORMATIONAL"
	case OGFStatus:
		return "STATUS"
	case OGFTesting:
		return "TESTING"
	case OGFLEController:
		return "LE_CONTROLLER"
	case OGFVendorSpec:
		return "VENDOR_SPEC"
	}
	return fmt.Sprintf("OGF(0x%02X)", ogf)
}
