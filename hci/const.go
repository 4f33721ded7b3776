package hci

import "fmt"

// PacketType is the indicator octet prepended to every packet on the
// UART transport [Vol 4, Part A, 2].
type PacketType uint8

// HCI packet types. Extended is the vendor 16-bit-length command type
// carried on the same link.
const (
	PacketTypeCommand  PacketType = 0x01
	PacketTypeACLData  PacketType = 0x02
	PacketTypeSCOData  PacketType = 0x03
	PacketTypeEvent    PacketType = 0x04
	PacketTypeExtended PacketType = 0x09
)

// Valid reports whether t is a packet type the transport can frame.
func (t PacketType) Valid() bool {
	switch t {
	case PacketTypeCommand, PacketTypeACLData, PacketTypeSCOData, PacketTypeEvent, PacketTypeExtended:
		return true
	}
	return false
}

func (t PacketType) String() string {
	switch t {
	case PacketTypeCommand:
		return "COMMAND"
	case PacketTypeACLData:
		return "ACL"
	case PacketTypeSCOData:
		return "SCO"
	case PacketTypeEvent:
		return "EVENT"
	case PacketTypeExtended:
		return "EXTENDED"
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(t))
}

// EventCode identifies an HCI event packet [Vol 4, Part E, 7.7].
type EventCode uint8

// Event codes handled by the decoder.
const (
	EvtDisconnectComplete        EventCode = 0x05
	EvtEncryptionChange          EventCode = 0x08
	EvtReadRemoteVersionComplete EventCode = 0x0C
	EvtCommandComplete           EventCode = 0x0E
	EvtCommandStatus             EventCode = 0x0F
	EvtHardwareError             EventCode = 0x10
	EvtNumCompletedPackets       EventCode = 0x13
	EvtDataBufferOverflow        EventCode = 0x1A
	EvtEncKeyRefreshComplete     EventCode = 0x30
	EvtLEMeta                    EventCode = 0x3E
	EvtAuthPayloadTimeoutExpired EventCode = 0x57
	EvtVendorSpec                EventCode = 0xFF
)

func (c EventCode) String() string {
	switch c {
	case EvtDisconnectComplete:
		return "DISCONNECT_COMPLETE"
	case EvtEncryptionChange:
		return "ENCRYPTION_CHANGE"
	case EvtReadRemoteVersionComplete:
		return "READ_REMOTE_VERSION_INFO_COMPLETE"
	case EvtCommandComplete:
		return "COMMAND_COMPLETE"
	case EvtCommandStatus:
		return "COMMAND_STATUS"
	case EvtHardwareError:
		return "HARDWARE_ERROR"
	case EvtNumCompletedPackets:
		return "NUM_COMPLETED_PACKETS"
	case EvtDataBufferOverflow:
		return "DATA_BUFF_OVERFLOW"
	case EvtEncKeyRefreshComplete:
		return "ENC_KEY_REFRESH_COMPLETE"
	case EvtLEMeta:
		return "LE_META"
	case EvtAuthPayloadTimeoutExpired:
		return "AUTH_PAYLOAD_TIMEOUT_EXPIRED"
	case EvtVendorSpec:
		return "VENDOR_SPEC"
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(c))
}

// SubeventCode identifies an LE Meta subevent [Vol 4, Part E, 7.7.65].
type SubeventCode uint8

// LE Meta subevent codes handled by the decoder.
const (
	SubevtConnectionComplete         SubeventCode = 0x01
	SubevtAdvertisingReport          SubeventCode = 0x02
	SubevtConnectionUpdateComplete   SubeventCode = 0x03
	SubevtReadRemoteFeaturesComplete SubeventCode = 0x04
	SubevtLongTermKeyRequest         SubeventCode = 0x05
	SubevtRemoteConnParamRequest     SubeventCode = 0x06
	SubevtDataLengthChange           SubeventCode = 0x07
	SubevtEnhancedConnComplete       SubeventCode = 0x0A
	SubevtDirectedAdvReport          SubeventCode = 0x0B
	SubevtPHYUpdateComplete          SubeventCode = 0x0C
	SubevtExtendedAdvReport          SubeventCode = 0x0D
)

func (c SubeventCode) String() string {
	switch c {
	case SubevtConnectionComplete:
		return "CONNECTION_COMPLETE"
	case SubevtAdvertisingReport:
		return "ADVERTISING_REPORT"
	case SubevtConnectionUpdateComplete:
		return "CONNECTION_UPDATE_COMPLETE"
	case SubevtReadRemoteFeaturesComplete:
		return "READ_REMOTE_FEATURES_COMPLETE"
	case SubevtLongTermKeyRequest:
		return "LTK_REQUEST"
	case SubevtRemoteConnParamRequest:
		return "REMOTE_CONN_PARAM_REQUEST"
	case SubevtDataLengthChange:
		return "DATA_LENGTH_CHANGE"
	case SubevtEnhancedConnComplete:
		return "ENHANCED_CONNECTION_COMPLETE"
	case SubevtDirectedAdvReport:
		return "DIRECTED_ADV_REPORT"
	case SubevtPHYUpdateComplete:
		return "PHY_UPDATE_COMPLETE"
	case SubevtExtendedAdvReport:
		return "EXTENDED_ADV_REPORT"
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(c))
}

// MaxParamLen is the protocol ceiling on command parameter bytes; the
// length field is a single octet.
const MaxParamLen = 255

// RSSIInvalid is the sentinel the controller reports when no RSSI
// measurement is available. It is passed through undisturbed.
const RSSIInvalid = 127
