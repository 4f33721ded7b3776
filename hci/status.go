package hci

import "fmt"

// StatusCode is a controller status/error code [Vol 1, Part F, 1.3].
// A non-zero status in a completed response is protocol data, not a
// transport failure, so it is returned as a value rather than an error.
type StatusCode uint8

// StatusSuccess is the zero status of a successful command.
const StatusSuccess StatusCode = 0x00

var statusNames = map[StatusCode]string{
	0x00: "SUCCESS",
	0x01: "UNKNOWN_HCI_COMMAND",
	0x02: "UNKNOWN_CONNECTION_IDENTIFIER",
	0x03: "HARDWARE_FAILURE",
	0x04: "PAGE_TIMEOUT",
	0x05: "AUTHENTICATION_FAILURE",
	0x06: "PIN_OR_KEY_MISSING",
	0x07: "MEMORY_CAPACITY_EXCEEDED",
	0x08: "CONNECTION_TIMEOUT",
	0x09: "CONNECTION_LIMIT_EXCEEDED",
	0x0A: "SYNCHRONOUS_CONNECTION_LIMIT_EXCEEDED",
	0x0B: "CONNECTION_ALREADY_EXISTS",
	0x0C: "COMMAND_DISALLOWED",
	0x0D: "CONNECTION_REJECTED_LIMITED_RESOURCES",
	0x0E: "CONNECTION_REJECTED_SECURITY_REASONS",
	0x0F: "CONNECTION_REJECTED_UNACCEPTABLE_BD_ADDR",
	0x10: "CONNECTION_ACCEPT_TIMEOUT_EXCEEDED",
	0x11: "UNSUPPORTED_FEATURE_OR_PARAMETER_VALUE",
	0x12: "INVALID_HCI_COMMAND_PARAMETERS",
	0x13: "REMOTE_USER_TERMINATED_CONNECTION",
	0x14: "REMOTE_DEVICE_TERMINATED_CONNECTION_LOW_RESOURCES",
	0x15: "REMOTE_DEVICE_TERMINATED_CONNECTION_POWER_OFF",
	0x16: "CONNECTION_TERMINATED_BY_LOCAL_HOST",
	0x17: "REPEATED_ATTEMPTS",
	0x18: "PAIRING_NOT_ALLOWED",
	0x19: "UNKNOWN_LMP_PDU",
	0x1A: "UNSUPPORTED_REMOTE_FEATURE",
	0x1B: "SCO_OFFSET_REJECTED",
	0x1C: "SCO_INTERVAL_REJECTED",
	0x1D: "SCO_AIR_MODE_REJECTED",
	0x1E: "INVALID_LMP_LL_PARAMETERS",
	0x1F: "UNSPECIFIED_ERROR",
	0x20: "UNSUPPORTED_LMP_LL_PARAMETER_VALUE",
	0x21: "ROLE_CHANGE_NOT_ALLOWED",
	0x22: "LMP_LL_RESPONSE_TIMEOUT",
	0x23: "LMP_LL_ERROR_TRANSACTION_COLLISION",
	0x24: "LMP_PDU_NOT_ALLOWED",
	0x25: "ENCRYPTION_MODE_NOT_ACCEPTABLE",
	0x26: "LINK_KEY_CANNOT_BE_CHANGED",
	0x27: "REQUESTED_QOS_NOT_SUPPORTED",
	0x28: "INSTANT_PASSED",
	0x29: "PAIRING_WITH_UNIT_KEY_NOT_SUPPORTED",
	0x2A: "DIFFERENT_TRANSACTION_COLLISION",
	0x2C: "QOS_UNACCEPTABLE_PARAMETER",
	0x2D: "QOS_REJECTED",
	0x2E: "CHANNEL_ASSESSMENT_NOT_SUPPORTED",
	0x2F: "INSUFFICIENT_SECURITY",
	0x30: "PARAMETER_OUT_OF_MANDATORY_RANGE",
	0x32: "ROLE_SWITCH_PENDING",
	0x34: "RESERVED_SLOT_VIOLATION",
	0x35: "ROLE_SWITCH_FAILED",
	0x36: "EXTENDED_INQUIRY_RESPONSE_TOO_LARGE",
	0x37: "SECURE_SIMPLE_PAIRING_NOT_SUPPORTED_BY_HOST",
	0x38: "HOST_BUSY_PAIRING",
	0x39: "CONNECTION_REJECTED_NO_SUITABLE_CHANNEL_FOUND",
	0x3A: "CONTROLLER_BUSY",
	0x3B: "UNACCEPTABLE_CONNECTION_PARAMETERS",
	0x3C: "ADVERTISING_TIMEOUT",
	0x3D: "CONNECTION_TERMINATED_MIC_FAILURE",
	0x3E: "CONNECTION_FAILED_TO_BE_ESTABLISHED",
	0x3F: "MAC_CONNECTION_FAILED",
	0x40: "COARSE_CLOCK_ADJUSTMENT_REJECTED",
	0x41: "TYPE0_SUBMAP_NOT_DEFINED",
	0x42: "UNKNOWN_ADVERTISING_IDENTIFIER",
	0x43: "LIMIT_REACHED",
	0x44: "OPERATION_CANCELLED_BY_HOST",
	0x45: "PACKET_TOO_LONG",
}

func (s StatusCode) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(s))
}
