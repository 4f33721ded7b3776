package hci

import "fmt"

// UnknownOpcodeError reports an encode or lookup request for an opcode
// that is not registered.
type UnknownOpcodeError struct {
	Opcode Opcode
	Name   string
}

func (e *UnknownOpcodeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("hci: unknown command %q", e.Name)
	}
	return fmt.Sprintf("hci: unknown opcode %s", e.Opcode)
}

// UnknownEventError reports a decode request whose event or subevent
// code has no registered schema. Decoding still produces a best-effort
// raw dump; this error only surfaces when a caller demands a schema.
type UnknownEventError struct {
	Code    EventCode
	Subcode SubeventCode
}

func (e *UnknownEventError) Error() string {
	if e.Code == EvtLEMeta {
		return fmt.Sprintf("hci: unknown LE meta subevent 0x%02X", uint8(e.Subcode))
	}
	return fmt.Sprintf("hci: unknown event 0x%02X", uint8(e.Code))
}

// ParameterRangeError reports an encode-time value that does not fit
// the declared width of its field.
type ParameterRangeError struct {
	Field string
	Value interface{}
	Size  int
}

func (e *ParameterRangeError) Error() string {
	return fmt.Sprintf("hci: parameter %s value %v does not fit in %d octet(s)", e.Field, e.Value, e.Size)
}

// FramingError reports a header/length mismatch or an unrecognized tag
// byte. The decoder cannot distinguish a schema table error from
// corrupted wire data, so both surface here with the raw byte context.
type FramingError struct {
	Reason string
	Raw    []byte
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("hci: framing error: %s [% X]", e.Reason, e.Raw)
}

// IncompletePacketError reports a transport read that timed out or
// ended mid-frame. The partial frame is discarded and the reader
// resynchronizes; the error names the framing stage that was starved.
type IncompletePacketError struct {
	State string
	Raw   []byte
}

func (e *IncompletePacketError) Error() string {
	return fmt.Sprintf("hci: incomplete packet while %s [% X]", e.State, e.Raw)
}

// CommandTimeoutError reports that no Command Complete or Command
// Status event arrived for the in-flight opcode before the deadline.
// The transport itself remains usable.
type CommandTimeoutError struct {
	Opcode Opcode
}

func (e *CommandTimeoutError) Error() string {
	return fmt.Sprintf("hci: timed out waiting for response to %s", e.Opcode)
}
