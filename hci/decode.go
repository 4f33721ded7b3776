package hci

// Event is a decoded HCI event packet. For Command Complete and
// Command Status events the originating opcode and the
// num-HCI-command-packets flow control field are populated; Params
// holds the ordered return parameters when the opcode's schema is
// known, and Raw holds the undecoded remainder when it is not.
type Event struct {
	Code       EventCode
	Subcode    SubeventCode
	Opcode     Opcode
	NumPackets uint8
	Status     StatusCode
	HasStatus  bool
	Params     *Record
	Raw        []byte
}

// Success reports whether the event carries a zero status.
func (e *Event) Success() bool { return e.HasStatus && e.Status == StatusSuccess }

// DecodeEvent parses a full event packet, type byte included:
//
//	[type:1][event_code:1][param_len:1][params]
//
// The declared parameter length must match the actual payload; any
// mismatch is a FramingError, whether it stems from a corrupt wire or
// a wrong schema table, since the decoder cannot tell the two apart.
// Unknown event codes and unknown originating opcodes do not fail:
// the payload is preserved in Raw so reserved or vendor traffic can
// still be dumped.
func (r *Registry) DecodeEvent(b []byte) (*Event, error) {
	if len(b) < 3 {
		return nil, &FramingError{Reason: "event packet shorter than header", Raw: b}
	}
	if PacketType(b[0]) != PacketTypeEvent {
		return nil, &FramingError{Reason: "not an event packet", Raw: b}
	}
	plen, params := int(b[2]), b[3:]
	if plen != len(params) {
		return nil, &FramingError{Reason: "declared parameter length does not match payload", Raw: b}
	}

	e := &Event{Code: EventCode(b[1])}
	switch e.Code {
	case EvtCommandComplete:
		return r.decodeCommandComplete(e, b, params)
	case EvtCommandStatus:
		return r.decodeCommandStatus(e, b, params)
	case EvtLEMeta:
		return r.decodeLEMeta(e, b, params)
	}
	return r.decodeAsync(e, b, params)
}

func (r *Registry) decodeCommandComplete(e *Event, raw, params []byte) (*Event, error) {
	if len(params) < 3 {
		return nil, &FramingError{Reason: "command complete shorter than return header", Raw: raw}
	}
	e.NumPackets = params[0]
	e.Opcode = Opcode(uint16(params[1]) | uint16(params[2])<<8)
	ret := params[3:]

	def, err := r.Lookup(e.Opcode)
	if err != nil {
		// Unregistered opcode: best-effort dump, status from the
		// leading return octet when present.
		e.Raw = ret
		if len(ret) > 0 {
			e.Status, e.HasStatus = StatusCode(ret[0]), true
		}
		return e, nil
	}

	rec, n, err := walkSchema(def.Returns, ret)
	if err != nil || n != len(ret) {
		return nil, &FramingError{Reason: "return parameters do not match schema for " + def.QualifiedName(), Raw: raw}
	}
	e.Params = rec
	if p, ok := rec.Get("Status"); ok {
		e.Status, e.HasStatus = StatusCode(p.Value), true
	}
	return e, nil
}

func (r *Registry) decodeCommandStatus(e *Event, raw, params []byte) (*Event, error) {
	if len(params) != 4 {
		return nil, &FramingError{Reason: "command status must carry 4 octets", Raw: raw}
	}
	e.Status, e.HasStatus = StatusCode(params[0]), true
	e.NumPackets = params[1]
	e.Opcode = Opcode(uint16(params[2]) | uint16(params[3])<<8)
	return e, nil
}

func (r *Registry) decodeLEMeta(e *Event, raw, params []byte) (*Event, error) {
	if len(params) < 1 {
		return nil, &FramingError{Reason: "LE meta event without subevent code", Raw: raw}
	}
	e.Subcode = SubeventCode(params[0])
	rest := params[1:]

	schema, err := r.SubeventSchema(e.Subcode)
	if err != nil {
		e.Raw = rest
		return e, nil
	}
	rec, n, err := walkSchema(schema, rest)
	if err != nil || n != len(rest) {
		return nil, &FramingError{Reason: "subevent parameters do not match schema for " + e.Subcode.String(), Raw: raw}
	}
	e.Params = rec
	if p, ok := rec.Get("Status"); ok {
		e.Status, e.HasStatus = StatusCode(p.Value), true
	}
	return e, nil
}

func (r *Registry) decodeAsync(e *Event, raw, params []byte) (*Event, error) {
	schema, err := r.EventSchema(e.Code)
	if err != nil {
		e.Raw = params
		return e, nil
	}
	rec, n, err := walkSchema(schema, params)
	if err != nil || n != len(params) {
		return nil, &FramingError{Reason: "event parameters do not match schema for " + e.Code.String(), Raw: raw}
	}
	e.Params = rec
	if p, ok := rec.Get("Status"); ok {
		e.Status, e.HasStatus = StatusCode(p.Value), true
	}
	return e, nil
}

// Command is a decoded HCI command packet, produced when parsing
// sniffed host-to-controller traffic.
type Command struct {
	Opcode Opcode
	Def    *CommandDef
	Params *Record
	Raw    []byte
}

// DecodeCommand parses a full command packet, type byte included.
// Unknown opcodes yield a best-effort raw dump with Def nil.
func (r *Registry) DecodeCommand(b []byte) (*Command, error) {
	if len(b) < 4 {
		return nil, &FramingError{Reason: "command packet shorter than header", Raw: b}
	}
	if PacketType(b[0]) != PacketTypeCommand {
		return nil, &FramingError{Reason: "not a command packet", Raw: b}
	}
	plen, params := int(b[3]), b[4:]
	if plen != len(params) {
		return nil, &FramingError{Reason: "declared parameter length does not match payload", Raw: b}
	}

	c := &Command{Opcode: Opcode(uint16(b[1]) | uint16(b[2])<<8)}
	def, err := r.Lookup(c.Opcode)
	if err != nil {
		c.Raw = params
		return c, nil
	}
	c.Def = def
	rec, n, err := walkSchema(def.Params, params)
	if err != nil || n != len(params) {
		return nil, &FramingError{Reason: "parameters do not match schema for " + def.QualifiedName(), Raw: b}
	}
	c.Params = rec
	return c, nil
}

// DecodeExtended parses a vendor extended command packet, which
// carries a 16-bit parameter length. Extended payloads are usually
// opaque firmware data, so a payload that does not match the
// registered schema falls back to a raw dump instead of failing.
func (r *Registry) DecodeExtended(b []byte) (*Command, error) {
	if len(b) < 5 {
		return nil, &FramingError{Reason: "extended command shorter than header", Raw: b}
	}
	if PacketType(b[0]) != PacketTypeExtended {
		return nil, &FramingError{Reason: "not an extended command packet", Raw: b}
	}
	plen, params := int(b[3])|int(b[4])<<8, b[5:]
	if plen != len(params) {
		return nil, &FramingError{Reason: "declared parameter length does not match payload", Raw: b}
	}

	c := &Command{Opcode: Opcode(uint16(b[1]) | uint16(b[2])<<8), Raw: params}
	def, err := r.Lookup(c.Opcode)
	if err != nil {
		return c, nil
	}
	c.Def = def
	if rec, n, err := walkSchema(def.Params, params); err == nil && n == len(params) {
		c.Params = rec
	}
	return c, nil
}

// ACLPacket is a decoded HCI ACL data packet header [Vol 4, Part E,
// 5.4.2]. Only the framing is interpreted; the payload is carried
// opaquely for the sniffer.
type ACLPacket struct {
	Handle uint16
	PB     uint8
	BC     uint8
	Data   []byte
}

// DecodeACL parses a full ACL data packet, type byte included:
//
//	[type:1][handle+flags:2][data_len:2][data]
func DecodeACL(b []byte) (*ACLPacket, error) {
	if len(b) < 5 {
		return nil, &FramingError{Reason: "ACL packet shorter than header", Raw: b}
	}
	if PacketType(b[0]) != PacketTypeACLData {
		return nil, &FramingError{Reason: "not an ACL data packet", Raw: b}
	}
	dlen := int(b[3]) | int(b[4])<<8
	if dlen != len(b[5:]) {
		return nil, &FramingError{Reason: "declared data length does not match payload", Raw: b}
	}
	return &ACLPacket{
		Handle: uint16(b[1]) | uint16(b[2]&0x0F)<<8,
		PB:     (b[2] >> 4) & 0x3,
		BC:     (b[2] >> 6) & 0x3,
		Data:   b[5:],
	}, nil
}
