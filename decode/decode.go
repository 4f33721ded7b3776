// Package decode renders HCI traffic for humans: single packets,
// binary captures, log files with hex dumps, and live serial links
// through a proxy sniffer.
package decode

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/maxble/blehci/hci"
	"github.com/maxble/blehci/hci/uart"
)

// Decoder renders packets against an opcode registry.
type Decoder struct {
	reg *hci.Registry
}

// NewDecoder returns a decoder over reg; nil gets the built-in
// tables.
func NewDecoder(reg *hci.Registry) *Decoder {
	if reg == nil {
		reg = hci.NewRegistry()
	}
	return &Decoder{reg: reg}
}

// Packet renders one full packet, type byte included.
func (d *Decoder) Packet(b []byte) (string, error) {
	if len(b) == 0 {
		return "", errors.New("decode: empty packet")
	}
	switch hci.PacketType(b[0]) {
	case hci.PacketTypeCommand, hci.PacketTypeExtended:
		return d.command(b)
	case hci.PacketTypeEvent:
		return d.event(b)
	case hci.PacketTypeACLData:
		return d.acl(b)
	}
	return "", &hci.FramingError{Reason: "unknown packet type", Raw: b}
}

func (d *Decoder) command(b []byte) (string, error) {
	var (
		c     *hci.Command
		err   error
		ptype = "COMMAND"
		plen  = len(b) - 4
	)
	if hci.PacketType(b[0]) == hci.PacketTypeExtended {
		c, err = d.reg.DecodeExtended(b)
		ptype, plen = "EXTENDED_COMMAND", len(b)-5
	} else {
		c, err = d.reg.DecodeCommand(b)
	}
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "PacketType=%s\n", ptype)
	sb.WriteString(commandLine(d.reg, c.Opcode))
	fmt.Fprintf(&sb, "Length=%d\n", plen)
	if c.Params != nil {
		writeRecord(&sb, c.Params)
	} else {
		writeRawParams(&sb, c.Raw)
	}
	return sb.String(), nil
}

func (d *Decoder) event(b []byte) (string, error) {
	e, err := d.reg.DecodeEvent(b)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("PacketType=EVENT\n")
	fmt.Fprintf(&sb, "EventCode=%s\n", e.Code)
	fmt.Fprintf(&sb, "Length=%d\n", len(b)-3)

	switch e.Code {
	case hci.EvtCommandComplete:
		fmt.Fprintf(&sb, "NumHciCommand=%d\n", e.NumPackets)
		sb.WriteString(commandLine(d.reg, e.Opcode))
	case hci.EvtCommandStatus:
		fmt.Fprintf(&sb, "Status=%s\n", e.Status)
		fmt.Fprintf(&sb, "NumHciCommand=%d\n", e.NumPackets)
		sb.WriteString(commandLine(d.reg, e.Opcode))
		return sb.String(), nil
	case hci.EvtLEMeta:
		fmt.Fprintf(&sb, "SubEventCode=%s\n", e.Subcode)
	}

	if e.Params != nil {
		writeRecord(&sb, e.Params)
	} else {
		writeRawParams(&sb, e.Raw)
	}
	return sb.String(), nil
}

func commandLine(reg *hci.Registry, op hci.Opcode) string {
	if def, err := reg.Lookup(op); err == nil {
		return fmt.Sprintf("Command=%s\n", def.QualifiedName())
	}
	return fmt.Sprintf("Command=%s.[OCF=0x%03X]\n", hci.GroupName(op.OGF()), op.OCF())
}

func (d *Decoder) acl(b []byte) (string, error) {
	a, err := hci.DecodeACL(b)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("PacketType=ACL\n")
	fmt.Fprintf(&sb, "ConnectionHandle=0x%04X\n", a.Handle)
	fmt.Fprintf(&sb, "PBFlag=%d\nBCFlag=%d\n", a.PB, a.BC)
	fmt.Fprintf(&sb, "Length=%d\n", len(a.Data))
	if len(a.Data) > 0 {
		fmt.Fprintf(&sb, "Data: % X\n", a.Data)
	}
	return sb.String(), nil
}

func writeRecord(sb *strings.Builder, rec *hci.Record) {
	if rec == nil || rec.Len() == 0 {
		sb.WriteString("Params: None\n")
		return
	}
	sb.WriteString("Params:\n")
	for _, p := range rec.Params() {
		fmt.Fprintf(sb, "    %s=%s\n", p.Label(), p)
	}
}

func writeRawParams(sb *strings.Builder, raw []byte) {
	if len(raw) == 0 {
		sb.WriteString("Params: None\n")
		return
	}
	fmt.Fprintf(sb, "Params: % X\n", raw)
}

// Stream renders every packet in a raw binary capture. Unframeable
// bytes are skipped the same way the live reader resynchronizes; a
// truncated trailing packet is reported in place and does not abort
// the rest of the output.
func (d *Decoder) Stream(r io.Reader) (string, error) {
	fr := uart.NewFrameReader(r)
	var sb strings.Builder
	for {
		pkt, err := fr.ReadPacket()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			if _, ok := err.(*hci.IncompletePacketError); ok {
				fmt.Fprintf(&sb, "--%v--\n", err)
				continue
			}
			return sb.String(), err
		}
		s, err := d.Packet(pkt)
		if err != nil {
			fmt.Fprintf(&sb, "--%v--\n", err)
			continue
		}
		sb.WriteString(s)
		sb.WriteString("\n")
	}
}

// TextOptions selects which log lines carry hex packet dumps and how
// direction is tagged.
type TextOptions struct {
	// Leading strings mark packet lines without direction.
	Leading []string
	// C2HTag and H2CTag mark controller-to-host and host-to-controller
	// lines.
	C2HTag string
	H2CTag string
}

// Text renders the hex packet dumps found in a text log. When no tags
// are configured, every non-empty line is treated as a packet.
func (d *Decoder) Text(r io.Reader, opts TextOptions) (string, error) {
	var sb strings.Builder
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		switch {
		case opts.C2HTag != "" && strings.HasPrefix(line, opts.C2HTag):
			sb.WriteString("[Controller-->Host]\n")
			line = strings.TrimPrefix(line, opts.C2HTag)
		case opts.H2CTag != "" && strings.HasPrefix(line, opts.H2CTag):
			sb.WriteString("[Host-->Controller]\n")
			line = strings.TrimPrefix(line, opts.H2CTag)
		case len(opts.Leading) > 0:
			matched := false
			for _, l := range opts.Leading {
				if strings.HasPrefix(line, l) {
					line = strings.TrimPrefix(line, l)
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		case opts.C2HTag != "" || opts.H2CTag != "":
			continue
		}

		b, err := parseHexLine(line)
		if err != nil {
			fmt.Fprintf(&sb, "--%v--\n", err)
			continue
		}
		s, err := d.Packet(b)
		if err != nil {
			fmt.Fprintf(&sb, "--%v--\n", err)
			continue
		}
		sb.WriteString(s)
		sb.WriteString("\n")
	}
	return sb.String(), sc.Err()
}

// parseHexLine turns "01 03 0C 00", "01030C00" or "0x01030C00" into
// bytes.
func parseHexLine(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == ':' {
			return -1
		}
		return r
	}, s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "bad hex line %q", s)
	}
	if len(b) == 0 {
		return nil, errors.New("empty hex line")
	}
	return b, nil
}

// ParsePacket parses a hex string into raw packet bytes, the inverse
// of what a log line carries.
func ParsePacket(s string) ([]byte, error) {
	return parseHexLine(s)
}
