package uart

import (
	"io"

	"github.com/maxble/blehci/hci"
)

const readChunk = 512

// FrameReader splits a UART byte stream into complete HCI packets.
// The stream is self-framing: every packet leads with a type byte
// whose header declares the payload length. Bytes that arrive outside
// a frame and do not form a valid type byte are dropped until the
// next plausible frame start, which is how the reader recovers from
// joining a stream mid-packet or losing octets to line noise.
//
// An io.EOF from the underlying reader at a frame boundary is passed
// through; serial ports configured with a read timeout produce
// exactly that on an idle line. The same EOF arriving mid-frame
// surfaces as an IncompletePacketError and the partial frame is
// discarded.
type FrameReader struct {
	r       io.Reader
	pending []byte // raw bytes read but not yet framed
	frame   []byte // current partial frame
	need    int    // octets still needed to finish header or payload
	inBody  bool   // header done, reading payload
	dropped uint64
}

// NewFrameReader wraps r, which yields raw UART octets.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r}
}

// Dropped returns the running count of resynchronization bytes
// discarded between frames.
func (fr *FrameReader) Dropped() uint64 { return fr.dropped }

// ReadPacket blocks until one complete packet, type byte included, is
// available and returns it. The returned slice is owned by the
// caller.
func (fr *FrameReader) ReadPacket() ([]byte, error) {
	for {
		if pkt := fr.consume(); pkt != nil {
			return pkt, nil
		}
		if err := fr.fill(); err != nil {
			if len(fr.frame) == 0 {
				return nil, err
			}
			state := "reading header"
			if fr.inBody {
				state = "reading payload"
			}
			partial := append([]byte(nil), fr.frame...)
			fr.reset()
			return nil, &hci.IncompletePacketError{State: state, Raw: partial}
		}
	}
}

// consume advances the framing state machine over pending bytes,
// returning a finished packet or nil when more input is needed.
func (fr *FrameReader) consume() []byte {
	for {
		if len(fr.frame) == 0 {
			// Frame boundary: hunt for a valid type byte.
			for len(fr.pending) > 0 {
				t := hci.PacketType(fr.pending[0])
				if t.Valid() {
					fr.frame = append(fr.frame, fr.pending[0])
					fr.pending = fr.pending[1:]
					fr.need = headerLen(t)
					fr.inBody = false
					break
				}
				fr.pending = fr.pending[1:]
				fr.dropped++
			}
			if len(fr.frame) == 0 {
				return nil
			}
		}

		n := fr.need
		if n > len(fr.pending) {
			n = len(fr.pending)
		}
		fr.frame = append(fr.frame, fr.pending[:n]...)
		fr.pending = fr.pending[n:]
		fr.need -= n
		if fr.need > 0 {
			return nil
		}

		if !fr.inBody {
			fr.inBody = true
			fr.need = payloadLen(fr.frame)
			if fr.need > 0 {
				continue
			}
		}

		pkt := fr.frame
		fr.reset()
		return pkt
	}
}

func (fr *FrameReader) fill() error {
	buf := make([]byte, readChunk)
	n, err := fr.r.Read(buf)
	if n > 0 {
		fr.pending = append(fr.pending, buf[:n]...)
		return nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return err
}

func (fr *FrameReader) reset() {
	fr.frame = nil
	fr.need = 0
	fr.inBody = false
}

// headerLen returns the octets that follow the type byte before the
// payload length is known.
func headerLen(t hci.PacketType) int {
	switch t {
	case hci.PacketTypeCommand:
		return 3 // opcode + 8-bit length
	case hci.PacketTypeACLData:
		return 4 // handle/flags + 16-bit length
	case hci.PacketTypeSCOData:
		return 3 // handle + 8-bit length
	case hci.PacketTypeEvent:
		return 2 // event code + 8-bit length
	case hci.PacketTypeExtended:
		return 4 // opcode + 16-bit length
	}
	return 0
}

// payloadLen extracts the declared payload length from a complete
// header, type byte included.
func payloadLen(hdr []byte) int {
	switch hci.PacketType(hdr[0]) {
	case hci.PacketTypeCommand:
		return int(hdr[3])
	case hci.PacketTypeACLData, hci.PacketTypeExtended:
		return int(hdr[3]) | int(hdr[4])<<8
	case hci.PacketTypeSCOData:
		return int(hdr[3])
	case hci.PacketTypeEvent:
		return int(hdr[2])
	}
	return 0
}
