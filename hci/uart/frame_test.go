package uart

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxble/blehci/hci"
)

// chunkReader hands out its script in fixed-size slices to exercise
// reads that split packets at arbitrary boundaries.
type chunkReader struct {
	data  []byte
	chunk int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.chunk
	if n > len(r.data) {
		n = len(r.data)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

func TestFrameReaderSplitsStream(t *testing.T) {
	evt := []byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00}
	acl := []byte{0x02, 0x40, 0x20, 0x03, 0x00, 0xAA, 0xBB, 0xCC}
	stream := append(append([]byte{}, evt...), acl...)

	for chunk := 1; chunk <= len(stream); chunk++ {
		fr := NewFrameReader(&chunkReader{data: append([]byte(nil), stream...), chunk: chunk})

		got, err := fr.ReadPacket()
		require.NoError(t, err, "chunk size %d", chunk)
		assert.Equal(t, evt, got)

		got, err = fr.ReadPacket()
		require.NoError(t, err, "chunk size %d", chunk)
		assert.Equal(t, acl, got)

		_, err = fr.ReadPacket()
		assert.Equal(t, io.EOF, err)
	}
}

func TestFrameReaderResynchronizes(t *testing.T) {
	// Joining mid-stream: two noise bytes that are not valid packet
	// types, then a well-formed event.
	stream := []byte{0x00, 0xF7, 0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00}
	fr := NewFrameReader(bytes.NewReader(stream))

	got, err := fr.ReadPacket()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00}, got)
	assert.Equal(t, uint64(2), fr.Dropped())
}

func TestFrameReaderIncompletePacket(t *testing.T) {
	// Stream ends three octets into a declared four-octet payload.
	fr := NewFrameReader(bytes.NewReader([]byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C}))

	_, err := fr.ReadPacket()
	var incomplete *hci.IncompletePacketError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "reading payload", incomplete.State)
	assert.Equal(t, []byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C}, incomplete.Raw)

	// The partial frame is discarded; the reader is reusable.
	_, err = fr.ReadPacket()
	assert.Equal(t, io.EOF, err)
}

func TestFrameReaderIncompleteHeader(t *testing.T) {
	fr := NewFrameReader(bytes.NewReader([]byte{0x04, 0x0E}))

	_, err := fr.ReadPacket()
	var incomplete *hci.IncompletePacketError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "reading header", incomplete.State)
}

func TestFrameReaderZeroLengthPayload(t *testing.T) {
	// A command with no parameters is a complete frame at the header.
	fr := NewFrameReader(bytes.NewReader([]byte{0x01, 0x03, 0x0C, 0x00}))
	got, err := fr.ReadPacket()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x03, 0x0C, 0x00}, got)
}

func TestFrameReaderExtendedCommand(t *testing.T) {
	// Vendor extended type carries a 16-bit length.
	payload := make([]byte, 0x0105)
	pkt := append([]byte{0x09, 0x00, 0xFC, 0x05, 0x01}, payload...)
	fr := NewFrameReader(&chunkReader{data: pkt, chunk: 37})

	got, err := fr.ReadPacket()
	require.NoError(t, err)
	assert.Len(t, got, 5+0x0105)
}

func TestFrameReaderTapIndependence(t *testing.T) {
	// A tee'd tap must see every raw octet, dropped noise included.
	stream := []byte{0xEE, 0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00}
	var tap bytes.Buffer
	fr := NewFrameReader(io.TeeReader(bytes.NewReader(stream), &tap))

	_, err := fr.ReadPacket()
	require.NoError(t, err)
	assert.Equal(t, stream, tap.Bytes())
}
