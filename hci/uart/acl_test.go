package uart

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readFragment pulls one ACL frame off the controller side.
func readFragment(t *testing.T, ctrl io.Reader) (pb uint8, data []byte) {
	t.Helper()
	hdr := make([]byte, 5)
	_, err := io.ReadFull(ctrl, hdr)
	require.NoError(t, err)
	require.Equal(t, byte(0x02), hdr[0])
	dlen := int(hdr[3]) | int(hdr[4])<<8
	data = make([]byte, dlen)
	_, err = io.ReadFull(ctrl, data)
	require.NoError(t, err)
	return (hdr[2] >> 4) & 0x3, data
}

func TestACLWriterFragments(t *testing.T) {
	c, ctrl := testLink(t)
	w := c.ACLWriter(27, 8)

	payload := make([]byte, 60)
	for i := range payload {
		payload[i] = byte(i)
	}
	errCh := make(chan error, 1)
	go func() { errCh <- w.Write(context.Background(), 0x0040, payload) }()

	pb, frag := readFragment(t, ctrl)
	assert.Equal(t, uint8(0), pb)
	assert.Equal(t, payload[:27], frag)

	pb, frag = readFragment(t, ctrl)
	assert.Equal(t, uint8(1), pb)
	assert.Equal(t, payload[27:54], frag)

	pb, frag = readFragment(t, ctrl)
	assert.Equal(t, uint8(1), pb)
	assert.Equal(t, payload[54:], frag)

	require.NoError(t, <-errCh)
}

func TestACLWriterBlocksWithoutCredits(t *testing.T) {
	c, ctrl := testLink(t)
	w := c.ACLWriter(27, 2)

	errCh := make(chan error, 1)
	go func() { errCh <- w.Write(context.Background(), 0x0040, make([]byte, 81)) }()

	readFragment(t, ctrl)
	readFragment(t, ctrl)

	// Both buffers are in flight; the third fragment waits for a
	// Number Of Completed Packets event.
	select {
	case err := <-errCh:
		t.Fatalf("write finished without credits: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	_, err := ctrl.Write([]byte{0x04, 0x13, 0x05, 0x01, 0x40, 0x00, 0x02, 0x00})
	require.NoError(t, err)

	readFragment(t, ctrl)
	require.NoError(t, <-errCh)
}

func TestACLWriterContextCancel(t *testing.T) {
	c, ctrl := testLink(t)
	w := c.ACLWriter(27, 1)

	errCh := make(chan error, 1)
	go func() { errCh <- w.Write(context.Background(), 0x0001, make([]byte, 27)) }()
	readFragment(t, ctrl)
	require.NoError(t, <-errCh)

	// No credits left and none coming: a bounded write must give up.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := w.Write(ctx, 0x0001, []byte{0xAA})
	require.Error(t, err)
	assert.Equal(t, context.DeadlineExceeded, err)
}

func TestACLWriterEmptyPayload(t *testing.T) {
	c, _ := testLink(t)
	err := c.ACLWriter(27, 1).Write(context.Background(), 0x0001, nil)
	require.Error(t, err)
}
