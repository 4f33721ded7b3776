package uart

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxble/blehci/hci"
)

// testLink returns a Conn wired to an in-memory controller side.
func testLink(t *testing.T, opts ...Option) (*Conn, net.Conn) {
	host, ctrl := net.Pipe()
	c := NewConn(host, opts...)
	t.Cleanup(func() { c.Close() })
	return c, ctrl
}

func TestSendCommandRoundTrip(t *testing.T) {
	c, ctrl := testLink(t)

	go func() {
		buf := make([]byte, 4)
		if _, err := io.ReadFull(ctrl, buf); err != nil {
			return
		}
		if !bytes.Equal(buf, []byte{0x01, 0x03, 0x0C, 0x00}) {
			return
		}
		ctrl.Write([]byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00})
	}()

	e, err := c.SendCommand(context.Background(), hci.OpReset)
	require.NoError(t, err)
	assert.True(t, e.Success())
	assert.Equal(t, hci.OpReset, e.Opcode)
}

func TestSendCommandShortReturnSurfacesFramingError(t *testing.T) {
	c, ctrl := testLink(t, WithTimeout(2*time.Second))

	go func() {
		buf := make([]byte, 64)
		if _, err := ctrl.Read(buf); err != nil {
			return
		}
		// Command Complete for READ_RSSI one octet short of its
		// return schema: the waiter gets the decode failure, not a
		// timeout.
		ctrl.Write([]byte{0x04, 0x0E, 0x06, 0x01, 0x05, 0x14, 0x00, 0x01, 0x00})
	}()

	start := time.Now()
	_, err := c.SendCommand(context.Background(), hci.OpReadRSSI, uint16(0x0001))
	var fe *hci.FramingError
	require.ErrorAs(t, err, &fe)
	assert.Less(t, int64(time.Since(start)), int64(time.Second))

	// The link stays usable for the next exchange.
	go func() {
		buf := make([]byte, 64)
		if _, err := ctrl.Read(buf); err != nil {
			return
		}
		ctrl.Write([]byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00})
	}()
	e, err := c.SendCommand(context.Background(), hci.OpReset)
	require.NoError(t, err)
	assert.True(t, e.Success())
}

func TestSendCommandStatusResponse(t *testing.T) {
	c, ctrl := testLink(t)

	go func() {
		buf := make([]byte, 64)
		if _, err := ctrl.Read(buf); err != nil {
			return
		}
		ctrl.Write([]byte{0x04, 0x0F, 0x04, 0x00, 0x01, 0x0D, 0x20})
	}()

	peer := []byte{0x55, 0x44, 0x33, 0x22, 0x11, 0x00}
	e, err := c.SendCommand(context.Background(), hci.OpLECreateConn,
		0x10, 0x10, 0, 0, peer, 0, 0x06, 0x06, 0, 0x64, 0x0F10, 0x0F10)
	require.NoError(t, err)
	assert.Equal(t, hci.EvtCommandStatus, e.Code)
	assert.True(t, e.Success())
}

func TestSendCommandTimeout(t *testing.T) {
	c, ctrl := testLink(t, WithTimeout(50*time.Millisecond))

	go io.Copy(ioutil.Discard, ctrl) // swallow the command, never answer

	_, err := c.SendCommand(context.Background(), hci.OpReset)
	var timeout *hci.CommandTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, hci.OpReset, timeout.Opcode)

	// The link survives a timed-out command.
	go func() {
		ctrl.Write([]byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00})
	}()
	e, err := c.SendCommand(context.Background(), hci.OpReset)
	require.NoError(t, err)
	assert.True(t, e.Success())
}

func TestSendCommandContextCancel(t *testing.T) {
	c, ctrl := testLink(t)
	go io.Copy(ioutil.Discard, ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := c.SendCommand(ctx, hci.OpReset)
	assert.Equal(t, context.Canceled, err)
}

func TestAsyncEventDelivery(t *testing.T) {
	c, ctrl := testLink(t)

	go ctrl.Write([]byte{0x04, 0x05, 0x04, 0x00, 0x41, 0x00, 0x13})

	select {
	case e := <-c.Events():
		assert.Equal(t, hci.EvtDisconnectComplete, e.Code)
		assert.Equal(t, uint64(0x0041), e.Params.Uint("Connection_Handle"))
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestACLDelivery(t *testing.T) {
	c, ctrl := testLink(t)

	go ctrl.Write([]byte{0x02, 0x40, 0x20, 0x02, 0x00, 0xAA, 0xBB})

	select {
	case a := <-c.ACL():
		assert.Equal(t, uint16(0x0040), a.Handle)
		assert.Equal(t, []byte{0xAA, 0xBB}, a.Data)
	case <-time.After(time.Second):
		t.Fatal("no acl packet delivered")
	}
}

func TestNoiseThenEvent(t *testing.T) {
	c, ctrl := testLink(t)

	go ctrl.Write(append([]byte{0x00, 0xF7}, 0x04, 0x05, 0x04, 0x00, 0x41, 0x00, 0x13))

	select {
	case e := <-c.Events():
		assert.Equal(t, hci.EvtDisconnectComplete, e.Code)
	case <-time.After(time.Second):
		t.Fatal("reader did not resynchronize")
	}
}

func TestTapSeesBothDirections(t *testing.T) {
	var tap safeBuffer
	c, ctrl := testLink(t, WithTap(&tap), WithTimeout(50*time.Millisecond))

	go func() {
		buf := make([]byte, 4)
		io.ReadFull(ctrl, buf)
		ctrl.Write([]byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00})
	}()

	_, err := c.SendCommand(context.Background(), hci.OpReset)
	require.NoError(t, err)

	want := append([]byte{0x01, 0x03, 0x0C, 0x00}, 0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00)
	assert.Eventually(t, func() bool {
		return bytes.Equal(tap.Bytes(), want)
	}, time.Second, 10*time.Millisecond)
}

func TestVendorCommandOverLink(t *testing.T) {
	c, ctrl := testLink(t)

	go func() {
		buf := make([]byte, 64)
		n, err := ctrl.Read(buf)
		if err != nil || n < 4 {
			return
		}
		// GET_POOL_STATS response with one pool.
		ctrl.Write([]byte{
			0x04, 0x0E, 0x0C,
			0x01, 0xFF, 0xFF,
			0x00,
			0x01,
			0x10, 0x00, 0x08, 0x02, 0x04, 0x20, 0x00,
		})
	}()

	e, err := c.SendCommand(context.Background(), hci.OpVSGetPoolStats)
	require.NoError(t, err)
	assert.True(t, e.Success())
	assert.Equal(t, uint64(1), e.Params.Uint("Num_Pools"))
	p, ok := e.Params.At("Buf_Size", 0)
	require.True(t, ok)
	assert.Equal(t, int64(0x10), p.Value)
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}
