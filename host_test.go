package blehci

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"

	log "github.com/mgutz/logxi/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxble/blehci/hci"
	"github.com/maxble/blehci/hci/uart"
)

// fakeController answers each received command with the next scripted
// response.
func fakeController(t *testing.T, responses ...[]byte) *Host {
	hostSide, ctrlSide := net.Pipe()
	h := NewHost(uart.NewConn(hostSide))
	t.Cleanup(func() { h.Close() })

	go func() {
		buf := make([]byte, 512)
		for _, resp := range responses {
			if _, err := ctrlSide.Read(buf); err != nil {
				return
			}
			if _, err := ctrlSide.Write(resp); err != nil {
				return
			}
		}
		io.Copy(&bytes.Buffer{}, ctrlSide)
	}()
	return h
}

func TestHostReset(t *testing.T) {
	h := fakeController(t, []byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00})

	status, err := h.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hci.StatusSuccess, status)
}

func TestHostStatusIsDataNotError(t *testing.T) {
	// Command Disallowed comes back as a status value; the call
	// itself succeeds.
	h := fakeController(t, []byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x0C})

	status, err := h.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hci.StatusCode(0x0C), status)
	assert.NotEqual(t, hci.StatusSuccess, status)
}

// recordLogger keeps the messages a host emits so tests can assert on
// them.
type recordLogger struct {
	*log.NullLogger
	msgs []string
}

func (l *recordLogger) Debug(msg string, args ...interface{}) { l.msgs = append(l.msgs, msg) }

func (l *recordLogger) Warn(msg string, args ...interface{}) error {
	l.msgs = append(l.msgs, msg)
	return nil
}

func TestHostLogsErrorStatus(t *testing.T) {
	hostSide, ctrlSide := net.Pipe()
	rec := &recordLogger{NullLogger: log.NullLog}
	h := NewHost(uart.NewConn(hostSide), WithHostLogger(rec))
	t.Cleanup(func() { h.Close() })

	go func() {
		buf := make([]byte, 512)
		if _, err := ctrlSide.Read(buf); err != nil {
			return
		}
		ctrlSide.Write([]byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x0C})
		io.Copy(&bytes.Buffer{}, ctrlSide)
	}()

	status, err := h.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hci.StatusCode(0x0C), status)
	require.Len(t, rec.msgs, 1)
	assert.Equal(t, "command returned error status", rec.msgs[0])
}

func TestHostReadRSSISentinel(t *testing.T) {
	h := fakeController(t, []byte{0x04, 0x0E, 0x07, 0x01, 0x05, 0x14, 0x00, 0x41, 0x00, 0x7F})

	rssi, status, err := h.ReadRSSI(context.Background(), 0x0041)
	require.NoError(t, err)
	assert.Equal(t, hci.StatusSuccess, status)
	assert.Equal(t, int8(127), rssi)
}

func TestHostReadRSSIUnmeasured(t *testing.T) {
	h := fakeController(t, []byte{0x04, 0x0E, 0x07, 0x01, 0x05, 0x14, 0x00, 0x01, 0x00, 0xFF})

	rssi, status, err := h.ReadRSSI(context.Background(), 0x0001)
	require.NoError(t, err)
	assert.Equal(t, hci.StatusSuccess, status)
	assert.Equal(t, int8(127), rssi)
}

func TestHostReadBDAddr(t *testing.T) {
	h := fakeController(t, []byte{
		0x04, 0x0E, 0x0A, 0x01, 0x09, 0x10, 0x00,
		0x55, 0x44, 0x33, 0x22, 0x11, 0x00,
	})

	addr, status, err := h.ReadBDAddr(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hci.StatusSuccess, status)
	assert.Equal(t, "00:11:22:33:44:55", addr.String())
}

func TestHostGetPoolStats(t *testing.T) {
	h := fakeController(t, []byte{
		0x04, 0x0E, 0x13,
		0x01, 0xFF, 0xFF,
		0x00,
		0x02,
		0x10, 0x00, 0x08, 0x02, 0x04, 0x20, 0x00,
		0x40, 0x00, 0x02, 0x01, 0x01, 0x80, 0x00,
	})

	pools, status, err := h.GetPoolStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hci.StatusSuccess, status)
	require.Len(t, pools, 2)
	assert.Equal(t, PoolStats{BufSize: 0x10, NumBuf: 8, NumAlloc: 2, MaxAlloc: 4, MaxReqLen: 0x20}, pools[0])
	assert.Equal(t, PoolStats{BufSize: 0x40, NumBuf: 2, NumAlloc: 1, MaxAlloc: 1, MaxReqLen: 0x80}, pools[1])
}

func TestHostGetConnStats(t *testing.T) {
	h := fakeController(t, []byte{
		0x04, 0x0E, 0x20,
		0x01, 0xFD, 0xFF,
		0x00,
		0xE8, 0x03, 0x00, 0x00, // rx 1000
		0x0A, 0x00, 0x00, 0x00, // rx crc 10
		0x05, 0x00, 0x00, 0x00, // rx timeout 5
		0xD0, 0x07, 0x00, 0x00, // tx 2000
		0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x04, 0x00,
	})

	stats, status, err := h.GetConnStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hci.StatusSuccess, status)
	assert.Equal(t, uint32(1000), stats.RxData)
	assert.Equal(t, uint32(2000), stats.TxData)
	assert.InDelta(t, 100*(1-1000.0/1015.0), stats.PER(), 1e-9)
}

func TestHostGetRandAddr(t *testing.T) {
	h := fakeController(t, []byte{
		0x04, 0x0E, 0x0A, 0x01, 0xF1, 0xFF, 0x00,
		0x01, 0x02, 0x03, 0x04, 0x05, 0xC6,
	})

	addr, status, err := h.GetRandAddr(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hci.StatusSuccess, status)
	assert.Equal(t, "C6:05:04:03:02:01", addr.String())
}

func TestHostSetAdvDataTooLong(t *testing.T) {
	h := fakeController(t)
	_, err := h.SetAdvData(context.Background(), make([]byte, 32))
	require.Error(t, err)
}

func TestHostParamValidation(t *testing.T) {
	h := fakeController(t)

	p := DefaultConnParams()
	p.IntervalMin = 0x10
	p.IntervalMax = 0x08
	_, err := h.UpdateConnParams(context.Background(), 0x0041, p)
	require.Error(t, err)

	s := DefaultScanParams()
	s.Window = s.Interval + 1
	_, err = h.SetScanParams(context.Background(), s)
	require.Error(t, err)
}

func TestHostGenerateISO(t *testing.T) {
	hostSide, ctrlSide := net.Pipe()
	h := NewHost(uart.NewConn(hostSide))
	t.Cleanup(func() { h.Close() })

	got := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 512)
		n, err := ctrlSide.Read(buf)
		if err != nil {
			return
		}
		got <- append([]byte(nil), buf[:n]...)
		ctrlSide.Write([]byte{0x04, 0x0E, 0x04, 0x01, 0xD5, 0xFF, 0x00})
		io.Copy(&bytes.Buffer{}, ctrlSide)
	}()

	status, err := h.GenerateISO(context.Background(), 0x0001, 500, 8)
	require.NoError(t, err)
	assert.Equal(t, hci.StatusSuccess, status)
	assert.Equal(t, []byte{0x01, 0xD5, 0xFF, 0x05, 0x01, 0x00, 0xF4, 0x01, 0x08}, <-got)
}

func TestHostGetPeerMinUsedChannels(t *testing.T) {
	h := fakeController(t, []byte{
		0x04, 0x0E, 0x07, 0x01, 0xEB, 0xFF, 0x00, 0x02, 0x03, 0x05,
	})

	chans, status, err := h.GetPeerMinUsedChannels(context.Background(), 0x0040)
	require.NoError(t, err)
	assert.Equal(t, hci.StatusSuccess, status)
	assert.Equal(t, PeerMinUsedChannels{PHY1M: 2, PHY2M: 3, PHYCoded: 5}, chans)
}

func TestHostSetP256PrivateKey(t *testing.T) {
	hostSide, ctrlSide := net.Pipe()
	h := NewHost(uart.NewConn(hostSide))
	t.Cleanup(func() { h.Close() })

	got := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 512)
		n, err := ctrlSide.Read(buf)
		if err != nil {
			return
		}
		got <- append([]byte(nil), buf[:n]...)
		ctrlSide.Write([]byte{0x04, 0x0E, 0x04, 0x01, 0xE8, 0xFF, 0x00})
		io.Copy(&bytes.Buffer{}, ctrlSide)
	}()

	var key [32]byte
	key[0], key[31] = 0xAA, 0x55
	status, err := h.SetP256PrivateKey(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, hci.StatusSuccess, status)

	req := <-got
	require.Len(t, req, 4+32)
	assert.Equal(t, []byte{0x01, 0xE8, 0xFF, 0x20}, req[:4])
	assert.Equal(t, key[:], req[4:])
}

func TestHostSetValidatePubKeyMode(t *testing.T) {
	h := fakeController(t, []byte{0x04, 0x0E, 0x04, 0x01, 0xEC, 0xFF, 0x00})

	status, err := h.SetValidatePubKeyMode(context.Background(), PubKeyValidateALT2)
	require.NoError(t, err)
	assert.Equal(t, hci.StatusSuccess, status)
}

func TestHostRegisterVendorCommand(t *testing.T) {
	h := fakeController(t, []byte{0x04, 0x0E, 0x05, 0x01, 0xA5, 0xFE, 0x00, 0x2A})

	op := hci.NewOpcode(0x3F, 0x2A5)
	require.NoError(t, h.Register(hci.CommandDef{
		Name:    "READ_KNOB",
		Opcode:  op,
		Returns: []hci.Field{hci.U8("Status"), hci.U8("Knob")},
	}))

	e, err := h.Conn().SendCommand(context.Background(), op)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x2A), e.Params.Uint("Knob"))
}
