package decode

import (
	"bytes"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testSniffer wires a sniffer between two in-memory links and returns
// the far ends: ctrl plays the controller, host plays the
// application.
func testSniffer(t *testing.T, out *safeBuffer, opts ...SnifferOption) (ctrl, host net.Conn) {
	t.Helper()
	devSide, ctrl := net.Pipe()
	appSide, host := net.Pipe()
	s := newSniffer(devSide, appSide, out, opts...)
	s.Start()
	t.Cleanup(func() {
		s.Close()
		ctrl.Close()
		host.Close()
	})
	return ctrl, host
}

func TestSnifferForwardsAndRenders(t *testing.T) {
	var out safeBuffer
	ctrl, host := testSniffer(t, &out)

	evt := []byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00}
	go ctrl.Write(evt)

	got := make([]byte, len(evt))
	host.SetReadDeadline(time.Now().Add(time.Second))
	_, err := host.Read(got)
	require.NoError(t, err)
	assert.Equal(t, evt, got)

	assert.Eventually(t, func() bool {
		s := out.String()
		return strings.Contains(s, "[Controller-->Host]") &&
			strings.Contains(s, "EventCode=COMMAND_COMPLETE")
	}, time.Second, 10*time.Millisecond)
}

func TestSnifferHostToController(t *testing.T) {
	var out safeBuffer
	ctrl, host := testSniffer(t, &out)

	cmd := []byte{0x01, 0x03, 0x0C, 0x00}
	go host.Write(cmd)

	got := make([]byte, len(cmd))
	ctrl.SetReadDeadline(time.Now().Add(time.Second))
	_, err := ctrl.Read(got)
	require.NoError(t, err)
	assert.Equal(t, cmd, got)

	assert.Eventually(t, func() bool {
		s := out.String()
		return strings.Contains(s, "[Host-->Controller]") &&
			strings.Contains(s, "Command=CONTROLLER.RESET")
	}, time.Second, 10*time.Millisecond)
}

func TestSnifferModeFiltersRendering(t *testing.T) {
	var out safeBuffer
	ctrl, host := testSniffer(t, &out, WithSniffMode(SniffHostToCtrl))

	go host.Write([]byte{0x01, 0x03, 0x0C, 0x00})
	got := make([]byte, 4)
	ctrl.SetReadDeadline(time.Now().Add(time.Second))
	_, err := ctrl.Read(got)
	require.NoError(t, err)

	// Controller bytes still cross the proxy but are not rendered.
	go ctrl.Write([]byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00})
	fwd := make([]byte, 7)
	host.SetReadDeadline(time.Now().Add(time.Second))
	_, err = host.Read(fwd)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "[Host-->Controller]")
	}, time.Second, 10*time.Millisecond)
	assert.NotContains(t, out.String(), "[Controller-->Host]")
}

// stalledWriter blocks every Write until released.
type stalledWriter struct {
	release chan struct{}
}

func (w *stalledWriter) Write(p []byte) (int, error) {
	<-w.release
	return len(p), nil
}

func TestSnifferForwardingUnthrottledByRenderer(t *testing.T) {
	out := &stalledWriter{release: make(chan struct{})}
	devSide, ctrl := net.Pipe()
	appSide, host := net.Pipe()
	s := newSniffer(devSide, appSide, out)
	s.Start()
	t.Cleanup(func() {
		close(out.release)
		s.Close()
		ctrl.Close()
		host.Close()
	})

	// The renderer is stuck on its first write; bytes must keep
	// crossing the proxy regardless.
	evt := []byte{0x04, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00}
	for i := 0; i < 20; i++ {
		go ctrl.Write(evt)
		got := make([]byte, len(evt))
		host.SetReadDeadline(time.Now().Add(time.Second))
		_, err := host.Read(got)
		require.NoError(t, err)
		assert.Equal(t, evt, got)
	}
}

func TestParseSniffMode(t *testing.T) {
	for in, want := range map[string]SniffMode{
		"":              SniffBidirectional,
		"bidirectional": SniffBidirectional,
		"both":          SniffBidirectional,
		"c2h":           SniffCtrlToHost,
		"h2c":           SniffHostToCtrl,
	} {
		m, err := ParseSniffMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, m)
	}
	_, err := ParseSniffMode("sideways")
	require.Error(t, err)
}
