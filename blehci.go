// Package blehci drives a Bluetooth LE controller over a serial HCI
// link: standard command encode/decode, the vendor-specific test and
// statistics surface, and typed access to the returned parameters.
package blehci

import (
	"context"
	"fmt"
	"strings"
	"sync"

	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"

	"github.com/maxble/blehci/hci"
	"github.com/maxble/blehci/hci/uart"
)

// BDAddr is a device address in display order, a[0] the most
// significant octet.
type BDAddr [6]byte

// ParseBDAddr parses "00:11:22:33:44:55".
func ParseBDAddr(s string) (BDAddr, error) {
	var a BDAddr
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return a, errors.Errorf("bad address %q", s)
	}
	for i, p := range parts {
		var v uint8
		if _, err := fmt.Sscanf(p, "%02x", &v); err != nil {
			return a, errors.Errorf("bad address %q", s)
		}
		a[i] = v
	}
	return a, nil
}

func (a BDAddr) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", a[0], a[1], a[2], a[3], a[4], a[5])
}

// wire returns the address LSB first, as carried in packets.
func (a BDAddr) wire() []byte {
	return []byte{a[5], a[4], a[3], a[2], a[1], a[0]}
}

func addrFromWire(b []byte) BDAddr {
	var a BDAddr
	if len(b) == 6 {
		for i := 0; i < 6; i++ {
			a[i] = b[5-i]
		}
	}
	return a
}

// Host is the high-level handle to one controller. Its methods issue
// single commands and surface the controller's status code as a
// value; only transport, encoding, and framing problems come back as
// errors. A non-success status is data the caller inspects, not a
// failed call.
type Host struct {
	conn   *uart.Conn
	logger log.Logger

	awOnce sync.Once
	aw     *uart.ACLWriter
	awErr  error
}

// Dial opens the named serial port and returns a host around it.
func Dial(port string, opts ...uart.Option) (*Host, error) {
	conn, err := uart.Dial(port, opts...)
	if err != nil {
		return nil, err
	}
	return NewHost(conn), nil
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostLogger substitutes the host logger.
func WithHostLogger(l log.Logger) HostOption { return func(h *Host) { h.logger = l } }

// NewHost wraps an established connection.
func NewHost(conn *uart.Conn, opts ...HostOption) *Host {
	h := &Host{conn: conn, logger: log.New("blehci")}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Conn returns the underlying serial link.
func (h *Host) Conn() *uart.Conn { return h.conn }

// Events exposes async controller traffic: disconnections,
// advertising reports, vendor events.
func (h *Host) Events() <-chan *hci.Event { return h.conn.Events() }

// Close tears down the serial link.
func (h *Host) Close() error { return h.conn.Close() }

// Register adds a vendor command definition to this host's registry.
func (h *Host) Register(def hci.CommandDef) error {
	return h.conn.Registry().Register(def)
}

// cmd issues one command and returns its decoded response event. Any
// response, success or not, is a completed exchange.
func (h *Host) cmd(ctx context.Context, op hci.Opcode, args ...interface{}) (*hci.Event, error) {
	e, err := h.conn.SendCommand(ctx, op, args...)
	if err != nil {
		h.logger.Warn("command failed", "opcode", op.String(), "err", err.Error())
		return nil, err
	}
	if e.HasStatus && !e.Success() {
		h.logger.Debug("command returned error status", "opcode", op.String(), "status", e.Status.String())
	}
	return e, nil
}

// status issues a command whose response carries nothing of interest
// beyond the status code.
func (h *Host) status(ctx context.Context, op hci.Opcode, args ...interface{}) (hci.StatusCode, error) {
	e, err := h.cmd(ctx, op, args...)
	if err != nil {
		return 0, err
	}
	return e.Status, nil
}
