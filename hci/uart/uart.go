package uart

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"
	"github.com/tarm/serial"

	"github.com/maxble/blehci/hci"
)

// Defaults for the serial link. 115200-8-N-1 is what the controller
// firmware ships with; the read timeout bounds how long the read loop
// sits on an idle line before it gets a chance to observe shutdown.
const (
	DefaultBaud        = 115200
	DefaultReadTimeout = 100 * time.Millisecond
	DefaultCmdTimeout  = 6 * time.Second
)

// Option configures a Conn.
type Option func(*Conn)

// WithBaud sets the serial line rate used by Dial.
func WithBaud(baud int) Option { return func(c *Conn) { c.baud = baud } }

// WithTimeout sets the default deadline for command responses.
func WithTimeout(d time.Duration) Option { return func(c *Conn) { c.cmdTimeout = d } }

// WithReadTimeout sets the serial read timeout used by Dial.
func WithReadTimeout(d time.Duration) Option { return func(c *Conn) { c.readTimeout = d } }

// WithRegistry substitutes the opcode registry, letting callers add
// vendor commands before any traffic is decoded.
func WithRegistry(r *hci.Registry) Option { return func(c *Conn) { c.reg = r } }

// WithLogger substitutes the connection logger.
func WithLogger(l log.Logger) Option { return func(c *Conn) { c.logger = l } }

// WithID tags the connection for logging; Dial defaults to a random
// UUID so concurrent links to multiple boards stay tellable apart.
func WithID(id string) Option { return func(c *Conn) { c.id = id } }

// WithTap duplicates every raw octet, both directions, to w. The tap
// sees the bytes whether or not they decode, which is what a sniffer
// needs.
func WithTap(w io.Writer) Option { return func(c *Conn) { c.tap = w } }

// Conn is one serial HCI link to a controller. A single read loop
// frames and decodes controller-to-host traffic; command/response
// pairing is keyed by opcode, and everything that is not a response
// to an in-flight command is delivered on Events.
type Conn struct {
	id     string
	rwc    io.ReadWriteCloser
	fr     *FrameReader
	reg    *hci.Registry
	tap    io.Writer
	logger log.Logger

	baud        int
	readTimeout time.Duration
	cmdTimeout  time.Duration
	idleEOF     bool // EOF from rwc means idle line, not stream end

	wmu sync.Mutex // serializes writes to rwc

	smu  sync.Mutex
	sent map[hci.Opcode]chan cmdResult

	evtCh chan *hci.Event
	aclCh chan *hci.ACLPacket

	awMu sync.Mutex
	aw   *ACLWriter

	done      chan struct{}
	closeOnce sync.Once
	err       error
}

// Dial opens the named serial port and starts the read loop.
func Dial(port string, opts ...Option) (*Conn, error) {
	c := newConn(nil, opts...)
	s, err := serial.OpenPort(&serial.Config{
		Name:        port,
		Baud:        c.baud,
		ReadTimeout: c.readTimeout,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "can't open serial port %s", port)
	}
	c.attach(s, true)
	return c, nil
}

// NewConn starts a connection over an already-open transport, such as
// a pty or a test pipe. EOF from rwc ends the connection.
func NewConn(rwc io.ReadWriteCloser, opts ...Option) *Conn {
	c := newConn(rwc, opts...)
	c.attach(rwc, false)
	return c
}

func newConn(rwc io.ReadWriteCloser, opts ...Option) *Conn {
	c := &Conn{
		rwc:         rwc,
		baud:        DefaultBaud,
		readTimeout: DefaultReadTimeout,
		cmdTimeout:  DefaultCmdTimeout,
		sent:        make(map[hci.Opcode]chan cmdResult),
		evtCh:       make(chan *hci.Event, 16),
		aclCh:       make(chan *hci.ACLPacket, 16),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id == "" {
		c.id = uuid.New().String()
	}
	if c.reg == nil {
		c.reg = hci.NewRegistry()
	}
	if c.logger == nil {
		c.logger = log.New("uart")
	}
	return c
}

func (c *Conn) attach(rwc io.ReadWriteCloser, idleEOF bool) {
	c.rwc = rwc
	c.idleEOF = idleEOF
	var r io.Reader = rwc
	if c.tap != nil {
		r = io.TeeReader(rwc, c.tap)
	}
	c.fr = NewFrameReader(r)
	go c.loop()
}

// ID returns the connection tag.
func (c *Conn) ID() string { return c.id }

// Registry returns the opcode registry used for this link.
func (c *Conn) Registry() *hci.Registry { return c.reg }

// Events delivers decoded async events: everything except the
// Command Complete / Command Status responses claimed by SendCommand.
func (c *Conn) Events() <-chan *hci.Event { return c.evtCh }

// ACL delivers decoded ACL data packets, as produced by the
// controller's ACL sink test modes.
func (c *Conn) ACL() <-chan *hci.ACLPacket { return c.aclCh }

// Done is closed when the read loop stops.
func (c *Conn) Done() <-chan struct{} { return c.done }

// Err returns the terminal read-loop error after Done is closed.
func (c *Conn) Err() error { return c.err }

// SendCommand encodes and writes one command, then blocks for the
// matching Command Complete or Command Status event. The deadline is
// the context's, bounded by the connection's command timeout; hitting
// it returns a CommandTimeoutError and leaves the link usable.
func (c *Conn) SendCommand(ctx context.Context, op hci.Opcode, args ...interface{}) (*hci.Event, error) {
	b, err := c.reg.EncodeCommand(op, args...)
	if err != nil {
		return nil, err
	}
	return c.submit(ctx, op, b)
}

// SendExtended writes one vendor extended command and waits like
// SendCommand.
func (c *Conn) SendExtended(ctx context.Context, op hci.Opcode, payload []byte) (*hci.Event, error) {
	b, err := c.reg.EncodeExtended(op, payload)
	if err != nil {
		return nil, err
	}
	return c.submit(ctx, op, b)
}

// cmdResult is what the read loop hands back to a waiting command:
// either the decoded response or the framing failure that response
// suffered.
type cmdResult struct {
	evt *hci.Event
	err error
}

func (c *Conn) submit(ctx context.Context, op hci.Opcode, b []byte) (*hci.Event, error) {
	ch := make(chan cmdResult, 1)
	c.smu.Lock()
	if _, busy := c.sent[op]; busy {
		c.smu.Unlock()
		return nil, errors.Errorf("uart: command %s already in flight", op)
	}
	c.sent[op] = ch
	c.smu.Unlock()
	defer func() {
		c.smu.Lock()
		delete(c.sent, op)
		c.smu.Unlock()
	}()

	if err := c.WritePacket(b); err != nil {
		return nil, err
	}
	c.logger.Debug("sent", "id", c.id, "opcode", op.String(), "raw", b)

	t := time.NewTimer(c.cmdTimeout)
	defer t.Stop()
	select {
	case r := <-ch:
		return r.evt, r.err
	case <-t.C:
		return nil, &hci.CommandTimeoutError{Opcode: op}
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		if c.err != nil {
			return nil, c.err
		}
		return nil, errors.New("uart: connection closed")
	}
}

// WritePacket writes one pre-framed packet verbatim.
func (c *Conn) WritePacket(b []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	select {
	case <-c.done:
		return errors.New("uart: connection closed")
	default:
	}
	if _, err := c.rwc.Write(b); err != nil {
		return errors.Wrap(err, "uart: write")
	}
	if c.tap != nil {
		if _, err := c.tap.Write(b); err != nil {
			c.logger.Warn("tap write failed", "id", c.id, "err", err.Error())
		}
	}
	return nil
}

// Close stops the read loop and closes the transport.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.rwc.Close()
	})
	return err
}

func (c *Conn) loop() {
	for {
		select {
		case <-c.done:
			return
		default:
		}

		pkt, err := c.fr.ReadPacket()
		switch {
		case err == nil:
			c.dispatch(pkt)
		case err == io.EOF && c.idleEOF:
			// Serial read timeout on an idle line.
		default:
			if _, ok := err.(*hci.IncompletePacketError); ok {
				c.logger.Warn("incomplete packet", "id", c.id, "err", err.Error())
				continue
			}
			select {
			case <-c.done:
			default:
				c.err = err
				c.logger.Error("read loop stopped", "id", c.id, "err", err.Error())
				c.Close()
			}
			return
		}
	}
}

func (c *Conn) dispatch(pkt []byte) {
	switch hci.PacketType(pkt[0]) {
	case hci.PacketTypeEvent:
		e, err := c.reg.DecodeEvent(pkt)
		if err != nil {
			// A command response that fails decoding still belongs to
			// its waiter; the opcode sits at a fixed offset in the raw
			// payload, so the failure can be delivered instead of
			// leaving the caller to time out.
			if op, ok := responseOpcode(pkt); ok {
				c.smu.Lock()
				ch, waiting := c.sent[op]
				c.smu.Unlock()
				if waiting {
					ch <- cmdResult{err: err}
					return
				}
			}
			c.logger.Warn("undecodable event", "id", c.id, "err", err.Error())
			return
		}
		c.logger.Debug("recv", "id", c.id, "event", e.Code.String(), "raw", pkt)
		if e.Code == hci.EvtCommandComplete || e.Code == hci.EvtCommandStatus {
			c.smu.Lock()
			ch, ok := c.sent[e.Opcode]
			c.smu.Unlock()
			if ok {
				ch <- cmdResult{evt: e}
				return
			}
			if e.Opcode == hci.OpNop {
				return // flow control advertisement
			}
			c.logger.Warn("unmanaged response", "id", c.id, "opcode", e.Opcode.String())
			return
		}
		if e.Code == hci.EvtNumCompletedPackets {
			c.creditACL(e)
		}
		select {
		case c.evtCh <- e:
		default:
			c.logger.Warn("event channel full, dropping", "id", c.id, "event", e.Code.String())
		}
	case hci.PacketTypeACLData:
		a, err := hci.DecodeACL(pkt)
		if err != nil {
			c.logger.Warn("undecodable acl packet", "id", c.id, "err", err.Error())
			return
		}
		select {
		case c.aclCh <- a:
		default:
			c.logger.Warn("acl channel full, dropping", "id", c.id)
		}
	default:
		c.logger.Warn("unexpected packet from controller", "id", c.id, "raw", pkt)
	}
}

// responseOpcode recovers the originating opcode from a raw Command
// Complete or Command Status packet whose full decode failed.
func responseOpcode(pkt []byte) (hci.Opcode, bool) {
	if len(pkt) < 3 || hci.PacketType(pkt[0]) != hci.PacketTypeEvent {
		return 0, false
	}
	params := pkt[3:]
	switch hci.EventCode(pkt[1]) {
	case hci.EvtCommandComplete:
		if len(params) >= 3 {
			return hci.Opcode(uint16(params[1]) | uint16(params[2])<<8), true
		}
	case hci.EvtCommandStatus:
		if len(params) >= 4 {
			return hci.Opcode(uint16(params[2]) | uint16(params[3])<<8), true
		}
	}
	return 0, false
}
