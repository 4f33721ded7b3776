package uart

import (
	"context"

	"github.com/pkg/errors"

	"github.com/maxble/blehci/hci"
)

// framePool recycles fixed-size frame buffers across ACL writes.
type framePool struct {
	ch chan []byte
}

func newFramePool(size, cnt int) *framePool {
	p := &framePool{ch: make(chan []byte, cnt)}
	for len(p.ch) < cnt {
		p.ch <- make([]byte, 0, size)
	}
	return p
}

func (p *framePool) alloc() []byte { return (<-p.ch)[:0] }

func (p *framePool) free(b []byte) {
	select {
	case p.ch <- b:
	default:
	}
}

// Packet boundary flags for host-to-controller ACL data
// [Vol 4, Part E, 5.4.2].
const (
	pbFirstNonFlushable = 0x0
	pbContinuing        = 0x1
)

// ACLWriter sends host-to-controller ACL data under the controller's
// packet-based flow control [Vol 4, Part E, 4.1.1]. Data longer than
// the controller's buffer length is fragmented; each fragment costs
// one credit, and credits come back with Number Of Completed Packets
// events. Size it from the LE Read Buffer Size return parameters.
type ACLWriter struct {
	c       *Conn
	pktLen  int
	credits chan struct{}
	pool    *framePool
}

// ACLWriter returns the connection's ACL write path, creating it with
// the given buffer geometry on first use. pktLen is the controller's
// ACL data packet length, numPkts its total buffer count.
func (c *Conn) ACLWriter(pktLen, numPkts int) *ACLWriter {
	c.awMu.Lock()
	defer c.awMu.Unlock()
	if c.aw == nil {
		w := &ACLWriter{
			c:       c,
			pktLen:  pktLen,
			credits: make(chan struct{}, numPkts),
			pool:    newFramePool(5+pktLen, numPkts),
		}
		for len(w.credits) < numPkts {
			w.credits <- struct{}{}
		}
		c.aw = w
	}
	return c.aw
}

// Write ships data on the given connection handle, blocking for
// credits when the controller's buffers are full.
func (w *ACLWriter) Write(ctx context.Context, handle uint16, data []byte) error {
	if len(data) == 0 {
		return errors.New("uart: empty ACL payload")
	}
	pb := uint8(pbFirstNonFlushable)
	for len(data) > 0 {
		n := len(data)
		if n > w.pktLen {
			n = w.pktLen
		}
		if err := w.take(ctx); err != nil {
			return err
		}
		if err := w.writeFragment(handle, pb, data[:n]); err != nil {
			return err
		}
		data = data[n:]
		pb = pbContinuing
	}
	return nil
}

func (w *ACLWriter) writeFragment(handle uint16, pb uint8, data []byte) error {
	b := w.pool.alloc()
	defer w.pool.free(b)
	b = append(b,
		byte(hci.PacketTypeACLData),
		byte(handle),
		byte(handle>>8)&0x0F|pb<<4,
		byte(len(data)),
		byte(len(data)>>8),
	)
	b = append(b, data...)
	return w.c.WritePacket(b)
}

func (w *ACLWriter) take(ctx context.Context) error {
	select {
	case <-w.credits:
		return nil
	default:
	}
	select {
	case <-w.credits:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-w.c.done:
		return errors.New("uart: connection closed")
	}
}

// credit returns n buffers to the writer. Extra credits from a
// controller reset are dropped rather than over-filling.
func (w *ACLWriter) credit(n int) {
	for i := 0; i < n; i++ {
		select {
		case w.credits <- struct{}{}:
		default:
			return
		}
	}
}

// creditACL feeds Number Of Completed Packets counts back to the ACL
// writer. The event still reaches Events subscribers afterwards.
func (c *Conn) creditACL(e *hci.Event) {
	c.awMu.Lock()
	w := c.aw
	c.awMu.Unlock()
	if w == nil || e.Params == nil {
		return
	}
	total := 0
	for _, p := range e.Params.Params() {
		if p.Name == "Num_Completed_Packets" {
			total += int(p.Value)
		}
	}
	w.credit(total)
}
