package decode

import (
	"fmt"
	"io"
	"sync"

	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"
	"github.com/tarm/serial"

	"github.com/maxble/blehci/hci"
	"github.com/maxble/blehci/hci/uart"
)

// SniffMode selects which traffic directions get rendered. Bytes are
// always forwarded in both directions regardless of mode.
type SniffMode int

const (
	SniffBidirectional SniffMode = iota
	SniffCtrlToHost
	SniffHostToCtrl
)

func (m SniffMode) String() string {
	switch m {
	case SniffBidirectional:
		return "bidirectional"
	case SniffCtrlToHost:
		return "c2h"
	case SniffHostToCtrl:
		return "h2c"
	}
	return fmt.Sprintf("SniffMode(%d)", int(m))
}

// ParseSniffMode maps the command-line mode names to a SniffMode.
func ParseSniffMode(s string) (SniffMode, error) {
	switch s {
	case "bidirectional", "both", "":
		return SniffBidirectional, nil
	case "c2h":
		return SniffCtrlToHost, nil
	case "h2c":
		return SniffHostToCtrl, nil
	}
	return 0, errors.Errorf("unknown sniff mode %q", s)
}

// Sniffer sits between an application and a serial-attached
// controller. It exposes a pseudoterminal the application opens in
// place of the real port, forwards raw bytes both ways, and renders
// the relayed packets to an output writer.
type Sniffer struct {
	dev    io.ReadWriteCloser
	app    io.ReadWriteCloser
	pts    string
	dec    *Decoder
	out    io.Writer
	mode   SniffMode
	logger log.Logger

	// dev reads EOF on serial idle timeouts; such EOFs must not tear
	// the relay down.
	devIdleEOF bool

	outMu     sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// SnifferOption configures a Sniffer.
type SnifferOption func(*Sniffer)

// WithSniffMode selects which directions are rendered.
func WithSniffMode(m SniffMode) SnifferOption {
	return func(s *Sniffer) { s.mode = m }
}

// WithSniffRegistry decodes against reg instead of the built-in
// tables.
func WithSniffRegistry(reg *hci.Registry) SnifferOption {
	return func(s *Sniffer) { s.dec = NewDecoder(reg) }
}

// WithSniffLogger replaces the sniffer's logger.
func WithSniffLogger(l log.Logger) SnifferOption {
	return func(s *Sniffer) { s.logger = l }
}

// NewSniffer opens the controller's serial port and allocates the
// application-facing pseudoterminal. Rendered traffic goes to out.
// The sniffer does not relay until Start is called.
func NewSniffer(port string, baud int, out io.Writer, opts ...SnifferOption) (*Sniffer, error) {
	dev, err := serial.OpenPort(&serial.Config{
		Name:        port,
		Baud:        baud,
		ReadTimeout: uart.DefaultReadTimeout,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", port)
	}
	ptmx, pts, err := openPty()
	if err != nil {
		dev.Close()
		return nil, errors.Wrap(err, "allocating pty")
	}
	s := newSniffer(dev, ptmx, out, opts...)
	s.pts = pts
	s.devIdleEOF = true
	return s, nil
}

func newSniffer(dev, app io.ReadWriteCloser, out io.Writer, opts ...SnifferOption) *Sniffer {
	s := &Sniffer{
		dev:  dev,
		app:  app,
		dec:  NewDecoder(nil),
		out:  out,
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New("sniff")
	}
	return s
}

// ProxyPort returns the pseudoterminal path the application should
// open in place of the real serial port.
func (s *Sniffer) ProxyPort() string { return s.pts }

// Start launches the two relay directions.
func (s *Sniffer) Start() {
	s.wg.Add(2)
	go s.relay(s.dev, s.app, "[Controller-->Host]", s.mode != SniffHostToCtrl, s.devIdleEOF)
	go s.relay(s.app, s.dev, "[Host-->Controller]", s.mode != SniffCtrlToHost, false)
}

// Close tears down both sides and waits for the relays to drain.
func (s *Sniffer) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.dev.Close()
		s.app.Close()
	})
	s.wg.Wait()
	return nil
}

func (s *Sniffer) relay(src io.Reader, dst io.Writer, banner string, decode, idleEOF bool) {
	defer s.wg.Done()

	// The renderer hangs off a bounded queue so a stalled output
	// writer can never backpressure the byte forwarding; a full queue
	// drops the chunk and lets the frame reader resynchronize.
	var q chan []byte
	if decode {
		q = make(chan []byte, 64)
		defer close(q)
		s.wg.Add(1)
		go s.render(&chunkReader{ch: q}, banner)
	}

	buf := make([]byte, 4096)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				s.fail(banner, werr)
				return
			}
			if q != nil {
				select {
				case q <- append([]byte(nil), buf[:n]...):
				default:
					s.logger.Warn("render queue full, dropping", "direction", banner)
				}
			}
		}
		switch {
		case err == nil:
		case err == io.EOF && idleEOF && !s.closed():
			// serial read timeout with no data, keep polling
		default:
			s.fail(banner, err)
			return
		}
	}
}

// chunkReader adapts the relay's chunk queue to the frame reader.
type chunkReader struct {
	ch   chan []byte
	rest []byte
}

func (r *chunkReader) Read(p []byte) (int, error) {
	for len(r.rest) == 0 {
		b, ok := <-r.ch
		if !ok {
			return 0, io.EOF
		}
		r.rest = b
	}
	n := copy(p, r.rest)
	r.rest = r.rest[n:]
	return n, nil
}

func (s *Sniffer) render(r io.Reader, banner string) {
	defer s.wg.Done()
	fr := uart.NewFrameReader(r)
	for {
		pkt, err := fr.ReadPacket()
		if err == io.EOF {
			return
		}
		if err != nil {
			if _, ok := err.(*hci.IncompletePacketError); ok {
				continue
			}
			s.logger.Warn("render stopped", "direction", banner, "err", err.Error())
			return
		}
		text, derr := s.dec.Packet(pkt)

		s.outMu.Lock()
		fmt.Fprintln(s.out, banner)
		if derr != nil {
			fmt.Fprintf(s.out, "--%v--\n", derr)
		} else {
			fmt.Fprintln(s.out, text)
		}
		s.outMu.Unlock()
	}
}

func (s *Sniffer) fail(banner string, err error) {
	if s.closed() {
		return
	}
	if err != io.EOF {
		s.logger.Error("relay stopped", "direction", banner, "err", err.Error())
	}
}

func (s *Sniffer) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
