package blehci

import (
	"time"

	"github.com/pkg/errors"
)

// Address types accepted by the advertising, scanning and connection
// parameter blocks.
const (
	AddrPublic         uint8 = 0x00
	AddrRandom         uint8 = 0x01
	AddrPublicIdentity uint8 = 0x02
	AddrRandomIdentity uint8 = 0x03
)

// Interval unit conversions. Advertising and scan intervals tick in
// 625 microsecond units, connection intervals in 1.25 millisecond
// units, supervision timeouts in 10 millisecond units.
func ticks625us(d time.Duration) uint16  { return uint16(d / (625 * time.Microsecond)) }
func ticks1250us(d time.Duration) uint16 { return uint16(d / (1250 * time.Microsecond)) }
func ticks10ms(d time.Duration) uint16   { return uint16(d / (10 * time.Millisecond)) }

// AdvParams configures legacy advertising. The zero value is not
// useful; start from DefaultAdvParams.
type AdvParams struct {
	IntervalMin  uint16
	IntervalMax  uint16
	AdvType      uint8
	OwnAddrType  uint8
	PeerAddrType uint8
	PeerAddr     BDAddr
	ChannelMap   uint8
	FilterPolicy uint8
}

// DefaultAdvParams matches the controller's reset state: 60ms
// interval, connectable undirected, all three primary channels.
func DefaultAdvParams() AdvParams {
	return AdvParams{
		IntervalMin: 0x60,
		IntervalMax: 0x60,
		ChannelMap:  0x7,
	}
}

// SetInterval pins both interval bounds to the given duration.
func (p *AdvParams) SetInterval(d time.Duration) {
	t := ticks625us(d)
	p.IntervalMin, p.IntervalMax = t, t
}

func (p AdvParams) validate() error {
	if p.IntervalMin > p.IntervalMax {
		return errors.New("advertising interval min exceeds max")
	}
	return nil
}

// ScanParams configures legacy scanning.
type ScanParams struct {
	ScanType     uint8
	Interval     uint16
	Window       uint16
	OwnAddrType  uint8
	FilterPolicy uint8
}

// DefaultScanParams is active scanning with a fully open duty cycle
// of 10ms.
func DefaultScanParams() ScanParams {
	return ScanParams{ScanType: 0x1, Interval: 0x10, Window: 0x10}
}

// SetWindow sets the scan interval and window from durations.
func (p *ScanParams) SetWindow(interval, window time.Duration) {
	p.Interval = ticks625us(interval)
	p.Window = ticks625us(window)
}

func (p ScanParams) validate() error {
	if p.Window > p.Interval {
		return errors.New("scan window exceeds scan interval")
	}
	return nil
}

// ConnParams are the negotiable link parameters, shared by connection
// creation and connection update.
type ConnParams struct {
	IntervalMin uint16
	IntervalMax uint16
	MaxLatency  uint16
	SupTimeout  uint16
	MinCELength uint16
	MaxCELength uint16
}

// DefaultConnParams is a 7.5ms interval with a 1s supervision
// timeout, the tightest interval allowed and the usual choice
// for throughput testing.
func DefaultConnParams() ConnParams {
	return ConnParams{
		IntervalMin: 0x6,
		IntervalMax: 0x6,
		SupTimeout:  0x64,
		MinCELength: 0x0F10,
		MaxCELength: 0x0F10,
	}
}

// SetInterval pins both interval bounds to the given duration.
func (p *ConnParams) SetInterval(d time.Duration) {
	t := ticks1250us(d)
	p.IntervalMin, p.IntervalMax = t, t
}

// SetSupTimeout sets the supervision timeout from a duration.
func (p *ConnParams) SetSupTimeout(d time.Duration) {
	p.SupTimeout = ticks10ms(d)
}

func (p ConnParams) validate() error {
	if p.IntervalMin > p.IntervalMax {
		return errors.New("connection interval min exceeds max")
	}
	if p.IntervalMin < 0x6 || p.IntervalMax > 0x0C80 {
		return errors.New("connection interval out of range")
	}
	return nil
}

// EstablishConnParams directs connection creation at a peer.
type EstablishConnParams struct {
	PeerAddr         BDAddr
	PeerAddrType     uint8
	OwnAddrType      uint8
	ScanInterval     uint16
	ScanWindow       uint16
	InitFilterPolicy uint8
	Conn             ConnParams
}

// DefaultEstablishConnParams targets the given peer with default scan
// and connection parameters.
func DefaultEstablishConnParams(peer BDAddr) EstablishConnParams {
	return EstablishConnParams{
		PeerAddr:     peer,
		ScanInterval: 0x10,
		ScanWindow:   0x10,
		Conn:         DefaultConnParams(),
	}
}

func (p EstablishConnParams) validate() error {
	if p.ScanWindow > p.ScanInterval {
		return errors.New("scan window exceeds scan interval")
	}
	return p.Conn.validate()
}
