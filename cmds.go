package blehci

import (
	"context"

	"github.com/pkg/errors"

	"github.com/maxble/blehci/hci"
)

// Reset issues HCI Reset and returns the controller status.
func (h *Host) Reset(ctx context.Context) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpReset)
}

// SetEventMask sets the classic event mask.
func (h *Host) SetEventMask(ctx context.Context, mask uint64) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpSetEventMask, mask)
}

// SetEventMaskLE sets the LE event mask.
func (h *Host) SetEventMaskLE(ctx context.Context, mask uint64) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpLESetEventMask, mask)
}

// ReadBDAddr reads the controller's public address.
func (h *Host) ReadBDAddr(ctx context.Context) (BDAddr, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpReadBDAddr)
	if err != nil {
		return BDAddr{}, 0, err
	}
	return addrFromWire(e.Params.Bytes("BD_ADDR")), e.Status, nil
}

// LocalVersion is the controller's version identification block.
type LocalVersion struct {
	HCIVersion    uint8
	HCIRevision   uint16
	LMPVersion    uint8
	Manufacturer  uint16
	LMPSubversion uint16
}

// ReadLocalVersion reads the controller's version information.
func (h *Host) ReadLocalVersion(ctx context.Context) (LocalVersion, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpReadLocalVerInfo)
	if err != nil {
		return LocalVersion{}, 0, err
	}
	return LocalVersion{
		HCIVersion:    uint8(e.Params.Uint("HCI_Version")),
		HCIRevision:   uint16(e.Params.Uint("HCI_Revision")),
		LMPVersion:    uint8(e.Params.Uint("LMP_Version")),
		Manufacturer:  uint16(e.Params.Uint("Manufacturer_Name")),
		LMPSubversion: uint16(e.Params.Uint("LMP_Subversion")),
	}, e.Status, nil
}

// ReadRSSI reads the RSSI of an active connection. An RSSI of 127
// means the measurement is unavailable and is returned as-is; a raw
// 0xFF, which some firmware emits instead when no measurement exists,
// is folded into the same sentinel so callers check one value.
func (h *Host) ReadRSSI(ctx context.Context, handle uint16) (int8, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpReadRSSI, handle)
	if err != nil {
		return 0, 0, err
	}
	rssi := int8(e.Params.Int("RSSI"))
	if rssi == -1 {
		rssi = hci.RSSIInvalid
	}
	return rssi, e.Status, nil
}

// SetRandomAddress sets the controller's random address.
func (h *Host) SetRandomAddress(ctx context.Context, addr BDAddr) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpLESetRandAddr, addr.wire())
}

// SetAdvParams configures legacy advertising.
func (h *Host) SetAdvParams(ctx context.Context, p AdvParams) (hci.StatusCode, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	return h.status(ctx, hci.OpLESetAdvParam,
		p.IntervalMin, p.IntervalMax, p.AdvType,
		p.OwnAddrType, p.PeerAddrType, p.PeerAddr.wire(),
		p.ChannelMap, p.FilterPolicy)
}

// SetAdvData sets the advertising payload, at most 31 octets.
func (h *Host) SetAdvData(ctx context.Context, data []byte) (hci.StatusCode, error) {
	padded, err := pad31(data)
	if err != nil {
		return 0, err
	}
	return h.status(ctx, hci.OpLESetAdvData, len(data), padded)
}

// SetScanRespData sets the scan response payload, at most 31 octets.
func (h *Host) SetScanRespData(ctx context.Context, data []byte) (hci.StatusCode, error) {
	padded, err := pad31(data)
	if err != nil {
		return 0, err
	}
	return h.status(ctx, hci.OpLESetScanRespData, len(data), padded)
}

func pad31(data []byte) ([]byte, error) {
	if len(data) > 31 {
		return nil, errors.Errorf("payload is %d octets, limit is 31", len(data))
	}
	padded := make([]byte, 31)
	copy(padded, data)
	return padded, nil
}

// EnableAdv starts or stops legacy advertising.
func (h *Host) EnableAdv(ctx context.Context, enable bool) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpLESetAdvEnable, enable)
}

// SetScanParams configures legacy scanning.
func (h *Host) SetScanParams(ctx context.Context, p ScanParams) (hci.StatusCode, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	return h.status(ctx, hci.OpLESetScanParam,
		p.ScanType, p.Interval, p.Window, p.OwnAddrType, p.FilterPolicy)
}

// EnableScan starts or stops scanning.
func (h *Host) EnableScan(ctx context.Context, enable, filterDuplicates bool) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpLESetScanEnable, enable, filterDuplicates)
}

// CreateConnection starts connection establishment. The controller
// answers with a Command Status immediately; the LE Connection
// Complete event arrives on Events when the link is up.
func (h *Host) CreateConnection(ctx context.Context, p EstablishConnParams) (hci.StatusCode, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	return h.status(ctx, hci.OpLECreateConn,
		p.ScanInterval, p.ScanWindow, p.InitFilterPolicy,
		p.PeerAddrType, p.PeerAddr.wire(), p.OwnAddrType,
		p.Conn.IntervalMin, p.Conn.IntervalMax, p.Conn.MaxLatency,
		p.Conn.SupTimeout, p.Conn.MinCELength, p.Conn.MaxCELength)
}

// CancelCreateConnection aborts a pending connection establishment.
func (h *Host) CancelCreateConnection(ctx context.Context) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpLECreateConnCancel)
}

// UpdateConnParams renegotiates the parameters of a live connection.
func (h *Host) UpdateConnParams(ctx context.Context, handle uint16, p ConnParams) (hci.StatusCode, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	return h.status(ctx, hci.OpLEConnUpdate,
		handle, p.IntervalMin, p.IntervalMax, p.MaxLatency,
		p.SupTimeout, p.MinCELength, p.MaxCELength)
}

// Disconnect tears down a connection with the given reason code.
func (h *Host) Disconnect(ctx context.Context, handle uint16, reason uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpDisconnect, handle, reason)
}

// SetDataLen suggests the connection's transmit PDU size and time.
func (h *Host) SetDataLen(ctx context.Context, handle, txOctets, txTime uint16) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpLESetDataLen, handle, txOctets, txTime)
}

// SetDefaultPHY sets the preferred PHYs for new connections. Zeroed
// preference masks mean no preference in that direction.
func (h *Host) SetDefaultPHY(ctx context.Context, allPHYs, txPHYs, rxPHYs uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpLESetDefPHY, allPHYs, txPHYs, rxPHYs)
}

// SetPHY requests a PHY change on a live connection.
func (h *Host) SetPHY(ctx context.Context, handle uint16, allPHYs, txPHYs, rxPHYs uint8, phyOpts uint16) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpLESetPHY, handle, allPHYs, txPHYs, rxPHYs, phyOpts)
}

// ReadPHY reads the PHYs of a live connection.
func (h *Host) ReadPHY(ctx context.Context, handle uint16) (tx, rx uint8, status hci.StatusCode, err error) {
	e, err := h.cmd(ctx, hci.OpLEReadPHY, handle)
	if err != nil {
		return 0, 0, 0, err
	}
	return uint8(e.Params.Uint("TX_PHY")), uint8(e.Params.Uint("RX_PHY")), e.Status, nil
}

// ReceiverTest enters direct test mode receive on a 1M PHY.
func (h *Host) ReceiverTest(ctx context.Context, channel uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpLEReceiverTest, channel)
}

// ReceiverTestV2 enters direct test mode receive with an explicit PHY
// and modulation index.
func (h *Host) ReceiverTestV2(ctx context.Context, channel, phy, modulationIdx uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpLEReceiverTestV2, channel, phy, modulationIdx)
}

// TransmitterTest enters direct test mode transmit on a 1M PHY.
func (h *Host) TransmitterTest(ctx context.Context, channel, dataLen, payload uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpLETransmitterTest, channel, dataLen, payload)
}

// TransmitterTestV2 enters direct test mode transmit with an explicit
// PHY.
func (h *Host) TransmitterTestV2(ctx context.Context, channel, dataLen, payload, phy uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpLETransmitterTestV2, channel, dataLen, payload, phy)
}

// EndTest leaves direct test mode and returns the received packet
// count, which is zero after a transmitter test.
func (h *Host) EndTest(ctx context.Context) (uint16, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpLETestEnd)
	if err != nil {
		return 0, 0, err
	}
	return uint16(e.Params.Uint("Num_Packets")), e.Status, nil
}

// ReadTxPowerRange reads the controller's supported transmit power
// span in dBm.
func (h *Host) ReadTxPowerRange(ctx context.Context) (min, max int8, status hci.StatusCode, err error) {
	e, err := h.cmd(ctx, hci.OpLEReadTxPower)
	if err != nil {
		return 0, 0, 0, err
	}
	return int8(e.Params.Int("Min_TX_Power")), int8(e.Params.Int("Max_TX_Power")), e.Status, nil
}

// BufferSize is the controller's LE ACL buffer geometry.
type BufferSize struct {
	PacketLength uint16
	NumPackets   uint8
}

// ReadBufferSize reads the controller's LE ACL buffer geometry, which
// sizes the host-to-controller data flow control.
func (h *Host) ReadBufferSize(ctx context.Context) (BufferSize, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpLEReadBufSize)
	if err != nil {
		return BufferSize{}, 0, err
	}
	return BufferSize{
		PacketLength: uint16(e.Params.Uint("LE_ACL_Data_Packet_Length")),
		NumPackets:   uint8(e.Params.Uint("Total_Num_LE_ACL_Data_Packets")),
	}, e.Status, nil
}

// SendACL ships test ACL data on a live connection, typically against
// a controller placed in ACL sink mode. The first call reads the
// controller's buffer geometry to size fragmentation and flow
// control.
func (h *Host) SendACL(ctx context.Context, handle uint16, data []byte) error {
	h.awOnce.Do(func() {
		bs, status, err := h.ReadBufferSize(ctx)
		if err != nil {
			h.awErr = err
			return
		}
		if status != hci.StatusSuccess || bs.PacketLength == 0 || bs.NumPackets == 0 {
			h.awErr = errors.Errorf("controller reported unusable buffer size (status %s)", status)
			return
		}
		h.aw = h.conn.ACLWriter(int(bs.PacketLength), int(bs.NumPackets))
	})
	if h.awErr != nil {
		return h.awErr
	}
	return h.aw.Write(ctx, handle, data)
}

// ACLPackets delivers controller-to-host ACL data, as produced by the
// generator test modes.
func (h *Host) ACLPackets() <-chan *hci.ACLPacket { return h.conn.ACL() }
