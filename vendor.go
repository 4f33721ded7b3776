package blehci

import (
	"context"

	"github.com/pkg/errors"

	"github.com/maxble/blehci/hci"
)

// Vendor-specific convenience surface. These wrap the OGF 0x3F test
// and diagnostics commands the controller firmware exposes beyond the
// standard tables.

// SetBDAddr writes the controller's public address.
func (h *Host) SetBDAddr(ctx context.Context, addr BDAddr) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetBDAddr, addr.wire())
}

// GetRandAddr asks the controller to generate a random address.
func (h *Host) GetRandAddr(ctx context.Context) (BDAddr, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetRandAddr)
	if err != nil {
		return BDAddr{}, 0, err
	}
	return addrFromWire(e.Params.Bytes("Random_Address")), e.Status, nil
}

// TxTestVS starts a vendor transmitter test that stops by itself
// after numPackets transmissions; zero means transmit until EndTest.
func (h *Host) TxTestVS(ctx context.Context, channel, dataLen, payload, phy uint8, numPackets uint16) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSTxTest, channel, dataLen, payload, phy, numPackets)
}

// RxTestVS starts a vendor receiver test bounded to numPackets.
func (h *Host) RxTestVS(ctx context.Context, channel, phy, modulationIdx uint8, numPackets uint16) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSRxTest, channel, phy, modulationIdx, numPackets)
}

// ResetTestStats clears the direct-test-mode counters.
func (h *Host) ResetTestStats(ctx context.Context) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSResetTestStats)
}

// ResetConnStats clears the connection counters.
func (h *Host) ResetConnStats(ctx context.Context) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSResetConnStats)
}

// GetAdvStats reads the advertising counters.
func (h *Host) GetAdvStats(ctx context.Context) (AdvPktStats, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetAdvStats)
	if err != nil {
		return AdvPktStats{}, 0, err
	}
	return advPktStatsFrom(e.Params), e.Status, nil
}

// GetAuxAdvStats reads the extended advertising counters, chain
// transmissions included.
func (h *Host) GetAuxAdvStats(ctx context.Context) (AdvPktStats, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetAuxAdvStats)
	if err != nil {
		return AdvPktStats{}, 0, err
	}
	return advPktStatsFrom(e.Params), e.Status, nil
}

// GetScanStats reads the scanning counters.
func (h *Host) GetScanStats(ctx context.Context) (ScanPktStats, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetScanStats)
	if err != nil {
		return ScanPktStats{}, 0, err
	}
	return scanPktStatsFrom(e.Params), e.Status, nil
}

// GetAuxScanStats reads the extended scanning counters.
func (h *Host) GetAuxScanStats(ctx context.Context) (ScanPktStats, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetAuxScanStats)
	if err != nil {
		return ScanPktStats{}, 0, err
	}
	return scanPktStatsFrom(e.Params), e.Status, nil
}

// GetPerScanStats reads the periodic scanning counters.
func (h *Host) GetPerScanStats(ctx context.Context) (ScanPktStats, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetPerScanStats)
	if err != nil {
		return ScanPktStats{}, 0, err
	}
	return scanPktStatsFrom(e.Params), e.Status, nil
}

// GetConnStats reads the connection data-path counters.
func (h *Host) GetConnStats(ctx context.Context) (DataPktStats, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetConnStats)
	if err != nil {
		return DataPktStats{}, 0, err
	}
	return dataPktStatsFrom(e.Params), e.Status, nil
}

// GetTestStats reads the direct-test-mode counters.
func (h *Host) GetTestStats(ctx context.Context) (DataPktStats, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetTestStats)
	if err != nil {
		return DataPktStats{}, 0, err
	}
	return dataPktStatsFrom(e.Params), e.Status, nil
}

// GetCISStats reads the CIS data-path counters.
func (h *Host) GetCISStats(ctx context.Context) (DataPktStats, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetCISStats)
	if err != nil {
		return DataPktStats{}, 0, err
	}
	return dataPktStatsFrom(e.Params), e.Status, nil
}

// GetMemoryStats reads the system and memory usage snapshot.
func (h *Host) GetMemoryStats(ctx context.Context) (MemStats, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetSysStats)
	if err != nil {
		return MemStats{}, 0, err
	}
	return memStatsFrom(e.Params), e.Status, nil
}

// GetPoolStats reads the buffer pool usage, one entry per pool.
func (h *Host) GetPoolStats(ctx context.Context) ([]PoolStats, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetPoolStats)
	if err != nil {
		return nil, 0, err
	}
	return poolStatsFrom(e.Params), e.Status, nil
}

// GetPDUFilterStats reads the PDU filter counters.
func (h *Host) GetPDUFilterStats(ctx context.Context) (PduFiltStats, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetPDUFiltStats)
	if err != nil {
		return PduFiltStats{}, 0, err
	}
	return pduFiltStatsFrom(e.Params), e.Status, nil
}

// GetACLTestReport reads the generated ACL traffic report.
func (h *Host) GetACLTestReport(ctx context.Context) (TestReport, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetACLTestReport)
	if err != nil {
		return TestReport{}, 0, err
	}
	return testReportFrom(e.Params), e.Status, nil
}

// GetISOTestReport reads the generated ISO traffic report.
func (h *Host) GetISOTestReport(ctx context.Context) (TestReport, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetISOTestReport)
	if err != nil {
		return TestReport{}, 0, err
	}
	return testReportFrom(e.Params), e.Status, nil
}

// SetAdvTxPower sets the advertising transmit power in dBm.
func (h *Host) SetAdvTxPower(ctx context.Context, power int8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetAdvTxPower, power)
}

// SetConnTxPower sets a connection's transmit power in dBm.
func (h *Host) SetConnTxPower(ctx context.Context, handle uint16, power int8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetConnTxPower, handle, power)
}

// GetRSSIVS samples RSSI on a bare channel, outside any connection.
// 127 means no measurement was possible.
func (h *Host) GetRSSIVS(ctx context.Context, channel uint8) (int8, hci.StatusCode, error) {
	if channel > 39 {
		return 0, 0, errors.Errorf("channel %d out of range [0, 39]", channel)
	}
	e, err := h.cmd(ctx, hci.OpVSGetRSSI, channel)
	if err != nil {
		return 0, 0, err
	}
	return int8(e.Params.Int("RSSI")), e.Status, nil
}

// SetSnifferEnable turns controller-side packet forwarding on or off.
func (h *Host) SetSnifferEnable(ctx context.Context, outputMethod uint8, enable bool) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetSnifferEnable, outputMethod, enable)
}

// ReadRegister reads length octets from a controller memory address.
func (h *Host) ReadRegister(ctx context.Context, addr uint32, length uint8) ([]byte, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSRegRead, length, addr)
	if err != nil {
		return nil, 0, err
	}
	return e.Params.Bytes("Value"), e.Status, nil
}

// WriteRegister writes value to a controller memory address.
func (h *Host) WriteRegister(ctx context.Context, addr uint32, value []byte) (hci.StatusCode, error) {
	if len(value) == 0 {
		return 0, errors.New("empty register write")
	}
	return h.status(ctx, hci.OpVSRegWrite, len(value), addr, value)
}

// SetLocalFeatures overrides the controller's LE feature mask.
func (h *Host) SetLocalFeatures(ctx context.Context, features uint64) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetLocalFeat, features)
}

// SetOperationalFlags toggles controller operational flags.
func (h *Host) SetOperationalFlags(ctx context.Context, flags uint32, enable bool) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetOpFlags, flags, enable)
}

// SetEventMaskVS sets the vendor event mask.
func (h *Host) SetEventMaskVS(ctx context.Context, mask uint64, enable bool) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetEventMask, mask, enable)
}

// EnableACLSink makes the controller swallow received ACL data, for
// throughput tests without a host data path.
func (h *Host) EnableACLSink(ctx context.Context, enable bool) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSEnaACLSink, enable)
}

// GenerateACL makes the controller source numPackets of ACL traffic
// on the connection.
func (h *Host) GenerateACL(ctx context.Context, handle uint16, packetLen uint8, numPackets uint16) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSGenerateACL, handle, packetLen, numPackets)
}

// EnableAutoGenACL makes the controller source ACL traffic
// continuously.
func (h *Host) EnableAutoGenACL(ctx context.Context, enable bool) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSEnaAutoGenACL, enable)
}

// SetDiagMode turns link layer diagnostics on or off.
func (h *Host) SetDiagMode(ctx context.Context, enable bool) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetDiagMode, enable)
}

// EnableBB powers the baseband on.
func (h *Host) EnableBB(ctx context.Context) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSBBEnable)
}

// DisableBB powers the baseband off.
func (h *Host) DisableBB(ctx context.Context) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSBBDisable)
}

// SetChannelMap restricts a connection to the channels set in the
// 37-bit mask.
func (h *Host) SetChannelMap(ctx context.Context, handle uint16, mask uint64) (hci.StatusCode, error) {
	m := []byte{
		byte(mask), byte(mask >> 8), byte(mask >> 16),
		byte(mask >> 24), byte(mask >> 32),
	}
	return h.status(ctx, hci.OpVSSetChanMap, handle, m)
}

// SetScanChannelMap restricts scanning to the primary channels set in
// the 3-bit map.
func (h *Host) SetScanChannelMap(ctx context.Context, channelMap uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetScanChMap, channelMap)
}

// SetEncryptionMode selects authenticated payload handling for a
// connection.
func (h *Host) SetEncryptionMode(ctx context.Context, handle uint16, enableAuth bool, nonceMode bool) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetEncMode, enableAuth, nonceMode, handle)
}

// SetLocalMinUsedChannels declares the minimum channels this device
// will use per PHY.
func (h *Host) SetLocalMinUsedChannels(ctx context.Context, phys uint8, powerThresh int8, minUsed uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetLocalMinUsedCh, phys, powerThresh, minUsed)
}

// SetTxTestErrorPattern sets the bit pattern injected as errors
// during transmitter tests.
func (h *Host) SetTxTestErrorPattern(ctx context.Context, pattern uint32) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetTxTestErrPatt, pattern)
}

// SetAuxPtrOffset sets the auxiliary packet offset delay in
// microseconds for an advertising set; zero disables the delay.
func (h *Host) SetAuxPtrOffset(ctx context.Context, delay uint32, handle uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetAuxDelay, delay, handle)
}

// SetExtAdvDataFragLen sets the fragment size used when splitting
// extended advertising data across auxiliary packets.
func (h *Host) SetExtAdvDataFragLen(ctx context.Context, handle, fragLen uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetExtAdvFragLen, handle, fragLen)
}

// SetExtAdvPHYOpts sets the primary and secondary channel PHY options
// for an advertising set.
func (h *Host) SetExtAdvPHYOpts(ctx context.Context, handle, primary, secondary uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetExtAdvPHYOpts, handle, primary, secondary)
}

// SetExtAdvDefaultPHYOpts sets the default TX PHY options applied to
// extended advertising on both primary and secondary channels.
func (h *Host) SetExtAdvDefaultPHYOpts(ctx context.Context, opts uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetExtAdvDefPHYOpts, opts)
}

// GenerateISO makes the controller source numPackets of ISO traffic
// on the stream.
func (h *Host) GenerateISO(ctx context.Context, handle uint16, packetLen uint16, numPackets uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSGenerateISO, handle, packetLen, numPackets)
}

// EnableISOSink makes the controller swallow received ISO data.
func (h *Host) EnableISOSink(ctx context.Context, enable bool) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSEnaISOSink, enable)
}

// EnableAutoGenISO makes the controller source ISO packets of
// packetLen continuously; zero stops the generator.
func (h *Host) EnableAutoGenISO(ctx context.Context, packetLen uint32) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSEnaAutoGenISO, packetLen)
}

// GetPeriodicChannelMap reads the channel map of a periodic
// advertiser when isAdvertising is set, of a periodic scanner
// otherwise.
func (h *Host) GetPeriodicChannelMap(ctx context.Context, handle uint16, isAdvertising bool) ([]byte, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetPerChanMap, handle, isAdvertising)
	if err != nil {
		return nil, 0, err
	}
	return e.Params.Bytes("Channel_Map"), e.Status, nil
}

// SetConnPHYTxPower sets the transmit power a connection uses on one
// PHY.
func (h *Host) SetConnPHYTxPower(ctx context.Context, handle uint16, power int8, phy uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetConnPHYTxPower, handle, power, phy)
}

// SetConnOpFlags toggles operational flags on a single connection.
func (h *Host) SetConnOpFlags(ctx context.Context, handle uint16, flags uint32, enable bool) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetConnOpFlags, handle, flags, enable)
}

// GetPeerMinUsedChannels reads the minimum number of channels the
// peer reports per PHY.
func (h *Host) GetPeerMinUsedChannels(ctx context.Context, handle uint16) (PeerMinUsedChannels, hci.StatusCode, error) {
	e, err := h.cmd(ctx, hci.OpVSGetPeerMinUsedCh, handle)
	if err != nil {
		return PeerMinUsedChannels{}, 0, err
	}
	m := PeerMinUsedChannels{
		PHY1M:    uint8(e.Params.Uint("PHY_1M")),
		PHY2M:    uint8(e.Params.Uint("PHY_2M")),
		PHYCoded: uint8(e.Params.Uint("PHY_Coded")),
	}
	return m, e.Status, nil
}

// SetP256PrivateKey sets the P-256 private key used for key pair and
// Diffie-Hellman generation. An all-zero key clears it.
func (h *Host) SetP256PrivateKey(ctx context.Context, key [32]byte) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSSetP256PrivKey, key[:])
}

// Public key validation modes.
const (
	PubKeyValidateALT1 uint8 = 0x00
	PubKeyValidateALT2 uint8 = 0x01
)

// SetValidatePubKeyMode selects how received public keys are
// validated.
func (h *Host) SetValidatePubKeyMode(ctx context.Context, mode uint8) (hci.StatusCode, error) {
	return h.status(ctx, hci.OpVSValidatePubKeyMode, mode)
}
