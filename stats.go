package blehci

import (
	"math"

	"github.com/maxble/blehci/hci"
)

// DataPktStats are the accumulated data-path counters, shared by the
// connection, direct-test-mode and CIS counter blocks.
type DataPktStats struct {
	RxData        uint32
	RxDataCRC     uint32
	RxDataTimeout uint32
	TxData        uint32
	ErrData       uint32
	RxSetup       uint16
	TxSetup       uint16
	RxISR         uint16
	TxISR         uint16
}

func dataPktStatsFrom(r *hci.Record) DataPktStats {
	return DataPktStats{
		RxData:        uint32(r.Uint("RX_Data")),
		RxDataCRC:     uint32(r.Uint("RX_Data_CRC")),
		RxDataTimeout: uint32(r.Uint("RX_Data_Timeout")),
		TxData:        uint32(r.Uint("TX_Data")),
		ErrData:       uint32(r.Uint("Err_Data")),
		RxSetup:       uint16(r.Uint("RX_Setup")),
		TxSetup:       uint16(r.Uint("TX_Setup")),
		RxISR:         uint16(r.Uint("RX_ISR")),
		TxISR:         uint16(r.Uint("TX_ISR")),
	}
}

// PER computes the packet error rate in percent against the local
// receive attempts. NaN when nothing was received.
func (s DataPktStats) PER() float64 {
	total := float64(s.RxData) + float64(s.RxDataCRC) + float64(s.RxDataTimeout)
	if total == 0 {
		return math.NaN()
	}
	return 100 * (1 - float64(s.RxData)/total)
}

// PERAgainst computes the packet error rate against the peer's known
// transmit count, which is exact where the local timeout counter is
// an estimate.
func (s DataPktStats) PERAgainst(peerTxData uint32) float64 {
	if peerTxData == 0 {
		return math.NaN()
	}
	return 100 - 100*float64(s.RxData)/float64(peerTxData)
}

// AdvPktStats are the advertising-side counters. HasChain is set for
// the auxiliary (extended advertising) block, which also counts chain
// transmissions.
type AdvPktStats struct {
	TxAdv        uint32
	RxReq        uint32
	RxReqCRC     uint32
	RxReqTimeout uint16
	TxResp       uint32
	TxChain      uint32
	ErrAdv       uint32
	RxSetup      uint16
	TxSetup      uint16
	RxISR        uint16
	TxISR        uint16
	HasChain     bool
}

func advPktStatsFrom(r *hci.Record) AdvPktStats {
	s := AdvPktStats{
		TxAdv:        uint32(r.Uint("TX_Adv")),
		RxReq:        uint32(r.Uint("RX_Req")),
		RxReqCRC:     uint32(r.Uint("RX_Req_CRC")),
		RxReqTimeout: uint16(r.Uint("RX_Req_Timeout")),
		TxResp:       uint32(r.Uint("TX_Resp")),
		ErrAdv:       uint32(r.Uint("Err_Adv")),
		RxSetup:      uint16(r.Uint("RX_Setup")),
		TxSetup:      uint16(r.Uint("TX_Setup")),
		RxISR:        uint16(r.Uint("RX_ISR")),
		TxISR:        uint16(r.Uint("TX_ISR")),
	}
	if p, ok := r.Get("TX_Chain"); ok {
		s.TxChain = uint32(p.Value)
		s.HasChain = true
	}
	return s
}

// ScanRequestRate is the percentage of advertisements that drew a
// scan request. With dirty set, requests that failed CRC count too.
func (s AdvPktStats) ScanRequestRate(dirty bool) float64 {
	if s.TxAdv == 0 {
		return math.NaN()
	}
	req := float64(s.RxReq)
	if dirty {
		req += float64(s.RxReqCRC)
	}
	return 100 * req / float64(s.TxAdv)
}

// ScanRequestTimeoutRate is the percentage of advertisements whose
// request window timed out.
func (s AdvPktStats) ScanRequestTimeoutRate() float64 {
	if s.TxAdv == 0 {
		return math.NaN()
	}
	return 100 * float64(s.RxReqTimeout) / float64(s.TxAdv)
}

// ScanRequestCRCRate is the percentage of advertisements answered by
// a corrupt request.
func (s AdvPktStats) ScanRequestCRCRate() float64 {
	if s.TxAdv == 0 {
		return math.NaN()
	}
	return 100 * float64(s.RxReqCRC) / float64(s.TxAdv)
}

// ScanRequestFulfillment is the percentage of received requests that
// got a response out.
func (s AdvPktStats) ScanRequestFulfillment() float64 {
	if s.RxReq == 0 {
		return math.NaN()
	}
	return 100 * float64(s.TxResp) / float64(s.RxReq)
}

// ScanPktStats are the scanning-side counters. The chain fields are
// populated only for the auxiliary block.
type ScanPktStats struct {
	RxAdv          uint32
	RxAdvCRC       uint32
	RxAdvTimeout   uint32
	TxReq          uint32
	RxRsp          uint32
	RxRspCRC       uint32
	RxRspTimeout   uint32
	RxChain        uint32
	RxChainCRC     uint32
	RxChainTimeout uint32
	ErrScan        uint32
	RxSetup        uint16
	TxSetup        uint16
	RxISR          uint16
	TxISR          uint16
	HasChain       bool
}

func scanPktStatsFrom(r *hci.Record) ScanPktStats {
	s := ScanPktStats{
		RxAdv:        uint32(r.Uint("RX_Adv")),
		RxAdvCRC:     uint32(r.Uint("RX_Adv_CRC")),
		RxAdvTimeout: uint32(r.Uint("RX_Adv_Timeout")),
		TxReq:        uint32(r.Uint("TX_Req")),
		RxRsp:        uint32(r.Uint("RX_Rsp")),
		RxRspCRC:     uint32(r.Uint("RX_Rsp_CRC")),
		RxRspTimeout: uint32(r.Uint("RX_Rsp_Timeout")),
		ErrScan:      uint32(r.Uint("Err_Scan")),
		RxSetup:      uint16(r.Uint("RX_Setup")),
		TxSetup:      uint16(r.Uint("TX_Setup")),
		RxISR:        uint16(r.Uint("RX_ISR")),
		TxISR:        uint16(r.Uint("TX_ISR")),
	}
	if p, ok := r.Get("RX_Chain"); ok {
		s.RxChain = uint32(p.Value)
		s.RxChainCRC = uint32(r.Uint("RX_Chain_CRC"))
		s.RxChainTimeout = uint32(r.Uint("RX_Chain_Timeout"))
		s.HasChain = true
	}
	return s
}

// PER is the advertising packet error rate seen by the scanner.
func (s ScanPktStats) PER() float64 {
	total := float64(s.RxAdv) + float64(s.RxAdvCRC) + float64(s.RxAdvTimeout)
	if total == 0 {
		return math.NaN()
	}
	return 100 * (1 - float64(s.RxAdv)/total)
}

// ScanResponseRate is the percentage of transmitted requests that
// drew a clean response.
func (s ScanPktStats) ScanResponseRate() float64 {
	if s.TxReq == 0 {
		return math.NaN()
	}
	return 100 * float64(s.RxRsp) / float64(s.TxReq)
}

// ScanResponseTimeoutRate is the percentage of requests whose
// response window timed out.
func (s ScanPktStats) ScanResponseTimeoutRate() float64 {
	if s.TxReq == 0 {
		return math.NaN()
	}
	return 100 * float64(s.RxRspTimeout) / float64(s.TxReq)
}

// ScanResponseCRCRate is the percentage of requests answered by a
// corrupt response.
func (s ScanPktStats) ScanResponseCRCRate() float64 {
	if s.TxReq == 0 {
		return math.NaN()
	}
	return 100 * float64(s.RxRspCRC) / float64(s.TxReq)
}

// ScanRequestRate is the percentage of received advertisements the
// scanner chased with a request.
func (s ScanPktStats) ScanRequestRate() float64 {
	if s.RxAdv == 0 {
		return math.NaN()
	}
	return 100 * float64(s.TxReq) / float64(s.RxAdv)
}

// MemStats is the controller's system and memory usage snapshot.
type MemStats struct {
	Stack            uint16
	SysAssertCnt     uint16
	FreeMem          uint32
	UsedMem          uint32
	MaxConnections   uint16
	ConnCtxSize      uint16
	CSWatermarkLvl   uint16
	LLWatermarkLvl   uint16
	SchWatermarkLvl  uint16
	LHCIWatermarkLvl uint16
	MaxAdvSets       uint16
	AdvSetCtxSize    uint16
	ExtScanMax       uint16
	ExtScanCtxSize   uint16
	ExtInitCtxSize   uint16
	MaxNumExtInit    uint16
	MaxPerScanners   uint16
	PerScanCtxSize   uint16
	MaxCIG           uint16
	CIGCtxSize       uint16
	CISCtxSize       uint16
}

func memStatsFrom(r *hci.Record) MemStats {
	return MemStats{
		Stack:            uint16(r.Uint("Stack")),
		SysAssertCnt:     uint16(r.Uint("Sys_Assert_Cnt")),
		FreeMem:          uint32(r.Uint("Free_Mem")),
		UsedMem:          uint32(r.Uint("Used_Mem")),
		MaxConnections:   uint16(r.Uint("Max_Connections")),
		ConnCtxSize:      uint16(r.Uint("Conn_Ctx_Size")),
		CSWatermarkLvl:   uint16(r.Uint("CS_Watermark_Lvl")),
		LLWatermarkLvl:   uint16(r.Uint("LL_Watermark_Lvl")),
		SchWatermarkLvl:  uint16(r.Uint("Sch_Watermark_Lvl")),
		LHCIWatermarkLvl: uint16(r.Uint("LHCI_Watermark_Lvl")),
		MaxAdvSets:       uint16(r.Uint("Max_Adv_Sets")),
		AdvSetCtxSize:    uint16(r.Uint("Adv_Set_Ctx_Size")),
		ExtScanMax:       uint16(r.Uint("Ext_Scan_Max")),
		ExtScanCtxSize:   uint16(r.Uint("Ext_Scan_Ctx_Size")),
		ExtInitCtxSize:   uint16(r.Uint("Ext_Init_Ctx_Size")),
		MaxNumExtInit:    uint16(r.Uint("Max_Num_Ext_Init")),
		MaxPerScanners:   uint16(r.Uint("Max_Per_Scanners")),
		PerScanCtxSize:   uint16(r.Uint("Per_Scan_Ctx_Size")),
		MaxCIG:           uint16(r.Uint("Max_CIG")),
		CIGCtxSize:       uint16(r.Uint("CIG_Ctx_Size")),
		CISCtxSize:       uint16(r.Uint("CIS_Ctx_Size")),
	}
}

// PoolStats describes one controller buffer pool.
type PoolStats struct {
	BufSize   uint16
	NumBuf    uint8
	NumAlloc  uint8
	MaxAlloc  uint8
	MaxReqLen uint16
}

func poolStatsFrom(r *hci.Record) []PoolStats {
	n := int(r.Uint("Num_Pools"))
	pools := make([]PoolStats, 0, n)
	for i := 0; i < n; i++ {
		var p PoolStats
		if f, ok := r.At("Buf_Size", i); ok {
			p.BufSize = uint16(f.Value)
		}
		if f, ok := r.At("Num_Buf", i); ok {
			p.NumBuf = uint8(f.Value)
		}
		if f, ok := r.At("Num_Alloc", i); ok {
			p.NumAlloc = uint8(f.Value)
		}
		if f, ok := r.At("Max_Alloc", i); ok {
			p.MaxAlloc = uint8(f.Value)
		}
		if f, ok := r.At("Max_Req_Len", i); ok {
			p.MaxReqLen = uint16(f.Value)
		}
		pools = append(pools, p)
	}
	return pools
}

// PduFiltStats are the PDU filter pass/fail counters.
type PduFiltStats struct {
	FailPDU             uint16
	PassPDU             uint16
	FailWhitelist       uint16
	PassWhitelist       uint16
	FailPeerAddrMatch   uint16
	PassPeerAddrMatch   uint16
	FailLocalAddrMatch  uint16
	PassLocalAddrMatch  uint16
	FailPeerRPAVerify   uint16
	PassPeerRPAVerify   uint16
	FailLocalRPAVerify  uint16
	PassLocalRPAVerify  uint16
	FailPeerPrivAddr    uint16
	FailLocalPrivAddr   uint16
	FailPeerAddrResReq  uint16
	PassPeerAddrResReq  uint16
	PassLocalAddrResOpt uint16
	PeerResAddrPend     uint16
	LocalResAddrPend    uint16
}

func pduFiltStatsFrom(r *hci.Record) PduFiltStats {
	return PduFiltStats{
		FailPDU:             uint16(r.Uint("Fail_PDU")),
		PassPDU:             uint16(r.Uint("Pass_PDU")),
		FailWhitelist:       uint16(r.Uint("Fail_Whitelist")),
		PassWhitelist:       uint16(r.Uint("Pass_Whitelist")),
		FailPeerAddrMatch:   uint16(r.Uint("Fail_Peer_Addr_Match")),
		PassPeerAddrMatch:   uint16(r.Uint("Pass_Peer_Addr_Match")),
		FailLocalAddrMatch:  uint16(r.Uint("Fail_Local_Addr_Match")),
		PassLocalAddrMatch:  uint16(r.Uint("Pass_Local_Addr_Match")),
		FailPeerRPAVerify:   uint16(r.Uint("Fail_Peer_RPA_Verify")),
		PassPeerRPAVerify:   uint16(r.Uint("Pass_Peer_RPA_Verify")),
		FailLocalRPAVerify:  uint16(r.Uint("Fail_Local_RPA_Verify")),
		PassLocalRPAVerify:  uint16(r.Uint("Pass_Local_RPA_Verify")),
		FailPeerPrivAddr:    uint16(r.Uint("Fail_Peer_Priv_Addr")),
		FailLocalPrivAddr:   uint16(r.Uint("Fail_Local_Priv_Addr")),
		FailPeerAddrResReq:  uint16(r.Uint("Fail_Peer_Addr_Res_Req")),
		PassPeerAddrResReq:  uint16(r.Uint("Pass_Peer_Addr_Res_Req")),
		PassLocalAddrResOpt: uint16(r.Uint("Pass_Local_Addr_Res_Opt")),
		PeerResAddrPend:     uint16(r.Uint("Peer_Res_Addr_Pend")),
		LocalResAddrPend:    uint16(r.Uint("Local_Res_Addr_Pend")),
	}
}

// PeerMinUsedChannels is the minimum channel count a peer reports for
// each PHY.
type PeerMinUsedChannels struct {
	PHY1M    uint8
	PHY2M    uint8
	PHYCoded uint8
}

// TestReport counts the generated-traffic test packets on the ACL and
// ISO sinks.
type TestReport struct {
	RxPktCount  uint32
	RxOctCount  uint32
	GenPktCount uint32
	GenOctCount uint32
}

func testReportFrom(r *hci.Record) TestReport {
	return TestReport{
		RxPktCount:  uint32(r.Uint("RX_Packet_Count")),
		RxOctCount:  uint32(r.Uint("RX_Octet_Count")),
		GenPktCount: uint32(r.Uint("Generated_Packet_Count")),
		GenOctCount: uint32(r.Uint("Generated_Octet_Count")),
	}
}
