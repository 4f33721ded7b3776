package blehci

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataPktStatsPER(t *testing.T) {
	s := DataPktStats{RxData: 950, RxDataCRC: 30, RxDataTimeout: 20}
	assert.InDelta(t, 5.0, s.PER(), 1e-9)

	// Against the peer's exact transmit count.
	assert.InDelta(t, 5.0, s.PERAgainst(1000), 1e-9)

	var empty DataPktStats
	assert.True(t, math.IsNaN(empty.PER()))
	assert.True(t, math.IsNaN(empty.PERAgainst(0)))
}

func TestAdvPktStatsRates(t *testing.T) {
	s := AdvPktStats{TxAdv: 1000, RxReq: 100, RxReqCRC: 20, RxReqTimeout: 30, TxResp: 90}

	assert.InDelta(t, 10.0, s.ScanRequestRate(false), 1e-9)
	assert.InDelta(t, 12.0, s.ScanRequestRate(true), 1e-9)
	assert.InDelta(t, 3.0, s.ScanRequestTimeoutRate(), 1e-9)
	assert.InDelta(t, 2.0, s.ScanRequestCRCRate(), 1e-9)
	assert.InDelta(t, 90.0, s.ScanRequestFulfillment(), 1e-9)

	var empty AdvPktStats
	assert.True(t, math.IsNaN(empty.ScanRequestRate(false)))
	assert.True(t, math.IsNaN(empty.ScanRequestFulfillment()))
}

func TestScanPktStatsRates(t *testing.T) {
	s := ScanPktStats{
		RxAdv: 800, RxAdvCRC: 100, RxAdvTimeout: 100,
		TxReq: 400, RxRsp: 300, RxRspCRC: 40, RxRspTimeout: 60,
	}

	assert.InDelta(t, 20.0, s.PER(), 1e-9)
	assert.InDelta(t, 75.0, s.ScanResponseRate(), 1e-9)
	assert.InDelta(t, 15.0, s.ScanResponseTimeoutRate(), 1e-9)
	assert.InDelta(t, 10.0, s.ScanResponseCRCRate(), 1e-9)
	assert.InDelta(t, 50.0, s.ScanRequestRate(), 1e-9)

	var empty ScanPktStats
	assert.True(t, math.IsNaN(empty.PER()))
	assert.True(t, math.IsNaN(empty.ScanRequestRate()))
}

func TestParseBDAddr(t *testing.T) {
	a, err := ParseBDAddr("00:11:22:33:44:55")
	assert.NoError(t, err)
	assert.Equal(t, "00:11:22:33:44:55", a.String())
	assert.Equal(t, []byte{0x55, 0x44, 0x33, 0x22, 0x11, 0x00}, a.wire())

	_, err = ParseBDAddr("00:11:22:33:44")
	assert.Error(t, err)
	_, err = ParseBDAddr("zz:11:22:33:44:55")
	assert.Error(t, err)
}
