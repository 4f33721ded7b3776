package blehci

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalConversions(t *testing.T) {
	a := DefaultAdvParams()
	a.SetInterval(100 * time.Millisecond)
	assert.Equal(t, uint16(160), a.IntervalMin) // 100ms / 625us

	s := DefaultScanParams()
	s.SetWindow(50*time.Millisecond, 25*time.Millisecond)
	assert.Equal(t, uint16(80), s.Interval)
	assert.Equal(t, uint16(40), s.Window)

	c := DefaultConnParams()
	c.SetInterval(15 * time.Millisecond)
	assert.Equal(t, uint16(12), c.IntervalMin) // 15ms / 1.25ms
	c.SetSupTimeout(2 * time.Second)
	assert.Equal(t, uint16(200), c.SupTimeout)
}

func TestConnParamsRange(t *testing.T) {
	c := DefaultConnParams()
	assert.NoError(t, c.validate())

	c.IntervalMin = 0x5 // below the 7.5ms floor
	c.IntervalMax = 0x5
	assert.Error(t, c.validate())

	c = DefaultConnParams()
	c.IntervalMax = 0x0C81
	assert.Error(t, c.validate())
}

func TestEstablishConnParams(t *testing.T) {
	peer, _ := ParseBDAddr("00:18:80:04:52:1B")
	p := DefaultEstablishConnParams(peer)
	assert.NoError(t, p.validate())

	p.ScanWindow = p.ScanInterval + 1
	assert.Error(t, p.validate())
}
