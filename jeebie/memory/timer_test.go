package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valerio/jeebie-core/jeebie/addr"
)

func newTestTimer(irqs *int) *Timer {
	t := &Timer{}
	t.InterruptHandler = func() { *irqs++ }
	t.Write(addr.DIV, 0)
	return t
}

func TestTimerPeriods(t *testing.T) {
	testCases := []struct {
		desc   string
		tac    uint8
		period int
		hz     int
	}{
		{desc: "00 selects 4096Hz", tac: 0x04, period: 1024, hz: 4096},
		{desc: "01 selects 262144Hz", tac: 0x05, period: 16, hz: 262144},
		{desc: "10 selects 65536Hz", tac: 0x06, period: 64, hz: 65536},
		{desc: "11 selects 16384Hz", tac: 0x07, period: 256, hz: 16384},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			irqs := 0
			timer := newTestTimer(&irqs)
			timer.Write(addr.TMA, 0xFF)
			timer.Write(addr.TIMA, 0xFF)
			timer.Write(addr.TAC, tC.tac)
			assert.Equal(t, tC.hz, timer.FrequencyHz())

			// with TMA=0xFF every increment overflows, so there is exactly one
			// interrupt per period
			for n := 1; n <= 3; n++ {
				timer.Tick(tC.period - 1)
				assert.Equal(t, n-1, irqs, "early interrupt in period %d", n)

				timer.Tick(1)
				assert.Equal(t, n, irqs, "missing interrupt in period %d", n)
				assert.Equal(t, uint8(0xFF), timer.Read(addr.TIMA), "reload on the overflow tick")
			}
		})
	}
}

func TestTimerOverflowReloadsOnSameTick(t *testing.T) {
	irqs := 0
	timer := newTestTimer(&irqs)
	timer.Write(addr.TMA, 0x00)
	timer.Write(addr.TIMA, 0x00)
	timer.Write(addr.TAC, 0x05)

	ticks := 0
	for irqs == 0 {
		timer.Tick(1)
		ticks++
		if ticks > 1<<16 {
			t.Fatal("timer never overflowed")
		}
	}

	assert.Equal(t, 256*16, ticks)
	assert.Equal(t, uint8(0x00), timer.Read(addr.TIMA))
}

func TestTimerOverflowLoadsTMA(t *testing.T) {
	irqs := 0
	timer := newTestTimer(&irqs)
	timer.Write(addr.TMA, 0xAB)
	timer.Write(addr.TIMA, 0xFF)
	timer.Write(addr.TAC, 0x05)

	timer.Tick(16)

	assert.Equal(t, 1, irqs)
	assert.Equal(t, uint8(0xAB), timer.Read(addr.TIMA))
}

func TestTimerDisabled(t *testing.T) {
	irqs := 0
	timer := newTestTimer(&irqs)
	timer.Write(addr.TAC, 0x01)

	timer.Tick(4096)

	assert.Equal(t, uint8(0), timer.Read(addr.TIMA))
	assert.Equal(t, uint8(0x10), timer.Read(addr.DIV), "DIV keeps counting")
	assert.Zero(t, irqs)
}

func TestDivider(t *testing.T) {
	irqs := 0
	timer := newTestTimer(&irqs)

	timer.Tick(255)
	assert.Equal(t, uint8(0), timer.Read(addr.DIV))
	timer.Tick(1)
	assert.Equal(t, uint8(1), timer.Read(addr.DIV))

	timer.Write(addr.DIV, 0x55)
	assert.Equal(t, uint8(0), timer.Read(addr.DIV))
}

func TestDividerResetFallingEdge(t *testing.T) {
	irqs := 0
	timer := newTestTimer(&irqs)
	timer.Write(addr.TAC, 0x05)

	// bit 3 is high after 8 cycles, resetting the counter drops it
	timer.Tick(8)
	timer.Write(addr.DIV, 0)

	assert.Equal(t, uint8(1), timer.Read(addr.TIMA))
}

func TestTimerSnapshot(t *testing.T) {
	irqs := 0
	timer := newTestTimer(&irqs)
	timer.Write(addr.TAC, 0x06)
	timer.Write(addr.TMA, 0x12)
	timer.Tick(1000)

	restored := &Timer{}
	restored.Restore(timer.Snapshot())

	assert.Equal(t, timer.Info(), restored.Info())

	timer.Tick(5000)
	restored.Tick(5000)
	assert.Equal(t, timer.Snapshot(), restored.Snapshot())
}
