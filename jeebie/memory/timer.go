package memory

import (
	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/bit"
)

// tacLookup maps the TAC clock select (bits 1-0) to the bit of the 16-bit system
// counter that clocks TIMA. TIMA increments on each falling edge of that bit while
// the timer is enabled (TAC bit 2).
//
//	00 -> bit 9  (4096 Hz, every 1024 cycles)
//	01 -> bit 3  (262144 Hz, every 16 cycles)
//	10 -> bit 5  (65536 Hz, every 64 cycles)
//	11 -> bit 7  (16384 Hz, every 256 cycles)
var tacLookup = [4]uint8{9, 3, 5, 7}

const tacEnable = 2

// Timer implements DIV/TIMA/TMA/TAC on top of a free-running 16-bit counter.
// An overflow reloads TIMA from TMA and calls InterruptHandler within the same tick.
type Timer struct {
	systemCounter uint16
	lastSignal    bool

	tima byte
	tma  byte
	tac  byte

	// InterruptHandler is called on TIMA overflow.
	InterruptHandler func()
}

// TimerState is the persisted form of a Timer.
type TimerState struct {
	Counter    uint16
	LastSignal bool
	TIMA       uint8
	TMA        uint8
	TAC        uint8
}

// TimerInfo is a read-only projection of the timer registers.
type TimerInfo struct {
	Counter     uint16
	DIV         uint8
	TIMA        uint8
	TMA         uint8
	TAC         uint8
	Enabled     bool
	FrequencyHz int
}

// SetSeed sets the system counter, DIV becomes the upper byte of seed.
func (t *Timer) SetSeed(seed uint16) {
	t.systemCounter = seed
	t.lastSignal = t.signal()
}

func (t *Timer) Tick(cycles int) {
	for range cycles {
		t.systemCounter++
		t.detectEdge()
	}
}

// signal is the selected counter bit ANDed with the enable bit; TIMA counts its
// falling edges, which is also why DIV and TAC writes can bump TIMA.
func (t *Timer) signal() bool {
	return bit.IsSet(tacEnable, t.tac) && bit.IsSet16(tacLookup[t.tac&0x03], t.systemCounter)
}

func (t *Timer) detectEdge() {
	current := t.signal()
	if t.lastSignal && !current {
		t.incrementTIMA()
	}
	t.lastSignal = current
}

func (t *Timer) incrementTIMA() {
	t.tima++
	if t.tima != 0 {
		return
	}
	t.tima = t.tma
	if t.InterruptHandler != nil {
		t.InterruptHandler()
	}
}

// ResetDivider clears the system counter, as a DIV write or STOP does.
func (t *Timer) ResetDivider() {
	t.systemCounter = 0
	t.detectEdge()
}

func (t *Timer) Read(address uint16) byte {
	switch address {
	case addr.DIV:
		return byte(t.systemCounter >> 8)
	case addr.TIMA:
		return t.tima
	case addr.TMA:
		return t.tma
	case addr.TAC:
		return t.tac | 0xF8
	default:
		return 0xFF
	}
}

func (t *Timer) Write(address uint16, value byte) {
	switch address {
	case addr.DIV:
		t.ResetDivider()
	case addr.TIMA:
		t.tima = value
	case addr.TMA:
		t.tma = value
	case addr.TAC:
		t.tac = value & 0x07
		t.detectEdge()
	}
}

// FrequencyHz is the TIMA increment rate selected by TAC.
func (t *Timer) FrequencyHz() int {
	return cpuFrequency >> (tacLookup[t.tac&0x03] + 1)
}

func (t *Timer) Info() TimerInfo {
	return TimerInfo{
		Counter:     t.systemCounter,
		DIV:         byte(t.systemCounter >> 8),
		TIMA:        t.tima,
		TMA:         t.tma,
		TAC:         t.tac,
		Enabled:     bit.IsSet(tacEnable, t.tac),
		FrequencyHz: t.FrequencyHz(),
	}
}

func (t *Timer) Snapshot() TimerState {
	return TimerState{
		Counter:    t.systemCounter,
		LastSignal: t.lastSignal,
		TIMA:       t.tima,
		TMA:        t.tma,
		TAC:        t.tac,
	}
}

func (t *Timer) Restore(s TimerState) {
	t.systemCounter = s.Counter
	t.lastSignal = s.LastSignal
	t.tima = s.TIMA
	t.tma = s.TMA
	t.tac = s.TAC & 0x07
}
