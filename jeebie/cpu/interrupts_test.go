package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/interrupt"
	"github.com/valerio/jeebie-core/jeebie/memory"
)

// newTestCPU returns a CPU running from WRAM with the given code at 0xC000.
func newTestCPU(t *testing.T, code ...uint8) (*CPU, *memory.MMU) {
	t.Helper()
	mmu := memory.New()
	cpu := New(mmu)
	cpu.pc = 0xC000
	for i, b := range code {
		mmu.Write(0xC000+uint16(i), b)
	}
	return cpu, mmu
}

func step(t *testing.T, cpu *CPU) int {
	t.Helper()
	cycles, err := cpu.Step()
	require.NoError(t, err)
	return cycles
}

func TestInterruptHandling(t *testing.T) {
	t.Run("interrupts disabled by default", func(t *testing.T) {
		cpu, mmu := newTestCPU(t, 0x00)
		mmu.Write(addr.IF, 0x01)
		mmu.Write(addr.IE, 0x01)

		assert.Equal(t, 4, step(t, cpu))
		assert.Equal(t, uint16(0xC001), cpu.pc)
		assert.Equal(t, uint8(0xE1), mmu.Read(addr.IF))
	})

	t.Run("dispatch pushes PC and jumps to the vector", func(t *testing.T) {
		cpu, mmu := newTestCPU(t, 0x00)
		mmu.Interrupts().SetIME(true)
		cpu.sp = 0xFFFE
		mmu.Write(addr.IF, 0x01)
		mmu.Write(addr.IE, 0x01)

		assert.Equal(t, 20, step(t, cpu))
		assert.Equal(t, uint16(0x40), cpu.pc)
		assert.Equal(t, uint8(0xE0), mmu.Read(addr.IF))
		assert.False(t, mmu.Interrupts().IME())
		assert.Equal(t, uint16(0xC000), cpu.popStack())
	})

	testCases := []struct {
		desc   string
		ie     uint8
		iflag  uint8
		wantPC uint16
		wantIF uint8
	}{
		{desc: "VBlank has the highest priority", ie: 0x1F, iflag: 0x1F, wantPC: 0x40, wantIF: 0xFE},
		{desc: "IE masks requests", ie: 0x04, iflag: 0x1F, wantPC: 0x50, wantIF: 0xFB},
		{desc: "joypad vector", ie: 0x10, iflag: 0x10, wantPC: 0x60, wantIF: 0xE0},
		{desc: "LCD STAT beats serial", ie: 0x0A, iflag: 0x0A, wantPC: 0x48, wantIF: 0xE8},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			cpu, mmu := newTestCPU(t, 0x00)
			mmu.Interrupts().SetIME(true)
			mmu.Write(addr.IE, tC.ie)
			mmu.Write(addr.IF, tC.iflag)

			step(t, cpu)
			assert.Equal(t, tC.wantPC, cpu.pc)
			assert.Equal(t, tC.wantIF, mmu.Read(addr.IF))
		})
	}

	t.Run("EI takes effect after the next instruction", func(t *testing.T) {
		cpu, mmu := newTestCPU(t, 0xFB, 0x00, 0x00)
		mmu.Write(addr.IF, 0x01)
		mmu.Write(addr.IE, 0x01)

		step(t, cpu)
		assert.False(t, mmu.Interrupts().IME())
		assert.Equal(t, uint16(0xC001), cpu.pc)

		step(t, cpu)
		assert.True(t, mmu.Interrupts().IME())
		assert.Equal(t, uint16(0xC002), cpu.pc)

		assert.Equal(t, 20, step(t, cpu))
		assert.Equal(t, uint16(0x40), cpu.pc)
	})

	t.Run("DI cancels a pending EI", func(t *testing.T) {
		cpu, mmu := newTestCPU(t, 0xFB, 0xF3, 0x00)
		for range 3 {
			step(t, cpu)
		}
		assert.False(t, mmu.Interrupts().IME())
	})

	t.Run("RETI enables interrupts immediately", func(t *testing.T) {
		cpu, mmu := newTestCPU(t, 0xD9)
		cpu.sp = 0xFFFE
		cpu.pushStack(0x150)

		step(t, cpu)
		assert.True(t, mmu.Interrupts().IME())
		assert.Equal(t, uint16(0x150), cpu.pc)
	})
}

func TestHALTBehavior(t *testing.T) {
	t.Run("IME=1: halts until an interrupt is serviced", func(t *testing.T) {
		cpu, mmu := newTestCPU(t, 0x76)
		mmu.Interrupts().SetIME(true)
		mmu.Write(addr.IE, 0x04)

		step(t, cpu)
		assert.True(t, cpu.Halted())
		assert.Equal(t, 4, step(t, cpu))
		assert.Equal(t, uint16(0xC001), cpu.pc)

		mmu.RequestInterrupt(interrupt.Timer)
		assert.Equal(t, 20, step(t, cpu))
		assert.False(t, cpu.Halted())
		assert.Equal(t, uint16(0x50), cpu.pc)
		assert.Equal(t, uint16(0xC001), cpu.popStack())
	})

	t.Run("IME=0: wakes without servicing", func(t *testing.T) {
		cpu, mmu := newTestCPU(t, 0x76, 0x00)
		mmu.Write(addr.IE, 0x01)

		step(t, cpu)
		require.True(t, cpu.Halted())

		mmu.RequestInterrupt(interrupt.VBlank)
		step(t, cpu)
		assert.False(t, cpu.Halted())
		assert.Equal(t, uint16(0xC002), cpu.pc)
		assert.True(t, mmu.Interrupts().Requested(interrupt.VBlank))
	})

	t.Run("IME=0 with a pending interrupt: HALT bug repeats the next byte", func(t *testing.T) {
		cpu, mmu := newTestCPU(t, 0x76, 0x3C, 0x00)
		mmu.Write(addr.IE, 0x01)
		mmu.Write(addr.IF, 0x01)
		cpu.a = 0

		step(t, cpu)
		assert.False(t, cpu.Halted())
		assert.Equal(t, uint16(0xC001), cpu.pc)

		step(t, cpu)
		assert.Equal(t, uint16(0xC001), cpu.pc)
		step(t, cpu)
		assert.Equal(t, uint16(0xC002), cpu.pc)
		assert.Equal(t, uint8(2), cpu.a)
	})

	t.Run("HALT bug disabled", func(t *testing.T) {
		mmu := memory.New()
		cpu := New(mmu, WithHaltBug(false))
		cpu.pc = 0xC000
		mmu.Write(0xC000, 0x76)
		mmu.Write(0xC001, 0x3C)
		mmu.Write(addr.IE, 0x01)
		mmu.Write(addr.IF, 0x01)
		cpu.a = 0

		step(t, cpu)
		step(t, cpu)
		assert.False(t, cpu.Halted())
		assert.Equal(t, uint16(0xC002), cpu.pc)
		assert.Equal(t, uint8(1), cpu.a)
	})
}

func TestSTOP(t *testing.T) {
	cpu, mmu := newTestCPU(t, 0x10, 0x00, 0x00)
	mmu.Tick(1024)
	require.NotZero(t, mmu.Read(addr.DIV))

	step(t, cpu)
	assert.True(t, cpu.Stopped())
	assert.Equal(t, uint16(0xC002), cpu.pc)
	assert.Equal(t, uint8(0), mmu.Read(addr.DIV))

	assert.Equal(t, 4, step(t, cpu))
	assert.Equal(t, uint16(0xC002), cpu.pc)

	mmu.Write(addr.IE, 0x10)
	mmu.PressKey(memory.JoypadA)
	mmu.Write(addr.P1, 0x10)
	require.True(t, mmu.Interrupts().Pending())

	step(t, cpu)
	assert.False(t, cpu.Stopped())
	assert.Equal(t, uint16(0xC003), cpu.pc)
}

func TestSTOPIgnoresOtherInterrupts(t *testing.T) {
	testCases := []struct {
		desc   string
		source interrupt.Source
		ime    bool
	}{
		{desc: "timer", source: interrupt.Timer},
		{desc: "vblank", source: interrupt.VBlank},
		{desc: "stat with IME set", source: interrupt.LCDStat, ime: true},
		{desc: "serial", source: interrupt.Serial},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			cpu, mmu := newTestCPU(t, 0x10, 0x00, 0x00)
			step(t, cpu)
			require.True(t, cpu.Stopped())

			mmu.Write(addr.IE, tC.source.Mask())
			mmu.Interrupts().SetIME(tC.ime)
			mmu.Interrupts().Request(tC.source)
			require.True(t, mmu.Interrupts().Pending())

			assert.Equal(t, 4, step(t, cpu))
			assert.True(t, cpu.Stopped())
			assert.Equal(t, uint16(0xC002), cpu.pc)
			assert.True(t, mmu.Interrupts().Requested(tC.source))
		})
	}
}
