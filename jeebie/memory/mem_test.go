package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/interrupt"
)

type fakeVideo struct {
	regs map[uint16]byte
}

func (f *fakeVideo) Read(address uint16) byte         { return f.regs[address] }
func (f *fakeVideo) Write(address uint16, value byte) { f.regs[address] = value }

func TestEchoRAMMirrorsWorkRAM(t *testing.T) {
	mmu := New()

	mmu.Write(0xC123, 0x42)
	assert.Equal(t, byte(0x42), mmu.Read(0xE123))

	mmu.Write(0xFDFF, 0x24)
	assert.Equal(t, byte(0x24), mmu.Read(0xDDFF))
}

func TestUnusableRegion(t *testing.T) {
	mmu := New()

	for address := addr.UnusableStart; address <= addr.UnusableEnd; address++ {
		mmu.Write(address, 0x12)
		assert.Equal(t, byte(0xFF), mmu.Read(address))
	}
}

func TestEveryAddressResolves(t *testing.T) {
	mmu := New()
	assert.NotPanics(t, func() {
		for address := 0; address <= 0xFFFF; address++ {
			mmu.Read(uint16(address))
		}
	})
}

func TestInterruptRegisters(t *testing.T) {
	mmu := New()

	mmu.Write(addr.IF, 0x05)
	assert.Equal(t, byte(0xE5), mmu.Read(addr.IF))
	assert.True(t, mmu.Interrupts().Requested(interrupt.Timer))

	mmu.Write(addr.IE, 0x1F)
	assert.Equal(t, byte(0x1F), mmu.Read(addr.IE))
	assert.True(t, mmu.Interrupts().Pending())
}

func TestTimerInterruptReachesController(t *testing.T) {
	mmu := New()
	mmu.Write(addr.DIV, 0)
	mmu.Write(addr.TIMA, 0xFF)
	mmu.Write(addr.TAC, 0x05)

	mmu.Tick(16)

	assert.True(t, mmu.Interrupts().Requested(interrupt.Timer))
}

func TestVideoRegistersRouting(t *testing.T) {
	mmu := New()
	video := &fakeVideo{regs: map[uint16]byte{}}
	mmu.AttachVideo(video)

	mmu.Write(addr.LCDC, 0x91)
	mmu.Write(addr.WX, 0x07)
	assert.Equal(t, byte(0x91), video.regs[addr.LCDC])
	assert.Equal(t, byte(0x07), mmu.Read(addr.WX))

	mmu.Write(addr.DMA, 0xC0)
	_, routed := video.regs[addr.DMA]
	assert.False(t, routed, "DMA stays with the MMU")
}

func TestDMA(t *testing.T) {
	mmu := New()
	for i := range uint16(oamDMALength) {
		mmu.Write(0xC100+i, byte(i))
	}

	mmu.Write(addr.DMA, 0xC1)

	for i := range uint16(oamDMALength) {
		require.Equal(t, byte(i), mmu.Read(addr.OAMStart+i))
	}
	assert.Equal(t, byte(0xC1), mmu.Read(addr.DMA))
}

func TestCartridgeBanking(t *testing.T) {
	rom := bankedROM(4)
	rom[cartridgeTypeAddress] = 0x01
	rom[romSizeAddress] = 0x01
	cart, err := NewCartridgeWithData(rom)
	require.NoError(t, err)

	mmu := NewWithCartridge(cart)
	mmu.Write(0x2000, 6)

	assert.Equal(t, byte(2), mmu.Read(0x4000))
	assert.Equal(t, 2, mmu.MBC().Info().ROMBank)
}

func TestPoke(t *testing.T) {
	mmu := New()

	mmu.Poke(0x0150, 0xAA)
	assert.Equal(t, byte(0xAA), mmu.Peek(0x0150), "ROM bytes can be patched")

	mmu.Poke(0xE000, 0x11)
	assert.Equal(t, byte(0x11), mmu.Peek(0xC000))

	mmu.Poke(0xFF90, 0x22)
	assert.Equal(t, byte(0x22), mmu.Peek(0xFF90))

	mmu.Poke(addr.IE, 0x04)
	assert.True(t, mmu.Interrupts().Enabled(interrupt.Timer))
}

func TestPokeIORunsOwnerWrite(t *testing.T) {
	mmu := New()

	mmu.Tick(1024)
	require.NotZero(t, mmu.Peek(addr.DIV))
	mmu.Poke(addr.DIV, 0x7F)
	assert.Equal(t, byte(0), mmu.Peek(addr.DIV), "divider resets whatever the value")

	mmu.Write(0xC000, 0x12)
	mmu.Write(0xC09F, 0x34)
	mmu.Poke(addr.DMA, 0xC0)
	assert.Equal(t, byte(0x12), mmu.Peek(0xFE00))
	assert.Equal(t, byte(0x34), mmu.Peek(0xFE9F))
}

func TestJoypad(t *testing.T) {
	mmu := New()

	mmu.Write(addr.P1, 0x20) // select d-pad
	assert.Equal(t, byte(0xEF), mmu.Read(addr.P1))

	mmu.PressKey(JoypadDown)
	assert.Equal(t, byte(0xE7), mmu.Read(addr.P1))
	assert.True(t, mmu.Interrupts().Requested(interrupt.Joypad))

	mmu.Interrupts().Clear(interrupt.Joypad)
	mmu.PressKey(JoypadStart)
	assert.False(t, mmu.Interrupts().Requested(interrupt.Joypad), "buttons not selected")

	mmu.Write(addr.P1, 0x10) // select buttons
	assert.Equal(t, byte(0xD7), mmu.Read(addr.P1))

	mmu.ReleaseKey(JoypadStart)
	assert.Equal(t, byte(0xDF), mmu.Read(addr.P1))

	mmu.Write(addr.P1, 0x30)
	assert.Equal(t, byte(0xFF), mmu.Read(addr.P1))
}

func TestViewDump(t *testing.T) {
	mmu := New()
	mmu.Write(0xC000, 0x99)

	dump := mmu.View().Dump()
	require.Len(t, dump, 0x10000)
	assert.Equal(t, byte(0x99), dump[0xC000])
	assert.Equal(t, byte(0x99), dump[0xE000])
	assert.Equal(t, []byte{0x99}, mmu.View().Range(0xC000, 1))
}

func TestSnapshotRestore(t *testing.T) {
	mmu := New()
	mmu.Write(0xC000, 0x01)
	mmu.Write(0x8000, 0x02)
	mmu.Write(addr.TMA, 0x33)
	mmu.PressKey(JoypadA)

	snap := mmu.Snapshot()

	other := New()
	other.Restore(&snap)
	assert.Equal(t, byte(0x01), other.Read(0xC000))
	assert.Equal(t, byte(0x02), other.Read(0x8000))
	assert.Equal(t, byte(0x33), other.Read(addr.TMA))
	assert.Equal(t, mmu.Joypad().Snapshot(), other.Joypad().Snapshot())
}
