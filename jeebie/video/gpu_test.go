package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/interrupt"
	"github.com/valerio/jeebie-core/jeebie/memory"
)

const defaultPalette = 0xE4

func newTestGPU(t *testing.T) (*memory.MMU, *GPU) {
	t.Helper()
	mmu := memory.New()
	gpu := NewGPU(mmu)
	mmu.AttachVideo(gpu)
	return mmu, gpu
}

// writeTile fills tile data at base with the same row for all 8 lines.
func writeTile(mmu *memory.MMU, base uint16, low, high byte) {
	for row := range uint16(8) {
		mmu.Write(base+row*2, low)
		mmu.Write(base+row*2+1, high)
	}
}

func linePixels(gpu *GPU, y, from, to int) []Shade {
	var out []Shade
	for x := from; x < to; x++ {
		out = append(out, gpu.FrameBuffer().GetPixel(x, y))
	}
	return out
}

func TestGPUFrameTiming(t *testing.T) {
	mmu, gpu := newTestGPU(t)
	irq := mmu.Interrupts()
	mmu.Write(addr.LCDC, 0x80)

	var lines []uint8
	vblanks := 0
	last := uint8(0)
	for range FrameCycles {
		gpu.Tick(1)
		if ly := mmu.Read(addr.LY); ly != last {
			lines = append(lines, ly)
			last = ly
		}
		if irq.Requested(interrupt.VBlank) {
			vblanks++
			assert.Equal(t, uint8(144), mmu.Read(addr.LY))
			irq.Clear(interrupt.VBlank)
		}
	}

	require.Len(t, lines, totalLines)
	for i, ly := range lines[:totalLines-1] {
		assert.Equal(t, uint8(i+1), ly)
	}
	assert.Equal(t, uint8(0), lines[totalLines-1])
	assert.Equal(t, 1, vblanks)
	assert.Equal(t, uint64(1), gpu.Frames())
}

func TestGPUModeSequence(t *testing.T) {
	mmu, gpu := newTestGPU(t)
	mmu.Write(addr.LCDC, 0x80)

	assert.Equal(t, OAMSearch, gpu.Mode())
	gpu.Tick(oamScanlineCycles)
	assert.Equal(t, PixelTransfer, gpu.Mode())
	gpu.Tick(vramScanlineCycles)
	assert.Equal(t, HBlank, gpu.Mode())
	assert.Equal(t, uint8(HBlank), mmu.Read(addr.STAT)&3)
	gpu.Tick(hblankCycles)
	assert.Equal(t, OAMSearch, gpu.Mode())
	assert.Equal(t, uint8(1), mmu.Read(addr.LY))
	assert.Equal(t, 0, gpu.Dots())

	gpu.Tick(scanlineCycles * 143)
	assert.Equal(t, VBlank, gpu.Mode())
	assert.True(t, gpu.IsVBlank())
}

func TestGPUStatInterrupts(t *testing.T) {
	testCases := []struct {
		desc   string
		stat   uint8
		lyc    uint8
		cycles int
	}{
		{desc: "hblank", stat: 0x08, lyc: 0xFF, cycles: oamScanlineCycles + vramScanlineCycles},
		{desc: "vblank", stat: 0x10, lyc: 0xFF, cycles: scanlineCycles * visibleLines},
		{desc: "oam", stat: 0x20, lyc: 0xFF, cycles: scanlineCycles},
		{desc: "lyc", stat: 0x40, lyc: 5, cycles: scanlineCycles * 5},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			mmu, gpu := newTestGPU(t)
			irq := mmu.Interrupts()
			mmu.Write(addr.LYC, tC.lyc)
			mmu.Write(addr.STAT, tC.stat)
			mmu.Write(addr.LCDC, 0x80)
			irq.Clear(interrupt.LCDStat)

			gpu.Tick(tC.cycles - 1)
			assert.False(t, irq.Requested(interrupt.LCDStat), "too early")
			gpu.Tick(1)
			assert.True(t, irq.Requested(interrupt.LCDStat))
		})
	}
}

func TestGPUStatRisingEdge(t *testing.T) {
	mmu, gpu := newTestGPU(t)
	irq := mmu.Interrupts()
	mmu.Write(addr.LYC, 0)
	mmu.Write(addr.STAT, 0x48) // LYC and HBlank sources
	mmu.Write(addr.LCDC, 0x80)

	// LY=LYC holds the line high since power on
	assert.True(t, irq.Requested(interrupt.LCDStat))
	irq.Clear(interrupt.LCDStat)

	// entering HBlank while the line is already high is not an edge
	gpu.Tick(oamScanlineCycles + vramScanlineCycles)
	assert.False(t, irq.Requested(interrupt.LCDStat))

	// line 1: LY!=LYC, the line drops in OAM and rises again at HBlank
	gpu.Tick(hblankCycles + oamScanlineCycles + vramScanlineCycles)
	assert.True(t, irq.Requested(interrupt.LCDStat))
}

func TestGPUCoincidenceFlag(t *testing.T) {
	mmu, gpu := newTestGPU(t)
	mmu.Write(addr.LYC, 2)
	mmu.Write(addr.LCDC, 0x80)

	assert.Zero(t, mmu.Read(addr.STAT)&0x04)
	gpu.Tick(scanlineCycles * 2)
	assert.Equal(t, uint8(0x04), mmu.Read(addr.STAT)&0x04)
	assert.True(t, gpu.Registers().Coincidence())
}

func TestGPURegisterAccess(t *testing.T) {
	mmu, gpu := newTestGPU(t)
	mmu.Write(addr.LCDC, 0x80)
	gpu.Tick(scanlineCycles * 3)

	mmu.Write(addr.LY, 99)
	assert.Equal(t, uint8(3), mmu.Read(addr.LY), "LY is read only")

	mmu.Write(addr.STAT, 0xFF)
	stat := mmu.Read(addr.STAT)
	assert.Equal(t, uint8(0x80), stat&0x80, "bit 7 always reads set")
	assert.Equal(t, uint8(0x78), stat&0x78)
	assert.Equal(t, uint8(OAMSearch), stat&0x03, "mode bits are not writable")

	for _, r := range []uint16{addr.SCY, addr.SCX, addr.LYC, addr.BGP, addr.OBP0, addr.OBP1, addr.WY, addr.WX} {
		mmu.Write(r, 0x5A)
		assert.Equal(t, uint8(0x5A), mmu.Read(r), "register 0x%04X", r)
	}
}

func TestGPULCDDisable(t *testing.T) {
	mmu, gpu := newTestGPU(t)
	mmu.Write(addr.LCDC, 0x80)
	gpu.Tick(scanlineCycles*10 + 100)
	require.Equal(t, uint8(10), mmu.Read(addr.LY))

	mmu.Write(addr.LCDC, 0x00)
	assert.Equal(t, uint8(0), mmu.Read(addr.LY))
	assert.Equal(t, HBlank, gpu.Mode())
	assert.Equal(t, 0, gpu.Dots())

	// the PPU is frozen, but frames keep elapsing
	gpu.Tick(FrameCycles)
	assert.Equal(t, uint8(0), mmu.Read(addr.LY))
	assert.Equal(t, uint64(1), gpu.Frames())

	mmu.Write(addr.LCDC, 0x80)
	assert.Equal(t, OAMSearch, gpu.Mode())
}

func TestGPUBackgroundRow(t *testing.T) {
	mmu, gpu := newTestGPU(t)
	mmu.Write(addr.LCDC, 0x91)
	mmu.Write(addr.BGP, defaultPalette)
	writeTile(mmu, addr.TileData0, 0x3C, 0x7E)

	gpu.ly = 0
	gpu.drawScanline()

	want := []Shade{Lightest, Dark, Darkest, Darkest, Darkest, Darkest, Dark, Lightest}
	assert.Equal(t, want, linePixels(gpu, 0, 0, 8))
	assert.Equal(t, want, linePixels(gpu, 0, 152, 160), "every map entry points at tile 0")
}

func TestGPUSignedTileAddressing(t *testing.T) {
	tests := []struct {
		name     string
		tile     byte
		tileAddr uint16
	}{
		{"tile -128 (0x80)", 0x80, 0x8800},
		{"tile -127 (0x81)", 0x81, 0x8810},
		{"tile -1 (0xFF)", 0xFF, 0x8FF0},
		{"tile 0", 0x00, 0x9000},
		{"tile 1", 0x01, 0x9010},
		{"tile 127 (0x7F)", 0x7F, 0x97F0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mmu, gpu := newTestGPU(t)
			mmu.Write(addr.LCDC, 0x81)
			mmu.Write(addr.BGP, defaultPalette)
			mmu.Write(addr.TileMap0, tt.tile)
			mmu.Write(tt.tileAddr, 0xAA)
			mmu.Write(tt.tileAddr+1, 0xBB)

			gpu.ly = 0
			gpu.drawScanline()

			want := []Shade{Darkest, Lightest, Darkest, Dark, Darkest, Lightest, Darkest, Dark}
			assert.Equal(t, want, linePixels(gpu, 0, 0, 8))
		})
	}
}

func TestGPUScroll(t *testing.T) {
	testCases := []struct {
		desc     string
		scx, scy uint8
		x, line  int
		want     Shade
	}{
		{desc: "no scroll", want: Darkest},
		{desc: "scx into second tile", scx: 8, want: Lightest},
		{desc: "scx within tile", scx: 4, x: 3, want: Darkest},
		{desc: "scx past tile edge", scx: 4, x: 4, want: Lightest},
		{desc: "scx wraps around the map", scx: 248, x: 8, want: Darkest},
		{desc: "second tile row", line: 8, want: Lightest},
		{desc: "scy wraps around the map", scy: 248, line: 8, want: Darkest},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			mmu, gpu := newTestGPU(t)
			mmu.Write(addr.LCDC, 0x91)
			mmu.Write(addr.BGP, defaultPalette)
			// map entry (0,0) is tile 1, everything else tile 0
			writeTile(mmu, addr.TileData0+tileBytes, 0xFF, 0xFF)
			mmu.Write(addr.TileMap0, 1)
			mmu.Write(addr.SCX, tC.scx)
			mmu.Write(addr.SCY, tC.scy)

			gpu.ly = uint8(tC.line)
			gpu.drawScanline()

			assert.Equal(t, tC.want, gpu.FrameBuffer().GetPixel(tC.x, tC.line))
		})
	}
}

func TestGPUBackgroundDisabled(t *testing.T) {
	mmu, gpu := newTestGPU(t)
	mmu.Write(addr.LCDC, 0x90)
	mmu.Write(addr.BGP, 0xFF)
	writeTile(mmu, addr.TileData0, 0xFF, 0xFF)

	gpu.ly = 0
	gpu.drawScanline()
	for _, s := range linePixels(gpu, 0, 0, FramebufferWidth) {
		assert.Equal(t, Lightest, s)
	}
}

func TestGPUPalette(t *testing.T) {
	mmu, gpu := newTestGPU(t)
	mmu.Write(addr.LCDC, 0x91)
	writeTile(mmu, addr.TileData0, 0x0F, 0x33) // colours 0 0 2 2 1 1 3 3

	mmu.Write(addr.BGP, defaultPalette)
	gpu.ly = 0
	gpu.drawScanline()
	assert.Equal(t, []Shade{Lightest, Lightest, Dark, Dark, Light, Light, Darkest, Darkest}, linePixels(gpu, 0, 0, 8))

	mmu.Write(addr.BGP, 0x1B)
	gpu.drawScanline()
	assert.Equal(t, []Shade{Darkest, Darkest, Light, Light, Dark, Dark, Lightest, Lightest}, linePixels(gpu, 0, 0, 8))
}

func TestGPUWindow(t *testing.T) {
	mmu, gpu := newTestGPU(t)
	mmu.Write(addr.LCDC, 0xF1) // window on, window map 0x9C00
	mmu.Write(addr.BGP, defaultPalette)
	writeTile(mmu, addr.TileData0+tileBytes, 0xFF, 0xFF)
	for i := range uint16(32 * 32) {
		mmu.Write(addr.TileMap1+i, 1)
	}
	mmu.Write(addr.WX, 80+7)
	mmu.Write(addr.WY, 2)

	gpu.ly = 1
	gpu.drawScanline()
	assert.Equal(t, Lightest, gpu.FrameBuffer().GetPixel(100, 1), "above WY")
	assert.Equal(t, 0, gpu.windowLine)

	gpu.ly = 2
	gpu.drawScanline()
	assert.Equal(t, Lightest, gpu.FrameBuffer().GetPixel(79, 2))
	assert.Equal(t, Darkest, gpu.FrameBuffer().GetPixel(80, 2))
	assert.Equal(t, Darkest, gpu.FrameBuffer().GetPixel(159, 2))
	assert.Equal(t, 1, gpu.windowLine)

	// window disabled: the line counter does not advance
	mmu.Write(addr.LCDC, 0xD1)
	gpu.ly = 3
	gpu.drawScanline()
	assert.Equal(t, Lightest, gpu.FrameBuffer().GetPixel(100, 3))
	assert.Equal(t, 1, gpu.windowLine)
}

func TestGPUWindowOffscreen(t *testing.T) {
	mmu, gpu := newTestGPU(t)
	mmu.Write(addr.LCDC, 0xF1)
	mmu.Write(addr.WX, 167)

	gpu.ly = 0
	gpu.drawScanline()
	assert.Equal(t, 0, gpu.windowLine)
}

func TestGPUSnapshotRestore(t *testing.T) {
	mmu, gpu := newTestGPU(t)
	mmu.Write(addr.LCDC, 0x91)
	mmu.Write(addr.BGP, defaultPalette)
	mmu.Write(addr.SCX, 3)
	mmu.Write(addr.STAT, 0x40)
	writeTile(mmu, addr.TileData0, 0xFF, 0x00)
	gpu.Tick(scanlineCycles*20 + 37)

	s := gpu.Snapshot()

	_, other := newTestGPU(t)
	other.Restore(&s)

	assert.Equal(t, gpu.Registers(), other.Registers())
	assert.Equal(t, gpu.Frames(), other.Frames())
	assert.Equal(t, gpu.FrameBuffer().ToSlice(), other.FrameBuffer().ToSlice())
	assert.Equal(t, Light, other.FrameBuffer().GetPixel(0, 5))
}
