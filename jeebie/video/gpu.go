package video

import (
	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/bit"
	"github.com/valerio/jeebie-core/jeebie/interrupt"
)

// Mode is the PPU mode, as reported in STAT bits 0-1.
type Mode uint8

const (
	HBlank Mode = iota
	VBlank
	OAMSearch
	PixelTransfer
)

func (m Mode) String() string {
	switch m {
	case HBlank:
		return "HBlank"
	case VBlank:
		return "VBlank"
	case OAMSearch:
		return "OAM"
	case PixelTransfer:
		return "Transfer"
	}
	return "?"
}

const (
	oamScanlineCycles  = 80
	vramScanlineCycles = 172
	hblankCycles       = 204
	scanlineCycles     = oamScanlineCycles + vramScanlineCycles + hblankCycles

	visibleLines = 144
	totalLines   = 154

	// FrameCycles is the length of a full frame, LCD on or off.
	FrameCycles = scanlineCycles * totalLines
)

// LCDC (LCD Control) bits
//
//	7: LCD enable
//	6: window tile map (0=9800, 1=9C00)
//	5: window enable
//	4: BG/window tile data (0=8800 signed, 1=8000 unsigned)
//	3: BG tile map (0=9800, 1=9C00)
//	2: sprite size (0=8x8, 1=8x16)
//	1: sprite enable
//	0: BG/window enable
const (
	lcdDisplayEnable       = 7
	windowTileMapSelect    = 6
	windowDisplayEnable    = 5
	bgWindowTileDataSelect = 4
	bgTileMapDisplaySelect = 3
	spriteSize             = 2
	spriteDisplayEnable    = 1
	bgDisplay              = 0
)

// STAT bits
const (
	statCoincidence  = 2
	statHBlankIRQ    = 3
	statVBlankIRQ    = 4
	statOAMIRQ       = 5
	statLYCIRQ       = 6
	statWritableMask = 0x78
)

// Bus is what the PPU needs from the memory bus: VRAM/OAM reads and interrupt
// requests.
type Bus interface {
	MemoryReader
	RequestInterrupt(s interrupt.Source)
}

// GPU is the DMG picture processing unit. It owns the LCD registers
// (LCDC through WX, except DMA) and renders one scanline at the end of each
// pixel transfer.
type GPU struct {
	bus         Bus
	oam         *OAM
	framebuffer *FrameBuffer

	lcdc, stat uint8
	scy, scx   uint8
	ly, lyc    uint8
	bgp        uint8
	obp0, obp1 uint8
	wy, wx     uint8

	mode       Mode
	dots       int // dot within the current line, 0-455
	windowLine int
	statLine   bool
	offDots    int
	frames     uint64

	bgIndices [FramebufferWidth]int
}

// NewGPU creates a PPU with the LCD off. It still has to be attached to the
// memory bus to receive register accesses.
func NewGPU(bus Bus) *GPU {
	return &GPU{
		bus:         bus,
		oam:         NewOAM(bus),
		framebuffer: NewFrameBuffer(FramebufferWidth, FramebufferHeight),
		mode:        HBlank,
	}
}

func (g *GPU) lcdEnabled() bool {
	return bit.IsSet(lcdDisplayEnable, g.lcdc)
}

func (g *GPU) spriteHeight() int {
	if bit.IsSet(spriteSize, g.lcdc) {
		return 16
	}
	return 8
}

// Tick advances the PPU by cycles dots.
func (g *GPU) Tick(cycles int) {
	if !g.lcdEnabled() {
		// frames keep elapsing with the LCD off, so frame-driven hosts don't stall
		g.offDots += cycles
		for g.offDots >= FrameCycles {
			g.offDots -= FrameCycles
			g.frames++
		}
		return
	}

	for range cycles {
		g.step()
	}
}

func (g *GPU) step() {
	g.dots++

	if g.ly >= visibleLines {
		if g.dots == scanlineCycles {
			g.nextLine()
		}
		return
	}

	switch g.dots {
	case oamScanlineCycles:
		g.setMode(PixelTransfer)
	case oamScanlineCycles + vramScanlineCycles:
		g.drawScanline()
		g.setMode(HBlank)
	case scanlineCycles:
		g.nextLine()
	}
}

func (g *GPU) nextLine() {
	g.dots = 0
	g.ly++

	switch {
	case g.ly == visibleLines:
		g.frames++
		g.bus.RequestInterrupt(interrupt.VBlank)
		g.setMode(VBlank)
	case g.ly >= totalLines:
		g.ly = 0
		g.windowLine = 0
		g.setMode(OAMSearch)
	case g.ly < visibleLines:
		g.setMode(OAMSearch)
	default:
		g.updateStat()
	}
}

func (g *GPU) setMode(m Mode) {
	g.mode = m
	g.updateStat()
}

// updateStat recomputes the STAT interrupt line and fires on its rising edge.
func (g *GPU) updateStat() {
	line := (g.mode == HBlank && bit.IsSet(statHBlankIRQ, g.stat)) ||
		(g.mode == VBlank && bit.IsSet(statVBlankIRQ, g.stat)) ||
		(g.mode == OAMSearch && bit.IsSet(statOAMIRQ, g.stat)) ||
		(g.ly == g.lyc && bit.IsSet(statLYCIRQ, g.stat))

	if line && !g.statLine {
		g.bus.RequestInterrupt(interrupt.LCDStat)
	}
	g.statLine = line
}

func (g *GPU) setLCDC(value uint8) {
	wasOn := g.lcdEnabled()
	g.lcdc = value
	isOn := g.lcdEnabled()

	switch {
	case wasOn && !isOn:
		g.ly = 0
		g.dots = 0
		g.windowLine = 0
		g.mode = HBlank
		g.statLine = false
	case !wasOn && isOn:
		g.offDots = 0
		g.dots = 0
		g.windowLine = 0
		g.setMode(OAMSearch)
	}
}

// Read implements register reads for LCDC..WX.
func (g *GPU) Read(address uint16) byte {
	switch address {
	case addr.LCDC:
		return g.lcdc
	case addr.STAT:
		return 0x80 | g.stat&statWritableMask | bit.FromBool(g.ly == g.lyc)<<statCoincidence | uint8(g.mode)
	case addr.SCY:
		return g.scy
	case addr.SCX:
		return g.scx
	case addr.LY:
		return g.ly
	case addr.LYC:
		return g.lyc
	case addr.BGP:
		return g.bgp
	case addr.OBP0:
		return g.obp0
	case addr.OBP1:
		return g.obp1
	case addr.WY:
		return g.wy
	case addr.WX:
		return g.wx
	}
	return 0xFF
}

// Write implements register writes for LCDC..WX. LY is read only.
func (g *GPU) Write(address uint16, value byte) {
	switch address {
	case addr.LCDC:
		g.setLCDC(value)
	case addr.STAT:
		g.stat = value & statWritableMask
		if g.lcdEnabled() {
			g.updateStat()
		}
	case addr.SCY:
		g.scy = value
	case addr.SCX:
		g.scx = value
	case addr.LYC:
		g.lyc = value
		if g.lcdEnabled() {
			g.updateStat()
		}
	case addr.BGP:
		g.bgp = value
	case addr.OBP0:
		g.obp0 = value
	case addr.OBP1:
		g.obp1 = value
	case addr.WY:
		g.wy = value
	case addr.WX:
		g.wx = value
	}
}

func (g *GPU) drawScanline() {
	g.drawBackground()
	g.drawWindow()
	if bit.IsSet(spriteDisplayEnable, g.lcdc) {
		g.drawSprites()
	}
}

func (g *GPU) tileMapBase(selectBit uint8) uint16 {
	if bit.IsSet(selectBit, g.lcdc) {
		return addr.TileMap1
	}
	return addr.TileMap0
}

// fetchMapRow returns the tile row at map coordinates (x, y) in pixels.
func (g *GPU) fetchMapRow(mapBase uint16, x, y int) TileRow {
	tileNumber := g.bus.Read(mapBase + uint16((y/8)*tileMapWidth+x/8))
	tileAddr := tileDataAddress(bit.IsSet(bgWindowTileDataSelect, g.lcdc), tileNumber)
	return fetchRow(g.bus, tileAddr, y%8)
}

func (g *GPU) drawBackground() {
	y := int(g.ly)
	if !bit.IsSet(bgDisplay, g.lcdc) {
		for x := range FramebufferWidth {
			g.bgIndices[x] = 0
			g.framebuffer.SetPixel(x, y, Lightest)
		}
		return
	}

	mapBase := g.tileMapBase(bgTileMapDisplaySelect)
	mapY := (y + int(g.scy)) & 0xFF
	for x := range FramebufferWidth {
		mapX := (x + int(g.scx)) & 0xFF
		color := g.fetchMapRow(mapBase, mapX, mapY).GetPixel(mapX % 8)
		g.bgIndices[x] = color
		g.framebuffer.SetPixel(x, y, applyPalette(g.bgp, color))
	}
}

// drawWindow draws the window over the background. The window keeps its own
// line counter, which only advances on lines where it was actually drawn.
func (g *GPU) drawWindow() {
	if !bit.IsSet(bgDisplay, g.lcdc) || !bit.IsSet(windowDisplayEnable, g.lcdc) {
		return
	}
	if g.ly < g.wy || g.wx > 166 {
		return
	}

	start := int(g.wx) - 7
	mapBase := g.tileMapBase(windowTileMapSelect)
	y := int(g.ly)
	for x := max(start, 0); x < FramebufferWidth; x++ {
		winX := x - start
		color := g.fetchMapRow(mapBase, winX, g.windowLine).GetPixel(winX % 8)
		g.bgIndices[x] = color
		g.framebuffer.SetPixel(x, y, applyPalette(g.bgp, color))
	}
	g.windowLine++
}

// drawSprites resolves each pixel against the line's sprites in priority
// order. The first sprite with an opaque pixel decides it; when that sprite
// is behind the background, a non-zero background colour wins.
func (g *GPU) drawSprites() {
	ly := int(g.ly)
	sprites := g.oam.SpritesForLine(ly, g.spriteHeight())
	if len(sprites) == 0 {
		return
	}

	var rows [maxSpritesOnLine]TileRow
	for i := range sprites {
		a := sprites[i].tileRowAddress(ly)
		rows[i] = TileRow{Low: g.bus.Read(a), High: g.bus.Read(a + 1)}
	}

	for x := range FramebufferWidth {
		for i := range sprites {
			s := &sprites[i]
			col := x - s.X
			if col < 0 || col >= 8 {
				continue
			}

			var color int
			if s.FlipX {
				color = rows[i].GetPixelFlipped(col)
			} else {
				color = rows[i].GetPixel(col)
			}
			if color == 0 {
				continue
			}

			if !s.BehindBG || g.bgIndices[x] == 0 {
				palette := g.obp0
				if s.PaletteOBP1 {
					palette = g.obp1
				}
				g.framebuffer.SetPixel(x, ly, applyPalette(palette, color))
			}
			break
		}
	}
}

// FrameBuffer returns the live 160x144 frame.
func (g *GPU) FrameBuffer() *FrameBuffer {
	return g.framebuffer
}

// Frames counts completed frames (VBlank entries).
func (g *GPU) Frames() uint64 {
	return g.frames
}

// Dots returns the dot position within the current line.
func (g *GPU) Dots() int {
	return g.dots
}

func (g *GPU) Mode() Mode {
	return g.mode
}

func (g *GPU) IsVBlank() bool {
	return g.mode == VBlank
}

// Sprites decodes all 40 OAM entries with the current sprite height.
func (g *GPU) Sprites() []Sprite {
	return g.oam.All(g.spriteHeight())
}

// Registers is a read-only projection of the LCD registers and PPU timing.
type Registers struct {
	LCDC, STAT uint8
	SCY, SCX   uint8
	LY, LYC    uint8
	BGP        uint8
	OBP0, OBP1 uint8
	WY, WX     uint8

	Mode       Mode
	Dots       int
	WindowLine int
}

func (g *GPU) Registers() Registers {
	return Registers{
		LCDC: g.lcdc, STAT: g.Read(addr.STAT),
		SCY: g.scy, SCX: g.scx,
		LY: g.ly, LYC: g.lyc,
		BGP:  g.bgp,
		OBP0: g.obp0, OBP1: g.obp1,
		WY: g.wy, WX: g.wx,
		Mode:       g.mode,
		Dots:       g.dots,
		WindowLine: g.windowLine,
	}
}

func (r Registers) LCDEnabled() bool        { return bit.IsSet(lcdDisplayEnable, r.LCDC) }
func (r Registers) WindowMapHigh() bool     { return bit.IsSet(windowTileMapSelect, r.LCDC) }
func (r Registers) WindowEnabled() bool     { return bit.IsSet(windowDisplayEnable, r.LCDC) }
func (r Registers) UnsignedTileData() bool  { return bit.IsSet(bgWindowTileDataSelect, r.LCDC) }
func (r Registers) BackgroundMapHigh() bool { return bit.IsSet(bgTileMapDisplaySelect, r.LCDC) }
func (r Registers) TallSprites() bool       { return bit.IsSet(spriteSize, r.LCDC) }
func (r Registers) SpritesEnabled() bool    { return bit.IsSet(spriteDisplayEnable, r.LCDC) }
func (r Registers) BackgroundEnabled() bool { return bit.IsSet(bgDisplay, r.LCDC) }

func (r Registers) Coincidence() bool     { return bit.IsSet(statCoincidence, r.STAT) }
func (r Registers) HBlankInterrupt() bool { return bit.IsSet(statHBlankIRQ, r.STAT) }
func (r Registers) VBlankInterrupt() bool { return bit.IsSet(statVBlankIRQ, r.STAT) }
func (r Registers) OAMInterrupt() bool    { return bit.IsSet(statOAMIRQ, r.STAT) }
func (r Registers) LYCInterrupt() bool    { return bit.IsSet(statLYCIRQ, r.STAT) }

// State is the persisted form of the PPU.
type State struct {
	LCDC, STAT uint8
	SCY, SCX   uint8
	LY, LYC    uint8
	BGP        uint8
	OBP0, OBP1 uint8
	WY, WX     uint8

	Mode       uint8
	StatLine   bool
	Dots       int32
	WindowLine int32
	OffDots    int32
	Frames     uint64

	Pixels [FramebufferWidth * FramebufferHeight]uint8
}

func (g *GPU) Snapshot() State {
	s := State{
		LCDC: g.lcdc, STAT: g.stat,
		SCY: g.scy, SCX: g.scx,
		LY: g.ly, LYC: g.lyc,
		BGP:  g.bgp,
		OBP0: g.obp0, OBP1: g.obp1,
		WY: g.wy, WX: g.wx,
		Mode:       uint8(g.mode),
		StatLine:   g.statLine,
		Dots:       int32(g.dots),
		WindowLine: int32(g.windowLine),
		OffDots:    int32(g.offDots),
		Frames:     g.frames,
	}
	for i, p := range g.framebuffer.buffer {
		s.Pixels[i] = uint8(p)
	}
	return s
}

func (g *GPU) Restore(s *State) {
	g.lcdc, g.stat = s.LCDC, s.STAT&statWritableMask
	g.scy, g.scx = s.SCY, s.SCX
	g.ly, g.lyc = s.LY, s.LYC
	g.bgp = s.BGP
	g.obp0, g.obp1 = s.OBP0, s.OBP1
	g.wy, g.wx = s.WY, s.WX
	g.mode = Mode(s.Mode & 3)
	g.statLine = s.StatLine
	g.dots = int(s.Dots)
	g.windowLine = int(s.WindowLine)
	g.offDots = int(s.OffDots)
	g.frames = s.Frames
	for i, p := range s.Pixels {
		g.framebuffer.buffer[i] = Shade(p & 3)
	}
}
