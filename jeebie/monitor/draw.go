package monitor

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/jeebie-core/jeebie/disasm"
	"github.com/valerio/jeebie-core/jeebie/video"
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	pcStyle     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	errorStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed)

	shadeColors = [4]tcell.Color{
		video.Lightest: tcell.ColorWhite,
		video.Light:    tcell.ColorSilver,
		video.Dark:     tcell.ColorGray,
		video.Darkest:  tcell.ColorBlack,
	}
)

const helpText = " SPACE run/pause  N step  F frame  TAB panel  F2 save  F4 load  +/- logs  Q quit "

func (m *Monitor) draw() {
	m.screen.Clear()
	termWidth, termHeight := m.screen.Size()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		m.text(0, termHeight/2, termWidth, errorStyle,
			fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight))
		return
	}

	for y := 0; y < termHeight-1; y++ {
		m.screen.SetContent(dividerX, y, '│', nil, borderStyle)
	}
	m.text(1, 0, width, titleStyle, fmt.Sprintf(" %s  %s ", m.dmg.Cartridge().Title(), m.status()))
	m.drawLCD(m.dmg.Framebuffer())

	panelW := min(panelWidth, termWidth-panelX)
	m.text(panelX, 0, panelW, titleStyle, fmt.Sprintf(" %s (TAB) ", m.panel))

	var lines []string
	switch m.panel {
	case panelCPU:
		lines = m.cpuLines()
	case panelPPU:
		lines = m.ppuLines()
	case panelAPU:
		lines = m.apuLines()
	case panelCartridge:
		lines = m.cartridgeLines()
	}
	for i, line := range lines[:min(len(lines), panelHeight)] {
		m.text(panelX, 1+i, panelW, textStyle, line)
	}
	if m.panel == panelCPU {
		m.drawDisassembly(panelX, len(lines)+2, panelW)
	}

	m.drawLogs(panelX, panelHeight+2, termWidth-panelX, termHeight-panelHeight-3)
	m.text(0, termHeight-1, termWidth, borderStyle, helpText)
}

// drawLCD packs two LCD rows into each terminal row: the upper half block
// takes the top pixel as foreground and the bottom pixel as background.
func (m *Monitor) drawLCD(fb *video.FrameBuffer) {
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := shadeColors[fb.GetPixel(x, y)&3]
			bottom := shadeColors[fb.GetPixel(x, y+1)&3]
			m.screen.SetContent(x, y/2+1, '▀', nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
}

func (m *Monitor) drawDisassembly(x, y, w int) {
	pc := m.dmg.PC()
	m.text(x, y, w, titleStyle, " Disassembly ")
	for i, line := range disasm.DisassembleAround(pc, 4, 4, m.dmg.Memory()) {
		style := textStyle
		if line.Address == pc {
			style = pcStyle
		}
		m.text(x, y+1+i, w, style, disasm.Format(line, line.Address == pc))
	}
}

func (m *Monitor) drawLogs(x, y, w, h int) {
	if h <= 1 || w <= 0 {
		return
	}
	m.text(x, y, w, titleStyle, fmt.Sprintf(" Logs [%s] ", m.logLevel))
	for i, entry := range m.logs.Recent(h-1, m.logLevel) {
		m.text(x, y+1+i, w, logStyle(entry), FormatLogEntry(entry))
	}
}

func logStyle(e LogEntry) tcell.Style {
	if e.Level >= slog.LevelError {
		return errorStyle
	}
	return borderStyle
}

// text writes s at (x, y), clipped to w cells.
func (m *Monitor) text(x, y, w int, style tcell.Style, s string) {
	i := 0
	for _, r := range s {
		if i >= w {
			return
		}
		m.screen.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func (m *Monitor) cpuLines() []string {
	d := m.dmg
	irq := d.Interrupts()
	return []string{
		fmt.Sprintf("A: 0x%02X  F: 0x%02X  [%s]", d.A(), d.F(), d.FlagString()),
		fmt.Sprintf("B: 0x%02X  C: 0x%02X", d.B(), d.C()),
		fmt.Sprintf("D: 0x%02X  E: 0x%02X", d.D(), d.E()),
		fmt.Sprintf("H: 0x%02X  L: 0x%02X", d.H(), d.L()),
		fmt.Sprintf("SP: 0x%04X  PC: 0x%04X", d.SP(), d.PC()),
		fmt.Sprintf("IME: %s  IE: 0x%02X  IF: 0x%02X", onOff(irq.IME), irq.Enable, irq.Request),
		fmt.Sprintf("Halted: %t  Locked: %t", d.Halted(), d.Locked()),
		fmt.Sprintf("Cycles: %d", d.TotalCycles()),
		fmt.Sprintf("Instructions: %d  Frames: %d", d.InstructionCount(), d.Frames()),
	}
}

func (m *Monitor) ppuLines() []string {
	r := m.dmg.PPU()
	visible := 0
	for _, s := range m.dmg.Sprites() {
		if s.X > -8 && s.X < width && s.Y > -s.Height && s.Y < height {
			visible++
		}
	}
	return []string{
		fmt.Sprintf("LCDC: 0x%02X  LCD %s", r.LCDC, onOff(r.LCDEnabled())),
		fmt.Sprintf("STAT: 0x%02X  Mode: %s", r.STAT, r.Mode),
		fmt.Sprintf("LY: %3d  LYC: %3d  Dots: %3d", r.LY, r.LYC, r.Dots),
		fmt.Sprintf("SCX: %3d  SCY: %3d", r.SCX, r.SCY),
		fmt.Sprintf("WX: %3d  WY: %3d  Window %s", r.WX, r.WY, onOff(r.WindowEnabled())),
		fmt.Sprintf("BGP: 0x%02X  OBP0: 0x%02X  OBP1: 0x%02X", r.BGP, r.OBP0, r.OBP1),
		fmt.Sprintf("BG %s  Sprites %s  8x16 %s", onOff(r.BackgroundEnabled()), onOff(r.SpritesEnabled()), onOff(r.TallSprites())),
		fmt.Sprintf("Visible sprites: %d", visible),
	}
}

func (m *Monitor) apuLines() []string {
	d := m.dmg
	s1, s2, w, n := d.Square1(), d.Square2(), d.Wave(), d.Noise()
	out := d.ChannelOutputs()
	return []string{
		fmt.Sprintf("Sound: %s", onOff(d.APUEnabled())),
		fmt.Sprintf("CH1 %-3s vol %2d duty %3.0f%% %7.1f Hz", onOff(d.SoundOn(1)), s1.Volume, s1.DutyPercent, s1.FrequencyHz),
		fmt.Sprintf("CH2 %-3s vol %2d duty %3.0f%% %7.1f Hz", onOff(d.SoundOn(2)), s2.Volume, s2.DutyPercent, s2.FrequencyHz),
		fmt.Sprintf("CH3 %-3s vol %3d%% %7.1f Hz", onOff(d.SoundOn(3)), w.VolumePercent, w.FrequencyHz),
		fmt.Sprintf("CH4 %-3s vol %2d %7.1f Hz short %t", onOff(d.SoundOn(4)), n.Volume, n.FrequencyHz, n.ShortMode),
		fmt.Sprintf("Outputs: %v", out),
	}
}

func (m *Monitor) cartridgeLines() []string {
	c := m.dmg.Cartridge()
	mbc := m.dmg.MBC()
	t := m.dmg.Timer()
	return []string{
		fmt.Sprintf("Title: %s", c.Title()),
		fmt.Sprintf("Type: %s  Header OK: %t", c.Type(), c.HeaderChecksumValid()),
		fmt.Sprintf("ROM banks: %d  RAM: %d bytes", c.ROMBanks(), c.RAMSize()),
		fmt.Sprintf("ROM bank: %d  RAM bank: %d", mbc.ROMBank, mbc.RAMBank),
		fmt.Sprintf("RAM enabled: %t  ROM mode: %t", mbc.RAMEnabled, mbc.ROMBankingMode),
		fmt.Sprintf("DIV: 0x%02X  TIMA: 0x%02X  TMA: 0x%02X", t.DIV, t.TIMA, t.TMA),
		fmt.Sprintf("TAC: 0x%02X  Timer %s %d Hz", t.TAC, onOff(t.Enabled), t.FrequencyHz),
		fmt.Sprintf("Serial: %q", lastBytes(m.dmg.SerialOutput(), 30)),
	}
}

func lastBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
