package monitor

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/jeebie-core/jeebie"
)

// 0x150: INC A; JR 0x150
func spinROM() []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x100:], []byte{0x00, 0xC3, 0x50, 0x01})
	copy(rom[0x134:], "MONITOR")
	copy(rom[0x150:], []byte{0x3C, 0x18, 0xFD})
	return rom
}

type testMonitor struct {
	*Monitor
	sim   tcell.SimulationScreen
	clock time.Time
}

func newTestMonitor(t *testing.T, opts ...Option) *testMonitor {
	t.Helper()
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	d, err := jeebie.New(spinROM(), jeebie.WithLogger(discard))
	require.NoError(t, err)

	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(220, 80)
	t.Cleanup(sim.Fini)

	tm := &testMonitor{sim: sim, clock: time.Unix(0, 0)}
	opts = append([]Option{WithLogger(discard)}, opts...)
	tm.Monitor = New(d, sim, opts...)
	tm.now = func() time.Time { return tm.clock }
	return tm
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }
func runeKey(r rune) *tcell.EventKey  { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func (tm *testMonitor) advance(d time.Duration) { tm.clock = tm.clock.Add(d) }

// lines returns the low nibble of P1 with the given group selected.
func (tm *testMonitor) lines(selectValue uint8) uint8 {
	tm.dmg.Poke(0xFF00, selectValue)
	return tm.dmg.Peek(0xFF00) & 0x0F
}

const (
	selectButtons = 0x10
	selectDpad    = 0x20
)

func TestJoypadKeys(t *testing.T) {
	testCases := []struct {
		desc   string
		event  *tcell.EventKey
		group  uint8
		expect uint8
	}{
		{desc: "z is A", event: runeKey('z'), group: selectButtons, expect: 0x0E},
		{desc: "x is B", event: runeKey('x'), group: selectButtons, expect: 0x0D},
		{desc: "backspace is select", event: key(tcell.KeyBackspace2), group: selectButtons, expect: 0x0B},
		{desc: "enter is start", event: key(tcell.KeyEnter), group: selectButtons, expect: 0x07},
		{desc: "right", event: key(tcell.KeyRight), group: selectDpad, expect: 0x0E},
		{desc: "down", event: key(tcell.KeyDown), group: selectDpad, expect: 0x07},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			tm := newTestMonitor(t)
			tm.handleKey(tC.event)
			assert.Equal(t, tC.expect, tm.lines(tC.group))

			tm.advance(keyTimeout / 2)
			tm.releaseExpiredKeys()
			assert.Equal(t, tC.expect, tm.lines(tC.group), "still held")

			tm.advance(keyTimeout)
			tm.releaseExpiredKeys()
			assert.Equal(t, uint8(0x0F), tm.lines(tC.group), "released after timeout")
		})
	}
}

func TestRepeatedKeyStaysHeld(t *testing.T) {
	tm := newTestMonitor(t)
	for range 5 {
		tm.handleKey(runeKey('z'))
		tm.advance(keyTimeout / 2)
		tm.releaseExpiredKeys()
	}
	assert.Equal(t, uint8(0x0E), tm.lines(selectButtons))
}

func TestDirectionsAreExclusive(t *testing.T) {
	tm := newTestMonitor(t)
	tm.handleKey(key(tcell.KeyUp))
	tm.handleKey(key(tcell.KeyLeft))
	assert.Equal(t, uint8(0x0D), tm.lines(selectDpad))
}

func TestRunControlKeys(t *testing.T) {
	tm := newTestMonitor(t)
	require.True(t, tm.dmg.IsRunning())

	tm.handleKey(runeKey(' '))
	assert.False(t, tm.dmg.IsRunning())

	pc := tm.dmg.PC()
	tm.handleKey(runeKey('n'))
	assert.NotEqual(t, pc, tm.dmg.PC())
	assert.Equal(t, uint64(1), tm.dmg.InstructionCount())

	tm.handleKey(runeKey('f'))
	assert.Equal(t, uint64(1), tm.dmg.Frames())
	assert.False(t, tm.dmg.IsRunning())

	tm.handleKey(runeKey('q'))
	assert.True(t, tm.quit)
}

func TestStepIgnoredWhileRunning(t *testing.T) {
	tm := newTestMonitor(t)
	tm.handleKey(runeKey('n'))
	assert.Zero(t, tm.dmg.InstructionCount())
}

func TestPanelCycle(t *testing.T) {
	tm := newTestMonitor(t)
	seen := []panel{tm.panel}
	for range panelCount {
		tm.handleKey(key(tcell.KeyTab))
		seen = append(seen, tm.panel)
	}
	assert.Equal(t, []panel{panelCPU, panelPPU, panelAPU, panelCartridge, panelCPU}, seen)
}

func TestLogLevelKeys(t *testing.T) {
	tm := newTestMonitor(t)
	tm.handleKey(runeKey('+'))
	assert.Equal(t, slog.LevelDebug, tm.logLevel)
	tm.handleKey(runeKey('+'))
	assert.Equal(t, slog.LevelDebug, tm.logLevel, "clamped")

	for range 5 {
		tm.handleKey(runeKey('-'))
	}
	assert.Equal(t, slog.LevelError, tm.logLevel)
}

func TestSaveAndLoadKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.state")
	tm := newTestMonitor(t, WithStatePath(path))

	_, err := tm.dmg.ExecuteOpcodes(10)
	require.NoError(t, err)
	a, pc := tm.dmg.A(), tm.dmg.PC()

	tm.handleKey(key(tcell.KeyF2))
	_, err = tm.dmg.ExecuteOpcodes(25)
	require.NoError(t, err)
	require.NotEqual(t, a, tm.dmg.A())

	tm.handleKey(key(tcell.KeyF4))
	assert.Equal(t, a, tm.dmg.A())
	assert.Equal(t, pc, tm.dmg.PC())
}

func TestLoadMissingStateKeepsMachine(t *testing.T) {
	tm := newTestMonitor(t, WithStatePath(filepath.Join(t.TempDir(), "missing.state")))
	tm.dmg.SetA(0x42)
	tm.handleKey(key(tcell.KeyF4))
	assert.Equal(t, uint8(0x42), tm.dmg.A())
}

func (tm *testMonitor) row(y int) string {
	cells, w, _ := tm.sim.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		if r := cells[y*w+x].Runes; len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	return b.String()
}

func TestDraw(t *testing.T) {
	tm := newTestMonitor(t)
	tm.dmg.StopRunning()
	tm.draw()
	tm.sim.Show()

	assert.Contains(t, tm.row(0), "MONITOR")
	assert.Contains(t, tm.row(0), "PAUSED at 0x0100")
	assert.Contains(t, tm.row(0), "CPU (TAB)")
	assert.Contains(t, tm.row(1), "A: 0x01")
	assert.Contains(t, tm.row(79), "SPACE run/pause")

	cells, _, _ := tm.sim.GetContents()
	assert.Equal(t, []rune{'▀'}, cells[1*220+0].Runes)
}

func TestDrawPanels(t *testing.T) {
	testCases := []struct {
		desc   string
		panel  panel
		expect string
	}{
		{desc: "cpu", panel: panelCPU, expect: "SP: 0xFFFE"},
		{desc: "ppu", panel: panelPPU, expect: "LCDC: 0x91"},
		{desc: "apu", panel: panelAPU, expect: "Sound: ON"},
		{desc: "cartridge", panel: panelCartridge, expect: "Title: MONITOR"},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			tm := newTestMonitor(t)
			tm.panel = tC.panel
			tm.draw()
			tm.sim.Show()

			var screen strings.Builder
			for y := 0; y < 30; y++ {
				screen.WriteString(tm.row(y))
				screen.WriteByte('\n')
			}
			assert.Contains(t, screen.String(), tC.expect)
		})
	}
}

func TestDrawTooSmall(t *testing.T) {
	tm := newTestMonitor(t)
	tm.sim.SetSize(80, 24)
	tm.draw()
	tm.sim.Show()
	assert.Contains(t, tm.row(12), "Terminal too small")
}

func TestRunStopsOnQuit(t *testing.T) {
	tm := newTestMonitor(t)
	tm.sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- tm.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("monitor did not quit")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	tm := newTestMonitor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, tm.Run(ctx))
	assert.Zero(t, tm.dmg.Frames())
}
