// Package monitor is an interactive terminal front end for a DMG: it draws the
// LCD with half-block characters next to debugger panels and maps keys to the
// joypad and to run control.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/jeebie-core/jeebie"
	"github.com/valerio/jeebie-core/jeebie/memory"
	"github.com/valerio/jeebie-core/jeebie/timing"
	"github.com/valerio/jeebie-core/jeebie/video"
)

const (
	width  = video.FramebufferWidth
	height = video.FramebufferHeight

	dividerX      = width + 1
	panelX        = dividerX + 2
	panelWidth    = 44
	panelHeight   = 24
	minTermWidth  = panelX + 30
	minTermHeight = height/2 + 2

	// Terminals only report key presses, so a joypad key stays down until it
	// has not been repeated for this long.
	keyTimeout = 100 * time.Millisecond
)

type panel int

const (
	panelCPU panel = iota
	panelPPU
	panelAPU
	panelCartridge
	panelCount
)

func (p panel) String() string {
	return [...]string{"CPU", "PPU", "APU", "Cartridge"}[p]
}

type Option func(*Monitor)

// WithLimiter paces the loop, the default runs unthrottled.
func WithLimiter(l timing.Limiter) Option { return func(m *Monitor) { m.limiter = l } }

// WithLogBuffer shows the entries of b in the log pane.
func WithLogBuffer(b *LogBuffer) Option { return func(m *Monitor) { m.logs = b } }

// WithStatePath sets the file used by the save and load keys.
func WithStatePath(path string) Option { return func(m *Monitor) { m.statePath = path } }

// WithLogLevel sets the initial log pane filter.
func WithLogLevel(level slog.Level) Option { return func(m *Monitor) { m.logLevel = level } }

func WithLogger(l *slog.Logger) Option { return func(m *Monitor) { m.logger = l } }

type Monitor struct {
	dmg     *jeebie.DMG
	screen  tcell.Screen
	limiter timing.Limiter
	logs    *LogBuffer
	logger  *slog.Logger

	statePath string
	panel     panel
	logLevel  slog.Level

	keys map[memory.JoypadKey]time.Time
	now  func() time.Time
	quit bool
}

// New wraps an initialised screen. The caller owns the screen and calls Fini.
func New(d *jeebie.DMG, screen tcell.Screen, opts ...Option) *Monitor {
	m := &Monitor{
		dmg:       d,
		screen:    screen,
		limiter:   timing.NewNoOpLimiter(),
		logs:      NewLogBuffer(100),
		logger:    slog.Default(),
		statePath: "jeebie.state",
		logLevel:  slog.LevelInfo,
		keys:      make(map[memory.JoypadKey]time.Time),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run drives the machine one frame per iteration until quit is requested or
// ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started", "panel", m.panel)
	for !m.quit {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		m.update()
		m.limiter.WaitForNextFrame()
	}
	return nil
}

func (m *Monitor) update() {
	for m.screen.HasPendingEvent() {
		m.handleEvent(m.screen.PollEvent())
	}
	m.releaseExpiredKeys()

	if m.dmg.IsRunning() {
		if err := m.dmg.RunUntilFrame(); err != nil {
			m.logger.Error("emulation paused", "error", err)
		}
	}

	m.draw()
	m.screen.Show()
}

func (m *Monitor) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		m.screen.Sync()
	case *tcell.EventKey:
		m.handleKey(ev)
	}
}

var joypadKeys = map[tcell.Key]memory.JoypadKey{
	tcell.KeyUp:         memory.JoypadUp,
	tcell.KeyDown:       memory.JoypadDown,
	tcell.KeyLeft:       memory.JoypadLeft,
	tcell.KeyRight:      memory.JoypadRight,
	tcell.KeyEnter:      memory.JoypadStart,
	tcell.KeyBackspace:  memory.JoypadSelect,
	tcell.KeyBackspace2: memory.JoypadSelect,
}

var joypadRunes = map[rune]memory.JoypadKey{
	'z': memory.JoypadA,
	'x': memory.JoypadB,
}

func (m *Monitor) handleKey(ev *tcell.EventKey) {
	if key, ok := joypadKeys[ev.Key()]; ok {
		m.press(key)
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		m.quit = true
	case tcell.KeyTab:
		m.panel = (m.panel + 1) % panelCount
	case tcell.KeyF2:
		m.saveState()
	case tcell.KeyF4:
		m.loadState()
	case tcell.KeyRune:
		m.handleRune(ev.Rune())
	}
}

func (m *Monitor) handleRune(r rune) {
	if key, ok := joypadRunes[r]; ok {
		m.press(key)
		return
	}

	switch r {
	case 'q':
		m.quit = true
	case ' ':
		m.dmg.ToggleIsRunning()
		m.logger.Info("run state changed", "running", m.dmg.IsRunning())
	case 'n':
		if !m.dmg.IsRunning() {
			m.stepInstruction()
		}
	case 'f':
		if !m.dmg.IsRunning() {
			m.stepFrame()
		}
	case '+', '=':
		m.changeLogLevel(-4)
	case '-', '_':
		m.changeLogLevel(4)
	}
}

// stepInstruction executes one instruction from a paused machine.
func (m *Monitor) stepInstruction() {
	m.dmg.StartRunning()
	if _, err := m.dmg.ExecuteOpcodes(1); err != nil {
		m.logger.Error("step failed", "error", err)
	}
	m.dmg.StopRunning()
}

// stepFrame runs a single frame from a paused machine and pauses it again.
func (m *Monitor) stepFrame() {
	m.dmg.StartRunning()
	if err := m.dmg.RunUntilFrame(); err != nil {
		m.logger.Error("frame step failed", "error", err)
	}
	m.dmg.StopRunning()
}

// press holds a joypad key down. Directions are exclusive, the latest one wins.
func (m *Monitor) press(key memory.JoypadKey) {
	if key <= memory.JoypadDown {
		for _, dir := range []memory.JoypadKey{memory.JoypadRight, memory.JoypadLeft, memory.JoypadUp, memory.JoypadDown} {
			if _, held := m.keys[dir]; held && dir != key {
				m.dmg.ReleaseButton(dir)
				delete(m.keys, dir)
			}
		}
	}
	if _, held := m.keys[key]; !held {
		m.dmg.PressButton(key)
	}
	m.keys[key] = m.now()
}

func (m *Monitor) releaseExpiredKeys() {
	now := m.now()
	for key, pressed := range m.keys {
		if now.Sub(pressed) >= keyTimeout {
			m.dmg.ReleaseButton(key)
			delete(m.keys, key)
		}
	}
}

// changeLogLevel moves the log pane filter; slog levels are 4 apart.
func (m *Monitor) changeLogLevel(delta slog.Level) {
	next := m.logLevel + delta
	if next < slog.LevelDebug || next > slog.LevelError {
		return
	}
	m.logger.Info("log filter changed", "from", m.logLevel, "to", next)
	m.logLevel = next
}

func (m *Monitor) saveState() {
	data, err := m.dmg.SaveState()
	if err != nil {
		m.logger.Error("save state failed", "error", err)
		return
	}
	if err := os.WriteFile(m.statePath, data, 0o644); err != nil {
		m.logger.Error("save state failed", "path", m.statePath, "error", err)
		return
	}
	m.logger.Info("state saved", "path", m.statePath, "bytes", len(data))
}

func (m *Monitor) loadState() {
	data, err := os.ReadFile(m.statePath)
	if err != nil {
		m.logger.Error("load state failed", "path", m.statePath, "error", err)
		return
	}
	if err := m.dmg.LoadState(data); err != nil {
		m.logger.Error("load state failed", "path", m.statePath, "error", err)
		return
	}
	m.logger.Info("state loaded", "path", m.statePath)
}

func (m *Monitor) status() string {
	if m.dmg.IsRunning() {
		return "RUNNING"
	}
	return fmt.Sprintf("PAUSED at 0x%04X", m.dmg.PC())
}
