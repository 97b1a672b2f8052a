package jeebie

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/jeebie-core/jeebie/cpu"
	"github.com/valerio/jeebie-core/jeebie/memory"
	"github.com/valerio/jeebie-core/jeebie/video"
)

// divSeed is the system counter value the boot ROM leaves behind.
const divSeed = 0xABCC

// DMG is a complete Game Boy: CPU, memory bus with its peripherals, PPU and APU,
// plus the execution controller that hosts drive it through.
type DMG struct {
	cpu *cpu.CPU
	mem *memory.MMU
	gpu *video.GPU

	logger  *slog.Logger
	haltBug bool

	running      bool
	breakpoints  map[uint16]struct{}
	resumeFrom   int // address paused on by a breakpoint, -1 if none
	instructions uint64
}

type Option func(*DMG)

// WithLogger sets the logger for the machine and all of its components.
func WithLogger(l *slog.Logger) Option {
	return func(d *DMG) { d.logger = l }
}

// WithHaltBug toggles emulation of the HALT bug. Enabled by default.
func WithHaltBug(enabled bool) Option {
	return func(d *DMG) { d.haltBug = enabled }
}

// New powers on a DMG with rom in the cartridge slot, in the state the boot ROM
// leaves behind. The machine starts in the running state.
func New(rom []byte, opts ...Option) (*DMG, error) {
	d := &DMG{
		logger:      slog.Default(),
		haltBug:     true,
		running:     true,
		breakpoints: make(map[uint16]struct{}),
		resumeFrom:  -1,
	}
	for _, opt := range opts {
		opt(d)
	}

	cart, err := memory.NewCartridgeWithData(rom)
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}

	d.mem = memory.NewWithCartridge(cart, memory.WithLogger(d.logger))
	d.gpu = video.NewGPU(d.mem)
	d.mem.AttachVideo(d.gpu)
	d.mem.SetTimerSeed(divSeed)
	// the CPU writes the post-boot register values, so everything must be wired first
	d.cpu = cpu.New(d.mem, cpu.WithHaltBug(d.haltBug))

	d.logger.Info("cartridge loaded",
		"title", cart.Title(),
		"type", cart.Type(),
		"rom_banks", cart.ROMBanks(),
		"ram_bytes", cart.RAMSize(),
		"header_checksum_ok", cart.HeaderChecksumValid(),
	)
	return d, nil
}

// NewWithFile loads the ROM at path and powers on a DMG with it.
func NewWithFile(path string, opts ...Option) (*DMG, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(data, opts...)
}

// step runs one CPU step and clocks every other component by the cycles it took.
func (d *DMG) step() (int, error) {
	fetched := d.fetchesNext()
	cycles, err := d.cpu.Step()
	if err != nil {
		return 0, err
	}
	d.mem.Tick(cycles)
	d.gpu.Tick(cycles)
	d.mem.APU.Tick(cycles)
	if fetched {
		d.instructions++
	}
	return cycles, nil
}
