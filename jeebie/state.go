package jeebie

import (
	"fmt"

	"github.com/valerio/jeebie-core/jeebie/memory"
	"github.com/valerio/jeebie-core/jeebie/savestate"
)

// SaveState captures the whole machine. The execution controller (running
// flag, breakpoints, counters) is not part of it.
func (d *DMG) SaveState() ([]byte, error) {
	mem := d.mem.Snapshot()
	s := &savestate.Snapshot{
		CartridgeCRC: d.mem.Cartridge().Checksum(),
		CPU:          d.cpu.Snapshot(),
		Interrupts:   d.mem.Interrupts().Snapshot(),
		Timer:        mem.Timer,
		Serial:       d.mem.Serial().Snapshot(),
		Joypad:       mem.Joypad,
		MBC:          d.mem.MBC().Snapshot(),
		Memory:       mem.Memory,
		PPU:          d.gpu.Snapshot(),
		APU:          d.mem.APU.Snapshot(),
	}
	if ram := d.mem.MBC().RAM(); len(ram) > 0 {
		s.RAM = append([]byte(nil), ram...)
	}

	data, err := savestate.Encode(s)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("state saved", "bytes", len(data))
	return data, nil
}

// LoadState restores a state produced by SaveState for the same cartridge.
// On error the machine is left untouched.
func (d *DMG) LoadState(data []byte) error {
	s, err := savestate.Decode(data)
	if err != nil {
		d.logger.Error("state rejected", "err", err)
		return err
	}

	if want := d.mem.Cartridge().Checksum(); s.CartridgeCRC != want {
		d.logger.Error("state rejected", "state_crc", s.CartridgeCRC, "cartridge_crc", want)
		return fmt.Errorf("%w: state CRC 0x%08X, cartridge CRC 0x%08X", savestate.ErrCartridgeMismatch, s.CartridgeCRC, want)
	}

	ram := d.mem.MBC().RAM()
	if len(s.RAM) != len(ram) {
		return fmt.Errorf("%w: state has %d bytes of cartridge RAM, cartridge has %d", savestate.ErrLength, len(s.RAM), len(ram))
	}

	d.cpu.Restore(s.CPU)
	d.mem.Interrupts().Restore(s.Interrupts)
	d.mem.Restore(&memory.State{Memory: s.Memory, Timer: s.Timer, Joypad: s.Joypad})
	d.mem.Serial().Restore(s.Serial)
	d.mem.MBC().Restore(s.MBC)
	copy(ram, s.RAM)
	d.gpu.Restore(&s.PPU)
	d.mem.APU.Restore(s.APU)
	d.resumeFrom = -1

	d.logger.Info("state restored", "pc", fmt.Sprintf("0x%04X", d.cpu.PC()))
	return nil
}
