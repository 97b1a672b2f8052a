package jeebie

import (
	"github.com/valerio/jeebie-core/jeebie/audio"
	"github.com/valerio/jeebie-core/jeebie/disasm"
	"github.com/valerio/jeebie-core/jeebie/interrupt"
	"github.com/valerio/jeebie-core/jeebie/memory"
	"github.com/valerio/jeebie-core/jeebie/video"
)

// Memory returns a read-only view of the address space. It is only valid
// while the machine is alive and reflects later writes.
func (d *DMG) Memory() memory.View { return d.mem.View() }

// Peek reads address without side effects.
func (d *DMG) Peek(address uint16) uint8 { return d.mem.Peek(address) }

// Poke writes address bypassing the cartridge controller, for debuggers.
func (d *DMG) Poke(address uint16, value uint8) { d.mem.Poke(address, value) }

func (d *DMG) Cartridge() *memory.Cartridge { return d.mem.Cartridge() }

func (d *DMG) PPU() video.Registers { return d.gpu.Registers() }

func (d *DMG) Framebuffer() *video.FrameBuffer { return d.gpu.FrameBuffer() }

func (d *DMG) BackgroundMap(selectHigh bool) *video.FrameBuffer {
	return d.gpu.BackgroundMap(selectHigh)
}

func (d *DMG) TileSheet() *video.FrameBuffer { return d.gpu.TileSheet() }

func (d *DMG) Sprites() []video.Sprite { return d.gpu.Sprites() }

func (d *DMG) Timer() memory.TimerInfo { return d.mem.Timer().Info() }

func (d *DMG) MBC() memory.BankInfo { return d.mem.MBC().Info() }

func (d *DMG) Interrupts() interrupt.Snapshot { return d.mem.Interrupts().Snapshot() }

func (d *DMG) APUEnabled() bool { return d.mem.APU.Enabled() }

func (d *DMG) Square1() audio.PulseInfo { return d.mem.APU.Square1() }

func (d *DMG) Square2() audio.PulseInfo { return d.mem.APU.Square2() }

func (d *DMG) Wave() audio.WaveInfo { return d.mem.APU.Wave() }

func (d *DMG) Noise() audio.NoiseInfo { return d.mem.APU.Noise() }

// SoundOn reports whether channel ch (1-4) is playing.
func (d *DMG) SoundOn(ch int) bool { return d.mem.APU.SoundOn(ch) }

func (d *DMG) ChannelOutputs() [4]uint8 { return d.mem.APU.ChannelOutputs() }

// OpcodeName disassembles the instruction at address.
func (d *DMG) OpcodeName(address uint16) string {
	return disasm.OpcodeName(d.mem.View(), address)
}

// SerialOutput returns everything the game sent over the link port.
func (d *DMG) SerialOutput() string { return string(d.mem.Serial().Output()) }

func (d *DMG) PressButton(key memory.JoypadKey) { d.mem.PressKey(key) }

func (d *DMG) ReleaseButton(key memory.JoypadKey) { d.mem.ReleaseKey(key) }

// TotalCycles counts T-cycles since power on, and is restored with save states.
func (d *DMG) TotalCycles() uint64 { return d.cpu.Cycles() }

// Frames counts frames completed by the PPU.
func (d *DMG) Frames() uint64 { return d.gpu.Frames() }

// InstructionCount counts fetched instructions since power on. Idle HALT/STOP
// steps and interrupt dispatches are not counted.
func (d *DMG) InstructionCount() uint64 { return d.instructions }

// PPUDots is the dot position within the current scanline.
func (d *DMG) PPUDots() int { return d.gpu.Dots() }

func (d *DMG) Halted() bool { return d.cpu.Halted() }

// Locked reports whether the CPU hit an illegal instruction.
func (d *DMG) Locked() bool { return d.cpu.Locked() }
