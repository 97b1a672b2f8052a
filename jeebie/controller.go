package jeebie

import (
	"errors"
	"fmt"
	"slices"

	"github.com/valerio/jeebie-core/jeebie/interrupt"
)

var ErrBreakpointOutOfRange = errors.New("breakpoint outside the 16-bit address space")

func (d *DMG) StartRunning() { d.running = true }

func (d *DMG) StopRunning() { d.running = false }

func (d *DMG) ToggleIsRunning() { d.running = !d.running }

func (d *DMG) IsRunning() bool { return d.running }

// AddBreakpoint pauses execution before the instruction at address is fetched.
func (d *DMG) AddBreakpoint(address int) error {
	if address < 0 || address > 0xFFFF {
		return fmt.Errorf("%w: %d", ErrBreakpointOutOfRange, address)
	}
	d.breakpoints[uint16(address)] = struct{}{}
	return nil
}

// RemoveBreakpoint is a no-op for addresses that have no breakpoint.
func (d *DMG) RemoveBreakpoint(address int) {
	if address < 0 || address > 0xFFFF {
		return
	}
	delete(d.breakpoints, uint16(address))
}

// Breakpoints returns the breakpoint addresses in ascending order.
func (d *DMG) Breakpoints() []uint16 {
	out := make([]uint16, 0, len(d.breakpoints))
	for a := range d.breakpoints {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}

// fetchesNext reports whether the next step will fetch the opcode at pc, as
// opposed to idling in HALT/STOP or dispatching an interrupt. It mirrors the wake
// rules in cpu.Step.
func (d *DMG) fetchesNext() bool {
	irq := d.mem.Interrupts()
	pending := irq.Pending()
	switch {
	case d.cpu.Stopped() && !irq.Requested(interrupt.Joypad):
		return false
	case d.cpu.Halted() && !pending:
		return false
	}
	return !(irq.IME() && pending)
}

// atBreakpoint pauses the machine when the next fetch hits a breakpoint. The
// breakpoint the machine last paused on lets one instruction through, so
// resuming does not stop again at the same place.
func (d *DMG) atBreakpoint() bool {
	pc := d.cpu.PC()
	if int(pc) == d.resumeFrom {
		return false
	}
	if _, ok := d.breakpoints[pc]; !ok || !d.fetchesNext() {
		return false
	}
	d.running = false
	d.resumeFrom = int(pc)
	d.logger.Debug("breakpoint hit", "pc", fmt.Sprintf("0x%04X", pc))
	return true
}

// runStep is the single place the controller advances the CPU.
func (d *DMG) runStep() (int, error) {
	cycles, err := d.step()
	if err != nil {
		d.running = false
		d.logger.Error("execution paused", "err", err)
		return 0, fmt.Errorf("executing instruction %d: %w", d.instructions, err)
	}
	d.resumeFrom = -1
	return cycles, nil
}

// ExecuteOpcodes runs up to n steps and returns the cycles they took. It stops
// early when the machine is paused, hits a breakpoint or fails.
func (d *DMG) ExecuteOpcodes(n int) (int, error) {
	total := 0
	for range n {
		if !d.running || d.atBreakpoint() {
			break
		}
		cycles, err := d.runStep()
		total += cycles
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ExecuteOpcodesNoStop runs until at least budget cycles have elapsed, or the
// machine pauses.
func (d *DMG) ExecuteOpcodesNoStop(budget int) (int, error) {
	total := 0
	for total < budget {
		if !d.running || d.atBreakpoint() {
			break
		}
		cycles, err := d.runStep()
		total += cycles
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// RunUntilFrame runs until the PPU completes the current frame, or the
// machine pauses.
func (d *DMG) RunUntilFrame() error {
	target := d.gpu.Frames() + 1
	for d.gpu.Frames() < target {
		if !d.running || d.atBreakpoint() {
			return nil
		}
		if _, err := d.runStep(); err != nil {
			return err
		}
	}
	return nil
}
