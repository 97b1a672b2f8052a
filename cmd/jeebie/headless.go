package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/jeebie-core/jeebie"
	"github.com/valerio/jeebie-core/jeebie/video"
)

type headlessConfig struct {
	romPath     string
	frames      int
	breakpoints []int
	loadState   string
	saveState   string
	screenshot  string
	haltBug     bool
	logger      *slog.Logger
}

// runHeadless runs a fixed number of frames, stopping early at a breakpoint
// or an illegal instruction, then reports where the machine ended up.
func runHeadless(ctx context.Context, cfg headlessConfig) error {
	if cfg.frames <= 0 {
		return fmt.Errorf("--frames must be positive, got %d", cfg.frames)
	}

	d, err := newMachine(cfg.romPath, cfg.breakpoints, cfg.loadState, cfg.haltBug, cfg.logger)
	if err != nil {
		return err
	}
	cart := d.Cartridge()
	cfg.logger.Info("running headless", "title", cart.Title(), "type", cart.Type(), "frames", cfg.frames)

	var runErr error
	for i := 0; i < cfg.frames && d.IsRunning(); i++ {
		if ctx.Err() != nil {
			break
		}
		if runErr = d.RunUntilFrame(); runErr != nil {
			break
		}
		if (i+1)%60 == 0 {
			cfg.logger.Debug("frame progress", "completed", i+1, "total", cfg.frames)
		}
	}

	if !d.IsRunning() && runErr == nil {
		cfg.logger.Info("paused at breakpoint", "pc", fmt.Sprintf("0x%04X", d.PC()), "opcode", d.OpcodeName(d.PC()))
	}
	reportMachine(cfg.logger, d)

	if cfg.saveState != "" {
		if err := writeState(d, cfg.saveState); err != nil {
			return err
		}
		cfg.logger.Info("state saved", "path", cfg.saveState)
	}
	if cfg.screenshot != "" {
		if err := writeScreenshot(d.Framebuffer(), cfg.screenshot); err != nil {
			return err
		}
		cfg.logger.Info("screenshot saved", "path", cfg.screenshot)
	}
	return runErr
}

func reportMachine(logger *slog.Logger, d *jeebie.DMG) {
	logger.Info("registers",
		"af", fmt.Sprintf("%02X%02X", d.A(), d.F()),
		"bc", fmt.Sprintf("%04X", d.BC()),
		"de", fmt.Sprintf("%04X", d.DE()),
		"hl", fmt.Sprintf("%04X", d.HL()),
		"sp", fmt.Sprintf("%04X", d.SP()),
		"pc", fmt.Sprintf("%04X", d.PC()),
		"flags", d.FlagString(),
	)
	logger.Info("counters", "frames", d.Frames(), "instructions", d.InstructionCount(), "cycles", d.TotalCycles())
	if out := d.SerialOutput(); out != "" {
		logger.Info("serial output", "text", out)
	}
}

func writeState(d *jeebie.DMG, path string) error {
	data, err := d.SaveState()
	if err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing save state: %w", err)
	}
	return nil
}

func writeScreenshot(fb *video.FrameBuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing screenshot: %w", err)
	}
	if err := video.WritePNG(f, fb); err != nil {
		f.Close()
		return fmt.Errorf("writing screenshot: %w", err)
	}
	return f.Close()
}
