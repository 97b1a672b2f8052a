package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/urfave/cli"
	"github.com/valerio/jeebie-core/jeebie"
	"github.com/valerio/jeebie-core/jeebie/monitor"
	"github.com/valerio/jeebie-core/jeebie/timing"
)

const statsviewAddr = "localhost:12600"

func main() {
	app := cli.NewApp()
	app.Name = "Jeebie"
	app.Description = "A DMG Game Boy emulator core with a terminal debugger"
	app.Usage = "jeebie [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "terminal",
			Usage: "Run interactively in the terminal monitor instead of headless",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run headless",
			Value: 60,
		},
		cli.StringSliceFlag{
			Name:  "breakpoint",
			Usage: "Pause when PC reaches this address, hex (may be repeated)",
		},
		cli.StringFlag{
			Name:  "load-state",
			Usage: "Load a save state before running",
		},
		cli.StringFlag{
			Name:  "save-state",
			Usage: "Headless: write a save state after the run. Terminal: file used by F2/F4",
		},
		cli.StringFlag{
			Name:  "screenshot",
			Usage: "Headless: write the final frame as a PNG",
		},
		cli.Float64Flag{
			Name:  "speed",
			Usage: "Terminal: emulation speed multiplier",
			Value: 1,
		},
		cli.BoolFlag{
			Name:  "no-halt-bug",
			Usage: "Disable the HALT bug emulation",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn or error",
			Value: "info",
		},
		cli.BoolFlag{
			Name:  "statsview",
			Usage: "Serve runtime statistics at " + statsviewAddr + "/debug/statsview",
		},
	}
	app.Action = runEmulator

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() == 0 {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
		romPath = c.Args().Get(0)
	}

	breakpoints, err := parseBreakpoints(c.StringSlice("breakpoint"))
	if err != nil {
		return err
	}

	if c.Bool("statsview") {
		launchStatsview()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.Bool("terminal") {
		return runTerminal(ctx, romPath, breakpoints, level, c)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return runHeadless(ctx, headlessConfig{
		romPath:     romPath,
		frames:      c.Int("frames"),
		breakpoints: breakpoints,
		loadState:   c.String("load-state"),
		saveState:   c.String("save-state"),
		screenshot:  c.String("screenshot"),
		haltBug:     !c.Bool("no-halt-bug"),
		logger:      logger,
	})
}

func launchStatsview() {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(statsviewAddr))
		mgr := statsview.New()
		mgr.Start()
	}()
	slog.Info("stats server started", "url", "http://"+statsviewAddr+"/debug/statsview")
}

// parseBreakpoints accepts addresses like "0150", "0x0150" or "$150".
func parseBreakpoints(values []string) ([]int, error) {
	var out []int
	for _, v := range values {
		s := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(v)), "0x"), "$")
		address, err := strconv.ParseUint(s, 16, 32)
		if err != nil || address > 0xFFFF {
			return nil, fmt.Errorf("invalid breakpoint %q", v)
		}
		out = append(out, int(address))
	}
	return out, nil
}

func newMachine(romPath string, breakpoints []int, loadState string, haltBug bool, logger *slog.Logger) (*jeebie.DMG, error) {
	d, err := jeebie.NewWithFile(romPath, jeebie.WithLogger(logger), jeebie.WithHaltBug(haltBug))
	if err != nil {
		return nil, err
	}
	for _, bp := range breakpoints {
		if err := d.AddBreakpoint(bp); err != nil {
			return nil, err
		}
	}
	if loadState != "" {
		data, err := os.ReadFile(loadState)
		if err != nil {
			return nil, fmt.Errorf("reading save state: %w", err)
		}
		if err := d.LoadState(data); err != nil {
			return nil, fmt.Errorf("loading save state %s: %w", loadState, err)
		}
		logger.Info("state loaded", "path", loadState)
	}
	return d, nil
}

func runTerminal(ctx context.Context, romPath string, breakpoints []int, level slog.Level, c *cli.Context) error {
	logs := monitor.NewLogBuffer(200)
	logger := slog.New(monitor.NewHandler(logs, slog.LevelDebug))
	slog.SetDefault(logger)

	d, err := newMachine(romPath, breakpoints, c.String("load-state"), !c.Bool("no-halt-bug"), logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))

	opts := []monitor.Option{
		monitor.WithLogger(logger),
		monitor.WithLogBuffer(logs),
		monitor.WithLogLevel(level),
		monitor.WithLimiter(timing.NewAdaptiveLimiter(timing.WithLogger(logger), timing.WithSpeed(c.Float64("speed")))),
	}
	if path := c.String("save-state"); path != "" {
		opts = append(opts, monitor.WithStatePath(path))
	}

	return monitor.New(d, screen, opts...).Run(ctx)
}
