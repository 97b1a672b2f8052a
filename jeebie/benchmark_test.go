package jeebie

import (
	"io"
	"log/slog"
	"os"
	"testing"
)

func benchmarkFrames(b *testing.B, d *DMG, frames int) {
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		for range frames {
			if err := d.RunUntilFrame(); err != nil {
				b.Fatalf("frame failed: %v", err)
			}
		}
	}
}

func BenchmarkSyntheticProgram(b *testing.B) {
	d, err := New(buildROM(timerProgram, timerHandlers), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		b.Fatalf("creating machine: %v", err)
	}
	benchmarkFrames(b, d, 60)
}

func BenchmarkROM(b *testing.B) {
	testROMs := []struct {
		name   string
		path   string
		frames int
	}{
		{"dmg_acid_100", "../test-roms/dmg-acid2.gb", 100},
		{"cpu_instrs_100", "../test-roms/cpu_instrs.gb", 100},
	}

	for _, tc := range testROMs {
		b.Run(tc.name, func(b *testing.B) {
			if _, err := os.Stat(tc.path); err != nil {
				b.Skipf("ROM file not found: %s", tc.path)
			}
			d, err := NewWithFile(tc.path, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
			if err != nil {
				b.Fatalf("creating machine: %v", err)
			}
			benchmarkFrames(b, d, tc.frames)
		})
	}
}
