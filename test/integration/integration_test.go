package integration

import (
	"crypto/md5"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valerio/jeebie-core/jeebie"
	"github.com/valerio/jeebie-core/jeebie/video"
)

// Screen-verified ROMs: the result is only visible on the LCD, so each run is
// compared against a golden framebuffer dump in testdata/.
type integrationTestCase struct {
	name    string
	romPath string
	frames  int
}

func integrationTests() []integrationTestCase {
	baseDir := "../../test-roms/game-boy-test-roms"
	return []integrationTestCase{
		{name: "dmg-acid2", romPath: filepath.Join(baseDir, "dmg-acid2/dmg-acid2.gb"), frames: 10},
		{name: "mem_timing_01-read", romPath: filepath.Join(baseDir, "blargg/mem_timing/individual/01-read_timing.gb"), frames: 60},
		{name: "mem_timing_02-write", romPath: filepath.Join(baseDir, "blargg/mem_timing/individual/02-write_timing.gb"), frames: 60},
		{name: "mem_timing_03-modify", romPath: filepath.Join(baseDir, "blargg/mem_timing/individual/03-modify_timing.gb"), frames: 60},
	}
}

func writePNG(path string, fb *video.FrameBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return video.WritePNG(f, fb)
}

func runIntegrationTest(t *testing.T, tc integrationTestCase) {
	if _, err := os.Stat(tc.romPath); os.IsNotExist(err) {
		t.Skipf("ROM file not found: %s", tc.romPath)
	}

	emu, err := jeebie.NewWithFile(tc.romPath, jeebie.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	for range tc.frames {
		require.NoError(t, emu.RunUntilFrame())
	}

	fb := emu.Framebuffer()
	data := fb.ToGrayscale()
	hash := fmt.Sprintf("%x", md5.Sum(data))

	screenPath := filepath.Join("testdata", tc.name+".bin")
	snapshotDir := filepath.Join("testdata", "snapshots")
	require.NoError(t, os.MkdirAll(snapshotDir, 0o755))

	if os.Getenv("JEEBIE_GENERATE_GOLDEN") == "true" {
		require.NoError(t, os.WriteFile(screenPath, data, 0o644))
		require.NoError(t, writePNG(filepath.Join(snapshotDir, tc.name+".png"), fb))
		t.Logf("reference generated for %s, hash %s", tc.name, hash)
		return
	}

	expected, err := os.ReadFile(screenPath)
	if os.IsNotExist(err) {
		t.Skipf("no golden screen for %s; run with JEEBIE_GENERATE_GOLDEN=true to create it", tc.name)
	}
	require.NoError(t, err)

	expectedHash := fmt.Sprintf("%x", md5.Sum(expected))
	if hash != expectedHash {
		actualPNG := filepath.Join(snapshotDir, tc.name+"_actual.png")
		if err := writePNG(actualPNG, fb); err != nil {
			t.Logf("could not save %s: %v", actualPNG, err)
		}
		t.Errorf("screen differs from golden\n  expected hash: %s\n  actual hash:   %s\n  saved:         %s",
			expectedHash, hash, actualPNG)
	}
}

func TestIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	for _, tc := range integrationTests() {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			runIntegrationTest(t, tc)
		})
	}
}
