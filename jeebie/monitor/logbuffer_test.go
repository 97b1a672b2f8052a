package monitor

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBufferRecent(t *testing.T) {
	lb := NewLogBuffer(3)
	assert.Empty(t, lb.Recent(10, slog.LevelDebug))

	for i, msg := range []string{"one", "two", "three", "four"} {
		level := slog.LevelInfo
		if i%2 == 1 {
			level = slog.LevelDebug
		}
		lb.Add(LogEntry{Level: level, Message: msg})
	}

	var got []string
	for _, e := range lb.Recent(10, slog.LevelDebug) {
		got = append(got, e.Message)
	}
	assert.Equal(t, []string{"four", "three", "two"}, got)

	got = nil
	for _, e := range lb.Recent(10, slog.LevelInfo) {
		got = append(got, e.Message)
	}
	assert.Equal(t, []string{"three"}, got)

	assert.Len(t, lb.Recent(1, slog.LevelDebug), 1)

	lb.Clear()
	assert.Empty(t, lb.Recent(10, slog.LevelDebug))
}

func TestHandler(t *testing.T) {
	lb := NewLogBuffer(10)
	logger := slog.New(NewHandler(lb, slog.LevelInfo))

	logger.Debug("hidden")
	logger.With("rom", "tetris").WithGroup("cpu").Info("step", "pc", 0x150)

	entries := lb.Recent(10, slog.LevelDebug)
	require.Len(t, entries, 1)
	assert.Equal(t, "step rom=tetris cpu.pc=336", entries[0].Message)
}

func TestFormatLogEntry(t *testing.T) {
	e := LogEntry{Time: time.Date(2024, 1, 1, 13, 4, 5, 0, time.UTC), Level: slog.LevelWarn, Message: "slow frame"}
	assert.Equal(t, "13:04:05 [WRN] slow frame", FormatLogEntry(e))
}
