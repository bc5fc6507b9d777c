package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledDiscards(t *testing.T) {
	var buf bytes.Buffer
	closeFn, err := Init(Options{Enabled: false, Stderr: &buf})
	require.NoError(t, err)
	defer closeFn()

	Error("dropped")
	require.Zero(t, buf.Len())
}

func TestTextToStderr(t *testing.T) {
	var buf bytes.Buffer
	closeFn, err := Init(Options{Enabled: true, Level: slog.LevelInfo, Stderr: &buf})
	require.NoError(t, err)
	defer closeFn()

	Debug("below level")
	Info("replay done", "ops", 3)
	require.NotContains(t, buf.String(), "below level")
	require.Contains(t, buf.String(), "msg=\"replay done\" ops=3")
}

func TestJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "umalloc.log")
	closeFn, err := Init(Options{Enabled: true, LogFile: path, Level: slog.LevelDebug})
	require.NoError(t, err)

	Debug("arena grown", "units", 4096)
	require.NoError(t, closeFn())
	t.Cleanup(func() { L = discard() })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &rec))
	require.Equal(t, "arena grown", rec["msg"])
	require.EqualValues(t, 4096, rec["units"])
}

func TestBadLogFile(t *testing.T) {
	_, err := Init(Options{Enabled: true, LogFile: filepath.Join(t.TempDir(), "missing", "x.log")})
	require.Error(t, err)
}
