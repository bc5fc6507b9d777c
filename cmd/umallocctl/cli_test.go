package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/umalloc/internal/format"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.String(), fnErr
}

// runCLI executes the root command with fresh flag values.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	verbose, quiet, jsonOut = false, false, false
	logFile, arenaKind, arenaMax = "", "heap", "1GiB"
	minGrow = format.MinGrowUnits
	replayChecked = false
	stressOps, stressSeed, stressMaxSize = 10000, 1, "4KiB"
	stressCheck, stressDrain = false, false

	rootCmd.SetArgs(args)
	return captureOutput(t, rootCmd.Execute)
}

func writeTrace(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "w.trace")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const workload = `alloc a 100
alloc b 200
free a
check
free b
`

type cliReport struct {
	Result struct {
		Ops      int `json:"ops"`
		Allocs   int `json:"allocs"`
		Frees    int `json:"frees"`
		Failures int `json:"failures"`
		Live     int `json:"live"`
	} `json:"result"`
	State struct {
		Blocks []struct {
			Addr  uint32 `json:"addr"`
			Units uint32 `json:"units"`
		} `json:"blocks"`
		Stats struct {
			FreeBlocks int `json:"free_blocks"`
			GrowCalls  int `json:"grow_calls"`
		} `json:"stats"`
	} `json:"state"`
}

func decodeReport(t *testing.T, out string) cliReport {
	t.Helper()
	var rep cliReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep), "output: %s", out)
	return rep
}

func TestReplayText(t *testing.T) {
	path := writeTrace(t, workload)
	out, err := runCLI(t, "replay", path)
	require.NoError(t, err)
	require.Contains(t, out, "5 ops, 2 allocs, 2 frees, 0 refused, 1 checks, 0 live")
	require.Contains(t, out, "free list: 1 blocks, 4,096 units")
}

func TestReplayJSON(t *testing.T) {
	path := writeTrace(t, workload)
	out, err := runCLI(t, "replay", path, "--json", "--min-grow", "64")
	require.NoError(t, err)

	rep := decodeReport(t, out)
	require.Equal(t, 5, rep.Result.Ops)
	require.Equal(t, 2, rep.Result.Allocs)
	require.Equal(t, 1, rep.State.Stats.FreeBlocks)
	// Both requests fit in a single 64-unit extension.
	require.Equal(t, 1, rep.State.Stats.GrowCalls)
	require.Len(t, rep.State.Blocks, 1)
	require.Equal(t, uint32(1), rep.State.Blocks[0].Addr)
	require.Equal(t, uint32(64), rep.State.Blocks[0].Units)
}

func TestReplayDump(t *testing.T) {
	path := writeTrace(t, "alloc a 8\ndump\n")
	out, err := runCLI(t, "replay", path)
	require.NoError(t, err)
	require.Contains(t, out, "free list: 1 blocks, 4,094 units")
}

func TestReplayParseError(t *testing.T) {
	path := writeTrace(t, "alloc a 1\nresize a 2\n")
	_, err := runCLI(t, "replay", path)
	require.ErrorContains(t, err, "trace: line 2")
}

func TestReplayNoArena(t *testing.T) {
	path := writeTrace(t, workload)
	out, err := runCLI(t, "replay", path, "--arena", "none", "--json")
	require.NoError(t, err)

	rep := decodeReport(t, out)
	require.Equal(t, 2, rep.Result.Failures)
	require.Zero(t, rep.Result.Allocs)
	require.Zero(t, rep.State.Stats.GrowCalls)
}

func TestBadArenaFlags(t *testing.T) {
	path := writeTrace(t, workload)

	_, err := runCLI(t, "replay", path, "--arena", "disk")
	require.ErrorContains(t, err, "unknown --arena")

	_, err = runCLI(t, "replay", path, "--arena-max", "lots")
	require.ErrorContains(t, err, "invalid --arena-max")
}

func TestStressDrains(t *testing.T) {
	out, err := runCLI(t, "stress", "--ops", "500", "--seed", "3", "--max-size", "1KiB",
		"--check", "--drain", "--json")
	require.NoError(t, err)

	rep := decodeReport(t, out)
	require.Zero(t, rep.Result.Live)
	require.Equal(t, rep.Result.Allocs, rep.Result.Frees)
	require.Equal(t, 1, rep.State.Stats.FreeBlocks)
}

func TestStressQuiet(t *testing.T) {
	out, err := runCLI(t, "stress", "--ops", "50", "-q")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "umallocctl ")
	require.Contains(t, out, "commit:")
}
