package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Amr-9/crat/internal/config"
	logpkg "github.com/Amr-9/crat/internal/logger"
	"github.com/Amr-9/crat/internal/ui"
	"github.com/Amr-9/crat/pkg/generator"
	"github.com/Amr-9/crat/pkg/history"
	"github.com/Amr-9/crat/pkg/sink"
)

func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	cfg = config.NewConfig()
	var out bytes.Buffer
	console = ui.NewTestConsole(strings.NewReader(input), &out)

	root := newRootCmd()
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"gen", "decrypt", "history"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestGenRejectsInvalidFlags(t *testing.T) {
	_, err := run(t, "", "gen", "--chain", "doge", "ace")
	assert.Error(t, err)

	_, err = run(t, "", "gen", "--chain", "sol", "abcde")
	assert.Error(t, err)
}

func TestGenEncryptedThenDecrypt(t *testing.T) {
	outDir := t.TempDir()
	histDir := filepath.Join(t.TempDir(), "history")

	text, err := run(t, "", "gen", "--chain", "sol", "--workers", "2",
		"--out", outDir, "--history", histDir, "--yes", "a")
	require.NoError(t, err)
	assert.Contains(t, text, "MATCH FOUND")

	path := filepath.Join(outDir, sink.FileName("a", generator.Solana))
	fh, err := os.Open(path)
	require.NoError(t, err)
	parsed, err := sink.ParseFile(fh)
	fh.Close()
	require.NoError(t, err)
	assert.True(t, parsed.Encrypted())
	assert.True(t, strings.HasPrefix(strings.ToLower(parsed.Address), "a"))

	text, err = run(t, "", "decrypt", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, text, "key matches "+parsed.Address)

	store, err := history.Open(histDir)
	require.NoError(t, err)
	records, err := store.List(0)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.Len(t, records, 1)
	assert.Equal(t, parsed.Address, records[0].Address)

	text, err = run(t, "", "history", "--history", histDir)
	require.NoError(t, err)
	assert.Contains(t, text, parsed.Address)
}

func TestGenLogsUnknownFreeSpace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	buildLogger = func(string, string) (*zap.Logger, error) { return zap.New(core), nil }
	t.Cleanup(func() { buildLogger = logpkg.New })

	outDir := filepath.Join(t.TempDir(), "not", "yet", "created")
	_, err := run(t, "", "gen", "--chain", "sol", "--workers", "1",
		"--out", outDir, "--history", "", "--yes", "a")
	require.NoError(t, err)

	entries := logs.FilterMessage("free space unknown").All()
	require.Len(t, entries, 1)
	assert.Equal(t, outDir, entries[0].ContextMap()["dir"])
}

func TestHistoryShow(t *testing.T) {
	histDir := filepath.Join(t.TempDir(), "history")
	_, err := run(t, "", "gen", "--chain", "sol", "--workers", "1",
		"--out", t.TempDir(), "--history", histDir, "--yes", "b")
	require.NoError(t, err)

	store, err := history.Open(histDir)
	require.NoError(t, err)
	records, err := store.List(0)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.Len(t, records, 1)

	text, err := run(t, "", "history", "--history", histDir)
	require.NoError(t, err)
	assert.Contains(t, text, records[0].ID)

	text, err = run(t, "", "history", "show", records[0].ID, "--history", histDir)
	require.NoError(t, err)
	assert.Contains(t, text, records[0].Address)
	assert.Contains(t, text, "Speed:")

	_, err = run(t, "", "history", "show", "missing", "--history", histDir)
	assert.ErrorIs(t, err, history.ErrNotFound)
}

func TestGenTwiceKeepsBothFiles(t *testing.T) {
	outDir := t.TempDir()
	for i := 0; i < 2; i++ {
		_, err := run(t, "", "gen", "--chain", "sol", "--workers", "1", "--encrypt", "off",
			"--out", outDir, "--history", "", "--yes", "c")
		require.NoError(t, err)
	}
	assert.FileExists(t, filepath.Join(outDir, "c_solana_crat.txt"))
	assert.FileExists(t, filepath.Join(outDir, "c_solana_crat_2.txt"))
}

func TestHistoryDisabled(t *testing.T) {
	_, err := run(t, "", "history", "--history", "")
	assert.Error(t, err)
}
