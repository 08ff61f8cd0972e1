package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dynoslide"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	// Flag values survive between executions of the shared root command.
	require.NoError(t, rootCmd.PersistentFlags().Set("config", ""))
	require.NoError(t, rootCmd.PersistentFlags().Set("log-level", ""))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dynoslide version "+strings.TrimSpace(dynoslide.Version)+"\n", out)
}

func TestConfigCommands(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote dynoslide.toml")

	_, err = execute(t, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	out, err = execute(t, "config", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "storage=file, rasterizer=rsvg-convert")

	require.NoError(t, os.WriteFile("bad.toml", []byte("[generation]\nimage_policy = \"ignore\"\n"), 0o644))
	_, err = execute(t, "config", "check", "--config", "bad.toml")
	assert.ErrorContains(t, err, "generation.image_policy")
}

func TestAnalyzeAndRenderCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><text id="dyno.price" x="10" y="20">$0</text></svg>`
	require.NoError(t, os.WriteFile("card.svg", []byte(svg), 0o644))

	out, err := execute(t, "analyze", "card.svg", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"price"`)

	_, err = execute(t, "render", "card.svg", "--set", "price=$99", "--out", "filled.svg")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "filled.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "$99")
}
