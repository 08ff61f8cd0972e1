package process

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.Rasterizer = (*Rasterizer)(nil)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestRasterizer_Render(t *testing.T) {
	skipOnWindows(t)

	t.Run("Pipes Document Through Stdin", func(t *testing.T) {
		r := NewRasterizer(Profile{Command: "cat"})
		out, err := r.Render(context.Background(), "<svg/>", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, "<svg/>", string(out))
	})

	t.Run("Passes Hints via Args and Env Vars", func(t *testing.T) {
		r := NewRasterizer(Profile{
			Command: "sh",
			Args:    []string{"-c", `printf "%s:%s:%s" "$DYNOSLIDE_WIDTH" "$1" "$MODE"`, "sh", "--height={height}"},
			Environment: map[string]string{
				"MODE": "png",
			},
		})
		out, err := r.Render(context.Background(), "<svg/>", 400, 300)
		require.NoError(t, err)
		assert.Equal(t, "400:--height=300:png", string(out))
	})

	t.Run("Failure Captures Stderr", func(t *testing.T) {
		r := NewRasterizer(Profile{Command: "sh", Args: []string{"-c", "echo bad svg >&2; exit 3"}})
		_, err := r.Render(context.Background(), "<svg/>", 0, 0)
		assert.ErrorIs(t, err, domain.ErrRasterizationFailed)
		assert.Contains(t, err.Error(), "bad svg")
	})

	t.Run("Empty Output Fails", func(t *testing.T) {
		r := NewRasterizer(Profile{Command: "true"})
		_, err := r.Render(context.Background(), "<svg/>", 0, 0)
		assert.ErrorIs(t, err, domain.ErrRasterizationFailed)
	})

	t.Run("Timeout Fails", func(t *testing.T) {
		r := NewRasterizer(Profile{Command: "sleep", Args: []string{"5"}}, WithTimeout(50*time.Millisecond))
		start := time.Now()
		_, err := r.Render(context.Background(), "<svg/>", 0, 0)
		assert.ErrorIs(t, err, domain.ErrRasterizationFailed)
		assert.Less(t, time.Since(start), 3*time.Second)
	})
}

func TestExpandArgs(t *testing.T) {
	args := []string{"--format=png", "--width={width}", "--height={height}"}
	assert.Equal(t, []string{"--format=png", "--width=1080", "--height=1350"}, expandArgs(args, 1080, 1350))
	assert.Equal(t, []string{"--format=png", "--width=400"}, expandArgs(args, 400, 0))
	assert.Equal(t, []string{"--format=png"}, expandArgs(args, 0, 0))
}

func TestLoadProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rasterizers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rasterizers:
  - name: chrome
    command: chrome-svg
    args: ["--scale=2"]
  - name: ""
    command: ignored
`), 0o644))

	profiles, err := LoadProfiles(path)
	require.NoError(t, err)
	assert.Equal(t, "chrome-svg", profiles["chrome"].Command)
	assert.Contains(t, profiles, "rsvg-convert")
	assert.NotContains(t, profiles, "")

	profiles, err = LoadProfiles(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Len(t, profiles, len(BuiltinProfiles()))
}
