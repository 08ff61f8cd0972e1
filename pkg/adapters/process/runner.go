package process

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/dynoslide/internal/logging"
	"github.com/aretw0/dynoslide/pkg/domain"
)

// Rasterizer implements ports.Rasterizer by piping the document through a
// local process: the SVG goes to stdin and the raster is read from stdout.
type Rasterizer struct {
	profile Profile
	baseDir string
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures the rasterizer.
type Option func(*Rasterizer)

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) Option {
	return func(r *Rasterizer) {
		r.baseDir = dir
	}
}

// WithTimeout bounds a single render.
func WithTimeout(d time.Duration) Option {
	return func(r *Rasterizer) {
		r.timeout = d
	}
}

// WithLogger configures a logger for the rasterizer.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Rasterizer) {
		r.logger = logger
	}
}

// NewRasterizer creates a process rasterizer for the profile.
func NewRasterizer(p Profile, opts ...Option) *Rasterizer {
	r := &Rasterizer{
		profile: p,
		timeout: 60 * time.Second,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render runs the profile command. Non-zero exits and empty output wrap
// domain.ErrRasterizationFailed with the captured stderr.
func (r *Rasterizer) Render(ctx context.Context, document string, width, height int) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	args := expandArgs(r.profile.Args, width, height)
	cmd := exec.CommandContext(ctx, r.profile.Command, args...)
	cmd.Dir = r.baseDir

	// Hints are also exposed as environment variables for wrapper scripts.
	env := []string{
		"DYNOSLIDE_WIDTH=" + strconv.Itoa(width),
		"DYNOSLIDE_HEIGHT=" + strconv.Itoa(height),
	}
	for k, v := range r.profile.Environment {
		env = append(env, k+"="+v)
	}
	cmd.Env = append(cmd.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(document)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v. Stderr: %s",
			domain.ErrRasterizationFailed, r.profile.Command, err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%w: %s produced no output", domain.ErrRasterizationFailed, r.profile.Command)
	}

	r.logger.Debug("rasterized document",
		"command", r.profile.Command,
		"bytes", stdout.Len(),
		"duration", time.Since(start),
	)
	return stdout.Bytes(), nil
}

func expandArgs(args []string, width, height int) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if strings.Contains(a, "{width}") {
			if width <= 0 {
				continue
			}
			a = strings.ReplaceAll(a, "{width}", strconv.Itoa(width))
		}
		if strings.Contains(a, "{height}") {
			if height <= 0 {
				continue
			}
			a = strings.ReplaceAll(a, "{height}", strconv.Itoa(height))
		}
		out = append(out, a)
	}
	return out
}
