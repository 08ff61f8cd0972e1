package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/dynoslide"
	"github.com/aretw0/dynoslide/internal/adapters/file"
	"github.com/aretw0/dynoslide/internal/config"
	"github.com/aretw0/dynoslide/pkg/adapters/fetch"
	loamAdapter "github.com/aretw0/dynoslide/pkg/adapters/loam"
	"github.com/aretw0/dynoslide/pkg/adapters/memory"
	"github.com/aretw0/dynoslide/pkg/adapters/process"
	redisAdapter "github.com/aretw0/dynoslide/pkg/adapters/redis"
	"github.com/aretw0/dynoslide/pkg/dyno"
	"github.com/aretw0/dynoslide/pkg/pipeline"
	"github.com/aretw0/dynoslide/pkg/ports"
)

// PassthroughProfile keeps the filled SVG as the slide asset.
const PassthroughProfile = "passthrough"

// createEngine initializes an Engine with the stores, rasterizer and fetcher
// named by the configuration. The returned func releases external
// connections and must be called after the engine is closed.
func createEngine(cfg config.Config, logger *slog.Logger, extra ...dynoslide.Option) (*dynoslide.Engine, func() error, error) {
	rasterizer, err := newRasterizer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	policy := pipeline.ParsePolicy(cfg.Generation.ImagePolicy)

	engineOpts := []dynoslide.Option{
		dynoslide.WithLogger(logger),
		dynoslide.WithBaseURL(cfg.Server.PublicURL),
		dynoslide.WithRasterizer(rasterizer),
		dynoslide.WithFetcher(newFetcher(cfg, logger)),
		dynoslide.WithDynoOptions(dyno.WithOptions(dynoOptions(cfg))),
		dynoslide.WithImagePolicy(policy),
		dynoslide.WithMaxConcurrent(cfg.Generation.MaxConcurrent),
		dynoslide.WithRasterSize(cfg.Rasterizer.Width, cfg.Rasterizer.Height),
	}

	cleanup := func() error { return nil }
	var dataDir string

	switch cfg.Storage.Driver {
	case config.DriverMemory:
	case config.DriverFile:
		dataDir = cfg.Storage.Dir
	case config.DriverRedis:
		// Carousels live in Redis so replicas share run state; templates and
		// assets stay on the shared volume.
		templates, err := loamAdapter.Open(filepath.Join(cfg.Storage.Dir, "templates"), logger)
		if err != nil {
			return nil, nil, err
		}
		store := redisAdapter.New(cfg.Storage.RedisAddr, cfg.Storage.RedisPassword, cfg.Storage.RedisDB,
			redisAdapter.WithTTL(cfg.Storage.RedisTTL),
		)
		cleanup = store.Close
		engineOpts = append(engineOpts,
			dynoslide.WithCarouselStore(store),
			dynoslide.WithTemplateStore(templates),
			dynoslide.WithAssetStore(file.NewAssetStore(filepath.Join(cfg.Storage.Dir, "assets"), cfg.Server.PublicURL)),
		)
		if cfg.Generation.DistributedLock {
			engineOpts = append(engineOpts,
				dynoslide.WithLocker(redisAdapter.NewLocker(store.Client(), "dynoslide:")),
				dynoslide.WithLockTTL(cfg.Generation.LockTTL),
			)
		}
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	engineOpts = append(engineOpts, extra...)
	engine, err := dynoslide.New(dataDir, engineOpts...)
	if err != nil {
		return nil, nil, errors.Join(fmt.Errorf("error initializing engine: %w", err), cleanup())
	}

	logger.Debug("engine ready",
		"storage", cfg.Storage.Driver,
		"rasterizer", cfg.Rasterizer.Profile,
		"image_policy", policy,
	)
	return engine, cleanup, nil
}

func newRasterizer(cfg config.Config, logger *slog.Logger) (ports.Rasterizer, error) {
	if cfg.Rasterizer.Profile == "" || cfg.Rasterizer.Profile == PassthroughProfile {
		return memory.PassthroughRasterizer{}, nil
	}
	profiles, err := process.LoadProfiles(cfg.Rasterizer.ProfilesFile)
	if err != nil {
		return nil, err
	}
	profile, ok := profiles[cfg.Rasterizer.Profile]
	if !ok {
		return nil, fmt.Errorf("unknown rasterizer profile %q", cfg.Rasterizer.Profile)
	}
	opts := []process.Option{
		process.WithTimeout(cfg.Rasterizer.Timeout),
		process.WithLogger(logger),
	}
	if cfg.Rasterizer.ProfilesFile != "" {
		opts = append(opts, process.WithBaseDir(filepath.Dir(cfg.Rasterizer.ProfilesFile)))
	}
	return process.NewRasterizer(profile, opts...), nil
}

func newFetcher(cfg config.Config, logger *slog.Logger) *fetch.Fetcher {
	opts := []fetch.Option{
		fetch.WithLogger(logger),
		fetch.WithTimeout(cfg.Fetch.Timeout),
		fetch.WithMaxBytes(cfg.Fetch.MaxBytes),
		fetch.WithLocalFiles(cfg.Fetch.AllowLocal),
		fetch.WithBaseDir(cfg.Fetch.BaseDir),
	}
	if cfg.Fetch.RateLimit > 0 {
		opts = append(opts, fetch.WithRateLimit(cfg.Fetch.RateLimit, cfg.Fetch.Burst))
	}
	if cfg.Fetch.Retries > 0 {
		opts = append(opts, fetch.WithRetries(cfg.Fetch.Retries, 200*time.Millisecond))
	}
	return fetch.New(opts...)
}

// dynoOptions maps the render and images sections onto substitution options.
func dynoOptions(cfg config.Config) dyno.Options {
	opts := dyno.DefaultOptions()
	opts.CanvasWidth = cfg.Render.CanvasWidth
	opts.LineHeight = cfg.Render.LineHeight
	opts.PairedOffset = cfg.Render.PairedOffset
	opts.WrapThreshold = cfg.Render.WrapThreshold
	opts.WrapMinChars = cfg.Render.WrapMinChars
	if len(cfg.Render.Aliases) > 0 {
		opts.Aliases = cfg.Render.Aliases
	}
	opts.Images = cfg.Images
	opts.Logger = nil
	return opts
}
