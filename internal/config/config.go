// Package config loads dynoslide settings from defaults, an optional TOML file
// and DYNOSLIDE_ environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/aretw0/dynoslide/pkg/imagefit"
)

// EnvPrefix marks environment overrides. Sections are separated by a double
// underscore: DYNOSLIDE_SERVER__ADDR sets server.addr.
const EnvPrefix = "DYNOSLIDE_"

// DefaultFile is read when no path is given and it exists.
const DefaultFile = "dynoslide.toml"

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Config represents the application configuration.
type Config struct {
	Server struct {
		Addr            string        `koanf:"addr"`
		PublicURL       string        `koanf:"public_url"`
		CORSOrigins     []string      `koanf:"cors_origins"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
		MaxUploadBytes  int           `koanf:"max_upload_bytes"`
	} `koanf:"server"`

	Log struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
	} `koanf:"log"`

	Render struct {
		CanvasWidth   int                 `koanf:"canvas_width"`
		LineHeight    float64             `koanf:"line_height"`
		PairedOffset  float64             `koanf:"paired_offset"`
		WrapThreshold float64             `koanf:"wrap_threshold"`
		WrapMinChars  int                 `koanf:"wrap_min_chars"`
		Aliases       map[string][]string `koanf:"aliases"`
	} `koanf:"render"`

	Images imagefit.Config `koanf:"images"`

	Rasterizer struct {
		Profile      string        `koanf:"profile"`
		ProfilesFile string        `koanf:"profiles_file"`
		Width        int           `koanf:"width"`
		Height       int           `koanf:"height"`
		Timeout      time.Duration `koanf:"timeout"`
	} `koanf:"rasterizer"`

	Storage struct {
		Driver        string        `koanf:"driver"`
		Dir           string        `koanf:"dir"`
		RedisAddr     string        `koanf:"redis_addr"`
		RedisPassword string        `koanf:"redis_password"`
		RedisDB       int           `koanf:"redis_db"`
		RedisTTL      time.Duration `koanf:"redis_ttl"`
	} `koanf:"storage"`

	Generation struct {
		MaxConcurrent   int           `koanf:"max_concurrent"`
		ImagePolicy     string        `koanf:"image_policy"`
		DistributedLock bool          `koanf:"distributed_lock"`
		LockTTL         time.Duration `koanf:"lock_ttl"`
	} `koanf:"generation"`

	Fetch struct {
		Timeout    time.Duration `koanf:"timeout"`
		MaxBytes   int64         `koanf:"max_bytes"`
		RateLimit  float64       `koanf:"rate_limit"`
		Burst      int           `koanf:"burst"`
		Retries    int           `koanf:"retries"`
		AllowLocal bool          `koanf:"allow_local"`
		BaseDir    string        `koanf:"base_dir"`
	} `koanf:"fetch"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.addr":             ":8080",
		"server.public_url":       "http://localhost:8080",
		"server.cors_origins":     []string{"*"},
		"server.shutdown_timeout": "30s",
		"server.max_upload_bytes": 25 << 20,

		"log.level":  "info",
		"log.format": "text",

		"render.canvas_width":   1080,
		"render.line_height":    28.0,
		"render.paired_offset":  30.0,
		"render.wrap_threshold": 0.8,
		"render.wrap_min_chars": 20,
		"render.aliases": map[string]interface{}{
			"propertyimage": []string{"image0_294_4", "image0_332_4"},
			"logo":          []string{"image1_294_4"},
			"agentheadshot": []string{"image2_294_4"},
		},

		"images.cover_size":   100,
		"images.logo.width":   142,
		"images.logo.height":  56,
		"images.photo.width":  800,
		"images.photo.height": 600,
		"images.quality":      90,

		"rasterizer.profile": "passthrough",
		"rasterizer.width":   1080,
		"rasterizer.height":  0,
		"rasterizer.timeout": "60s",

		"storage.driver":     DriverMemory,
		"storage.dir":        ".dynoslide",
		"storage.redis_addr": "localhost:6379",
		"storage.redis_db":   0,
		"storage.redis_ttl":  "0s",

		"generation.max_concurrent":   4,
		"generation.image_policy":     "fail-slide",
		"generation.distributed_lock": false,
		"generation.lock_ttl":         "30s",

		"fetch.timeout":     "10s",
		"fetch.max_bytes":   25 << 20,
		"fetch.rate_limit":  10.0,
		"fetch.burst":       5,
		"fetch.retries":     1,
		"fetch.allow_local": true,
	}
}

// Load builds the configuration. An explicit path must exist; without one,
// DefaultFile is used when present.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	switch {
	case path != "":
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	default:
		if _, err := os.Stat(DefaultFile); err == nil {
			if err := k.Load(file.Provider(DefaultFile), toml.Parser()); err != nil {
				return nil, fmt.Errorf("error loading config: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	for i, o := range cfg.Server.CORSOrigins {
		cfg.Server.CORSOrigins[i] = strings.TrimSpace(o)
	}
	return &cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Validate checks ranges and enumerations.
func Validate(cfg *Config) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(cfg.Server.Addr != "", "server.addr is required")
	check(cfg.Log.Format == "text" || cfg.Log.Format == "json", "log.format must be text or json, got %q", cfg.Log.Format)
	check(cfg.Render.CanvasWidth > 0, "render.canvas_width must be positive")
	check(cfg.Render.LineHeight > 0, "render.line_height must be positive")
	check(cfg.Render.WrapThreshold > 0 && cfg.Render.WrapThreshold <= 1, "render.wrap_threshold must be in (0, 1]")
	check(cfg.Images.CoverSize > 0, "images.cover_size must be positive")
	check(cfg.Images.Logo.W > 0 && cfg.Images.Logo.H > 0, "images.logo must have a positive size")
	check(cfg.Images.Photo.W > 0 && cfg.Images.Photo.H > 0, "images.photo must have a positive size")
	check(cfg.Images.Quality >= 1 && cfg.Images.Quality <= 100, "images.quality must be in [1, 100]")
	check(cfg.Rasterizer.Profile != "", "rasterizer.profile is required")
	check(cfg.Rasterizer.Width >= 0 && cfg.Rasterizer.Height >= 0, "rasterizer size hints must not be negative")
	check(cfg.Generation.MaxConcurrent > 0, "generation.max_concurrent must be positive")
	check(cfg.Generation.ImagePolicy == "fail-slide" || cfg.Generation.ImagePolicy == "soft",
		"generation.image_policy must be fail-slide or soft, got %q", cfg.Generation.ImagePolicy)
	check(cfg.Fetch.Timeout > 0, "fetch.timeout must be positive")
	check(cfg.Fetch.MaxBytes > 0, "fetch.max_bytes must be positive")

	switch cfg.Storage.Driver {
	case DriverMemory:
	case DriverFile:
		check(cfg.Storage.Dir != "", "storage.dir is required for the file driver")
	case DriverRedis:
		check(cfg.Storage.RedisAddr != "", "storage.redis_addr is required for the redis driver")
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be memory, file or redis, got %q", cfg.Storage.Driver))
	}
	check(!cfg.Generation.DistributedLock || cfg.Storage.Driver == DriverRedis,
		"generation.distributed_lock requires the redis driver")

	return errors.Join(errs...)
}

// Sample is written by `dynoslide config init`.
const Sample = `# dynoslide configuration

[server]
addr = ":8080"
public_url = "http://localhost:8080"

[log]
level = "info"
format = "text"

[rasterizer]
# passthrough, rsvg-convert, inkscape, resvg or a name from profiles_file
profile = "rsvg-convert"
width = 1080

[storage]
driver = "file"
dir = ".dynoslide"

[generation]
max_concurrent = 4
image_policy = "fail-slide"

[fetch]
timeout = "10s"
rate_limit = 10.0
`

// InitFile writes Sample to path unless a file already exists there.
func InitFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists at %s", path)
	}
	return os.WriteFile(path, []byte(Sample), 0o644)
}
