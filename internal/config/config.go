// Package config loads renderer settings from flags, RAYTRACER_* environment
// variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/df07/go-mirror-raytracer/pkg/output"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
)

// EnvPrefix is prepended to every environment variable, e.g. RAYTRACER_WIDTH
const EnvPrefix = "RAYTRACER"

// Keys shared by flags, environment variables and config files
const (
	KeyWidth    = "width"
	KeyHeight   = "height"
	KeyFOV      = "fov"
	KeyDepth    = "depth"
	KeyWorkers  = "workers"
	KeyScene    = "scene"
	KeyOutput   = "output"
	KeyFormat   = "format"
	KeyLogLevel = "log-level"
	KeyAddr     = "addr"
)

// Config contains all user-facing settings
type Config struct {
	Render   renderer.Config
	Scene    string        // Built-in scene name, "file:<name>" or scene file path
	Output   string        // Output path; empty means a timestamped file under output/
	Format   output.Format // Used when Output is empty
	LogLevel slog.Level
	Addr     string // Listen address for the web server
}

// New creates a viper instance with defaults and environment binding
func New() *viper.Viper {
	v := viper.New()
	defaults := renderer.DefaultConfig()

	v.SetDefault(KeyWidth, defaults.Width)
	v.SetDefault(KeyHeight, defaults.Height)
	v.SetDefault(KeyFOV, 90.0)
	v.SetDefault(KeyDepth, defaults.MaxDepth)
	v.SetDefault(KeyWorkers, defaults.NumWorkers)
	v.SetDefault(KeyScene, "default")
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyFormat, string(output.FormatPPM))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyAddr, ":8080")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// RegisterRenderFlags adds the render flags to fs and binds them to v
func RegisterRenderFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	defaults := renderer.DefaultConfig()
	fs.Int(KeyWidth, defaults.Width, "Image width in pixels")
	fs.Int(KeyHeight, defaults.Height, "Image height in pixels")
	fs.Float64(KeyFOV, 90.0, "Vertical field of view in degrees")
	fs.Int(KeyDepth, defaults.MaxDepth, "Maximum reflection bounces per pixel")
	fs.Int(KeyWorkers, defaults.NumWorkers, "Number of parallel workers (0 = CPU count)")
	fs.String(KeyScene, "default", "Built-in scene name or scene file (.json, .yaml, .toml)")
	return bindFlags(v, fs, KeyWidth, KeyHeight, KeyFOV, KeyDepth, KeyWorkers, KeyScene)
}

// RegisterOutputFlags adds the output flags to fs and binds them to v
func RegisterOutputFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.StringP(KeyOutput, "o", "", "Output file; format follows the extension (default output/<scene>/render_<timestamp>.<format>)")
	fs.String(KeyFormat, string(output.FormatPPM), "Output format when --output is not set: ppm, png, bmp or tiff")
	return bindFlags(v, fs, KeyOutput, KeyFormat)
}

// RegisterGlobalFlags adds flags shared by every command
func RegisterGlobalFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String(KeyLogLevel, "info", "Log level: debug, info, warn or error")
	return bindFlags(v, fs, KeyLogLevel)
}

// RegisterServerFlags adds the web server flags to fs and binds them to v
func RegisterServerFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String(KeyAddr, ":8080", "Address to serve on")
	return bindFlags(v, fs, KeyAddr)
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys ...string) error {
	for _, key := range keys {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}
	return nil
}

// ReadFile merges settings from a config file into v
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Load validates the settings held by v and converts them into a Config
func Load(v *viper.Viper) (Config, error) {
	fovDegrees := v.GetFloat64(KeyFOV)
	if !(fovDegrees > 0 && fovDegrees < 180) {
		return Config{}, fmt.Errorf("fov must be between 0 and 180 degrees, got %g", fovDegrees)
	}

	cfg := Config{
		Render: renderer.Config{
			Width:      v.GetInt(KeyWidth),
			Height:     v.GetInt(KeyHeight),
			FOV:        fovDegrees * math.Pi / 180.0,
			MaxDepth:   v.GetInt(KeyDepth),
			NumWorkers: v.GetInt(KeyWorkers),
		},
		Scene:  v.GetString(KeyScene),
		Output: v.GetString(KeyOutput),
		Addr:   v.GetString(KeyAddr),
	}
	if err := cfg.Render.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Scene == "" {
		return Config{}, errors.New("scene must not be empty")
	}

	format, err := output.ParseFormat(v.GetString(KeyFormat))
	if err != nil {
		return Config{}, err
	}
	cfg.Format = format

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("invalid log level: %w", err)
	}

	return cfg, nil
}
