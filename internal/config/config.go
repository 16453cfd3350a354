package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/seamcarver/internal/energy"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Order of seam removal when both directions shrink.
const (
	OrderColumnsFirst = "columns-first"
	OrderRowsFirst    = "rows-first"
	OrderInterleave   = "interleave"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SEAMCARVER_"

type Config struct {
	InputPath     string `yaml:"input"`
	OutputDir     string `yaml:"output_dir"`
	Page          int    `yaml:"page"` // -1: все страницы/изображения
	TargetWidth   int    `yaml:"target_width"`
	TargetHeight  int    `yaml:"target_height"`
	RemoveColumns int    `yaml:"remove_columns"`
	RemoveRows    int    `yaml:"remove_rows"`
	Energy        string `yaml:"energy"`
	Order         string `yaml:"order"`
	Workers       int    `yaml:"workers"`
	DPI           int    `yaml:"dpi"`

	Overlay   bool `yaml:"overlay"`
	EnergyMap bool `yaml:"energy_map"`
	Compare   bool `yaml:"compare"`
	Plot      bool `yaml:"plot"`

	Animate      bool   `yaml:"animate"`
	AnimationFPS int    `yaml:"animation_fps"`
	VideoEncoder string `yaml:"video_encoder"`

	PlanInput         string `yaml:"plan"`
	PlanOutput        string `yaml:"write_plan"`
	ValidateReference string `yaml:"validate"`

	LogFile      string `yaml:"log_file"`
	Debug        bool   `yaml:"debug"`
	ShowStats    bool   `yaml:"stats"`
	BuildVersion string `yaml:"-"`
}

// CarveParams is the per-job subset of Config handed to the engine.
type CarveParams struct {
	RemoveColumns int
	RemoveRows    int
	Order         string
	Energy        string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputDir:    "output",
		Page:         -1,
		Energy:       energy.VariantDualGradient,
		Order:        OrderColumnsFirst,
		DPI:          150,
		AnimationFPS: 30,
		VideoEncoder: "libx264",
	}
}

// LoadFile overlays the YAML file at path onto c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadEnv reads optional dotenv files (a missing file is not an error) and
// then applies SEAMCARVER_* variables from the process environment.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load env %s: %w", f, err)
		}
	}

	strs := map[string]*string{
		"INPUT":         &c.InputPath,
		"OUTPUT_DIR":    &c.OutputDir,
		"ENERGY":        &c.Energy,
		"ORDER":         &c.Order,
		"VIDEO_ENCODER": &c.VideoEncoder,
		"LOG_FILE":      &c.LogFile,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"PAGE":           &c.Page,
		"TARGET_WIDTH":   &c.TargetWidth,
		"TARGET_HEIGHT":  &c.TargetHeight,
		"REMOVE_COLUMNS": &c.RemoveColumns,
		"REMOVE_ROWS":    &c.RemoveRows,
		"WORKERS":        &c.Workers,
		"DPI":            &c.DPI,
		"ANIMATION_FPS":  &c.AnimationFPS,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidConfig, EnvPrefix, key, v, err)
		}
		*dst = n
	}

	if v, ok := os.LookupEnv(EnvPrefix + "DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sDEBUG=%q: %v", ErrInvalidConfig, EnvPrefix, v, err)
		}
		c.Debug = b
	}
	return nil
}

// Validate checks value ranges. It does not touch the filesystem.
func (c *Config) Validate() error {
	if _, err := energy.New(c.Energy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Order {
	case "", OrderColumnsFirst, OrderRowsFirst, OrderInterleave:
	default:
		return fmt.Errorf("%w: unknown order %q", ErrInvalidConfig, c.Order)
	}
	for name, v := range map[string]int{
		"target_width":   c.TargetWidth,
		"target_height":  c.TargetHeight,
		"remove_columns": c.RemoveColumns,
		"remove_rows":    c.RemoveRows,
		"workers":        c.Workers,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, name, v)
		}
	}
	if c.TargetWidth > 0 && c.RemoveColumns > 0 {
		return fmt.Errorf("%w: target_width and remove_columns are mutually exclusive", ErrInvalidConfig)
	}
	if c.TargetHeight > 0 && c.RemoveRows > 0 {
		return fmt.Errorf("%w: target_height and remove_rows are mutually exclusive", ErrInvalidConfig)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("%w: dpi must be positive, got %d", ErrInvalidConfig, c.DPI)
	}
	if c.Animate && c.AnimationFPS <= 0 {
		return fmt.Errorf("%w: animation_fps must be positive, got %d", ErrInvalidConfig, c.AnimationFPS)
	}
	return nil
}
