package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"thunderhead/internal/lightning"
	"thunderhead/internal/quarkgl"
)

// EnvPrefix is prepended to every environment override, with dots in keys
// replaced by underscores: THUNDERHEAD_WINDOW_WIDTH, THUNDERHEAD_STRIKE_SEED.
const EnvPrefix = "THUNDERHEAD"

var ErrInvalid = errors.New("invalid config")

type WindowConfig struct {
	Width         int     `mapstructure:"width"`
	Height        int     `mapstructure:"height"`
	Title         string  `mapstructure:"title"`
	MaxPixelRatio float64 `mapstructure:"maxPixelRatio"`
	Smooth        bool    `mapstructure:"smooth"`
}

type CameraConfig struct {
	FOV      float32      `mapstructure:"fov"`
	Near     float32      `mapstructure:"near"`
	Far      float32      `mapstructure:"far"`
	Position quarkgl.Vec3 `mapstructure:"position"`
	Target   quarkgl.Vec3 `mapstructure:"target"`
}

type ControlsConfig struct {
	Damping       bool    `mapstructure:"damping"`
	DampingFactor float32 `mapstructure:"dampingFactor"`
	RotateSpeed   float32 `mapstructure:"rotateSpeed"` // radians per pixel dragged
	ZoomSpeed     float32 `mapstructure:"zoomSpeed"`   // radius fraction per wheel notch
	MinRadius     float32 `mapstructure:"minRadius"`
	MaxRadius     float32 `mapstructure:"maxRadius"`
}

type LightConfig struct {
	Background     uint32  `mapstructure:"background"`
	Ambient        uint32  `mapstructure:"ambient"`
	FlashColor     uint32  `mapstructure:"flashColor"`
	FlashIntensity float32 `mapstructure:"flashIntensity"`
	FlashDistance  float32 `mapstructure:"flashDistance"`
}

type BloomConfig struct {
	Threshold float64 `mapstructure:"threshold"`
	Strength  float64 `mapstructure:"strength"`
	Radius    float64 `mapstructure:"radius"`
	Levels    int     `mapstructure:"levels"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB"`
	MaxBackups int    `mapstructure:"maxBackups"`
	NoColor    bool   `mapstructure:"noColor"`
}

type HeadlessConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Hz      int  `mapstructure:"hz"`
	Ticks   int  `mapstructure:"ticks"` // 0 runs until cancelled
}

type Config struct {
	Window   WindowConfig     `mapstructure:"window"`
	Camera   CameraConfig     `mapstructure:"camera"`
	Controls ControlsConfig   `mapstructure:"controls"`
	Light    LightConfig      `mapstructure:"light"`
	Bloom    BloomConfig      `mapstructure:"bloom"`
	Strike   lightning.Config `mapstructure:"strike"`
	Log      LogConfig        `mapstructure:"log"`
	Headless HeadlessConfig   `mapstructure:"headless"`
}

// flagKeys maps the CLI flags registered by RegisterFlags to config keys.
var flagKeys = map[string]string{
	"width":          "window.width",
	"height":         "window.height",
	"pixel-ratio":    "window.maxPixelRatio",
	"smooth":         "window.smooth",
	"seed":           "strike.seed",
	"bloom-strength": "bloom.strength",
	"log-level":      "log.level",
	"log-file":       "log.file",
	"headless":       "headless.enabled",
	"hz":             "headless.hz",
	"ticks":          "headless.ticks",
}

// RegisterFlags adds the overridable settings to fs. The flag defaults are
// only shown in usage; an unset flag never overrides a file or env value.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("width", 800, "window width in logical pixels")
	fs.Int("height", 600, "window height in logical pixels")
	fs.Float64("pixel-ratio", 2, "upper bound for the device pixel ratio")
	fs.Bool("smooth", true, "antialiased strokes instead of single-pixel lines")
	fs.Uint64("seed", 0, "random seed for strikes (0 picks one)")
	fs.Float64("bloom-strength", 2, "bloom strength (0 disables bloom)")
	fs.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.String("log-file", "", "also write logs to this rotating file")
	fs.Bool("headless", false, "run without a window")
	fs.Int("hz", 60, "headless tick rate")
	fs.Int("ticks", 0, "stop after this many headless ticks (0 = run until interrupted)")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.title", "thunderhead")
	v.SetDefault("window.maxPixelRatio", 2.0)
	v.SetDefault("window.smooth", true)

	v.SetDefault("camera.fov", 75)
	v.SetDefault("camera.near", 0.1)
	v.SetDefault("camera.far", 100)
	setVec3(v, "camera.position", quarkgl.V3(0, 10, 20))
	setVec3(v, "camera.target", quarkgl.V3(0, 0, 0))

	v.SetDefault("controls.damping", true)
	v.SetDefault("controls.dampingFactor", 0.05)
	v.SetDefault("controls.rotateSpeed", 0.005)
	v.SetDefault("controls.zoomSpeed", 0.1)
	v.SetDefault("controls.minRadius", 1)
	v.SetDefault("controls.maxRadius", 90)

	v.SetDefault("light.background", 0x000000)
	v.SetDefault("light.ambient", 0x222222)
	v.SetDefault("light.flashColor", 0xffffff)
	v.SetDefault("light.flashIntensity", 3)
	v.SetDefault("light.flashDistance", 50)

	v.SetDefault("bloom.threshold", 0)
	v.SetDefault("bloom.strength", 2)
	v.SetDefault("bloom.radius", 0.5)
	v.SetDefault("bloom.levels", 3)

	s := lightning.DefaultConfig()
	setVec3(v, "strike.origin", s.Origin)
	v.SetDefault("strike.jitter", s.Jitter)
	v.SetDefault("strike.drop", s.Drop)
	v.SetDefault("strike.mainSegments", s.MainSegments)
	v.SetDefault("strike.branchSegments", s.BranchSegments)
	v.SetDefault("strike.branchStride", s.BranchStride)
	v.SetDefault("strike.branchChance", s.BranchChance)
	v.SetDefault("strike.strands", s.Strands)
	v.SetDefault("strike.strandJitter", s.StrandJitter)
	v.SetDefault("strike.color", s.Color)
	v.SetDefault("strike.width", s.Width)
	v.SetDefault("strike.lifetime", s.Lifetime)
	v.SetDefault("strike.maxLiveBolts", s.MaxLiveBolts)
	v.SetDefault("strike.minInterval", s.MinInterval)
	v.SetDefault("strike.maxInterval", s.MaxInterval)
	v.SetDefault("strike.flashMin", s.FlashMin)
	v.SetDefault("strike.flashMax", s.FlashMax)
	v.SetDefault("strike.seed", s.Seed)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxSizeMB", 10)
	v.SetDefault("log.maxBackups", 3)
	v.SetDefault("log.noColor", false)

	v.SetDefault("headless.enabled", false)
	v.SetDefault("headless.hz", 60)
	v.SetDefault("headless.ticks", 0)
}

func setVec3(v *viper.Viper, key string, p quarkgl.Vec3) {
	v.SetDefault(key+".x", p.X)
	v.SetDefault(key+".y", p.Y)
	v.SetDefault(key+".z", p.Z)
}

// Load layers defaults, the optional config file at path (any format viper
// reads, picked by extension), THUNDERHEAD_* environment variables and the
// flags in fs that were set, in that order, then validates the result.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting out of range, wrapped in ErrInvalid.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.MaxPixelRatio <= 0:
		return fmt.Errorf("%w: window.maxPixelRatio %v <= 0", ErrInvalid, c.Window.MaxPixelRatio)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera.fov %v outside (0, 180)", ErrInvalid, c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera clip range [%v, %v]", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Controls.DampingFactor <= 0 || c.Controls.DampingFactor > 1:
		return fmt.Errorf("%w: controls.dampingFactor %v outside (0, 1]", ErrInvalid, c.Controls.DampingFactor)
	case c.Controls.MinRadius <= 0 || c.Controls.MaxRadius < c.Controls.MinRadius:
		return fmt.Errorf("%w: controls radius range [%v, %v]", ErrInvalid, c.Controls.MinRadius, c.Controls.MaxRadius)
	case c.Bloom.Strength < 0 || c.Bloom.Radius < 0 || c.Bloom.Radius > 1:
		return fmt.Errorf("%w: bloom strength %v radius %v", ErrInvalid, c.Bloom.Strength, c.Bloom.Radius)
	case c.Bloom.Levels < 1 || c.Bloom.Levels > 5:
		return fmt.Errorf("%w: bloom.levels %d outside [1, 5]", ErrInvalid, c.Bloom.Levels)
	case c.Headless.Hz <= 0:
		return fmt.Errorf("%w: headless.hz %d <= 0", ErrInvalid, c.Headless.Hz)
	case c.Headless.Ticks < 0:
		return fmt.Errorf("%w: headless.ticks %d < 0", ErrInvalid, c.Headless.Ticks)
	}
	if err := c.Strike.Validate(); err != nil {
		return fmt.Errorf("%w: strike: %w", ErrInvalid, err)
	}
	return nil
}
