package lightning

import (
	"errors"
	"fmt"
	"time"

	"thunderhead/internal/quarkgl"
)

var ErrConfig = errors.New("invalid lightning config")

// Config holds the strike, bolt and path constants.
type Config struct {
	Origin quarkgl.Vec3 `mapstructure:"origin"`
	Jitter float32      `mapstructure:"jitter"`
	Drop   float32      `mapstructure:"drop"`

	MainSegments   int     `mapstructure:"mainSegments"`
	BranchSegments int     `mapstructure:"branchSegments"`
	BranchStride   int     `mapstructure:"branchStride"`
	BranchChance   float64 `mapstructure:"branchChance"`

	Strands      int     `mapstructure:"strands"`
	StrandJitter float32 `mapstructure:"strandJitter"`
	Color        uint32  `mapstructure:"color"`
	Width        float32 `mapstructure:"width"`

	Lifetime     time.Duration `mapstructure:"lifetime"`
	MaxLiveBolts int           `mapstructure:"maxLiveBolts"`

	MinInterval time.Duration `mapstructure:"minInterval"`
	MaxInterval time.Duration `mapstructure:"maxInterval"`
	FlashMin    time.Duration `mapstructure:"flashMin"`
	FlashMax    time.Duration `mapstructure:"flashMax"`

	Seed uint64 `mapstructure:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Origin:         quarkgl.V3(0, 10, 0),
		Jitter:         4,
		Drop:           4,
		MainSegments:   10,
		BranchSegments: 5,
		BranchStride:   2,
		BranchChance:   0.5,
		Strands:        3,
		StrandJitter:   0.05,
		Color:          0x88ccff,
		Width:          1,
		Lifetime:       800 * time.Millisecond,
		MaxLiveBolts:   8,
		MinInterval:    2000 * time.Millisecond,
		MaxInterval:    5000 * time.Millisecond,
		FlashMin:       100 * time.Millisecond,
		FlashMax:       250 * time.Millisecond,
	}
}

// Validate reports the first out-of-range field, wrapped in ErrConfig.
func (c Config) Validate() error {
	switch {
	case c.MainSegments < 0:
		return fmt.Errorf("%w: mainSegments %d < 0", ErrConfig, c.MainSegments)
	case c.BranchSegments < 0:
		return fmt.Errorf("%w: branchSegments %d < 0", ErrConfig, c.BranchSegments)
	case c.BranchStride < 1:
		return fmt.Errorf("%w: branchStride %d < 1", ErrConfig, c.BranchStride)
	case c.BranchChance < 0 || c.BranchChance > 1:
		return fmt.Errorf("%w: branchChance %v outside [0, 1]", ErrConfig, c.BranchChance)
	case c.Strands < 1:
		return fmt.Errorf("%w: strands %d < 1", ErrConfig, c.Strands)
	case c.Drop <= 0:
		return fmt.Errorf("%w: drop %v <= 0", ErrConfig, c.Drop)
	case c.Lifetime <= 0:
		return fmt.Errorf("%w: lifetime %v <= 0", ErrConfig, c.Lifetime)
	case c.MaxLiveBolts < 0:
		return fmt.Errorf("%w: maxLiveBolts %d < 0", ErrConfig, c.MaxLiveBolts)
	case c.MinInterval <= 0 || c.MaxInterval < c.MinInterval:
		return fmt.Errorf("%w: strike interval [%v, %v)", ErrConfig, c.MinInterval, c.MaxInterval)
	case c.FlashMin < 0 || c.FlashMax < c.FlashMin:
		return fmt.Errorf("%w: flash duration [%v, %v)", ErrConfig, c.FlashMin, c.FlashMax)
	}
	return nil
}
