package quarkgl

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/sync/errgroup"
)

const (
	maxBloomLevels = 5
	thresholdSoft  = 0.01
)

// Per-level base weights; Radius blends each toward its mirror (1.2 - f), so
// a larger radius favors the wider, blurrier levels.
var bloomFactors = [maxBloomLevels]float32{1.0, 0.8, 0.6, 0.4, 0.2}

// BloomPass adds a glow around bright regions.
//
// The frame is high-passed by luminance, downsampled into Levels mips, each
// blurred and scaled by its weight, then upsampled and added back.
type BloomPass struct {
	Threshold float32
	Strength  float32
	Radius    float32
	Levels    int
}

func NewBloomPass(strength, radius, threshold float32) *BloomPass {
	return &BloomPass{Threshold: threshold, Strength: strength, Radius: radius, Levels: 3}
}

func (b *BloomPass) SetSize(int, int) {}

func (b *BloomPass) Process(frame *image.RGBA) (*image.RGBA, error) {
	w, h := frame.Bounds().Dx(), frame.Bounds().Dy()
	if b.Strength <= 0 || w == 0 || h == 0 {
		return frame, nil
	}
	levels := clampInt(b.Levels, 1, maxBloomLevels)

	bright := adjust.Apply(frame, b.highPass)

	mips := make([]*image.RGBA, levels)
	g := new(errgroup.Group)
	for i := range levels {
		g.Go(func() error {
			lw, lh := max(w>>(i+1), 1), max(h>>(i+1), 1)
			small := transform.Resize(bright, lw, lh, transform.Linear)
			blurred := blur.Gaussian(small, float64(3+2*i))
			up := transform.Resize(blurred, w, h, transform.Linear)
			if got := up.Bounds(); got.Dx() != w || got.Dy() != h {
				return fmt.Errorf("bloom level %d: upsampled to %dx%d, want %dx%d", i, got.Dx(), got.Dy(), w, h)
			}
			mips[i] = adjust.Apply(up, scaleBy(b.Strength*b.levelWeight(i)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := frame
	for _, m := range mips {
		out = blend.Add(out, m)
	}
	return out, nil
}

func (b *BloomPass) levelWeight(i int) float32 {
	f := bloomFactors[i]
	mirror := 1.2 - f
	r := clamp(b.Radius, 0, 1)
	return f + (mirror-f)*r
}

func (b *BloomPass) highPass(c color.RGBA) color.RGBA {
	l := Color{R: c.R, G: c.G, B: c.B}.Luma()
	k := smoothstep(b.Threshold, b.Threshold+thresholdSoft, l)
	return color.RGBA{
		R: uint8(float32(c.R) * k),
		G: uint8(float32(c.G) * k),
		B: uint8(float32(c.B) * k),
		A: 0xFF,
	}
}

func scaleBy(s float32) func(color.RGBA) color.RGBA {
	return func(c color.RGBA) color.RGBA {
		return color.RGBA{
			R: uint8(clamp(float32(c.R)*s, 0, 255)),
			G: uint8(clamp(float32(c.G)*s, 0, 255)),
			B: uint8(clamp(float32(c.B)*s, 0, 255)),
			A: 0xFF,
		}
	}
}

func smoothstep(e0, e1, x float32) float32 {
	t := clamp((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}
