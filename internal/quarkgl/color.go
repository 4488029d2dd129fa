package quarkgl

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 0xFF} }

// Hex converts a 0xRRGGBB literal.
func Hex(v uint32) Color {
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

// Scale multiplies the color channels by s, saturating at 255. Alpha is kept.
func (c Color) Scale(s float32) Color {
	if s < 0 {
		s = 0
	}
	mul := func(ch uint8) uint8 {
		return uint8(clamp(float32(ch)*s, 0, 255))
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// Add sums two colors channel-wise, saturating at 255.
func (c Color) Add(o Color) Color {
	return Color{R: addSat(c.R, o.R), G: addSat(c.G, o.G), B: addSat(c.B, o.B), A: c.A}
}

// Luma returns the Rec.709 luminance in 0..1.
func (c Color) Luma() float32 {
	return (0.2126*float32(c.R) + 0.7152*float32(c.G) + 0.0722*float32(c.B)) / 255
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 0xFF {
		return 0xFF
	}
	return uint8(s)
}
