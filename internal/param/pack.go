package param

// Payload is the decoded logical content of a param2 value. Which
// fields are meaningful depends on the Kind; Pack ignores and Unpack
// zeroes the rest, so Unpack(k, Pack(k, p)) == p for every payload
// within the kind's domain.
type Payload struct {
	Rot   uint8 // wallmounted / facedir / 4dir / degrotate rotation code
	Color uint8 // palette index for colored kinds
	Level uint8 // leveled / flowing / glasslike fill level
	Shape uint8 // meshoptions plant shape, 0..7 (5..7 reserved, passed through)

	LightDay   uint8 // light kind, low nibble
	LightNight uint8 // light kind, high nibble

	FlowingDown bool // flowing liquid drains straight down, bit 3

	RandomOffset bool // meshoptions: random placement offset, bit 3
	BigScale     bool // meshoptions: draw at ~1.4x scale, bit 4

	NoMergeUp   bool // glasslike frame: suppress merging upward, bit 6
	NoMergeDown bool // glasslike frame: suppress merging downward, bit 7
}

// Pack encodes a payload into the 8-bit field at the kind's bit
// offsets. Out-of-range fields saturate: rotations wrap onto their
// group (modulo 24, 4, 240), wallmounted codes above 5 fall back to 0,
// levels clamp to their bit width (Leveled caps at 127, the top bit is
// reserved), palette indices keep only their sub-field bits.
func Pack(k Kind, p Payload) Value {
	switch k {
	case Light:
		return Value(p.LightDay&0x0F) | Value(p.LightNight&0x0F)<<4
	case FlowingLiquid:
		v := Value(minU8(p.Level, 7))
		if p.FlowingDown {
			v |= 1 << 3
		}
		return v
	case WallMounted:
		return Value(wallmountedCode(p.Rot))
	case Facedir:
		return Value(p.Rot % 24)
	case FourDir:
		return Value(p.Rot & 3)
	case Leveled:
		return Value(minU8(p.Level, 127))
	case Degrotate:
		return Value(p.Rot % 240)
	case MeshOptions:
		v := Value(p.Shape & 7)
		if p.RandomOffset {
			v |= 1 << 3
		}
		if p.BigScale {
			v |= 1 << 4
		}
		return v
	case Color:
		return Value(p.Color)
	case ColorFacedir:
		return Value(p.Rot%24) | Value(p.Color&7)<<5
	case ColorFourDir:
		return Value(p.Rot&3) | Value(p.Color&0x3F)<<2
	case ColorWallMounted:
		return Value(wallmountedCode(p.Rot)) | Value(p.Color&0x1F)<<3
	case ColorDegrotate:
		return Value(p.Rot%24) | Value(p.Color&7)<<5
	case GlasslikeLiquidLevel:
		v := Value(minU8(p.Level, 63))
		if p.NoMergeUp {
			v |= 1 << 6
		}
		if p.NoMergeDown {
			v |= 1 << 7
		}
		return v
	default: // None
		return 0
	}
}

// Unpack decodes the fields the kind owns and leaves every other
// payload field zero. Bits outside the kind's layout are never read.
func Unpack(k Kind, v Value) Payload {
	var p Payload
	switch k {
	case Light:
		p.LightDay = uint8(v) & 0x0F
		p.LightNight = uint8(v) >> 4
	case FlowingLiquid:
		p.Level = uint8(v) & 7
		p.FlowingDown = v&(1<<3) != 0
	case WallMounted:
		p.Rot = wallmountedCode(uint8(v) & 7)
	case Facedir:
		p.Rot = (uint8(v) & 0x1F) % 24
	case FourDir:
		p.Rot = uint8(v) & 3
	case Leveled:
		p.Level = uint8(v) & 0x7F
	case Degrotate:
		p.Rot = uint8(v) % 240
	case MeshOptions:
		p.Shape = uint8(v) & 7
		p.RandomOffset = v&(1<<3) != 0
		p.BigScale = v&(1<<4) != 0
	case Color:
		p.Color = uint8(v)
	case ColorFacedir:
		p.Rot = (uint8(v) & 0x1F) % 24
		p.Color = uint8(v) >> 5
	case ColorFourDir:
		p.Rot = uint8(v) & 3
		p.Color = uint8(v) >> 2
	case ColorWallMounted:
		p.Rot = wallmountedCode(uint8(v) & 7)
		p.Color = uint8(v) >> 3
	case ColorDegrotate:
		p.Rot = (uint8(v) & 0x1F) % 24
		p.Color = uint8(v) >> 5
	case GlasslikeLiquidLevel:
		p.Level = uint8(v) & 0x3F
		p.NoMergeUp = v&(1<<6) != 0
		p.NoMergeDown = v&(1<<7) != 0
	}
	return p
}

// wallmountedCode saturates onto the 6-direction table; anything above
// 5 falls back to y+ (code 0), matching WallmountedToDir.
func wallmountedCode(c uint8) uint8 {
	if c > 5 {
		return 0
	}
	return c
}

func minU8(v, max uint8) uint8 {
	if v > max {
		return max
	}
	return v
}
