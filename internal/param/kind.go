package param

import "fmt"

// Value is the raw 8-bit param2 field stored on every placed node.
// Its interpretation is selected by the node definition's Kind.
type Value uint8

// Kind identifies the interpretation of a node's param2 byte. It is a
// closed enumeration resolved once at registration time; codec calls
// switch on the enum, never on the registry's string form.
type Kind uint8

const (
	None Kind = iota
	Light
	FlowingLiquid
	WallMounted
	Facedir
	FourDir
	Leveled
	Degrotate
	MeshOptions
	Color
	ColorFacedir
	ColorFourDir
	ColorWallMounted
	ColorDegrotate
	GlasslikeLiquidLevel
	maxKind
)

var kindNames = [maxKind]string{
	None:                 "none",
	Light:                "light",
	FlowingLiquid:        "flowingliquid",
	WallMounted:          "wallmounted",
	Facedir:              "facedir",
	FourDir:              "4dir",
	Leveled:              "leveled",
	Degrotate:            "degrotate",
	MeshOptions:          "meshoptions",
	Color:                "color",
	ColorFacedir:         "colorfacedir",
	ColorFourDir:         "color4dir",
	ColorWallMounted:     "colorwallmounted",
	ColorDegrotate:       "colordegrotate",
	GlasslikeLiquidLevel: "glasslikeliquidlevel",
}

func (k Kind) String() string {
	if k >= maxKind {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind resolves a registry string to a Kind. An unknown string is
// a configuration error and must be rejected before any node carrying
// the kind is placed.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if s == name {
			return Kind(k), nil
		}
	}
	return None, fmt.Errorf("unknown paramtype2 %q", s)
}

// ColorBits returns the width of the palette-index sub-field, or 0 for
// kinds that carry no color.
func ColorBits(k Kind) int {
	switch k {
	case Color:
		return 8
	case ColorFacedir, ColorDegrotate:
		return 3
	case ColorFourDir:
		return 6
	case ColorWallMounted:
		return 5
	default:
		return 0
	}
}

// IsColored reports whether the kind carries a palette-index sub-field.
func IsColored(k Kind) bool { return ColorBits(k) > 0 }

// PaletteSize returns the palette length a node definition of this kind
// must declare: exactly 2^ColorBits. Zero for uncolored kinds.
func PaletteSize(k Kind) int {
	bits := ColorBits(k)
	if bits == 0 {
		return 0
	}
	return 1 << bits
}

// colorMask returns the bits of the raw value occupied by the palette
// index for the given kind.
func colorMask(k Kind) Value {
	switch k {
	case Color:
		return 0xFF
	case ColorFacedir, ColorDegrotate:
		return 0xE0
	case ColorFourDir:
		return 0xFC
	case ColorWallMounted:
		return 0xF8
	default:
		return 0
	}
}

// StripColor returns the value with the palette sub-field zeroed. The
// second result is false when the kind carries no color sub-field, in
// which case the value is returned unchanged.
func StripColor(v Value, k Kind) (Value, bool) {
	m := colorMask(k)
	if m == 0 {
		return v, false
	}
	return v &^ m, true
}
