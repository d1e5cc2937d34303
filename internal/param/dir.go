package param

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Direction codecs. All conversions are total over arbitrary input
// vectors and table-driven: rotations are exact component permutations,
// never runtime trigonometry, so round trips match the historical
// encodings bit for bit.
//
// Dominant-axis selection breaks ties with the fixed priority Y > X > Z
// (an axis earlier in the order wins an exact tie). A zero vector
// therefore lands on the first branch of each codec: wallmounted and
// 6d facedir yield y+, 4dir yields z+ (rotation 0).

// wallmountedDirs is the canonical 6-direction table,
// codes 0..5 = y+, y-, x+, x-, z+, z-.
var wallmountedDirs = [6]mgl64.Vec3{
	{0, 1, 0},
	{0, -1, 0},
	{1, 0, 0},
	{-1, 0, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// DirToWallmounted returns the wallmounted code of the principal
// direction nearest to d.
func DirToWallmounted(d mgl64.Vec3) uint8 {
	ax, ay, az := math.Abs(d.X()), math.Abs(d.Y()), math.Abs(d.Z())
	switch {
	case ay >= ax && ay >= az:
		if d.Y() < 0 {
			return 1
		}
		return 0
	case ax >= az:
		if d.X() < 0 {
			return 3
		}
		return 2
	default:
		if d.Z() < 0 {
			return 5
		}
		return 4
	}
}

// WallmountedToDir is the exact inverse table lookup. Out-of-range
// codes fall back to y+ (code 0).
func WallmountedToDir(code uint8) mgl64.Vec3 {
	if code > 5 {
		code = 0
	}
	return wallmountedDirs[code]
}

// fourdirDirs maps rotation codes 0..3 to the facing direction of the
// unrotated front (z+) after that many quarter turns around Y.
var fourdirDirs = [4]mgl64.Vec3{
	{0, 0, 1},
	{1, 0, 0},
	{0, 0, -1},
	{-1, 0, 0},
}

// DirToFourdir returns the 4dir rotation whose facing is nearest to
// the horizontal part of d. The vertical component is ignored; a
// vector with no horizontal part yields 0.
func DirToFourdir(d mgl64.Vec3) uint8 {
	ax, az := math.Abs(d.X()), math.Abs(d.Z())
	if ax == 0 && az == 0 {
		return 0
	}
	if ax >= az {
		if d.X() < 0 {
			return 3
		}
		return 1
	}
	if d.Z() < 0 {
		return 2
	}
	return 0
}

// FourdirToDir is the inverse table lookup; codes wrap modulo 4.
func FourdirToDir(code uint8) mgl64.Vec3 {
	return fourdirDirs[code&3]
}

// facedirAxes maps axis indices 0..5 to the node's up-facing axis,
// per the table 0=y+, 1=z+, 2=z-, 3=x+, 4=x-, 5=y-.
var facedirAxes = [6]mgl64.Vec3{
	{0, 1, 0},
	{0, 0, 1},
	{0, 0, -1},
	{1, 0, 0},
	{-1, 0, 0},
	{0, -1, 0},
}

// DirToFacedir encodes a direction as a facedir code. With use6D false
// it reduces to the 4 horizontal states (codes 0..3). With use6D true
// the dominant axis of d picks the up-facing axis and the secondary
// components pick one of the 4 in-plane rotations around it:
// code = axis*4 + rotation.
func DirToFacedir(d mgl64.Vec3, use6D bool) uint8 {
	if !use6D {
		return DirToFourdir(d)
	}

	ax, ay, az := math.Abs(d.X()), math.Abs(d.Y()), math.Abs(d.Z())
	var axis uint8
	switch {
	case ay >= ax && ay >= az:
		if d.Y() < 0 {
			axis = 5
		}
	case ax >= az:
		axis = 3
		if d.X() < 0 {
			axis = 4
		}
	default:
		axis = 1
		if d.Z() < 0 {
			axis = 2
		}
	}

	// Carry the dominant axis back onto y+ and read the in-plane
	// rotation off the remaining horizontal components.
	s := axisToUp(axis, d)
	return axis*4 + DirToFourdir(mgl64.Vec3{s.X(), 0, s.Z()})
}

// FacedirToDir returns the up-facing axis of a facedir code. Codes
// above 23 saturate modulo 24.
func FacedirToDir(code uint8) mgl64.Vec3 {
	return facedirAxes[(code%24)/4]
}

// FacedirAxisRot splits a facedir code into its (axis, rotation) pair.
// Codes above 23 saturate modulo 24.
func FacedirAxisRot(code uint8) (axis, rot uint8) {
	code %= 24
	return code / 4, code % 4
}

// RotateFacedir applies the rotation named by a facedir code to v:
// first rot quarter turns around Y, then the reorientation that carries
// y+ onto the code's axis. Exact component permutation.
func RotateFacedir(v mgl64.Vec3, code uint8) mgl64.Vec3 {
	axis, rot := FacedirAxisRot(code)
	return upToAxis(axis, RotateY(v, rot))
}

// RotateY rotates v by quarter turns around the vertical axis; one
// turn carries z+ onto x+.
func RotateY(v mgl64.Vec3, quarters uint8) mgl64.Vec3 {
	x, y, z := v.X(), v.Y(), v.Z()
	switch quarters & 3 {
	case 1:
		return mgl64.Vec3{z, y, -x}
	case 2:
		return mgl64.Vec3{-x, y, -z}
	case 3:
		return mgl64.Vec3{-z, y, x}
	default:
		return v
	}
}

// upToAxis reorients a vector from the canonical frame (up = y+) into
// the frame whose up is the given facedir axis.
func upToAxis(axis uint8, v mgl64.Vec3) mgl64.Vec3 {
	x, y, z := v.X(), v.Y(), v.Z()
	switch axis {
	case 1: // z+
		return mgl64.Vec3{x, -z, y}
	case 2: // z-
		return mgl64.Vec3{x, z, -y}
	case 3: // x+
		return mgl64.Vec3{y, -x, z}
	case 4: // x-
		return mgl64.Vec3{-y, x, z}
	case 5: // y-
		return mgl64.Vec3{x, -y, -z}
	default: // y+
		return v
	}
}

// axisToUp is the inverse of upToAxis.
func axisToUp(axis uint8, v mgl64.Vec3) mgl64.Vec3 {
	x, y, z := v.X(), v.Y(), v.Z()
	switch axis {
	case 1:
		return mgl64.Vec3{x, z, -y}
	case 2:
		return mgl64.Vec3{x, -z, y}
	case 3:
		return mgl64.Vec3{-y, x, z}
	case 4:
		return mgl64.Vec3{y, -x, z}
	case 5:
		return mgl64.Vec3{x, -y, -z}
	default:
		return v
	}
}

// DegreesToDegrotate buckets an angle into 1.5 degree steps,
// codes 0..239.
func DegreesToDegrotate(deg float64) uint8 {
	code := int(math.Round(deg/1.5)) % 240
	if code < 0 {
		code += 240
	}
	return uint8(code)
}

// DegrotateToDegrees is the inverse; codes saturate modulo 240.
func DegrotateToDegrees(code uint8) float64 {
	return float64(code%240) * 1.5
}

// DegreesToColorDegrotate buckets an angle into the 15 degree steps of
// the colored variant, codes 0..23.
func DegreesToColorDegrotate(deg float64) uint8 {
	code := int(math.Round(deg/15)) % 24
	if code < 0 {
		code += 24
	}
	return uint8(code)
}

// ColorDegrotateToDegrees is the inverse; codes saturate modulo 24.
func ColorDegrotateToDegrees(code uint8) float64 {
	return float64(code%24) * 15
}
