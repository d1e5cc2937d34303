package nodebox

import (
	"github.com/go-gl/mathgl/mgl64"

	"voxelgeom.dev/internal/param"
)

// Dir is one of the six face directions of a node, expressed relative
// to the node's own decoded facing, not world axes.
type Dir uint8

const (
	DirTop Dir = iota
	DirBottom
	DirFront // z+
	DirLeft  // x-
	DirBack  // z-
	DirRight // x+
	NumDirs
)

var dirNames = [NumDirs]string{"top", "bottom", "front", "left", "back", "right"}

func (d Dir) String() string {
	if d >= NumDirs {
		return "invalid"
	}
	return dirNames[d]
}

// ParseDir maps a direction name back to its Dir.
func ParseDir(s string) (Dir, bool) {
	for d := Dir(0); d < NumDirs; d++ {
		if dirNames[d] == s {
			return d, true
		}
	}
	return NumDirs, false
}

// Opposite returns the facing-relative opposite direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirTop:
		return DirBottom
	case DirBottom:
		return DirTop
	case DirFront:
		return DirBack
	case DirBack:
		return DirFront
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return NumDirs
}

// Horizontal reports whether d is one of the four side directions.
func (d Dir) Horizontal() bool {
	return d >= DirFront && d <= DirRight
}

var dirVecs = [NumDirs]mgl64.Vec3{
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{-1, 0, 0},
	{0, 0, -1},
	{1, 0, 0},
}

// Vec returns the unit offset of d in the node's local frame.
func (d Dir) Vec() mgl64.Vec3 {
	if d >= NumDirs {
		return mgl64.Vec3{}
	}
	return dirVecs[d]
}

// WorldVec returns the world-space unit offset of the facing-relative
// direction d for a node oriented by the given kind and raw param2.
// Only the facedir and 4dir families turn the node's frame; every
// other kind leaves it axis-aligned.
func (d Dir) WorldVec(kind param.Kind, raw param.Value) mgl64.Vec3 {
	v := d.Vec()
	switch kind {
	case param.Facedir, param.ColorFacedir:
		return param.RotateFacedir(v, param.Unpack(kind, raw).Rot)
	case param.FourDir, param.ColorFourDir:
		return param.RotateY(v, param.Unpack(kind, raw).Rot)
	}
	return v
}

// Connectivity is the external neighbor sample: for each facing-
// relative direction, whether the neighbor there satisfies the node's
// connects predicate. Recomputed per query, never persisted.
type Connectivity [NumDirs]bool

func (c Connectivity) any() bool {
	for _, v := range c {
		if v {
			return true
		}
	}
	return false
}

func (c Connectivity) anySides() bool {
	for d := DirFront; d <= DirRight; d++ {
		if c[d] {
			return true
		}
	}
	return false
}
