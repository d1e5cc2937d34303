package nodebox

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned interval in node-local units centered on the
// node origin. Corners nominally lie within ±0.5 but are tolerated up
// to ±1.45 and beyond; no hard validation is applied.
type Box struct {
	Min, Max mgl64.Vec3
}

// Unit is the canonical full-node box.
var Unit = Box{Min: mgl64.Vec3{-0.5, -0.5, -0.5}, Max: mgl64.Vec3{0.5, 0.5, 0.5}}

// NewBox builds a box from its two corner coordinates, normalizing
// min/max per axis.
func NewBox(x1, y1, z1, x2, y2, z2 float64) Box {
	return fromCorners(mgl64.Vec3{x1, y1, z1}, mgl64.Vec3{x2, y2, z2})
}

func fromCorners(a, b mgl64.Vec3) Box {
	var lo, hi mgl64.Vec3
	for i := 0; i < 3; i++ {
		lo[i], hi[i] = a[i], b[i]
		if lo[i] > hi[i] {
			lo[i], hi[i] = hi[i], lo[i]
		}
	}
	return Box{Min: lo, Max: hi}
}

// Array flattens the box to (x1,y1,z1,x2,y2,z2).
func (b Box) Array() [6]float64 {
	return [6]float64{b.Min.X(), b.Min.Y(), b.Min.Z(), b.Max.X(), b.Max.Y(), b.Max.Z()}
}

// BoxType tags the Spec union.
type BoxType uint8

const (
	CubeBox BoxType = iota
	FixedBox
	MountedBox
	LeveledBox
	ConnectedBox
	maxBoxType
)

var boxTypeNames = [maxBoxType]string{"regular", "fixed", "wallmounted", "leveled", "connected"}

func (t BoxType) String() string {
	if t >= maxBoxType {
		return fmt.Sprintf("BoxType(%d)", uint8(t))
	}
	return boxTypeNames[t]
}

// ParseBoxType resolves a registry string; unknown strings are a
// configuration error and are rejected at registration time.
func ParseBoxType(s string) (BoxType, error) {
	for t, name := range boxTypeNames {
		if s == name {
			return BoxType(t), nil
		}
	}
	return CubeBox, fmt.Errorf("unknown node_box type %q", s)
}

// DirBoxes holds per-direction box lists for connected nodes.
type DirBoxes struct {
	Top, Bot                 []Box
	Front, Left, Back, Right []Box
}

// At returns the list for a facing-relative direction.
func (db *DirBoxes) At(d Dir) []Box {
	switch d {
	case DirTop:
		return db.Top
	case DirBottom:
		return db.Bot
	case DirFront:
		return db.Front
	case DirLeft:
		return db.Left
	case DirBack:
		return db.Back
	case DirRight:
		return db.Right
	}
	return nil
}

// Spec is a node's declared box specification. Which fields are
// meaningful depends on Type; absent lists simply contribute nothing,
// the box set is advisory geometry rather than a correctness-critical
// structure.
type Spec struct {
	Type BoxType

	// MountedBox: one of these is selected by the decoded wallmounted
	// direction. WallSide is authored against the x- wall and rotated
	// to the other three walls.
	WallTop, WallBot, WallSide Box

	// FixedBox, LeveledBox, ConnectedBox.
	Fixed []Box

	// LeveledBox: divisor applied to the decoded level to obtain the
	// top Y of boxes reaching the node's top boundary. 64 for nodes
	// leveled via param2, 16 for the rooted-plant height encoding.
	// Zero defaults to 64.
	LevelScale float64

	// ConnectedBox.
	ConnDirs, DiscoDirs  DirBoxes
	DiscoAll, DiscoSides []Box
}
