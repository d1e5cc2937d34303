package nodebox

import (
	"voxelgeom.dev/internal/param"
)

// Resolve produces the concrete set of axis-aligned boxes for a node
// given its declared spec, its stored param2 under the given kind, and
// an externally supplied neighbor-connectivity sample. It is total:
// out-of-range orientation codes saturate, missing box lists yield
// empty results, and the returned boxes may overlap (consumers take
// the union, no merging happens here).
func Resolve(spec Spec, kind param.Kind, raw param.Value, conn Connectivity) []Box {
	switch spec.Type {
	case CubeBox:
		return []Box{Unit}
	case FixedBox:
		return resolveFixed(spec, kind, raw)
	case LeveledBox:
		return resolveLeveled(spec, kind, raw)
	case MountedBox:
		return resolveMounted(spec, kind, raw)
	case ConnectedBox:
		return resolveConnected(spec, conn)
	}
	return nil
}

// resolveFixed rotates the declared boxes under the facedir and 4dir
// kind families; any other kind leaves them axis-aligned. Connected
// specs never reach this path: their geometry is exempt from facedir
// rotation (only textures rotate).
func resolveFixed(spec Spec, kind param.Kind, raw param.Value) []Box {
	out := make([]Box, 0, len(spec.Fixed))
	switch kind {
	case param.Facedir, param.ColorFacedir:
		code := param.Unpack(kind, raw).Rot
		for _, b := range spec.Fixed {
			out = append(out, rotateBoxFacedir(b, code))
		}
	case param.FourDir, param.ColorFourDir:
		rot := param.Unpack(kind, raw).Rot
		for _, b := range spec.Fixed {
			out = append(out, rotateBoxY(b, rot))
		}
	default:
		out = append(out, spec.Fixed...)
	}
	return out
}

// resolveLeveled reuses the fixed list as the side faces and moves the
// top Y of every box reaching the node's top boundary to level/scale.
func resolveLeveled(spec Spec, kind param.Kind, raw param.Value) []Box {
	var level uint8
	if kind == param.Leveled {
		level = param.Unpack(kind, raw).Level
	}
	scale := spec.LevelScale
	if scale <= 0 {
		scale = 64
	}
	top := float64(level) / scale

	out := make([]Box, 0, len(spec.Fixed))
	for _, b := range spec.Fixed {
		if b.Max.Y() >= 0.5 {
			b.Max[1] = top
			if b.Min.Y() > b.Max.Y() {
				b.Min[1] = b.Max.Y()
			}
		}
		out = append(out, b)
	}
	return out
}

// resolveMounted selects wall_top, wall_bottom or wall_side by the
// decoded mount direction and aligns the side box with the wall it is
// attached to.
func resolveMounted(spec Spec, kind param.Kind, raw param.Value) []Box {
	var code uint8
	if kind == param.WallMounted || kind == param.ColorWallMounted {
		code = param.Unpack(kind, raw).Rot
	}
	switch code {
	case 0:
		return []Box{spec.WallTop}
	case 1:
		return []Box{spec.WallBot}
	case 2: // x+: half turn from the authored x- wall
		return []Box{rotateBoxY(spec.WallSide, 2)}
	case 3: // x-
		return []Box{spec.WallSide}
	case 4: // z+
		return []Box{rotateBoxY(spec.WallSide, 1)}
	default: // 5, z-
		return []Box{rotateBoxY(spec.WallSide, 3)}
	}
}

// resolveConnected starts from the fixed list and unions in the
// per-direction connect or disconnect lists reported by the sample.
// The generic disconnected list applies once when nothing connects;
// disconnected_sides applies once when none of the four horizontal
// directions connect, never for top or bottom.
func resolveConnected(spec Spec, conn Connectivity) []Box {
	out := make([]Box, 0, len(spec.Fixed))
	out = append(out, spec.Fixed...)
	for d := Dir(0); d < NumDirs; d++ {
		if conn[d] {
			out = append(out, spec.ConnDirs.At(d)...)
		} else {
			out = append(out, spec.DiscoDirs.At(d)...)
		}
	}
	if !conn.any() {
		out = append(out, spec.DiscoAll...)
	}
	if !conn.anySides() {
		out = append(out, spec.DiscoSides...)
	}
	return out
}

// rotateBoxFacedir applies the facedir rotation to both corners and
// renormalizes min/max per axis.
func rotateBoxFacedir(b Box, code uint8) Box {
	return fromCorners(param.RotateFacedir(b.Min, code), param.RotateFacedir(b.Max, code))
}

// rotateBoxY applies quarter turns around the vertical axis.
func rotateBoxY(b Box, quarters uint8) Box {
	return fromCorners(param.RotateY(b.Min, quarters), param.RotateY(b.Max, quarters))
}
