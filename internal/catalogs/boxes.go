package catalogs

import (
	"fmt"

	"voxelgeom.dev/internal/nodebox"
)

// BoxDef is the JSON form of one box: (x1,y1,z1,x2,y2,z2) in
// node-local units.
type BoxDef [6]float64

func (b BoxDef) box() nodebox.Box {
	return nodebox.NewBox(b[0], b[1], b[2], b[3], b[4], b[5])
}

// NodeBoxDef is the JSON form of a node's box specification.
type NodeBoxDef struct {
	Type string `json:"type"`

	Fixed []BoxDef `json:"fixed,omitempty"`

	WallTop    *BoxDef `json:"wall_top,omitempty"`
	WallBottom *BoxDef `json:"wall_bottom,omitempty"`
	WallSide   *BoxDef `json:"wall_side,omitempty"`

	// Leveled: divisor for the decoded level. When absent, rooted
	// plants (draw_type plantlike_rooted) level at 16, everything else
	// at 64.
	LevelScale float64 `json:"level_scale,omitempty"`

	ConnectTop    []BoxDef `json:"connect_top,omitempty"`
	ConnectBottom []BoxDef `json:"connect_bottom,omitempty"`
	ConnectFront  []BoxDef `json:"connect_front,omitempty"`
	ConnectLeft   []BoxDef `json:"connect_left,omitempty"`
	ConnectBack   []BoxDef `json:"connect_back,omitempty"`
	ConnectRight  []BoxDef `json:"connect_right,omitempty"`

	DisconnectTop    []BoxDef `json:"disconnect_top,omitempty"`
	DisconnectBottom []BoxDef `json:"disconnect_bottom,omitempty"`
	DisconnectFront  []BoxDef `json:"disconnect_front,omitempty"`
	DisconnectLeft   []BoxDef `json:"disconnect_left,omitempty"`
	DisconnectBack   []BoxDef `json:"disconnect_back,omitempty"`
	DisconnectRight  []BoxDef `json:"disconnect_right,omitempty"`

	Disconnected      []BoxDef `json:"disconnected,omitempty"`
	DisconnectedSides []BoxDef `json:"disconnected_sides,omitempty"`
}

func (d *NodeBoxDef) spec(drawType string) (nodebox.Spec, error) {
	t, err := nodebox.ParseBoxType(d.Type)
	if err != nil {
		return nodebox.Spec{}, err
	}

	spec := nodebox.Spec{
		Type:  t,
		Fixed: boxes(d.Fixed),
	}

	switch t {
	case nodebox.MountedBox:
		spec.WallTop = optBox(d.WallTop)
		spec.WallBot = optBox(d.WallBottom)
		spec.WallSide = optBox(d.WallSide)
	case nodebox.LeveledBox:
		spec.LevelScale = d.LevelScale
		if spec.LevelScale == 0 && drawType == "plantlike_rooted" {
			spec.LevelScale = 16
		}
	case nodebox.ConnectedBox:
		spec.ConnDirs = nodebox.DirBoxes{
			Top:   boxes(d.ConnectTop),
			Bot:   boxes(d.ConnectBottom),
			Front: boxes(d.ConnectFront),
			Left:  boxes(d.ConnectLeft),
			Back:  boxes(d.ConnectBack),
			Right: boxes(d.ConnectRight),
		}
		spec.DiscoDirs = nodebox.DirBoxes{
			Top:   boxes(d.DisconnectTop),
			Bot:   boxes(d.DisconnectBottom),
			Front: boxes(d.DisconnectFront),
			Left:  boxes(d.DisconnectLeft),
			Back:  boxes(d.DisconnectBack),
			Right: boxes(d.DisconnectRight),
		}
		spec.DiscoAll = boxes(d.Disconnected)
		spec.DiscoSides = boxes(d.DisconnectedSides)
	case nodebox.FixedBox:
		if d.Fixed == nil {
			return nodebox.Spec{}, fmt.Errorf("fixed node_box without fixed boxes")
		}
	}
	return spec, nil
}

func boxes(defs []BoxDef) []nodebox.Box {
	if len(defs) == 0 {
		return nil
	}
	out := make([]nodebox.Box, len(defs))
	for i, d := range defs {
		out[i] = d.box()
	}
	return out
}

func optBox(d *BoxDef) nodebox.Box {
	if d == nil {
		return nodebox.Box{}
	}
	return d.box()
}
