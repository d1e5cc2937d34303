package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"voxelgeom.dev/internal/nodebox"
	"voxelgeom.dev/internal/param"
)

// NodeDef is one entry of nodes.json: the declared shape of a node
// type. All interpretation of param2 and of the node box happens
// against the kind and spec resolved from it at load time.
type NodeDef struct {
	ID         string         `json:"id"`
	DrawType   string         `json:"draw_type,omitempty"`
	ParamType2 string         `json:"paramtype2,omitempty"`
	Palette    []string       `json:"palette,omitempty"`
	Groups     map[string]int `json:"groups,omitempty"`
	ConnectsTo []string       `json:"connects_to,omitempty"`
	NodeBox    *NodeBoxDef    `json:"node_box,omitempty"`
}

// NodeCatalog is the loaded node-definition registry. Kinds and box
// specs are resolved once here; codec and resolver calls never see the
// registry's string forms.
type NodeCatalog struct {
	Palette []string
	Index   map[string]uint16
	Defs    map[string]NodeDef
	Kinds   map[string]param.Kind
	Boxes   map[string]nodebox.Spec

	PaletteDigest string
	DefsDigest    string
}

// Load reads and validates nodes.json from a config directory.
// Unknown paramtype2 strings, unknown node_box tags and palette
// declarations that don't match the kind's 2^width size are all
// configuration errors rejected here, before any node is placed.
func Load(configDir string) (*NodeCatalog, error) {
	var c NodeCatalog
	if err := loadNodes(filepath.Join(configDir, "nodes.json"), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func loadNodes(path string, out *NodeCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.DefsDigest = sha256Hex(raw)

	var defs []NodeDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("nodes.json: %w", err)
	}

	out.Defs = map[string]NodeDef{}
	out.Kinds = map[string]param.Kind{}
	out.Boxes = map[string]nodebox.Spec{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("nodes.json: empty id")
		}
		if _, dup := out.Defs[d.ID]; dup {
			return fmt.Errorf("nodes.json: duplicate id %q", d.ID)
		}

		kind := param.None
		if d.ParamType2 != "" {
			kind, err = param.ParseKind(d.ParamType2)
			if err != nil {
				return fmt.Errorf("nodes.json: %s: %w", d.ID, err)
			}
		}
		if err := checkPalette(d, kind); err != nil {
			return fmt.Errorf("nodes.json: %s: %w", d.ID, err)
		}

		spec := nodebox.Spec{Type: nodebox.CubeBox}
		if d.NodeBox != nil {
			spec, err = d.NodeBox.spec(d.DrawType)
			if err != nil {
				return fmt.Errorf("nodes.json: %s: %w", d.ID, err)
			}
		}

		out.Defs[d.ID] = d
		out.Kinds[d.ID] = kind
		out.Boxes[d.ID] = spec
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// AIR is the palette anchor at id 0.
	if _, ok := out.Defs["AIR"]; !ok {
		return fmt.Errorf("nodes.json: missing AIR")
	}
	ids = append([]string{"AIR"}, filterOut(ids, "AIR")...)

	out.Palette = ids
	out.Index = make(map[string]uint16, len(ids))
	for i, id := range ids {
		out.Index[id] = uint16(i)
	}
	palJSON, _ := json.Marshal(ids)
	out.PaletteDigest = sha256Hex(palJSON)
	return nil
}

func checkPalette(d NodeDef, kind param.Kind) error {
	want := param.PaletteSize(kind)
	if want == 0 {
		if len(d.Palette) != 0 {
			return fmt.Errorf("palette declared for uncolored paramtype2 %q", d.ParamType2)
		}
		return nil
	}
	if len(d.Palette) != want {
		return fmt.Errorf("palette length %d, kind %v requires %d", len(d.Palette), kind, want)
	}
	return nil
}

// KindOf returns the resolved param2 kind for a node id.
func (c *NodeCatalog) KindOf(id string) (param.Kind, bool) {
	k, ok := c.Kinds[id]
	return k, ok
}

// SpecOf returns the resolved box spec for a node id.
func (c *NodeCatalog) SpecOf(id string) (nodebox.Spec, bool) {
	s, ok := c.Boxes[id]
	return s, ok
}

// ResolveBoxes resolves the concrete box set for a node instance.
func (c *NodeCatalog) ResolveBoxes(id string, raw param.Value, conn nodebox.Connectivity) ([]nodebox.Box, bool) {
	spec, ok := c.Boxes[id]
	if !ok {
		return nil, false
	}
	return nodebox.Resolve(spec, c.Kinds[id], raw, conn), true
}

func filterOut(ids []string, drop string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
