package catalogs

import (
	"math"
	"strings"

	"voxelgeom.dev/internal/nodebox"
	"voxelgeom.dev/internal/param"
)

// Connects reports whether a node with the given definition connects
// to the named neighbor: the connects_to list matches exact ids or
// group selectors of the form "group:<name>" against the neighbor's
// group ratings.
func (c *NodeCatalog) Connects(def NodeDef, neighborID string) bool {
	nb, ok := c.Defs[neighborID]
	if !ok {
		return false
	}
	for _, sel := range def.ConnectsTo {
		if g, isGroup := strings.CutPrefix(sel, "group:"); isGroup {
			if nb.Groups[g] > 0 {
				return true
			}
		} else if sel == neighborID {
			return true
		}
	}
	return false
}

// SampleConnectivity builds the facing-relative connectivity sample
// for one node instance. neighborAt is the caller's world query: given
// an integer offset from the node, it returns the neighbor's id. The
// offsets already account for the node's decoded facing, so the
// returned sample lines up with the box spec's per-direction lists.
//
// The sample is recomputed per call; snapshotting the world before
// calling is the caller's concern.
func (c *NodeCatalog) SampleConnectivity(id string, raw param.Value, neighborAt func(offset [3]int) (string, bool)) nodebox.Connectivity {
	var conn nodebox.Connectivity
	def, ok := c.Defs[id]
	if !ok || len(def.ConnectsTo) == 0 {
		return conn
	}
	kind := c.Kinds[id]
	for d := nodebox.Dir(0); d < nodebox.NumDirs; d++ {
		v := d.WorldVec(kind, raw)
		off := [3]int{
			int(math.Round(v.X())),
			int(math.Round(v.Y())),
			int(math.Round(v.Z())),
		}
		nid, present := neighborAt(off)
		if !present {
			continue
		}
		conn[d] = c.Connects(def, nid)
	}
	return conn
}
