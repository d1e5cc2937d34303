package catalogs

import (
	"os"
	"path/filepath"
	"testing"

	"voxelgeom.dev/internal/nodebox"
	"voxelgeom.dev/internal/param"
)

func loadTestCatalog(t *testing.T) *NodeCatalog {
	t.Helper()
	c, err := Load(filepath.Join("testdata", "configs"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestLoad_PaletteAndKinds(t *testing.T) {
	c := loadTestCatalog(t)

	if c.Palette[0] != "AIR" || c.Index["AIR"] != 0 {
		t.Fatalf("AIR must anchor the palette, got %v", c.Palette[:1])
	}
	if len(c.Palette) != len(c.Defs) {
		t.Fatalf("palette %d entries, defs %d", len(c.Palette), len(c.Defs))
	}
	if c.PaletteDigest == "" || c.DefsDigest == "" {
		t.Fatal("digests missing")
	}

	want := map[string]param.Kind{
		"AIR":           param.None,
		"TORCH":         param.WallMounted,
		"SNOW":          param.Leveled,
		"WATER_FLOWING": param.FlowingLiquid,
		"BANNER":        param.ColorFacedir,
		"CHAIR":         param.FourDir,
		"GLASS_TANK":    param.GlasslikeLiquidLevel,
	}
	for id, k := range want {
		if got, ok := c.KindOf(id); !ok || got != k {
			t.Errorf("KindOf(%s) = %v, %v; want %v", id, got, ok, k)
		}
	}
}

func TestLoad_BoxSpecs(t *testing.T) {
	c := loadTestCatalog(t)

	if spec, _ := c.SpecOf("STONE"); spec.Type != nodebox.CubeBox {
		t.Errorf("STONE should default to a regular box, got %v", spec.Type)
	}
	if spec, _ := c.SpecOf("FENCE"); spec.Type != nodebox.ConnectedBox || len(spec.ConnDirs.Front) != 1 {
		t.Errorf("FENCE spec wrong: %+v", spec)
	}
	if spec, _ := c.SpecOf("SNOW"); spec.LevelScale != 0 {
		// Default applies at resolve time, not load time.
		t.Errorf("SNOW level scale = %v", spec.LevelScale)
	}
	if spec, _ := c.SpecOf("KELP"); spec.LevelScale != 16 {
		t.Errorf("rooted plant should level at 16, got %v", spec.LevelScale)
	}
}

func TestLoad_RejectsBadDefinitions(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"unknown kind", `[{"id":"AIR"},{"id":"X","paramtype2":"nibble"}]`},
		{"bad palette size", `[{"id":"AIR"},{"id":"X","paramtype2":"colorfacedir","palette":["#ffffff"]}]`},
		{"palette on uncolored", `[{"id":"AIR"},{"id":"X","paramtype2":"facedir","palette":["#ffffff"]}]`},
		{"unknown box type", `[{"id":"AIR"},{"id":"X","node_box":{"type":"mesh"}}]`},
		{"fixed without boxes", `[{"id":"AIR"},{"id":"X","node_box":{"type":"fixed"}}]`},
		{"missing AIR", `[{"id":"STONE"}]`},
		{"duplicate id", `[{"id":"AIR"},{"id":"AIR"}]`},
		{"empty id", `[{"id":"AIR"},{"id":""}]`},
	}
	for _, c := range cases {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "nodes.json"), []byte(c.json), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(dir); err == nil {
			t.Errorf("%s: Load accepted invalid content", c.name)
		}
	}
}

func TestConnects(t *testing.T) {
	c := loadTestCatalog(t)
	fence := c.Defs["FENCE"]

	if !c.Connects(fence, "PLANKS") {
		t.Error("fence should connect to wood group")
	}
	if !c.Connects(fence, "FENCE") {
		t.Error("fence should connect to fence group")
	}
	if c.Connects(fence, "STONE") {
		t.Error("fence must not connect to stone")
	}
	if c.Connects(fence, "NOPE") {
		t.Error("unknown neighbors never connect")
	}
	if c.Connects(c.Defs["STONE"], "FENCE") {
		t.Error("nodes without connects_to never connect")
	}
}

func TestSampleConnectivity(t *testing.T) {
	c := loadTestCatalog(t)
	world := map[[3]int]string{
		{0, 0, 1}:  "PLANKS",
		{1, 0, 0}:  "STONE",
		{-1, 0, 0}: "FENCE",
	}
	neighborAt := func(off [3]int) (string, bool) {
		id, ok := world[off]
		return id, ok
	}

	conn := c.SampleConnectivity("FENCE", 0, neighborAt)
	if !conn[nodebox.DirFront] {
		t.Error("front neighbor PLANKS should connect")
	}
	if conn[nodebox.DirRight] {
		t.Error("right neighbor STONE must not connect")
	}
	if !conn[nodebox.DirLeft] {
		t.Error("left neighbor FENCE should connect")
	}
	if conn[nodebox.DirTop] || conn[nodebox.DirBottom] || conn[nodebox.DirBack] {
		t.Error("absent neighbors must not connect")
	}
}

func TestResolveBoxes(t *testing.T) {
	c := loadTestCatalog(t)

	boxes, ok := c.ResolveBoxes("STONE", 0, nodebox.Connectivity{})
	if !ok || len(boxes) != 1 || boxes[0] != nodebox.Unit {
		t.Fatalf("STONE: %v, %v", boxes, ok)
	}

	raw := param.Pack(param.Leveled, param.Payload{Level: 32})
	boxes, ok = c.ResolveBoxes("SNOW", raw, nodebox.Connectivity{})
	if !ok || boxes[0].Max.Y() != 0.5 {
		t.Fatalf("SNOW at level 32: %v", boxes)
	}

	if _, ok := c.ResolveBoxes("NOPE", 0, nodebox.Connectivity{}); ok {
		t.Fatal("unknown id must report !ok")
	}
}

func TestValidateSchema(t *testing.T) {
	schema := filepath.Join("..", "..", "schemas", "nodedef.schema.json")

	if err := ValidateSchema(filepath.Join("testdata", "configs"), schema); err != nil {
		t.Fatalf("valid content rejected: %v", err)
	}

	dir := t.TempDir()
	bad := `[{"paramtype2":"facedir"}]`
	if err := os.WriteFile(filepath.Join(dir, "nodes.json"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateSchema(dir, schema); err == nil {
		t.Fatal("schema accepted a definition without id")
	}
}
