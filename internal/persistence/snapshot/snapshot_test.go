package snapshot

import (
	"path/filepath"
	"testing"

	"voxelgeom.dev/internal/catalogs"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	cat, err := catalogs.Load(filepath.Join("..", "..", "catalogs", "testdata", "configs"))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	snap := FromCatalog(cat)
	path := filepath.Join(t.TempDir(), "catalog.snap.zst")
	if err := WriteSnapshot(path, snap); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Header.PaletteDigest != cat.PaletteDigest || got.Header.DefsDigest != cat.DefsDigest {
		t.Fatalf("digests changed: %+v", got.Header)
	}
	if len(got.Palette) != len(cat.Palette) || got.Palette[0] != "AIR" {
		t.Fatalf("palette changed: %v", got.Palette)
	}
	if len(got.Nodes) != len(cat.Defs) {
		t.Fatalf("node count %d, want %d", len(got.Nodes), len(cat.Defs))
	}
	for i, id := range got.Palette {
		if got.Nodes[i].ID != id {
			t.Fatalf("nodes out of palette order at %d: %s vs %s", i, got.Nodes[i].ID, id)
		}
	}
}

func TestSnapshot_ReadMissingFile(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.snap.zst")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
