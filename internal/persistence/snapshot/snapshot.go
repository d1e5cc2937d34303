package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"voxelgeom.dev/internal/catalogs"
)

// A catalog snapshot pins the exact content a server validated: the
// palette, the digests and every definition, in one compressed file
// that tooling can diff against another content directory. World state
// is never part of it.

const FormatVersion = 1

type Header struct {
	Version       int    `json:"version"`
	CreatedAt     string `json:"created_at"`
	PaletteDigest string `json:"palette_digest"`
	DefsDigest    string `json:"defs_digest"`
}

type CatalogV1 struct {
	Header Header `json:"header"`

	Palette []string           `json:"palette"`
	Nodes   []catalogs.NodeDef `json:"nodes"`
}

// FromCatalog captures a loaded catalog. Definitions follow palette
// order so two snapshots of the same content compare equal.
func FromCatalog(c *catalogs.NodeCatalog) *CatalogV1 {
	snap := &CatalogV1{
		Header: Header{
			Version:       FormatVersion,
			CreatedAt:     time.Now().UTC().Format(time.RFC3339),
			PaletteDigest: c.PaletteDigest,
			DefsDigest:    c.DefsDigest,
		},
		Palette: append([]string(nil), c.Palette...),
	}
	for _, id := range c.Palette {
		snap.Nodes = append(snap.Nodes, c.Defs[id])
	}
	return snap
}

// WriteSnapshot writes a zstd-compressed snapshot: a JSON header line
// for quick inspection, then the gob-encoded body.
func WriteSnapshot(path string, snap *CatalogV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 64*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

// ReadSnapshot reads a snapshot written by WriteSnapshot.
func ReadSnapshot(path string) (*CatalogV1, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)

	// Skip the header line; the gob body repeats it.
	if _, err := br.ReadBytes('\n'); err != nil {
		return nil, err
	}

	var snap CatalogV1
	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	if snap.Header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}
	return &snap, nil
}
