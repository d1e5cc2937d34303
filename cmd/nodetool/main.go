package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"voxelgeom.dev/internal/catalogs"
	"voxelgeom.dev/internal/nodebox"
	"voxelgeom.dev/internal/param"
	"voxelgeom.dev/internal/persistence/indexdb"
	"voxelgeom.dev/internal/persistence/snapshot"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: nodetool <command> [flags]

commands:
  validate   check a content directory against the schema and loader
  snapshot   write a compressed catalog snapshot
  diff       compare a snapshot against a content directory
  index      build the sqlite definition index
  query      list node ids by paramtype2 from the index
  decode     decode a raw param2 value
  resolve    resolve a node's boxes for a param2 and neighbors`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	var err error
	switch os.Args[1] {
	case "validate":
		err = cmdValidate(os.Args[2:])
	case "snapshot":
		err = cmdSnapshot(os.Args[2:])
	case "diff":
		err = cmdDiff(os.Args[2:])
	case "index":
		err = cmdIndex(os.Args[2:])
	case "query":
		err = cmdQuery(os.Args[2:])
	case "decode":
		err = cmdDecode(os.Args[2:])
	case "resolve":
		err = cmdResolve(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, os.Args[1]+":", err)
		os.Exit(1)
	}
}

func loadCatalog(configDir, schemasDir string) (*catalogs.NodeCatalog, error) {
	if schemasDir != "" {
		schemaPath := filepath.Join(schemasDir, "nodedef.schema.json")
		if err := catalogs.ValidateSchema(configDir, schemaPath); err != nil {
			return nil, err
		}
	}
	return catalogs.Load(configDir)
}

func cmdValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configDir := fs.String("configs", "./configs", "config directory")
	schemasDir := fs.String("schemas", "./schemas", "schema directory")
	_ = fs.Parse(args)

	cat, err := loadCatalog(*configDir, *schemasDir)
	if err != nil {
		return err
	}
	fmt.Printf("ok: %d nodes\npalette digest: %s\ndefs digest: %s\n",
		len(cat.Palette), cat.PaletteDigest, cat.DefsDigest)
	return nil
}

func cmdSnapshot(args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	configDir := fs.String("configs", "./configs", "config directory")
	out := fs.String("out", "./data/catalog.snap.zst", "output path")
	_ = fs.Parse(args)

	cat, err := catalogs.Load(*configDir)
	if err != nil {
		return err
	}
	if err := snapshot.WriteSnapshot(*out, snapshot.FromCatalog(cat)); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d nodes)\n", *out, len(cat.Palette))
	return nil
}

func cmdDiff(args []string) error {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	snapPath := fs.String("snapshot", "", "path to .snap.zst")
	configDir := fs.String("configs", "./configs", "config directory")
	_ = fs.Parse(args)

	if *snapPath == "" {
		return fmt.Errorf("missing -snapshot")
	}
	snap, err := snapshot.ReadSnapshot(*snapPath)
	if err != nil {
		return err
	}
	cat, err := catalogs.Load(*configDir)
	if err != nil {
		return err
	}

	if snap.Header.DefsDigest == cat.DefsDigest {
		fmt.Println("content unchanged")
		return nil
	}
	fmt.Printf("content changed\nsnapshot defs: %s\ncurrent defs:  %s\n",
		snap.Header.DefsDigest, cat.DefsDigest)

	inSnap := map[string]bool{}
	for _, n := range snap.Nodes {
		inSnap[n.ID] = true
	}
	for _, id := range cat.Palette {
		if !inSnap[id] {
			fmt.Printf("+ %s\n", id)
		}
	}
	for _, n := range snap.Nodes {
		if _, ok := cat.Defs[n.ID]; !ok {
			fmt.Printf("- %s\n", n.ID)
		}
	}
	return nil
}

func cmdIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	configDir := fs.String("configs", "./configs", "config directory")
	dbPath := fs.String("db", "./data/index.db", "sqlite index path")
	_ = fs.Parse(args)

	cat, err := catalogs.Load(*configDir)
	if err != nil {
		return err
	}
	idx, err := indexdb.OpenSQLite(*dbPath)
	if err != nil {
		return err
	}
	defer idx.Close()
	if err := idx.IndexCatalog(context.Background(), cat); err != nil {
		return err
	}
	fmt.Printf("indexed %d nodes into %s\n", len(cat.Palette), *dbPath)
	return nil
}

func cmdQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	dbPath := fs.String("db", "./data/index.db", "sqlite index path")
	kind := fs.String("kind", "", "paramtype2 to list")
	_ = fs.Parse(args)

	if _, err := param.ParseKind(*kind); err != nil {
		return err
	}
	idx, err := indexdb.OpenSQLite(*dbPath)
	if err != nil {
		return err
	}
	defer idx.Close()
	ids, err := idx.IDsByKind(context.Background(), *kind)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func cmdDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	kindName := fs.String("kind", "", "paramtype2 of the value")
	raw := fs.Uint("param2", 0, "raw param2 value (0..255)")
	_ = fs.Parse(args)

	kind, err := param.ParseKind(*kindName)
	if err != nil {
		return err
	}
	if *raw > 255 {
		return fmt.Errorf("param2 %d out of range", *raw)
	}
	p := param.Unpack(kind, param.Value(*raw))
	b, _ := json.MarshalIndent(p, "", "  ")
	fmt.Println(string(b))
	return nil
}

func cmdResolve(args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	configDir := fs.String("configs", "./configs", "config directory")
	node := fs.String("node", "", "node id")
	raw := fs.Uint("param2", 0, "raw param2 value (0..255)")
	neighbors := fs.String("neighbors", "", "neighbor list, e.g. front=PLANKS,left=FENCE")
	_ = fs.Parse(args)

	if *node == "" {
		return fmt.Errorf("missing -node")
	}
	if *raw > 255 {
		return fmt.Errorf("param2 %d out of range", *raw)
	}
	cat, err := catalogs.Load(*configDir)
	if err != nil {
		return err
	}
	kind, ok := cat.KindOf(*node)
	if !ok {
		return fmt.Errorf("unknown node %q", *node)
	}

	conn, err := sampleNeighbors(cat, *node, kind, param.Value(*raw), *neighbors)
	if err != nil {
		return err
	}
	boxes, ok := cat.ResolveBoxes(*node, param.Value(*raw), conn)
	if !ok {
		return fmt.Errorf("unknown node %q", *node)
	}
	for _, b := range boxes {
		a := b.Array()
		fmt.Printf("[%g %g %g  %g %g %g]\n", a[0], a[1], a[2], a[3], a[4], a[5])
	}
	return nil
}

func sampleNeighbors(cat *catalogs.NodeCatalog, node string, kind param.Kind, raw param.Value, list string) (nodebox.Connectivity, error) {
	var conn nodebox.Connectivity
	if strings.TrimSpace(list) == "" {
		return conn, nil
	}

	byDir := map[nodebox.Dir]string{}
	for _, part := range strings.Split(list, ",") {
		name, nid, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return conn, fmt.Errorf("bad neighbor %q", part)
		}
		d, ok := nodebox.ParseDir(name)
		if !ok {
			return conn, fmt.Errorf("bad direction %q", name)
		}
		byDir[d] = nid
	}

	world := map[[3]int]string{}
	for d, nid := range byDir {
		v := d.WorldVec(kind, raw)
		world[[3]int{
			int(math.Round(v.X())),
			int(math.Round(v.Y())),
			int(math.Round(v.Z())),
		}] = nid
	}
	return cat.SampleConnectivity(node, raw, func(off [3]int) (string, bool) {
		nid, ok := world[off]
		return nid, ok
	}), nil
}
