package indexdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"voxelgeom.dev/internal/catalogs"
	"voxelgeom.dev/internal/param"
)

// SQLiteIndex is a queryable index of a registered node catalog:
// one row per definition plus the catalog digests, so tooling can
// answer "which nodes use colorfacedir" or "did the content change"
// without re-parsing nodes.json.
type SQLiteIndex struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteIndex{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			palette_id INTEGER NOT NULL,
			paramtype2 TEXT NOT NULL,
			draw_type TEXT NOT NULL DEFAULT '',
			box_type TEXT NOT NULL,
			colored INTEGER NOT NULL,
			palette_size INTEGER NOT NULL,
			def TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_paramtype2 ON nodes(paramtype2);`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_box_type ON nodes(box_type);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// IndexCatalog replaces the indexed content with the given catalog.
func (s *SQLiteIndex) IndexCatalog(ctx context.Context, c *catalogs.NodeCatalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes;`); err != nil {
		return err
	}
	ins, err := tx.PrepareContext(ctx, `INSERT INTO nodes
		(id, palette_id, paramtype2, draw_type, box_type, colored, palette_size, def)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer ins.Close()

	for _, id := range c.Palette {
		def := c.Defs[id]
		kind := c.Kinds[id]
		spec := c.Boxes[id]
		defJSON, err := json.Marshal(def)
		if err != nil {
			return err
		}
		colored := 0
		if param.IsColored(kind) {
			colored = 1
		}
		if _, err := ins.ExecContext(ctx,
			id, c.Index[id], kind.String(), def.DrawType, spec.Type.String(),
			colored, param.PaletteSize(kind), string(defJSON)); err != nil {
			return fmt.Errorf("insert %s: %w", id, err)
		}
	}

	for k, v := range map[string]string{
		"palette_digest": c.PaletteDigest,
		"defs_digest":    c.DefsDigest,
	} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO meta(key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Node returns one indexed definition.
func (s *SQLiteIndex) Node(ctx context.Context, id string) (catalogs.NodeDef, bool, error) {
	var defJSON string
	err := s.db.QueryRowContext(ctx, `SELECT def FROM nodes WHERE id = ?;`, id).Scan(&defJSON)
	if err == sql.ErrNoRows {
		return catalogs.NodeDef{}, false, nil
	}
	if err != nil {
		return catalogs.NodeDef{}, false, err
	}
	var def catalogs.NodeDef
	if err := json.Unmarshal([]byte(defJSON), &def); err != nil {
		return catalogs.NodeDef{}, false, err
	}
	return def, true, nil
}

// IDsByKind lists node ids using the given paramtype2, palette order.
func (s *SQLiteIndex) IDsByKind(ctx context.Context, kind string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM nodes WHERE paramtype2 = ? ORDER BY palette_id;`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Digests returns the indexed palette and definition digests.
func (s *SQLiteIndex) Digests(ctx context.Context) (palette, defs string, err error) {
	read := func(key string) (string, error) {
		var v string
		err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?;`, key).Scan(&v)
		if err == sql.ErrNoRows {
			return "", nil
		}
		return v, err
	}
	if palette, err = read("palette_digest"); err != nil {
		return "", "", err
	}
	if defs, err = read("defs_digest"); err != nil {
		return "", "", err
	}
	return palette, defs, nil
}

func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}
