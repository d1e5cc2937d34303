package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geomd.yaml")
	body := "listen_addr: \":9090\"\nindex_db: \"/tmp/x.db\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.ListenAddr != ":9090" || c.IndexDB != "/tmp/x.db" {
		t.Fatalf("overrides lost: %+v", c)
	}
	if c.ReadTimeoutSec != 60 {
		t.Fatalf("defaults lost: %+v", c)
	}
}

func TestLoad_RejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geomd.yaml")
	if err := os.WriteFile(path, []byte("read_timeout_sec: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("negative timeout accepted")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
