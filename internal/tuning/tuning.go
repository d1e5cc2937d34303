package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the geomd service configuration (geomd.yaml).
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	ConfigDir  string `yaml:"config_dir"`
	SchemasDir string `yaml:"schemas_dir"`
	IndexDB    string `yaml:"index_db"`

	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
}

func Defaults() Config {
	return Config{
		ListenAddr:      ":8080",
		ConfigDir:       "./configs",
		SchemasDir:      "./schemas",
		IndexDB:         "./data/index.db",
		ReadTimeoutSec:  60,
		WriteTimeoutSec: 5,
	}
}

func Load(path string) (Config, error) {
	c := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("geomd.yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("geomd.yaml: listen_addr is empty")
	}
	if c.ConfigDir == "" {
		return fmt.Errorf("geomd.yaml: config_dir is empty")
	}
	if c.SchemasDir == "" {
		return fmt.Errorf("geomd.yaml: schemas_dir is empty")
	}
	if c.ReadTimeoutSec <= 0 || c.WriteTimeoutSec <= 0 {
		return fmt.Errorf("geomd.yaml: timeouts must be positive")
	}
	return nil
}
