package catalogs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateSchema checks nodes.json in a config directory against the
// nodedef JSON Schema. Load performs the semantic validation (kinds,
// palettes, box tags); this catches structural mistakes with a precise
// pointer into the document, so tooling runs it first.
func ValidateSchema(configDir, schemaPath string) error {
	sch, err := jsonschema.Compile(schemaPath)
	if err != nil {
		return fmt.Errorf("compile %s: %w", schemaPath, err)
	}
	path := filepath.Join(configDir, "nodes.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
