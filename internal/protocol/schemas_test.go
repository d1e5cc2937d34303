package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	reject := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err == nil {
			t.Fatal("schema accepted an invalid sample")
		}
	}

	decodeSchema := compile("decode.schema.json")
	resolveSchema := compile("resolve.schema.json")

	var decode any
	_ = json.Unmarshal([]byte(`{
	  "type":"DECODE",
	  "protocol_version":"1.0",
	  "id":"r1",
	  "kind":"colorwallmounted",
	  "param2":42
	}`), &decode)
	validate(decodeSchema, decode)

	var decodeByNode any
	_ = json.Unmarshal([]byte(`{
	  "type":"DECODE",
	  "protocol_version":"1.0",
	  "node":"TORCH",
	  "param2":3
	}`), &decodeByNode)
	validate(decodeSchema, decodeByNode)

	// Neither node nor kind set.
	var decodeBare any
	_ = json.Unmarshal([]byte(`{
	  "type":"DECODE",
	  "protocol_version":"1.0",
	  "param2":0
	}`), &decodeBare)
	reject(decodeSchema, decodeBare)

	var resolve any
	_ = json.Unmarshal([]byte(`{
	  "type":"RESOLVE",
	  "protocol_version":"1.0",
	  "id":"r2",
	  "node":"FENCE",
	  "param2":0,
	  "neighbors":{"front":"PLANKS","left":"FENCE"}
	}`), &resolve)
	validate(resolveSchema, resolve)

	var resolveBadDir any
	_ = json.Unmarshal([]byte(`{
	  "type":"RESOLVE",
	  "protocol_version":"1.0",
	  "node":"FENCE",
	  "param2":0,
	  "neighbors":{"up":"PLANKS"}
	}`), &resolveBadDir)
	reject(resolveSchema, resolveBadDir)
}
