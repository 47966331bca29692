package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"ursa-server/internal/config"
	"ursa-server/pkg/level"

	"github.com/invopop/jsonschema"
)

// Генерирует JSON Schema для файлов уровней и профилей (подсказки в редакторе YAML)
func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "schemas", "directory to write the JSON schemas")
	flag.Parse()

	outputs := map[string]*jsonschema.Schema{
		"level.schema.json":    levelSchema(),
		"profiles.schema.json": profilesSchema(),
	}

	for name, schema := range outputs {
		if err := writeSchema(filepath.Join(outDir, name), schema); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
			os.Exit(1)
		}
	}
}

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
	}
}

func levelSchema() *jsonschema.Schema {
	schema := reflector().Reflect(new(level.File))
	schema.Title = "Ursa Level"
	schema.Description = "Obstacles, player spawn and enemy patrol routes"
	return schema
}

// profilesDocument повторяет форму YAML-файла профилей
type profilesDocument struct {
	Profiles map[string]config.Profile `json:"profiles" jsonschema:"required"`
}

func profilesSchema() *jsonschema.Schema {
	schema := reflector().Reflect(new(profilesDocument))
	schema.Title = "Ursa Difficulty Profiles"
	schema.Description = "Named profiles, each one overlays the built-in normal profile"
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	return os.Rename(tmpPath, outPath)
}
