package registry

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed content/*.yaml
var builtinContent embed.FS

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://visualization.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func contentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// parseConfig decodes one YAML content document, validates it against the
// content schema and converts it to a Config.
func parseConfig(data []byte) (Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("invalid YAML: %w", err)
	}

	// The validator expects JSON-shaped values, so round-trip through JSON.
	raw, err := json.Marshal(doc)
	if err != nil {
		return Config{}, fmt.Errorf("convert to JSON: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Config{}, fmt.Errorf("parse JSON: %w", err)
	}

	schema, err := contentSchema()
	if err != nil {
		return Config{}, err
	}
	if err := schema.Validate(parsed); err != nil {
		return Config{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var cd configDoc
	if err := json.Unmarshal(raw, &cd); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cd.config()
}

// loadContent reads every *.yaml file under content/ in fsys. The returned
// map is keyed by the file's base name without extension.
func loadContent(fsys fs.FS) (map[string]Config, error) {
	names, err := fs.Glob(fsys, "content/*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make(map[string]Config, len(names))
	var errs []string
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		cfg, err := parseConfig(data)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		out[strings.TrimSuffix(path.Base(name), ".yaml")] = cfg
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("content loading failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return out, nil
}
