// Package config loads vehicle and scenario configuration. Files are unified
// with an embedded CUE schema, which also enforces the parameter ranges, so
// an out-of-range value is rejected before any vehicle is built.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	J "cuelang.org/go/encoding/json"
	"cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaFile string

//go:embed default.yaml
var DEFAULT []byte

func buildYAML(ctx *cue.Context, name string, data interface{}) (cue.Value, error) {
	file, err := yaml.Extract(name, data)
	if err != nil {
		return cue.Value{}, err
	}

	value := ctx.BuildFile(file)
	return value, value.Err()
}

func readFile(ctx *cue.Context, path string) (cue.Value, error) {
	if _, err := os.Stat(path); err != nil {
		return cue.Value{}, fmt.Errorf("does not exist")
	}

	switch filepath.Ext(path) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return cue.Value{}, err
		}

		expr, err := J.Extract(path, data)
		if err != nil {
			return cue.Value{}, err
		}

		value := ctx.BuildExpr(expr)
		return value, value.Err()
	case ".yaml", ".yml":
		return buildYAML(ctx, path, nil)
	}

	return cue.Value{}, fmt.Errorf("not in a valid format")
}

// Process reads the provided configuration files in order and unifies them
// with the schema. Without any files the embedded default configuration is
// used. Values a file leaves out take the schema's defaults.
func Process(configPaths []string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaFile)
	if err := schema.Err(); err != nil {
		return nil, err
	}

	if len(configPaths) == 0 {
		value, err := buildYAML(ctx, "<default>", DEFAULT)
		if err != nil {
			return nil, err
		}

		schema = schema.Unify(value)
		if err := schema.Validate(); err != nil {
			return nil, fmt.Errorf("invalid default config file: %v", err)
		}
	}

	for _, path := range configPaths {
		value, err := readFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("could not process config file %s: %w", path, err)
		}

		schema = schema.Unify(value)
		if err := schema.Validate(); err != nil {
			return nil, fmt.Errorf("config file %s is not valid: %w", path, err)
		}
	}

	data, err := schema.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("could not aggregate config: %w", err)
	}

	config := Config{}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return &config, nil
}
