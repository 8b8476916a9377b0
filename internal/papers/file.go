// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package papers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/xplore/pkg/types"
)

// SaveJSON writes papers to path as an indented JSON array of Paper
// dictionaries.
func SaveJSON(path string, papers []types.Paper) error {
	dicts := make([]map[string]any, len(papers))
	for i, p := range papers {
		dicts[i] = p.ToMap()
	}
	data, err := json.MarshalIndent(dicts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling papers: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// LoadJSON reads a file written by SaveJSON.
func LoadJSON(path string) ([]types.Paper, error) {
	return loadJSON(path, types.PaperFromMap)
}

// LoadLegacyJSON reads a JSON papers file that spells absent values as
// "N/A", reading those values as absent.
func LoadLegacyJSON(path string) ([]types.Paper, error) {
	return loadJSON(path, types.PaperFromLegacyMap)
}

func loadJSON(path string, decode decodeFunc) ([]types.Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading papers file: %w", err)
	}
	var dicts []map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &dicts); err != nil {
		return nil, fmt.Errorf("parsing papers file %s: %w", path, err)
	}
	return fromDicts(dicts, path, decode)
}

// SaveYAML writes papers to path as a YAML list of Paper dictionaries.
func SaveYAML(path string, papers []types.Paper) error {
	dicts := make([]map[string]any, len(papers))
	for i, p := range papers {
		dicts[i] = p.ToMap()
	}
	data, err := yaml.Marshal(dicts)
	if err != nil {
		return fmt.Errorf("marshaling papers: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadYAML reads a file written by SaveYAML.
func LoadYAML(path string) ([]types.Paper, error) {
	return loadYAML(path, types.PaperFromMap)
}

func loadYAML(path string, decode decodeFunc) ([]types.Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading papers file: %w", err)
	}
	var dicts []map[string]any
	if err := yaml.Unmarshal(data, &dicts); err != nil {
		return nil, fmt.Errorf("parsing papers file %s: %w", path, err)
	}
	return fromDicts(dicts, path, decode)
}

// Save writes papers to path as YAML when the extension is .yaml or .yml
// and as JSON otherwise.
func Save(path string, papers []types.Paper) error {
	if isYAML(path) {
		return SaveYAML(path, papers)
	}
	return SaveJSON(path, papers)
}

// Load reads a file written by Save.
func Load(path string) ([]types.Paper, error) {
	if isYAML(path) {
		return LoadYAML(path)
	}
	return LoadJSON(path)
}

// LoadLegacy is Load with "N/A" values read as absent.
func LoadLegacy(path string) ([]types.Paper, error) {
	if isYAML(path) {
		return loadYAML(path, types.PaperFromLegacyMap)
	}
	return LoadLegacyJSON(path)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

type decodeFunc func(map[string]any) (types.Paper, error)

func fromDicts(dicts []map[string]any, path string, decode decodeFunc) ([]types.Paper, error) {
	papers := make([]types.Paper, 0, len(dicts))
	for i, d := range dicts {
		p, err := decode(d)
		if err != nil {
			return nil, fmt.Errorf("%s: paper %d: %w", path, i, err)
		}
		papers = append(papers, p)
	}
	return papers, nil
}
