package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// CatalogSchema is the top-level structure of a catalog import file.
type CatalogSchema struct {
	Catalog CatalogImport  `json:"catalog" yaml:"catalog"`
	Courses []CourseImport `json:"courses" yaml:"courses"`
}

// CatalogImport defines the catalog-level fields in the import file.
type CatalogImport struct {
	Name string `json:"name" yaml:"name"`
}

// CourseImport defines a course in the import file. Requirement fields hold
// the nested-list form, e.g. ["all", "CSC110Y1", ["any", "MAT137Y1", "MAT157Y1"]].
type CourseImport struct {
	Code          string   `json:"code" yaml:"code"`
	Title         string   `json:"title" yaml:"title"`
	Duration      string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	Sessions      []string `json:"sessions" yaml:"sessions"`
	Prerequisites any      `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
	Corequisites  any      `json:"corequisites,omitempty" yaml:"corequisites,omitempty"`
	Exclusions    []string `json:"exclusions,omitempty" yaml:"exclusions,omitempty"`
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the decoder from the file extension. JSON files may
// carry comments and trailing commas.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported catalog file extension %q (want .json, .jsonc, .yaml or .yml)", filepath.Ext(path))
	}
}

// LoadCatalogSchema reads and parses a catalog import file.
func LoadCatalogSchema(path string) (*CatalogSchema, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalogSchema(data, format)
}

// ParseCatalogSchema decodes catalog data in the given format.
func ParseCatalogSchema(data []byte, format Format) (*CatalogSchema, error) {
	var schema CatalogSchema
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing catalog file: %w", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &schema); err != nil {
			return nil, fmt.Errorf("parsing catalog file: %w", err)
		}
	}
	return &schema, nil
}
