package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"cat.json":  FormatJSON,
		"cat.JSONC": FormatJSON,
		"cat.yaml":  FormatYAML,
		"a/b.yml":   FormatYAML,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("cat.toml")
	assert.ErrorContains(t, err, "unsupported")
}

func TestLoadCatalogSchema_JSONCAndYAMLAgree(t *testing.T) {
	fromJSON, err := LoadCatalogSchema("testdata/catalog.jsonc")
	require.NoError(t, err)
	fromYAML, err := LoadCatalogSchema("testdata/catalog.yaml")
	require.NoError(t, err)

	assert.Equal(t, "St. George CS", fromJSON.Catalog.Name)
	require.Len(t, fromJSON.Courses, 6)
	require.Len(t, fromYAML.Courses, 6)

	jsonCat, err := Convert(fromJSON)
	require.NoError(t, err)
	yamlCat, err := Convert(fromYAML)
	require.NoError(t, err)
	assert.Equal(t, jsonCat, yamlCat)
}

func TestLoadCatalogSchema_MissingFile(t *testing.T) {
	_, err := LoadCatalogSchema("testdata/nope.json")
	assert.Error(t, err)
}

func TestParseCatalogSchema_Malformed(t *testing.T) {
	_, err := ParseCatalogSchema([]byte(`{"catalog": `), FormatJSON)
	assert.ErrorContains(t, err, "parsing catalog file")

	_, err = ParseCatalogSchema([]byte("courses: [\n  - code: ["), FormatYAML)
	assert.ErrorContains(t, err, "parsing catalog file")
}
