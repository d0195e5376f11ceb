package importer

import (
	"testing"

	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_MinimalCatalog(t *testing.T) {
	cat, err := Convert(validMinimalSchema())
	require.NoError(t, err)

	assert.Equal(t, "Test Catalog", cat.Name)
	require.Len(t, cat.Courses, 1)
	c := cat.Courses[0]
	assert.Equal(t, "CSC110Y1", c.Code)
	assert.Equal(t, "Foundations", c.Title)
	assert.Equal(t, domain.DurationLong, c.Duration)
	assert.Equal(t, []domain.TermKind{domain.TermPrimary}, c.StartKinds)
	assert.True(t, c.Prerequisites.IsEmpty())
}

func TestConvert_FileCatalog(t *testing.T) {
	schema, err := LoadCatalogSchema("testdata/catalog.jsonc")
	require.NoError(t, err)
	require.Empty(t, ValidateCatalogSchema(schema))

	cat, err := Convert(schema)
	require.NoError(t, err)

	codes := make([]string, len(cat.Courses))
	byCode := make(map[string]*domain.Course)
	for i, c := range cat.Courses {
		codes[i] = c.Code
		byCode[c.Code] = c
	}
	assert.Equal(t, []string{"CSC110Y1", "CSC207H1", "CSC209H1", "CSC236H1", "MAT137Y1", "MAT157Y1"}, codes)

	csc207 := byCode["CSC207H1"]
	assert.Equal(t, domain.DurationShort, csc207.Duration)
	assert.Equal(t, []domain.TermKind{domain.TermPrimary, domain.TermSecondary}, csc207.StartKinds)
	assert.Equal(t, "CSC110Y1 & (MAT137Y1 | MAT157Y1)", csc207.Prerequisites.String())

	assert.Equal(t, domain.ReqSatisfied, byCode["CSC110Y1"].Prerequisites.Kind)
	assert.Equal(t, "CSC236H1", byCode["CSC209H1"].Corequisites.String())
	assert.Equal(t, []string{"MAT157Y1"}, byCode["MAT137Y1"].Exclusions)
	assert.Equal(t, []domain.TermKind{domain.TermSecondary}, byCode["CSC209H1"].StartKinds)
}

func TestConvert_DurationOverride(t *testing.T) {
	schema := validMinimalSchema()
	schema.Courses[0].Duration = "SHORT"

	cat, err := Convert(schema)
	require.NoError(t, err)
	assert.Equal(t, domain.DurationShort, cat.Courses[0].Duration)
}

func TestConvert_SummerOnlyHasNoStartKinds(t *testing.T) {
	schema := validMinimalSchema()
	schema.Courses[0].Code = "CSC108H1"
	schema.Courses[0].Sessions = []string{"Summer 1", "Summer 2"}

	cat, err := Convert(schema)
	require.NoError(t, err)
	assert.Empty(t, cat.Courses[0].StartKinds)
}

func TestConvert_NormalizesExclusions(t *testing.T) {
	schema := validMinimalSchema()
	schema.Courses[0].Exclusions = []string{" mat157y1", "MAT135H1", "MAT157Y1"}

	cat, err := Convert(schema)
	require.NoError(t, err)
	assert.Equal(t, []string{"MAT135H1", "MAT157Y1"}, cat.Courses[0].Exclusions)
}

func TestConvert_NormalizesRequirementLeaves(t *testing.T) {
	schema := validMinimalSchema()
	schema.Courses[0].Prerequisites = []any{"all", "csc108h1", []any{"any", "mat137y1", "Grade 12 calculus"}}

	cat, err := Convert(schema)
	require.NoError(t, err)
	assert.Equal(t, []string{"CSC108H1", "MAT137Y1"}, cat.Courses[0].Prerequisites.Codes())
}
