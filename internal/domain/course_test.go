package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationFromCode(t *testing.T) {
	assert.Equal(t, DurationLong, DurationFromCode("CSC110Y1"))
	assert.Equal(t, DurationShort, DurationFromCode("CSC111H1"))
	assert.Equal(t, DurationShort, DurationFromCode("X"))
}

func TestStartsIn(t *testing.T) {
	short := &Course{Code: "A100H1", Duration: DurationShort, StartKinds: []TermKind{TermSecondary}}
	assert.False(t, short.StartsIn(TermPrimary))
	assert.True(t, short.StartsIn(TermSecondary))

	long := &Course{Code: "B100Y1", Duration: DurationLong, StartKinds: []TermKind{TermSecondary}}
	assert.True(t, long.StartsIn(TermPrimary), "long courses always start in primary terms")
	assert.False(t, long.StartsIn(TermSecondary))
}

func TestCourseValidate(t *testing.T) {
	assert.NoError(t, (&Course{Code: "A100H1", Duration: DurationShort}).Validate())
	assert.Error(t, (&Course{Duration: DurationShort}).Validate())
	assert.Error(t, (&Course{Code: "A100H1", Duration: "half"}).Validate())
	assert.Error(t, (&Course{Code: "A100H1", Duration: DurationShort, StartKinds: []TermKind{"summer"}}).Validate())
}

func TestParseSession(t *testing.T) {
	kind, ok := ParseSession("Fall")
	assert.True(t, ok)
	assert.Equal(t, TermPrimary, *kind)

	kind, ok = ParseSession(" winter ")
	assert.True(t, ok)
	assert.Equal(t, TermSecondary, *kind)

	kind, ok = ParseSession("Summer 1")
	assert.True(t, ok)
	assert.Nil(t, kind)

	_, ok = ParseSession("Spring")
	assert.False(t, ok)
}

func TestIsCourseCode(t *testing.T) {
	assert.True(t, IsCourseCode("CSC110Y1"))
	assert.True(t, IsCourseCode("MAT1001H"))
	assert.True(t, IsCourseCode("A"+"B100"))
	assert.False(t, IsCourseCode("High school calculus"))
	assert.False(t, IsCourseCode("completed"))
}
