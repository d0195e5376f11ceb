// Package calendar maps term indices onto the two-kind academic calendar.
// Index 0 is the first primary (Fall) term; kinds alternate from there.
package calendar

import (
	"fmt"

	"github.com/alexanderramin/termplan/internal/domain"
)

// Each term occupies a fixed slice of its academic year. The values only
// order terms; they carry no calendar-date meaning.
const (
	primaryStart   = 0.5
	primaryEnd     = 0.6
	secondaryStart = 0.7
	secondaryEnd   = 0.8
)

// KindOf returns the term kind of the given index.
func KindOf(index int) domain.TermKind {
	if index%2 == 0 {
		return domain.TermPrimary
	}
	return domain.TermSecondary
}

// Year returns the zero-based academic year containing the term.
func Year(index int) int {
	return index / 2
}

// Start returns the ordering scalar at which the term begins.
func Start(index int) float64 {
	if KindOf(index) == domain.TermPrimary {
		return float64(Year(index)) + primaryStart
	}
	return float64(Year(index)) + secondaryStart
}

// End returns the ordering scalar at which the term ends.
func End(index int) float64 {
	if KindOf(index) == domain.TermPrimary {
		return float64(Year(index)) + primaryEnd
	}
	return float64(Year(index)) + secondaryEnd
}

// KindName returns the display name of a term kind.
func KindName(k domain.TermKind) string {
	if k == domain.TermPrimary {
		return "Fall"
	}
	return "Winter"
}

// Label returns a display label such as "Year 1 Fall".
func Label(index int) string {
	return fmt.Sprintf("Year %d %s", Year(index)+1, KindName(KindOf(index)))
}
