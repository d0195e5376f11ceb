package service

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/zeebo/blake3"
)

// canonicalCourse fixes the field order and spelling hashed for a course.
type canonicalCourse struct {
	Code          string             `json:"code"`
	Duration      domain.Duration    `json:"duration"`
	StartKinds    []domain.TermKind  `json:"start_kinds"`
	Prerequisites domain.Requirement `json:"prerequisites"`
	Corequisites  domain.Requirement `json:"corequisites"`
	Exclusions    []string           `json:"exclusions"`
}

// CatalogFingerprint hashes the planning-relevant content of a catalog.
// Titles are left out, so renaming a course does not change the value.
func CatalogFingerprint(courses map[string]*domain.Course) (string, error) {
	hasher := blake3.New()
	enc := json.NewEncoder(hasher)
	for _, code := range domain.SortedCodes(courses) {
		c := courses[code]
		err := enc.Encode(canonicalCourse{
			Code:          c.Code,
			Duration:      c.Duration,
			StartKinds:    c.StartKinds,
			Prerequisites: c.Prerequisites,
			Corequisites:  c.Corequisites,
			Exclusions:    c.Exclusions,
		})
		if err != nil {
			return "", fmt.Errorf("hashing course %s: %w", code, err)
		}
	}
	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
