package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/termplan/internal/domain"
)

// ValidateCatalogSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateCatalogSchema(schema *CatalogSchema) []error {
	var errs []error

	if strings.TrimSpace(schema.Catalog.Name) == "" {
		errs = append(errs, fmt.Errorf("catalog.name is required"))
	}
	if len(schema.Courses) == 0 {
		errs = append(errs, fmt.Errorf("courses: at least one course is required"))
	}

	codes := make(map[string]int)
	for i := range schema.Courses {
		errs = append(errs, validateCourse(i, &schema.Courses[i], codes)...)
	}

	return errs
}

func validateCourse(i int, c *CourseImport, codes map[string]int) []error {
	var errs []error
	prefix := fmt.Sprintf("courses[%d]", i)

	code := domain.NormalizeCode(c.Code)
	switch {
	case code == "":
		errs = append(errs, fmt.Errorf("%s.code is required", prefix))
	case !domain.IsCourseCode(code):
		errs = append(errs, fmt.Errorf("%s.code: %q is not a course code", prefix, c.Code))
	default:
		if first, dup := codes[code]; dup {
			errs = append(errs, fmt.Errorf("%s.code: duplicate code %q (first at courses[%d])", prefix, code, first))
		} else {
			codes[code] = i
		}
		prefix = fmt.Sprintf("courses[%d] (%s)", i, code)
	}

	if c.Duration != "" && !domain.ValidDurations[strings.ToLower(c.Duration)] {
		errs = append(errs, fmt.Errorf("%s.duration: invalid value %q", prefix, c.Duration))
	}

	if len(c.Sessions) == 0 {
		errs = append(errs, fmt.Errorf("%s.sessions: at least one session is required", prefix))
	}
	for _, s := range c.Sessions {
		if _, ok := domain.ParseSession(s); !ok {
			errs = append(errs, fmt.Errorf("%s.sessions: unknown session %q", prefix, s))
		}
	}

	if _, err := domain.RequirementFromValue(c.Prerequisites); err != nil {
		errs = append(errs, fmt.Errorf("%s.prerequisites: %w", prefix, err))
	}
	if _, err := domain.RequirementFromValue(c.Corequisites); err != nil {
		errs = append(errs, fmt.Errorf("%s.corequisites: %w", prefix, err))
	}

	for _, ex := range c.Exclusions {
		ex = domain.NormalizeCode(ex)
		if !domain.IsCourseCode(ex) {
			errs = append(errs, fmt.Errorf("%s.exclusions: %q is not a course code", prefix, ex))
		} else if ex == code {
			errs = append(errs, fmt.Errorf("%s.exclusions: course cannot exclude itself", prefix))
		}
	}

	return errs
}
