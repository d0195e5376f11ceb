package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/importer"
	"github.com/alexanderramin/termplan/internal/repository"
)

type catalogService struct {
	catalogs repository.CatalogRepo
	courses  repository.CourseRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewCatalogService(
	catalogs repository.CatalogRepo,
	courses repository.CourseRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CatalogService {
	return &catalogService{
		catalogs: catalogs,
		courses:  courses,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *catalogService) Import(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadCatalogSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file: %w", err)
	}
	return s.ImportSchema(ctx, schema, filepath.Base(filePath))
}

// ImportSchema validates and converts schema, then replaces the catalog of
// the same name in one transaction. Courses the catalog previously held but
// schema no longer lists are deleted.
func (s *catalogService) ImportSchema(ctx context.Context, schema *importer.CatalogSchema, source string) (result *ImportResult, err error) {
	fields := map[string]any{"source": source}
	defer observe(ctx, s.observer, "import-catalog", fields)(&err)

	if errs := importer.ValidateCatalogSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting catalog: %w", err)
	}
	fields["catalog"] = converted.Name
	fields["course_count"] = len(converted.Courses)

	cat := &domain.Catalog{Name: converted.Name, Source: domain.CoalesceStr(source, "inline")}
	keep := make([]string, len(converted.Courses))
	removed := 0

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCatalogs := repository.NewSQLiteCatalogRepo(tx)
		txCourses := repository.NewSQLiteCourseRepo(tx)

		if err := txCatalogs.Upsert(ctx, cat); err != nil {
			return fmt.Errorf("saving catalog: %w", err)
		}
		for i, c := range converted.Courses {
			if err := txCourses.Upsert(ctx, cat.ID, c); err != nil {
				return fmt.Errorf("saving course %s: %w", c.Code, err)
			}
			keep[i] = c.Code
		}
		n, err := txCourses.DeleteMissing(ctx, cat.ID, keep)
		if err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["removed"] = removed

	return &ImportResult{
		Catalog:     cat,
		CourseCount: len(converted.Courses),
		Removed:     removed,
	}, nil
}

func (s *catalogService) ListCatalogs(ctx context.Context) ([]*domain.Catalog, error) {
	return s.catalogs.List(ctx)
}

func (s *catalogService) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	return s.courses.List(ctx)
}

func (s *catalogService) GetCourse(ctx context.Context, code string) (*domain.Course, error) {
	return s.courses.GetByCode(ctx, code)
}
