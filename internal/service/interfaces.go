package service

import (
	"context"

	"github.com/alexanderramin/termplan/internal/contract"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/importer"
)

// ImportResult holds the outcome of a catalog import.
type ImportResult struct {
	Catalog     *domain.Catalog
	CourseCount int
	// Removed counts courses of the same catalog that the new file no
	// longer lists.
	Removed int
}

type CatalogService interface {
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.CatalogSchema, source string) (*ImportResult, error)
	ListCatalogs(ctx context.Context) ([]*domain.Catalog, error)
	ListCourses(ctx context.Context) ([]*domain.Course, error)
	GetCourse(ctx context.Context, code string) (*domain.Course, error)
}

type PlanService interface {
	Plan(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error)
	History(ctx context.Context, limit int) ([]*domain.PlanRun, error)
	GetRun(ctx context.Context, id string) (*domain.PlanRun, error)
}
