package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/termplan/internal/domain"
)

// ErrNotFound is wrapped by lookups that match no row.
var ErrNotFound = errors.New("not found")

type CatalogRepo interface {
	// Upsert inserts the catalog or, if one with the same name exists,
	// refreshes it and copies its ID into c.
	Upsert(ctx context.Context, c *domain.Catalog) error
	GetByName(ctx context.Context, name string) (*domain.Catalog, error)
	List(ctx context.Context) ([]*domain.Catalog, error)
}

type CourseRepo interface {
	Upsert(ctx context.Context, catalogID string, c *domain.Course) error
	GetByCode(ctx context.Context, code string) (*domain.Course, error)
	List(ctx context.Context) ([]*domain.Course, error)
	// Snapshot returns every course keyed by code.
	Snapshot(ctx context.Context) (map[string]*domain.Course, error)
	Count(ctx context.Context) (int, error)
	// DeleteMissing removes courses of a catalog whose codes are not in keep.
	DeleteMissing(ctx context.Context, catalogID string, keep []string) (int, error)
}

type PlanRunRepo interface {
	Create(ctx context.Context, r *domain.PlanRun) error
	// GetByID accepts a full ID or a unique prefix of one.
	GetByID(ctx context.Context, id string) (*domain.PlanRun, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.PlanRun, error)
}
