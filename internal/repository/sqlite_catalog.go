package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/google/uuid"
)

// SQLiteCatalogRepo implements CatalogRepo using a SQLite database.
type SQLiteCatalogRepo struct {
	db db.DBTX
}

// NewSQLiteCatalogRepo creates a new SQLiteCatalogRepo.
func NewSQLiteCatalogRepo(conn db.DBTX) *SQLiteCatalogRepo {
	return &SQLiteCatalogRepo{db: conn}
}

func (r *SQLiteCatalogRepo) Upsert(ctx context.Context, c *domain.Catalog) error {
	existing, err := r.GetByName(ctx, c.Name)
	switch {
	case err == nil:
		c.ID = existing.ID
	case errors.Is(err, ErrNotFound):
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
	default:
		return err
	}
	if c.ImportedAt.IsZero() {
		c.ImportedAt = time.Now().UTC()
	}

	query := `INSERT INTO catalogs (id, name, source, imported_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET source = excluded.source, imported_at = excluded.imported_at`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Source, c.ImportedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("upserting catalog: %w", err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) GetByName(ctx context.Context, name string) (*domain.Catalog, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, source, imported_at FROM catalogs WHERE name = ?`, name)
	c, err := scanCatalog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("catalog %q: %w", name, ErrNotFound)
	}
	return c, err
}

func (r *SQLiteCatalogRepo) List(ctx context.Context) ([]*domain.Catalog, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, source, imported_at FROM catalogs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing catalogs: %w", err)
	}
	defer rows.Close()

	var out []*domain.Catalog
	for rows.Next() {
		c, err := scanCatalog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalogs: %w", err)
	}
	return out, nil
}

func scanCatalog(row rowScanner) (*domain.Catalog, error) {
	var c domain.Catalog
	var importedAt string
	if err := row.Scan(&c.ID, &c.Name, &c.Source, &importedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning catalog: %w", err)
	}
	t, err := parseTime(importedAt, "imported_at")
	if err != nil {
		return nil, err
	}
	c.ImportedAt = t
	return &c, nil
}
