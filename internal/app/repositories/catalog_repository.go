package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hare-edu/hare-backend/internal/app/models"
	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
)

// ICatalogRepository defines the interface for catalog table operations
type ICatalogRepository interface {
	Create(ctx context.Context, kind models.CatalogKind, item *models.CatalogItem) error
	GetByID(ctx context.Context, kind models.CatalogKind, id int64) (*models.CatalogItem, error)
	GetAll(ctx context.Context, kind models.CatalogKind) ([]*models.CatalogItem, error)
	UpdateName(ctx context.Context, kind models.CatalogKind, id int64, name string) error
	Delete(ctx context.Context, kind models.CatalogKind, id int64) error
	NameExists(ctx context.Context, kind models.CatalogKind, name string) (bool, error)
	NameMap(ctx context.Context, kind models.CatalogKind) (map[string]int64, error)
}

// CatalogRepository handles database operations for the four reference
// tables. All queries are parameterized by models.CatalogKind, whose Table
// method only ever yields one of the fixed table names.
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{
		db: db,
	}
}

// Create inserts a new catalog entry
func (r *CatalogRepository) Create(ctx context.Context, kind models.CatalogKind, item *models.CatalogItem) error {
	query := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) RETURNING id`, kind.Table())

	err := r.db.QueryRow(ctx, query, item.Name).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("error creating %s entry: %w", kind.Table(), err)
	}

	return nil
}

// GetByID retrieves a catalog entry by ID
func (r *CatalogRepository) GetByID(ctx context.Context, kind models.CatalogKind, id int64) (*models.CatalogItem, error) {
	query := fmt.Sprintf(`SELECT id, name FROM %s WHERE id = $1`, kind.Table())

	var item models.CatalogItem
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCatalogItemNotFound
		}
		return nil, fmt.Errorf("error retrieving %s entry: %w", kind.Table(), err)
	}

	return &item, nil
}

// GetAll retrieves all entries of a catalog
func (r *CatalogRepository) GetAll(ctx context.Context, kind models.CatalogKind) ([]*models.CatalogItem, error) {
	query := fmt.Sprintf(`SELECT id, name FROM %s ORDER BY id`, kind.Table())

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.CatalogItem
	for rows.Next() {
		var item models.CatalogItem
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// UpdateName renames a catalog entry
func (r *CatalogRepository) UpdateName(ctx context.Context, kind models.CatalogKind, id int64, name string) error {
	query := fmt.Sprintf(`UPDATE %s SET name = $1 WHERE id = $2`, kind.Table())

	cmdTag, err := r.db.Exec(ctx, query, name, id)
	if err != nil {
		return fmt.Errorf("error updating %s entry: %w", kind.Table(), err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCatalogItemNotFound
	}

	return nil
}

// Delete removes a catalog entry by ID
func (r *CatalogRepository) Delete(ctx context.Context, kind models.CatalogKind, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, kind.Table())

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting %s entry: %w", kind.Table(), err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCatalogItemNotFound
	}

	return nil
}

// NameExists checks whether a catalog entry with the given name exists
func (r *CatalogRepository) NameExists(ctx context.Context, kind models.CatalogKind, name string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE name = $1)`, kind.Table())

	var exists bool
	if err := r.db.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking %s name existence: %w", kind.Table(), err)
	}

	return exists, nil
}

// NameMap loads the full catalog as a name-to-id map. The import path
// resolves spreadsheet cells against it.
func (r *CatalogRepository) NameMap(ctx context.Context, kind models.CatalogKind) (map[string]int64, error) {
	items, err := r.GetAll(ctx, kind)
	if err != nil {
		return nil, err
	}

	m := make(map[string]int64, len(items))
	for _, item := range items {
		m[item.Name] = item.ID
	}

	return m, nil
}
