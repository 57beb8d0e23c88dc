package services

import (
	"context"

	"github.com/hare-edu/hare-backend/internal/app/models"
	"github.com/hare-edu/hare-backend/internal/app/repositories"
	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
)

// CatalogService handles the four reference catalogs through a single
// kind-parameterized API.
type CatalogService struct {
	catalogRepo repositories.ICatalogRepository
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(catalogRepo repositories.ICatalogRepository) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
	}
}

// CreateItem inserts a new catalog entry after checking name uniqueness
// within the catalog.
func (s *CatalogService) CreateItem(ctx context.Context, kind models.CatalogKind, name string) (*models.CatalogItem, error) {
	taken, err := s.catalogRepo.NameExists(ctx, kind, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrCatalogItemAlreadyExists
	}

	item := &models.CatalogItem{Name: name}
	if err := s.catalogRepo.Create(ctx, kind, item); err != nil {
		return nil, err
	}

	return item, nil
}

// GetItem retrieves a single catalog entry
func (s *CatalogService) GetItem(ctx context.Context, kind models.CatalogKind, id int64) (*models.CatalogItem, error) {
	return s.catalogRepo.GetByID(ctx, kind, id)
}

// GetAllItems retrieves all entries of a catalog
func (s *CatalogService) GetAllItems(ctx context.Context, kind models.CatalogKind) ([]*models.CatalogItem, error) {
	return s.catalogRepo.GetAll(ctx, kind)
}

// UpdateItem renames a catalog entry. The uniqueness check skips the
// entry's own current name so renaming to itself is a no-op, not a
// conflict.
func (s *CatalogService) UpdateItem(ctx context.Context, kind models.CatalogKind, id int64, name string) (*models.CatalogItem, error) {
	item, err := s.catalogRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	if name != item.Name {
		taken, err := s.catalogRepo.NameExists(ctx, kind, name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.ErrCatalogItemAlreadyExists
		}
	}

	if err := s.catalogRepo.UpdateName(ctx, kind, id, name); err != nil {
		return nil, err
	}

	item.Name = name
	return item, nil
}

// DeleteItem deletes a catalog entry. Deletion fails with a conflict when
// students still reference the entry, surfaced by the foreign keys.
func (s *CatalogService) DeleteItem(ctx context.Context, kind models.CatalogKind, id int64) error {
	return s.catalogRepo.Delete(ctx, kind, id)
}
