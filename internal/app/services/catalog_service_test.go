package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hare-edu/hare-backend/internal/app/models"
	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
)

// memCatalogRepo is an in-memory ICatalogRepository keeping each kind in
// its own slice.
type memCatalogRepo struct {
	nextID int64
	items  map[models.CatalogKind][]*models.CatalogItem
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{items: make(map[models.CatalogKind][]*models.CatalogItem)}
}

func (m *memCatalogRepo) Create(ctx context.Context, kind models.CatalogKind, item *models.CatalogItem) error {
	m.nextID++
	item.ID = m.nextID
	copied := *item
	m.items[kind] = append(m.items[kind], &copied)
	return nil
}

func (m *memCatalogRepo) GetByID(ctx context.Context, kind models.CatalogKind, id int64) (*models.CatalogItem, error) {
	for _, item := range m.items[kind] {
		if item.ID == id {
			copied := *item
			return &copied, nil
		}
	}
	return nil, apperrors.ErrCatalogItemNotFound
}

func (m *memCatalogRepo) GetAll(ctx context.Context, kind models.CatalogKind) ([]*models.CatalogItem, error) {
	var out []*models.CatalogItem
	for _, item := range m.items[kind] {
		copied := *item
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memCatalogRepo) UpdateName(ctx context.Context, kind models.CatalogKind, id int64, name string) error {
	for _, item := range m.items[kind] {
		if item.ID == id {
			item.Name = name
			return nil
		}
	}
	return apperrors.ErrCatalogItemNotFound
}

func (m *memCatalogRepo) Delete(ctx context.Context, kind models.CatalogKind, id int64) error {
	for i, item := range m.items[kind] {
		if item.ID == id {
			m.items[kind] = append(m.items[kind][:i], m.items[kind][i+1:]...)
			return nil
		}
	}
	return apperrors.ErrCatalogItemNotFound
}

func (m *memCatalogRepo) NameExists(ctx context.Context, kind models.CatalogKind, name string) (bool, error) {
	for _, item := range m.items[kind] {
		if item.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCatalogRepo) NameMap(ctx context.Context, kind models.CatalogKind) (map[string]int64, error) {
	out := make(map[string]int64, len(m.items[kind]))
	for _, item := range m.items[kind] {
		out[item.Name] = item.ID
	}
	return out, nil
}

func TestCatalogCreateAndGet(t *testing.T) {
	service := NewCatalogService(newMemCatalogRepo())

	created, err := service.CreateItem(context.Background(), models.CatalogSchools, "INEM")
	if err != nil {
		t.Fatalf("CreateItem returned error: %v", err)
	}
	if created.ID == 0 {
		t.Error("created item has no ID")
	}

	got, err := service.GetItem(context.Background(), models.CatalogSchools, created.ID)
	if err != nil {
		t.Fatalf("GetItem returned error: %v", err)
	}
	if got.Name != "INEM" {
		t.Errorf("name = %q, want INEM", got.Name)
	}
}

func TestCatalogDuplicateName(t *testing.T) {
	service := NewCatalogService(newMemCatalogRepo())

	if _, err := service.CreateItem(context.Background(), models.CatalogSchools, "INEM"); err != nil {
		t.Fatalf("CreateItem returned error: %v", err)
	}

	_, err := service.CreateItem(context.Background(), models.CatalogSchools, "INEM")
	if !errors.Is(err, apperrors.ErrCatalogItemAlreadyExists) {
		t.Errorf("error = %v, want ErrCatalogItemAlreadyExists", err)
	}
}

func TestCatalogNamesAreScopedPerKind(t *testing.T) {
	service := NewCatalogService(newMemCatalogRepo())

	if _, err := service.CreateItem(context.Background(), models.CatalogSchools, "Pasto"); err != nil {
		t.Fatalf("CreateItem returned error: %v", err)
	}
	// The same name in a different catalog is not a conflict.
	if _, err := service.CreateItem(context.Background(), models.CatalogMunicipalities, "Pasto"); err != nil {
		t.Errorf("CreateItem in another catalog returned error: %v", err)
	}
}

func TestCatalogRename(t *testing.T) {
	service := NewCatalogService(newMemCatalogRepo())

	item, err := service.CreateItem(context.Background(), models.CatalogDocumentTypes, "CC")
	if err != nil {
		t.Fatalf("CreateItem returned error: %v", err)
	}

	// Renaming to the current name is a no-op, not a conflict.
	if _, err := service.UpdateItem(context.Background(), models.CatalogDocumentTypes, item.ID, "CC"); err != nil {
		t.Errorf("self-rename returned error: %v", err)
	}

	renamed, err := service.UpdateItem(context.Background(), models.CatalogDocumentTypes, item.ID, "Cedula")
	if err != nil {
		t.Fatalf("UpdateItem returned error: %v", err)
	}
	if renamed.Name != "Cedula" {
		t.Errorf("name = %q, want Cedula", renamed.Name)
	}
}

func TestCatalogDeleteNotFound(t *testing.T) {
	service := NewCatalogService(newMemCatalogRepo())

	err := service.DeleteItem(context.Background(), models.CatalogSchools, 99)
	if !errors.Is(err, apperrors.ErrCatalogItemNotFound) {
		t.Errorf("error = %v, want ErrCatalogItemNotFound", err)
	}
}
