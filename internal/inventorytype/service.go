package inventorytype

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/Andrej19990506/supboard-booking-backend/internal/pkg/storage"
)

// Icons are normalized into a bounding box of this size before storing.
const iconMaxSize = 128

type CreateRequest struct {
	Name        string
	DisplayName string
	Stock       int
}

type UpdateRequest struct {
	Name        *string
	DisplayName *string
	IsActive    *bool
	Stock       *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*InventoryType, error)
	GetByID(ctx context.Context, id string) (*InventoryType, error)
	List(ctx context.Context, filter Filter) ([]*InventoryType, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*InventoryType, error)
	Delete(ctx context.Context, id string) error

	// SetIcon normalizes the uploaded image and stores it, updating the type's icon path.
	SetIcon(ctx context.Context, id string, content io.Reader) (*InventoryType, error)

	// StockMap returns the stock count for every active type, keyed by type id.
	StockMap(ctx context.Context) (map[string]int, error)
}

type service struct {
	repo      Repository
	files     storage.Storage
	processor *storage.ImageProcessor
}

func NewService(repo Repository, files storage.Storage) Service {
	return &service{
		repo:      repo,
		files:     files,
		processor: storage.NewImageProcessor(),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*InventoryType, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if req.Stock < 0 {
		return nil, ErrInvalidStock
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = req.Name
	}

	it := &InventoryType{
		Name:        strings.TrimSpace(req.Name),
		DisplayName: displayName,
		IsActive:    true,
		Stock:       req.Stock,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*InventoryType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*InventoryType, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*InventoryType, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.DisplayName != nil {
		it.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.IsActive != nil {
		it.IsActive = *req.IsActive
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, ErrInvalidStock
		}
		it.Stock = *req.Stock
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if it.IconPath != "" {
		// Best effort: a leftover icon file is harmless.
		_ = s.files.Delete(ctx, it.IconPath)
	}
	return nil
}

func (s *service) SetIcon(ctx context.Context, id string, content io.Reader) (*InventoryType, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := s.processor.NormalizeIcon(content, iconMaxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to process icon: %w", err)
	}

	path := fmt.Sprintf("icons/%s.png", uuid.NewString())
	if err := s.files.Save(ctx, path, normalized); err != nil {
		return nil, fmt.Errorf("failed to store icon: %w", err)
	}

	oldPath := it.IconPath
	it.IconPath = path
	if err := s.repo.Update(ctx, it); err != nil {
		_ = s.files.Delete(ctx, path)
		return nil, err
	}

	if oldPath != "" {
		_ = s.files.Delete(ctx, oldPath)
	}
	return it, nil
}

func (s *service) StockMap(ctx context.Context) (map[string]int, error) {
	types, _, err := s.repo.List(ctx, Filter{ActiveOnly: true, PageSize: 500})
	if err != nil {
		return nil, err
	}

	stock := make(map[string]int, len(types))
	for _, it := range types {
		stock[it.ID] = it.Stock
	}
	return stock, nil
}
