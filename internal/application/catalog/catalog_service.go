package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/papersupply/backend/internal/domain/catalog"
	"github.com/papersupply/backend/internal/domain/shared"
)

// Service manages the product catalog
type Service struct {
	catalogRepo catalog.ItemRepository
	logger      *zap.Logger
}

// NewService creates a new catalog Service
func NewService(catalogRepo catalog.ItemRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// CreateItem adds a product to the catalog. Names are unique.
func (s *Service) CreateItem(ctx context.Context, req CreateItemRequest) (*catalog.Item, error) {
	if existing, err := s.catalogRepo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists.WithMessagef("item %q already exists", req.Name)
	}
	item, err := catalog.NewItem(req.Name, toCategory(req.Category), req.UnitPrice, req.CurrentStock, req.MinStockLevel)
	if err != nil {
		return nil, err
	}
	if err := s.catalogRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("catalog item created",
		zap.String("item", item.Name),
		zap.String("category", string(item.Category)))
	return item, nil
}

// GetItem loads an item by name.
func (s *Service) GetItem(ctx context.Context, name string) (*catalog.Item, error) {
	return s.catalogRepo.FindByName(ctx, name)
}

// ListItems returns a page of the catalog, optionally by category.
func (s *Service) ListItems(ctx context.Context, filter ListFilter) (shared.Paginated[catalog.Item], error) {
	var empty shared.Paginated[catalog.Item]

	if filter.Category != "" {
		items, err := s.catalogRepo.FindByCategory(ctx, toCategory(filter.Category))
		if err != nil {
			return empty, err
		}
		return shared.NewPaginated(items, int64(len(items)), 1, len(items)+1), nil
	}

	sf := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
	}
	items, err := s.catalogRepo.FindAll(ctx, sf)
	if err != nil {
		return empty, err
	}
	total, err := s.catalogRepo.Count(ctx, sf)
	if err != nil {
		return empty, err
	}
	return shared.NewPaginated(items, total, sf.Page, sf.Limit()), nil
}

// UpdateItem changes price or reorder threshold of an existing item.
func (s *Service) UpdateItem(ctx context.Context, name string, req UpdateItemRequest) (*catalog.Item, error) {
	item, err := s.catalogRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if req.UnitPrice != nil {
		if err := item.SetUnitPrice(*req.UnitPrice); err != nil {
			return nil, err
		}
	}
	if req.MinStockLevel != nil {
		if err := item.SetMinStockLevel(*req.MinStockLevel); err != nil {
			return nil, err
		}
	}
	if err := s.catalogRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item from the catalog.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.catalogRepo.Delete(ctx, id)
}
