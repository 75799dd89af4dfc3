package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"dinehub/internal/model"
	"dinehub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// menuService implements MenuService.
type menuService struct {
	menuRepo repository.MenuItemRepository
	logger   zerolog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(menuRepo repository.MenuItemRepository, logger zerolog.Logger) MenuService {
	return &menuService{
		menuRepo: menuRepo,
		logger:   logger.With().Str("service", "menu").Logger(),
	}
}

// List retrieves menu items matching the filter.
func (s *menuService) List(ctx context.Context, filter model.MenuFilter) ([]model.MenuItem, error) {
	items, err := s.menuRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list menu items")
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	return items, nil
}

// Search retrieves menu items matching a free-text query. An empty
// query returns an empty list without touching storage.
func (s *menuService) Search(ctx context.Context, query string) ([]model.MenuItem, error) {
	if strings.TrimSpace(query) == "" {
		return []model.MenuItem{}, nil
	}

	items, err := s.menuRepo.Search(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search menu items")
		return nil, fmt.Errorf("failed to search menu items: %w", err)
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	return items, nil
}

// GetByID retrieves a single menu item.
func (s *menuService) GetByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to get menu item")
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	if item == nil {
		return nil, model.ErrMenuItemNotFound
	}
	return item, nil
}

// Create validates and stores a new menu item.
func (s *menuService) Create(ctx context.Context, req *model.MenuItemRequest) (*model.MenuItem, error) {
	if err := validateMenuItemRequest(req); err != nil {
		s.logger.Warn().Err(err).Msg("menu item validation failed")
		return nil, err
	}

	now := time.Now()
	item := menuItemFromRequest(req)
	item.ID = uuid.New()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.menuRepo.Create(ctx, item); err != nil {
		s.logger.Error().Err(err).Str("name", item.Name).Msg("failed to create menu item")
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.logger.Info().
		Str("menu_item_id", item.ID.String()).
		Str("name", item.Name).
		Msg("menu item created")

	return item, nil
}

// Update validates and replaces an existing menu item.
func (s *menuService) Update(ctx context.Context, id uuid.UUID, req *model.MenuItemRequest) (*model.MenuItem, error) {
	if err := validateMenuItemRequest(req); err != nil {
		s.logger.Warn().Err(err).Str("menu_item_id", id.String()).Msg("menu item validation failed")
		return nil, err
	}

	item := menuItemFromRequest(req)
	item.ID = id
	item.UpdatedAt = time.Now()

	updated, err := s.menuRepo.Update(ctx, item)
	if err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to update menu item")
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	if !updated {
		return nil, model.ErrMenuItemNotFound
	}

	// Re-read for the stored created_at.
	stored, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to reload menu item")
		return nil, fmt.Errorf("failed to reload menu item: %w", err)
	}
	if stored == nil {
		return nil, model.ErrMenuItemNotFound
	}

	s.logger.Info().Str("menu_item_id", id.String()).Msg("menu item updated")

	return stored, nil
}

// Delete permanently removes a menu item. Historical orders keep their
// frozen line prices and are unaffected.
func (s *menuService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.menuRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to delete menu item")
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if !deleted {
		return model.ErrMenuItemNotFound
	}

	s.logger.Info().Str("menu_item_id", id.String()).Msg("menu item deleted")

	return nil
}

// ToggleAvailability flips the availability gate on a menu item.
// Applying it twice restores the original value.
func (s *menuService) ToggleAvailability(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	item, err := s.menuRepo.ToggleAvailability(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to toggle availability")
		return nil, fmt.Errorf("failed to toggle availability: %w", err)
	}
	if item == nil {
		return nil, model.ErrMenuItemNotFound
	}

	s.logger.Info().
		Str("menu_item_id", id.String()).
		Bool("is_available", item.IsAvailable).
		Msg("menu item availability toggled")

	return item, nil
}

// menuItemFromRequest builds a MenuItem from a validated request.
// Identity and timestamps are left for the caller to fill in.
func menuItemFromRequest(req *model.MenuItemRequest) *model.MenuItem {
	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	ingredients := req.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}

	return &model.MenuItem{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Category:        model.Category(req.Category),
		Price:           req.Price,
		Ingredients:     ingredients,
		IsAvailable:     isAvailable,
		PreparationTime: req.PreparationTime,
		ImageURL:        req.ImageURL,
	}
}

// validateMenuItemRequest validates a create/update payload.
func validateMenuItemRequest(req *model.MenuItemRequest) error {
	if req == nil {
		return model.NewValidationError("request body is required")
	}

	if strings.TrimSpace(req.Name) == "" {
		return model.NewValidationError("name is required")
	}

	if !model.ValidCategory(req.Category) {
		return model.NewValidationError("category must be one of Appetizer, Main Course, Dessert, Beverage")
	}

	if req.Price <= 0 {
		return model.NewValidationError("price must be a positive number")
	}

	if req.PreparationTime != nil && *req.PreparationTime <= 0 {
		return model.NewValidationError("preparationTime must be a positive number")
	}

	if req.ImageURL != "" {
		u, err := url.Parse(req.ImageURL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return model.NewValidationError("imageUrl must be a valid URI")
		}
	}

	return nil
}
