package service

import (
	"context"

	"dinehub/internal/model"

	"github.com/google/uuid"
)

// MenuService defines operations for menu catalogue management.
type MenuService interface {
	// List retrieves menu items matching the filter.
	List(ctx context.Context, filter model.MenuFilter) ([]model.MenuItem, error)

	// Search retrieves menu items matching a free-text query over name
	// and ingredients. An empty query yields an empty result.
	Search(ctx context.Context, query string) ([]model.MenuItem, error)

	// GetByID retrieves a single menu item.
	GetByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)

	// Create validates and stores a new menu item.
	Create(ctx context.Context, req *model.MenuItemRequest) (*model.MenuItem, error)

	// Update validates and replaces an existing menu item.
	Update(ctx context.Context, id uuid.UUID, req *model.MenuItemRequest) (*model.MenuItem, error)

	// Delete permanently removes a menu item.
	Delete(ctx context.Context, id uuid.UUID) error

	// ToggleAvailability flips the availability gate on a menu item.
	ToggleAvailability(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// SubmitOrder validates a cart against the current menu, computes
	// the authoritative total and persists the order atomically.
	SubmitOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// GetByID retrieves an order with its lines.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// List retrieves one page of orders, newest first.
	List(ctx context.Context, status string, page, limit int) (*model.OrderPage, error)

	// UpdateStatus moves an order to a new status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)
}

// AnalyticsService derives read-only rankings from the order ledger.
type AnalyticsService interface {
	// TopSellers returns the best-selling menu items, at most limit of
	// them, sorted by units sold descending.
	TopSellers(ctx context.Context, limit int) ([]model.TopSeller, error)
}

// TopSellersCache caches the top-sellers ranking. Implementations treat
// failures as misses.
type TopSellersCache interface {
	Get(ctx context.Context, limit int) ([]model.TopSeller, bool)
	Set(ctx context.Context, limit int, sellers []model.TopSeller)
}
