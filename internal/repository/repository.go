package repository

import (
	"context"

	"dinehub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MenuItemRepository defines the interface for menu catalogue data access.
type MenuItemRepository interface {
	// List retrieves menu items matching the filter, newest first.
	List(ctx context.Context, filter model.MenuFilter) ([]model.MenuItem, error)

	// Search retrieves menu items whose name or any ingredient contains
	// the query, case-insensitively.
	Search(ctx context.Context, query string) ([]model.MenuItem, error)

	// GetByID retrieves a single menu item. Returns (nil, nil) when the
	// id does not resolve.
	GetByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)

	// GetByIDs retrieves multiple menu items by their IDs in one read,
	// so availability and price are observed together per item.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.MenuItem, error)

	// Create inserts a new menu item.
	Create(ctx context.Context, item *model.MenuItem) error

	// Update replaces the mutable fields of a menu item. Returns false
	// when the id does not resolve.
	Update(ctx context.Context, item *model.MenuItem) (bool, error)

	// Delete permanently removes a menu item. Returns false when the id
	// does not resolve. Historical orders keep their frozen line prices.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// ToggleAvailability flips is_available and returns the updated
	// item, or (nil, nil) when the id does not resolve.
	ToggleAvailability(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
}

// OrderRepository defines the interface for order ledger data access.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderLines inserts the order's lines within the provided
	// transaction.
	CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error

	// GetByID retrieves an order with its lines. Returns (nil, nil)
	// when the id does not resolve.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// List retrieves one page of orders (optionally filtered by status)
	// newest first, with their lines, plus the total match count.
	List(ctx context.Context, status string, limit, offset int) ([]model.Order, int, error)

	// UpdateStatus sets a new status and bumps updated_at. Returns
	// (nil, nil) when the id does not resolve.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)

	// TopSellers aggregates historical order lines into a ranking of
	// the best-selling menu items.
	TopSellers(ctx context.Context, limit int) ([]model.TopSeller, error)
}
