package repository

import (
	"context"
	"fmt"
	"strings"

	"dinehub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const menuItemColumns = `id, name, description, category, price, ingredients, is_available, preparation_time, image_url, created_at, updated_at`

// menuItemRepository implements the MenuItemRepository interface using PostgreSQL.
type menuItemRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuItemRepository creates a new PostgreSQL-backed menu item repository.
func NewMenuItemRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuItemRepository {
	return &menuItemRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menu_item").Logger(),
	}
}

func scanMenuItem(row pgx.Row, item *model.MenuItem) error {
	return row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.Price,
		&item.Ingredients,
		&item.IsAvailable,
		&item.PreparationTime,
		&item.ImageURL,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
}

func (r *menuItemRepository) collectMenuItems(rows pgx.Rows) ([]model.MenuItem, error) {
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var item model.MenuItem
		if err := scanMenuItem(rows, &item); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu item row")
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu item rows")
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

// List retrieves menu items matching the filter, newest first.
func (r *menuItemRepository) List(ctx context.Context, filter model.MenuFilter) ([]model.MenuItem, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Availability != nil {
		args = append(args, *filter.Availability)
		conditions = append(conditions, fmt.Sprintf("is_available = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}

	query := `SELECT ` + menuItemColumns + ` FROM menu_items`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query menu items")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}

	return r.collectMenuItems(rows)
}

// Search retrieves menu items whose name or any ingredient contains the
// query, case-insensitively.
func (r *menuItemRepository) Search(ctx context.Context, query string) ([]model.MenuItem, error) {
	sql := `
		SELECT ` + menuItemColumns + `
		FROM menu_items
		WHERE name ILIKE '%' || $1 || '%'
		   OR EXISTS (
			SELECT 1 FROM unnest(ingredients) AS ingredient
			WHERE ingredient ILIKE '%' || $1 || '%'
		   )
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, sql, query)
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search menu items")
		return nil, fmt.Errorf("failed to search menu items: %w", err)
	}

	return r.collectMenuItems(rows)
}

// GetByID retrieves a single menu item by its ID.
func (r *menuItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`

	var item model.MenuItem
	err := scanMenuItem(r.pool.QueryRow(ctx, query, id), &item)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("menu_item_id", id.String()).Msg("menu item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to query menu item")
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}

	return &item, nil
}

// GetByIDs retrieves multiple menu items by their IDs.
func (r *menuItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.MenuItem, error) {
	if len(ids) == 0 {
		return []model.MenuItem{}, nil
	}

	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query menu items by IDs")
		return nil, fmt.Errorf("failed to query menu items by IDs: %w", err)
	}

	return r.collectMenuItems(rows)
}

// Create inserts a new menu item.
func (r *menuItemRepository) Create(ctx context.Context, item *model.MenuItem) error {
	query := `
		INSERT INTO menu_items (` + menuItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Category,
		item.Price,
		item.Ingredients,
		item.IsAvailable,
		item.PreparationTime,
		item.ImageURL,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("menu_item_id", item.ID.String()).Msg("failed to create menu item")
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	r.logger.Debug().Str("menu_item_id", item.ID.String()).Msg("menu item created")

	return nil
}

// Update replaces the mutable fields of a menu item.
func (r *menuItemRepository) Update(ctx context.Context, item *model.MenuItem) (bool, error) {
	query := `
		UPDATE menu_items
		SET name = $2,
		    description = $3,
		    category = $4,
		    price = $5,
		    ingredients = $6,
		    is_available = $7,
		    preparation_time = $8,
		    image_url = $9,
		    updated_at = $10
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Category,
		item.Price,
		item.Ingredients,
		item.IsAvailable,
		item.PreparationTime,
		item.ImageURL,
		item.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("menu_item_id", item.ID.String()).Msg("failed to update menu item")
		return false, fmt.Errorf("failed to update menu item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete permanently removes a menu item.
func (r *menuItemRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to delete menu item")
		return false, fmt.Errorf("failed to delete menu item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return false, nil
	}

	r.logger.Debug().Str("menu_item_id", id.String()).Msg("menu item deleted")

	return true, nil
}

// ToggleAvailability flips is_available and returns the updated item.
func (r *menuItemRepository) ToggleAvailability(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	query := `
		UPDATE menu_items
		SET is_available = NOT is_available,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING ` + menuItemColumns

	var item model.MenuItem
	err := scanMenuItem(r.pool.QueryRow(ctx, query, id), &item)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("menu_item_id", id.String()).Msg("menu item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to toggle availability")
		return nil, fmt.Errorf("failed to toggle availability: %w", err)
	}

	return &item, nil
}
