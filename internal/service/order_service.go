package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"dinehub/internal/model"
	"dinehub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	menuRepo  repository.MenuItemRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuItemRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// SubmitOrder validates a cart against the current menu, computes the
// authoritative total from catalogue prices and persists the order with
// its lines in one transaction. Any missing or unavailable item aborts
// the whole submission before anything is written.
func (s *orderService) SubmitOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	// One read per submission: price and availability of every
	// referenced item are observed together.
	menuIDs := make([]uuid.UUID, 0, len(req.Items))
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, line := range req.Items {
		if !seen[line.MenuItemID] {
			seen[line.MenuItemID] = true
			menuIDs = append(menuIDs, line.MenuItemID)
		}
	}

	menuItems, err := s.menuRepo.GetByIDs(ctx, menuIDs)
	if err != nil {
		s.logger.Error().Err(err).Int("item_count", len(menuIDs)).Msg("failed to resolve menu items")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	byID := make(map[uuid.UUID]model.MenuItem, len(menuItems))
	for _, item := range menuItems {
		byID[item.ID] = item
	}

	orderID := uuid.New()
	now := time.Now()

	var totalAmount float64
	lines := make([]model.OrderLine, len(req.Items))
	for i, line := range req.Items {
		menuItem, ok := byID[line.MenuItemID]
		if !ok {
			s.logger.Warn().
				Str("menu_item_id", line.MenuItemID.String()).
				Msg("order references unknown menu item")
			return nil, model.NewMenuItemMissingError(line.MenuItemID.String())
		}
		if !menuItem.IsAvailable {
			s.logger.Warn().
				Str("menu_item_id", line.MenuItemID.String()).
				Str("name", menuItem.Name).
				Msg("order references unavailable menu item")
			return nil, model.NewItemUnavailableError(menuItem.Name)
		}

		totalAmount += menuItem.Price * float64(line.Quantity)
		lines[i] = model.OrderLine{
			ID:         uuid.New(),
			OrderID:    orderID,
			MenuItemID: line.MenuItemID,
			Name:       menuItem.Name,
			Quantity:   line.Quantity,
			Price:      menuItem.Price,
		}
	}

	order := &model.Order{
		ID:           orderID,
		OrderNumber:  model.NewOrderNumber(),
		Items:        lines,
		TotalAmount:  math.Round(totalAmount*100) / 100,
		Status:       model.StatusPending,
		CustomerName: strings.TrimSpace(req.CustomerName),
		TableNumber:  req.TableNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderLines(ctx, tx, lines); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Int("line_count", len(lines)).
			Msg("failed to create order lines")
		return nil, fmt.Errorf("failed to create order lines: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("order_number", order.OrderNumber).
		Float64("total_amount", order.TotalAmount).
		Int("line_count", len(lines)).
		Msg("order created successfully")

	return order, nil
}

// GetByID retrieves an order with its lines.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// List retrieves one page of orders, newest first.
func (s *orderService) List(ctx context.Context, status string, page, limit int) (*model.OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	// An unknown status value is just a filter that matches nothing.
	orders, total, err := s.orderRepo.List(ctx, status, limit, (page-1)*limit)
	if err != nil {
		s.logger.Error().Err(err).Str("status", status).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}

	return &model.OrderPage{
		Orders:      orders,
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: page,
		Total:       total,
	}, nil
}

// UpdateStatus moves an order to a new status. Any status may move to
// any other; the five-value enum is the only gate.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		s.logger.Warn().Str("order_id", id.String()).Str("status", status).Msg("invalid order status")
		return nil, model.ErrInvalidStatus
	}

	order, err := s.orderRepo.UpdateStatus(ctx, id, model.OrderStatus(status))
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", status).
		Msg("order status updated")

	return order, nil
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewValidationError("order request is required")
	}

	if len(req.Items) == 0 {
		return model.NewValidationError("order must contain at least one item")
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return model.NewValidationError("customerName is required")
	}

	if req.TableNumber != nil && *req.TableNumber <= 0 {
		return model.NewValidationError("tableNumber must be a positive number")
	}

	for i, line := range req.Items {
		if line.MenuItemID == uuid.Nil {
			return model.NewValidationError("item %d: menuItemId is required", i)
		}
		if line.Quantity < 1 {
			s.logger.Warn().
				Int("item_index", i).
				Str("menu_item_id", line.MenuItemID.String()).
				Int("quantity", line.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}
