package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dinehub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error {
	args := m.Called(ctx, tx, lines)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, status string, limit, offset int) ([]model.Order, int, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) TopSellers(ctx context.Context, limit int) ([]model.TopSeller, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TopSeller), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

func availableItem(id uuid.UUID, name string, price float64) model.MenuItem {
	return model.MenuItem{
		ID:          id,
		Name:        name,
		Category:    model.CategoryMainCourse,
		Price:       price,
		IsAvailable: true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func TestOrderService_SubmitOrder_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	itemA := uuid.New()
	req := &model.OrderRequest{
		Items: []model.OrderLineRequest{
			{MenuItemID: itemA, Quantity: 2},
		},
		CustomerName: "John Doe",
	}

	mockOrderRepo := new(MockOrderRepository)
	mockMenuRepo := new(MockMenuItemRepository)
	mockTx := new(MockTx)

	mockMenuRepo.On("GetByIDs", ctx, []uuid.UUID{itemA}).
		Return([]model.MenuItem{availableItem(itemA, "Grilled Salmon", 10.00)}, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockOrderRepo.On("CreateOrderLines", ctx, mockTx, mock.AnythingOfType("[]model.OrderLine")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	service := NewOrderService(mockOrderRepo, mockMenuRepo, logger)

	order, err := service.SubmitOrder(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, model.StatusPending, order.Status)
	assert.Equal(t, 20.00, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, itemA, order.Items[0].MenuItemID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 10.00, order.Items[0].Price, "line price must be the catalogue snapshot")

	mockOrderRepo.AssertExpectations(t)
	mockMenuRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestOrderService_SubmitOrder_TotalFromCatalogueOnly(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	itemA := uuid.New()
	itemB := uuid.New()
	req := &model.OrderRequest{
		Items: []model.OrderLineRequest{
			{MenuItemID: itemA, Quantity: 3},
			{MenuItemID: itemB, Quantity: 1},
		},
		CustomerName: "Jane Smith",
	}

	mockOrderRepo := new(MockOrderRepository)
	mockMenuRepo := new(MockMenuItemRepository)
	mockTx := new(MockTx)

	mockMenuRepo.On("GetByIDs", ctx, []uuid.UUID{itemA, itemB}).
		Return([]model.MenuItem{
			availableItem(itemA, "Iced Coffee", 3.99),
			availableItem(itemB, "Tiramisu", 9.99),
		}, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockOrderRepo.On("CreateOrderLines", ctx, mockTx, mock.AnythingOfType("[]model.OrderLine")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	service := NewOrderService(mockOrderRepo, mockMenuRepo, logger)

	order, err := service.SubmitOrder(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, 21.96, order.TotalAmount)
}

func TestOrderService_SubmitOrder_UnavailableItemAbortsWholeOrder(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	// Menu item A (10.00, available), menu item B (5.00, unavailable).
	itemA := uuid.New()
	itemB := uuid.New()
	unavailable := availableItem(itemB, "Ribeye Steak", 5.00)
	unavailable.IsAvailable = false

	req := &model.OrderRequest{
		Items: []model.OrderLineRequest{
			{MenuItemID: itemA, Quantity: 2},
			{MenuItemID: itemB, Quantity: 1},
		},
		CustomerName: "John Doe",
	}

	mockOrderRepo := new(MockOrderRepository)
	mockMenuRepo := new(MockMenuItemRepository)

	mockMenuRepo.On("GetByIDs", ctx, []uuid.UUID{itemA, itemB}).
		Return([]model.MenuItem{availableItem(itemA, "Grilled Salmon", 10.00), unavailable}, nil)

	service := NewOrderService(mockOrderRepo, mockMenuRepo, logger)

	order, err := service.SubmitOrder(ctx, req)

	require.Error(t, err)
	assert.Nil(t, order)

	var derr *model.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, model.ErrCodeItemUnavailable, derr.Code)
	assert.Contains(t, derr.Message, "Ribeye Steak")

	// Nothing may be written when any line fails.
	mockOrderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
	mockOrderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_SubmitOrder_UnknownItemAbortsWholeOrder(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	itemA := uuid.New()
	missing := uuid.New()
	req := &model.OrderRequest{
		Items: []model.OrderLineRequest{
			{MenuItemID: itemA, Quantity: 1},
			{MenuItemID: missing, Quantity: 1},
		},
		CustomerName: "John Doe",
	}

	mockOrderRepo := new(MockOrderRepository)
	mockMenuRepo := new(MockMenuItemRepository)

	// Only item A resolves.
	mockMenuRepo.On("GetByIDs", ctx, []uuid.UUID{itemA, missing}).
		Return([]model.MenuItem{availableItem(itemA, "Grilled Salmon", 10.00)}, nil)

	service := NewOrderService(mockOrderRepo, mockMenuRepo, logger)

	order, err := service.SubmitOrder(ctx, req)

	require.Error(t, err)
	assert.Nil(t, order)

	var derr *model.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, model.ErrCodeMenuItemNotFound, derr.Code)

	mockOrderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestOrderService_SubmitOrder_ValidationFailures(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	itemA := uuid.New()
	negativeTable := -2

	tests := []struct {
		name string
		req  *model.OrderRequest
	}{
		{
			name: "nil request",
			req:  nil,
		},
		{
			name: "empty items",
			req:  &model.OrderRequest{CustomerName: "John Doe"},
		},
		{
			name: "blank customer name",
			req: &model.OrderRequest{
				Items:        []model.OrderLineRequest{{MenuItemID: itemA, Quantity: 1}},
				CustomerName: "   ",
			},
		},
		{
			name: "zero quantity",
			req: &model.OrderRequest{
				Items:        []model.OrderLineRequest{{MenuItemID: itemA, Quantity: 0}},
				CustomerName: "John Doe",
			},
		},
		{
			name: "missing menu item id",
			req: &model.OrderRequest{
				Items:        []model.OrderLineRequest{{Quantity: 1}},
				CustomerName: "John Doe",
			},
		},
		{
			name: "negative table number",
			req: &model.OrderRequest{
				Items:        []model.OrderLineRequest{{MenuItemID: itemA, Quantity: 1}},
				CustomerName: "John Doe",
				TableNumber:  &negativeTable,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOrderRepo := new(MockOrderRepository)
			mockMenuRepo := new(MockMenuItemRepository)

			service := NewOrderService(mockOrderRepo, mockMenuRepo, logger)

			order, err := service.SubmitOrder(ctx, tt.req)

			require.Error(t, err)
			assert.Nil(t, order)

			var derr *model.DomainError
			assert.ErrorAs(t, err, &derr)

			mockMenuRepo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
			mockOrderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
		})
	}
}

func TestOrderService_SubmitOrder_CommitFailureRollsBack(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	itemA := uuid.New()
	req := &model.OrderRequest{
		Items:        []model.OrderLineRequest{{MenuItemID: itemA, Quantity: 1}},
		CustomerName: "John Doe",
	}

	mockOrderRepo := new(MockOrderRepository)
	mockMenuRepo := new(MockMenuItemRepository)
	mockTx := new(MockTx)

	mockMenuRepo.On("GetByIDs", ctx, []uuid.UUID{itemA}).
		Return([]model.MenuItem{availableItem(itemA, "Grilled Salmon", 10.00)}, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockOrderRepo.On("CreateOrderLines", ctx, mockTx, mock.AnythingOfType("[]model.OrderLine")).Return(nil)
	mockTx.On("Commit", ctx).Return(errors.New("connection lost"))
	mockTx.On("Rollback", ctx).Return(nil)

	service := NewOrderService(mockOrderRepo, mockMenuRepo, logger)

	order, err := service.SubmitOrder(ctx, req)

	require.Error(t, err)
	assert.Nil(t, order)
	mockTx.AssertCalled(t, "Rollback", ctx)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	orderID := uuid.New()

	t.Run("success", func(t *testing.T) {
		updated := &model.Order{ID: orderID, Status: model.StatusReady}

		mockOrderRepo := new(MockOrderRepository)
		mockMenuRepo := new(MockMenuItemRepository)
		mockOrderRepo.On("UpdateStatus", ctx, orderID, model.StatusReady).Return(updated, nil)

		service := NewOrderService(mockOrderRepo, mockMenuRepo, logger)

		order, err := service.UpdateStatus(ctx, orderID, "Ready")

		require.NoError(t, err)
		assert.Equal(t, model.StatusReady, order.Status)
	})

	t.Run("invalid status never reaches the repository", func(t *testing.T) {
		mockOrderRepo := new(MockOrderRepository)
		mockMenuRepo := new(MockMenuItemRepository)

		service := NewOrderService(mockOrderRepo, mockMenuRepo, logger)

		order, err := service.UpdateStatus(ctx, orderID, "Shipped")

		assert.Nil(t, order)
		assert.ErrorIs(t, err, model.ErrInvalidStatus)
		mockOrderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("order not found", func(t *testing.T) {
		mockOrderRepo := new(MockOrderRepository)
		mockMenuRepo := new(MockMenuItemRepository)
		mockOrderRepo.On("UpdateStatus", ctx, orderID, model.StatusCancelled).Return(nil, nil)

		service := NewOrderService(mockOrderRepo, mockMenuRepo, logger)

		order, err := service.UpdateStatus(ctx, orderID, "Cancelled")

		assert.Nil(t, order)
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})
}

func TestOrderService_List_Pagination(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	mockMenuRepo := new(MockMenuItemRepository)

	orders := []model.Order{{ID: uuid.New()}, {ID: uuid.New()}}
	mockOrderRepo.On("List", ctx, "Pending", 2, 2).Return(orders, 5, nil)

	service := NewOrderService(mockOrderRepo, mockMenuRepo, logger)

	page, err := service.List(ctx, "Pending", 2, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Orders, 2)
}

func TestOrderService_List_DefaultsAndEmptyResult(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	mockMenuRepo := new(MockMenuItemRepository)

	mockOrderRepo.On("List", ctx, "", 10, 0).Return(nil, 0, nil)

	service := NewOrderService(mockOrderRepo, mockMenuRepo, logger)

	page, err := service.List(ctx, "", 0, 0)

	require.NoError(t, err)
	assert.NotNil(t, page.Orders, "orders must serialise as [] rather than null")
	assert.Empty(t, page.Orders)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 0, page.TotalPages)
}

func TestOrderService_List_UnknownStatusIsJustAFilter(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	mockMenuRepo := new(MockMenuItemRepository)

	// An out-of-enum status is passed through and matches nothing; it
	// is not a validation failure.
	mockOrderRepo.On("List", ctx, "Bogus", 10, 0).Return(nil, 0, nil)

	service := NewOrderService(mockOrderRepo, mockMenuRepo, logger)

	page, err := service.List(ctx, "Bogus", 1, 10)

	require.NoError(t, err)
	assert.Empty(t, page.Orders)
	assert.Equal(t, 0, page.Total)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_GetByID_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	orderID := uuid.New()

	mockOrderRepo := new(MockOrderRepository)
	mockMenuRepo := new(MockMenuItemRepository)
	mockOrderRepo.On("GetByID", ctx, orderID).Return(nil, nil)

	service := NewOrderService(mockOrderRepo, mockMenuRepo, logger)

	order, err := service.GetByID(ctx, orderID)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}
