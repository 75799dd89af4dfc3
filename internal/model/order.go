package model

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks an order through the kitchen.
type OrderStatus string

// Order statuses. Transitions are unrestricted: staff may move an order
// from any status to any other, including re-opening a delivered one.
const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
	StatusReady     OrderStatus = "Ready"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

// Order represents a customer order. Its lines and total are frozen at
// creation time; only the status (and updatedAt) change afterwards.
type Order struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	OrderNumber  string      `json:"orderNumber" db:"order_number"`
	Items        []OrderLine `json:"items"`
	TotalAmount  float64     `json:"totalAmount" db:"total_amount"`
	Status       OrderStatus `json:"status" db:"status"`
	CustomerName string      `json:"customerName" db:"customer_name"`
	TableNumber  *int        `json:"tableNumber,omitempty" db:"table_number"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderLine is one entry within an order. Price is a snapshot of the
// menu price at submission time, not a live reference, so later menu
// edits never change historical totals. Name is resolved from the
// current catalogue on reads and is empty if the item was deleted.
type OrderLine struct {
	ID         uuid.UUID `json:"-" db:"id"`
	OrderID    uuid.UUID `json:"-" db:"order_id"`
	MenuItemID uuid.UUID `json:"menuItemId" db:"menu_item_id"`
	Name       string    `json:"name,omitempty"`
	Quantity   int       `json:"quantity" db:"quantity"`
	Price      float64   `json:"price" db:"price"`
}

// OrderRequest represents the request payload for submitting an order.
// There is deliberately no price field: totals are always computed
// server-side from the catalogue.
type OrderRequest struct {
	Items        []OrderLineRequest `json:"items"`
	CustomerName string             `json:"customerName"`
	TableNumber  *int               `json:"tableNumber,omitempty"`
}

// OrderLineRequest represents a single line in an order request.
type OrderLineRequest struct {
	MenuItemID uuid.UUID `json:"menuItemId"`
	Quantity   int       `json:"quantity"`
}

// StatusUpdateRequest represents the request payload for an order
// status change.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// OrderPage is one page of the order listing.
type OrderPage struct {
	Orders      []Order `json:"orders"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
	Total       int     `json:"total"`
}

// TopSeller is one row of the top-sellers ranking.
type TopSeller struct {
	MenuItemID    uuid.UUID `json:"menuItemId"`
	Name          string    `json:"name"`
	Category      Category  `json:"category"`
	TotalQuantity int       `json:"totalQuantity"`
	TotalRevenue  float64   `json:"totalRevenue"`
}

// NewOrderNumber generates a human-facing order number. The
// millisecond timestamp plus a random suffix keeps numbers unique in
// practice and non-sequential; the database enforces uniqueness.
func NewOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}
