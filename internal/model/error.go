package model

import "fmt"

// Standard error codes for API responses
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeMenuItemNotFound = "MENU_ITEM_NOT_FOUND"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeItemUnavailable  = "ITEM_UNAVAILABLE"
	ErrCodeInvalidStatus    = "INVALID_STATUS"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a business-rule or lookup failure that handlers map to
// a 4xx response. Anything else surfaces as a generic 500.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrMenuItemNotFound = NewDomainError(ErrCodeMenuItemNotFound, "Menu item not found")
	ErrOrderNotFound    = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidStatus    = NewDomainError(ErrCodeInvalidStatus, "Invalid status")
	ErrInvalidQuantity  = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be at least 1")
)

// NewValidationError creates a validation error with a human-readable
// message suitable for returning to the client verbatim.
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(ErrCodeValidation, fmt.Sprintf(format, args...))
}

// NewItemUnavailableError reports that a referenced menu item is
// currently switched off.
func NewItemUnavailableError(name string) *DomainError {
	return NewDomainError(ErrCodeItemUnavailable, fmt.Sprintf("%s is not available", name))
}

// NewMenuItemMissingError reports an order line referencing an id that
// does not resolve to any menu item.
func NewMenuItemMissingError(id string) *DomainError {
	return NewDomainError(ErrCodeMenuItemNotFound, fmt.Sprintf("Menu item %s not found", id))
}
