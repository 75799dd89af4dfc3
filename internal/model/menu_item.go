package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a menu item on the customer menu.
type Category string

// Menu categories. The values double as the JSON wire representation.
const (
	CategoryAppetizer  Category = "Appetizer"
	CategoryMainCourse Category = "Main Course"
	CategoryDessert    Category = "Dessert"
	CategoryBeverage   Category = "Beverage"
)

// Categories lists every valid menu category.
var Categories = []Category{
	CategoryAppetizer,
	CategoryMainCourse,
	CategoryDessert,
	CategoryBeverage,
}

// ValidCategory reports whether s is one of the known menu categories.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// MenuItem represents a purchasable dish or drink in the catalogue.
type MenuItem struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description,omitempty" db:"description"`
	Category        Category  `json:"category" db:"category"`
	Price           float64   `json:"price" db:"price"`
	Ingredients     []string  `json:"ingredients" db:"ingredients"`
	IsAvailable     bool      `json:"isAvailable" db:"is_available"`
	PreparationTime *int      `json:"preparationTime,omitempty" db:"preparation_time"`
	ImageURL        string    `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// MenuItemRequest represents the request payload for creating or
// updating a menu item. IsAvailable defaults to true when omitted.
type MenuItemRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category"`
	Price           float64  `json:"price"`
	Ingredients     []string `json:"ingredients,omitempty"`
	IsAvailable     *bool    `json:"isAvailable,omitempty"`
	PreparationTime *int     `json:"preparationTime,omitempty"`
	ImageURL        string   `json:"imageUrl,omitempty"`
}

// MenuFilter narrows a menu listing. Nil pointer fields are unset.
type MenuFilter struct {
	Category     string
	Availability *bool
	MinPrice     *float64
	MaxPrice     *float64
}
