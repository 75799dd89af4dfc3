// Seeds the database with a sample menu and a few orders for local
// development. Existing data is removed first.
package main

import (
	"context"
	"fmt"
	"os"

	"dinehub/internal/config"
	"dinehub/internal/database"
	"dinehub/internal/model"
	"dinehub/internal/repository"
	"dinehub/internal/service"

	"github.com/rs/zerolog"
)

func intPtr(v int) *int { return &v }

var sampleMenuItems = []model.MenuItemRequest{
	{
		Name:            "Caesar Salad",
		Description:     "Fresh romaine lettuce with parmesan cheese and croutons",
		Category:        "Appetizer",
		Price:           12.99,
		Ingredients:     []string{"romaine lettuce", "parmesan cheese", "croutons", "caesar dressing"},
		PreparationTime: intPtr(10),
		ImageURL:        "https://example.com/caesar-salad.jpg",
	},
	{
		Name:            "Buffalo Wings",
		Description:     "Spicy chicken wings served with blue cheese dip",
		Category:        "Appetizer",
		Price:           14.99,
		Ingredients:     []string{"chicken wings", "buffalo sauce", "blue cheese", "celery"},
		PreparationTime: intPtr(15),
		ImageURL:        "https://example.com/buffalo-wings.jpg",
	},
	{
		Name:            "Grilled Salmon",
		Description:     "Atlantic salmon grilled to perfection with herbs",
		Category:        "Main Course",
		Price:           24.99,
		Ingredients:     []string{"salmon", "herbs", "lemon", "olive oil"},
		PreparationTime: intPtr(20),
		ImageURL:        "https://example.com/grilled-salmon.jpg",
	},
	{
		Name:            "Margherita Pizza",
		Description:     "Classic pizza with tomato, mozzarella, and basil",
		Category:        "Main Course",
		Price:           18.99,
		Ingredients:     []string{"pizza dough", "tomato sauce", "mozzarella", "basil"},
		PreparationTime: intPtr(15),
		ImageURL:        "https://example.com/margherita-pizza.jpg",
	},
	{
		Name:            "Ribeye Steak",
		Description:     "12oz ribeye steak cooked to your preference",
		Category:        "Main Course",
		Price:           32.99,
		Ingredients:     []string{"ribeye steak", "garlic", "rosemary", "butter"},
		PreparationTime: intPtr(25),
		ImageURL:        "https://example.com/ribeye-steak.jpg",
	},
	{
		Name:            "Chocolate Cake",
		Description:     "Rich chocolate cake with vanilla ice cream",
		Category:        "Dessert",
		Price:           8.99,
		Ingredients:     []string{"chocolate", "flour", "eggs", "vanilla ice cream"},
		PreparationTime: intPtr(5),
		ImageURL:        "https://example.com/chocolate-cake.jpg",
	},
	{
		Name:            "Tiramisu",
		Description:     "Classic Italian dessert with coffee and mascarpone",
		Category:        "Dessert",
		Price:           9.99,
		Ingredients:     []string{"ladyfingers", "espresso", "mascarpone", "cocoa powder"},
		PreparationTime: intPtr(3),
		ImageURL:        "https://example.com/tiramisu.jpg",
	},
	{
		Name:            "Fresh Orange Juice",
		Description:     "Freshly squeezed orange juice",
		Category:        "Beverage",
		Price:           4.99,
		Ingredients:     []string{"fresh oranges"},
		PreparationTime: intPtr(3),
		ImageURL:        "https://example.com/orange-juice.jpg",
	},
	{
		Name:            "Iced Coffee",
		Description:     "Cold brew coffee served over ice",
		Category:        "Beverage",
		Price:           3.99,
		Ingredients:     []string{"coffee beans", "ice", "milk"},
		PreparationTime: intPtr(2),
		ImageURL:        "https://example.com/iced-coffee.jpg",
	},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger).Level(zerolog.WarnLevel)
	ctx := context.Background()

	if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Clear existing data
	if _, err := pool.Exec(ctx, `TRUNCATE order_items, orders, menu_items`); err != nil {
		return fmt.Errorf("failed to clear existing data: %w", err)
	}

	menuRepo := repository.NewMenuItemRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	menuService := service.NewMenuService(menuRepo, logger)
	orderService := service.NewOrderService(orderRepo, menuRepo, logger)

	items := make([]*model.MenuItem, 0, len(sampleMenuItems))
	for i := range sampleMenuItems {
		item, err := menuService.Create(ctx, &sampleMenuItems[i])
		if err != nil {
			return fmt.Errorf("failed to seed menu item %q: %w", sampleMenuItems[i].Name, err)
		}
		items = append(items, item)
	}
	fmt.Printf("%d menu items created\n", len(items))

	sampleOrders := []struct {
		req    model.OrderRequest
		status model.OrderStatus
	}{
		{
			req: model.OrderRequest{
				Items: []model.OrderLineRequest{
					{MenuItemID: items[0].ID, Quantity: 2},
					{MenuItemID: items[2].ID, Quantity: 1},
				},
				CustomerName: "John Doe",
				TableNumber:  intPtr(5),
			},
			status: model.StatusDelivered,
		},
		{
			req: model.OrderRequest{
				Items: []model.OrderLineRequest{
					{MenuItemID: items[3].ID, Quantity: 1},
					{MenuItemID: items[8].ID, Quantity: 2},
				},
				CustomerName: "Jane Smith",
				TableNumber:  intPtr(3),
			},
			status: model.StatusPreparing,
		},
		{
			req: model.OrderRequest{
				Items: []model.OrderLineRequest{
					{MenuItemID: items[4].ID, Quantity: 1},
					{MenuItemID: items[5].ID, Quantity: 1},
				},
				CustomerName: "Bob Wilson",
				TableNumber:  intPtr(8),
			},
			status: model.StatusPending,
		},
	}

	for _, sample := range sampleOrders {
		order, err := orderService.SubmitOrder(ctx, &sample.req)
		if err != nil {
			return fmt.Errorf("failed to seed order for %q: %w", sample.req.CustomerName, err)
		}
		if sample.status != model.StatusPending {
			if _, err := orderService.UpdateStatus(ctx, order.ID, string(sample.status)); err != nil {
				return fmt.Errorf("failed to set order status: %w", err)
			}
		}
	}
	fmt.Printf("%d orders created\n", len(sampleOrders))

	return nil
}
