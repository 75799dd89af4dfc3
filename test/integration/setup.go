package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dinehub/internal/database"
	"dinehub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, runs the embedded
// migrations against it and returns a connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	if err := database.Migrate(connStr, zerolog.Nop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedMenuItems inserts a fixed set of menu items and returns them.
// "Ribeye Steak" is seeded unavailable.
func SeedMenuItems(t *testing.T, pool *pgxpool.Pool) []model.MenuItem {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()

	items := []model.MenuItem{
		{Name: "Caesar Salad", Category: model.CategoryAppetizer, Price: 12.99, Ingredients: []string{"romaine lettuce", "parmesan cheese", "croutons"}, IsAvailable: true},
		{Name: "Grilled Salmon", Category: model.CategoryMainCourse, Price: 24.99, Ingredients: []string{"salmon", "herbs", "lemon"}, IsAvailable: true},
		{Name: "Margherita Pizza", Category: model.CategoryMainCourse, Price: 18.99, Ingredients: []string{"pizza dough", "tomato sauce", "mozzarella"}, IsAvailable: true},
		{Name: "Ribeye Steak", Category: model.CategoryMainCourse, Price: 32.99, Ingredients: []string{"ribeye steak", "garlic", "butter"}, IsAvailable: false},
		{Name: "Tiramisu", Category: model.CategoryDessert, Price: 9.99, Ingredients: []string{"ladyfingers", "espresso", "mascarpone"}, IsAvailable: true},
		{Name: "Iced Coffee", Category: model.CategoryBeverage, Price: 3.99, Ingredients: []string{"coffee beans", "ice", "milk"}, IsAvailable: true},
	}

	for i := range items {
		items[i].ID = uuid.New()
		items[i].CreatedAt = now
		items[i].UpdatedAt = now

		_, err := pool.Exec(ctx, `
			INSERT INTO menu_items (id, name, description, category, price, ingredients, is_available, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			items[i].ID, items[i].Name, items[i].Description, items[i].Category,
			items[i].Price, items[i].Ingredients, items[i].IsAvailable,
			items[i].CreatedAt, items[i].UpdatedAt,
		)
		if err != nil {
			t.Fatalf("failed to seed menu item %s: %v", items[i].Name, err)
		}
	}

	return items
}

// CleanupDB removes all data from the test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "menu_items"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
