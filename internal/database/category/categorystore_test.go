package category

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"com.martdev.kitchenrack/internal/util"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("kitchenrack_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to get connection string: %v", err)
	}

	testDB, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	migrationsPath := filepath.Join("..", "..", "..", "cmd", "migrate", "migrations")

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set dialect: %v", err)
	}

	if err := goose.Up(testDB, migrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	code := m.Run()

	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %v", err)
	}

	os.Exit(code)
}

// setupTest cleans the database between tests
func setupTest(t *testing.T) {
	_, err := testDB.Exec("TRUNCATE TABLE categories CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func TestCategoryStoreCreateCategory(t *testing.T) {
	setupTest(t)

	store := &CategoryStore{DB: testDB}
	ctx := context.Background()

	t.Run("should create a category", func(t *testing.T) {
		category := &Category{Name: "Cookware", Slug: "cookware"}

		if err := store.CreateCategory(ctx, category); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if category.ID == 0 {
			t.Error("expected category ID to be set")
		}
	})

	t.Run("should fail with duplicate slug", func(t *testing.T) {
		first := &Category{Name: "Bakeware", Slug: "bakeware"}
		if err := store.CreateCategory(ctx, first); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		second := &Category{Name: "Bakeware Again", Slug: "bakeware"}
		err := store.CreateCategory(ctx, second)

		if !errors.Is(err, util.ErrorDuplicateSlug) {
			t.Errorf("expected duplicate slug error, got %v", err)
		}
	})
}

func TestCategoryStoreHierarchy(t *testing.T) {
	setupTest(t)

	store := &CategoryStore{DB: testDB}
	ctx := context.Background()

	parent := &Category{Name: "Kitchen", Slug: "kitchen"}
	if err := store.CreateCategory(ctx, parent); err != nil {
		t.Fatalf("failed to seed parent: %v", err)
	}

	child := &Category{Name: "Knives", Slug: "knives", ParentID: &parent.ID}
	if err := store.CreateCategory(ctx, child); err != nil {
		t.Fatalf("failed to seed child: %v", err)
	}

	t.Run("should load children with the parent", func(t *testing.T) {
		loaded, err := store.GetCategoryByID(ctx, parent.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(loaded.Children) != 1 {
			t.Fatalf("expected 1 child, got %d", len(loaded.Children))
		}
		if loaded.Children[0].Slug != "knives" {
			t.Errorf("expected child slug knives, got %s", loaded.Children[0].Slug)
		}
	})

	t.Run("should orphan children when the parent is deleted", func(t *testing.T) {
		if err := store.DeleteCategory(ctx, parent.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		loaded, err := store.GetCategoryByID(ctx, child.ID)
		if err != nil {
			t.Fatalf("expected child to survive, got %v", err)
		}
		if loaded.ParentID != nil {
			t.Errorf("expected parent_id cleared, got %v", *loaded.ParentID)
		}
	})
}

func TestCategoryStoreUpdateAndList(t *testing.T) {
	setupTest(t)

	store := &CategoryStore{DB: testDB}
	ctx := context.Background()

	category := &Category{Name: "Utensils", Slug: "utensils"}
	if err := store.CreateCategory(ctx, category); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	t.Run("should update name and slug", func(t *testing.T) {
		category.Name = "Kitchen Utensils"
		category.Slug = "kitchen-utensils"

		if err := store.UpdateCategory(ctx, category); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		loaded, err := store.GetCategoryByID(ctx, category.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if loaded.Slug != "kitchen-utensils" {
			t.Errorf("expected updated slug, got %s", loaded.Slug)
		}
	})

	t.Run("should fail to update a missing category", func(t *testing.T) {
		missing := &Category{ID: 999999, Name: "Ghost", Slug: "ghost"}
		err := store.UpdateCategory(ctx, missing)

		if !errors.Is(err, util.ErrorNotFound) {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("should list all categories", func(t *testing.T) {
		categories, err := store.GetAllCategories(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(categories) != 1 {
			t.Errorf("expected 1 category, got %d", len(categories))
		}
	})
}
