package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"com.martdev.kitchenrack/internal/util"
	"github.com/lib/pq"
)

type Category struct {
	ID        int64
	Name      string
	Slug      string
	ParentID  *int64
	CreatedAt string
	Children  []Category
}

type CategoryStorer interface {
	CreateCategory(ctx context.Context, category *Category) error
	GetCategoryByID(ctx context.Context, categoryID int64) (*Category, error)
	GetAllCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, categoryID int64) error
}

type CategoryStore struct {
	DB *sql.DB
}

func (c *CategoryStore) CreateCategory(ctx context.Context, category *Category) error {
	query := `
		INSERT INTO categories (name, slug, parent_id) VALUES ($1, $2, $3) RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	if err := c.DB.QueryRowContext(ctx, query, category.Name, category.Slug, category.ParentID).Scan(
		&category.ID,
		&category.CreatedAt,
	); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return util.ErrorDuplicateSlug
		}
		return fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}

	return nil
}

func (c *CategoryStore) GetCategoryByID(ctx context.Context, categoryID int64) (*Category, error) {
	query := `
		SELECT id, name, slug, parent_id, created_at FROM categories WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	var category Category
	if err := c.DB.QueryRowContext(ctx, query, categoryID).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.ParentID,
		&category.CreatedAt,
	); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, util.ErrorNotFound
		default:
			return nil, fmt.Errorf("%w: %v", util.ErrorStorage, err)
		}
	}

	children, err := c.getChildren(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	category.Children = children

	return &category, nil
}

func (c *CategoryStore) GetAllCategories(ctx context.Context) ([]Category, error) {
	query := `
		SELECT id, name, slug, parent_id, created_at FROM categories ORDER BY name
	`

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	rows, err := c.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.ParentID,
			&category.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrorStorage, err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (c *CategoryStore) UpdateCategory(ctx context.Context, category *Category) error {
	query := `
		UPDATE categories SET name = $1, slug = $2, parent_id = $3 WHERE id = $4 RETURNING id
	`

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	if err := c.DB.QueryRowContext(ctx, query, category.Name, category.Slug, category.ParentID, category.ID).Scan(
		&category.ID,
	); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return util.ErrorNotFound
		default:
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return util.ErrorDuplicateSlug
			}
			return fmt.Errorf("%w: %v", util.ErrorStorage, err)
		}
	}

	return nil
}

func (c *CategoryStore) DeleteCategory(ctx context.Context, categoryID int64) error {
	query := `
		DELETE FROM categories WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	if _, err := c.DB.ExecContext(ctx, query, categoryID); err != nil {
		return fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}

	return nil
}

func (c *CategoryStore) getChildren(ctx context.Context, parentID int64) ([]Category, error) {
	query := `
		SELECT id, name, slug, parent_id, created_at FROM categories WHERE parent_id = $1 ORDER BY name
	`

	rows, err := c.DB.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}
	defer rows.Close()

	var children []Category
	for rows.Next() {
		var child Category
		if err := rows.Scan(
			&child.ID,
			&child.Name,
			&child.Slug,
			&child.ParentID,
			&child.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrorStorage, err)
		}
		children = append(children, child)
	}

	return children, rows.Err()
}
