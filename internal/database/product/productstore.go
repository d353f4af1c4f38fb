package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"com.martdev.kitchenrack/internal/util"
	"github.com/lib/pq"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDraft    = "draft"
)

type Product struct {
	ID            int64
	Name          string
	Slug          string
	SKU           string
	Description   string
	Brand         string
	Status        string
	Featured      bool
	Price         float64
	SalePrice     *float64
	StockQuantity int
	HasVariants   bool
	CreatedAt     string
	CategoryIDs   []int64
	Images        []Image
	Variants      []Variant
	Attributes    []Attribute
}

type Image struct {
	ID           int64
	URL          string
	AltText      string
	DisplayOrder int
}

type Variant struct {
	ID        int64
	Name      string
	SKU       string
	Price     float64
	SalePrice *float64
	Stock     int
}

type Attribute struct {
	ID    int64
	Name  string
	Value string
}

type Filter struct {
	Search     string
	CategoryID int64
	MinPrice   *float64
	MaxPrice   *float64
	Featured   *bool
	Status     string
	Brand      string
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

var sortColumns = map[string]string{
	"created_at": "p.created_at",
	"price":      "p.price",
	"name":       "p.name",
}

type ProductStorer interface {
	CreateProduct(ctx context.Context, product *Product) error
	GetProductByID(ctx context.Context, productID int64) (*Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	GetProducts(ctx context.Context, filter Filter) ([]Product, int, error)
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, productID int64) error
}

type ProductStore struct {
	DB *sql.DB
}

// CreateProduct inserts the product together with its images, variants,
// attributes and category links in one transaction. Slug and SKU uniqueness
// come from constraints, not pre-checks.
func (p *ProductStore) CreateProduct(ctx context.Context, product *Product) error {
	return util.WithTransaction(p.DB, ctx, func(tx *sql.Tx) error {
		ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
		defer cancel()

		if len(product.CategoryIDs) > 0 {
			var count int
			if err := tx.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM categories WHERE id = ANY($1)`,
				pq.Array(product.CategoryIDs),
			).Scan(&count); err != nil {
				return fmt.Errorf("%w: %v", util.ErrorStorage, err)
			}
			if count != len(product.CategoryIDs) {
				return util.ErrorInvalidCategory
			}
		}

		product.HasVariants = len(product.Variants) > 0

		query := `
			INSERT INTO products (name, slug, sku, description, brand, status, featured, price, sale_price, stock_quantity, has_variants)
			VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_at
		`

		if err := tx.QueryRowContext(ctx, query,
			product.Name,
			product.Slug,
			product.SKU,
			product.Description,
			product.Brand,
			product.Status,
			product.Featured,
			product.Price,
			product.SalePrice,
			product.StockQuantity,
			product.HasVariants,
		).Scan(&product.ID, &product.CreatedAt); err != nil {
			return mapProductConstraint(err)
		}

		for _, categoryID := range product.CategoryIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)`,
				product.ID, categoryID,
			); err != nil {
				return fmt.Errorf("%w: %v", util.ErrorStorage, err)
			}
		}

		for i := range product.Images {
			image := &product.Images[i]
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO product_images (product_id, url, alt_text, display_order) VALUES ($1, $2, $3, $4) RETURNING id`,
				product.ID, image.URL, image.AltText, image.DisplayOrder,
			).Scan(&image.ID); err != nil {
				return fmt.Errorf("%w: %v", util.ErrorStorage, err)
			}
		}

		for i := range product.Variants {
			variant := &product.Variants[i]
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO product_variants (product_id, name, sku, price, sale_price, stock) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6) RETURNING id`,
				product.ID, variant.Name, variant.SKU, variant.Price, variant.SalePrice, variant.Stock,
			).Scan(&variant.ID); err != nil {
				return mapProductConstraint(err)
			}
		}

		for i := range product.Attributes {
			attribute := &product.Attributes[i]
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO product_attributes (product_id, name, value) VALUES ($1, $2, $3) RETURNING id`,
				product.ID, attribute.Name, attribute.Value,
			).Scan(&attribute.ID); err != nil {
				return fmt.Errorf("%w: %v", util.ErrorStorage, err)
			}
		}

		return nil
	})
}

func (p *ProductStore) GetProductByID(ctx context.Context, productID int64) (*Product, error) {
	query := `
		SELECT id, name, slug, COALESCE(sku, ''), description, brand, status, featured, price, sale_price, stock_quantity, has_variants, created_at
		FROM products WHERE id = $1
	`
	return p.getProduct(ctx, query, productID)
}

func (p *ProductStore) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	query := `
		SELECT id, name, slug, COALESCE(sku, ''), description, brand, status, featured, price, sale_price, stock_quantity, has_variants, created_at
		FROM products WHERE slug = $1
	`
	return p.getProduct(ctx, query, slug)
}

func (p *ProductStore) getProduct(ctx context.Context, query string, arg any) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	var product Product
	if err := p.DB.QueryRowContext(ctx, query, arg).Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.SKU,
		&product.Description,
		&product.Brand,
		&product.Status,
		&product.Featured,
		&product.Price,
		&product.SalePrice,
		&product.StockQuantity,
		&product.HasVariants,
		&product.CreatedAt,
	); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, util.ErrorNotFound
		default:
			return nil, fmt.Errorf("%w: %v", util.ErrorStorage, err)
		}
	}

	if err := p.loadRelations(ctx, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// GetProducts returns a filtered page plus the total match count for
// pagination metadata.
func (p *ProductStore) GetProducts(ctx context.Context, filter Filter) ([]Product, int, error) {
	where, args := buildWhere(filter)

	sortColumn, ok := sortColumns[filter.SortBy]
	if !ok {
		sortColumn = "p.created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	var total int
	countQuery := `SELECT COUNT(DISTINCT p.id) FROM products p ` + joinClause(filter) + where
	if err := p.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}

	query := `
		SELECT DISTINCT p.id, p.name, p.slug, COALESCE(p.sku, ''), p.description, p.brand, p.status, p.featured, p.price, p.sale_price, p.stock_quantity, p.has_variants, p.created_at
		FROM products p ` + joinClause(filter) + where +
		fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", sortColumn, sortOrder, len(args)+1, len(args)+2)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var product Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Slug,
			&product.SKU,
			&product.Description,
			&product.Brand,
			&product.Status,
			&product.Featured,
			&product.Price,
			&product.SalePrice,
			&product.StockQuantity,
			&product.HasVariants,
			&product.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", util.ErrorStorage, err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}

	for i := range products {
		if err := p.loadRelations(ctx, &products[i]); err != nil {
			return nil, 0, err
		}
	}

	return products, total, nil
}

func (p *ProductStore) UpdateProduct(ctx context.Context, product *Product) error {
	return util.WithTransaction(p.DB, ctx, func(tx *sql.Tx) error {
		ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
		defer cancel()

		query := `
			UPDATE products
			SET name = $1, slug = $2, sku = NULLIF($3, ''), description = $4, brand = $5, status = $6, featured = $7, price = $8, sale_price = $9, stock_quantity = $10
			WHERE id = $11 RETURNING id
		`

		if err := tx.QueryRowContext(ctx, query,
			product.Name,
			product.Slug,
			product.SKU,
			product.Description,
			product.Brand,
			product.Status,
			product.Featured,
			product.Price,
			product.SalePrice,
			product.StockQuantity,
			product.ID,
		).Scan(&product.ID); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return util.ErrorNotFound
			default:
				return mapProductConstraint(err)
			}
		}

		if product.CategoryIDs != nil {
			var count int
			if err := tx.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM categories WHERE id = ANY($1)`,
				pq.Array(product.CategoryIDs),
			).Scan(&count); err != nil {
				return fmt.Errorf("%w: %v", util.ErrorStorage, err)
			}
			if count != len(product.CategoryIDs) {
				return util.ErrorInvalidCategory
			}

			if _, err := tx.ExecContext(ctx,
				`DELETE FROM product_categories WHERE product_id = $1`, product.ID,
			); err != nil {
				return fmt.Errorf("%w: %v", util.ErrorStorage, err)
			}
			for _, categoryID := range product.CategoryIDs {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)`,
					product.ID, categoryID,
				); err != nil {
					return fmt.Errorf("%w: %v", util.ErrorStorage, err)
				}
			}
		}

		return nil
	})
}

func (p *ProductStore) DeleteProduct(ctx context.Context, productID int64) error {
	query := `
		DELETE FROM products WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	if _, err := p.DB.ExecContext(ctx, query, productID); err != nil {
		return fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}

	return nil
}

func (p *ProductStore) loadRelations(ctx context.Context, product *Product) error {
	categoryRows, err := p.DB.QueryContext(ctx,
		`SELECT category_id FROM product_categories WHERE product_id = $1`, product.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}
	defer categoryRows.Close()
	for categoryRows.Next() {
		var categoryID int64
		if err := categoryRows.Scan(&categoryID); err != nil {
			return fmt.Errorf("%w: %v", util.ErrorStorage, err)
		}
		product.CategoryIDs = append(product.CategoryIDs, categoryID)
	}
	if err := categoryRows.Err(); err != nil {
		return fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}

	imageRows, err := p.DB.QueryContext(ctx,
		`SELECT id, url, alt_text, display_order FROM product_images WHERE product_id = $1 ORDER BY display_order`, product.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}
	defer imageRows.Close()
	for imageRows.Next() {
		var image Image
		if err := imageRows.Scan(&image.ID, &image.URL, &image.AltText, &image.DisplayOrder); err != nil {
			return fmt.Errorf("%w: %v", util.ErrorStorage, err)
		}
		product.Images = append(product.Images, image)
	}
	if err := imageRows.Err(); err != nil {
		return fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}

	variantRows, err := p.DB.QueryContext(ctx,
		`SELECT id, name, COALESCE(sku, ''), price, sale_price, stock FROM product_variants WHERE product_id = $1 ORDER BY id`, product.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}
	defer variantRows.Close()
	for variantRows.Next() {
		var variant Variant
		if err := variantRows.Scan(&variant.ID, &variant.Name, &variant.SKU, &variant.Price, &variant.SalePrice, &variant.Stock); err != nil {
			return fmt.Errorf("%w: %v", util.ErrorStorage, err)
		}
		product.Variants = append(product.Variants, variant)
	}
	if err := variantRows.Err(); err != nil {
		return fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}

	attributeRows, err := p.DB.QueryContext(ctx,
		`SELECT id, name, value FROM product_attributes WHERE product_id = $1 ORDER BY id`, product.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrorStorage, err)
	}
	defer attributeRows.Close()
	for attributeRows.Next() {
		var attribute Attribute
		if err := attributeRows.Scan(&attribute.ID, &attribute.Name, &attribute.Value); err != nil {
			return fmt.Errorf("%w: %v", util.ErrorStorage, err)
		}
		product.Attributes = append(product.Attributes, attribute)
	}
	return attributeRows.Err()
}

func buildWhere(filter Filter) (string, []any) {
	var clauses []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		placeholder := arg("%" + filter.Search + "%")
		clauses = append(clauses, fmt.Sprintf("(p.name ILIKE %s OR p.description ILIKE %s)", placeholder, placeholder))
	}
	if filter.CategoryID != 0 {
		clauses = append(clauses, fmt.Sprintf("pc.category_id = %s", arg(filter.CategoryID)))
	}
	if filter.MinPrice != nil {
		clauses = append(clauses, fmt.Sprintf("p.price >= %s", arg(*filter.MinPrice)))
	}
	if filter.MaxPrice != nil {
		clauses = append(clauses, fmt.Sprintf("p.price <= %s", arg(*filter.MaxPrice)))
	}
	if filter.Featured != nil {
		clauses = append(clauses, fmt.Sprintf("p.featured = %s", arg(*filter.Featured)))
	}
	if filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf("p.status = %s", arg(filter.Status)))
	}
	if filter.Brand != "" {
		clauses = append(clauses, fmt.Sprintf("p.brand = %s", arg(filter.Brand)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func joinClause(filter Filter) string {
	if filter.CategoryID != 0 {
		return "JOIN product_categories pc ON pc.product_id = p.id "
	}
	return ""
}

func mapProductConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "products_slug_key":
			return util.ErrorDuplicateSlug
		case "products_sku_key", "product_variants_sku_key":
			return util.ErrorDuplicateSKU
		}
	}
	return fmt.Errorf("%w: %v", util.ErrorStorage, err)
}
