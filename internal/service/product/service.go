package product

import (
	"context"
	"strings"

	dbproduct "com.martdev.kitchenrack/internal/database/product"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ImagePayload struct {
	URL          string `json:"url" validate:"required,url"`
	AltText      string `json:"alt_text"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

type VariantPayload struct {
	Name      string   `json:"name" validate:"required,max=255"`
	SKU       string   `json:"sku" validate:"omitempty,max=64"`
	Price     float64  `json:"price" validate:"gte=0"`
	SalePrice *float64 `json:"sale_price" validate:"omitempty,gte=0"`
	Stock     int      `json:"stock" validate:"gte=0"`
}

type AttributePayload struct {
	Name  string `json:"name" validate:"required,max=255"`
	Value string `json:"value" validate:"required,max=255"`
}

type ProductRequestPayload struct {
	Name          string             `json:"name" validate:"required,max=255"`
	Slug          string             `json:"slug" validate:"required,max=255"`
	SKU           string             `json:"sku" validate:"omitempty,max=64"`
	Description   string             `json:"description"`
	Brand         string             `json:"brand" validate:"max=255"`
	Status        string             `json:"status" validate:"omitempty,oneof=active inactive draft"`
	Featured      bool               `json:"featured"`
	Price         float64            `json:"price" validate:"gte=0"`
	SalePrice     *float64           `json:"sale_price" validate:"omitempty,gte=0"`
	StockQuantity int                `json:"stock_quantity" validate:"gte=0"`
	Categories    []int64            `json:"categories" validate:"required,min=1"`
	Images        []ImagePayload     `json:"images" validate:"dive"`
	Variants      []VariantPayload   `json:"variants" validate:"dive"`
	Attributes    []AttributePayload `json:"attributes" validate:"dive"`
}

type ProductFilterPayload struct {
	Page       int      `json:"page" validate:"omitempty,gte=1"`
	Limit      int      `json:"limit" validate:"omitempty,gte=1,lte=50"`
	Search     string   `json:"search"`
	CategoryID int64    `json:"category_id"`
	MinPrice   *float64 `json:"min_price" validate:"omitempty,gte=0"`
	MaxPrice   *float64 `json:"max_price" validate:"omitempty,gte=0"`
	Featured   *bool    `json:"featured"`
	Status     string   `json:"status" validate:"omitempty,oneof=active inactive draft"`
	Brand      string   `json:"brand"`
	SortBy     string   `json:"sort_by" validate:"omitempty,oneof=created_at price name"`
	SortOrder  string   `json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

type ProductResponsePayload struct {
	ID               int64              `json:"id"`
	Name             string             `json:"name"`
	Slug             string             `json:"slug"`
	SKU              string             `json:"sku,omitempty"`
	Description      string             `json:"description,omitempty"`
	Brand            string             `json:"brand,omitempty"`
	Status           string             `json:"status"`
	Featured         bool               `json:"featured"`
	Price            float64            `json:"price"`
	SalePrice        *float64           `json:"sale_price,omitempty"`
	DisplayPrice     float64            `json:"display_price"`
	DisplaySalePrice *float64           `json:"display_sale_price,omitempty"`
	StockQuantity    int                `json:"stock_quantity"`
	HasVariants      bool               `json:"has_variants"`
	CreatedAt        string             `json:"created_at"`
	Categories       []int64            `json:"categories"`
	Images           []ImagePayload     `json:"images,omitempty"`
	Variants         []VariantPayload   `json:"variants,omitempty"`
	Attributes       []AttributePayload `json:"attributes,omitempty"`
}

type ProductListPayload struct {
	Products []ProductResponsePayload `json:"products"`
	Total    int                      `json:"total"`
	Page     int                      `json:"page"`
	Limit    int                      `json:"limit"`
}

type ProductService interface {
	CreateProduct(ctx context.Context, req *ProductRequestPayload) (*ProductResponsePayload, error)
	GetProductByID(ctx context.Context, productID int64) (*ProductResponsePayload, error)
	GetProductBySlug(ctx context.Context, slug string) (*ProductResponsePayload, error)
	GetProducts(ctx context.Context, filter ProductFilterPayload) (*ProductListPayload, error)
	UpdateProduct(ctx context.Context, productID int64, req *ProductRequestPayload) error
	DeleteProduct(ctx context.Context, productID int64) error
}

type Service struct {
	store  dbproduct.ProductStorer
	logger *zap.SugaredLogger
}

func NewService(store dbproduct.ProductStorer, logger *zap.SugaredLogger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) CreateProduct(ctx context.Context, req *ProductRequestPayload) (*ProductResponsePayload, error) {
	product := toModel(req)
	product.SKU = skuOrGenerated(req.SKU)

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	return toResponse(product), nil
}

func (s *Service) GetProductByID(ctx context.Context, productID int64) (*ProductResponsePayload, error) {
	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toResponse(product), nil
}

func (s *Service) GetProductBySlug(ctx context.Context, slug string) (*ProductResponsePayload, error) {
	product, err := s.store.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return toResponse(product), nil
}

func (s *Service) GetProducts(ctx context.Context, filter ProductFilterPayload) (*ProductListPayload, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	products, total, err := s.store.GetProducts(ctx, dbproduct.Filter{
		Search:     filter.Search,
		CategoryID: filter.CategoryID,
		MinPrice:   filter.MinPrice,
		MaxPrice:   filter.MaxPrice,
		Featured:   filter.Featured,
		Status:     filter.Status,
		Brand:      filter.Brand,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	response := &ProductListPayload{
		Products: make([]ProductResponsePayload, 0, len(products)),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}
	for i := range products {
		response.Products = append(response.Products, *toResponse(&products[i]))
	}

	return response, nil
}

func (s *Service) UpdateProduct(ctx context.Context, productID int64, req *ProductRequestPayload) error {
	product := toModel(req)
	product.ID = productID
	product.SKU = req.SKU
	return s.store.UpdateProduct(ctx, product)
}

func (s *Service) DeleteProduct(ctx context.Context, productID int64) error {
	return s.store.DeleteProduct(ctx, productID)
}

// skuOrGenerated keeps a caller-supplied SKU and otherwise mints one, the
// products table treats SKU as unique so it cannot simply be left empty for
// every SKU-less product.
func skuOrGenerated(sku string) string {
	if sku != "" {
		return sku
	}
	return "KR-" + strings.ToUpper(uuid.New().String()[:8])
}

func toModel(req *ProductRequestPayload) *dbproduct.Product {
	status := req.Status
	if status == "" {
		status = dbproduct.StatusDraft
	}

	product := &dbproduct.Product{
		Name:          req.Name,
		Slug:          req.Slug,
		SKU:           req.SKU,
		Description:   req.Description,
		Brand:         req.Brand,
		Status:        status,
		Featured:      req.Featured,
		Price:         req.Price,
		SalePrice:     req.SalePrice,
		StockQuantity: req.StockQuantity,
		CategoryIDs:   req.Categories,
	}

	for _, image := range req.Images {
		product.Images = append(product.Images, dbproduct.Image{
			URL:          image.URL,
			AltText:      image.AltText,
			DisplayOrder: image.DisplayOrder,
		})
	}
	for _, variant := range req.Variants {
		product.Variants = append(product.Variants, dbproduct.Variant{
			Name:      variant.Name,
			SKU:       variant.SKU,
			Price:     variant.Price,
			SalePrice: variant.SalePrice,
			Stock:     variant.Stock,
		})
	}
	for _, attribute := range req.Attributes {
		product.Attributes = append(product.Attributes, dbproduct.Attribute{
			Name:  attribute.Name,
			Value: attribute.Value,
		})
	}

	return product
}

func toResponse(product *dbproduct.Product) *ProductResponsePayload {
	displayPrice, displaySalePrice := computeDisplayPrices(product)

	response := &ProductResponsePayload{
		ID:               product.ID,
		Name:             product.Name,
		Slug:             product.Slug,
		SKU:              product.SKU,
		Description:      product.Description,
		Brand:            product.Brand,
		Status:           product.Status,
		Featured:         product.Featured,
		Price:            product.Price,
		SalePrice:        product.SalePrice,
		DisplayPrice:     displayPrice,
		DisplaySalePrice: displaySalePrice,
		StockQuantity:    product.StockQuantity,
		HasVariants:      product.HasVariants,
		CreatedAt:        product.CreatedAt,
		Categories:       product.CategoryIDs,
	}

	for _, image := range product.Images {
		response.Images = append(response.Images, ImagePayload{
			URL:          image.URL,
			AltText:      image.AltText,
			DisplayOrder: image.DisplayOrder,
		})
	}
	for _, variant := range product.Variants {
		response.Variants = append(response.Variants, VariantPayload{
			Name:      variant.Name,
			SKU:       variant.SKU,
			Price:     variant.Price,
			SalePrice: variant.SalePrice,
			Stock:     variant.Stock,
		})
	}
	for _, attribute := range product.Attributes {
		response.Attributes = append(response.Attributes, AttributePayload{
			Name:  attribute.Name,
			Value: attribute.Value,
		})
	}

	return response
}
