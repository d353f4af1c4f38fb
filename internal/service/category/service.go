package category

import (
	"context"

	dbcategory "com.martdev.kitchenrack/internal/database/category"
	"go.uber.org/zap"
)

type CategoryRequestPayload struct {
	Name     string `json:"name" validate:"required,max=255"`
	Slug     string `json:"slug" validate:"required,max=255"`
	ParentID *int64 `json:"parent_id"`
}

type CategoryResponsePayload struct {
	ID       int64                     `json:"id"`
	Name     string                    `json:"name"`
	Slug     string                    `json:"slug"`
	ParentID *int64                    `json:"parent_id,omitempty"`
	Children []CategoryResponsePayload `json:"children,omitempty"`
}

type CategoryService interface {
	CreateCategory(ctx context.Context, req *CategoryRequestPayload) (*CategoryResponsePayload, error)
	GetCategoryByID(ctx context.Context, categoryID int64) (*CategoryResponsePayload, error)
	GetAllCategories(ctx context.Context) ([]CategoryResponsePayload, error)
	UpdateCategory(ctx context.Context, categoryID int64, req *CategoryRequestPayload) error
	DeleteCategory(ctx context.Context, categoryID int64) error
}

type Service struct {
	store  dbcategory.CategoryStorer
	logger *zap.SugaredLogger
}

func NewService(store dbcategory.CategoryStorer, logger *zap.SugaredLogger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) CreateCategory(ctx context.Context, req *CategoryRequestPayload) (*CategoryResponsePayload, error) {
	category := &dbcategory.Category{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.ParentID,
	}

	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	return toResponse(category), nil
}

func (s *Service) GetCategoryByID(ctx context.Context, categoryID int64) (*CategoryResponsePayload, error) {
	category, err := s.store.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toResponse(category), nil
}

func (s *Service) GetAllCategories(ctx context.Context) ([]CategoryResponsePayload, error) {
	categories, err := s.store.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]CategoryResponsePayload, 0, len(categories))
	for i := range categories {
		response = append(response, *toResponse(&categories[i]))
	}
	return response, nil
}

func (s *Service) UpdateCategory(ctx context.Context, categoryID int64, req *CategoryRequestPayload) error {
	category := &dbcategory.Category{
		ID:       categoryID,
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.ParentID,
	}
	return s.store.UpdateCategory(ctx, category)
}

func (s *Service) DeleteCategory(ctx context.Context, categoryID int64) error {
	return s.store.DeleteCategory(ctx, categoryID)
}

func toResponse(category *dbcategory.Category) *CategoryResponsePayload {
	response := &CategoryResponsePayload{
		ID:       category.ID,
		Name:     category.Name,
		Slug:     category.Slug,
		ParentID: category.ParentID,
	}
	for i := range category.Children {
		response.Children = append(response.Children, *toResponse(&category.Children[i]))
	}
	return response
}
