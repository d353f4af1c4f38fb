package product

import (
	"errors"
	"net/http"
	"strconv"

	productservice "com.martdev.kitchenrack/internal/service/product"
	"com.martdev.kitchenrack/internal/util"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	service productservice.ProductService
	logger  *zap.SugaredLogger
}

func NewHandler(service productservice.ProductService, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var req productservice.ProductRequestPayload

	if err := util.ReadJSON(w, r, &req); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	if err := util.Validate.Struct(req); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), &req)
	if err != nil {
		h.respondProductError(w, r, err)
		return
	}

	if err := util.SendResponse(w, http.StatusCreated, "Product created successfully", product); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

func (h *Handler) getProductHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	product, err := h.service.GetProductByID(r.Context(), productID)
	if err != nil {
		h.respondProductError(w, r, err)
		return
	}

	if err := util.SendResponse(w, http.StatusOK, "Product retrieved successfully", product); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

func (h *Handler) getProductBySlugHandler(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.respondProductError(w, r, err)
		return
	}

	if err := util.SendResponse(w, http.StatusOK, "Product retrieved successfully", product); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

func (h *Handler) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	if err := util.Validate.Struct(filter); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	list, err := h.service.GetProducts(r.Context(), filter)
	if err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
		return
	}

	if err := util.SendResponse(w, http.StatusOK, "Products retrieved successfully", list); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

func (h *Handler) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	var req productservice.ProductRequestPayload

	if err := util.ReadJSON(w, r, &req); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	if err := util.Validate.Struct(req); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	if err := h.service.UpdateProduct(r.Context(), productID, &req); err != nil {
		h.respondProductError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondProductError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, util.ErrorNotFound):
		util.NotFoundErrorResponse(w, r, err, h.logger)
	case errors.Is(err, util.ErrorDuplicateSlug), errors.Is(err, util.ErrorDuplicateSKU):
		util.ConflictErrorResponse(w, r, err, h.logger)
	case errors.Is(err, util.ErrorInvalidCategory):
		util.BadRequestErrorResponse(w, r, err, h.logger)
	default:
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

func filterFromQuery(r *http.Request) (productservice.ProductFilterPayload, error) {
	var filter productservice.ProductFilterPayload
	query := r.URL.Query()

	var err error
	if v := query.Get("page"); v != "" {
		if filter.Page, err = strconv.Atoi(v); err != nil {
			return filter, err
		}
	}
	if v := query.Get("limit"); v != "" {
		if filter.Limit, err = strconv.Atoi(v); err != nil {
			return filter, err
		}
	}
	filter.Search = query.Get("search")
	if v := query.Get("category_id"); v != "" {
		if filter.CategoryID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return filter, err
		}
	}
	if v := query.Get("min_price"); v != "" {
		minPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, err
		}
		filter.MinPrice = &minPrice
	}
	if v := query.Get("max_price"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, err
		}
		filter.MaxPrice = &maxPrice
	}
	if v := query.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return filter, err
		}
		filter.Featured = &featured
	}
	filter.Status = query.Get("status")
	filter.Brand = query.Get("brand")
	filter.SortBy = query.Get("sort_by")
	filter.SortOrder = query.Get("sort_order")

	return filter, nil
}
