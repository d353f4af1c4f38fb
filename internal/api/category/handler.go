package category

import (
	"errors"
	"net/http"
	"strconv"

	categoryservice "com.martdev.kitchenrack/internal/service/category"
	"com.martdev.kitchenrack/internal/util"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	service categoryservice.CategoryService
	logger  *zap.SugaredLogger
}

func NewHandler(service categoryservice.CategoryService, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req categoryservice.CategoryRequestPayload

	if err := util.ReadJSON(w, r, &req); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	if err := util.Validate.Struct(req); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrorDuplicateSlug):
			util.ConflictErrorResponse(w, r, err, h.logger)
		default:
			util.InternalServerErrorResponse(w, r, err, h.logger)
		}
		return
	}

	if err := util.SendResponse(w, http.StatusCreated, "category created", category); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

func (h *Handler) getCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	category, err := h.service.GetCategoryByID(r.Context(), categoryID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrorNotFound):
			util.NotFoundErrorResponse(w, r, err, h.logger)
		default:
			util.InternalServerErrorResponse(w, r, err, h.logger)
		}
		return
	}

	if err := util.SendResponse(w, http.StatusOK, "category retrieved", category); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

func (h *Handler) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAllCategories(r.Context())
	if err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
		return
	}

	if err := util.SendResponse(w, http.StatusOK, "categories retrieved", categories); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
	}
}

func (h *Handler) updateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	var req categoryservice.CategoryRequestPayload

	if err := util.ReadJSON(w, r, &req); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	if err := util.Validate.Struct(req); err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	if err := h.service.UpdateCategory(r.Context(), categoryID, &req); err != nil {
		switch {
		case errors.Is(err, util.ErrorNotFound):
			util.NotFoundErrorResponse(w, r, err, h.logger)
		case errors.Is(err, util.ErrorDuplicateSlug):
			util.ConflictErrorResponse(w, r, err, h.logger)
		default:
			util.InternalServerErrorResponse(w, r, err, h.logger)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(chi.URLParam(r, "categoryID"), 10, 64)
	if err != nil {
		util.BadRequestErrorResponse(w, r, err, h.logger)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), categoryID); err != nil {
		util.InternalServerErrorResponse(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
