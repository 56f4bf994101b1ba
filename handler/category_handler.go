package handler

import (
	"errors"
	"go-blog-api/common"
	"go-blog-api/model"
	"go-blog-api/service"
	"net/http"
)

type CategoryHandler struct {
	service *service.CategoryService
}

func NewCategoryHandler(s *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) *common.AppError {
	categories, err := h.service.ListCategories()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
	}

	if categories == nil {
		categories = []*model.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": categories})
	return nil
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) *common.AppError {
	category, err := h.service.GetCategory(pathID(r))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": category})
	return nil
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CategoryRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	category, err := h.service.CreateCategory(req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"data": category})
	return nil
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CategoryRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	category, err := h.service.UpdateCategory(pathID(r), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, service.ErrCategoryExists):
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": category})
	return nil
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) *common.AppError {
	if err := h.service.DeleteCategory(pathID(r)); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "The category has been deleted successfully!"})
	return nil
}

func (h *CategoryHandler) CreateSubcategory(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SubcategoryRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	sub, err := h.service.CreateSubcategory(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, service.ErrSubcategoryExists):
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{"data": sub})
	return nil
}

func (h *CategoryHandler) UpdateSubcategory(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SubcategoryRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	sub, err := h.service.UpdateSubcategory(pathID(r), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubcategoryNotFound), errors.Is(err, service.ErrCategoryNotFound):
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, service.ErrSubcategoryExists):
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": sub})
	return nil
}

func (h *CategoryHandler) DeleteSubcategory(w http.ResponseWriter, r *http.Request) *common.AppError {
	if err := h.service.DeleteSubcategory(pathID(r)); err != nil {
		if errors.Is(err, service.ErrSubcategoryNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "The subcategory has been deleted successfully!"})
	return nil
}
