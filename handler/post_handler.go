package handler

import (
	"encoding/json"
	"errors"
	"go-blog-api/common"
	"go-blog-api/model"
	"go-blog-api/repository"
	"go-blog-api/service"
	"net/http"
)

type PostHandler struct {
	service *service.PostService
}

func NewPostHandler(s *service.PostService) *PostHandler {
	return &PostHandler{service: s}
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) *common.AppError {
	filter := repository.PostFilter{
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
		Search:     r.URL.Query().Get("search"),
		AuthorID:   queryInt(r, "author_id"),
		CategoryID: queryInt(r, "category_id"),
	}

	posts, meta, err := h.service.ListPosts(filter)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
	}

	if posts == nil {
		posts = []*model.Post{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": posts, "meta": meta})
	return nil
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) *common.AppError {
	post, err := h.service.GetPost(pathID(r))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": post})
	return nil
}

// CreatePost publishes a post authored by the authenticated identity.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) *common.AppError {
	authorID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid request body", nil)
	}

	if req.Title == "" || req.Content == "" || req.Image == "" || req.CategoryID == 0 {
		return common.NewAppError(http.StatusBadRequest, "title, content, image, author_id and category_id are required", nil)
	}

	post, err := h.service.CreatePost(authorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthorNotExists), errors.Is(err, service.ErrCategoryNotExists):
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{"data": post})
	return nil
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid request body", nil)
	}

	post, err := h.service.UpdatePost(pathID(r), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, service.ErrCategoryNotExists):
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": post})
	return nil
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) *common.AppError {
	if err := h.service.DeletePost(pathID(r)); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "The post has been deleted successfully!"})
	return nil
}
