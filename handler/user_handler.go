package handler

import (
	"encoding/json"
	"errors"
	"go-blog-api/common"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/service"
	"net/http"
	"strconv"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// queryInt reads a numeric query parameter that validation has already
// checked. Absent or unparseable values come back as 0 so the service
// applies its defaults.
func queryInt(r *http.Request, name string) int {
	n, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0
	}
	return int(n)
}

// pathID reads the validated numeric id path parameter.
func pathID(r *http.Request) int {
	n, err := strconv.ParseFloat(r.PathValue("id"), 64)
	if err != nil {
		return 0
	}
	return int(n)
}

// ListUsers godoc
// @Summary      List users
// @Description  Pages through users, newest first, with an optional prefix search over name, email, and nickname.
// @Tags         users
// @Produce      json
// @Param        page   query int    false "Page number (default 1)"
// @Param        limit  query int    false "Page size (default 20, max 100)"
// @Param        search query string false "Prefix search term"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{} "Validation failed"
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) *common.AppError {
	page := queryInt(r, "page")
	limit := queryInt(r, "limit")
	search := r.URL.Query().Get("search")

	users, meta, err := h.service.ListUsers(page, limit, search)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
	}

	if users == nil {
		users = []*model.User{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": users, "meta": meta})
	return nil
}

// GetUser godoc
// @Summary      Get one user
// @Description  Returns a user with the posts they authored.
// @Tags         users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{} "Validation failed"
// @Failure      404  {object}  common.AppError "User not found"
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, err := h.service.GetUser(pathID(r))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": user})
	return nil
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Applies a partial update. At least one updatable field must be present.
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id   path int                     true "User ID"
// @Param        user body model.UpdateUserRequest true "Fields to change"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{} "Validation failed or duplicate email/nickname"
// @Failure      401  {object}  map[string]interface{} "Missing or invalid session"
// @Failure      404  {object}  common.AppError "User not found"
// @Router       /api/users/{id} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid request body", nil)
	}

	id := pathID(r)
	user, err := h.service.UpdateUser(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, service.ErrUserExists):
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
		}
	}

	logger.Log.WithField("user_id", id).Info("User updated")
	writeJSON(w, http.StatusOK, map[string]any{"data": user})
	return nil
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Soft-deletes a user. Admin only.
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]interface{} "Insufficient role"
// @Failure      404  {object}  common.AppError "User not found"
// @Router       /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	id := pathID(r)
	if err := h.service.DeleteUser(id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
	}

	logger.Log.WithField("user_id", id).Info("User deleted")
	writeJSON(w, http.StatusOK, map[string]string{"message": "The user has been deleted successfully!"})
	return nil
}
