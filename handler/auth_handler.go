package handler

import (
	"encoding/json"
	"errors"
	"go-blog-api/common"
	"go-blog-api/model"
	"go-blog-api/service"
	"net/http"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates an account and returns the user with a signed session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user body model.RegisterRequest true "New account details"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  common.AppError "Missing fields or duplicate email/nickname"
// @Failure      500  {object}  common.AppError
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid request body", nil)
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" || req.NickName == "" {
		return common.NewAppError(http.StatusBadRequest, "All fields are required", nil)
	}

	user, token, err := h.service.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"data": user, "token": token})
	return nil
}

// Login godoc
// @Summary      Log in
// @Description  Authenticates by email or nickname and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "Email or nickname plus password"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  common.AppError "Missing identifier or password"
// @Failure      401  {object}  common.AppError "Invalid credentials"
// @Failure      500  {object}  common.AppError
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid request body", nil)
	}

	if req.Identifier == "" || req.Password == "" {
		return common.NewAppError(http.StatusBadRequest, "identifier and password are required", nil)
	}

	user, token, err := h.service.Login(req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewAppError(http.StatusUnauthorized, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, err.Error(), err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": user, "token": token})
	return nil
}
