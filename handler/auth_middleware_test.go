package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-blog-api/config"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.Init()
}

type mockUserRepository struct{ mock.Mock }

func (m *mockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}
func (m *mockUserRepository) GetByID(id int) (*model.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepository) GetByIDWithPosts(id int) (*model.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepository) FindByIdentifier(identifier string) (*model.User, error) {
	args := m.Called(identifier)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepository) ExistsByEmailOrNick(email, nickName string, excludeID int) (bool, error) {
	args := m.Called(email, nickName, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *mockUserRepository) List(page, limit int, search string) ([]*model.User, int, error) {
	args := m.Called(page, limit, search)
	if u := args.Get(0); u != nil {
		return u.([]*model.User), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}
func (m *mockUserRepository) Update(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}
func (m *mockUserRepository) SoftDelete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func newTokens(t *testing.T) *service.TokenService {
	t.Helper()
	tokens, err := service.NewTokenService(config.JWTConfig{SecretKey: "test-secret", Expires: time.Hour})
	assert.NoError(t, err)
	return tokens
}

func TestRequireAuth(t *testing.T) {
	tokens := newTokens(t)

	identityHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"user_id": r.Context().Value(UserIDKey),
			"role":    r.Context().Value(UserRoleKey),
		})
	})

	t.Run("missing header", func(t *testing.T) {
		m := NewAuthMiddleware(tokens, new(mockUserRepository))
		rr := httptest.NewRecorder()
		m.RequireAuth(identityHandler).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"NEED_SESSION"}`, rr.Body.String())
	})

	t.Run("malformed token", func(t *testing.T) {
		m := NewAuthMiddleware(tokens, new(mockUserRepository))
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rr := httptest.NewRecorder()
		m.RequireAuth(identityHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		var body map[string]string
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "NOT_SESSION", body["error"])
		assert.NotEmpty(t, body["message"])
	})

	t.Run("expired token", func(t *testing.T) {
		shortLived, err := service.NewTokenService(config.JWTConfig{SecretKey: "test-secret", Expires: time.Millisecond})
		assert.NoError(t, err)
		token, err := shortLived.Sign(1, "user")
		assert.NoError(t, err)
		time.Sleep(5 * time.Millisecond)

		m := NewAuthMiddleware(tokens, new(mockUserRepository))
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		m.RequireAuth(identityHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		var body map[string]string
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "NOT_SESSION", body["error"])
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		mockRepo := new(mockUserRepository)
		mockRepo.On("GetByID", 7).Return(nil, sql.ErrNoRows).Once()
		token, _ := tokens.Sign(7, "user")

		m := NewAuthMiddleware(tokens, mockRepo)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		m.RequireAuth(identityHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"NOT_SESSION","message":"user no longer exists"}`, rr.Body.String())
	})

	t.Run("identity comes from the database row", func(t *testing.T) {
		mockRepo := new(mockUserRepository)
		// Token says "user" but the row was promoted to admin since issuance.
		mockRepo.On("GetByID", 7).Return(&model.User{ID: 7, Role: "admin"}, nil).Once()
		token, _ := tokens.Sign(7, "user")

		m := NewAuthMiddleware(tokens, mockRepo)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		m.RequireAuth(identityHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"user_id":7,"role":"admin"}`, rr.Body.String())
	})

	t.Run("token without Bearer prefix is accepted", func(t *testing.T) {
		mockRepo := new(mockUserRepository)
		mockRepo.On("GetByID", 7).Return(&model.User{ID: 7, Role: "user"}, nil).Once()
		token, _ := tokens.Sign(7, "user")

		m := NewAuthMiddleware(tokens, mockRepo)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", token)
		rr := httptest.NewRecorder()
		m.RequireAuth(identityHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestRequireRole(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	withRole := func(role string, req *http.Request) *http.Request {
		return req.WithContext(context.WithValue(req.Context(), UserRoleKey, role))
	}

	t.Run("role in the allow-list passes", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := withRole("admin", httptest.NewRequest("DELETE", "/", nil))
		RequireRole("admin")(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("role outside the allow-list is denied", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := withRole("user", httptest.NewRequest("DELETE", "/", nil))
		RequireRole("admin")(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.JSONEq(t, `{"message":"Access denied: NOT_PERMISSIONS"}`, rr.Body.String())
	})

	t.Run("membership is exact, admin does not imply user", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := withRole("admin", httptest.NewRequest("GET", "/", nil))
		RequireRole("user")(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("missing identity", func(t *testing.T) {
		rr := httptest.NewRecorder()
		RequireRole("admin")(okHandler).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.JSONEq(t, `{"error":"NOT_PERMISSION"}`, rr.Body.String())
	})
}
