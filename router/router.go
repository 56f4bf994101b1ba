package router

import (
	"go-blog-api/handler"
	"go-blog-api/validation"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "go-blog-api/docs"
)

// chain wraps h with the given middlewares; the first listed runs first.
func chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// NewRouter wires every route with its pipeline: validation first, then
// authentication, then the role guard, then the handler. Each stage writes
// its own response and stops the chain on failure.
func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	categoryHandler *handler.CategoryHandler,
	auth *handler.AuthMiddleware,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Auth
	mux.Handle("POST /api/auth/register", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("POST /api/auth/login", handler.ErrorHandlingMiddleware(authHandler.Login))

	// Users
	mux.Handle("GET /api/users", chain(
		handler.ErrorHandlingMiddleware(userHandler.ListUsers),
		validation.Query(validation.ListUsersSchema),
	))
	mux.Handle("GET /api/users/{id}", chain(
		handler.ErrorHandlingMiddleware(userHandler.GetUser),
		validation.Params(validation.UserIDSchema),
	))
	mux.Handle("PUT /api/users/{id}", chain(
		handler.ErrorHandlingMiddleware(userHandler.UpdateUser),
		validation.UpdateUserBody,
		auth.RequireAuth,
	))
	mux.Handle("DELETE /api/users/{id}", chain(
		handler.ErrorHandlingMiddleware(userHandler.DeleteUser),
		validation.Params(validation.UserIDSchema),
		auth.RequireAuth,
		handler.RequireRole("admin"),
	))

	// Posts
	mux.Handle("GET /api/posts", chain(
		handler.ErrorHandlingMiddleware(postHandler.ListPosts),
		validation.Query(validation.ListPostsSchema),
	))
	mux.Handle("GET /api/posts/{id}", chain(
		handler.ErrorHandlingMiddleware(postHandler.GetPost),
		validation.Params(validation.EntityIDSchema),
	))
	mux.Handle("POST /api/posts", chain(
		handler.ErrorHandlingMiddleware(postHandler.CreatePost),
		auth.RequireAuth,
	))
	mux.Handle("PUT /api/posts/{id}", chain(
		handler.ErrorHandlingMiddleware(postHandler.UpdatePost),
		validation.Params(validation.EntityIDSchema),
		auth.RequireAuth,
	))
	mux.Handle("DELETE /api/posts/{id}", chain(
		handler.ErrorHandlingMiddleware(postHandler.DeletePost),
		validation.Params(validation.EntityIDSchema),
		auth.RequireAuth,
	))

	// Categories (mutations are admin only)
	mux.Handle("GET /api/categories", handler.ErrorHandlingMiddleware(categoryHandler.ListCategories))
	mux.Handle("GET /api/categories/{id}", chain(
		handler.ErrorHandlingMiddleware(categoryHandler.GetCategory),
		validation.Params(validation.EntityIDSchema),
	))
	mux.Handle("POST /api/categories", chain(
		handler.ErrorHandlingMiddleware(categoryHandler.CreateCategory),
		auth.RequireAuth,
		handler.RequireRole("admin"),
	))
	mux.Handle("PUT /api/categories/{id}", chain(
		handler.ErrorHandlingMiddleware(categoryHandler.UpdateCategory),
		validation.Params(validation.EntityIDSchema),
		auth.RequireAuth,
		handler.RequireRole("admin"),
	))
	mux.Handle("DELETE /api/categories/{id}", chain(
		handler.ErrorHandlingMiddleware(categoryHandler.DeleteCategory),
		validation.Params(validation.EntityIDSchema),
		auth.RequireAuth,
		handler.RequireRole("admin"),
	))

	// Subcategories (mutations are admin only)
	mux.Handle("POST /api/subcategories", chain(
		handler.ErrorHandlingMiddleware(categoryHandler.CreateSubcategory),
		auth.RequireAuth,
		handler.RequireRole("admin"),
	))
	mux.Handle("PUT /api/subcategories/{id}", chain(
		handler.ErrorHandlingMiddleware(categoryHandler.UpdateSubcategory),
		validation.Params(validation.EntityIDSchema),
		auth.RequireAuth,
		handler.RequireRole("admin"),
	))
	mux.Handle("DELETE /api/subcategories/{id}", chain(
		handler.ErrorHandlingMiddleware(categoryHandler.DeleteSubcategory),
		validation.Params(validation.EntityIDSchema),
		auth.RequireAuth,
		handler.RequireRole("admin"),
	))

	return mux
}
