// file: model/request.go

package model

// RegisterRequest is the payload for creating a new account. Field presence
// is checked by the handler so the response message matches the API contract
// exactly ("All fields are required").
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	NickName  string `json:"nick_name"`
}

// LoginRequest authenticates by email or nickname.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// UpdateUserRequest is the payload for a partial user update. Pointer fields
// distinguish "absent" from "set to empty"; the validation middleware has
// already checked the raw body against the update schema by the time this is
// decoded.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	NickName  *string `json:"nick_name"`
	Password  *string `json:"password"`
}

// HasAnyField reports whether at least one updatable field is present.
func (r *UpdateUserRequest) HasAnyField() bool {
	return r.FirstName != nil || r.LastName != nil || r.Email != nil ||
		r.NickName != nil || r.Password != nil
}

// CreatePostRequest is the payload for publishing a post. The author is the
// authenticated identity, never a client-supplied field.
type CreatePostRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Image      string `json:"image"`
	CategoryID int    `json:"category_id"`
}

// UpdatePostRequest is the payload for a partial post update.
type UpdatePostRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Image      *string `json:"image"`
	CategoryID *int    `json:"category_id"`
}

// CategoryRequest creates or renames a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// SubcategoryRequest creates or updates a subcategory under a category.
type SubcategoryRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	CategoryID int    `json:"category_id" validate:"required,min=1"`
}

// ListMeta is the pagination envelope returned by list endpoints.
type ListMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}
