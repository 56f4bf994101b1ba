package service

import (
	"database/sql"
	"errors"
	"go-blog-api/model"
	"go-blog-api/repository"
)

var ErrUserNotFound = errors.New("User not found")

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// UserService handles user listing, lookup, update, and removal.
type UserService struct {
	userRepo repository.IUserRepository
	auth     *AuthService
}

func NewUserService(userRepo repository.IUserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// ListUsers pages through users, newest first. Out-of-range paging values
// fall back to the defaults (page 1, 20 per page, capped at 100).
func (s *UserService) ListUsers(page, limit int, search string) ([]*model.User, model.ListMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	users, total, err := s.userRepo.List(page, limit, search)
	if err != nil {
		return nil, model.ListMeta{}, err
	}
	return users, model.ListMeta{Page: page, Limit: limit, Total: total}, nil
}

// GetUser returns a user with their authored posts.
func (s *UserService) GetUser(id int) (*model.User, error) {
	user, err := s.userRepo.GetByIDWithPosts(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update. When the email or nickname changes,
// the best-effort uniqueness pre-check runs against all other live users;
// a present password is re-hashed before storage.
func (s *UserService) UpdateUser(id int, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != nil || req.NickName != nil {
		email := user.Email
		if req.Email != nil {
			email = *req.Email
		}
		nickName := user.NickName
		if req.NickName != nil {
			nickName = *req.NickName
		}

		exists, err := s.userRepo.ExistsByEmailOrNick(email, nickName, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUserExists
		}
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.NickName != nil {
		user.NickName = *req.NickName
	}
	if req.Password != nil {
		hashed, err := s.auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser soft-deletes the user.
func (s *UserService) DeleteUser(id int) error {
	if err := s.userRepo.SoftDelete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
