package service

import (
	"database/sql"
	"errors"
	"go-blog-api/model"
	"go-blog-api/repository"
)

var (
	ErrPostNotFound      = errors.New("Post not found")
	ErrAuthorNotExists   = errors.New("Author (author_id) does not exist")
	ErrCategoryNotExists = errors.New("Category (category_id) does not exist")
)

// PostService handles post CRUD. Reads always come back with the author
// and category embedded.
type PostService struct {
	postRepo     repository.IPostRepository
	userRepo     repository.IUserRepository
	categoryRepo repository.ICategoryRepository
}

func NewPostService(postRepo repository.IPostRepository, userRepo repository.IUserRepository, categoryRepo repository.ICategoryRepository) *PostService {
	return &PostService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *PostService) ListPosts(filter repository.PostFilter) ([]*model.Post, model.ListMeta, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	posts, total, err := s.postRepo.List(filter)
	if err != nil {
		return nil, model.ListMeta{}, err
	}
	return posts, model.ListMeta{Page: filter.Page, Limit: filter.Limit, Total: total}, nil
}

func (s *PostService) GetPost(id int) (*model.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// CreatePost publishes a post authored by the authenticated user. Author
// and category existence are verified first so the client gets a 400
// instead of a bare foreign-key violation.
func (s *PostService) CreatePost(authorID int, req *model.CreatePostRequest) (*model.Post, error) {
	if _, err := s.userRepo.GetByID(authorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAuthorNotExists
		}
		return nil, err
	}
	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotExists
		}
		return nil, err
	}

	post := &model.Post{
		Title:      req.Title,
		Content:    req.Content,
		Image:      req.Image,
		AuthorID:   authorID,
		CategoryID: req.CategoryID,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(post.ID)
}

// UpdatePost applies a partial update and returns the post with its
// includes refreshed.
func (s *PostService) UpdatePost(id int, req *model.UpdatePostRequest) (*model.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Image != nil {
		post.Image = *req.Image
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*req.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrCategoryNotExists
			}
			return nil, err
		}
		post.CategoryID = *req.CategoryID
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(id)
}

func (s *PostService) DeletePost(id int) error {
	if err := s.postRepo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}
