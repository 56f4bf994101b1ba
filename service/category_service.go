package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"go-blog-api/model"
	"go-blog-api/repository"
	"time"
)

var (
	ErrCategoryNotFound    = errors.New("Category not found")
	ErrCategoryExists      = errors.New("Category already exists")
	ErrSubcategoryNotFound = errors.New("Subcategory not found")
	ErrSubcategoryExists   = errors.New("Subcategory already exists")
)

const (
	categoryListCacheKey = "categories:all"
	categoryCacheTTL     = 10 * time.Minute
)

// CategoryService handles the category/subcategory taxonomy. The full
// listing is served cache-aside from Redis and invalidated by every
// mutation, including subcategory mutations, since the listing embeds them.
type CategoryService struct {
	repo  repository.ICategoryRepository
	cache ICacheClient
}

func NewCategoryService(repo repository.ICategoryRepository, cache ICacheClient) *CategoryService {
	return &CategoryService{repo: repo, cache: cache}
}

func (s *CategoryService) ListCategories() ([]*model.Category, error) {
	ctx := context.Background()

	cached, err := s.cache.Get(ctx, categoryListCacheKey).Result()
	if err == nil {
		var categories []*model.Category
		if err := json.Unmarshal([]byte(cached), &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(categories); err == nil {
		s.cache.Set(ctx, categoryListCacheKey, data, categoryCacheTTL)
	}

	return categories, nil
}

func (s *CategoryService) GetCategory(id int) (*model.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) CreateCategory(name string) (*model.Category, error) {
	exists, err := s.repo.ExistsByName(name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryExists
	}

	category := &model.Category{Name: name}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}

	s.invalidateListCache()
	return category, nil
}

func (s *CategoryService) UpdateCategory(id int, name string) (*model.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	exists, err := s.repo.ExistsByName(name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryExists
	}

	category.Name = name
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}

	s.invalidateListCache()
	return category, nil
}

func (s *CategoryService) DeleteCategory(id int) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return err
	}

	s.invalidateListCache()
	return nil
}

func (s *CategoryService) CreateSubcategory(req *model.SubcategoryRequest) (*model.Subcategory, error) {
	if _, err := s.repo.GetByID(req.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	exists, err := s.repo.SubcategoryExists(req.Name, req.CategoryID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSubcategoryExists
	}

	sub := &model.Subcategory{Name: req.Name, CategoryID: req.CategoryID}
	if err := s.repo.CreateSubcategory(sub); err != nil {
		return nil, err
	}

	s.invalidateListCache()
	return sub, nil
}

func (s *CategoryService) UpdateSubcategory(id int, req *model.SubcategoryRequest) (*model.Subcategory, error) {
	sub, err := s.repo.GetSubcategoryByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubcategoryNotFound
		}
		return nil, err
	}

	if req.CategoryID != sub.CategoryID {
		if _, err := s.repo.GetByID(req.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	exists, err := s.repo.SubcategoryExists(req.Name, req.CategoryID, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSubcategoryExists
	}

	sub.Name = req.Name
	sub.CategoryID = req.CategoryID
	if err := s.repo.UpdateSubcategory(sub); err != nil {
		return nil, err
	}

	s.invalidateListCache()
	return sub, nil
}

func (s *CategoryService) DeleteSubcategory(id int) error {
	if err := s.repo.DeleteSubcategory(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSubcategoryNotFound
		}
		return err
	}

	s.invalidateListCache()
	return nil
}

func (s *CategoryService) invalidateListCache() {
	s.cache.Del(context.Background(), categoryListCacheKey)
}
