package service

import (
	"database/sql"
	"errors"
	"testing"

	"go-blog-api/model"
	"go-blog-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPostRepo struct{ mock.Mock }

func (m *mockPostRepo) Create(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}
func (m *mockPostRepo) GetByID(id int) (*model.Post, error) {
	args := m.Called(id)
	if p := args.Get(0); p != nil {
		return p.(*model.Post), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPostRepo) List(filter repository.PostFilter) ([]*model.Post, int, error) {
	args := m.Called(filter)
	if p := args.Get(0); p != nil {
		return p.([]*model.Post), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}
func (m *mockPostRepo) Update(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}
func (m *mockPostRepo) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) Create(category *model.Category) error {
	args := m.Called(category)
	return args.Error(0)
}
func (m *mockCategoryRepo) GetByID(id int) (*model.Category, error) {
	args := m.Called(id)
	if c := args.Get(0); c != nil {
		return c.(*model.Category), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCategoryRepo) List() ([]*model.Category, error) {
	args := m.Called()
	if c := args.Get(0); c != nil {
		return c.([]*model.Category), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCategoryRepo) Update(category *model.Category) error {
	args := m.Called(category)
	return args.Error(0)
}
func (m *mockCategoryRepo) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *mockCategoryRepo) ExistsByName(name string, excludeID int) (bool, error) {
	args := m.Called(name, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *mockCategoryRepo) CreateSubcategory(sub *model.Subcategory) error {
	args := m.Called(sub)
	return args.Error(0)
}
func (m *mockCategoryRepo) GetSubcategoryByID(id int) (*model.Subcategory, error) {
	args := m.Called(id)
	if s := args.Get(0); s != nil {
		return s.(*model.Subcategory), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCategoryRepo) UpdateSubcategory(sub *model.Subcategory) error {
	args := m.Called(sub)
	return args.Error(0)
}
func (m *mockCategoryRepo) DeleteSubcategory(id int) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *mockCategoryRepo) SubcategoryExists(name string, categoryID, excludeID int) (bool, error) {
	args := m.Called(name, categoryID, excludeID)
	return args.Bool(0), args.Error(1)
}

func intPtr(i int) *int { return &i }

func TestPostService_ListPosts(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		mockPosts := new(mockPostRepo)
		expected := repository.PostFilter{Page: 1, Limit: 20}
		mockPosts.On("List", expected).Return([]*model.Post{}, 0, nil).Once()

		postService := NewPostService(mockPosts, nil, nil)
		_, meta, err := postService.ListPosts(repository.PostFilter{})

		assert.NoError(t, err)
		assert.Equal(t, 1, meta.Page)
		assert.Equal(t, 20, meta.Limit)
		mockPosts.AssertExpectations(t)
	})

	t.Run("filters pass through", func(t *testing.T) {
		mockPosts := new(mockPostRepo)
		filter := repository.PostFilter{Page: 2, Limit: 5, Search: "go", AuthorID: 3, CategoryID: 1}
		mockPosts.On("List", filter).Return([]*model.Post{{ID: 9}}, 11, nil).Once()

		postService := NewPostService(mockPosts, nil, nil)
		posts, meta, err := postService.ListPosts(filter)

		assert.NoError(t, err)
		assert.Len(t, posts, 1)
		assert.Equal(t, 11, meta.Total)
	})
}

func TestPostService_CreatePost(t *testing.T) {
	req := &model.CreatePostRequest{Title: "Hello", Content: "World", Image: "img.png", CategoryID: 2}

	t.Run("success re-fetches the post with includes", func(t *testing.T) {
		mockPosts := new(mockPostRepo)
		mockUsers := new(mockUserRepo)
		mockCategories := new(mockCategoryRepo)

		mockUsers.On("GetByID", 1).Return(&model.User{ID: 1}, nil).Once()
		mockCategories.On("GetByID", 2).Return(&model.Category{ID: 2, Name: "Tech"}, nil).Once()
		mockPosts.On("Create", mock.AnythingOfType("*model.Post")).Run(func(args mock.Arguments) {
			args.Get(0).(*model.Post).ID = 9
		}).Return(nil).Once()
		full := &model.Post{ID: 9, Title: "Hello", Author: &model.User{ID: 1}, Category: &model.Category{ID: 2}}
		mockPosts.On("GetByID", 9).Return(full, nil).Once()

		postService := NewPostService(mockPosts, mockUsers, mockCategories)
		post, err := postService.CreatePost(1, req)

		assert.NoError(t, err)
		assert.Equal(t, full, post)
		mockPosts.AssertExpectations(t)
	})

	t.Run("unknown author", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockUsers.On("GetByID", 42).Return(nil, sql.ErrNoRows).Once()

		postService := NewPostService(new(mockPostRepo), mockUsers, new(mockCategoryRepo))
		_, err := postService.CreatePost(42, req)

		assert.ErrorIs(t, err, ErrAuthorNotExists)
	})

	t.Run("unknown category", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockCategories := new(mockCategoryRepo)
		mockUsers.On("GetByID", 1).Return(&model.User{ID: 1}, nil).Once()
		mockCategories.On("GetByID", 2).Return(nil, sql.ErrNoRows).Once()

		postService := NewPostService(new(mockPostRepo), mockUsers, mockCategories)
		_, err := postService.CreatePost(1, req)

		assert.ErrorIs(t, err, ErrCategoryNotExists)
	})
}

func TestPostService_UpdatePost(t *testing.T) {
	existing := func() *model.Post {
		return &model.Post{ID: 9, Title: "Old", Content: "Body", Image: "old.png", AuthorID: 1, CategoryID: 2}
	}

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		mockPosts := new(mockPostRepo)
		mockPosts.On("GetByID", 9).Return(existing(), nil).Once()
		var saved *model.Post
		mockPosts.On("Update", mock.AnythingOfType("*model.Post")).Run(func(args mock.Arguments) {
			saved = args.Get(0).(*model.Post)
		}).Return(nil).Once()
		mockPosts.On("GetByID", 9).Return(existing(), nil).Once()

		postService := NewPostService(mockPosts, nil, new(mockCategoryRepo))
		_, err := postService.UpdatePost(9, &model.UpdatePostRequest{Title: strPtr("New")})

		assert.NoError(t, err)
		assert.Equal(t, "New", saved.Title)
		assert.Equal(t, "Body", saved.Content)
		assert.Equal(t, 2, saved.CategoryID)
	})

	t.Run("category change is verified", func(t *testing.T) {
		mockPosts := new(mockPostRepo)
		mockCategories := new(mockCategoryRepo)
		mockPosts.On("GetByID", 9).Return(existing(), nil).Once()
		mockCategories.On("GetByID", 5).Return(nil, sql.ErrNoRows).Once()

		postService := NewPostService(mockPosts, nil, mockCategories)
		_, err := postService.UpdatePost(9, &model.UpdatePostRequest{CategoryID: intPtr(5)})

		assert.ErrorIs(t, err, ErrCategoryNotExists)
		mockPosts.AssertNotCalled(t, "Update")
	})

	t.Run("not found", func(t *testing.T) {
		mockPosts := new(mockPostRepo)
		mockPosts.On("GetByID", 99).Return(nil, sql.ErrNoRows).Once()

		postService := NewPostService(mockPosts, nil, nil)
		_, err := postService.UpdatePost(99, &model.UpdatePostRequest{})

		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockPosts := new(mockPostRepo)
		mockPosts.On("Delete", 9).Return(nil).Once()

		postService := NewPostService(mockPosts, nil, nil)
		assert.NoError(t, postService.DeletePost(9))
	})

	t.Run("not found", func(t *testing.T) {
		mockPosts := new(mockPostRepo)
		mockPosts.On("Delete", 99).Return(sql.ErrNoRows).Once()

		postService := NewPostService(mockPosts, nil, nil)
		assert.ErrorIs(t, postService.DeletePost(99), ErrPostNotFound)
	})

	t.Run("repository error passes through", func(t *testing.T) {
		mockPosts := new(mockPostRepo)
		dbErr := errors.New("database error")
		mockPosts.On("Delete", 9).Return(dbErr).Once()

		postService := NewPostService(mockPosts, nil, nil)
		assert.Equal(t, dbErr, postService.DeletePost(9))
	})
}
