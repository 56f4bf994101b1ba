package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"go-blog-api/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCategoryRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, created_at FROM categories WHERE id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).AddRow(1, "Tech", now))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM subcategories WHERE category_id = $1 ORDER BY name`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id", "created_at"}).
			AddRow(3, "Go", 1, now).
			AddRow(4, "Rust", 1, now))

	category, err := repo.GetByID(1)

	assert.NoError(t, err)
	assert.Equal(t, "Tech", category.Name)
	assert.Len(t, category.Subcategories, 2)
	assert.Equal(t, "Go", category.Subcategories[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, created_at FROM categories ORDER BY name`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(1, "Tech", now).
			AddRow(2, "Travel", now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, category_id, created_at FROM subcategories ORDER BY name`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id", "created_at"}).
			AddRow(3, "Go", 1, now).
			AddRow(5, "Hiking", 2, now))

	categories, err := repo.List()

	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Len(t, categories[0].Subcategories, 1)
	assert.Equal(t, "Go", categories[0].Subcategories[0].Name)
	assert.Len(t, categories[1].Subcategories, 1)
	assert.Equal(t, "Hiking", categories[1].Subcategories[0].Name)
}

func TestCategoryRepository_CreateAndUpdate(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categories (name) VALUES ($1)`)).
			WithArgs("Tech").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

		category := &model.Category{Name: "Tech"}
		assert.NoError(t, repo.Create(category))
		assert.Equal(t, 1, category.ID)
	})

	t.Run("update", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE categories SET name = $1 WHERE id = $2`)).
			WithArgs("Technology", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(&model.Category{ID: 1, Name: "Technology"}))
	})
}

func TestCategoryRepository_Delete(t *testing.T) {
	t.Run("missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE id = $1`)).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(99), sql.ErrNoRows)
	})
}

func TestCategoryRepository_ExistsByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1 AND id <> $2)`)).
		WithArgs("Tech", 0).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsByName("Tech", 0)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestCategoryRepository_Subcategories(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO subcategories (name, category_id) VALUES ($1, $2)`)).
			WithArgs("Go", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, time.Now()))

		sub := &model.Subcategory{Name: "Go", CategoryID: 1}
		assert.NoError(t, repo.CreateSubcategory(sub))
		assert.Equal(t, 3, sub.ID)
	})

	t.Run("get by id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM subcategories WHERE id = $1`)).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id", "created_at"}).AddRow(3, "Go", 1, time.Now()))

		sub, err := repo.GetSubcategoryByID(3)
		assert.NoError(t, err)
		assert.Equal(t, 1, sub.CategoryID)
	})

	t.Run("exists within parent", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE name = $1 AND category_id = $2 AND id <> $3`)).
			WithArgs("Go", 1, 3).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.SubcategoryExists("Go", 1, 3)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("delete missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCategoryRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM subcategories WHERE id = $1`)).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteSubcategory(99), sql.ErrNoRows)
	})
}
