// file: repository/category_repository.go

package repository

import (
	"database/sql"
	"go-blog-api/model"
)

// ICategoryRepository defines the contract for category and subcategory
// persistence. Category reads include their subcategories.
type ICategoryRepository interface {
	Create(category *model.Category) error
	GetByID(id int) (*model.Category, error)
	List() ([]*model.Category, error)
	Update(category *model.Category) error
	Delete(id int) error
	ExistsByName(name string, excludeID int) (bool, error)

	CreateSubcategory(sub *model.Subcategory) error
	GetSubcategoryByID(id int) (*model.Subcategory, error)
	UpdateSubcategory(sub *model.Subcategory) error
	DeleteSubcategory(id int) error
	SubcategoryExists(name string, categoryID, excludeID int) (bool, error)
}

type CategoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(category *model.Category) error {
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING id, created_at`
	return r.DB.QueryRow(query, category.Name).Scan(&category.ID, &category.CreatedAt)
}

func (r *CategoryRepository) GetByID(id int) (*model.Category, error) {
	category := &model.Category{}
	query := `SELECT id, name, created_at FROM categories WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&category.ID, &category.Name, &category.CreatedAt)
	if err != nil {
		return nil, err
	}

	subs, err := r.subcategoriesFor(id)
	if err != nil {
		return nil, err
	}
	category.Subcategories = subs
	return category, nil
}

func (r *CategoryRepository) List() ([]*model.Category, error) {
	query := `SELECT id, name, created_at FROM categories ORDER BY name`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*model.Category
	byID := map[int]*model.Category{}
	for rows.Next() {
		category := &model.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
		byID[category.ID] = category
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subQuery := `SELECT id, name, category_id, created_at FROM subcategories ORDER BY name`
	subRows, err := r.DB.Query(subQuery)
	if err != nil {
		return nil, err
	}
	defer subRows.Close()

	for subRows.Next() {
		sub := &model.Subcategory{}
		if err := subRows.Scan(&sub.ID, &sub.Name, &sub.CategoryID, &sub.CreatedAt); err != nil {
			return nil, err
		}
		if parent, ok := byID[sub.CategoryID]; ok {
			parent.Subcategories = append(parent.Subcategories, sub)
		}
	}
	return categories, subRows.Err()
}

func (r *CategoryRepository) Update(category *model.Category) error {
	query := `UPDATE categories SET name = $1 WHERE id = $2`
	_, err := r.DB.Exec(query, category.Name, category.ID)
	return err
}

func (r *CategoryRepository) Delete(id int) error {
	query := `DELETE FROM categories WHERE id = $1`
	result, err := r.DB.Exec(query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *CategoryRepository) ExistsByName(name string, excludeID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1 AND id <> $2)`
	var exists bool
	err := r.DB.QueryRow(query, name, excludeID).Scan(&exists)
	return exists, err
}

func (r *CategoryRepository) subcategoriesFor(categoryID int) ([]*model.Subcategory, error) {
	query := `SELECT id, name, category_id, created_at FROM subcategories WHERE category_id = $1 ORDER BY name`
	rows, err := r.DB.Query(query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*model.Subcategory
	for rows.Next() {
		sub := &model.Subcategory{}
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.CategoryID, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *CategoryRepository) CreateSubcategory(sub *model.Subcategory) error {
	query := `INSERT INTO subcategories (name, category_id) VALUES ($1, $2) RETURNING id, created_at`
	return r.DB.QueryRow(query, sub.Name, sub.CategoryID).Scan(&sub.ID, &sub.CreatedAt)
}

func (r *CategoryRepository) GetSubcategoryByID(id int) (*model.Subcategory, error) {
	sub := &model.Subcategory{}
	query := `SELECT id, name, category_id, created_at FROM subcategories WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&sub.ID, &sub.Name, &sub.CategoryID, &sub.CreatedAt)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *CategoryRepository) UpdateSubcategory(sub *model.Subcategory) error {
	query := `UPDATE subcategories SET name = $1, category_id = $2 WHERE id = $3`
	_, err := r.DB.Exec(query, sub.Name, sub.CategoryID, sub.ID)
	return err
}

func (r *CategoryRepository) DeleteSubcategory(id int) error {
	query := `DELETE FROM subcategories WHERE id = $1`
	result, err := r.DB.Exec(query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SubcategoryExists checks the (name, category) pair that the unique
// constraint enforces, for the friendlier pre-check error.
func (r *CategoryRepository) SubcategoryExists(name string, categoryID, excludeID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM subcategories WHERE name = $1 AND category_id = $2 AND id <> $3)`
	var exists bool
	err := r.DB.QueryRow(query, name, categoryID, excludeID).Scan(&exists)
	return exists, err
}
