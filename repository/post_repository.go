package repository

import (
	"database/sql"
	"fmt"
	"go-blog-api/logger"
	"go-blog-api/model"
	"strings"

	"github.com/sirupsen/logrus"
)

// PostFilter narrows a post listing. Zero values mean "not filtered".
type PostFilter struct {
	Page       int
	Limit      int
	Search     string
	AuthorID   int
	CategoryID int
}

// IPostRepository defines the contract for post persistence. Reads always
// join the author (without the password hash) and the category.
type IPostRepository interface {
	Create(post *model.Post) error
	GetByID(id int) (*model.Post, error)
	List(filter PostFilter) ([]*model.Post, int, error)
	Update(post *model.Post) error
	Delete(id int) error
}

type PostRepository struct {
	DB *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{DB: db}
}

const postSelect = `SELECT p.id, p.title, p.content, p.image, p.author_id, p.category_id, p.created_at, p.updated_at,
	u.id, u.first_name, u.last_name, u.email, u.role, u.nick_name, u.created_at, u.updated_at,
	c.id, c.name, c.created_at
	FROM posts p
	JOIN users u ON u.id = p.author_id
	JOIN categories c ON c.id = p.category_id`

func scanPost(scanner interface{ Scan(...any) error }) (*model.Post, error) {
	post := &model.Post{Author: &model.User{}, Category: &model.Category{}}
	err := scanner.Scan(
		&post.ID, &post.Title, &post.Content, &post.Image, &post.AuthorID, &post.CategoryID,
		&post.CreatedAt, &post.UpdatedAt,
		&post.Author.ID, &post.Author.FirstName, &post.Author.LastName, &post.Author.Email,
		&post.Author.Role, &post.Author.NickName, &post.Author.CreatedAt, &post.Author.UpdatedAt,
		&post.Category.ID, &post.Category.Name, &post.Category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostRepository) Create(post *model.Post) error {
	log := logger.Log.WithFields(logrus.Fields{
		"author_id":   post.AuthorID,
		"category_id": post.CategoryID,
	})
	log.Info("Executing query to create a new post")

	query := `INSERT INTO posts (title, content, image, author_id, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query, post.Title, post.Content, post.Image, post.AuthorID, post.CategoryID).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create post query")
		return err
	}
	return nil
}

func (r *PostRepository) GetByID(id int) (*model.Post, error) {
	query := postSelect + ` WHERE p.id = $1`
	return scanPost(r.DB.QueryRow(query, id))
}

// List returns one page of posts plus the total match count. Title matches
// by prefix, content by substring.
func (r *PostRepository) List(filter PostFilter) ([]*model.Post, int, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Search != "" {
		args = append(args, filter.Search+"%")
		titleArg := len(args)
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(p.title ILIKE $%d OR p.content ILIKE $%d)", titleArg, len(args)))
	}
	if filter.AuthorID > 0 {
		args = append(args, filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT count(*) FROM posts p` + where
	if err := r.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		logger.Log.WithError(err).Error("Failed to count posts")
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf("%s%s ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d",
		postSelect, where, len(args)-1, len(args))

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute list posts query")
		return nil, 0, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}
	return posts, total, rows.Err()
}

func (r *PostRepository) Update(post *model.Post) error {
	query := `UPDATE posts
		SET title = $1, content = $2, image = $3, category_id = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at`
	return r.DB.QueryRow(query, post.Title, post.Content, post.Image, post.CategoryID, post.ID).
		Scan(&post.UpdatedAt)
}

func (r *PostRepository) Delete(id int) error {
	query := `DELETE FROM posts WHERE id = $1`
	result, err := r.DB.Exec(query, id)
	if err != nil {
		logger.Log.WithError(err).WithField("post_id", id).Error("Failed to execute delete post query")
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
