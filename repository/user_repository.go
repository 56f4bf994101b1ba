package repository

import (
	"database/sql"
	"go-blog-api/model"
)

// IUserRepository defines the contract for user persistence. Soft-deleted
// rows are invisible to every method.
type IUserRepository interface {
	Create(user *model.User) error
	GetByID(id int) (*model.User, error)
	GetByIDWithPosts(id int) (*model.User, error)
	FindByIdentifier(identifier string) (*model.User, error)
	ExistsByEmailOrNick(email, nickName string, excludeID int) (bool, error)
	List(page, limit int, search string) ([]*model.User, int, error)
	Update(user *model.User) error
	SoftDelete(id int) error
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, first_name, last_name, email, password, role, nick_name, created_at, updated_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.Password, &user.Role, &user.NickName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) Create(user *model.User) error {
	query := `INSERT INTO users (first_name, last_name, email, password, nick_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, role, created_at, updated_at`
	return r.DB.QueryRow(query, user.FirstName, user.LastName, user.Email, user.Password, user.NickName).
		Scan(&user.ID, &user.Role, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) GetByID(id int) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	return scanUser(r.DB.QueryRow(query, id))
}

// GetByIDWithPosts loads a user together with the posts they authored,
// newest first.
func (r *UserRepository) GetByIDWithPosts(id int) (*model.User, error) {
	user, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, title, image, created_at FROM posts WHERE author_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p model.PostSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.Image, &p.CreatedAt); err != nil {
			return nil, err
		}
		user.Posts = append(user.Posts, &p)
	}
	return user, rows.Err()
}

// FindByIdentifier matches the login identifier against email or nickname.
func (r *UserRepository) FindByIdentifier(identifier string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE (email = $1 OR nick_name = $1) AND deleted_at IS NULL`
	return scanUser(r.DB.QueryRow(query, identifier))
}

// ExistsByEmailOrNick reports whether another live user already holds the
// given email or nickname. excludeID skips the user being updated; pass 0
// at registration.
func (r *UserRepository) ExistsByEmailOrNick(email, nickName string, excludeID int) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM users
		WHERE (email = $1 OR nick_name = $2) AND id <> $3 AND deleted_at IS NULL)`
	var exists bool
	err := r.DB.QueryRow(query, email, nickName, excludeID).Scan(&exists)
	return exists, err
}

// List returns one page of users plus the total match count. search is a
// prefix match over name, email, and nickname.
func (r *UserRepository) List(page, limit int, search string) ([]*model.User, int, error) {
	offset := (page - 1) * limit

	var (
		rows  *sql.Rows
		total int
		err   error
	)

	if search != "" {
		pattern := search + "%"
		countQuery := `SELECT count(*) FROM users
			WHERE deleted_at IS NULL
			AND (first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR nick_name ILIKE $1)`
		if err = r.DB.QueryRow(countQuery, pattern).Scan(&total); err != nil {
			return nil, 0, err
		}

		query := `SELECT ` + userColumns + ` FROM users
			WHERE deleted_at IS NULL
			AND (first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR nick_name ILIKE $1)
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err = r.DB.Query(query, pattern, limit, offset)
	} else {
		countQuery := `SELECT count(*) FROM users WHERE deleted_at IS NULL`
		if err = r.DB.QueryRow(countQuery).Scan(&total); err != nil {
			return nil, 0, err
		}

		query := `SELECT ` + userColumns + ` FROM users
			WHERE deleted_at IS NULL
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		rows, err = r.DB.Query(query, limit, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user := &model.User{}
		if err := rows.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
			&user.Password, &user.Role, &user.NickName, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) Update(user *model.User) error {
	query := `UPDATE users
		SET first_name = $1, last_name = $2, email = $3, password = $4, nick_name = $5, updated_at = now()
		WHERE id = $6 AND deleted_at IS NULL
		RETURNING updated_at`
	return r.DB.QueryRow(query, user.FirstName, user.LastName, user.Email,
		user.Password, user.NickName, user.ID).Scan(&user.UpdatedAt)
}

// SoftDelete hides the user without removing the row, so authored posts
// keep a valid foreign key.
func (r *UserRepository) SoftDelete(id int) error {
	query := `UPDATE users SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
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
