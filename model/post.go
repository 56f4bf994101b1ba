package model

import "time"

type Post struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Image      string    `json:"image"`
	AuthorID   int       `json:"author_id"`
	CategoryID int       `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Populated on reads; the author never includes a password hash.
	Author   *User     `json:"author,omitempty"`
	Category *Category `json:"category,omitempty"`
}
