package model

import "time"

type Post struct {
	ID              int64     `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Body            string    `db:"body" json:"body"`
	CommentsEnabled bool      `db:"comments_enabled" json:"comments_enabled"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
