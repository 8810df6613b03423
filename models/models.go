package models

import "time"

type Topic struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type User struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Name      string `json:"name"`
}

// UserStats carries the per-user aggregates computed at query time. None of
// these columns exist in the users table.
type UserStats struct {
	User
	CommentCount int64 `json:"comment_count"`
	ArticleCount int64 `json:"article_count"`
	CommentVotes int64 `json:"comment_votes"`
	ArticleVotes int64 `json:"article_votes"`
	TotalVotes   int64 `json:"total_votes"`
}

type Article struct {
	ArticleID int64     `json:"article_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Topic     string    `json:"topic"`
	Author    string    `json:"author"`
	Votes     int64     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`

	// CommentCount is derived by joining comments; only the read queries
	// that compute it set this field.
	CommentCount *int64 `json:"comment_count,omitempty"`
}

type Comment struct {
	CommentID int64     `json:"comment_id"`
	Author    string    `json:"author"`
	ArticleID int64     `json:"article_id"`
	Votes     int64     `json:"votes"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
