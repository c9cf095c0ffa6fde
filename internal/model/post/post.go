package post

import "context"

// Post is a content record owned by a single user.
type Post struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Content *string `json:"content,omitempty"`
	UserID  int64   `json:"userId"`
}

type Repository interface {
	Create(ctx context.Context, p *Post) (Post, error)
	ListByUser(ctx context.Context, userID int64) ([]Post, error)
}
