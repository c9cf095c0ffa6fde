package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/talx-hub/gopher-graph/internal/model/post"
)

type PostRepository struct {
	DB
}

func NewPostRepository(pool connectionPool, log *slog.Logger) *PostRepository {
	return &PostRepository{
		DB{
			pool: pool,
			log:  log,
		},
	}
}

// Create inserts p and returns the stored row. A bad UserID surfaces as
// a foreign key violation mapped to a not-found error.
func (r *PostRepository) Create(ctx context.Context, p *post.Post) (post.Post, error) {
	createLogic := func() (post.Post, error) {
		var created post.Post
		err := r.pool.QueryRow(ctx,
			`INSERT INTO posts (title, content, user_id)
			 VALUES ($1, $2, $3)
			 RETURNING id, title, content, user_id`,
			p.Title, p.Content, p.UserID).
			Scan(&created.ID, &created.Title, &created.Content, &created.UserID)
		return created, err
	}

	created, err := WithRetry[post.Post](createLogic, 0)
	if err != nil {
		return post.Post{}, classify("createPost", err)
	}
	return created, nil
}

func (r *PostRepository) ListByUser(ctx context.Context, userID int64) ([]post.Post, error) {
	listLogic := func() ([]post.Post, error) {
		rows, err := r.pool.Query(ctx,
			`SELECT id, title, content, user_id FROM posts
			 WHERE user_id = $1
			 ORDER BY id`,
			userID)
		if err != nil {
			return nil, fmt.Errorf("failed to query posts: %w", err)
		}
		defer rows.Close()

		var posts []post.Post
		for rows.Next() {
			var p post.Post
			if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID); err != nil {
				return nil, fmt.Errorf("failed to scan post row: %w", err)
			}
			posts = append(posts, p)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read post rows: %w", err)
		}
		return posts, nil
	}

	posts, err := WithRetry[[]post.Post](listLogic, 0)
	if err != nil {
		return nil, classify("posts", err)
	}
	return posts, nil
}
