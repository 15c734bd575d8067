package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexstu/socialgraph/internal/domain/entity"
	"github.com/nexstu/socialgraph/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if !validIDs(userID) {
		return 0, nil
	}
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, classify("posts.CountByUser", err)
	}
	return n, nil
}

func (r *PostRepository) CountLikesReceived(ctx context.Context, userID string) (int64, error) {
	if !validIDs(userID) {
		return 0, nil
	}
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM likes l
		JOIN posts p ON p.id = l.post_id
		WHERE p.user_id = $1
	`, userID).Scan(&n)
	if err != nil {
		return 0, classify("posts.CountLikesReceived", err)
	}
	return n, nil
}

func (r *PostRepository) ListByUser(ctx context.Context, userID string, limit int) ([]entity.Post, error) {
	if !validIDs(userID) {
		return []entity.Post{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id::text, media_url, caption, created_at
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, classify("posts.ListByUser", err)
	}
	defer rows.Close()

	out := make([]entity.Post, 0)
	for rows.Next() {
		var p entity.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.MediaURL, &p.Caption, &p.CreatedAt); err != nil {
			return nil, classify("posts.ListByUser", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("posts.ListByUser", err)
	}
	return out, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
