package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexstu/socialgraph/internal/domain/entity"
	"github.com/nexstu/socialgraph/internal/domain/repository"
	"github.com/nexstu/socialgraph/internal/domain/shared"
)

type FollowRepository struct {
	pool *pgxpool.Pool
}

func NewFollowRepository(pool *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{pool: pool}
}

// Toggle serializes every toggle of the same ordered pair behind a
// transaction-scoped advisory lock, then deletes the edge or inserts it.
// Under READ COMMITTED a bare delete-then-insert is not enough: two callers
// can both see "no edge", and the loser's insert would be a no-op instead of
// a flip. The primary key stays as the last line of defence.
func (r *FollowRepository) Toggle(ctx context.Context, followerID, followedID string) (entity.FollowAction, error) {
	const op = "follows.Toggle"
	if followerID == followedID {
		return "", shared.E(op, shared.ErrSelfFollow, "Cannot follow yourself", nil)
	}
	if _, err := uuid.Parse(followedID); err != nil {
		return "", shared.E(op, shared.ErrNotFound, "User not found", nil)
	}

	var action entity.FollowAction
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2))`, followerID, followedID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`, followerID, followedID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			action = entity.ActionUnfollowed
			return nil
		}
		if _, err := tx.Exec(ctx, `INSERT INTO follows (follower_id, followed_id) VALUES ($1, $2)`, followerID, followedID); err != nil {
			return err
		}
		action = entity.ActionFollowed
		return nil
	})
	if err != nil {
		return "", classify(op, err)
	}
	return action, nil
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	if !validIDs(followerID, followedID) {
		return false, nil
	}
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)
	`, followerID, followedID).Scan(&ok)
	if err != nil {
		return false, classify("follows.IsFollowing", err)
	}
	return ok, nil
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, "follows.CountFollowers", `SELECT COUNT(*) FROM follows WHERE followed_id = $1`, userID)
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, "follows.CountFollowing", `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
}

func (r *FollowRepository) count(ctx context.Context, op, query, userID string) (int64, error) {
	if !validIDs(userID) {
		return 0, nil
	}
	var n int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, classify(op, err)
	}
	return n, nil
}

func (r *FollowRepository) ListFollowers(ctx context.Context, userID string, limit, offset int) ([]entity.UserSummary, error) {
	return r.list(ctx, "follows.ListFollowers", `
		SELECT u.id::text, u.email, u.avatar_url, u.created_at
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followed_id = $1
		ORDER BY f.created_at DESC, u.id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
}

func (r *FollowRepository) ListFollowing(ctx context.Context, userID string, limit, offset int) ([]entity.UserSummary, error) {
	return r.list(ctx, "follows.ListFollowing", `
		SELECT u.id::text, u.email, u.avatar_url, u.created_at
		FROM follows f
		JOIN users u ON u.id = f.followed_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC, u.id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
}

func (r *FollowRepository) list(ctx context.Context, op, query, userID string, limit, offset int) ([]entity.UserSummary, error) {
	if !validIDs(userID) {
		return []entity.UserSummary{}, nil
	}
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	out := make([]entity.UserSummary, 0, limit)
	for rows.Next() {
		var s entity.UserSummary
		if err := rows.Scan(&s.ID, &s.Email, &s.AvatarURL, &s.CreatedAt); err != nil {
			return nil, classify(op, err)
		}
		s.Name = entity.NameFromEmail(s.Email)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}

func validIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}

var _ repository.FollowRepository = (*FollowRepository)(nil)
