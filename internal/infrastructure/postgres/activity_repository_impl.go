package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexstu/socialgraph/internal/domain/entity"
	"github.com/nexstu/socialgraph/internal/domain/repository"
	"github.com/nexstu/socialgraph/internal/domain/shared"
)

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) Create(ctx context.Context, a *entity.Activity) error {
	if !validIDs(a.UserID, a.ActorID) {
		return shared.E("activities.Create", shared.ErrNotFound, "User not found", nil)
	}
	var at any
	if !a.CreatedAt.IsZero() {
		at = a.CreatedAt
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO activities (user_id, actor_id, type, created_at)
		VALUES ($1, $2, $3, COALESCE($4::timestamptz, now()))
		RETURNING id, created_at
	`, a.UserID, a.ActorID, string(a.Type), at)
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		return classify("activities.Create", err)
	}
	return nil
}

func (r *ActivityRepository) ListRecent(ctx context.Context, userID string, limit int) ([]entity.Activity, error) {
	if !validIDs(userID) {
		return []entity.Activity{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.user_id::text, a.actor_id::text, u.email, u.name, a.type, a.created_at
		FROM activities a
		JOIN users u ON u.id = a.actor_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, classify("activities.ListRecent", err)
	}
	defer rows.Close()

	out := make([]entity.Activity, 0)
	for rows.Next() {
		var (
			a            entity.Activity
			email, name  string
			activityType string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.ActorID, &email, &name, &activityType, &a.CreatedAt); err != nil {
			return nil, classify("activities.ListRecent", err)
		}
		a.Type = entity.ActivityType(activityType)
		actor := entity.User{Email: email, Name: name}
		a.ActorName = actor.DisplayName()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("activities.ListRecent", err)
	}
	return out, nil
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)
