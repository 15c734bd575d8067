package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexstu/socialgraph/internal/domain/entity"
	"github.com/nexstu/socialgraph/internal/domain/repository"
	"github.com/nexstu/socialgraph/internal/domain/shared"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, shared.E("users.GetByID", shared.ErrNotFound, "User not found", nil)
	}
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id::text, email, password_hash, name, bio, avatar_url, created_at
		FROM users
		WHERE id = $1
	`, id)

	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Bio, &u.AvatarURL, &u.CreatedAt); err != nil {
		err = classify("users.GetByID", err)
		if shared.KindOf(err) == shared.ErrNotFound {
			return nil, shared.E("users.GetByID", shared.ErrNotFound, "User not found", nil)
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, classify("users.Exists", err)
	}
	return ok, nil
}

func (r *UserRepository) Search(ctx context.Context, term string, limit int) ([]entity.UserSummary, error) {
	// the id branch only applies when the term is a well-formed id; NULL never matches
	var idArg any
	if _, err := uuid.Parse(term); err == nil {
		idArg = term
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id::text, email, avatar_url, created_at
		FROM users
		WHERE email ILIKE $1 ESCAPE '\' OR id = $2::uuid
		ORDER BY email, id
		LIMIT $3
	`, likePattern(term), idArg, limit)
	if err != nil {
		return nil, classify("users.Search", err)
	}
	defer rows.Close()

	out := make([]entity.UserSummary, 0, limit)
	for rows.Next() {
		var s entity.UserSummary
		if err := rows.Scan(&s.ID, &s.Email, &s.AvatarURL, &s.CreatedAt); err != nil {
			return nil, classify("users.Search", err)
		}
		s.Name = entity.NameFromEmail(s.Email)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("users.Search", err)
	}
	return out, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return classify("users.Ping", err)
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
