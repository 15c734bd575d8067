package repository

import (
	"context"

	"github.com/nexstu/socialgraph/internal/domain/entity"
)

// UserRepository defines the read operations the social graph needs on users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	// Search matches term as a case-insensitive substring of the email or as
	// an exact id. Implementations must never splice term into query text.
	Search(ctx context.Context, term string, limit int) ([]entity.UserSummary, error)
	Ping(ctx context.Context) error
}
