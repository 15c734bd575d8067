package repository

import (
	"context"

	"github.com/nexstu/socialgraph/internal/domain/entity"
)

type ActivityRepository interface {
	Create(ctx context.Context, a *entity.Activity) error
	// ListRecent returns the user's activities newest first with ActorName filled.
	ListRecent(ctx context.Context, userID string, limit int) ([]entity.Activity, error)
}
