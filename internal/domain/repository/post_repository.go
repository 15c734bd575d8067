package repository

import (
	"context"

	"github.com/nexstu/socialgraph/internal/domain/entity"
)

type PostRepository interface {
	CountByUser(ctx context.Context, userID string) (int64, error)
	// CountLikesReceived counts likes placed on any of the user's posts.
	CountLikesReceived(ctx context.Context, userID string) (int64, error)
	// ListByUser returns posts newest first, ties broken by id descending.
	ListByUser(ctx context.Context, userID string, limit int) ([]entity.Post, error)
}
