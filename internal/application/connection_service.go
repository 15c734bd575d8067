package application

import (
	"context"

	"github.com/nexstu/socialgraph/internal/domain/entity"
	repo "github.com/nexstu/socialgraph/internal/domain/repository"
	"github.com/nexstu/socialgraph/internal/domain/shared"
)

const maxConnectionsPage = 100

type ConnectionService struct {
	Users    repo.UserRepository
	Follows  repo.FollowRepository
	PageSize int
}

func NewConnectionService(users repo.UserRepository, follows repo.FollowRepository, pageSize int) *ConnectionService {
	if pageSize <= 0 || pageSize > maxConnectionsPage {
		pageSize = 50
	}
	return &ConnectionService{Users: users, Follows: follows, PageSize: pageSize}
}

// List returns one page of userID's followers or followees, newest edge first.
func (s *ConnectionService) List(ctx context.Context, userID string, kind entity.ConnectionKind, limit, offset int) ([]entity.UserSummary, error) {
	const op = "connections.List"
	if !kind.Valid() {
		return nil, shared.E(op, shared.ErrValidation, "type must be followers or following", nil)
	}
	if limit < 0 || offset < 0 {
		return nil, shared.E(op, shared.ErrValidation, "limit and offset must not be negative", nil)
	}
	if limit == 0 {
		limit = s.PageSize
	}
	if limit > maxConnectionsPage {
		limit = maxConnectionsPage
	}

	ok, err := s.Users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.E(op, shared.ErrNotFound, "User not found", nil)
	}

	var out []entity.UserSummary
	if kind == entity.ConnectionFollowers {
		out, err = s.Follows.ListFollowers(ctx, userID, limit, offset)
	} else {
		out, err = s.Follows.ListFollowing(ctx, userID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entity.UserSummary{}
	}
	return out, nil
}
