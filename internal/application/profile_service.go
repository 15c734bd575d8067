package application

import (
	"context"

	"github.com/nexstu/socialgraph/internal/domain/entity"
	repo "github.com/nexstu/socialgraph/internal/domain/repository"
)

type ProfileService struct {
	Users      repo.UserRepository
	Follows    repo.FollowRepository
	Posts      repo.PostRepository
	PostsLimit int
}

func NewProfileService(users repo.UserRepository, follows repo.FollowRepository, posts repo.PostRepository, postsLimit int) *ProfileService {
	if postsLimit <= 0 {
		postsLimit = 60
	}
	return &ProfileService{Users: users, Follows: follows, Posts: posts, PostsLimit: postsLimit}
}

// GetProfile assembles the public view of targetID. viewerID may be empty
// for anonymous callers, in which case IsFollowing stays false.
func (s *ProfileService) GetProfile(ctx context.Context, targetID, viewerID string) (*entity.ProfileView, error) {
	u, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	var stats entity.ProfileStats
	if stats.Posts, err = s.Posts.CountByUser(ctx, u.ID); err != nil {
		return nil, err
	}
	if stats.Followers, err = s.Follows.CountFollowers(ctx, u.ID); err != nil {
		return nil, err
	}
	if stats.Following, err = s.Follows.CountFollowing(ctx, u.ID); err != nil {
		return nil, err
	}
	if stats.Likes, err = s.Posts.CountLikesReceived(ctx, u.ID); err != nil {
		return nil, err
	}

	following := false
	if viewerID != "" && viewerID != u.ID {
		if following, err = s.Follows.IsFollowing(ctx, viewerID, u.ID); err != nil {
			return nil, err
		}
	}

	posts, err := s.Posts.ListByUser(ctx, u.ID, s.PostsLimit)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []entity.Post{}
	}

	return &entity.ProfileView{
		User:        *u,
		IsFollowing: following,
		Stats:       stats,
		Posts:       posts,
	}, nil
}

// GetOwnProfile is the caller's own view.
func (s *ProfileService) GetOwnProfile(ctx context.Context, callerID string) (*entity.ProfileView, error) {
	return s.GetProfile(ctx, callerID, callerID)
}
