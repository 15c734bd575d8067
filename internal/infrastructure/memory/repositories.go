package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/nexstu/socialgraph/internal/domain/entity"
	"github.com/nexstu/socialgraph/internal/domain/repository"
	"github.com/nexstu/socialgraph/internal/domain/shared"
)

type UserRepository struct{ s *Store }

func NewUserRepository(s *Store) *UserRepository { return &UserRepository{s: s} }

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, shared.E("users.GetByID", shared.ErrNotFound, "User not found", nil)
	}
	return &u, nil
}

func (r *UserRepository) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.users[id]
	return ok, nil
}

func (r *UserRepository) Search(_ context.Context, term string, limit int) ([]entity.UserSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	needle := strings.ToLower(term)
	out := make([]entity.UserSummary, 0)
	for _, u := range r.s.users {
		if strings.EqualFold(u.ID, term) || strings.Contains(strings.ToLower(u.Email), needle) {
			out = append(out, u.Summary())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Email != out[j].Email {
			return out[i].Email < out[j].Email
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *UserRepository) Ping(context.Context) error { return nil }

type FollowRepository struct{ s *Store }

func NewFollowRepository(s *Store) *FollowRepository { return &FollowRepository{s: s} }

func (r *FollowRepository) Toggle(_ context.Context, followerID, followedID string) (entity.FollowAction, error) {
	const op = "follows.Toggle"
	if followerID == followedID {
		return "", shared.E(op, shared.ErrSelfFollow, "Cannot follow yourself", nil)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[followedID]; !ok {
		return "", shared.E(op, shared.ErrNotFound, "User not found", nil)
	}
	if _, ok := r.s.users[followerID]; !ok {
		return "", shared.E(op, shared.ErrNotFound, "User not found", nil)
	}
	key := edgeKey{follower: followerID, followed: followedID}
	if _, ok := r.s.edges[key]; ok {
		delete(r.s.edges, key)
		return entity.ActionUnfollowed, nil
	}
	r.s.seq++
	r.s.edges[key] = edge{seq: r.s.seq, createdAt: r.s.now()}
	return entity.ActionFollowed, nil
}

func (r *FollowRepository) IsFollowing(_ context.Context, followerID, followedID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.edges[edgeKey{follower: followerID, followed: followedID}]
	return ok, nil
}

func (r *FollowRepository) CountFollowers(_ context.Context, userID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for k := range r.s.edges {
		if k.followed == userID {
			n++
		}
	}
	return n, nil
}

func (r *FollowRepository) CountFollowing(_ context.Context, userID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for k := range r.s.edges {
		if k.follower == userID {
			n++
		}
	}
	return n, nil
}

func (r *FollowRepository) ListFollowers(_ context.Context, userID string, limit, offset int) ([]entity.UserSummary, error) {
	return r.list(limit, offset, func(k edgeKey) (string, bool) {
		return k.follower, k.followed == userID
	}), nil
}

func (r *FollowRepository) ListFollowing(_ context.Context, userID string, limit, offset int) ([]entity.UserSummary, error) {
	return r.list(limit, offset, func(k edgeKey) (string, bool) {
		return k.followed, k.follower == userID
	}), nil
}

func (r *FollowRepository) list(limit, offset int, pick func(edgeKey) (string, bool)) []entity.UserSummary {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	order := make(map[string]uint64)
	out := make([]entity.UserSummary, 0)
	for k, e := range r.s.edges {
		other, ok := pick(k)
		if !ok {
			continue
		}
		u, exists := r.s.users[other]
		if !exists {
			continue
		}
		order[other] = e.seq
		out = append(out, u.Summary())
	}
	sortSummariesNewestFirst(out, order)
	if offset >= len(out) {
		return []entity.UserSummary{}
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

type PostRepository struct{ s *Store }

func NewPostRepository(s *Store) *PostRepository { return &PostRepository{s: s} }

func (r *PostRepository) CountByUser(_ context.Context, userID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, p := range r.s.posts {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *PostRepository) CountLikesReceived(_ context.Context, userID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for k := range r.s.likes {
		if p, ok := r.s.posts[k.postID]; ok && p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *PostRepository) ListByUser(_ context.Context, userID string, limit int) ([]entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Post, 0)
	for _, p := range r.s.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type ActivityRepository struct{ s *Store }

func NewActivityRepository(s *Store) *ActivityRepository { return &ActivityRepository{s: s} }

func (r *ActivityRepository) Create(_ context.Context, a *entity.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[a.UserID]; !ok {
		return shared.E("activities.Create", shared.ErrNotFound, "User not found", nil)
	}
	if _, ok := r.s.users[a.ActorID]; !ok {
		return shared.E("activities.Create", shared.ErrNotFound, "User not found", nil)
	}
	r.s.actID++
	a.ID = r.s.actID
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.s.now()
	}
	r.s.activities = append(r.s.activities, *a)
	return nil
}

func (r *ActivityRepository) ListRecent(_ context.Context, userID string, limit int) ([]entity.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Activity, 0)
	for i := len(r.s.activities) - 1; i >= 0 && len(out) < limit; i-- {
		a := r.s.activities[i]
		if a.UserID != userID {
			continue
		}
		if actor, ok := r.s.users[a.ActorID]; ok {
			a.ActorName = actor.DisplayName()
		}
		out = append(out, a)
	}
	return out, nil
}

var (
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.FollowRepository   = (*FollowRepository)(nil)
	_ repository.PostRepository     = (*PostRepository)(nil)
	_ repository.ActivityRepository = (*ActivityRepository)(nil)
)
