// Package memory is a process-local implementation of the repositories.
// It backs tests and STORAGE_DRIVER=memory local runs; one mutex guards the
// whole dataset so every toggle is trivially atomic.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/nexstu/socialgraph/internal/domain/entity"
)

type edgeKey struct {
	follower string
	followed string
}

type edge struct {
	seq       uint64
	createdAt time.Time
}

type likeKey struct {
	userID string
	postID int64
}

type Store struct {
	mu         sync.RWMutex
	users      map[string]entity.User
	edges      map[edgeKey]edge
	posts      map[int64]entity.Post
	likes      map[likeKey]struct{}
	activities []entity.Activity

	seq    uint64
	postID int64
	actID  int64
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]entity.User),
		edges: make(map[edgeKey]edge),
		posts: make(map[int64]entity.Post),
		likes: make(map[likeKey]struct{}),
		now:   time.Now,
	}
}

// AddUser inserts or replaces a user. CreatedAt defaults to now.
func (s *Store) AddUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.users[u.ID] = u
}

// AddPost stores p and returns its assigned id.
func (s *Store) AddPost(p entity.Post) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postID++
	p.ID = s.postID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	s.posts[p.ID] = p
	return p.ID
}

func (s *Store) AddLike(userID string, postID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.likes[likeKey{userID: userID, postID: postID}] = struct{}{}
}

// EdgeCount returns the raw number of stored edges for a pair; used by tests
// to assert that no duplicate ever exists.
func (s *Store) EdgeCount(followerID, followedID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.edges[edgeKey{follower: followerID, followed: followedID}]; ok {
		return 1
	}
	return 0
}

func sortSummariesNewestFirst(items []entity.UserSummary, order map[string]uint64) {
	sort.Slice(items, func(i, j int) bool {
		return order[items[i].ID] > order[items[j].ID]
	})
}
