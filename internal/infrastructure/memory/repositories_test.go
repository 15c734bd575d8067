package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexstu/socialgraph/internal/domain/entity"
	"github.com/nexstu/socialgraph/internal/domain/shared"
)

func seeded(t *testing.T, emails ...string) (*Store, []string) {
	t.Helper()
	s := NewStore()
	ids := make([]string, len(emails))
	for i, e := range emails {
		ids[i] = "00000000-0000-0000-0000-00000000000" + string(rune('1'+i))
		s.AddUser(entity.User{ID: ids[i], Email: e})
	}
	return s, ids
}

func TestToggleFlipsState(t *testing.T) {
	s, ids := seeded(t, "a@unn.edu", "b@unn.edu")
	follows := NewFollowRepository(s)
	ctx := context.Background()

	action, err := follows.Toggle(ctx, ids[0], ids[1])
	require.NoError(t, err)
	assert.Equal(t, entity.ActionFollowed, action)

	action, err = follows.Toggle(ctx, ids[0], ids[1])
	require.NoError(t, err)
	assert.Equal(t, entity.ActionUnfollowed, action)

	ok, err := follows.IsFollowing(ctx, ids[0], ids[1])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToggleRejectsSelfAndUnknown(t *testing.T) {
	s, ids := seeded(t, "a@unn.edu")
	follows := NewFollowRepository(s)

	_, err := follows.Toggle(context.Background(), ids[0], ids[0])
	assert.ErrorIs(t, err, shared.ErrSelfFollow)
	assert.Equal(t, 0, s.EdgeCount(ids[0], ids[0]))

	_, err = follows.Toggle(context.Background(), ids[0], "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestConcurrentTogglesParity(t *testing.T) {
	for _, n := range []int{1, 2, 15, 16} {
		s, ids := seeded(t, "a@unn.edu", "b@unn.edu")
		follows := NewFollowRepository(s)

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := follows.Toggle(context.Background(), ids[0], ids[1])
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		ok, err := follows.IsFollowing(context.Background(), ids[0], ids[1])
		require.NoError(t, err)
		assert.Equal(t, n%2 == 1, ok, "n=%d", n)
		assert.LessOrEqual(t, s.EdgeCount(ids[0], ids[1]), 1)
	}
}

func TestCountFollowersMatchesIsFollowing(t *testing.T) {
	s, ids := seeded(t, "a@unn.edu", "b@unn.edu", "c@unn.edu", "d@unn.edu")
	follows := NewFollowRepository(s)
	ctx := context.Background()

	pairs := [][2]int{{0, 3}, {1, 3}, {2, 3}, {1, 3}, {3, 0}, {2, 1}}
	for _, p := range pairs {
		_, err := follows.Toggle(ctx, ids[p[0]], ids[p[1]])
		require.NoError(t, err)
	}

	for _, b := range ids {
		var expected int64
		for _, a := range ids {
			ok, err := follows.IsFollowing(ctx, a, b)
			require.NoError(t, err)
			if ok {
				expected++
			}
		}
		got, err := follows.CountFollowers(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, expected, got, "user %s", b)
	}

	following, err := follows.CountFollowing(ctx, ids[2])
	require.NoError(t, err)
	assert.EqualValues(t, 2, following)
}

func TestListFollowersNewestFirstWithPaging(t *testing.T) {
	s, ids := seeded(t, "a@unn.edu", "b@unn.edu", "c@unn.edu")
	follows := NewFollowRepository(s)
	ctx := context.Background()

	_, _ = follows.Toggle(ctx, ids[0], ids[2])
	_, _ = follows.Toggle(ctx, ids[1], ids[2])

	list, err := follows.ListFollowers(ctx, ids[2], 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[1], list[0].ID)
	assert.Equal(t, "b", list[0].Name)

	list, err = follows.ListFollowers(ctx, ids[2], 1, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ids[0], list[0].ID)

	list, err = follows.ListFollowers(ctx, ids[2], 10, 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPostsOrderingAndLikes(t *testing.T) {
	s, ids := seeded(t, "author@unn.edu", "fan@unn.edu")
	posts := NewPostRepository(s)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	older := s.AddPost(entity.Post{UserID: ids[0], Caption: "older", CreatedAt: at.Add(-time.Hour)})
	low := s.AddPost(entity.Post{UserID: ids[0], Caption: "low", CreatedAt: at})
	high := s.AddPost(entity.Post{UserID: ids[0], Caption: "high", CreatedAt: at})
	s.AddPost(entity.Post{UserID: ids[1], Caption: "other"})
	s.AddLike(ids[1], older)
	s.AddLike(ids[1], high)

	list, err := posts.ListByUser(context.Background(), ids[0], 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{high, low, older}, []int64{list[0].ID, list[1].ID, list[2].ID})

	n, err := posts.CountLikesReceived(context.Background(), ids[0])
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestSearchSubstringAndExactID(t *testing.T) {
	s, ids := seeded(t, "student@unn.edu", "Studio@unn.edu", "lecturer@unn.edu")
	users := NewUserRepository(s)

	res, err := users.Search(context.Background(), "stud", 20)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Studio", res[0].Name)

	res, err = users.Search(context.Background(), ids[2], 20)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "lecturer@unn.edu", res[0].Email)

	res, err = users.Search(context.Background(), "unn", 1)
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestActivitiesNewestFirst(t *testing.T) {
	s, ids := seeded(t, "owner@unn.edu", "fan@unn.edu")
	acts := NewActivityRepository(s)
	ctx := context.Background()

	require.NoError(t, acts.Create(ctx, &entity.Activity{UserID: ids[0], ActorID: ids[1], Type: entity.ActivityFollow}))
	require.NoError(t, acts.Create(ctx, &entity.Activity{UserID: ids[0], ActorID: ids[1], Type: entity.ActivityFollow}))

	list, err := acts.ListRecent(ctx, ids[0], 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Greater(t, list[0].ID, list[1].ID)
	assert.Equal(t, "fan", list[0].ActorName)

	err = acts.Create(ctx, &entity.Activity{UserID: "ghost", ActorID: ids[1], Type: entity.ActivityFollow})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSearchExactIDIgnoresCase(t *testing.T) {
	s := NewStore()
	id := "5f0c6a2e-9b1d-4c3e-8a7f-0d1e2f3a4b5c"
	s.AddUser(entity.User{ID: id, Email: "hall@unn.edu"})
	users := NewUserRepository(s)

	res, err := users.Search(context.Background(), "5F0C6A2E-9B1D-4C3E-8A7F-0D1E2F3A4B5C", 20)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, id, res[0].ID)
}
