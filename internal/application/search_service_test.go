package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexstu/socialgraph/internal/domain/entity"
	"github.com/nexstu/socialgraph/internal/domain/shared"
	"github.com/nexstu/socialgraph/internal/infrastructure/memory"
)

type stubIndex struct {
	res   []entity.UserSummary
	err   error
	calls int
}

func (s *stubIndex) Search(context.Context, string, int) ([]entity.UserSummary, error) {
	s.calls++
	return s.res, s.err
}

func newSearchStore() *memory.Store {
	st := memory.NewStore()
	st.AddUser(entity.User{ID: amaraID, Email: "amara@unn.edu.ng"})
	st.AddUser(entity.User{ID: bolaID, Email: "bola@unn.edu.ng"})
	return st
}

func TestSearchMinimumLength(t *testing.T) {
	svc := NewSearchService(memory.NewUserRepository(newSearchStore()), nil, nil, 2, 20)

	_, err := svc.Search(context.Background(), "a")
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Equal(t, "Type at least 2 characters", shared.MessageOf(err))

	_, err = svc.Search(context.Background(), "é")
	assert.ErrorIs(t, err, shared.ErrValidation)

	res, err := svc.Search(context.Background(), " a")
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = svc.Search(context.Background(), "zz")
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)

	res, err = svc.Search(context.Background(), "BOLA")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "bola", res[0].Name)
}

func TestSearchPrefersIndexAndFallsBack(t *testing.T) {
	users := memory.NewUserRepository(newSearchStore())
	idx := &stubIndex{res: []entity.UserSummary{{ID: "from-index"}}}
	svc := NewSearchService(users, idx, nil, 2, 20)

	res, err := svc.Search(context.Background(), "amara")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "from-index", res[0].ID)

	idx.err = errors.New("index unavailable")
	res, err = svc.Search(context.Background(), "amara")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, amaraID, res[0].ID)
	assert.Equal(t, 2, idx.calls)
}

func TestSearchEmptyIndexFallsBackToStore(t *testing.T) {
	users := memory.NewUserRepository(newSearchStore())
	idx := &stubIndex{res: []entity.UserSummary{}}
	svc := NewSearchService(users, idx, nil, 2, 20)

	res, err := svc.Search(context.Background(), "bola")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, bolaID, res[0].ID)
	assert.Equal(t, 1, idx.calls)

	res, err = svc.Search(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}
