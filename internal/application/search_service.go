package application

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/nexstu/socialgraph/internal/domain/entity"
	repo "github.com/nexstu/socialgraph/internal/domain/repository"
	"github.com/nexstu/socialgraph/internal/domain/shared"
	"github.com/nexstu/socialgraph/pkg/metrics"
)

// UserIndex is an optional full-text backend for user search.
type UserIndex interface {
	Search(ctx context.Context, term string, limit int) ([]entity.UserSummary, error)
}

type SearchService struct {
	Users     repo.UserRepository
	Index     UserIndex
	Logger    *logrus.Logger
	MinLength int
	Limit     int
}

func NewSearchService(users repo.UserRepository, index UserIndex, logger *logrus.Logger, minLength, limit int) *SearchService {
	if minLength <= 0 {
		minLength = 2
	}
	if limit <= 0 {
		limit = 20
	}
	return &SearchService{Users: users, Index: index, Logger: logger, MinLength: minLength, Limit: limit}
}

// Search matches q as a case-insensitive email substring or an exact id.
// q is used as given; the length check counts runes of the raw input.
// The index serves the query when configured. An index failure or an empty
// hit list falls back to the primary store, which stays authoritative for
// users the index has not seen yet.
func (s *SearchService) Search(ctx context.Context, q string) ([]entity.UserSummary, error) {
	term := q
	if utf8.RuneCountInString(term) < s.MinLength {
		return nil, shared.E("search.Users", shared.ErrValidation, fmt.Sprintf("Type at least %d characters", s.MinLength), nil)
	}

	if s.Index != nil {
		res, err := s.Index.Search(ctx, term, s.Limit)
		switch {
		case err == nil && len(res) > 0:
			metrics.Get().SearchQueriesTotal.WithLabelValues("elasticsearch").Inc()
			return res, nil
		case err != nil && s.Logger != nil:
			s.Logger.WithError(err).Warn("user index search failed, falling back to postgres")
		}
	}

	res, err := s.Users.Search(ctx, term, s.Limit)
	if err != nil {
		return nil, err
	}
	metrics.Get().SearchQueriesTotal.WithLabelValues("store").Inc()
	if res == nil {
		res = []entity.UserSummary{}
	}
	return res, nil
}
