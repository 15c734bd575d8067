package router

import (
	"github.com/nexstu/socialgraph/internal/application"
	"github.com/nexstu/socialgraph/internal/container"
	repo "github.com/nexstu/socialgraph/internal/domain/repository"
	"github.com/nexstu/socialgraph/internal/infrastructure/memory"
	"github.com/nexstu/socialgraph/internal/infrastructure/messaging"
	pginfra "github.com/nexstu/socialgraph/internal/infrastructure/postgres"
	"github.com/nexstu/socialgraph/internal/infrastructure/search"
	handlers "github.com/nexstu/socialgraph/internal/interface/http"
	"github.com/nexstu/socialgraph/internal/router/modules"
)

// Repositories is the storage backend chosen at startup.
type Repositories struct {
	Users      repo.UserRepository
	Follows    repo.FollowRepository
	Posts      repo.PostRepository
	Activities repo.ActivityRepository
}

// BuildRepositories prefers the in-memory store when one is registered,
// otherwise the Postgres pool.
func BuildRepositories() Repositories {
	if st := container.GetMemoryStore(); st != nil {
		return Repositories{
			Users:      memory.NewUserRepository(st),
			Follows:    memory.NewFollowRepository(st),
			Posts:      memory.NewPostRepository(st),
			Activities: memory.NewActivityRepository(st),
		}
	}
	pool := container.GetPGPool()
	return Repositories{
		Users:      pginfra.NewUserRepository(pool),
		Follows:    pginfra.NewFollowRepository(pool),
		Posts:      pginfra.NewPostRepository(pool),
		Activities: pginfra.NewActivityRepository(pool),
	}
}

func buildEventPublisher() application.EventPublisher {
	if pub := container.GetRabbitPub(); pub != nil {
		return messaging.NewFollowEventPublisher(pub)
	}
	return application.NopPublisher{}
}

func buildUserIndex() application.UserIndex {
	es := container.GetES()
	if es == nil {
		return nil
	}
	return search.NewUserIndex(es, container.GetConfig().ESUsersIndex)
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	repos := BuildRepositories()
	identity := application.NewIdentityResolver(container.GetJWT())
	limits := modules.Limits{
		Redis:        container.GetRedis(),
		FollowPerMin: cfg.RateLimitFollowPerMin,
		ReadPerMin:   cfg.RateLimitReadPerMin,
	}

	relationships := application.NewRelationshipService(repos.Users, repos.Follows, buildEventPublisher(), logger)
	connections := application.NewConnectionService(repos.Users, repos.Follows, cfg.ConnectionsPageSize)
	profiles := application.NewProfileService(repos.Users, repos.Follows, repos.Posts, cfg.ProfilePostsLimit)
	searcher := application.NewSearchService(repos.Users, buildUserIndex(), logger, cfg.SearchMinLength, cfg.SearchLimit)
	activities := application.NewActivityService(repos.Activities, logger)

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(repos.Users)))
	r.Add(modules.NewSocialModule(handlers.NewSocialHandler(relationships, connections, logger), identity, limits))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(profiles, logger), identity, limits))
	r.Add(modules.NewSearchModule(handlers.NewSearchHandler(searcher, logger), limits))
	r.Add(modules.NewActivityModule(handlers.NewActivityHandler(activities, logger), identity, limits))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetRedis()))
	}
	if cfg.MetricsEnabled {
		r.AddRoot(modules.NewMetricsModule())
	}
}
