package router

import (
	"fmt"

	"github.com/oksasatya/go-devconnector/config"
	"github.com/oksasatya/go-devconnector/internal/application"
	"github.com/oksasatya/go-devconnector/internal/container"
	repo "github.com/oksasatya/go-devconnector/internal/domain/repository"
	"github.com/oksasatya/go-devconnector/internal/infrastructure/memory"
	mongoinfra "github.com/oksasatya/go-devconnector/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/go-devconnector/internal/infrastructure/postgres"
	redisinfra "github.com/oksasatya/go-devconnector/internal/infrastructure/redis"
	"github.com/oksasatya/go-devconnector/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-devconnector/internal/interface/http"
	"github.com/oksasatya/go-devconnector/internal/router/modules"
)

type Repositories struct {
	Users    repo.UserRepository
	Profiles repo.ProfileRepository
}

// BuildRepositories picks the store driver from config and layers the redis
// cache over profiles when a redis client is available.
func BuildRepositories() (Repositories, error) {
	cfg := container.GetConfig()
	var r Repositories
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool := container.GetPGPool()
		if pool == nil {
			return r, fmt.Errorf("postgres driver selected but no pool configured")
		}
		r = Repositories{Users: pginfra.NewUserRepository(pool), Profiles: pginfra.NewProfileRepository(pool)}
	case config.DriverMongo:
		db := container.GetMongo()
		if db == nil {
			return r, fmt.Errorf("mongo driver selected but no database configured")
		}
		r = Repositories{Users: mongoinfra.NewUserRepository(db), Profiles: mongoinfra.NewProfileRepository(db)}
	case config.DriverMemory:
		r = Repositories{Users: memory.NewUserRepository(), Profiles: memory.NewProfileRepository()}
	default:
		return r, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if rdb := container.GetRedis(); rdb != nil {
		r.Profiles = redisinfra.NewCachedProfileRepository(r.Profiles, rdb, cfg.ProfileCacheTTL, container.GetLogger())
	}
	return r, nil
}

type Services struct {
	Users    *application.UserService
	Profiles *application.ProfileService
}

func BuildServices(r Repositories) Services {
	logger := container.GetLogger()

	var pub application.JobPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	var index application.ProfileIndexer
	if es := container.GetES(); es != nil {
		index = search.NewProfileIndex(es, container.GetConfig().ESProfilesIndex)
	}

	return Services{
		Users:    application.NewUserService(r.Users, container.GetTokens(), pub, logger),
		Profiles: application.NewProfileService(r.Profiles, r.Users, index, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) (Services, error) {
	repos, err := BuildRepositories()
	if err != nil {
		return Services{}, err
	}
	svc := BuildServices(repos)

	cfg := container.GetConfig()
	logger := container.GetLogger()
	gate := modules.NewGate(container.GetTokens(), cfg.AuthHeader)

	r.Add(ModuleFunc(modules.Health))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger)))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Users, logger), gate))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(svc.Profiles, logger), gate))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	return svc, nil
}
