package container

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/config"
	mongoinfra "github.com/oksasatya/go-devconnector/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/go-devconnector/internal/infrastructure/postgres"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

// Bootstrap opens every client the config asks for and stores it in the container.
// The returned cleanup closes them in reverse order and is safe to call on error.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	SetConfig(cfg)
	SetLogger(logger)
	helpers.SetBcryptCost(cfg.BcryptCost)

	tokens, err := helpers.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return cleanup, err
	}
	SetTokens(tokens)

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return cleanup, fmt.Errorf("connect postgres: %w", err)
		}
		closers = append(closers, pool.Close)
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return cleanup, fmt.Errorf("migrate: %w", err)
		}
		SetPGPool(pool)
	case config.DriverMongo:
		client, err := mongoinfra.NewClient(ctx, cfg.MongoURI)
		if err != nil {
			return cleanup, err
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		db := client.Database(cfg.MongoDB)
		if err := mongoinfra.EnsureIndexes(ctx, db); err != nil {
			return cleanup, err
		}
		SetMongo(db)
	case config.DriverMemory:
		logger.Warn("memory store selected; data is lost on restart")
	}

	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unreachable; profile cache disabled")
			_ = rdb.Close()
		} else {
			closers = append(closers, func() { _ = rdb.Close() })
			SetRedis(rdb)
		}
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unreachable; welcome emails disabled")
		} else {
			closers = append(closers, pub.Close)
			SetRabbitPub(pub)
		}
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch client init failed; profile search disabled")
		} else {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if err := helpers.PingES(pingCtx, es); err != nil {
				// the client reconnects on its own; search reports errors until the cluster is up
				logger.WithError(err).Warn("elasticsearch unreachable at startup")
			}
			cancel()
			SetES(es)
		}
	}

	return cleanup, nil
}
