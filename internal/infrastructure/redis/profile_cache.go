// Package redis adds a read-through cache in front of the profile store.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

// CachedProfileRepository serves GetByUserID from redis and evicts on every write.
// Cache failures are logged and fall through to the wrapped store.
//
// Every eviction bumps a per-user generation counter. A read-through fill only
// lands if the generation it saw before reading the store is still current, so
// a Save or Delete that completes while a miss is being served cannot be
// overwritten by the stale copy.
type CachedProfileRepository struct {
	inner  repository.ProfileRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedProfileRepository(inner repository.ProfileRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *CachedProfileRepository {
	return &CachedProfileRepository{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func profileKey(userID string) string {
	return "profile:user:" + userID
}

func generationKey(userID string) string {
	return "profile:gen:" + userID
}

// errStaleFill aborts a fill whose generation moved while the store was read.
var errStaleFill = errors.New("profile changed during cache fill")

func (r *CachedProfileRepository) warn(err error, key, msg string) {
	if r.logger != nil {
		r.logger.WithError(err).WithField("key", key).Warn(msg)
	}
}

func (r *CachedProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	key := profileKey(userID)
	var cached entity.Profile
	hit, err := helpers.RedisGetJSON(ctx, r.rdb, key, &cached)
	if err != nil {
		r.warn(err, key, "profile cache read failed")
	}
	if hit {
		return &cached, nil
	}

	gen, err := r.generation(ctx, userID)
	if err != nil {
		r.warn(err, key, "profile cache generation read failed")
	}
	p, err := r.inner.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if gen.ok {
		r.fill(ctx, userID, gen.value, p)
	}
	return p, nil
}

type generation struct {
	value string
	ok    bool
}

func (r *CachedProfileRepository) generation(ctx context.Context, userID string) (generation, error) {
	v, err := r.rdb.Get(ctx, generationKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return generation{ok: true}, nil
	}
	if err != nil {
		return generation{}, err
	}
	return generation{value: v, ok: true}, nil
}

// fill writes p under WATCH on the generation key and gives up if an eviction
// happened since gen was read.
func (r *CachedProfileRepository) fill(ctx context.Context, userID, gen string, p *entity.Profile) {
	key, gk := profileKey(userID), generationKey(userID)
	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, gk).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return helpers.RedisSetJSON(ctx, pipe, key, p, r.ttl)
		})
		return err
	}, gk)
	switch {
	case err == nil, errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
	default:
		r.warn(err, key, "profile cache write failed")
	}
}

func (r *CachedProfileRepository) List(ctx context.Context) ([]*entity.Profile, error) {
	return r.inner.List(ctx)
}

func (r *CachedProfileRepository) Save(ctx context.Context, p *entity.Profile) error {
	if err := r.inner.Save(ctx, p); err != nil {
		return err
	}
	r.evict(ctx, p.UserID)
	return nil
}

func (r *CachedProfileRepository) DeleteByUserID(ctx context.Context, userID string) (bool, error) {
	ok, err := r.inner.DeleteByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	r.evict(ctx, userID)
	return ok, nil
}

func (r *CachedProfileRepository) evict(ctx context.Context, userID string) {
	key, gk := profileKey(userID), generationKey(userID)
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, gk)
		pipe.Expire(ctx, gk, r.generationTTL())
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		r.warn(err, key, "profile cache evict failed")
	}
}

// generationTTL outlives any cached entry so a fill never sees a reset counter
// while an older generation could still be in flight.
func (r *CachedProfileRepository) generationTTL() time.Duration {
	if d := 2 * r.ttl; d > time.Hour {
		return d
	}
	return time.Hour
}

var _ repository.ProfileRepository = (*CachedProfileRepository)(nil)
