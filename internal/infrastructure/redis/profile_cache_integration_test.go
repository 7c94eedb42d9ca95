package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
	"github.com/oksasatya/go-devconnector/internal/infrastructure/memory"
)

// interleavingRepo runs during once, after the wrapped read and before the
// result is handed back, to replay a write landing mid read-through.
type interleavingRepo struct {
	repository.ProfileRepository
	during func()
}

func (r *interleavingRepo) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := r.ProfileRepository.GetByUserID(ctx, userID)
	if f := r.during; f != nil {
		r.during = nil
		f()
	}
	return p, err
}

type CacheIntegrationSuite struct {
	suite.Suite
	container testcontainers.Container
	rdb       *redis.Client
	inner     *interleavingRepo
	cache     *CachedProfileRepository
}

func TestCacheIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis integration tests in short mode")
	}
	suite.Run(t, new(CacheIntegrationSuite))
}

func (s *CacheIntegrationSuite) SetupSuite() {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	addr, err := container.PortEndpoint(ctx, "6379/tcp", "")
	s.Require().NoError(err)
	s.rdb = redis.NewClient(&redis.Options{Addr: addr})
}

func (s *CacheIntegrationSuite) TearDownSuite() {
	if s.rdb != nil {
		_ = s.rdb.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *CacheIntegrationSuite) SetupTest() {
	s.Require().NoError(s.rdb.FlushDB(context.Background()).Err())
	s.inner = &interleavingRepo{ProfileRepository: memory.NewProfileRepository()}
	s.cache = NewCachedProfileRepository(s.inner, s.rdb, time.Minute, quietLogger())
}

func (s *CacheIntegrationSuite) cached(userID string) bool {
	n, err := s.rdb.Exists(context.Background(), profileKey(userID)).Result()
	s.Require().NoError(err)
	return n == 1
}

func (s *CacheIntegrationSuite) TestReadThroughServesFromCacheUntilWrite() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Save(ctx, &entity.Profile{UserID: "u1", Status: "Developer"}))

	_, err := s.cache.GetByUserID(ctx, "u1")
	s.Require().NoError(err)
	s.True(s.cached("u1"))

	// bypass the cache so only a hit can still return the old status
	s.Require().NoError(s.inner.Save(ctx, &entity.Profile{UserID: "u1", Status: "Manager"}))
	got, err := s.cache.GetByUserID(ctx, "u1")
	s.Require().NoError(err)
	s.Equal("Developer", got.Status)

	s.Require().NoError(s.cache.Save(ctx, &entity.Profile{UserID: "u1", Status: "Lead"}))
	s.False(s.cached("u1"))
	got, err = s.cache.GetByUserID(ctx, "u1")
	s.Require().NoError(err)
	s.Equal("Lead", got.Status)
}

func (s *CacheIntegrationSuite) TestDeleteDuringReadThroughIsNotResurrected() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Save(ctx, &entity.Profile{UserID: "u1", Status: "Developer"}))

	s.inner.during = func() {
		ok, err := s.cache.DeleteByUserID(ctx, "u1")
		s.Require().NoError(err)
		s.True(ok)
	}
	got, err := s.cache.GetByUserID(ctx, "u1")
	s.Require().NoError(err)
	s.Equal("Developer", got.Status)

	s.False(s.cached("u1"))
	_, err = s.cache.GetByUserID(ctx, "u1")
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *CacheIntegrationSuite) TestSaveDuringReadThroughKeepsNewerValue() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Save(ctx, &entity.Profile{UserID: "u1", Status: "Developer"}))

	s.inner.during = func() {
		s.Require().NoError(s.cache.Save(ctx, &entity.Profile{UserID: "u1", Status: "Lead"}))
	}
	_, err := s.cache.GetByUserID(ctx, "u1")
	s.Require().NoError(err)
	s.False(s.cached("u1"))

	got, err := s.cache.GetByUserID(ctx, "u1")
	s.Require().NoError(err)
	s.Equal("Lead", got.Status)
}
