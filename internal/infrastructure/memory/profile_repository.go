package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
)

// ProfileRepository copies aggregates in and out so callers never share state.
type ProfileRepository struct {
	mu       sync.RWMutex
	byUserID map[string]*entity.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{byUserID: map[string]*entity.Profile{}}
}

func (r *ProfileRepository) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byUserID[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *ProfileRepository) List(_ context.Context) ([]*entity.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Profile, 0, len(r.byUserID))
	for _, p := range r.byUserID {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ProfileRepository) Save(_ context.Context, p *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.byUserID[p.UserID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.byUserID[p.UserID] = p.Clone()
	return nil
}

func (r *ProfileRepository) DeleteByUserID(_ context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUserID[userID]; !ok {
		return false, nil
	}
	delete(r.byUserID, userID)
	return true, nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
