package repository

import (
	"context"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
)

// ProfileRepository stores one aggregate per user, keyed by Profile.UserID.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	List(ctx context.Context) ([]*entity.Profile, error)
	// Save inserts the aggregate or replaces the one already stored for p.UserID.
	// It assigns p.ID and p.CreatedAt on insert.
	Save(ctx context.Context, p *entity.Profile) error
	DeleteByUserID(ctx context.Context, userID string) (bool, error)
}
