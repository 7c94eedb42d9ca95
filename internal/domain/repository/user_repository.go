package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
)

var (
	// ErrNotFound is returned by lookups that match nothing.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write would break a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines the identity store operations.
type UserRepository interface {
	// Create assigns u.ID and u.CreatedAt. Returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// DeleteByID reports whether a record was removed.
	DeleteByID(ctx context.Context, id string) (bool, error)
}
