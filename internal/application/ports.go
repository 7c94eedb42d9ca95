package application

import (
	"context"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
)

// ProfileIndexer mirrors profiles into a search backend. Indexing is best effort:
// failures are logged and never fail the request.
type ProfileIndexer interface {
	Index(ctx context.Context, p *entity.Profile, owner *entity.User) error
	Delete(ctx context.Context, userID string) error
	Search(ctx context.Context, q string, size int) ([]string, error)
}

// JobPublisher enqueues background jobs such as outgoing email.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}
