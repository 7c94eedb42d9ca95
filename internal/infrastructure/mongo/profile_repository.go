package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
)

type ProfileRepository struct {
	collection *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{collection: db.Collection(collectionProfiles)}
}

// EnsureIndexes enforces at most one profile per user.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	p := &entity.Profile{}
	if err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]*entity.Profile, error) {
	cur, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Profile, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save replaces the document keyed by user, inserting it when absent.
// The _id and creation date of an existing document are kept.
func (r *ProfileRepository) Save(ctx context.Context, p *entity.Profile) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"company":        p.Company,
			"website":        p.Website,
			"location":       p.Location,
			"bio":            p.Bio,
			"status":         p.Status,
			"githubusername": p.GithubUsername,
			"skills":         nonNil(p.Skills),
			"social":         p.Social,
			"experience":     nonNil(p.Experience),
			"education":      nonNil(p.Education),
			"updated_at":     p.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":  p.ID,
			"date": p.CreatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	stored := &entity.Profile{}
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"user": p.UserID}, update, opts).Decode(stored); err != nil {
		return err
	}
	p.ID, p.CreatedAt = stored.ID, stored.CreatedAt
	return nil
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
