package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
)

// ProfileRepository keeps the owned lists and social links as JSONB columns
// so the aggregate is read and written as one row.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `id::text, user_id::text, company, website, location, bio, status,
	github_username, skills, social, experience, education, created_at, updated_at`

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	p := &entity.Profile{}
	var social, experience, education []byte
	err := row.Scan(&p.ID, &p.UserID, &p.Company, &p.Website, &p.Location, &p.Bio, &p.Status,
		&p.GithubUsername, &p.Skills, &social, &experience, &education, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(social, &p.Social); err != nil {
		return nil, fmt.Errorf("decode social: %w", err)
	}
	if err := json.Unmarshal(experience, &p.Experience); err != nil {
		return nil, fmt.Errorf("decode experience: %w", err)
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		return nil, fmt.Errorf("decode education: %w", err)
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, repository.ErrNotFound
	}
	return scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
}

func (r *ProfileRepository) List(ctx context.Context) ([]*entity.Profile, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Save(ctx context.Context, p *entity.Profile) error {
	social, err := json.Marshal(p.Social)
	if err != nil {
		return fmt.Errorf("encode social: %w", err)
	}
	experience, err := json.Marshal(nonNil(p.Experience))
	if err != nil {
		return fmt.Errorf("encode experience: %w", err)
	}
	education, err := json.Marshal(nonNil(p.Education))
	if err != nil {
		return fmt.Errorf("encode education: %w", err)
	}
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, company, website, location, bio, status, github_username,
			skills, social, experience, education)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			bio = EXCLUDED.bio,
			status = EXCLUDED.status,
			github_username = EXCLUDED.github_username,
			skills = EXCLUDED.skills,
			social = EXCLUDED.social,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			updated_at = now()
		RETURNING id::text, created_at, updated_at
	`, p.UserID, p.Company, p.Website, p.Location, p.Bio, p.Status, p.GithubUsername,
		skills, social, experience, education)

	var createdAt, updatedAt time.Time
	if err := row.Scan(&p.ID, &createdAt, &updatedAt); err != nil {
		return err
	}
	p.CreatedAt, p.UpdatedAt = createdAt, updatedAt
	return nil
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) (bool, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return false, nil
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
