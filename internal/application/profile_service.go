package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	repo "github.com/oksasatya/go-devconnector/internal/domain/repository"
	"github.com/oksasatya/go-devconnector/pkg/apperror"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

var (
	ErrNoProfileForUser = apperror.NewNotFound("There is no profile for this user", "")
	ErrProfileNotFound  = apperror.NewNotFound("Profile not found", "")
)

const defaultSearchSize = 20

// ProfileView is a profile with its owner summary in place of the bare user id.
type ProfileView struct {
	*entity.Profile
	User *entity.UserSummary `json:"user"`
}

// ProfileInput carries the scalar fields of an upsert. Empty means "not supplied".
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	// Skills is a comma separated list.
	Skills string
	Social entity.Social
}

type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

type ProfileService struct {
	Profiles repo.ProfileRepository
	Users    repo.UserRepository
	Index    ProfileIndexer
	Logger   *logrus.Logger
}

func NewProfileService(profiles repo.ProfileRepository, users repo.UserRepository, index ProfileIndexer, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Profiles: profiles, Users: users, Index: index, Logger: logger}
}

// SplitSkills turns "Go, SQL ,,k8s" into [Go SQL k8s]. Blank segments are dropped.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Upsert creates the caller's profile or merges the supplied fields into it.
// There is no locking around the read-modify-write; the last writer wins.
func (s *ProfileService) Upsert(ctx context.Context, userID string, in ProfileInput) (*ProfileView, error) {
	owner, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.persistence(err, "lookup profile owner", userID)
	}

	p, err := s.Profiles.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		p = &entity.Profile{UserID: userID, Skills: []string{}, Experience: []entity.Experience{}, Education: []entity.Education{}}
	case err != nil:
		return nil, s.persistence(err, "load profile", userID)
	}

	applyInput(p, in)
	if err := s.Profiles.Save(ctx, p); err != nil {
		return nil, s.persistence(err, "save profile", userID)
	}
	s.reindex(ctx, p, owner)
	return &ProfileView{Profile: p, User: owner.Summary()}, nil
}

func applyInput(p *entity.Profile, in ProfileInput) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Company, in.Company)
	set(&p.Website, in.Website)
	set(&p.Location, in.Location)
	set(&p.Bio, in.Bio)
	set(&p.Status, in.Status)
	set(&p.GithubUsername, in.GithubUsername)
	if in.Skills != "" {
		p.Skills = SplitSkills(in.Skills)
	}
	p.Social = in.Social
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*ProfileView, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, s.persistence(err, "load profile", userID)
	}
	return s.view(ctx, p), nil
}

// Mine is GetByUserID for the authenticated caller, with the caller-facing message.
func (s *ProfileService) Mine(ctx context.Context, userID string) (*ProfileView, error) {
	v, err := s.GetByUserID(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		return nil, ErrNoProfileForUser
	}
	return v, err
}

func (s *ProfileService) List(ctx context.Context) ([]*ProfileView, error) {
	profiles, err := s.Profiles.List(ctx)
	if err != nil {
		return nil, s.persistence(err, "list profiles", "")
	}
	return s.views(ctx, profiles)
}

// Search resolves matches from the search index back to stored profiles.
func (s *ProfileService) Search(ctx context.Context, q string, size int) ([]*ProfileView, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []*ProfileView{}, nil
	}
	if size <= 0 {
		size = defaultSearchSize
	}
	ids, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, s.persistence(err, "search profiles", "")
	}
	profiles := make([]*entity.Profile, 0, len(ids))
	for _, id := range ids {
		p, err := s.Profiles.GetByUserID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, s.persistence(err, "load profile", id)
		}
		profiles = append(profiles, p)
	}
	return s.views(ctx, profiles)
}

// DeleteOwnedBy removes the caller's profile and then the identity itself.
// A failure between the two steps leaves an identity without a profile, never the reverse.
func (s *ProfileService) DeleteOwnedBy(ctx context.Context, userID string) error {
	if _, err := s.Profiles.DeleteByUserID(ctx, userID); err != nil {
		return s.persistence(err, "delete profile", userID)
	}
	if _, err := s.Users.DeleteByID(ctx, userID); err != nil {
		return s.persistence(err, "delete user", userID)
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, userID); err != nil {
			s.warn(err, "drop profile from search index", userID)
		}
	}
	return nil
}

func (s *ProfileService) AddExperience(ctx context.Context, userID string, in ExperienceInput) (*ProfileView, error) {
	return s.mutate(ctx, userID, func(p *entity.Profile) {
		p.PrependExperience(entity.Experience{
			ID:          uuid.NewString(),
			Title:       in.Title,
			Company:     in.Company,
			Location:    in.Location,
			From:        in.From,
			To:          in.To,
			Current:     in.Current,
			Description: in.Description,
		})
	})
}

// RemoveExperience is a no-op for unknown ids; the profile is still saved.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*ProfileView, error) {
	return s.mutate(ctx, userID, func(p *entity.Profile) {
		if !p.RemoveExperience(expID) && s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"user_id": userID, "exp_id": expID}).Debug("experience not found")
		}
	})
}

func (s *ProfileService) AddEducation(ctx context.Context, userID string, in EducationInput) (*ProfileView, error) {
	return s.mutate(ctx, userID, func(p *entity.Profile) {
		p.PrependEducation(entity.Education{
			ID:           uuid.NewString(),
			School:       in.School,
			Degree:       in.Degree,
			FieldOfStudy: in.FieldOfStudy,
			From:         in.From,
			To:           in.To,
			Current:      in.Current,
			Description:  in.Description,
		})
	})
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*ProfileView, error) {
	return s.mutate(ctx, userID, func(p *entity.Profile) {
		if !p.RemoveEducation(eduID) && s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"user_id": userID, "edu_id": eduID}).Debug("education not found")
		}
	})
}

func (s *ProfileService) mutate(ctx context.Context, userID string, fn func(*entity.Profile)) (*ProfileView, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNoProfileForUser
		}
		return nil, s.persistence(err, "load profile", userID)
	}
	fn(p)
	if err := s.Profiles.Save(ctx, p); err != nil {
		return nil, s.persistence(err, "save profile", userID)
	}
	v := s.view(ctx, p)
	s.reindex(ctx, p, &entity.User{ID: v.User.ID, Name: v.User.Name})
	return v, nil
}

func (s *ProfileService) view(ctx context.Context, p *entity.Profile) *ProfileView {
	owner, err := s.Users.GetByID(ctx, p.UserID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			s.warn(err, "lookup profile owner", p.UserID)
		}
		return &ProfileView{Profile: p, User: &entity.UserSummary{ID: p.UserID}}
	}
	return &ProfileView{Profile: p, User: owner.Summary()}
}

func (s *ProfileService) views(ctx context.Context, profiles []*entity.Profile) ([]*ProfileView, error) {
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	owners, err := s.Users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, s.persistence(err, "lookup profile owners", "")
	}
	byID := make(map[string]*entity.User, len(owners))
	for _, u := range owners {
		byID[u.ID] = u
	}
	out := make([]*ProfileView, 0, len(profiles))
	for _, p := range profiles {
		summary := &entity.UserSummary{ID: p.UserID}
		if u, ok := byID[p.UserID]; ok {
			summary = u.Summary()
		}
		out = append(out, &ProfileView{Profile: p, User: summary})
	}
	return out, nil
}

func (s *ProfileService) reindex(ctx context.Context, p *entity.Profile, owner *entity.User) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, p, owner); err != nil {
		s.warn(err, "index profile", p.UserID)
	}
}

func (s *ProfileService) warn(err error, op, userID string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn(op + " failed")
	}
}

func (s *ProfileService) persistence(err error, op, userID string) error {
	if s.Logger != nil {
		helpers.LogError(s.Logger, op+" failed", err, logrus.Fields{"user_id": userID})
	}
	return apperror.NewPersistence(op, err)
}
