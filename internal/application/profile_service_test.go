package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/pkg/apperror"
)

type ProfileServiceSuite struct {
	suite.Suite
	f     *servicesFixture
	ctx   context.Context
	owner *entity.User
}

func TestProfileServiceSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceSuite))
}

func (s *ProfileServiceSuite) SetupTest() {
	s.f = newFixture(s.T())
	s.ctx = context.Background()
	u, _, err := s.f.users.Register(s.ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	s.Require().NoError(err)
	s.owner = u
}

func (s *ProfileServiceSuite) upsert(in ProfileInput) *ProfileView {
	v, err := s.f.profiles.Upsert(s.ctx, s.owner.ID, in)
	s.Require().NoError(err)
	return v
}

func (s *ProfileServiceSuite) TestUpsertCreatesThenMerges() {
	v := s.upsert(ProfileInput{Status: "Developer", Skills: "Go, SQL ,,k8s", Company: "Acme"})
	s.Equal([]string{"Go", "SQL", "k8s"}, v.Skills)
	s.Equal("Ada", v.User.Name)
	s.NotEmpty(v.ID)

	v2 := s.upsert(ProfileInput{Status: "Senior", Bio: "hi"})
	s.Equal(v.ID, v2.ID)
	s.Equal("Senior", v2.Status)
	s.Equal("Acme", v2.Company)
	s.Equal("hi", v2.Bio)
	s.Equal([]string{"Go", "SQL", "k8s"}, v2.Skills)

	all, err := s.f.profiles.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
	s.Equal("Ada", s.f.index.docs[s.owner.ID])
}

func (s *ProfileServiceSuite) TestUpsertLeavesOmittedScalars() {
	s.upsert(ProfileInput{Status: "Developer", Skills: "js, go, rust"})
	v := s.upsert(ProfileInput{Company: "Acme"})
	s.Equal("Developer", v.Status)
	s.Equal("Acme", v.Company)
	s.Equal([]string{"js", "go", "rust"}, v.Skills)
}

func (s *ProfileServiceSuite) TestUpsertReplacesSocial() {
	s.upsert(ProfileInput{Status: "Dev", Skills: "Go", Social: entity.Social{Twitter: "t", Youtube: "y"}})
	v := s.upsert(ProfileInput{Social: entity.Social{Linkedin: "l"}})
	s.Equal(entity.Social{Linkedin: "l"}, v.Social)
}

func (s *ProfileServiceSuite) TestUpsertUnknownOwner() {
	_, err := s.f.profiles.Upsert(s.ctx, "ghost", ProfileInput{Status: "Dev", Skills: "Go"})
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *ProfileServiceSuite) TestUpsertSurvivesIndexFailure() {
	s.f.index.err = errors.New("es down")
	v, err := s.f.profiles.Upsert(s.ctx, s.owner.ID, ProfileInput{Status: "Dev", Skills: "Go"})
	s.NoError(err)
	s.NotNil(v)
}

func (s *ProfileServiceSuite) TestConcurrentFirstUpsertsKeepOneProfile() {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.f.profiles.Upsert(s.ctx, s.owner.ID, ProfileInput{Status: "Dev", Skills: "Go"})
		}()
	}
	wg.Wait()
	all, err := s.f.profiles.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *ProfileServiceSuite) TestGetByUserID() {
	s.upsert(ProfileInput{Status: "Dev", Skills: "Go"})
	v, err := s.f.profiles.GetByUserID(s.ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Equal(s.owner.ID, v.User.ID)
	s.Equal(s.owner.AvatarURL, v.User.AvatarURL)

	_, err = s.f.profiles.GetByUserID(s.ctx, "nobody")
	s.ErrorIs(err, ErrProfileNotFound)
	_, err = s.f.profiles.Mine(s.ctx, "nobody")
	s.ErrorIs(err, ErrNoProfileForUser)
}

func (s *ProfileServiceSuite) TestExperienceLifecycle() {
	s.upsert(ProfileInput{Status: "Dev", Skills: "Go"})
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	v, err := s.f.profiles.AddExperience(s.ctx, s.owner.ID, ExperienceInput{Title: "Eng", Company: "A", From: from})
	s.Require().NoError(err)
	v, err = s.f.profiles.AddExperience(s.ctx, s.owner.ID, ExperienceInput{Title: "Lead", Company: "B", From: from})
	s.Require().NoError(err)
	s.Require().Len(v.Experience, 2)
	s.Equal("Lead", v.Experience[0].Title)
	s.NotEqual(v.Experience[0].ID, v.Experience[1].ID)

	v, err = s.f.profiles.RemoveExperience(s.ctx, s.owner.ID, "does-not-exist")
	s.Require().NoError(err)
	s.Len(v.Experience, 2)

	v, err = s.f.profiles.RemoveExperience(s.ctx, s.owner.ID, v.Experience[1].ID)
	s.Require().NoError(err)
	s.Require().Len(v.Experience, 1)
	s.Equal("Lead", v.Experience[0].Title)
}

func (s *ProfileServiceSuite) TestEducationLifecycle() {
	s.upsert(ProfileInput{Status: "Dev", Skills: "Go"})
	from := time.Date(2012, 9, 1, 0, 0, 0, 0, time.UTC)

	v, err := s.f.profiles.AddEducation(s.ctx, s.owner.ID, EducationInput{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: from})
	s.Require().NoError(err)
	s.Require().Len(v.Education, 1)
	s.Equal("CS", v.Education[0].FieldOfStudy)

	v, err = s.f.profiles.RemoveEducation(s.ctx, s.owner.ID, v.Education[0].ID)
	s.Require().NoError(err)
	s.Empty(v.Education)
}

func (s *ProfileServiceSuite) TestSubEntriesNeedProfile() {
	_, err := s.f.profiles.AddExperience(s.ctx, s.owner.ID, ExperienceInput{Title: "x", Company: "y", From: time.Now()})
	s.ErrorIs(err, ErrNoProfileForUser)
	_, err = s.f.profiles.RemoveEducation(s.ctx, s.owner.ID, "x")
	s.ErrorIs(err, ErrNoProfileForUser)
}

func (s *ProfileServiceSuite) TestDeleteOwnedByCascades() {
	s.upsert(ProfileInput{Status: "Dev", Skills: "Go"})
	s.Require().NoError(s.f.profiles.DeleteOwnedBy(s.ctx, s.owner.ID))

	_, err := s.f.profiles.GetByUserID(s.ctx, s.owner.ID)
	s.ErrorIs(err, ErrProfileNotFound)
	_, err = s.f.users.FindByID(s.ctx, s.owner.ID)
	s.ErrorIs(err, ErrUserNotFound)
	s.NotContains(s.f.index.docs, s.owner.ID)
}

func (s *ProfileServiceSuite) TestDeleteWithoutProfileStillRemovesIdentity() {
	s.Require().NoError(s.f.profiles.DeleteOwnedBy(s.ctx, s.owner.ID))
	_, err := s.f.users.FindByID(s.ctx, s.owner.ID)
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *ProfileServiceSuite) TestSearchResolvesIndexHits() {
	s.upsert(ProfileInput{Status: "Dev", Skills: "Go"})
	s.f.index.results = []string{s.owner.ID, "stale-entry"}

	got, err := s.f.profiles.Search(s.ctx, "go", 0)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("Ada", got[0].User.Name)

	got, err = s.f.profiles.Search(s.ctx, "  ", 0)
	s.Require().NoError(err)
	s.Empty(got)
}

func TestSearchWithoutIndex(t *testing.T) {
	f := newFixture(t)
	f.profiles.Index = nil
	got, err := f.profiles.Search(context.Background(), "go", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitSkills(" a ,b,, "))
	assert.Equal(t, []string{"a", "b"}, SplitSkills("a,,b"))
	assert.Empty(t, SplitSkills(""))
	assert.Empty(t, SplitSkills(" , ,"))
}
