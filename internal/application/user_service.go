package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	repo "github.com/oksasatya/go-devconnector/internal/domain/repository"
	"github.com/oksasatya/go-devconnector/pkg/apperror"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
	"github.com/oksasatya/go-devconnector/pkg/mailer"
)

// passwordTooLongMsg is reported when the password exceeds what bcrypt can hash.
const passwordTooLongMsg = "Please enter password with 72 or fewer characters"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = apperror.NewUnauthorized("Invalid email or password")
	ErrEmailTaken         = apperror.NewConflict("User already registered on this email, please use another email", "")
	ErrUserNotFound       = apperror.NewNotFound("User not found", "")
)

type UserService struct {
	Repo   repo.UserRepository
	Tokens *helpers.TokenManager
	Pub    JobPublisher
	Logger *logrus.Logger
}

func NewUserService(repo repo.UserRepository, tokens *helpers.TokenManager, pub JobPublisher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Tokens: tokens, Pub: pub, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates the identity and returns it with a freshly issued token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, string, error) {
	existing, err := s.Repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, "", ErrEmailTaken
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, "", s.persistence(err, "lookup user by email", logrus.Fields{"email": in.Email})
	}

	hash, err := helpers.HashPassword(in.Password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return nil, "", apperror.New(apperror.ErrValidation, passwordTooLongMsg, "", err)
	}
	if err != nil {
		return nil, "", apperror.NewPersistence("hash password", err)
	}
	u := &entity.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  hash,
		AvatarURL: helpers.AvatarURL(in.Email),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// a concurrent registration can pass the lookup above; the unique index settles it
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", s.persistence(err, "create user", logrus.Fields{"email": in.Email})
	}

	token, _, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, "", s.persistence(err, "issue token", logrus.Fields{"user_id": u.ID})
	}
	s.enqueueWelcome(ctx, u)
	return u, token, nil
}

// Authenticate validates email/password without issuing a token.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, s.persistence(err, "lookup user by email", logrus.Fields{"email": email})
	}
	if !helpers.VerifyPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	token, _, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return "", s.persistence(err, "issue token", logrus.Fields{"user_id": u.ID})
	}
	return token, nil
}

func (s *UserService) FindByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.persistence(err, "lookup user by id", logrus.Fields{"user_id": id})
	}
	return u, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.persistence(err, "lookup user by email", logrus.Fields{"email": email})
	}
	return u, nil
}

// Me returns the authenticated identity. The hash never leaves the process.
func (s *UserService) Me(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Password = ""
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, s.persistence(err, "list users", nil)
	}
	for _, u := range users {
		u.Password = ""
	}
	return users, nil
}

func (s *UserService) DeleteByID(ctx context.Context, id string) (bool, error) {
	ok, err := s.Repo.DeleteByID(ctx, id)
	if err != nil {
		return false, s.persistence(err, "delete user", logrus.Fields{"user_id": id})
	}
	return ok, nil
}

func (s *UserService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil {
		return
	}
	job := mailer.NewWelcomeJob(u.Name, u.Email)
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to publish welcome email")
	}
}

func (s *UserService) persistence(err error, op string, fields logrus.Fields) error {
	if s.Logger != nil {
		helpers.LogError(s.Logger, op+" failed", err, fields)
	}
	return apperror.NewPersistence(op, err)
}
