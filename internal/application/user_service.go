package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	repo "github.com/oksasatya/airbnb-listing-service/internal/domain/repository"
	"github.com/oksasatya/airbnb-listing-service/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger logrus.FieldLogger
}

func NewUserService(repo repo.UserRepository, jwt *helpers.JWTManager, logger logrus.FieldLogger) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Logger: logger}
}

// LoginResult is what a successful login hands back to the caller
type LoginResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// Register creates an account with the default roles and returns its API key.
// A colliding API key is regenerated until the insert succeeds or ctx ends.
func (s *UserService) Register(ctx context.Context, username, password string) (string, error) {
	return s.create(ctx, username, password, entity.DefaultRoles())
}

// RegisterWithRoles is Register with explicit roles, used by the seeder
func (s *UserService) RegisterWithRoles(ctx context.Context, username, password string, roles []string) (string, error) {
	return s.create(ctx, username, password, roles)
}

func (s *UserService) create(ctx context.Context, username, password string, roles []string) (string, error) {
	u := &entity.User{Username: username, Roles: roles}
	if _, err := u.SetPassword(password); err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	for {
		key, err := helpers.NewAPIKey()
		if err != nil {
			return "", fmt.Errorf("generate api key: %w", err)
		}
		u.APIKey = key

		err = s.Repo.Create(ctx, u)
		switch {
		case err == nil:
			if s.Logger != nil {
				s.Logger.WithField("user_id", u.ID).WithField("username", username).Info("user registered")
			}
			return key, nil
		case errors.Is(err, repo.ErrAPIKeyTaken):
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			continue
		case errors.Is(err, repo.ErrDuplicate):
			return "", ErrUsernameTaken
		default:
			return "", fmt.Errorf("create user: %w", err)
		}
	}
}

// Authenticate validates username/password. Unknown users still cost one
// bcrypt comparison.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			helpers.CompareDummy(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.JWT.GenerateToken(u.ID, u.Username, u.Roles)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &LoginResult{User: u, Token: token, ExpiresAt: exp}, nil
}

// ChangePassword verifies current and stores next, rehashing only when it differs
func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUnauthenticated
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, current) {
		return ErrInvalidCredentials
	}
	changed, err := u.SetPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if !changed {
		return nil
	}
	if err := s.Repo.UpdatePassword(ctx, u.ID, u.Password); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ResolveToken maps a bearer token to its user. The subject must still exist.
func (s *UserService) ResolveToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	sub := claims.Subject
	if sub == "" {
		sub = claims.UserID
	}
	return s.lookup(ctx, s.Repo.GetByID, sub)
}

// ResolveAPIKey maps an x-api-key value to its user
func (s *UserService) ResolveAPIKey(ctx context.Context, key string) (*entity.User, error) {
	if key == "" {
		return nil, ErrUnauthenticated
	}
	return s.lookup(ctx, s.Repo.GetByAPIKey, key)
}

func (s *UserService) lookup(ctx context.Context, get func(context.Context, string) (*entity.User, error), v string) (*entity.User, error) {
	u, err := get(ctx, v)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}
