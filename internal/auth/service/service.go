// Package service implements authentication: credential verification and
// access token issuance.
package service

import (
	"context"
	"time"

	"fashionos_backend/internal/auth/password"
	"fashionos_backend/internal/auth/repository"
	"fashionos_backend/platform/apperr"
	"fashionos_backend/platform/config"
	"fashionos_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserReader is the lookup surface the auth service needs.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (repository.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.User, error)
}

// Service verifies credentials and issues JWT access tokens.
type Service struct {
	repo UserReader
	cfg  config.AuthServiceConfig
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new auth service.
func New(repo UserReader, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		cfg:  cfg,
		log:  log,
		now:  time.Now,
	}
}

// SignInResult carries the issued token and the authenticated user.
type SignInResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        repository.User
}

// SignIn verifies the credentials and issues an access token. Invalid
// email and invalid password produce the same error so the endpoint does
// not leak which accounts exist.
func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (*SignInResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.logAuth("sign_in", email, false, "unknown email")
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if !user.IsActive {
		s.logAuth("sign_in", email, false, "account disabled")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	if !password.Verify(user.PasswordHash, plainPassword) {
		s.logAuth("sign_in", email, false, "wrong password")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	token, expiresAt, err := s.issueAccessToken(user)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to issue token", err)
	}

	s.logAuth("sign_in", email, true, "")
	return &SignInResult{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// CurrentUser loads the user behind an authenticated request.
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) issueAccessToken(user repository.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.GetAccessTokenTTL())

	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.UserType,
		"type": "access",
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *Service) logAuth(event, email string, success bool, reason string) {
	if s.log != nil {
		s.log.AuthEvent(event, email, success, reason)
	}
}
