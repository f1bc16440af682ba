package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/baharkarakas/bloglist-backend/internal/apperr"
	"github.com/baharkarakas/bloglist-backend/internal/auth"
	"github.com/baharkarakas/bloglist-backend/internal/metrics"
	"github.com/baharkarakas/bloglist-backend/internal/models"
	repo "github.com/baharkarakas/bloglist-backend/internal/repository"
)

const msgBadCredentials = "invalid username or password"

type LoginResult struct {
	Token    string
	Username string
	Name     string
}

// AuthService logs users in and resolves bearer tokens to identities.
type AuthService struct {
	users  repo.Users
	hasher PasswordHasher
	tm     *auth.TokenManager

	dummyOnce   sync.Once
	dummyDigest string
}

func NewAuthService(u repo.Users, h PasswordHasher, tm *auth.TokenManager) *AuthService {
	return &AuthService{users: u, hasher: h, tm: tm}
}

// Login checks the credentials and issues a token. Unknown users and wrong
// passwords fail identically, including the digest comparison.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return LoginResult{}, fmt.Errorf("login: %w", err)
		}
		s.hasher.Verify(ctx, password, s.dummy(ctx))
		metrics.AuthFailures.WithLabelValues("bad_credentials").Inc()
		return LoginResult{}, apperr.Unauthorized(msgBadCredentials)
	}
	if !s.hasher.Verify(ctx, password, u.PasswordDigest) {
		metrics.AuthFailures.WithLabelValues("bad_credentials").Inc()
		return LoginResult{}, apperr.Unauthorized(msgBadCredentials)
	}

	tok, _, err := s.tm.Issue(u.ID, u.Username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResult{Token: tok, Username: u.Username, Name: u.Name}, nil
}

// Verify resolves a token to the identity of a user that still exists.
func (s *AuthService) Verify(ctx context.Context, token string) (models.Identity, error) {
	claims, err := s.tm.Parse(token)
	if err != nil {
		metrics.AuthFailures.WithLabelValues("token_invalid").Inc()
		return models.Identity{}, apperr.Unauthorized("token invalid")
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			metrics.AuthFailures.WithLabelValues("token_invalid").Inc()
			return models.Identity{}, apperr.Unauthorized("token invalid")
		}
		return models.Identity{}, fmt.Errorf("resolve token user: %w", err)
	}
	return models.Identity{UserID: u.ID, Username: u.Username}, nil
}

func (s *AuthService) dummy(ctx context.Context) string {
	s.dummyOnce.Do(func() {
		s.dummyDigest, _ = s.hasher.Hash(context.WithoutCancel(ctx), "not-a-real-password")
	})
	return s.dummyDigest
}
