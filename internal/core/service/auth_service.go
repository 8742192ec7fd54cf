package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/k8automation/marketing-api/internal/api/metrics"
	"github.com/k8automation/marketing-api/internal/core/domain"
	"github.com/k8automation/marketing-api/internal/core/ports"
	"github.com/k8automation/marketing-api/internal/core/token"
)

// AuthService implements registration, login, logout, and session
// authentication. A user has at most one valid token at any instant: the one
// stored on the record. Issuing a new token supersedes it, logout clears it.
type AuthService struct {
	repo   ports.UserRepository
	codec  *token.Codec
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec *token.Codec, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*ports.AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	email = normalizeEmail(email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleStandard,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	// Token issuance needs the store-assigned id, hence the second write.
	result, err := s.issueSession(ctx, created)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return result, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Indistinguishable from a wrong password on purpose.
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return result, nil
}

// Logout invalidates the user's session by clearing the stored token. Any
// token issued before this call fails authentication from here on.
func (s *AuthService) Logout(ctx context.Context, user *domain.User) error {
	if err := s.repo.UpdateToken(ctx, user.ID, ""); err != nil {
		return err
	}
	user.CurrentToken = ""
	s.logger.Info().Str("user_id", user.ID).Msg("user logged out")
	return nil
}

// Authenticate resolves a presented bearer token to its user. Only the most
// recently issued token matches the stored one; anything older, or anything
// presented after logout, fails as stale.
func (s *AuthService) Authenticate(ctx context.Context, presented string) (*domain.User, error) {
	if presented == "" {
		metrics.AuthRejectionsTotal.WithLabelValues("no_token").Inc()
		return nil, domain.ErrNoToken
	}

	userID, err := s.codec.Verify(presented)
	if err != nil {
		metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthRejectionsTotal.WithLabelValues("unknown_user").Inc()
		}
		return nil, err
	}

	// Exact equality against the stored token. A cleared token (post-logout)
	// never matches, so both "superseded" and "logged out" end up here.
	if user.CurrentToken != presented {
		metrics.AuthRejectionsTotal.WithLabelValues("stale_token").Inc()
		return nil, domain.ErrStaleToken
	}

	return user, nil
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	tok, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateToken(ctx, user.ID, tok); err != nil {
		return nil, err
	}
	user.CurrentToken = tok
	return &ports.AuthResult{User: user, Token: tok}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
