package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/job-tracker/internal/auth"
	"github.com/spec-kit/job-tracker/internal/config"
	"github.com/spec-kit/job-tracker/internal/domain"
	"github.com/spec-kit/job-tracker/internal/repository"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

const msgEmailRegistered = "Email already registered"

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
}

// RegisterInput carries a new account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates an account and issues its first token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, domain.IssuedToken, error) {
	if !input.Role.Valid() {
		return nil, domain.IssuedToken{}, apperrors.NewValidationError("invalid role", map[string]any{
			"role": "must be one of publisher, applicant, approver",
		})
	}
	email := strings.TrimSpace(input.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.IssuedToken{}, apperrors.NewConflict(msgEmailRegistered, nil)
	} else if !isNotFound(err) {
		return nil, domain.IssuedToken{}, storeError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, domain.IssuedToken{}, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration won the race past the read above.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.IssuedToken{}, apperrors.NewConflict(msgEmailRegistered, nil)
		}
		return nil, domain.IssuedToken{}, storeError(err)
	}

	token, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, domain.IssuedToken{}, apperrors.NewInternalError(err)
	}
	return user, token, nil
}

// Login authenticates an account. Unknown emails and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, domain.IssuedToken, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if isNotFound(err) {
			return nil, domain.IssuedToken{}, apperrors.NewInvalidCredentials()
		}
		return nil, domain.IssuedToken{}, storeError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, domain.IssuedToken{}, apperrors.NewInvalidCredentials()
	}

	token, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, domain.IssuedToken{}, apperrors.NewInternalError(err)
	}
	return user, token, nil
}
