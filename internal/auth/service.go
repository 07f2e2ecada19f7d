package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/internal/users"
	pkgAuth "github.com/plaindes/cms-backend/pkg/auth"
	"github.com/plaindes/cms-backend/pkg/config"
	"github.com/plaindes/cms-backend/pkg/db/models"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
	"github.com/plaindes/cms-backend/pkg/security"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	invalidTokenMessage       = "invalid or expired token"
	inactiveUserMessage       = "user account is inactive"
)

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	User   *models.User
	Claims *pkgAuth.AccessTokenClaims
}

// Service defines the token lifecycle behavior needed by the auth controller
// and the middleware.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Logout(ctx context.Context, token string) error
	Refresh(ctx context.Context, token string) (*TokenResponse, error)
	ResolveUser(ctx context.Context, token string) (*Identity, error)
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type sessionRepository interface {
	Create(ctx context.Context, dto CreateSessionDTO) (*models.Session, error)
	FindByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

type service struct {
	users    userRepository
	sessions sessionRepository
	jwtCfg   config.JWTConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo    userRepository
	SessionRepo sessionRepository
	JWTConfig   config.JWTConfig
}

// NewService constructs a token service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user repository required")
	}
	if params.SessionRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session repository required")
	}
	return &service{
		users:    params.UserRepo,
		sessions: params.SessionRepo,
		jwtCfg:   params.JWTConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, inactiveUserMessage)
	}

	return s.issueToken(ctx, user, req.IPAddress, req.UserAgent)
}

// Logout revokes the session backing the token. Unknown tokens are treated as
// already revoked.
func (s *service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidTokenMessage)
	}
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

// Refresh exchanges a valid token for a fresh one, creating a new session row
// and revoking the old one.
func (s *service) Refresh(ctx context.Context, token string) (*TokenResponse, error) {
	identity, err := s.ResolveUser(ctx, token)
	if err != nil {
		return nil, err
	}

	resp, err := s.issueToken(ctx, identity.User, nil, nil)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke previous session")
	}
	return resp, nil
}

// ResolveUser validates the JWT signature and expiry, then confirms a live
// session row exists for the exact token string. Either check failing means
// the caller is unauthenticated.
func (s *service) ResolveUser(ctx context.Context, token string) (*Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidTokenMessage)
	}

	claims, err := pkgAuth.ParseAccessToken(s.jwtCfg, token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// Stale session rows are cleaned up on first use after expiry.
			if _, staleErr := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, token); staleErr == nil {
				_ = s.sessions.DeleteByToken(ctx, token)
			}
		}
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidTokenMessage)
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidTokenMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup session")
	}
	if session.ExpiresAt.Before(time.Now().UTC()) {
		_ = s.sessions.DeleteByToken(ctx, token)
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidTokenMessage)
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidTokenMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, inactiveUserMessage)
	}

	return &Identity{User: user, Claims: claims}, nil
}

func (s *service) issueToken(ctx context.Context, user *models.User, ip, userAgent *string) (*TokenResponse, error) {
	now := time.Now().UTC()
	payload := pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    uuid.NewString(),
	}
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	expiresAt := now.Add(s.jwtCfg.AccessTokenTTL())
	if _, err := s.sessions.Create(ctx, CreateSessionDTO{
		UserID:    user.ID,
		Token:     accessToken,
		IPAddress: ip,
		UserAgent: userAgent,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create session")
	}

	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        users.FromModel(user),
	}, nil
}
