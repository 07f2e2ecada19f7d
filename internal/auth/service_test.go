package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/config"
	"github.com/plaindes/cms-backend/pkg/db/models"
	"github.com/plaindes/cms-backend/pkg/enums"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
	"github.com/plaindes/cms-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "plaindes",
		ExpirationMinutes: 30,
	}
}

func TestServiceLoginIssuesSessionBackedToken(t *testing.T) {
	password := "hunter-22"
	user := activeUser(t, "editor@example.com", password, enums.UserRoleAdmin)
	svc, sessions := buildTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Editor@Example.com",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected access token")
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %q", resp.TokenType)
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Fatalf("expected user in response")
	}
	if _, ok := sessions.byToken[resp.AccessToken]; !ok {
		t.Fatalf("expected session row for issued token")
	}

	identity, err := svc.ResolveUser(context.Background(), resp.AccessToken)
	if err != nil {
		t.Fatalf("resolve user: %v", err)
	}
	if identity.User.ID != user.ID {
		t.Fatalf("expected resolved user %s, got %s", user.ID, identity.User.ID)
	}
	if identity.Claims.Role != enums.UserRoleAdmin {
		t.Fatalf("expected admin role claim, got %s", identity.Claims.Role)
	}
}

func TestServiceLoginRejectsWrongPassword(t *testing.T) {
	user := activeUser(t, "editor@example.com", "correct-password", enums.UserRoleUser)
	svc, _ := buildTestService(t, user)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestServiceLoginRejectsUnknownEmail(t *testing.T) {
	svc, _ := buildTestService(t, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestServiceLoginRejectsInactiveUser(t *testing.T) {
	password := "still-valid"
	user := activeUser(t, "retired@example.com", password, enums.UserRoleUser)
	user.IsActive = false
	svc, _ := buildTestService(t, user)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestServiceResolveUserRequiresSessionRow(t *testing.T) {
	password := "session-check"
	user := activeUser(t, "editor@example.com", password, enums.UserRoleUser)
	svc, sessions := buildTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Revoking out-of-band must invalidate a cryptographically valid JWT.
	delete(sessions.byToken, resp.AccessToken)

	_, err = svc.ResolveUser(context.Background(), resp.AccessToken)
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestServiceResolveUserDropsExpiredSession(t *testing.T) {
	password := "expired-session"
	user := activeUser(t, "editor@example.com", password, enums.UserRoleUser)
	svc, sessions := buildTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	sessions.byToken[resp.AccessToken].ExpiresAt = time.Now().UTC().Add(-time.Minute)

	_, err = svc.ResolveUser(context.Background(), resp.AccessToken)
	assertCode(t, err, pkgerrors.CodeUnauthorized)
	if _, ok := sessions.byToken[resp.AccessToken]; ok {
		t.Fatalf("expected expired session to be removed")
	}
}

func TestServiceLogoutRevokesToken(t *testing.T) {
	password := "logout-me"
	user := activeUser(t, "editor@example.com", password, enums.UserRoleUser)
	svc, _ := buildTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.AccessToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, err = svc.ResolveUser(context.Background(), resp.AccessToken)
	assertCode(t, err, pkgerrors.CodeUnauthorized)

	// Logging out twice is not an error.
	if err := svc.Logout(context.Background(), resp.AccessToken); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	password := "rotate-me"
	user := activeUser(t, "editor@example.com", password, enums.UserRoleUser)
	svc, sessions := buildTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), resp.AccessToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == resp.AccessToken {
		t.Fatalf("expected refresh to mint a distinct token")
	}
	if _, ok := sessions.byToken[refreshed.AccessToken]; !ok {
		t.Fatalf("expected session row for refreshed token")
	}
	if _, ok := sessions.byToken[resp.AccessToken]; ok {
		t.Fatalf("expected previous session to be revoked")
	}

	if _, err := svc.ResolveUser(context.Background(), refreshed.AccessToken); err != nil {
		t.Fatalf("resolve refreshed token: %v", err)
	}
}

func buildTestService(t *testing.T, user *models.User) (Service, *stubSessionRepo) {
	t.Helper()
	sessions := newStubSessionRepo()
	svc, err := NewService(ServiceParams{
		UserRepo:    &stubUserRepo{user: user},
		SessionRepo: sessions,
		JWTConfig:   testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, sessions
}

func activeUser(t *testing.T, email, password string, role enums.UserRole) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         "Test",
		Role:         role,
		IsActive:     true,
	}
}

func assertCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s", want)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != want {
		t.Fatalf("expected %s error, got %v", want, err)
	}
}

type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubSessionRepo struct {
	byToken map[string]*models.Session
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{byToken: map[string]*models.Session{}}
}

func (s *stubSessionRepo) Create(ctx context.Context, dto CreateSessionDTO) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.New(),
		UserID:    dto.UserID,
		Token:     dto.Token,
		IPAddress: dto.IPAddress,
		UserAgent: dto.UserAgent,
		ExpiresAt: dto.ExpiresAt,
	}
	s.byToken[dto.Token] = session
	return session, nil
}

func (s *stubSessionRepo) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	session, ok := s.byToken[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (s *stubSessionRepo) DeleteByToken(ctx context.Context, token string) error {
	delete(s.byToken, token)
	return nil
}
