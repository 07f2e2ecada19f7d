package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/internal/users"
	"github.com/plaindes/cms-backend/pkg/config"
	"github.com/plaindes/cms-backend/pkg/db"
	"github.com/plaindes/cms-backend/pkg/db/models"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

const usersTableDDL = `
CREATE TABLE IF NOT EXISTS sys_users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name TEXT NOT NULL,
	lastname TEXT,
	role TEXT NOT NULL DEFAULT 'user',
	is_active INTEGER NOT NULL DEFAULT 1,
	avatar TEXT,
	settings TEXT,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME
)`

const sessionsTableDDL = `
CREATE TABLE IF NOT EXISTS sys_sessions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	token TEXT NOT NULL UNIQUE,
	ip_address TEXT,
	user_agent TEXT,
	expires_at DATETIME NOT NULL,
	created_at DATETIME
)`

func newAuthTestDB(t *testing.T) *db.Client {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	client, err := db.New(context.Background(), config.DBConfig{Driver: "sqlite", DSN: dsn}, nil)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	for _, ddl := range []string{usersTableDDL, sessionsTableDDL} {
		if err := client.DB().Exec(ddl).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return client
}

// Low-cost argon parameters keep the hashing step fast in tests.
func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		MinLength:        6,
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func buildRegisterHarness(t *testing.T) (RegisterService, Service, *db.Client) {
	t.Helper()
	client := newAuthTestDB(t)

	register, err := NewRegisterService(RegisterServiceParams{
		DB:             client,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("build register service: %v", err)
	}

	svc, err := NewService(ServiceParams{
		UserRepo:    users.NewRepository(client.DB()),
		SessionRepo: NewSessionRepository(client.DB()),
		JWTConfig:   testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build auth service: %v", err)
	}
	return register, svc, client
}

func TestRegisterThenLoginSucceeds(t *testing.T) {
	register, svc, _ := buildRegisterHarness(t)
	ctx := context.Background()

	resp, err := register.Register(ctx, RegisterRequest{
		Email:    "  New.Editor@Example.com ",
		Password: "hunter-22",
		Name:     "New Editor",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected access token")
	}
	if resp.User == nil || resp.User.Email != "new.editor@example.com" {
		t.Fatalf("expected normalized email in response, got %+v", resp.User)
	}

	identity, err := svc.ResolveUser(ctx, resp.AccessToken)
	if err != nil {
		t.Fatalf("resolve registration token: %v", err)
	}
	if identity.User.Email != "new.editor@example.com" {
		t.Fatalf("expected resolved user, got %q", identity.User.Email)
	}

	login, err := svc.Login(ctx, LoginRequest{
		Email:    "new.editor@example.com",
		Password: "hunter-22",
	})
	if err != nil {
		t.Fatalf("login after register: %v", err)
	}
	if login.AccessToken == "" {
		t.Fatalf("expected login token")
	}
}

func TestRegisterDuplicateEmailConflictKeepsFirstSession(t *testing.T) {
	register, svc, client := buildRegisterHarness(t)
	ctx := context.Background()

	first, err := register.Register(ctx, RegisterRequest{
		Email:    "editor@example.com",
		Password: "hunter-22",
		Name:     "First",
	})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	// Case only differs, so this hits the same normalized address.
	_, err = register.Register(ctx, RegisterRequest{
		Email:    "Editor@Example.COM",
		Password: "another-pass",
		Name:     "Second",
	})
	assertCode(t, err, pkgerrors.CodeConflict)

	if _, err := svc.ResolveUser(ctx, first.AccessToken); err != nil {
		t.Fatalf("expected first session to survive conflict: %v", err)
	}

	var userCount int64
	if err := client.DB().Model(&models.User{}).Count(&userCount).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if userCount != 1 {
		t.Fatalf("expected single user row, got %d", userCount)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	register, _, client := buildRegisterHarness(t)

	_, err := register.Register(context.Background(), RegisterRequest{
		Email:    "editor@example.com",
		Password: "tiny",
		Name:     "Editor",
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	var userCount int64
	if err := client.DB().Model(&models.User{}).Count(&userCount).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if userCount != 0 {
		t.Fatalf("expected no user row after rejection, got %d", userCount)
	}
}
