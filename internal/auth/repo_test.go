package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/pkg/db/models"
)

func TestSessionRepositoryDeleteExpired(t *testing.T) {
	client := newAuthTestDB(t)
	repo := NewSessionRepository(client.DB())
	ctx := context.Background()
	now := time.Now().UTC()
	userID := uuid.New()

	_, err := repo.Create(ctx, CreateSessionDTO{
		UserID:    userID,
		Token:     "stale-token",
		ExpiresAt: now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("create expired session: %v", err)
	}
	live, err := repo.Create(ctx, CreateSessionDTO{
		UserID:    userID,
		Token:     "live-token",
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create live session: %v", err)
	}

	purged, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected one purged session, got %d", purged)
	}

	var remaining []models.Session
	if err := client.DB().Find(&remaining).Error; err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != live.ID {
		t.Fatalf("expected only the live session to remain, got %d rows", len(remaining))
	}
}
