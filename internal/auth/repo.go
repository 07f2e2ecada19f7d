package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/db/models"
)

// SessionRepository persists issued token sessions.
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository constructs a sessions repo bound to the provided GORM DB.
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSessionDTO holds the data required to persist a session row.
type CreateSessionDTO struct {
	UserID    uuid.UUID
	Token     string
	IPAddress *string
	UserAgent *string
	ExpiresAt time.Time
}

// Create inserts a session row for an issued token.
func (r *SessionRepository) Create(ctx context.Context, dto CreateSessionDTO) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.New(),
		UserID:    dto.UserID,
		Token:     dto.Token,
		IPAddress: dto.IPAddress,
		UserAgent: dto.UserAgent,
		ExpiresAt: dto.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// FindByToken loads the session matching the exact token string.
func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteByToken removes the session for the given token.
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
}

// DeleteExpired removes sessions that expired before the given time.
func (r *SessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
