package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/db/models"
	"github.com/plaindes/cms-backend/pkg/enums"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

// Service exposes contact inbox operations.
type Service interface {
	Submit(ctx context.Context, input SubmitMessageInput) (*MessageDTO, error)
	GetMessage(ctx context.Context, id uuid.UUID) (*MessageDTO, error)
	ListMessages(ctx context.Context, filter ListFilter) (*MessageListResult, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*MessageDTO, error)
	MarkReplied(ctx context.Context, id, repliedBy uuid.UUID) (*MessageDTO, error)
	DeleteMessage(ctx context.Context, id uuid.UUID) error
}

type messageRepository interface {
	Create(ctx context.Context, m *models.ContactMessage) (*models.ContactMessage, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)
	List(ctx context.Context, filter ListFilter) ([]models.ContactMessage, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.ContactMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo messageRepository
}

// NewService constructs a contact service instance.
func NewService(repo messageRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "message repository required")
	}
	return &service{repo: repo}, nil
}

// Submit records a public contact form submission as unread.
func (s *service) Submit(ctx context.Context, input SubmitMessageInput) (*MessageDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	m, err := s.repo.Create(ctx, &models.ContactMessage{
		Name:      name,
		Email:     email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   message,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		Status:    enums.MessageStatusUnread,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create message")
	}
	return FromModel(m), nil
}

// GetMessage loads a message and marks it read on first open.
func (s *service) GetMessage(ctx context.Context, id uuid.UUID) (*MessageDTO, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, messageNotFoundOrInternal(err)
	}
	if m.Status == enums.MessageStatusUnread {
		m, err = s.repo.Update(ctx, id, map[string]any{"status": enums.MessageStatusRead})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark message read")
		}
	}
	return FromModel(m), nil
}

func (s *service) ListMessages(ctx context.Context, filter ListFilter) (*MessageListResult, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list messages")
	}
	return &MessageListResult{Items: fromModels(items), Total: total}, nil
}

func (s *service) MarkRead(ctx context.Context, id uuid.UUID) (*MessageDTO, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, messageNotFoundOrInternal(err)
	}
	m, err := s.repo.Update(ctx, id, map[string]any{"status": enums.MessageStatusRead})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark message read")
	}
	return FromModel(m), nil
}

func (s *service) MarkReplied(ctx context.Context, id, repliedBy uuid.UUID) (*MessageDTO, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, messageNotFoundOrInternal(err)
	}
	now := time.Now().UTC()
	m, err := s.repo.Update(ctx, id, map[string]any{
		"status":     enums.MessageStatusReplied,
		"replied_at": now,
		"replied_by": repliedBy,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark message replied")
	}
	return FromModel(m), nil
}

func (s *service) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return messageNotFoundOrInternal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete message")
	}
	return nil
}

func messageNotFoundOrInternal(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup message")
}
