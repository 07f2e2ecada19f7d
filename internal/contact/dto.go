package contact

import (
	"time"

	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/pkg/db/models"
	"github.com/plaindes/cms-backend/pkg/enums"
)

// MessageDTO is the transport shape for a contact message.
type MessageDTO struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Phone     *string             `json:"phone,omitempty"`
	Subject   *string             `json:"subject,omitempty"`
	Message   string              `json:"message"`
	Status    enums.MessageStatus `json:"status"`
	RepliedAt *time.Time          `json:"replied_at,omitempty"`
	RepliedBy *uuid.UUID          `json:"replied_by,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// MessageListResult bundles a listing with its total count.
type MessageListResult struct {
	Items []MessageDTO `json:"items"`
	Total int64        `json:"total"`
}

// SubmitMessageInput is the public contact form payload.
type SubmitMessageInput struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty"`
	Subject *string `json:"subject,omitempty"`
	Message string  `json:"message" validate:"required"`

	IPAddress *string `json:"-"`
	UserAgent *string `json:"-"`
}

func FromModel(m *models.ContactMessage) *MessageDTO {
	if m == nil {
		return nil
	}
	return &MessageDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Subject:   m.Subject,
		Message:   m.Message,
		Status:    m.Status,
		RepliedAt: m.RepliedAt,
		RepliedBy: m.RepliedBy,
		CreatedAt: m.CreatedAt,
	}
}

func fromModels(items []models.ContactMessage) []MessageDTO {
	out := make([]MessageDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
