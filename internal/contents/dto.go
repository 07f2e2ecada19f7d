package contents

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/pkg/db/models"
	"github.com/plaindes/cms-backend/pkg/enums"
)

// ContentDTO is the transport shape for a content block.
type ContentDTO struct {
	ID        uuid.UUID           `json:"id"`
	Slug      string              `json:"slug"`
	Data      json.RawMessage     `json:"data,omitempty"`
	Status    enums.ContentStatus `json:"status"`
	PageID    *uuid.UUID          `json:"page_id,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ContentListResult bundles a listing with its total count.
type ContentListResult struct {
	Items []ContentDTO `json:"items"`
	Total int64        `json:"total"`
}

// CreateContentInput holds the validated payload to create a content block.
type CreateContentInput struct {
	Slug   string
	Data   json.RawMessage
	Status *enums.ContentStatus
	PageID *uuid.UUID
}

// UpdateContentInput holds optional mutation values for a content block.
type UpdateContentInput struct {
	Slug   *string
	Data   json.RawMessage
	Status *enums.ContentStatus
	PageID *uuid.UUID
}

func FromModel(c *models.Content) *ContentDTO {
	if c == nil {
		return nil
	}
	return &ContentDTO{
		ID:        c.ID,
		Slug:      c.Slug,
		Data:      c.Data,
		Status:    c.Status,
		PageID:    c.PageID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func fromModels(items []models.Content) []ContentDTO {
	out := make([]ContentDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
