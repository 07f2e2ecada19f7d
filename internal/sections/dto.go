package sections

import (
	"time"

	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/internal/contents"
	"github.com/plaindes/cms-backend/pkg/db/models"
)

// SectionDTO is the transport shape for a page section.
type SectionDTO struct {
	ID        uuid.UUID `json:"id"`
	PageID    uuid.UUID `json:"page_id"`
	Name      string    `json:"name"`
	Component string    `json:"component"`
	SortOrder int       `json:"sort_order"`
	IsVisible bool      `json:"is_visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Contents []PlacementDTO `json:"contents,omitempty"`
}

// PlacementDTO links a content block into a section at a position.
type PlacementDTO struct {
	ID        uuid.UUID            `json:"id"`
	ContentID uuid.UUID            `json:"content_id"`
	SortOrder int                  `json:"sort_order"`
	IsVisible bool                 `json:"is_visible"`
	Content   *contents.ContentDTO `json:"content,omitempty"`
}

// CreateSectionInput holds the validated payload to create a section.
type CreateSectionInput struct {
	PageID    uuid.UUID
	Name      string
	Component string
	SortOrder *int
	IsVisible *bool
}

// UpdateSectionInput holds optional mutation values for a section.
type UpdateSectionInput struct {
	Name      *string
	Component *string
	SortOrder *int
	IsVisible *bool
}

// AttachContentInput places a content block inside a section.
type AttachContentInput struct {
	ContentID uuid.UUID
	SortOrder *int
	IsVisible *bool
}

func FromModel(s *models.Section) *SectionDTO {
	if s == nil {
		return nil
	}
	dto := &SectionDTO{
		ID:        s.ID,
		PageID:    s.PageID,
		Name:      s.Name,
		Component: s.Component,
		SortOrder: s.SortOrder,
		IsVisible: s.IsVisible,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	for i := range s.Contents {
		dto.Contents = append(dto.Contents, placementFromModel(&s.Contents[i]))
	}
	return dto
}

func placementFromModel(sc *models.SectionContent) PlacementDTO {
	return PlacementDTO{
		ID:        sc.ID,
		ContentID: sc.ContentID,
		SortOrder: sc.SortOrder,
		IsVisible: sc.IsVisible,
		Content:   contents.FromModel(sc.Content),
	}
}

func fromModels(items []models.Section) []SectionDTO {
	out := make([]SectionDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
