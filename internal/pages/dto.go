package pages

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/pkg/db/models"
	"github.com/plaindes/cms-backend/pkg/enums"
)

// PageDTO is the transport shape for a page.
type PageDTO struct {
	ID             uuid.UUID        `json:"id"`
	Title          string           `json:"title"`
	Slug           string           `json:"slug"`
	Template       string           `json:"template"`
	ParentID       *uuid.UUID       `json:"parent_id,omitempty"`
	Status         enums.PageStatus `json:"status"`
	SortOrder      int              `json:"sort_order"`
	IsHomepage     bool             `json:"is_homepage"`
	Settings       json.RawMessage  `json:"settings,omitempty"`
	SEOTitle       *string          `json:"seo_title,omitempty"`
	SEODescription *string          `json:"seo_description,omitempty"`
	SEOImage       *string          `json:"seo_image,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// PageListResult bundles a page listing with its total count.
type PageListResult struct {
	Items []PageDTO `json:"items"`
	Total int64     `json:"total"`
}

// CreatePageInput holds the validated payload to create a page.
type CreatePageInput struct {
	Title          string
	Slug           string
	Template       *string
	ParentID       *uuid.UUID
	Status         *enums.PageStatus
	SortOrder      *int
	IsHomepage     *bool
	Settings       json.RawMessage
	SEOTitle       *string
	SEODescription *string
	SEOImage       *string
}

// UpdatePageInput holds optional mutation values for a page.
type UpdatePageInput struct {
	Title          *string
	Slug           *string
	Template       *string
	ParentID       *uuid.UUID
	Status         *enums.PageStatus
	SortOrder      *int
	IsHomepage     *bool
	Settings       json.RawMessage
	SEOTitle       *string
	SEODescription *string
	SEOImage       *string
}

func FromModel(p *models.Page) *PageDTO {
	if p == nil {
		return nil
	}
	return &PageDTO{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		Template:       p.Template,
		ParentID:       p.ParentID,
		Status:         p.Status,
		SortOrder:      p.SortOrder,
		IsHomepage:     p.IsHomepage,
		Settings:       p.Settings,
		SEOTitle:       p.SEOTitle,
		SEODescription: p.SEODescription,
		SEOImage:       p.SEOImage,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func fromModels(items []models.Page) []PageDTO {
	out := make([]PageDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
