package media

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/pkg/db/models"
)

// MediaDTO is the transport shape for an uploaded asset.
type MediaDTO struct {
	ID           uuid.UUID       `json:"id"`
	Filename     string          `json:"filename"`
	OriginalName string          `json:"original_name"`
	MimeType     string          `json:"mime_type"`
	SizeBytes    int64           `json:"size_bytes"`
	URL          string          `json:"url"`
	AltText      *string         `json:"alt_text,omitempty"`
	Caption      *string         `json:"caption,omitempty"`
	Folder       string          `json:"folder"`
	UploadedBy   *uuid.UUID      `json:"uploaded_by,omitempty"`
	Meta         json.RawMessage `json:"meta,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MediaListResult bundles a listing with its total count.
type MediaListResult struct {
	Items []MediaDTO `json:"items"`
	Total int64      `json:"total"`
}

// UploadInput describes an incoming file.
type UploadInput struct {
	OriginalName string
	MimeType     string
	Data         []byte
	Folder       *string
	AltText      *string
	Caption      *string
	UploadedBy   *uuid.UUID
}

// UpdateMediaInput holds optional metadata mutations.
type UpdateMediaInput struct {
	AltText *string
	Caption *string
	Folder  *string
	Meta    json.RawMessage
}

func FromModel(m *models.Media) *MediaDTO {
	if m == nil {
		return nil
	}
	return &MediaDTO{
		ID:           m.ID,
		Filename:     m.Filename,
		OriginalName: m.OriginalName,
		MimeType:     m.MimeType,
		SizeBytes:    m.SizeBytes,
		URL:          m.URL,
		AltText:      m.AltText,
		Caption:      m.Caption,
		Folder:       m.Folder,
		UploadedBy:   m.UploadedBy,
		Meta:         m.Meta,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromModels(items []models.Media) []MediaDTO {
	out := make([]MediaDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
