package settings

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/internal/media"
	"github.com/plaindes/cms-backend/pkg/db/models"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

// SiteSettingsDTO is the transport shape for site-wide settings with the
// logo and favicon assets resolved.
type SiteSettingsDTO struct {
	ID         uuid.UUID       `json:"id"`
	SiteKey    string          `json:"site_key"`
	HeaderLogo *media.MediaDTO `json:"header_logo,omitempty"`
	Favicon    *media.MediaDTO `json:"favicon,omitempty"`
	Meta       json.RawMessage `json:"meta,omitempty"`
}

// UpdateSettingsInput holds optional mutation values.
type UpdateSettingsInput struct {
	HeaderLogoID *uuid.UUID
	FaviconID    *uuid.UUID
	Meta         json.RawMessage
}

// Repository persists the per-site settings row.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a settings repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByKey loads the settings row for the site, media preloaded.
func (r *Repository) FindByKey(ctx context.Context, siteKey string) (*models.SiteSettings, error) {
	var row models.SiteSettings
	err := r.db.WithContext(ctx).
		Preload("HeaderLogo").
		Preload("Favicon").
		Where("site_key = ?", siteKey).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert creates or updates the settings row for the site.
func (r *Repository) Upsert(ctx context.Context, siteKey string, updates map[string]any) (*models.SiteSettings, error) {
	var row models.SiteSettings
	err := r.db.WithContext(ctx).Where("site_key = ?", siteKey).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.SiteSettings{SiteKey: siteKey}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.SiteSettings{}).
			Where("id = ?", row.ID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByKey(ctx, siteKey)
}

// Service resolves and mutates the site settings.
type Service interface {
	GetSettings(ctx context.Context) (*SiteSettingsDTO, error)
	UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*SiteSettingsDTO, error)
}

type settingsRepository interface {
	FindByKey(ctx context.Context, siteKey string) (*models.SiteSettings, error)
	Upsert(ctx context.Context, siteKey string, updates map[string]any) (*models.SiteSettings, error)
}

type mediaLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error)
}

type service struct {
	repo    settingsRepository
	media   mediaLoader
	siteKey string
}

// NewService constructs a settings service for the configured site key.
func NewService(repo settingsRepository, mediaRepo mediaLoader, siteKey string) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "settings repository required")
	}
	if mediaRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "media repository required")
	}
	if siteKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "site key required")
	}
	return &service{repo: repo, media: mediaRepo, siteKey: siteKey}, nil
}

// GetSettings returns the site settings; a missing row resolves to an empty
// settings payload rather than an error.
func (s *service) GetSettings(ctx context.Context) (*SiteSettingsDTO, error) {
	row, err := s.repo.FindByKey(ctx, s.siteKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &SiteSettingsDTO{SiteKey: s.siteKey}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup settings")
	}
	return FromModel(row), nil
}

func (s *service) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*SiteSettingsDTO, error) {
	updates := map[string]any{}
	if input.HeaderLogoID != nil {
		if err := s.ensureMediaExists(ctx, *input.HeaderLogoID); err != nil {
			return nil, err
		}
		updates["header_logo_id"] = *input.HeaderLogoID
	}
	if input.FaviconID != nil {
		if err := s.ensureMediaExists(ctx, *input.FaviconID); err != nil {
			return nil, err
		}
		updates["favicon_id"] = *input.FaviconID
	}
	if input.Meta != nil {
		if !json.Valid(input.Meta) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "meta must be valid JSON")
		}
		updates["meta"] = input.Meta
	}

	row, err := s.repo.Upsert(ctx, s.siteKey, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update settings")
	}
	return FromModel(row), nil
}

func (s *service) ensureMediaExists(ctx context.Context, id uuid.UUID) error {
	if _, err := s.media.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "media not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup media")
	}
	return nil
}

// FromModel maps the row to its transport shape, media included when loaded.
func FromModel(row *models.SiteSettings) *SiteSettingsDTO {
	if row == nil {
		return nil
	}
	return &SiteSettingsDTO{
		ID:         row.ID,
		SiteKey:    row.SiteKey,
		HeaderLogo: media.FromModel(row.HeaderLogo),
		Favicon:    media.FromModel(row.Favicon),
		Meta:       row.Meta,
	}
}
