package settings

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/db/models"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

type stubSettingsRepo struct {
	row         *models.SiteSettings
	lastUpdates map[string]any
}

func (s *stubSettingsRepo) FindByKey(ctx context.Context, siteKey string) (*models.SiteSettings, error) {
	if s.row == nil || s.row.SiteKey != siteKey {
		return nil, gorm.ErrRecordNotFound
	}
	return s.row, nil
}

func (s *stubSettingsRepo) Upsert(ctx context.Context, siteKey string, updates map[string]any) (*models.SiteSettings, error) {
	s.lastUpdates = updates
	if s.row == nil {
		s.row = &models.SiteSettings{ID: uuid.New(), SiteKey: siteKey}
	}
	if meta, ok := updates["meta"].(json.RawMessage); ok {
		s.row.Meta = meta
	}
	return s.row, nil
}

type stubMediaLoader struct {
	known map[uuid.UUID]*models.Media
}

func (s *stubMediaLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	asset, ok := s.known[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return asset, nil
}

func TestGetSettingsMissingRowReturnsEmptyPayload(t *testing.T) {
	svc, err := NewService(&stubSettingsRepo{}, &stubMediaLoader{}, "default")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if dto.SiteKey != "default" {
		t.Fatalf("expected site key default, got %q", dto.SiteKey)
	}
	if dto.ID != uuid.Nil {
		t.Fatalf("expected zero id for missing row, got %s", dto.ID)
	}
}

func TestUpdateSettingsRejectsUnknownMedia(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc, _ := NewService(repo, &stubMediaLoader{known: map[uuid.UUID]*models.Media{}}, "default")

	logoID := uuid.New()
	_, err := svc.UpdateSettings(context.Background(), UpdateSettingsInput{HeaderLogoID: &logoID})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.lastUpdates != nil {
		t.Fatal("expected no upsert on invalid media reference")
	}
}

func TestUpdateSettingsRejectsInvalidMetaJSON(t *testing.T) {
	svc, _ := NewService(&stubSettingsRepo{}, &stubMediaLoader{}, "default")

	_, err := svc.UpdateSettings(context.Background(), UpdateSettingsInput{Meta: json.RawMessage(`{"broken"`)})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateSettingsPersistsMetaAndMediaIDs(t *testing.T) {
	logoID := uuid.New()
	repo := &stubSettingsRepo{}
	loader := &stubMediaLoader{known: map[uuid.UUID]*models.Media{
		logoID: {ID: logoID},
	}}
	svc, _ := NewService(repo, loader, "default")

	meta := json.RawMessage(`{"title":"Plaindes"}`)
	dto, err := svc.UpdateSettings(context.Background(), UpdateSettingsInput{
		HeaderLogoID: &logoID,
		Meta:         meta,
	})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if got := repo.lastUpdates["header_logo_id"]; got != logoID {
		t.Fatalf("expected header_logo_id update, got %v", got)
	}
	if string(dto.Meta) != string(meta) {
		t.Fatalf("expected meta persisted, got %s", dto.Meta)
	}
}
