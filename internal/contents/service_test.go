package contents

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/db/models"
	"github.com/plaindes/cms-backend/pkg/enums"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

func TestCreateContentDefaultsToDraft(t *testing.T) {
	svc, _ := NewService(newStubContentRepo())

	dto, err := svc.CreateContent(context.Background(), CreateContentInput{
		Slug: "hero-banner",
		Data: json.RawMessage(`{"headline":"Welcome"}`),
	})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}
	if dto.Status != enums.ContentStatusDraft {
		t.Fatalf("expected draft default, got %s", dto.Status)
	}
}

func TestCreateContentRejectsInvalidJSON(t *testing.T) {
	svc, _ := NewService(newStubContentRepo())

	_, err := svc.CreateContent(context.Background(), CreateContentInput{
		Slug: "broken",
		Data: json.RawMessage(`{"headline":`),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateContentReplacesData(t *testing.T) {
	repo := newStubContentRepo()
	svc, _ := NewService(repo)

	dto, err := svc.CreateContent(context.Background(), CreateContentInput{
		Slug: "hero-banner",
		Data: json.RawMessage(`{"headline":"Old"}`),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	published := enums.ContentStatusPublished
	updated, err := svc.UpdateContent(context.Background(), dto.ID, UpdateContentInput{
		Data:   json.RawMessage(`{"headline":"New"}`),
		Status: &published,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if string(updated.Data) != `{"headline":"New"}` {
		t.Fatalf("expected replaced data, got %s", updated.Data)
	}
	if updated.Status != enums.ContentStatusPublished {
		t.Fatalf("expected published status, got %s", updated.Status)
	}
}

func TestUpdateContentNotFound(t *testing.T) {
	svc, _ := NewService(newStubContentRepo())

	_, err := svc.UpdateContent(context.Background(), uuid.New(), UpdateContentInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

type stubContentRepo struct {
	byID map[uuid.UUID]*models.Content
}

func newStubContentRepo() *stubContentRepo {
	return &stubContentRepo{byID: map[uuid.UUID]*models.Content{}}
}

func (s *stubContentRepo) Create(ctx context.Context, content *models.Content) (*models.Content, error) {
	content.ID = uuid.New()
	s.byID[content.ID] = content
	return content, nil
}

func (s *stubContentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	content, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return content, nil
}

func (s *stubContentRepo) List(ctx context.Context, filter ListFilter) ([]models.Content, int64, error) {
	items := make([]models.Content, 0, len(s.byID))
	for _, c := range s.byID {
		items = append(items, *c)
	}
	return items, int64(len(items)), nil
}

func (s *stubContentRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Content, error) {
	content, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := updates["slug"]; ok {
		content.Slug = v.(string)
	}
	if v, ok := updates["data"]; ok {
		content.Data = v.(json.RawMessage)
	}
	if v, ok := updates["status"]; ok {
		content.Status = v.(enums.ContentStatus)
	}
	return content, nil
}

func (s *stubContentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.byID, id)
	return nil
}
