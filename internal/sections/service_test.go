package sections

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

func TestResolveForEditingIncludesDraftsAndHidden(t *testing.T) {
	repo := newStubSectionRepo()
	pageID := uuid.New()
	svc := buildService(t, repo, pageID)

	section, err := svc.CreateSection(context.Background(), CreateSectionInput{
		PageID:    pageID,
		Name:      "Hero",
		Component: "hero",
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}

	draft := repo.addContent(enums.ContentStatusDraft)
	hidden := false
	if _, err := svc.AttachContent(context.Background(), section.ID, AttachContentInput{ContentID: draft, IsVisible: &hidden}); err != nil {
		t.Fatalf("attach draft: %v", err)
	}

	resolved, err := svc.ResolveForEditing(context.Background(), section.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(resolved.Contents) != 1 {
		t.Fatalf("expected hidden draft placement in editing view, got %d placements", len(resolved.Contents))
	}
	if resolved.Contents[0].Content == nil || resolved.Contents[0].Content.Status != enums.ContentStatusDraft {
		t.Fatalf("expected draft content block in editing view")
	}
}

func TestAttachContentRejectsDuplicatePlacement(t *testing.T) {
	repo := newStubSectionRepo()
	pageID := uuid.New()
	svc := buildService(t, repo, pageID)

	section, err := svc.CreateSection(context.Background(), CreateSectionInput{
		PageID:    pageID,
		Name:      "Hero",
		Component: "hero",
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	contentID := repo.addContent(enums.ContentStatusPublished)

	if _, err := svc.AttachContent(context.Background(), section.ID, AttachContentInput{ContentID: contentID}); err != nil {
		t.Fatalf("first attach: %v", err)
	}
	_, err = svc.AttachContent(context.Background(), section.ID, AttachContentInput{ContentID: contentID})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateSectionRequiresExistingPage(t *testing.T) {
	repo := newStubSectionRepo()
	svc := buildService(t, repo, uuid.New())

	_, err := svc.CreateSection(context.Background(), CreateSectionInput{
		PageID:    uuid.New(),
		Name:      "Hero",
		Component: "hero",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReorderContentsRewritesPositions(t *testing.T) {
	repo := newStubSectionRepo()
	pageID := uuid.New()
	svc := buildService(t, repo, pageID)

	section, err := svc.CreateSection(context.Background(), CreateSectionInput{
		PageID:    pageID,
		Name:      "Grid",
		Component: "grid",
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}

	first := repo.addContent(enums.ContentStatusPublished)
	second := repo.addContent(enums.ContentStatusPublished)
	if _, err := svc.AttachContent(context.Background(), section.ID, AttachContentInput{ContentID: first}); err != nil {
		t.Fatalf("attach first: %v", err)
	}
	if _, err := svc.AttachContent(context.Background(), section.ID, AttachContentInput{ContentID: second}); err != nil {
		t.Fatalf("attach second: %v", err)
	}

	resolved, err := svc.ResolveForEditing(context.Background(), section.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	reversed := []uuid.UUID{resolved.Contents[1].ID, resolved.Contents[0].ID}
	reordered, err := svc.ReorderContents(context.Background(), section.ID, reversed)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if reordered.Contents[0].ID != reversed[0] {
		t.Fatalf("expected reordered first placement %s, got %s", reversed[0], reordered.Contents[0].ID)
	}
}

func buildService(t *testing.T, repo *stubSectionRepo, pageID uuid.UUID) Service {
	t.Helper()
	svc, err := NewService(repo, &stubPages{pageID: pageID}, &stubContents{repo: repo})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

type stubPages struct {
	pageID uuid.UUID
}

func (s *stubPages) FindByID(ctx context.Context, id uuid.UUID) (*models.Page, error) {
	if id != s.pageID {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Page{ID: id}, nil
}

type stubSectionRepo struct {
	sections   map[uuid.UUID]*models.Section
	contents   map[uuid.UUID]*models.Content
	placements map[uuid.UUID]*models.SectionContent
	nextOrder  int
}

func newStubSectionRepo() *stubSectionRepo {
	return &stubSectionRepo{
		sections:   map[uuid.UUID]*models.Section{},
		contents:   map[uuid.UUID]*models.Content{},
		placements: map[uuid.UUID]*models.SectionContent{},
	}
}

func (s *stubSectionRepo) addContent(status enums.ContentStatus) uuid.UUID {
	id := uuid.New()
	s.contents[id] = &models.Content{
		ID:     id,
		Slug:   "block-" + id.String()[:8],
		Data:   json.RawMessage(`{}`),
		Status: status,
	}
	return id
}

func (s *stubSectionRepo) Create(ctx context.Context, section *models.Section) (*models.Section, error) {
	section.ID = uuid.New()
	s.sections[section.ID] = section
	return section, nil
}

func (s *stubSectionRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	section, ok := s.sections[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return section, nil
}

func (s *stubSectionRepo) FindWithContents(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	section, ok := s.sections[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *section
	copied.Contents = nil
	for _, placement := range s.placements {
		if placement.SectionID != id {
			continue
		}
		p := *placement
		p.Content = s.contents[placement.ContentID]
		copied.Contents = append(copied.Contents, p)
	}
	for i := 0; i < len(copied.Contents); i++ {
		for j := i + 1; j < len(copied.Contents); j++ {
			if copied.Contents[j].SortOrder < copied.Contents[i].SortOrder {
				copied.Contents[i], copied.Contents[j] = copied.Contents[j], copied.Contents[i]
			}
		}
	}
	return &copied, nil
}

func (s *stubSectionRepo) ListByPage(ctx context.Context, pageID uuid.UUID) ([]models.Section, error) {
	var items []models.Section
	for _, section := range s.sections {
		if section.PageID == pageID {
			items = append(items, *section)
		}
	}
	return items, nil
}

func (s *stubSectionRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Section, error) {
	section, ok := s.sections[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := updates["name"]; ok {
		section.Name = v.(string)
	}
	if v, ok := updates["component"]; ok {
		section.Component = v.(string)
	}
	if v, ok := updates["sort_order"]; ok {
		section.SortOrder = v.(int)
	}
	if v, ok := updates["is_visible"]; ok {
		section.IsVisible = v.(bool)
	}
	return section, nil
}

func (s *stubSectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.sections, id)
	return nil
}

func (s *stubSectionRepo) CreatePlacement(ctx context.Context, placement *models.SectionContent) (*models.SectionContent, error) {
	placement.ID = uuid.New()
	if placement.SortOrder == 0 {
		placement.SortOrder = s.nextOrder
	}
	s.nextOrder++
	s.placements[placement.ID] = placement
	return placement, nil
}

func (s *stubSectionRepo) FindPlacement(ctx context.Context, sectionID, contentID uuid.UUID) (*models.SectionContent, error) {
	for _, placement := range s.placements {
		if placement.SectionID == sectionID && placement.ContentID == contentID {
			return placement, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSectionRepo) DeletePlacement(ctx context.Context, id uuid.UUID) error {
	delete(s.placements, id)
	return nil
}

func (s *stubSectionRepo) ReorderPlacements(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	for i, id := range orderedIDs {
		if placement, ok := s.placements[id]; ok && placement.SectionID == sectionID {
			placement.SortOrder = i
		}
	}
	return nil
}

type stubContents struct {
	repo *stubSectionRepo
}

func (s *stubContents) FindByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	content, ok := s.repo.contents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return content, nil
}
