package contents

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/db/models"
	"github.com/plaindes/cms-backend/pkg/enums"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

// Service exposes content block management operations.
type Service interface {
	CreateContent(ctx context.Context, input CreateContentInput) (*ContentDTO, error)
	GetContent(ctx context.Context, id uuid.UUID) (*ContentDTO, error)
	ListContents(ctx context.Context, filter ListFilter) (*ContentListResult, error)
	UpdateContent(ctx context.Context, id uuid.UUID, input UpdateContentInput) (*ContentDTO, error)
	DeleteContent(ctx context.Context, id uuid.UUID) error
}

type contentRepository interface {
	Create(ctx context.Context, content *models.Content) (*models.Content, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Content, error)
	List(ctx context.Context, filter ListFilter) ([]models.Content, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Content, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo contentRepository
}

// NewService constructs a content service instance.
func NewService(repo contentRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "content repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateContent(ctx context.Context, input CreateContentInput) (*ContentDTO, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	if err := validateData(input.Data); err != nil {
		return nil, err
	}

	content := &models.Content{
		Slug:   slug,
		Data:   input.Data,
		Status: enums.ContentStatusDraft,
		PageID: input.PageID,
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid content status")
		}
		content.Status = *input.Status
	}

	created, err := s.repo.Create(ctx, content)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create content")
	}
	return FromModel(created), nil
}

func (s *service) GetContent(ctx context.Context, id uuid.UUID) (*ContentDTO, error) {
	content, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "content not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup content")
	}
	return FromModel(content), nil
}

func (s *service) ListContents(ctx context.Context, filter ListFilter) (*ContentListResult, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list contents")
	}
	return &ContentListResult{Items: fromModels(items), Total: total}, nil
}

// UpdateContent replaces the block's payload and metadata. Edits land on the
// stored row directly; published visibility is controlled by status alone.
func (s *service) UpdateContent(ctx context.Context, id uuid.UUID, input UpdateContentInput) (*ContentDTO, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "content not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup content")
	}

	updates := map[string]any{}
	if input.Slug != nil {
		slug := strings.TrimSpace(*input.Slug)
		if slug == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug cannot be empty")
		}
		updates["slug"] = slug
	}
	if input.Data != nil {
		if err := validateData(input.Data); err != nil {
			return nil, err
		}
		updates["data"] = input.Data
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid content status")
		}
		updates["status"] = *input.Status
	}
	if input.PageID != nil {
		updates["page_id"] = *input.PageID
	}

	content, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update content")
	}
	return FromModel(content), nil
}

func (s *service) DeleteContent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "content not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup content")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete content")
	}
	return nil
}

func validateData(data json.RawMessage) error {
	if data == nil {
		return nil
	}
	if !json.Valid(data) {
		return pkgerrors.New(pkgerrors.CodeValidation, "data must be valid JSON")
	}
	return nil
}
