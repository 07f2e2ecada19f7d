package pages

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/db/models"
	"github.com/plaindes/cms-backend/pkg/enums"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

// Service exposes page management operations.
type Service interface {
	CreatePage(ctx context.Context, input CreatePageInput) (*PageDTO, error)
	GetPage(ctx context.Context, id uuid.UUID) (*PageDTO, error)
	GetPageBySlug(ctx context.Context, slug string) (*PageDTO, error)
	ListPages(ctx context.Context, filter ListFilter) (*PageListResult, error)
	UpdatePage(ctx context.Context, id uuid.UUID, input UpdatePageInput) (*PageDTO, error)
	DeletePage(ctx context.Context, id uuid.UUID) error
}

type pageRepository interface {
	Create(ctx context.Context, page *models.Page) (*models.Page, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Page, error)
	FindBySlug(ctx context.Context, slug string) (*models.Page, error)
	List(ctx context.Context, filter ListFilter) ([]models.Page, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Page, error)
	SetHomepage(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo pageRepository
}

// NewService constructs a page service instance.
func NewService(repo pageRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "page repository required")
	}
	return &service{repo: repo}, nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes a title or slug candidate into url-safe form.
func Slugify(value string) string {
	out := strings.ToLower(strings.TrimSpace(value))
	out = slugRe.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

func (s *service) CreatePage(ctx context.Context, input CreatePageInput) (*PageDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	slug := Slugify(input.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	if err := s.ensureSlugFree(ctx, slug, nil); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if _, err := s.repo.FindByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent page not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup parent page")
		}
	}

	page := &models.Page{
		Title:    title,
		Slug:     slug,
		Template: "default",
		ParentID: input.ParentID,
		Status:   enums.PageStatusDraft,
		Settings: input.Settings,
	}
	if input.Template != nil && strings.TrimSpace(*input.Template) != "" {
		page.Template = strings.TrimSpace(*input.Template)
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid page status")
		}
		page.Status = *input.Status
	}
	if input.SortOrder != nil {
		page.SortOrder = *input.SortOrder
	}
	page.SEOTitle = input.SEOTitle
	page.SEODescription = input.SEODescription
	page.SEOImage = input.SEOImage

	created, err := s.repo.Create(ctx, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create page")
	}

	if input.IsHomepage != nil && *input.IsHomepage {
		if err := s.repo.SetHomepage(ctx, created.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set homepage")
		}
		created.IsHomepage = true
	}
	return FromModel(created), nil
}

func (s *service) GetPage(ctx context.Context, id uuid.UUID) (*PageDTO, error) {
	page, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "page")
	}
	return FromModel(page), nil
}

func (s *service) GetPageBySlug(ctx context.Context, slug string) (*PageDTO, error) {
	page, err := s.repo.FindBySlug(ctx, Slugify(slug))
	if err != nil {
		return nil, notFoundOrInternal(err, "page")
	}
	return FromModel(page), nil
}

func (s *service) ListPages(ctx context.Context, filter ListFilter) (*PageListResult, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list pages")
	}
	return &PageListResult{Items: fromModels(items), Total: total}, nil
}

func (s *service) UpdatePage(ctx context.Context, id uuid.UUID, input UpdatePageInput) (*PageDTO, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOrInternal(err, "page")
	}

	updates := map[string]any{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		updates["title"] = title
	}
	if input.Slug != nil {
		slug := Slugify(*input.Slug)
		if slug == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug cannot be empty")
		}
		if err := s.ensureSlugFree(ctx, slug, &id); err != nil {
			return nil, err
		}
		updates["slug"] = slug
	}
	if input.Template != nil {
		updates["template"] = strings.TrimSpace(*input.Template)
	}
	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "page cannot be its own parent")
		}
		updates["parent_id"] = *input.ParentID
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid page status")
		}
		updates["status"] = *input.Status
	}
	if input.SortOrder != nil {
		updates["sort_order"] = *input.SortOrder
	}
	if input.Settings != nil {
		updates["settings"] = input.Settings
	}
	if input.SEOTitle != nil {
		updates["seo_title"] = *input.SEOTitle
	}
	if input.SEODescription != nil {
		updates["seo_description"] = *input.SEODescription
	}
	if input.SEOImage != nil {
		updates["seo_image"] = *input.SEOImage
	}

	page, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update page")
	}

	if input.IsHomepage != nil && *input.IsHomepage && !page.IsHomepage {
		if err := s.repo.SetHomepage(ctx, id); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set homepage")
		}
		page.IsHomepage = true
	}
	return FromModel(page), nil
}

func (s *service) DeletePage(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOrInternal(err, "page")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete page")
	}
	return nil
}

func (s *service) ensureSlugFree(ctx context.Context, slug string, selfID *uuid.UUID) error {
	existing, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check slug")
	}
	if selfID != nil && existing.ID == *selfID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
}

func notFoundOrInternal(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, resource+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup "+resource)
}
