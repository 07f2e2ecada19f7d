package sections

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/db/models"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

// Service exposes section management operations.
type Service interface {
	CreateSection(ctx context.Context, input CreateSectionInput) (*SectionDTO, error)
	ResolveForEditing(ctx context.Context, id uuid.UUID) (*SectionDTO, error)
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]SectionDTO, error)
	UpdateSection(ctx context.Context, id uuid.UUID, input UpdateSectionInput) (*SectionDTO, error)
	DeleteSection(ctx context.Context, id uuid.UUID) error
	AttachContent(ctx context.Context, sectionID uuid.UUID, input AttachContentInput) (*SectionDTO, error)
	DetachContent(ctx context.Context, sectionID, contentID uuid.UUID) error
	ReorderContents(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) (*SectionDTO, error)
}

type sectionRepository interface {
	Create(ctx context.Context, section *models.Section) (*models.Section, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Section, error)
	FindWithContents(ctx context.Context, id uuid.UUID) (*models.Section, error)
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]models.Section, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Section, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CreatePlacement(ctx context.Context, placement *models.SectionContent) (*models.SectionContent, error)
	FindPlacement(ctx context.Context, sectionID, contentID uuid.UUID) (*models.SectionContent, error)
	DeletePlacement(ctx context.Context, id uuid.UUID) error
	ReorderPlacements(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error
}

type pageLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Page, error)
}

type contentLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Content, error)
}

type service struct {
	repo     sectionRepository
	pages    pageLoader
	contents contentLoader
}

// NewService constructs a section service instance.
func NewService(repo sectionRepository, pages pageLoader, contents contentLoader) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "section repository required")
	}
	if pages == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "page repository required")
	}
	if contents == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "content repository required")
	}
	return &service{repo: repo, pages: pages, contents: contents}, nil
}

func (s *service) CreateSection(ctx context.Context, input CreateSectionInput) (*SectionDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	component := strings.TrimSpace(input.Component)
	if component == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "component is required")
	}

	if _, err := s.pages.FindByID(ctx, input.PageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "page not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup page")
	}

	section := &models.Section{
		PageID:    input.PageID,
		Name:      name,
		Component: component,
		IsVisible: true,
	}
	if input.SortOrder != nil {
		section.SortOrder = *input.SortOrder
	}
	if input.IsVisible != nil {
		section.IsVisible = *input.IsVisible
	}

	created, err := s.repo.Create(ctx, section)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create section")
	}
	return FromModel(created), nil
}

// ResolveForEditing returns the section with every placement and content
// block, regardless of visibility or publication status.
func (s *service) ResolveForEditing(ctx context.Context, id uuid.UUID) (*SectionDTO, error) {
	section, err := s.repo.FindWithContents(ctx, id)
	if err != nil {
		return nil, sectionNotFoundOrInternal(err)
	}
	return FromModel(section), nil
}

func (s *service) ListByPage(ctx context.Context, pageID uuid.UUID) ([]SectionDTO, error) {
	if _, err := s.pages.FindByID(ctx, pageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup page")
	}
	items, err := s.repo.ListByPage(ctx, pageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sections")
	}
	return fromModels(items), nil
}

func (s *service) UpdateSection(ctx context.Context, id uuid.UUID, input UpdateSectionInput) (*SectionDTO, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, sectionNotFoundOrInternal(err)
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Component != nil {
		component := strings.TrimSpace(*input.Component)
		if component == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "component cannot be empty")
		}
		updates["component"] = component
	}
	if input.SortOrder != nil {
		updates["sort_order"] = *input.SortOrder
	}
	if input.IsVisible != nil {
		updates["is_visible"] = *input.IsVisible
	}

	section, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update section")
	}
	return FromModel(section), nil
}

func (s *service) DeleteSection(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return sectionNotFoundOrInternal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete section")
	}
	return nil
}

func (s *service) AttachContent(ctx context.Context, sectionID uuid.UUID, input AttachContentInput) (*SectionDTO, error) {
	if _, err := s.repo.FindByID(ctx, sectionID); err != nil {
		return nil, sectionNotFoundOrInternal(err)
	}
	if _, err := s.contents.FindByID(ctx, input.ContentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "content not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup content")
	}

	if _, err := s.repo.FindPlacement(ctx, sectionID, input.ContentID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "content already attached to section")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check placement")
	}

	placement := &models.SectionContent{
		SectionID: sectionID,
		ContentID: input.ContentID,
		IsVisible: true,
	}
	if input.SortOrder != nil {
		placement.SortOrder = *input.SortOrder
	}
	if input.IsVisible != nil {
		placement.IsVisible = *input.IsVisible
	}
	if _, err := s.repo.CreatePlacement(ctx, placement); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "attach content")
	}
	return s.ResolveForEditing(ctx, sectionID)
}

func (s *service) DetachContent(ctx context.Context, sectionID, contentID uuid.UUID) error {
	placement, err := s.repo.FindPlacement(ctx, sectionID, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "placement not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup placement")
	}
	if err := s.repo.DeletePlacement(ctx, placement.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "detach content")
	}
	return nil
}

func (s *service) ReorderContents(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) (*SectionDTO, error) {
	if _, err := s.repo.FindByID(ctx, sectionID); err != nil {
		return nil, sectionNotFoundOrInternal(err)
	}
	if len(orderedIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "placement order is required")
	}
	if err := s.repo.ReorderPlacements(ctx, sectionID, orderedIDs); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reorder placements")
	}
	return s.ResolveForEditing(ctx, sectionID)
}

func sectionNotFoundOrInternal(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "section not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup section")
}
