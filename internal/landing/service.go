package landing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/internal/menus"
	"github.com/plaindes/cms-backend/internal/pages"
	"github.com/plaindes/cms-backend/internal/sections"
	"github.com/plaindes/cms-backend/internal/settings"
	"github.com/plaindes/cms-backend/pkg/db/models"
	"github.com/plaindes/cms-backend/pkg/enums"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

// LandingDTO is the fully resolved public payload: site settings, navigation,
// and the homepage with its visible sections and published content.
type LandingDTO struct {
	Settings *settings.SiteSettingsDTO `json:"settings"`
	Menus    []menus.MenuDTO           `json:"menus"`
	Page     *pages.PageDTO            `json:"page"`
	Sections []sections.SectionDTO     `json:"sections"`
}

// PageViewDTO is a resolved public page other than the homepage.
type PageViewDTO struct {
	Page     *pages.PageDTO        `json:"page"`
	Sections []sections.SectionDTO `json:"sections"`
}

// Service resolves the public-facing content tree.
type Service interface {
	ResolveLanding(ctx context.Context) (*LandingDTO, error)
	ResolvePage(ctx context.Context, slug string) (*PageViewDTO, error)
}

type pageResolver interface {
	FindHomepage(ctx context.Context) (*models.Page, error)
	FindBySlug(ctx context.Context, slug string) (*models.Page, error)
}

type sectionResolver interface {
	ListVisibleByPage(ctx context.Context, pageID uuid.UUID) ([]models.Section, error)
}

type menuResolver interface {
	List(ctx context.Context) ([]models.Menu, error)
}

type settingsResolver interface {
	GetSettings(ctx context.Context) (*settings.SiteSettingsDTO, error)
}

type service struct {
	pages    pageResolver
	sections sectionResolver
	menus    menuResolver
	settings settingsResolver
}

// NewService constructs a landing resolver with the provided dependencies.
func NewService(pagesRepo pageResolver, sectionsRepo sectionResolver, menusRepo menuResolver, settingsSvc settingsResolver) (Service, error) {
	if pagesRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "page repository required")
	}
	if sectionsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "section repository required")
	}
	if menusRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "menu repository required")
	}
	if settingsSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "settings service required")
	}
	return &service{
		pages:    pagesRepo,
		sections: sectionsRepo,
		menus:    menusRepo,
		settings: settingsSvc,
	}, nil
}

// ResolveLanding assembles everything a public visitor needs in one call.
// Only the published homepage, visible sections, visible placements, and
// published content blocks make it into the payload.
func (s *service) ResolveLanding(ctx context.Context) (*LandingDTO, error) {
	siteSettings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	menuRows, err := s.menus.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list menus")
	}
	menuDTOs := make([]menus.MenuDTO, 0, len(menuRows))
	for i := range menuRows {
		menuRows[i].Items = visibleItems(menuRows[i].Items)
		menuDTOs = append(menuDTOs, *menus.FromModel(&menuRows[i]))
	}

	page, err := s.pages.FindHomepage(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no published homepage")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup homepage")
	}

	sectionDTOs, err := s.resolveSections(ctx, page.ID)
	if err != nil {
		return nil, err
	}

	return &LandingDTO{
		Settings: siteSettings,
		Menus:    menuDTOs,
		Page:     pages.FromModel(page),
		Sections: sectionDTOs,
	}, nil
}

// ResolvePage resolves a single published page by slug for public viewing.
func (s *service) ResolvePage(ctx context.Context, slug string) (*PageViewDTO, error) {
	page, err := s.pages.FindBySlug(ctx, pages.Slugify(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup page")
	}
	if page.Status != enums.PageStatusPublished {
		// Draft pages are invisible to the public surface.
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
	}

	sectionDTOs, err := s.resolveSections(ctx, page.ID)
	if err != nil {
		return nil, err
	}
	return &PageViewDTO{Page: pages.FromModel(page), Sections: sectionDTOs}, nil
}

func (s *service) resolveSections(ctx context.Context, pageID uuid.UUID) ([]sections.SectionDTO, error) {
	rows, err := s.sections.ListVisibleByPage(ctx, pageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sections")
	}

	out := make([]sections.SectionDTO, 0, len(rows))
	for i := range rows {
		rows[i].Contents = publishedPlacements(rows[i].Contents)
		out = append(out, *sections.FromModel(&rows[i]))
	}
	return out, nil
}

func publishedPlacements(placements []models.SectionContent) []models.SectionContent {
	out := placements[:0]
	for _, placement := range placements {
		if !placement.IsVisible {
			continue
		}
		if placement.Content == nil || placement.Content.Status != enums.ContentStatusPublished {
			continue
		}
		out = append(out, placement)
	}
	return out
}

func visibleItems(items []models.MenuItem) []models.MenuItem {
	out := items[:0]
	for _, item := range items {
		if item.IsVisible {
			out = append(out, item)
		}
	}
	return out
}
