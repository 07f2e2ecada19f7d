package menus

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/db/models"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

type stubMenuRepo struct {
	menus map[uuid.UUID]*models.Menu
	items map[uuid.UUID]*models.MenuItem
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{
		menus: map[uuid.UUID]*models.Menu{},
		items: map[uuid.UUID]*models.MenuItem{},
	}
}

func (s *stubMenuRepo) Create(ctx context.Context, menu *models.Menu) (*models.Menu, error) {
	if menu.ID == uuid.Nil {
		menu.ID = uuid.New()
	}
	s.menus[menu.ID] = menu
	return menu, nil
}

func (s *stubMenuRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Menu, error) {
	menu, ok := s.menus[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *menu
	clone.Items = nil
	for _, item := range s.items {
		if item.MenuID == id {
			clone.Items = append(clone.Items, *item)
		}
	}
	return &clone, nil
}

func (s *stubMenuRepo) FindByName(ctx context.Context, name string) (*models.Menu, error) {
	for _, menu := range s.menus {
		if menu.Name == name {
			return menu, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubMenuRepo) List(ctx context.Context) ([]models.Menu, error) {
	out := []models.Menu{}
	for _, menu := range s.menus {
		out = append(out, *menu)
	}
	return out, nil
}

func (s *stubMenuRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Menu, error) {
	menu, ok := s.menus[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		menu.Name = name
	}
	if label, ok := updates["label"].(string); ok {
		menu.Label = label
	}
	return menu, nil
}

func (s *stubMenuRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.menus, id)
	return nil
}

func (s *stubMenuRepo) CreateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	s.items[item.ID] = item
	return item, nil
}

func (s *stubMenuRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubMenuRepo) UpdateItem(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if title, ok := updates["title"].(string); ok {
		item.Title = title
	}
	if parentID, ok := updates["parent_id"].(uuid.UUID); ok {
		item.ParentID = &parentID
	}
	return item, nil
}

func (s *stubMenuRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	delete(s.items, id)
	return nil
}

func assertMenuErrCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s got %s (%v)", code, typed.Code(), err)
	}
}

func TestCreateMenuNormalizesNameAndDefaultsLabel(t *testing.T) {
	repo := newStubMenuRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	menu, err := svc.CreateMenu(context.Background(), CreateMenuInput{Name: "  Header  "})
	if err != nil {
		t.Fatalf("create menu: %v", err)
	}
	if menu.Name != "header" {
		t.Fatalf("expected lowercased name, got %q", menu.Name)
	}
	if menu.Label != "header" {
		t.Fatalf("expected label defaulted to name, got %q", menu.Label)
	}
}

func TestCreateMenuRejectsDuplicateName(t *testing.T) {
	repo := newStubMenuRepo()
	svc, _ := NewService(repo)

	if _, err := svc.CreateMenu(context.Background(), CreateMenuInput{Name: "footer"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateMenu(context.Background(), CreateMenuInput{Name: "Footer"})
	assertMenuErrCode(t, err, pkgerrors.CodeConflict)
}

func TestCreateItemRequiresURLOrPage(t *testing.T) {
	repo := newStubMenuRepo()
	svc, _ := NewService(repo)

	menu, err := svc.CreateMenu(context.Background(), CreateMenuInput{Name: "header"})
	if err != nil {
		t.Fatalf("create menu: %v", err)
	}

	_, err = svc.CreateItem(context.Background(), menu.ID, CreateMenuItemInput{Title: "Home"})
	assertMenuErrCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateItemRejectsParentFromAnotherMenu(t *testing.T) {
	repo := newStubMenuRepo()
	svc, _ := NewService(repo)

	header, _ := svc.CreateMenu(context.Background(), CreateMenuInput{Name: "header"})
	footer, _ := svc.CreateMenu(context.Background(), CreateMenuInput{Name: "footer"})

	url := "/about"
	withItems, err := svc.CreateItem(context.Background(), header.ID, CreateMenuItemInput{Title: "About", URL: &url})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if len(withItems.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(withItems.Items))
	}

	parentID := withItems.Items[0].ID
	_, err = svc.CreateItem(context.Background(), footer.ID, CreateMenuItemInput{
		Title:    "Nested",
		URL:      &url,
		ParentID: &parentID,
	})
	assertMenuErrCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateItemRejectsSelfParent(t *testing.T) {
	repo := newStubMenuRepo()
	svc, _ := NewService(repo)

	menu, _ := svc.CreateMenu(context.Background(), CreateMenuInput{Name: "header"})
	url := "/about"
	withItems, err := svc.CreateItem(context.Background(), menu.ID, CreateMenuItemInput{Title: "About", URL: &url})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	itemID := withItems.Items[0].ID

	_, err = svc.UpdateItem(context.Background(), itemID, UpdateMenuItemInput{ParentID: &itemID})
	assertMenuErrCode(t, err, pkgerrors.CodeValidation)
}

func TestDeleteMenuMissingReturnsNotFound(t *testing.T) {
	repo := newStubMenuRepo()
	svc, _ := NewService(repo)

	err := svc.DeleteMenu(context.Background(), uuid.New())
	assertMenuErrCode(t, err, pkgerrors.CodeNotFound)
}
