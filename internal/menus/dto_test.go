package menus

import (
	"testing"

	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/pkg/db/models"
)

func TestBuildTreeNestsChildrenUnderParents(t *testing.T) {
	rootID := uuid.New()
	childID := uuid.New()
	grandchildID := uuid.New()

	items := []models.MenuItem{
		{ID: rootID, Title: "Products", SortOrder: 0},
		{ID: childID, ParentID: &rootID, Title: "Flowers", SortOrder: 0},
		{ID: grandchildID, ParentID: &childID, Title: "Indoor", SortOrder: 0},
		{ID: uuid.New(), Title: "About", SortOrder: 1},
	}

	tree := BuildTree(items)
	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}
	if len(tree[0].Children) != 1 || tree[0].Children[0].ID != childID {
		t.Fatalf("expected child nested under root")
	}
	if len(tree[0].Children[0].Children) != 1 || tree[0].Children[0].Children[0].ID != grandchildID {
		t.Fatalf("expected grandchild nested two levels deep")
	}
}

func TestBuildTreeOrphanedChildIsDropped(t *testing.T) {
	missing := uuid.New()
	items := []models.MenuItem{
		{ID: uuid.New(), ParentID: &missing, Title: "Orphan"},
	}
	if tree := BuildTree(items); len(tree) != 0 {
		t.Fatalf("expected orphaned items to be excluded, got %d roots", len(tree))
	}
}
