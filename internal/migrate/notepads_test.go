package migrate

import (
	"context"
	"testing"

	"github.com/paperlift/paperlift/internal/models"
)

func TestNotepads(t *testing.T) {
	setup := func(t *testing.T) (*Migrator, *IDMap) {
		t.Helper()
		m, _ := newTestMigrator(t)

		_, users, err := m.Users(context.Background(), []models.LegacyUser{
			{ID: "1", Email: "ada@example.com", Name: "Ada", CreatedAt: "2024-01-02T03:04:05Z"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return m, users
	}

	t.Run("resolves nested folders regardless of row order", func(t *testing.T) {
		m, users := setup(t)

		// Deepest first: grandchild, child, root.
		rows := []models.LegacyNotepad{
			{ID: "3", UserID: "1", ParentID: strptr("2"), Title: "Note", Content: strptr("hello"), CreatedAt: "2024-01-05T00:00:00Z", UpdatedAt: "2024-01-06T00:00:00Z"},
			{ID: "2", UserID: "1", ParentID: strptr("1"), Title: "Subfolder", IsFolder: true, CreatedAt: "2024-01-05T00:00:00Z", UpdatedAt: "2024-01-05T00:00:00Z"},
			{ID: "1", UserID: "1", Title: "Root", IsFolder: true, CreatedAt: "2024-01-05T00:00:00Z", UpdatedAt: "2024-01-05T00:00:00Z"},
		}

		report, mapping, err := m.Notepads(context.Background(), rows, users)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Migrated() != 3 {
			t.Fatalf("expected 3 migrated, got %d", report.Migrated())
		}
		if mapping.Len() != 3 {
			t.Errorf("expected 3 mapped notepads, got %d", mapping.Len())
		}

		// Results keep input order even though processing order differs.
		for i, want := range []string{"3", "2", "1"} {
			if report.Results[i].OldID != want {
				t.Errorf("result %d: expected old id %s, got %s", i, want, report.Results[i].OldID)
			}
		}

		childID, _ := mapping.Resolve("3")
		parentID, _ := mapping.Resolve("2")
		doc, err := m.store.Get("notepads", childID)
		if err != nil {
			t.Fatalf("failed to fetch notepad: %v", err)
		}
		if doc.Fields["parentId"] != parentID {
			t.Errorf("expected parentId %q, got %v", parentID, doc.Fields["parentId"])
		}
	})

	t.Run("dangling parent skips with parent_not_found", func(t *testing.T) {
		m, users := setup(t)

		rows := []models.LegacyNotepad{
			{ID: "5", UserID: "1", ParentID: strptr("404"), Title: "Lost", CreatedAt: "2024-01-05T00:00:00Z", UpdatedAt: "2024-01-05T00:00:00Z"},
			{ID: "6", UserID: "1", Title: "Fine", CreatedAt: "2024-01-05T00:00:00Z", UpdatedAt: "2024-01-05T00:00:00Z"},
		}

		report, mapping, err := m.Notepads(context.Background(), rows, users)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := report.count(StatusParentNotFound); got != 1 {
			t.Errorf("expected 1 parent_not_found, got %d", got)
		}
		if report.Migrated() != 1 {
			t.Errorf("expected 1 migrated, got %d", report.Migrated())
		}
		if _, ok := mapping.Resolve("5"); ok {
			t.Error("skipped notepad should not be mapped")
		}
	})

	t.Run("children of skipped parents are skipped too", func(t *testing.T) {
		m, users := setup(t)

		rows := []models.LegacyNotepad{
			{ID: "7", UserID: "1", ParentID: strptr("404"), Title: "Lost folder", IsFolder: true, CreatedAt: "2024-01-05T00:00:00Z", UpdatedAt: "2024-01-05T00:00:00Z"},
			{ID: "8", UserID: "1", ParentID: strptr("7"), Title: "Lost child", CreatedAt: "2024-01-05T00:00:00Z", UpdatedAt: "2024-01-05T00:00:00Z"},
		}

		report, _, err := m.Notepads(context.Background(), rows, users)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := report.count(StatusParentNotFound); got != 2 {
			t.Errorf("expected 2 parent_not_found, got %d", got)
		}
	})
}
