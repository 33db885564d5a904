package migrate

import (
	"context"
	"testing"

	"github.com/paperlift/paperlift/internal/models"
)

func TestUsers(t *testing.T) {
	rows := []models.LegacyUser{
		{ID: "1", Email: "ada@example.com", Name: "Ada", CreatedAt: "2024-01-02T03:04:05Z"},
		{ID: "2", Email: "grace@example.com", Name: "Grace", CreatedAt: "2024-01-03T00:00:00Z"},
		{ID: "3", Email: "linus@example.com", Name: "Linus", CreatedAt: "2024-01-04T00:00:00Z"},
	}

	t.Run("migrates all users", func(t *testing.T) {
		m, store := newTestMigrator(t)

		report, mapping, err := m.Users(context.Background(), rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Migrated() != 3 {
			t.Errorf("expected 3 migrated, got %d", report.Migrated())
		}
		if mapping.Len() != 3 {
			t.Errorf("expected 3 mapped ids, got %d", mapping.Len())
		}

		count, err := store.Count("users")
		if err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 3 {
			t.Errorf("expected 3 documents, got %d", count)
		}

		newID, _ := mapping.Resolve("1")
		doc, err := store.Get("users", newID)
		if err != nil {
			t.Fatalf("failed to fetch migrated user: %v", err)
		}
		if doc.Fields["email"] != "ada@example.com" {
			t.Errorf("unexpected email %v", doc.Fields["email"])
		}
		if doc.Fields["createdAt"] != float64(1704164645000) {
			t.Errorf("expected epoch millis, got %v", doc.Fields["createdAt"])
		}
		if doc.Fields["legacyId"] != "1" {
			t.Errorf("expected legacyId, got %v", doc.Fields["legacyId"])
		}
	})

	t.Run("re-run reports existing without duplicating", func(t *testing.T) {
		m, store := newTestMigrator(t)

		first, firstMapping, err := m.Users(context.Background(), rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Migrated() != 3 {
			t.Fatalf("expected 3 migrated on first run, got %d", first.Migrated())
		}

		second, secondMapping, err := m.Users(context.Background(), rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.Exists() != 3 {
			t.Errorf("expected 3 existing on re-run, got %d", second.Exists())
		}
		if second.Migrated() != 0 {
			t.Errorf("expected 0 migrated on re-run, got %d", second.Migrated())
		}

		count, err := store.Count("users")
		if err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 3 {
			t.Errorf("expected count unchanged at 3, got %d", count)
		}

		for _, old := range []string{"1", "2", "3"} {
			firstID, _ := firstMapping.Resolve(old)
			secondID, ok := secondMapping.Resolve(old)
			if !ok || firstID != secondID {
				t.Errorf("re-run mapping for %s diverged: %q vs %q", old, firstID, secondID)
			}
		}
	})

	t.Run("matching email counts as existing", func(t *testing.T) {
		m, store := newTestMigrator(t)

		if _, err := store.Insert("users", map[string]any{"email": "ada@example.com", "name": "Ada"}); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}

		report, mapping, err := m.Users(context.Background(), rows[:1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Exists() != 1 {
			t.Errorf("expected 1 existing, got %d", report.Exists())
		}
		if _, ok := mapping.Resolve("1"); !ok {
			t.Error("expected existing user to be mapped")
		}
	})
}
