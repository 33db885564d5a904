package migrate

import (
	"context"
	"testing"

	"github.com/paperlift/paperlift/internal/models"
)

func TestSharedNotes(t *testing.T) {
	m, _ := newTestMigrator(t)

	_, users, err := m.Users(context.Background(), []models.LegacyUser{
		{ID: "1", Email: "ada@example.com", Name: "Ada", CreatedAt: "2024-01-02T03:04:05Z"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, notepads, err := m.Notepads(context.Background(), []models.LegacyNotepad{
		{ID: "1", UserID: "1", Title: "Note", CreatedAt: "2024-01-05T00:00:00Z", UpdatedAt: "2024-01-05T00:00:00Z"},
	}, users)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := []models.LegacySharedNote{
		{ID: "50", NotepadID: "1", ShareToken: "tok-abc", CreatedAt: "2024-01-06T00:00:00Z", ExpiresAt: strptr("2024-06-01T00:00:00Z")},
		{ID: "51", NotepadID: "404", ShareToken: "tok-def", CreatedAt: "2024-01-06T00:00:00Z"},
	}

	report, err := m.SharedNotes(context.Background(), rows, notepads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Migrated() != 1 {
		t.Errorf("expected 1 migrated, got %d", report.Migrated())
	}
	if got := report.count(StatusNotepadNotFound); got != 1 {
		t.Errorf("expected 1 notepad_not_found, got %d", got)
	}

	doc, err := m.store.Get("sharedNotes", report.Results[0].NewID)
	if err != nil {
		t.Fatalf("failed to fetch shared note: %v", err)
	}
	if doc.Fields["shareToken"] != "tok-abc" {
		t.Errorf("unexpected shareToken %v", doc.Fields["shareToken"])
	}
	wantNotepad, _ := notepads.Resolve("1")
	if doc.Fields["notepadId"] != wantNotepad {
		t.Errorf("expected notepadId %q, got %v", wantNotepad, doc.Fields["notepadId"])
	}
	if _, present := doc.Fields["expiresAt"]; !present {
		t.Error("expected expiresAt to be set")
	}
}
