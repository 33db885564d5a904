package migrate

import (
	"io"
	"testing"

	"github.com/paperlift/paperlift/internal/docstore"
	"github.com/paperlift/paperlift/internal/shared"
)

func newTestMigrator(t *testing.T) (*Migrator, *docstore.Store) {
	t.Helper()

	store, err := docstore.OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewMigrator(store, nil, shared.NewLogger(io.Discard)), store
}

func strptr(s string) *string {
	return &s
}

func TestEpochMillis(t *testing.T) {
	t.Run("converts RFC3339 to milliseconds", func(t *testing.T) {
		got, err := epochMillis("2024-01-02T03:04:05Z")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 1704164645000 {
			t.Errorf("expected 1704164645000, got %d", got)
		}
	})

	t.Run("rejects malformed timestamps", func(t *testing.T) {
		if _, err := epochMillis("not-a-date"); err == nil {
			t.Error("expected error for malformed timestamp")
		}
	})
}

func TestResolveRef(t *testing.T) {
	mapping := NewIDMap("users")
	mapping.Record("1", "8f14e45f-ea1a-4e6c-9db0-6f5c0c3c8e01")
	mapping.Record("2", "not-a-valid-id")

	t.Run("resolves mapped id", func(t *testing.T) {
		id, status := resolveRef(mapping, "1", StatusUserNotFound)
		if status != "" {
			t.Fatalf("expected no status, got %s", status)
		}
		if id != "8f14e45f-ea1a-4e6c-9db0-6f5c0c3c8e01" {
			t.Errorf("unexpected id %q", id)
		}
	})

	t.Run("unmapped id returns missing status", func(t *testing.T) {
		if _, status := resolveRef(mapping, "99", StatusUserNotFound); status != StatusUserNotFound {
			t.Errorf("expected user_not_found, got %s", status)
		}
	})

	t.Run("malformed mapped id is rejected", func(t *testing.T) {
		if _, status := resolveRef(mapping, "2", StatusUserNotFound); status != StatusInvalidForeignKey {
			t.Errorf("expected invalid_foreign_key, got %s", status)
		}
	})
}

func TestOptionalFields(t *testing.T) {
	t.Run("nil values are omitted", func(t *testing.T) {
		fields := map[string]any{}
		setOptionalString(fields, "description", nil)
		if err := setOptionalMillis(fields, "dueDate", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(fields) != 0 {
			t.Errorf("expected no fields, got %v", fields)
		}
	})

	t.Run("present values are set", func(t *testing.T) {
		fields := map[string]any{}
		setOptionalString(fields, "description", strptr("hello"))
		if err := setOptionalMillis(fields, "dueDate", strptr("2024-01-02T03:04:05Z")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fields["description"] != "hello" {
			t.Errorf("expected description to be set, got %v", fields["description"])
		}
		if fields["dueDate"] != int64(1704164645000) {
			t.Errorf("expected dueDate in millis, got %v", fields["dueDate"])
		}
	})
}
