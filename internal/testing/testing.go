// package testing contains shared testing utilities
package testing

import (
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/paperlift/paperlift/internal/shared"
)

// SetupLegacyDB creates an in-memory legacy SQLite database with the full
// schema applied.
func SetupLegacyDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// A pool of one keeps every query on the same in-memory database.
	shared.ConfigureDatabase(db, 1, 1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// SeedUser inserts a legacy user and returns its primary key.
func SeedUser(t *testing.T, db *sql.DB, email, name string) int64 {
	t.Helper()
	return seed(t, db, "INSERT INTO users (email, name) VALUES (?, ?)", email, name)
}

// SeedAccount inserts a legacy account and returns its primary key.
func SeedAccount(t *testing.T, db *sql.DB, userID int64, provider, providerAccountID string) int64 {
	t.Helper()
	return seed(t, db, "INSERT INTO accounts (user_id, provider, provider_account_id) VALUES (?, ?, ?)", userID, provider, providerAccountID)
}

// SeedSettings inserts legacy user settings and returns the primary key.
func SeedSettings(t *testing.T, db *sql.DB, userID int64, theme string) int64 {
	t.Helper()
	return seed(t, db, "INSERT INTO user_settings (user_id, theme) VALUES (?, ?)", userID, theme)
}

// SeedBoard inserts a legacy board and returns its primary key.
func SeedBoard(t *testing.T, db *sql.DB, userID int64, title string) int64 {
	t.Helper()
	return seed(t, db, "INSERT INTO boards (user_id, title) VALUES (?, ?)", userID, title)
}

// SeedTask inserts a legacy task and returns its primary key.
func SeedTask(t *testing.T, db *sql.DB, boardID, userID int64, title string) int64 {
	t.Helper()
	return seed(t, db, "INSERT INTO tasks (board_id, user_id, title) VALUES (?, ?, ?)", boardID, userID, title)
}

// SeedNotification inserts a legacy notification and returns its primary key.
func SeedNotification(t *testing.T, db *sql.DB, userID int64, title, notifyAt string) int64 {
	t.Helper()
	return seed(t, db, "INSERT INTO notifications (user_id, title, notify_at) VALUES (?, ?, ?)", userID, title, notifyAt)
}

// SeedDictionaryEntry inserts a legacy dictionary entry and returns its primary key.
func SeedDictionaryEntry(t *testing.T, db *sql.DB, userID int64, pattern, replacement string) int64 {
	t.Helper()
	return seed(t, db, "INSERT INTO dictionary_entries (user_id, pattern, replacement) VALUES (?, ?, ?)", userID, pattern, replacement)
}

// SeedNotepad inserts a legacy notepad. parentID may be nil for roots.
func SeedNotepad(t *testing.T, db *sql.DB, userID int64, parentID *int64, title string, isFolder bool) int64 {
	t.Helper()
	var parent any
	if parentID != nil {
		parent = *parentID
	}
	return seed(t, db, "INSERT INTO notepads (user_id, parent_id, title, is_folder) VALUES (?, ?, ?, ?)", userID, parent, title, isFolder)
}

// SeedSharedNote inserts a legacy shared note and returns its primary key.
func SeedSharedNote(t *testing.T, db *sql.DB, notepadID int64, token string) int64 {
	t.Helper()
	return seed(t, db, "INSERT INTO shared_notes (notepad_id, share_token) VALUES (?, ?)", notepadID, token)
}

func seed(t *testing.T, db *sql.DB, query string, args ...any) int64 {
	t.Helper()

	result, err := db.Exec(query, args...)
	if err != nil {
		t.Fatalf("failed to seed row: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get seeded row id: %v", err)
	}
	return id
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}
