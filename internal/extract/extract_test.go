package extract

import (
	"testing"
	"time"

	"github.com/paperlift/paperlift/internal/docstore"
	tu "github.com/paperlift/paperlift/internal/testing"
)

func TestUsers(t *testing.T) {
	db := tu.SetupLegacyDB(t)
	tu.SeedUser(t, db, "u1@x.com", "User One")
	tu.SeedUser(t, db, "u2@x.com", "User Two")

	extractor := NewExtractor(db)
	users, err := extractor.Users()
	if err != nil {
		t.Fatalf("failed to extract users: %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	if users[0].ID != "1" {
		t.Errorf("expected normalized string id '1', got %q", users[0].ID)
	}
	if users[0].Email != "u1@x.com" {
		t.Errorf("expected email u1@x.com, got %s", users[0].Email)
	}

	if _, err := time.Parse(time.RFC3339, users[0].CreatedAt); err != nil {
		t.Errorf("expected RFC3339 timestamp, got %q: %v", users[0].CreatedAt, err)
	}
}

func TestTasks(t *testing.T) {
	db := tu.SetupLegacyDB(t)
	userID := tu.SeedUser(t, db, "u1@x.com", "User One")
	boardID := tu.SeedBoard(t, db, userID, "Work")
	tu.SeedTask(t, db, boardID, userID, "Write report")

	if _, err := db.Exec(
		"INSERT INTO tasks (board_id, user_id, title, description, due_date) VALUES (?, ?, ?, ?, ?)",
		boardID, userID, "With extras", "Longer text", time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC),
	); err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}

	tasks, err := NewExtractor(db).Tasks()
	if err != nil {
		t.Fatalf("failed to extract tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	t.Run("nullable columns become nil", func(t *testing.T) {
		if tasks[0].Description != nil {
			t.Errorf("expected nil description, got %v", *tasks[0].Description)
		}
		if tasks[0].DueDate != nil {
			t.Errorf("expected nil due date, got %v", *tasks[0].DueDate)
		}
	})

	t.Run("present columns become values", func(t *testing.T) {
		if tasks[1].Description == nil || *tasks[1].Description != "Longer text" {
			t.Errorf("expected description to carry over, got %v", tasks[1].Description)
		}
		if tasks[1].DueDate == nil {
			t.Fatal("expected due date to carry over")
		}
		if *tasks[1].DueDate != "2021-06-01T12:00:00Z" {
			t.Errorf("expected RFC3339 due date, got %q", *tasks[1].DueDate)
		}
	})

	t.Run("foreign keys normalized", func(t *testing.T) {
		if tasks[0].BoardID != "1" || tasks[0].UserID != "1" {
			t.Errorf("expected string foreign keys, got board=%q user=%q", tasks[0].BoardID, tasks[0].UserID)
		}
	})
}

func TestNotepads(t *testing.T) {
	db := tu.SetupLegacyDB(t)
	userID := tu.SeedUser(t, db, "u1@x.com", "User One")
	folderID := tu.SeedNotepad(t, db, userID, nil, "Recipes", true)
	tu.SeedNotepad(t, db, userID, &folderID, "Soup", false)

	notepads, err := NewExtractor(db).Notepads()
	if err != nil {
		t.Fatalf("failed to extract notepads: %v", err)
	}
	if len(notepads) != 2 {
		t.Fatalf("expected 2 notepads, got %d", len(notepads))
	}

	if notepads[0].ParentID != nil {
		t.Errorf("expected root notepad to have nil parent, got %v", *notepads[0].ParentID)
	}
	if !notepads[0].IsFolder {
		t.Error("expected first notepad to be a folder")
	}

	if notepads[1].ParentID == nil {
		t.Fatal("expected child notepad to have a parent")
	}
	if *notepads[1].ParentID != "1" {
		t.Errorf("expected parent id '1', got %q", *notepads[1].ParentID)
	}
}

func TestAll(t *testing.T) {
	db := tu.SetupLegacyDB(t)
	userID := tu.SeedUser(t, db, "u1@x.com", "User One")
	tu.SeedAccount(t, db, userID, "github", "gh-123")
	tu.SeedSettings(t, db, userID, "dark")
	boardID := tu.SeedBoard(t, db, userID, "Work")
	tu.SeedTask(t, db, boardID, userID, "Task")
	tu.SeedNotification(t, db, userID, "Reminder", "2021-01-01 09:00:00")
	tu.SeedDictionaryEntry(t, db, userID, "brb", "be right back")
	padID := tu.SeedNotepad(t, db, userID, nil, "Notes", false)
	tu.SeedSharedNote(t, db, padID, "tok-1")

	snapshot, err := NewExtractor(db).All()
	if err != nil {
		t.Fatalf("failed to extract snapshot: %v", err)
	}

	cases := []struct {
		name string
		got  int
	}{
		{"users", len(snapshot.Users)},
		{"accounts", len(snapshot.Accounts)},
		{"settings", len(snapshot.Settings)},
		{"boards", len(snapshot.Boards)},
		{"tasks", len(snapshot.Tasks)},
		{"notifications", len(snapshot.Notifications)},
		{"dictionary entries", len(snapshot.DictionaryEntries)},
		{"notepads", len(snapshot.Notepads)},
		{"shared notes", len(snapshot.SharedNotes)},
	}
	for _, tc := range cases {
		if tc.got != 1 {
			t.Errorf("expected 1 %s, got %d", tc.name, tc.got)
		}
	}
}

func TestCounts(t *testing.T) {
	db := tu.SetupLegacyDB(t)
	userID := tu.SeedUser(t, db, "u1@x.com", "User One")
	tu.SeedBoard(t, db, userID, "A")
	tu.SeedBoard(t, db, userID, "B")

	counts, err := NewExtractor(db).Counts()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}

	if counts["users"] != 1 {
		t.Errorf("expected 1 user, got %d", counts["users"])
	}
	if counts["boards"] != 2 {
		t.Errorf("expected 2 boards, got %d", counts["boards"])
	}
	if counts["tasks"] != 0 {
		t.Errorf("expected 0 tasks, got %d", counts["tasks"])
	}
}

func TestTablesMatchTargetStore(t *testing.T) {
	if len(Tables) != len(docstore.Tables) {
		t.Fatalf("expected %d table pairs, got %d", len(docstore.Tables), len(Tables))
	}
	for i, table := range Tables {
		if table.Target != docstore.Tables[i] {
			t.Errorf("expected target table %q at position %d, got %q", docstore.Tables[i], i, table.Target)
		}
	}
}

func TestExtractorsFailOnMissingSchema(t *testing.T) {
	db := tu.SetupLegacyDB(t)
	if _, err := db.Exec("DROP TABLE boards"); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	extractor := NewExtractor(db)

	if _, err := extractor.Boards(); err == nil {
		t.Error("expected error extracting from missing table")
	}
	if _, err := extractor.All(); err == nil {
		t.Error("expected snapshot extraction to surface the error")
	}
	if _, err := extractor.Counts(); err == nil {
		t.Error("expected counts to surface the error")
	}
}
