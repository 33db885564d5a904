package migrate

import (
	"fmt"

	"github.com/paperlift/paperlift/internal/docstore"
)

// Check is a single referential integrity check over the migrated documents.
type Check struct {
	Name string `json:"name"`
	Pass bool   `json:"pass"`
	Bad  int    `json:"bad,omitempty"`
}

// ValidationReport carries document counts per table and the outcome of each
// integrity check.
type ValidationReport struct {
	Counts map[string]int `json:"counts"`
	Checks []Check        `json:"checks"`
}

// Passed reports whether every check passed.
func (v *ValidationReport) Passed() bool {
	for _, c := range v.Checks {
		if !c.Pass {
			return false
		}
	}
	return true
}

// Validate counts the documents in every table and verifies that migrated
// documents point at documents that exist: boards at users, tasks at boards,
// settings at users, shared notes at notepads.
func Validate(store *docstore.Store) (*ValidationReport, error) {
	report := &ValidationReport{Counts: make(map[string]int)}

	for _, table := range docstore.Tables {
		n, err := store.Count(table)
		if err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		report.Counts[table] = n
	}

	report.Checks = append(report.Checks, Check{
		Name: "users_present",
		Pass: report.Counts["users"] > 0,
	})

	refChecks := []struct {
		name     string
		table    string
		field    string
		refTable string
	}{
		{"boards_have_users", "boards", "userId", "users"},
		{"tasks_have_boards", "tasks", "boardId", "boards"},
		{"settings_have_users", "userSettings", "userId", "users"},
		{"shared_notes_have_notepads", "sharedNotes", "notepadId", "notepads"},
	}

	for _, rc := range refChecks {
		bad, err := countDanglingRefs(store, rc.table, rc.field, rc.refTable)
		if err != nil {
			return nil, err
		}
		report.Checks = append(report.Checks, Check{Name: rc.name, Pass: bad == 0, Bad: bad})
	}

	return report, nil
}

func countDanglingRefs(store *docstore.Store, table, field, refTable string) (int, error) {
	docs, err := store.List(table)
	if err != nil {
		return 0, fmt.Errorf("listing %s: %w", table, err)
	}

	seen := make(map[string]bool)
	refs, err := store.List(refTable)
	if err != nil {
		return 0, fmt.Errorf("listing %s: %w", refTable, err)
	}
	for _, ref := range refs {
		seen[ref.ID] = true
	}

	bad := 0
	for _, doc := range docs {
		id, ok := doc.Fields[field].(string)
		if !ok || !seen[id] {
			bad++
		}
	}
	return bad, nil
}
