package formatter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paperlift/paperlift/internal/migrate"
)

func sampleReport() *migrate.RunReport {
	users := &migrate.EntityReport{
		Total: 2,
		Results: []migrate.Result{
			{OldID: "1", NewID: "aaa", Status: migrate.StatusMigrated},
			{OldID: "2", NewID: "bbb", Status: migrate.StatusExists},
		},
	}
	boards := &migrate.EntityReport{
		Total: 2,
		Results: []migrate.Result{
			{OldID: "10", NewID: "ccc", Status: migrate.StatusMigrated},
			{OldID: "11", Status: migrate.StatusUserNotFound},
		},
	}
	return &migrate.RunReport{
		Success: true,
		Entities: []migrate.EntityOutcome{
			{Entity: "users", Report: users},
			{Entity: "boards", Report: boards},
		},
		Inserted: []migrate.InsertedDoc{
			{Table: "users", ID: "aaa"},
			{Table: "boards", ID: "ccc"},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected header plus 4 rows, got %d", len(records))
	}
	if records[0][0] != "Entity" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[4][3] != "user_not_found" {
		t.Errorf("expected skip status in last row, got %v", records[4])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := string(data)
	if !strings.Contains(text, "# Migration Report") {
		t.Error("expected report title")
	}
	if !strings.Contains(text, "### boards") {
		t.Error("expected per-entity section")
	}
	if !strings.Contains(text, "legacy id 11: user_not_found") {
		t.Error("expected skipped row detail")
	}
	if strings.Contains(text, "legacy id 1:") {
		t.Error("migrated rows should not be listed")
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := string(data)
	if !strings.Contains(text, "users: 1 migrated, 1 existing") {
		t.Errorf("unexpected text output: %q", text)
	}
	if !strings.Contains(text, "Documents inserted: 2") {
		t.Errorf("expected insert count: %q", text)
	}
}

func TestWriteReport(t *testing.T) {
	t.Run("picks format by extension", func(t *testing.T) {
		dir := t.TempDir()

		for _, name := range []string{"report.csv", "report.md", "report.txt"} {
			path, err := WriteReport(sampleReport(), filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("report not written: %v", err)
			}
			if len(data) == 0 {
				t.Errorf("empty report for %s", name)
			}
		}

		md, _ := os.ReadFile(filepath.Join(dir, "report.md"))
		if !strings.Contains(string(md), "# Migration Report") {
			t.Error("markdown report missing title")
		}
	})

	t.Run("dry run report lists planned counts", func(t *testing.T) {
		report := &migrate.RunReport{
			Success: true,
			DryRun:  true,
			Planned: map[string]int{"users": 3},
		}
		data, err := ExportToMarkdown(report)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(data), "users: 3 rows") {
			t.Errorf("expected planned counts: %q", string(data))
		}
	})
}
