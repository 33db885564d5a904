// package formatter provides functions to export migration run reports to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/paperlift/paperlift/internal/migrate"
)

// ExportToCSV converts a RunReport to CSV format with columns: Entity, LegacyID, NewID, Status, Error
func ExportToCSV(report *migrate.RunReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Entity", "LegacyID", "NewID", "Status", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, outcome := range report.Entities {
		for _, res := range outcome.Report.Results {
			record := []string{
				outcome.Entity,
				res.OldID,
				res.NewID,
				string(res.Status),
				res.Error,
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a RunReport to Markdown format with per-entity summaries and skipped row details
func ExportToMarkdown(report *migrate.RunReport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Migration Report\n\n")
	buf.WriteString(fmt.Sprintf("**Success**: %s\n", strconv.FormatBool(report.Success)))
	buf.WriteString(fmt.Sprintf("**Dry run**: %s\n", strconv.FormatBool(report.DryRun)))
	buf.WriteString(fmt.Sprintf("**Documents inserted**: %d\n\n", len(report.Inserted)))

	if report.DryRun {
		buf.WriteString("## Planned\n\n")
		for table, n := range report.Planned {
			buf.WriteString(fmt.Sprintf("- %s: %d rows\n", table, n))
		}
		return buf.Bytes(), nil
	}

	buf.WriteString("## Entities\n\n")
	for _, outcome := range report.Entities {
		rep := outcome.Report
		buf.WriteString(fmt.Sprintf("### %s\n\n", outcome.Entity))
		buf.WriteString(fmt.Sprintf("%d total, %d migrated, %d existing, %d skipped, %d errors\n\n",
			rep.Total, rep.Migrated(), rep.Exists(), rep.Skipped(), rep.Errored()))

		for _, res := range rep.Results {
			if res.Status == migrate.StatusMigrated || res.Status == migrate.StatusExists {
				continue
			}
			if res.Error != "" {
				buf.WriteString(fmt.Sprintf("- legacy id %s: %s (%s)\n", res.OldID, res.Status, res.Error))
			} else {
				buf.WriteString(fmt.Sprintf("- legacy id %s: %s\n", res.OldID, res.Status))
			}
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a RunReport to plain text format
func ExportToText(report *migrate.RunReport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Migration report (success: %v, dry run: %v)\n\n", report.Success, report.DryRun))

	if report.DryRun {
		for table, n := range report.Planned {
			buf.WriteString(fmt.Sprintf("%s: %d rows\n", table, n))
		}
		return buf.Bytes(), nil
	}

	for _, outcome := range report.Entities {
		rep := outcome.Report
		buf.WriteString(fmt.Sprintf("%s: %d migrated, %d existing, %d skipped, %d errors\n",
			outcome.Entity, rep.Migrated(), rep.Exists(), rep.Skipped(), rep.Errored()))
	}
	buf.WriteString(fmt.Sprintf("\nDocuments inserted: %d\n", len(report.Inserted)))

	return buf.Bytes(), nil
}

// WriteReport writes a RunReport to path, choosing the format by file extension.
//
// ".csv" produces the per-row CSV, ".md" the Markdown summary, anything else plain text.
func WriteReport(report *migrate.RunReport, path string) (string, error) {
	if path == "" {
		path = "paperlift-report.txt"
	}

	var data []byte
	var err error
	switch filepath.Ext(path) {
	case ".csv":
		data, err = ExportToCSV(report)
	case ".md":
		data, err = ExportToMarkdown(report)
	default:
		data, err = ExportToText(report)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}
