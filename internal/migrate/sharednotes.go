package migrate

import (
	"context"

	"github.com/paperlift/paperlift/internal/models"
)

// SharedNotes migrates public share links. A share link is only carried over
// when the notepad it points at was migrated.
func (m *Migrator) SharedNotes(ctx context.Context, rows []models.LegacySharedNote, notepads *IDMap) (*EntityReport, error) {
	if err := m.checkStore(); err != nil {
		return nil, err
	}

	report := newEntityReport(len(rows))

	for _, row := range rows {
		notepadID, bad := resolveRef(notepads, row.NotepadID, StatusNotepadNotFound)
		if bad != "" {
			report.append(Result{OldID: row.ID, Status: bad})
			continue
		}

		existingID, found, err := m.findByLegacyID("sharedNotes", row.ID)
		if err != nil {
			return nil, err
		}
		if found {
			report.append(Result{OldID: row.ID, NewID: existingID, Status: StatusExists})
			continue
		}

		createdAt, err := epochMillis(row.CreatedAt)
		if err != nil {
			report.append(errorResult(row.ID, err))
			continue
		}

		fields := map[string]any{
			"notepadId":  notepadID,
			"shareToken": row.ShareToken,
			"createdAt":  createdAt,
			"legacyId":   row.ID,
		}
		if err := setOptionalMillis(fields, "expiresAt", row.ExpiresAt); err != nil {
			report.append(errorResult(row.ID, err))
			continue
		}

		newID, fatal, err := m.insert(ctx, "sharedNotes", fields)
		if fatal {
			return nil, err
		}
		if err != nil {
			report.append(errorResult(row.ID, err))
			continue
		}

		report.append(Result{OldID: row.ID, NewID: newID, Status: StatusMigrated})
	}

	m.logger.Info("migrated shared notes", "total", report.Total, "migrated", report.Migrated(), "skipped", report.Skipped())
	return report, nil
}
