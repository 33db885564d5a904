package migrate

import (
	"context"

	"github.com/paperlift/paperlift/internal/models"
)

// DictionaryEntries migrates text substitution rules.
func (m *Migrator) DictionaryEntries(ctx context.Context, rows []models.LegacyDictionaryEntry, users *IDMap) (*EntityReport, error) {
	if err := m.checkStore(); err != nil {
		return nil, err
	}

	report := newEntityReport(len(rows))

	for _, row := range rows {
		userID, bad := resolveRef(users, row.UserID, StatusUserNotFound)
		if bad != "" {
			report.append(Result{OldID: row.ID, Status: bad})
			continue
		}

		existingID, found, err := m.findByLegacyID("dictionaryEntries", row.ID)
		if err != nil {
			return nil, err
		}
		if found {
			report.append(Result{OldID: row.ID, NewID: existingID, Status: StatusExists})
			continue
		}

		fields := map[string]any{
			"userId":      userID,
			"pattern":     row.Pattern,
			"replacement": row.Replacement,
			"enabled":     row.Enabled,
			"legacyId":    row.ID,
		}

		newID, fatal, err := m.insert(ctx, "dictionaryEntries", fields)
		if fatal {
			return nil, err
		}
		if err != nil {
			report.append(errorResult(row.ID, err))
			continue
		}

		report.append(Result{OldID: row.ID, NewID: newID, Status: StatusMigrated})
	}

	m.logger.Info("migrated dictionary entries", "total", report.Total, "migrated", report.Migrated(), "skipped", report.Skipped())
	return report, nil
}
