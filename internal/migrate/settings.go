package migrate

import (
	"context"

	"github.com/paperlift/paperlift/internal/models"
)

// Settings migrates legacy per-user settings rows.
func (m *Migrator) Settings(ctx context.Context, rows []models.LegacyUserSettings, users *IDMap) (*EntityReport, error) {
	if err := m.checkStore(); err != nil {
		return nil, err
	}

	report := newEntityReport(len(rows))

	for _, row := range rows {
		userID, badRef := resolveRef(users, row.UserID, StatusUserNotFound)
		if badRef != "" {
			report.append(Result{OldID: row.ID, Status: badRef})
			continue
		}

		existingID, found, err := m.findByLegacyID("userSettings", row.ID)
		if err != nil {
			return nil, err
		}
		if found {
			report.append(Result{OldID: row.ID, NewID: existingID, Status: StatusExists})
			continue
		}

		fields := map[string]any{
			"userId":               userID,
			"theme":                row.Theme,
			"language":             row.Language,
			"startOfWeek":          row.StartOfWeek,
			"substitutionsEnabled": row.SubstitutionsEnabled,
			"legacyId":             row.ID,
		}

		newID, fatal, err := m.insert(ctx, "userSettings", fields)
		if fatal {
			return nil, err
		}
		if err != nil {
			report.append(errorResult(row.ID, err))
			continue
		}

		report.append(Result{OldID: row.ID, NewID: newID, Status: StatusMigrated})
	}

	m.logger.Info("migrated user settings", "total", report.Total, "migrated", report.Migrated(), "skipped", report.Skipped())
	return report, nil
}
