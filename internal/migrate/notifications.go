package migrate

import (
	"context"

	"github.com/paperlift/paperlift/internal/models"
)

// Notifications migrates legacy reminders, including ones already sent.
func (m *Migrator) Notifications(ctx context.Context, rows []models.LegacyNotification, users *IDMap) (*EntityReport, error) {
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

		existingID, found, err := m.findByLegacyID("notifications", row.ID)
		if err != nil {
			return nil, err
		}
		if found {
			report.append(Result{OldID: row.ID, NewID: existingID, Status: StatusExists})
			continue
		}

		notifyAt, err := epochMillis(row.NotifyAt)
		if err != nil {
			report.append(errorResult(row.ID, err))
			continue
		}

		fields := map[string]any{
			"userId":   userID,
			"title":    row.Title,
			"notifyAt": notifyAt,
			"sent":     row.Sent,
			"legacyId": row.ID,
		}
		setOptionalString(fields, "body", row.Body)
		setOptionalString(fields, "repeatInterval", row.RepeatInterval)

		newID, fatal, err := m.insert(ctx, "notifications", fields)
		if fatal {
			return nil, err
		}
		if err != nil {
			report.append(errorResult(row.ID, err))
			continue
		}

		report.append(Result{OldID: row.ID, NewID: newID, Status: StatusMigrated})
	}

	m.logger.Info("migrated notifications", "total", report.Total, "migrated", report.Migrated(), "skipped", report.Skipped())
	return report, nil
}
