package migrate

import (
	"context"

	"github.com/paperlift/paperlift/internal/models"
)

// Boards migrates legacy task boards and returns the populated board id
// mapping consumed by the task migrator.
func (m *Migrator) Boards(ctx context.Context, rows []models.LegacyBoard, users *IDMap) (*EntityReport, *IDMap, error) {
	if err := m.checkStore(); err != nil {
		return nil, nil, err
	}

	report := newEntityReport(len(rows))
	mapping := NewIDMap("boards")

	for _, row := range rows {
		userID, badRef := resolveRef(users, row.UserID, StatusUserNotFound)
		if badRef != "" {
			report.append(Result{OldID: row.ID, Status: badRef})
			continue
		}

		existingID, found, err := m.findByLegacyID("boards", row.ID)
		if err != nil {
			return nil, nil, err
		}
		if found {
			report.append(Result{OldID: row.ID, NewID: existingID, Status: StatusExists})
			mapping.Record(row.ID, existingID)
			continue
		}

		createdAt, err := epochMillis(row.CreatedAt)
		if err != nil {
			report.append(errorResult(row.ID, err))
			continue
		}

		fields := map[string]any{
			"userId":    userID,
			"title":     row.Title,
			"position":  row.Position,
			"createdAt": createdAt,
			"legacyId":  row.ID,
		}

		newID, fatal, err := m.insert(ctx, "boards", fields)
		if fatal {
			return nil, nil, err
		}
		if err != nil {
			report.append(errorResult(row.ID, err))
			continue
		}

		report.append(Result{OldID: row.ID, NewID: newID, Status: StatusMigrated})
		mapping.Record(row.ID, newID)
	}

	m.logger.Info("migrated boards", "total", report.Total, "migrated", report.Migrated(), "skipped", report.Skipped())
	return report, mapping, nil
}
