package migrate

import (
	"context"

	"github.com/paperlift/paperlift/internal/models"
)

// Tasks migrates legacy board tasks. A task needs both its user and its board
// to resolve; if either is absent the row is skipped with
// dependencies_not_found.
func (m *Migrator) Tasks(ctx context.Context, rows []models.LegacyTask, users, boards *IDMap) (*EntityReport, error) {
	if err := m.checkStore(); err != nil {
		return nil, err
	}

	report := newEntityReport(len(rows))

	for _, row := range rows {
		userID, badUser := resolveRef(users, row.UserID, StatusDependenciesNotFound)
		boardID, badBoard := resolveRef(boards, row.BoardID, StatusDependenciesNotFound)
		if badUser != "" || badBoard != "" {
			status := badUser
			if status == "" {
				status = badBoard
			}
			report.append(Result{OldID: row.ID, Status: status})
			continue
		}

		existingID, found, err := m.findByLegacyID("tasks", row.ID)
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
			"boardId":   boardID,
			"userId":    userID,
			"title":     row.Title,
			"column":    row.Column,
			"position":  row.Position,
			"createdAt": createdAt,
			"legacyId":  row.ID,
		}
		setOptionalString(fields, "description", row.Description)
		if err := setOptionalMillis(fields, "dueDate", row.DueDate); err != nil {
			report.append(errorResult(row.ID, err))
			continue
		}

		newID, fatal, err := m.insert(ctx, "tasks", fields)
		if fatal {
			return nil, err
		}
		if err != nil {
			report.append(errorResult(row.ID, err))
			continue
		}

		report.append(Result{OldID: row.ID, NewID: newID, Status: StatusMigrated})
	}

	m.logger.Info("migrated tasks", "total", report.Total, "migrated", report.Migrated(), "skipped", report.Skipped())
	return report, nil
}
