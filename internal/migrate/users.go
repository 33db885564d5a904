package migrate

import (
	"context"

	"github.com/paperlift/paperlift/internal/models"
)

// Users migrates legacy users and returns the populated user id mapping.
//
// Uniqueness is pre-checked by email: a row whose email already exists in the
// target store is reported as existing and its target id is still recorded
// into the mapping, so dependent entities resolve on re-runs too.
func (m *Migrator) Users(ctx context.Context, rows []models.LegacyUser) (*EntityReport, *IDMap, error) {
	if err := m.checkStore(); err != nil {
		return nil, nil, err
	}

	report := newEntityReport(len(rows))
	mapping := NewIDMap("users")

	for _, row := range rows {
		existing, found, err := m.store.FindByField("users", "email", row.Email)
		if err != nil {
			return nil, nil, err
		}
		if found {
			report.append(Result{OldID: row.ID, NewID: existing.ID, Status: StatusExists})
			mapping.Record(row.ID, existing.ID)
			continue
		}

		createdAt, err := epochMillis(row.CreatedAt)
		if err != nil {
			report.append(errorResult(row.ID, err))
			continue
		}

		fields := map[string]any{
			"email":     row.Email,
			"name":      row.Name,
			"createdAt": createdAt,
			"legacyId":  row.ID,
		}

		newID, fatal, err := m.insert(ctx, "users", fields)
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

	m.logger.Info("migrated users", "total", report.Total, "migrated", report.Migrated(), "exists", report.Exists(), "errors", report.Errored())
	return report, mapping, nil
}
