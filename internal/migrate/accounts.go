package migrate

import (
	"context"

	"github.com/paperlift/paperlift/internal/models"
)

// Accounts migrates legacy auth-provider accounts. Rows whose user reference
// is absent from the user mapping are skipped with user_not_found.
func (m *Migrator) Accounts(ctx context.Context, rows []models.LegacyAccount, users *IDMap) (*EntityReport, error) {
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

		existingID, found, err := m.findByLegacyID("accounts", row.ID)
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
			"userId":            userID,
			"provider":          row.Provider,
			"providerAccountId": row.ProviderAccountID,
			"createdAt":         createdAt,
			"legacyId":          row.ID,
		}

		newID, fatal, err := m.insert(ctx, "accounts", fields)
		if fatal {
			return nil, err
		}
		if err != nil {
			report.append(errorResult(row.ID, err))
			continue
		}

		report.append(Result{OldID: row.ID, NewID: newID, Status: StatusMigrated})
	}

	m.logger.Info("migrated accounts", "total", report.Total, "migrated", report.Migrated(), "skipped", report.Skipped())
	return report, nil
}
