package migrate

import (
	"context"

	"github.com/paperlift/paperlift/internal/models"
)

// Notepads migrates notes and folders. Notepads form a tree through parentId,
// and the legacy export is not guaranteed to list parents before children, so
// rows are processed in passes: each pass migrates every row whose parent is
// already mapped, and the loop repeats until a pass makes no progress. Rows
// still unresolved at that point reference a parent that was never migrated
// and are skipped with parent_not_found.
func (m *Migrator) Notepads(ctx context.Context, rows []models.LegacyNotepad, users *IDMap) (*EntityReport, *IDMap, error) {
	if err := m.checkStore(); err != nil {
		return nil, nil, err
	}

	report := newEntityReport(len(rows))
	mapping := NewIDMap("notepads")

	results := make([]*Result, len(rows))
	pending := make([]int, 0, len(rows))
	for i := range rows {
		pending = append(pending, i)
	}

	for len(pending) > 0 {
		progressed := false
		remaining := pending[:0]

		for _, i := range pending {
			row := rows[i]

			if row.ParentID != nil {
				if _, ok := mapping.Resolve(*row.ParentID); !ok {
					remaining = append(remaining, i)
					continue
				}
			}

			res, fatal, err := m.migrateNotepad(ctx, row, users, mapping)
			if fatal {
				return nil, nil, err
			}
			results[i] = res
			progressed = true
		}

		if !progressed {
			break
		}
		pending = remaining
	}

	for _, i := range pending {
		results[i] = &Result{OldID: rows[i].ID, Status: StatusParentNotFound}
	}

	for _, res := range results {
		report.append(*res)
	}

	m.logger.Info("migrated notepads", "total", report.Total, "migrated", report.Migrated(), "skipped", report.Skipped())
	return report, mapping, nil
}

func (m *Migrator) migrateNotepad(ctx context.Context, row models.LegacyNotepad, users, mapping *IDMap) (*Result, bool, error) {
	userID, bad := resolveRef(users, row.UserID, StatusUserNotFound)
	if bad != "" {
		return &Result{OldID: row.ID, Status: bad}, false, nil
	}

	existingID, found, err := m.findByLegacyID("notepads", row.ID)
	if err != nil {
		return nil, true, err
	}
	if found {
		mapping.Record(row.ID, existingID)
		return &Result{OldID: row.ID, NewID: existingID, Status: StatusExists}, false, nil
	}

	createdAt, err := epochMillis(row.CreatedAt)
	if err != nil {
		res := errorResult(row.ID, err)
		return &res, false, nil
	}
	updatedAt, err := epochMillis(row.UpdatedAt)
	if err != nil {
		res := errorResult(row.ID, err)
		return &res, false, nil
	}

	fields := map[string]any{
		"userId":    userID,
		"title":     row.Title,
		"isFolder":  row.IsFolder,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
		"legacyId":  row.ID,
	}
	setOptionalString(fields, "content", row.Content)

	if row.ParentID != nil {
		parentID, bad := resolveRef(mapping, *row.ParentID, StatusParentNotFound)
		if bad != "" {
			return &Result{OldID: row.ID, Status: bad}, false, nil
		}
		fields["parentId"] = parentID
	}

	newID, fatal, err := m.insert(ctx, "notepads", fields)
	if fatal {
		return nil, true, err
	}
	if err != nil {
		res := errorResult(row.ID, err)
		return &res, false, nil
	}

	mapping.Record(row.ID, newID)
	return &Result{OldID: row.ID, NewID: newID, Status: StatusMigrated}, false, nil
}
