package migrate

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/paperlift/paperlift/internal/docstore"
	"github.com/paperlift/paperlift/internal/shared"
)

// TableRollback is the outcome of wiping a single table.
type TableRollback struct {
	Table   string `json:"table"`
	Deleted int    `json:"deleted"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// Rollback deletes every document in the given tables. A nil or empty table
// list wipes all known tables. Failures on one table do not stop the others.
func Rollback(store *docstore.Store, tables []string, logger *log.Logger) []TableRollback {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if len(tables) == 0 {
		tables = docstore.Tables
	}

	results := make([]TableRollback, 0, len(tables))
	for _, table := range tables {
		deleted, err := store.DeleteAll(table)
		if err != nil {
			logger.Error("rollback failed", "table", table, "error", err)
			results = append(results, TableRollback{Table: table, Deleted: deleted, Status: "error", Error: err.Error()})
			continue
		}
		logger.Info("rolled back table", "table", table, "deleted", deleted)
		results = append(results, TableRollback{Table: table, Deleted: deleted, Status: "success"})
	}
	return results
}

// RollbackRun deletes only the documents recorded in a run manifest, leaving
// documents that existed before the run untouched. Documents already gone are
// not counted as failures.
func RollbackRun(store *docstore.Store, inserted []InsertedDoc, logger *log.Logger) []TableRollback {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	byTable := make(map[string][]string)
	order := make([]string, 0)
	for _, doc := range inserted {
		if _, ok := byTable[doc.Table]; !ok {
			order = append(order, doc.Table)
		}
		byTable[doc.Table] = append(byTable[doc.Table], doc.ID)
	}

	results := make([]TableRollback, 0, len(order))
	for _, table := range order {
		res := TableRollback{Table: table, Status: "success"}
		for _, id := range byTable[table] {
			err := store.Delete(table, id)
			if err != nil {
				if errors.Is(err, shared.ErrDocumentNotFound) {
					continue
				}
				logger.Error("rollback failed", "table", table, "id", id, "error", err)
				res.Status = "error"
				res.Error = err.Error()
				continue
			}
			res.Deleted++
		}
		logger.Info("rolled back run", "table", table, "deleted", res.Deleted)
		results = append(results, res)
	}
	return results
}
