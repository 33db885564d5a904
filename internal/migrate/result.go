package migrate

// Status classifies the outcome of migrating one legacy row.
type Status string

const (
	// StatusMigrated means the row was inserted into the target store.
	StatusMigrated Status = "migrated"
	// StatusExists means an equivalent target document already existed; the
	// existing id is reported and no insert happened.
	StatusExists Status = "exists"
	// StatusUserNotFound means the row's user reference was absent from the
	// user id mapping.
	StatusUserNotFound Status = "user_not_found"
	// StatusDependenciesNotFound means at least one of several required
	// references (e.g. a task's user and board) failed to resolve.
	StatusDependenciesNotFound Status = "dependencies_not_found"
	// StatusParentNotFound means a notepad's parent never became resolvable.
	StatusParentNotFound Status = "parent_not_found"
	// StatusNotepadNotFound means a shared note's notepad reference was absent
	// from the notepad id mapping.
	StatusNotepadNotFound Status = "notepad_not_found"
	// StatusInvalidForeignKey means a reference resolved to something that is
	// not a well-formed target-store id. The row is failed explicitly instead
	// of trusting the mapping.
	StatusInvalidForeignKey Status = "invalid_foreign_key"
	// StatusError means the insert (or the row's field transform) failed; the
	// error text is carried on the result.
	StatusError Status = "error"
)

// Skipped reports whether the status represents a row skipped for an
// unresolved or malformed reference.
func (s Status) Skipped() bool {
	switch s {
	case StatusUserNotFound, StatusDependenciesNotFound, StatusParentNotFound,
		StatusNotepadNotFound, StatusInvalidForeignKey:
		return true
	}
	return false
}

// Result is the outcome record for one legacy row. Exactly one Result is
// produced per source row; it is never mutated after creation.
type Result struct {
	OldID  string `json:"oldId"`
	NewID  string `json:"newId,omitempty"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// EntityReport accumulates the results of migrating one entity's rows.
type EntityReport struct {
	Total   int      `json:"total"`
	Results []Result `json:"results"`
}

func newEntityReport(total int) *EntityReport {
	return &EntityReport{Total: total, Results: make([]Result, 0, total)}
}

func (r *EntityReport) append(res Result) {
	r.Results = append(r.Results, res)
}

// Migrated counts rows inserted into the target store.
func (r *EntityReport) Migrated() int { return r.count(StatusMigrated) }

// Exists counts rows that already had an equivalent target document.
func (r *EntityReport) Exists() int { return r.count(StatusExists) }

// Errored counts rows whose insert or transform failed.
func (r *EntityReport) Errored() int { return r.count(StatusError) }

// Skipped counts rows skipped for unresolved or malformed references.
func (r *EntityReport) Skipped() int {
	n := 0
	for _, res := range r.Results {
		if res.Status.Skipped() {
			n++
		}
	}
	return n
}

func (r *EntityReport) count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

func errorResult(oldID string, err error) Result {
	return Result{OldID: oldID, Status: StatusError, Error: err.Error()}
}
