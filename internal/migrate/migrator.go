package migrate

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/paperlift/paperlift/internal/docstore"
	"github.com/paperlift/paperlift/internal/shared"
	"golang.org/x/time/rate"
)

// Migrator moves legacy rows into the target document store, one entity at a
// time. Rows are processed strictly in input order on a single logical
// thread; the optional limiter throttles inserts.
type Migrator struct {
	store   *docstore.Store
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewMigrator creates a Migrator over the given target store. limiter may be
// nil for unthrottled runs; logger defaults to stderr.
func NewMigrator(store *docstore.Store, limiter *rate.Limiter, logger *log.Logger) *Migrator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Migrator{store: store, limiter: limiter, logger: logger}
}

// checkStore is the common malformed-input guard run before any row is
// processed. Its failure is step-level and aborts the whole run.
func (m *Migrator) checkStore() error {
	if m.store == nil {
		return fmt.Errorf("%w: target store not initialized", shared.ErrTargetUnavailable)
	}
	return nil
}

// wait blocks until the limiter admits one insert, or the context is
// canceled. A nil limiter only checks cancellation.
func (m *Migrator) wait(ctx context.Context) error {
	if m.limiter != nil {
		return m.limiter.Wait(ctx)
	}
	return ctx.Err()
}

// findByLegacyID runs the idempotency pre-check: every migrated document
// carries its legacy id, so a re-run finds rows inserted by a previous
// (possibly crashed) run and reports them as existing instead of duplicating
// them. Query failure here is step-level fatal.
func (m *Migrator) findByLegacyID(table, oldID string) (string, bool, error) {
	doc, found, err := m.store.FindByField(table, "legacyId", oldID)
	if err != nil {
		return "", false, fmt.Errorf("pre-check on %s: %w", table, err)
	}
	if !found {
		return "", false, nil
	}
	return doc.ID, true, nil
}

// insert writes one document, honoring the rate limiter. The returned error
// distinguishes fatal cancellation (fatal == true) from a row-level insert
// failure.
func (m *Migrator) insert(ctx context.Context, table string, fields map[string]any) (id string, fatal bool, err error) {
	if err := m.wait(ctx); err != nil {
		return "", true, fmt.Errorf("migration canceled: %w", err)
	}
	id, err = m.store.Insert(table, fields)
	if err != nil {
		return "", false, err
	}
	return id, false, nil
}

// resolveRef resolves a single foreign key through mapping. When the legacy
// id is unknown the supplied missing status is returned; when the mapped
// value is not a well-formed target id the row is failed with
// StatusInvalidForeignKey rather than trusting the mapping.
func resolveRef(mapping *IDMap, oldID string, missing Status) (string, Status) {
	newID, ok := mapping.Resolve(oldID)
	if !ok {
		return "", missing
	}
	if !shared.IsValidID(newID) {
		return "", StatusInvalidForeignKey
	}
	return newID, ""
}

// epochMillis converts an RFC3339 timestamp to the target store's native
// epoch-millisecond representation.
func epochMillis(iso string) (int64, error) {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", iso, err)
	}
	return t.UnixMilli(), nil
}

// setOptionalMillis parses an optional RFC3339 timestamp into fields under
// key, omitting the field entirely when the value is absent.
func setOptionalMillis(fields map[string]any, key string, iso *string) error {
	if iso == nil {
		return nil
	}
	ms, err := epochMillis(*iso)
	if err != nil {
		return err
	}
	fields[key] = ms
	return nil
}

// setOptionalString stores an optional string into fields under key, omitting
// the field entirely when the value is absent.
func setOptionalString(fields map[string]any, key string, s *string) {
	if s != nil {
		fields[key] = *s
	}
}
