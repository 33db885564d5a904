package main

import (
	"context"
	"fmt"

	"github.com/paperlift/paperlift/internal/extract"
	"github.com/urfave/cli/v3"
)

// Inspect prints row counts for the legacy database and document counts for
// the target store, side by side.
func (r *Runner) Inspect(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, closeDB, err := r.openLegacy(config)
	if err != nil {
		return err
	}
	defer closeDB()

	store, closeStore, err := r.openStore(config)
	if err != nil {
		return err
	}
	defer closeStore()

	legacyCounts, err := extract.NewExtractor(db).Counts()
	if err != nil {
		return fmt.Errorf("failed to count legacy rows: %w", err)
	}

	targetCounts := make(map[string]int, len(extract.Tables))
	for _, table := range extract.Tables {
		n, err := store.Count(table.Target)
		if err != nil {
			return fmt.Errorf("failed to count documents in %s: %w", table.Target, err)
		}
		targetCounts[table.Target] = n
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"legacy": legacyCounts,
			"target": targetCounts,
		}, true)
	}

	r.writePlainHeader("Inspect")
	r.writePlain("%-22s %8s %8s\n", "table", "legacy", "target")
	for _, table := range extract.Tables {
		r.writePlain("%-22s %8d %8d\n", table.Target, legacyCounts[table.Legacy], targetCounts[table.Target])
	}
	return nil
}
