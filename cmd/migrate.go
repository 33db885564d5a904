package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/paperlift/paperlift/internal/docstore"
	"github.com/paperlift/paperlift/internal/extract"
	"github.com/paperlift/paperlift/internal/formatter"
	"github.com/paperlift/paperlift/internal/migrate"
	"github.com/paperlift/paperlift/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// manifest is the on-disk record of the documents a single run inserted.
type manifest struct {
	CreatedAt string                `json:"createdAt"`
	Inserted  []migrate.InsertedDoc `json:"inserted"`
}

// Run migrates the full legacy dataset into the document store.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	dryRun := cmd.Bool("dry-run")

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

	r.logger.Info("extracting legacy rows", "path", config.Legacy.Path)
	snapshot, err := extract.NewExtractor(db).All()
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	var limiter *rate.Limiter
	if config.Migration.WritesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.Migration.WritesPerSecond), 1)
	}

	// Stream progress to the terminal unless the caller asked for JSON.
	var progressCh chan migrate.ProgressUpdate
	drained := make(chan struct{})
	if cmd.Bool("json") {
		close(drained)
	} else {
		progressCh = make(chan migrate.ProgressUpdate, 50)
		go func() {
			for update := range progressCh {
				r.writePlain("%s\n", update.Message)
			}
			close(drained)
		}()
	}

	pipeline := migrate.NewPipeline(migrate.NewMigrator(store, limiter, r.logger), r.logger)
	report, runErr := pipeline.Run(ctx, snapshot, dryRun, progressCh)
	if progressCh != nil {
		close(progressCh)
	}
	<-drained

	if report != nil && !dryRun && len(report.Inserted) > 0 {
		manifestPath := cmd.String("manifest")
		if manifestPath == "" {
			manifestPath = config.Migration.ManifestPath
		}
		if manifestPath != "" {
			if err := writeManifest(manifestPath, report.Inserted); err != nil {
				r.logger.Warn("failed to write run manifest", "path", manifestPath, "error", err)
			} else {
				r.logger.Info("run manifest written", "path", manifestPath, "documents", len(report.Inserted))
			}
		}
	}

	if runErr != nil {
		return runErr
	}

	if reportPath := cmd.String("report"); reportPath != "" {
		written, err := formatter.WriteReport(report, reportPath)
		if err != nil {
			r.logger.Warn("failed to write run report", "path", reportPath, "error", err)
		} else {
			r.logger.Info("run report written", "path", written)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}

	if dryRun {
		r.writePlainHeader("Dry Run")
		for _, table := range docstore.Tables {
			r.writePlain("%-20s %d rows\n", table, report.Planned[table])
		}
		return nil
	}

	r.writePlainHeader("Migration Complete")
	for _, outcome := range report.Entities {
		rep := outcome.Report
		r.writePlain("%-20s %d migrated, %d existing, %d skipped, %d errors\n",
			outcome.Entity, rep.Migrated(), rep.Exists(), rep.Skipped(), rep.Errored())
	}
	r.writePlain("\nInserted %d documents\n", len(report.Inserted))
	return nil
}

// Validate checks counts and referential integrity of the migrated documents.
func (r *Runner) Validate(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	store, closeStore, err := r.openStore(config)
	if err != nil {
		return err
	}
	defer closeStore()

	report, err := migrate.Validate(store)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Validation")
	for _, table := range docstore.Tables {
		r.writePlain("%-20s %d documents\n", table, report.Counts[table])
	}
	r.writePlain("\n")
	for _, check := range report.Checks {
		mark := "✓"
		if !check.Pass {
			mark = "✗"
		}
		r.writePlain("%s %s\n", mark, check.Name)
	}

	if !report.Passed() {
		return fmt.Errorf("%w: validation checks failed", shared.ErrMigrationFailed)
	}
	return nil
}

// Rollback deletes migrated documents, either from a run manifest or by
// wiping whole tables.
func (r *Runner) Rollback(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	store, closeStore, err := r.openStore(config)
	if err != nil {
		return err
	}
	defer closeStore()

	var results []migrate.TableRollback
	if manifestPath := cmd.String("manifest"); manifestPath != "" {
		inserted, err := readManifest(manifestPath)
		if err != nil {
			return err
		}
		r.logger.Info("rolling back run", "manifest", manifestPath, "documents", len(inserted))
		results = migrate.RollbackRun(store, inserted, r.logger)
	} else {
		tables := cmd.StringSlice("tables")
		if len(tables) == 0 {
			tables = config.Migration.RollbackTables
		}
		results = migrate.Rollback(store, tables, r.logger)
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, true)
	}

	r.writePlainHeader("Rollback")
	for _, res := range results {
		r.writePlain("%-20s deleted %d (%s)\n", res.Table, res.Deleted, res.Status)
	}
	return nil
}

func writeManifest(path string, inserted []migrate.InsertedDoc) error {
	data, err := json.MarshalIndent(manifest{
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Inserted:  inserted,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create manifest directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

func readManifest(path string) ([]migrate.InsertedDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Inserted) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrManifestEmpty, path)
	}
	return m.Inserted, nil
}
