package migrate

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/paperlift/paperlift/internal/models"
	"github.com/paperlift/paperlift/internal/shared"
)

// EntityOutcome pairs an entity name with its migration report.
type EntityOutcome struct {
	Entity string        `json:"entity"`
	Report *EntityReport `json:"report"`
}

// InsertedDoc records a single document written during a run, for point-in-time
// rollback.
type InsertedDoc struct {
	Table string `json:"table"`
	ID    string `json:"id"`
}

// RunReport contains all data from a full migration run.
type RunReport struct {
	Success        bool              `json:"success"`
	DryRun         bool              `json:"dryRun"`
	Planned        map[string]int    `json:"planned,omitempty"`
	Entities       []EntityOutcome   `json:"entities,omitempty"`
	UserMapping    map[string]string `json:"userMapping,omitempty"`
	BoardMapping   map[string]string `json:"boardMapping,omitempty"`
	NotepadMapping map[string]string `json:"notepadMapping,omitempty"`
	Inserted       []InsertedDoc     `json:"inserted,omitempty"`
}

// Pipeline runs the full migration sequence in dependency order. Entities that
// other entities reference (users, boards, notepads) are migrated first so
// their ID mappings are available when the referencing rows are processed.
// Execution is strictly sequential.
type Pipeline struct {
	migrator *Migrator
	logger   *log.Logger
	phase    Phase
}

// NewPipeline creates a Pipeline around the given migrator.
func NewPipeline(migrator *Migrator, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Pipeline{migrator: migrator, logger: logger, phase: PhaseIdle}
}

// Phase reports the pipeline's current phase.
func (p *Pipeline) Phase() Phase {
	return p.phase
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (p *Pipeline) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run migrates every entity in the snapshot. When dryRun is set no documents
// are written; the report only carries the planned row counts. On a fatal
// error the pipeline stops at the current phase and returns the partial
// report so the documents inserted so far can be rolled back.
func (p *Pipeline) Run(ctx context.Context, snapshot *models.Snapshot, dryRun bool, progress chan<- ProgressUpdate) (*RunReport, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("%w: nil snapshot", shared.ErrInvalidInput)
	}

	report := &RunReport{DryRun: dryRun}

	if dryRun {
		report.Success = true
		report.Planned = map[string]int{
			"users":             len(snapshot.Users),
			"accounts":          len(snapshot.Accounts),
			"userSettings":      len(snapshot.Settings),
			"boards":            len(snapshot.Boards),
			"tasks":             len(snapshot.Tasks),
			"notifications":     len(snapshot.Notifications),
			"dictionaryEntries": len(snapshot.DictionaryEntries),
			"notepads":          len(snapshot.Notepads),
			"sharedNotes":       len(snapshot.SharedNotes),
		}
		p.phase = PhaseDone
		p.logger.Info("dry run: no documents written")
		p.sendProgress(progress, runDoneUpdate(report))
		return report, nil
	}

	p.phase = PhaseUsers
	p.sendProgress(progress, phaseStartedUpdate(PhaseUsers, len(snapshot.Users)))
	userReport, users, err := p.migrator.Users(ctx, snapshot.Users)
	if err != nil {
		return report, p.fail(PhaseUsers, progress, err)
	}
	p.collect(report, progress, PhaseUsers, "users", userReport)

	p.phase = PhaseAccounts
	p.sendProgress(progress, phaseStartedUpdate(PhaseAccounts, len(snapshot.Accounts)))
	accountReport, err := p.migrator.Accounts(ctx, snapshot.Accounts, users)
	if err != nil {
		return report, p.fail(PhaseAccounts, progress, err)
	}
	p.collect(report, progress, PhaseAccounts, "accounts", accountReport)

	p.phase = PhaseSettings
	p.sendProgress(progress, phaseStartedUpdate(PhaseSettings, len(snapshot.Settings)))
	settingsReport, err := p.migrator.Settings(ctx, snapshot.Settings, users)
	if err != nil {
		return report, p.fail(PhaseSettings, progress, err)
	}
	p.collect(report, progress, PhaseSettings, "userSettings", settingsReport)

	p.phase = PhaseBoards
	p.sendProgress(progress, phaseStartedUpdate(PhaseBoards, len(snapshot.Boards)))
	boardReport, boards, err := p.migrator.Boards(ctx, snapshot.Boards, users)
	if err != nil {
		return report, p.fail(PhaseBoards, progress, err)
	}
	p.collect(report, progress, PhaseBoards, "boards", boardReport)

	p.phase = PhaseTasks
	p.sendProgress(progress, phaseStartedUpdate(PhaseTasks, len(snapshot.Tasks)))
	taskReport, err := p.migrator.Tasks(ctx, snapshot.Tasks, users, boards)
	if err != nil {
		return report, p.fail(PhaseTasks, progress, err)
	}
	p.collect(report, progress, PhaseTasks, "tasks", taskReport)

	p.phase = PhaseNotifications
	p.sendProgress(progress, phaseStartedUpdate(PhaseNotifications, len(snapshot.Notifications)))
	notificationReport, err := p.migrator.Notifications(ctx, snapshot.Notifications, users)
	if err != nil {
		return report, p.fail(PhaseNotifications, progress, err)
	}
	p.collect(report, progress, PhaseNotifications, "notifications", notificationReport)

	p.phase = PhaseDictionaries
	p.sendProgress(progress, phaseStartedUpdate(PhaseDictionaries, len(snapshot.DictionaryEntries)))
	dictionaryReport, err := p.migrator.DictionaryEntries(ctx, snapshot.DictionaryEntries, users)
	if err != nil {
		return report, p.fail(PhaseDictionaries, progress, err)
	}
	p.collect(report, progress, PhaseDictionaries, "dictionaryEntries", dictionaryReport)

	p.phase = PhaseNotepads
	p.sendProgress(progress, phaseStartedUpdate(PhaseNotepads, len(snapshot.Notepads)))
	notepadReport, notepads, err := p.migrator.Notepads(ctx, snapshot.Notepads, users)
	if err != nil {
		return report, p.fail(PhaseNotepads, progress, err)
	}
	p.collect(report, progress, PhaseNotepads, "notepads", notepadReport)

	p.phase = PhaseSharedNotes
	p.sendProgress(progress, phaseStartedUpdate(PhaseSharedNotes, len(snapshot.SharedNotes)))
	sharedNoteReport, err := p.migrator.SharedNotes(ctx, snapshot.SharedNotes, notepads)
	if err != nil {
		return report, p.fail(PhaseSharedNotes, progress, err)
	}
	p.collect(report, progress, PhaseSharedNotes, "sharedNotes", sharedNoteReport)

	report.Success = true
	report.UserMapping = users.Pairs()
	report.BoardMapping = boards.Pairs()
	report.NotepadMapping = notepads.Pairs()

	p.phase = PhaseDone
	p.logger.Info("migration complete", "entities", len(report.Entities), "inserted", len(report.Inserted))
	p.sendProgress(progress, runDoneUpdate(report))
	return report, nil
}

func (p *Pipeline) collect(report *RunReport, progress chan<- ProgressUpdate, phase Phase, table string, entity *EntityReport) {
	report.Entities = append(report.Entities, EntityOutcome{Entity: table, Report: entity})
	for _, res := range entity.Results {
		if res.Status == StatusMigrated {
			report.Inserted = append(report.Inserted, InsertedDoc{Table: table, ID: res.NewID})
		}
	}
	p.sendProgress(progress, phaseFinishedUpdate(phase, entity))
}

func (p *Pipeline) fail(phase Phase, progress chan<- ProgressUpdate, err error) error {
	p.phase = PhaseFailed
	p.logger.Error("migration aborted", "phase", phase, "error", err)
	p.sendProgress(progress, phaseFailedUpdate(phase, err))
	return fmt.Errorf("%w: %s: %v", shared.ErrMigrationFailed, phase, err)
}
