package migrate

import "fmt"

// ProgressUpdate represents a progress event during a migration run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Pipeline phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Pipeline phase enumeration
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseUsers
	PhaseAccounts
	PhaseSettings
	PhaseBoards
	PhaseTasks
	PhaseNotifications
	PhaseDictionaries
	PhaseNotepads
	PhaseSharedNotes
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseUsers:
		return "users"
	case PhaseAccounts:
		return "accounts"
	case PhaseSettings:
		return "settings"
	case PhaseBoards:
		return "boards"
	case PhaseTasks:
		return "tasks"
	case PhaseNotifications:
		return "notifications"
	case PhaseDictionaries:
		return "dictionaries"
	case PhaseNotepads:
		return "notepads"
	case PhaseSharedNotes:
		return "shared_notes"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return ""
	}
}

func phaseStartedUpdate(phase Phase, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Migrating %s (%d rows)...", phase, total),
	}
}

func phaseFinishedUpdate(phase Phase, report *EntityReport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    report.Total,
		Total:   report.Total,
		Message: fmt.Sprintf("[%s] %d migrated, %d existing, %d skipped, %d errors", phase, report.Migrated(), report.Exists(), report.Skipped(), report.Errored()),
		Data:    report,
	}
}

func phaseFailedUpdate(phase Phase, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseFailed,
		Step:    0,
		Total:   0,
		Message: fmt.Sprintf("[%s] aborted: %v", phase, err),
	}
}

func runDoneUpdate(report *RunReport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseDone,
		Step:    1,
		Total:   1,
		Message: "Migration complete",
		Data:    report,
	}
}
