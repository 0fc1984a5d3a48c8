package session

import (
	"context"
	"sync"

	"github.com/shrimpsizemoose/kardemumma/internal/models"
)

type DeleteState int

const (
	DeleteConfirming DeleteState = iota
	DeleteInFlight
	DeleteDone
	DeleteFailed
	DeleteCancelled
)

func (s DeleteState) String() string {
	switch s {
	case DeleteConfirming:
		return "confirming"
	case DeleteInFlight:
		return "deleting"
	case DeleteDone:
		return "done"
	case DeleteFailed:
		return "failed"
	case DeleteCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// TeamDeleteWorkflow is the destructive path: no diff, no draft, just
// an explicit confirm over the team's identifying details and then the
// delete call. A failure keeps the dialog open for retry without
// re-confirming identity.
type TeamDeleteWorkflow struct {
	api  RosterAPI
	team models.Team

	mu       sync.Mutex
	state    DeleteState
	lastErr  string
	inFlight bool
}

func NewTeamDelete(roster RosterAPI, team models.Team) *TeamDeleteWorkflow {
	return &TeamDeleteWorkflow{
		api:   roster,
		team:  team,
		state: DeleteConfirming,
	}
}

func (w *TeamDeleteWorkflow) State() DeleteState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// LastError is the inline error shown in the dialog after a failure.
func (w *TeamDeleteWorkflow) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Details returns what the confirm dialog displays: title, external
// id, and member count, alongside the irreversibility warning.
func (w *TeamDeleteWorkflow) Details() (title, sccID string, memberCount int) {
	return w.team.Title, w.team.SCCID, len(w.team.Members)
}

// Confirm issues the delete. Allowed from confirming and, for retry,
// from failed. The lock is dropped around the request itself so a
// concurrent Confirm or Cancel gets its sentinel error instead of
// blocking.
func (w *TeamDeleteWorkflow) Confirm(ctx context.Context) error {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return ErrSubmitInFlight
	}
	if w.state != DeleteConfirming && w.state != DeleteFailed {
		w.mu.Unlock()
		return ErrNotEditing
	}

	w.state = DeleteInFlight
	w.inFlight = true
	w.mu.Unlock()

	err := w.api.DeleteTeam(ctx, w.team.TeamID)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false

	if err != nil {
		w.lastErr = err.Error()
		w.state = DeleteFailed
		return err
	}

	w.lastErr = ""
	w.state = DeleteDone
	return nil
}

// Cancel closes the dialog without deleting. Disabled mid-flight.
func (w *TeamDeleteWorkflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == DeleteInFlight {
		return ErrCancelBlocked
	}
	if w.state == DeleteDone {
		return ErrNotEditing
	}
	w.state = DeleteCancelled
	return nil
}
