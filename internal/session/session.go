// Package session implements the edit-transaction workflows: draft a
// change against an original snapshot, validate locally, reduce to a
// partial payload, submit, and merge the server's canonical record
// back. Sessions serialize their own state transitions, so a workflow
// shared across goroutines (the bot keeps one per chat) stays
// consistent; the in-flight flag rejects re-entrant submission and
// cancel while a request is out.
package session

import (
	"context"
	"errors"

	"github.com/shrimpsizemoose/kardemumma/internal/api"
	"github.com/shrimpsizemoose/kardemumma/internal/diff"
	"github.com/shrimpsizemoose/kardemumma/internal/models"
)

type State int

const (
	StateIdle State = iota
	StateEditing
	StateSubmitting
	StateReviewing
	StateCommitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateReviewing:
		return "reviewing"
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrSubmitInFlight = errors.New("submission already in flight")
	ErrNotEditing     = errors.New("session is not accepting edits")
	ErrValidation     = errors.New("draft failed validation")
	ErrCancelBlocked  = errors.New("cannot cancel while submitting")
	ErrLocked         = errors.New("certification fields are locked")
)

// RosterAPI is the slice of the persistence API the workflows consume.
// *api.Client satisfies it; tests substitute mocks.
type RosterAPI interface {
	AddMember(ctx context.Context, teamID int64, member models.Member) (*models.Member, error)
	UpdateMember(ctx context.Context, teamID, memberID int64, patch diff.MemberPatch) (*models.Member, error)
	UpdateTeam(ctx context.Context, teamID int64, patch diff.TeamPatch) (*models.Team, error)
	DeleteTeam(ctx context.Context, teamID int64) error
	UpdateCertifications(ctx context.Context, teamID int64, updates []models.CertUpdate) error
}

// fieldsFromSubmitError maps a failed submission onto session errors:
// structured field errors when the server sent them, otherwise a single
// general error carrying the server's message.
func fieldsFromSubmitError(err error) []models.ValidationError {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		return apiErr.Fields
	}
	if err != nil && err.Error() != "" {
		return []models.ValidationError{models.GeneralError(err.Error())}
	}
	return []models.ValidationError{models.GeneralError("submission failed, please try again")}
}
