package session

import (
	"context"
	"sync"

	"github.com/shrimpsizemoose/kardemumma/internal/models"
	"github.com/shrimpsizemoose/kardemumma/internal/validate"
)

// VerificationWorkflow fills the certificate fields for every member
// of one team in a single batch. The batch is editable only while no
// member has any certificate data yet; after one successful commit the
// lock holds for the whole team, permanently.
//
// Flow: editing -> reviewing (echo of all values) -> submitting ->
// committed, or back to editing on failure with drafts preserved.
type VerificationWorkflow struct {
	api    RosterAPI
	teamID int64

	mu       sync.Mutex
	state    State
	original []models.Member
	drafts   []models.Member
	errs     []models.ValidationError
	inFlight bool
}

func NewVerification(roster RosterAPI, teamID int64, members []models.Member) *VerificationWorkflow {
	w := &VerificationWorkflow{
		api:      roster,
		teamID:   teamID,
		original: append([]models.Member(nil), members...),
		drafts:   append([]models.Member(nil), members...),
	}
	if w.canEdit() {
		w.state = StateEditing
	} else {
		w.state = StateIdle
	}
	return w
}

// CanEdit reports whether the batch may be edited at all: true only
// while every member still has all three certificate fields empty.
// Once any member is populated the whole team is out, forever.
func (w *VerificationWorkflow) CanEdit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canEdit()
}

func (w *VerificationWorkflow) canEdit() bool {
	for i := range w.original {
		if !w.original[i].CertBlank() {
			return false
		}
	}
	return true
}

func (w *VerificationWorkflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *VerificationWorkflow) Errors() []models.ValidationError {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errs
}

// Drafts returns the working copies, also used as the review echo.
func (w *VerificationWorkflow) Drafts() []models.Member {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.Member(nil), w.drafts...)
}

// SetCertification updates the three certificate fields of one draft.
func (w *VerificationWorkflow) SetCertification(memberID int64, certName, rollNumber, gender string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateEditing && w.state != StateFailed {
		return ErrNotEditing
	}
	if !w.canEdit() {
		return ErrLocked
	}
	w.state = StateEditing
	for i := range w.drafts {
		if w.drafts[i].ID == memberID {
			w.drafts[i].CertificationName = certName
			w.drafts[i].RollNumber = rollNumber
			w.drafts[i].Gender = gender
			w.drafts[i].Normalize()
			w.errs = validate.VerificationBatch(w.drafts)
			return nil
		}
	}
	return ErrNotEditing
}

// Validate reruns the all-or-nothing batch gate.
func (w *VerificationWorkflow) Validate() []models.ValidationError {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errs = validate.VerificationBatch(w.drafts)
	return w.errs
}

// BeginReview moves to the confirmation sub-step. Requires the batch
// gate to pass: every member, all three fields.
func (w *VerificationWorkflow) BeginReview() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateEditing && w.state != StateFailed {
		return ErrNotEditing
	}
	if w.errs = validate.VerificationBatch(w.drafts); len(w.errs) > 0 {
		w.state = StateEditing
		return ErrValidation
	}
	w.state = StateReviewing
	return nil
}

// BackToEdit leaves the review echo without committing.
func (w *VerificationWorkflow) BackToEdit() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateReviewing {
		return ErrNotEditing
	}
	w.state = StateEditing
	return nil
}

// Commit issues the single batched request: all three certificate
// fields for every member. No per-member diff; by definition of the
// editable precondition the batch has never been populated before.
// The lock is dropped around the request itself so a concurrent Commit
// or Cancel gets its sentinel error instead of blocking.
func (w *VerificationWorkflow) Commit(ctx context.Context) error {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return ErrSubmitInFlight
	}
	if w.state != StateReviewing {
		w.mu.Unlock()
		return ErrNotEditing
	}

	updates := make([]models.CertUpdate, 0, len(w.drafts))
	for i := range w.drafts {
		updates = append(updates, models.CertUpdate{
			MemberID:          w.drafts[i].ID,
			CertificationName: w.drafts[i].CertificationName,
			RollNumber:        w.drafts[i].RollNumber,
			Gender:            w.drafts[i].Gender,
		})
	}

	w.state = StateSubmitting
	w.inFlight = true
	w.mu.Unlock()

	err := w.api.UpdateCertifications(ctx, w.teamID, updates)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false

	if err != nil {
		w.errs = fieldsFromSubmitError(err)
		w.state = StateFailed
		return err
	}

	w.original = append([]models.Member(nil), w.drafts...)
	w.errs = nil
	w.state = StateCommitted
	return nil
}

// Cancel discards the drafts. Rejected while the commit is in flight.
func (w *VerificationWorkflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSubmitting {
		return ErrCancelBlocked
	}
	w.state = StateIdle
	return nil
}
