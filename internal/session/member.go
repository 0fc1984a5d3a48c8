package session

import (
	"context"
	"sync"

	"github.com/shrimpsizemoose/kardemumma/internal/diff"
	"github.com/shrimpsizemoose/kardemumma/internal/models"
	"github.com/shrimpsizemoose/kardemumma/internal/validate"
)

// MemberEditSession is one edit transaction for an existing member:
// snapshot, draft, local validation, diff, partial update, merge back.
type MemberEditSession struct {
	api    RosterAPI
	teamID int64

	mu       sync.Mutex
	state    State
	original models.Member
	draft    models.Member
	errs     []models.ValidationError
	inFlight bool
}

func NewMemberEdit(roster RosterAPI, teamID int64, original models.Member) *MemberEditSession {
	return &MemberEditSession{
		api:      roster,
		teamID:   teamID,
		state:    StateEditing,
		original: original,
		draft:    original,
	}
}

func (s *MemberEditSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *MemberEditSession) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

func (s *MemberEditSession) Draft() models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Original is the record as last known from the server.
func (s *MemberEditSession) Original() models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original
}

func (s *MemberEditSession) Errors() []models.ValidationError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs
}

// UpdateDraft mutates the working copy and reruns validation. A failed
// submission returns the session to editing here, draft preserved.
func (s *MemberEditSession) UpdateDraft(apply func(*models.Member)) ([]models.ValidationError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing && s.state != StateFailed {
		return nil, ErrNotEditing
	}
	s.state = StateEditing
	apply(&s.draft)
	s.errs = validate.Member(s.draft)
	return s.errs, nil
}

// Submit runs local validation, computes the diff, and issues the
// partial update. An empty diff commits without any network call. The
// lock is dropped for the duration of the request so a concurrent
// Submit or Cancel gets its sentinel error instead of blocking.
func (s *MemberEditSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	if s.state != StateEditing && s.state != StateFailed {
		s.mu.Unlock()
		return ErrNotEditing
	}

	if s.errs = validate.Member(s.draft); len(s.errs) > 0 {
		s.state = StateEditing
		s.mu.Unlock()
		return ErrValidation
	}

	patch := diff.Member(s.original, s.draft)
	if patch.Empty() {
		s.state = StateCommitted
		s.mu.Unlock()
		return nil
	}
	if s.original.Locked() && patch.TouchesCertification() {
		s.errs = []models.ValidationError{models.GeneralError("certification fields are locked and cannot be changed")}
		s.state = StateEditing
		s.mu.Unlock()
		return ErrLocked
	}

	s.state = StateSubmitting
	s.inFlight = true
	memberID := s.original.ID
	s.mu.Unlock()

	canonical, err := s.api.UpdateMember(ctx, s.teamID, memberID, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		s.errs = fieldsFromSubmitError(err)
		s.state = StateFailed
		return err
	}

	s.original = *canonical
	s.draft = *canonical
	s.errs = nil
	s.state = StateCommitted
	return nil
}

// Cancel discards the draft. Rejected while a submission is in flight.
func (s *MemberEditSession) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return ErrCancelBlocked
	}
	s.state = StateIdle
	return nil
}

// MemberAddSession creates a brand new member. There is no diff here:
// the whole draft is sent and the server assigns the id.
type MemberAddSession struct {
	api    RosterAPI
	teamID int64

	mu       sync.Mutex
	state    State
	draft    models.Member
	errs     []models.ValidationError
	created  *models.Member
	inFlight bool
}

func NewMemberAdd(roster RosterAPI, teamID int64) *MemberAddSession {
	return &MemberAddSession{
		api:    roster,
		teamID: teamID,
		state:  StateEditing,
		draft:  models.Member{TeamID: teamID, YearOfStudy: 1},
	}
}

func (s *MemberAddSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *MemberAddSession) Draft() models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *MemberAddSession) Errors() []models.ValidationError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs
}

// Created returns the canonical record after a successful commit.
func (s *MemberAddSession) Created() *models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.created
}

func (s *MemberAddSession) UpdateDraft(apply func(*models.Member)) ([]models.ValidationError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing && s.state != StateFailed {
		return nil, ErrNotEditing
	}
	s.state = StateEditing
	apply(&s.draft)
	s.errs = validate.Member(s.draft)
	return s.errs, nil
}

func (s *MemberAddSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	if s.state != StateEditing && s.state != StateFailed {
		s.mu.Unlock()
		return ErrNotEditing
	}

	if s.errs = validate.Member(s.draft); len(s.errs) > 0 {
		s.state = StateEditing
		s.mu.Unlock()
		return ErrValidation
	}

	draft := s.draft
	draft.Normalize()

	s.state = StateSubmitting
	s.inFlight = true
	s.mu.Unlock()

	created, err := s.api.AddMember(ctx, s.teamID, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		s.errs = fieldsFromSubmitError(err)
		s.state = StateFailed
		return err
	}

	s.created = created
	s.errs = nil
	s.state = StateCommitted
	return nil
}

func (s *MemberAddSession) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return ErrCancelBlocked
	}
	s.state = StateIdle
	return nil
}
