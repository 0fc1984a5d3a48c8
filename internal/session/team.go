package session

import (
	"context"
	"sync"

	"github.com/shrimpsizemoose/kardemumma/internal/diff"
	"github.com/shrimpsizemoose/kardemumma/internal/models"
	"github.com/shrimpsizemoose/kardemumma/internal/validate"
)

// TeamEditSession edits a team's title and problem statement id.
// scc_id is immutable and never part of the patch.
type TeamEditSession struct {
	api RosterAPI

	mu       sync.Mutex
	state    State
	original models.Team
	draft    models.Team
	errs     []models.ValidationError
	inFlight bool
}

func NewTeamEdit(roster RosterAPI, original models.Team) *TeamEditSession {
	return &TeamEditSession{
		api:      roster,
		state:    StateEditing,
		original: original,
		draft:    original,
	}
}

func (s *TeamEditSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *TeamEditSession) Draft() models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *TeamEditSession) Original() models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original
}

func (s *TeamEditSession) Errors() []models.ValidationError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs
}

func (s *TeamEditSession) UpdateDraft(apply func(*models.Team)) ([]models.ValidationError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing && s.state != StateFailed {
		return nil, ErrNotEditing
	}
	s.state = StateEditing
	apply(&s.draft)
	s.errs = validate.Team(s.draft)
	return s.errs, nil
}

func (s *TeamEditSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	if s.state != StateEditing && s.state != StateFailed {
		s.mu.Unlock()
		return ErrNotEditing
	}

	if s.errs = validate.Team(s.draft); len(s.errs) > 0 {
		s.state = StateEditing
		s.mu.Unlock()
		return ErrValidation
	}

	patch := diff.Team(s.original, s.draft)
	if patch.Empty() {
		s.state = StateCommitted
		s.mu.Unlock()
		return nil
	}

	s.state = StateSubmitting
	s.inFlight = true
	teamID := s.original.TeamID
	s.mu.Unlock()

	canonical, err := s.api.UpdateTeam(ctx, teamID, patch)

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

func (s *TeamEditSession) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return ErrCancelBlocked
	}
	s.state = StateIdle
	return nil
}
