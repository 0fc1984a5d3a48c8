package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/kardemumma/internal/diff"
	"github.com/shrimpsizemoose/kardemumma/internal/models"
)

func TestTeamEditRenameSendsOnlyTitle(t *testing.T) {
	roster := new(MockRoster)
	original := testTeam()
	sess := NewTeamEdit(roster, original)

	_, err := sess.UpdateDraft(func(tm *models.Team) {
		tm.Title = "Beta"
	})
	require.NoError(t, err)

	canonical := original
	canonical.Title = "Beta"

	roster.On("UpdateTeam", int64(42), mock.MatchedBy(func(p diff.TeamPatch) bool {
		return p.Title != nil && *p.Title == "Beta" && p.PSID == nil
	})).Return(&canonical, nil).Once()

	require.NoError(t, sess.Submit(context.Background()))
	assert.Equal(t, StateCommitted, sess.State())
	assert.Equal(t, "Beta", sess.Original().Title)
	roster.AssertExpectations(t)
}

func TestTeamEditEmptyDiffSkipsNetwork(t *testing.T) {
	roster := new(MockRoster)
	sess := NewTeamEdit(roster, testTeam())

	require.NoError(t, sess.Submit(context.Background()))
	assert.Equal(t, StateCommitted, sess.State())
	roster.AssertExpectations(t)
}

func TestTeamEditShortTitleRejectedLocally(t *testing.T) {
	roster := new(MockRoster)
	sess := NewTeamEdit(roster, testTeam())

	errs, err := sess.UpdateDraft(func(tm *models.Team) {
		tm.Title = "ab"
	})
	require.NoError(t, err)
	assert.NotEmpty(t, errs)

	err = sess.Submit(context.Background())
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, StateEditing, sess.State())
	roster.AssertExpectations(t)
}

func TestTeamEditFailedSubmitKeepsDraft(t *testing.T) {
	roster := new(MockRoster)
	sess := NewTeamEdit(roster, testTeam())

	_, err := sess.UpdateDraft(func(tm *models.Team) {
		tm.PSID = 9
	})
	require.NoError(t, err)

	roster.On("UpdateTeam", int64(42), mock.Anything).
		Return(nil, assert.AnError).Once()

	require.Error(t, sess.Submit(context.Background()))
	assert.Equal(t, StateFailed, sess.State())
	assert.Equal(t, 9, sess.Draft().PSID)
	assert.NotEmpty(t, sess.Errors())
	roster.AssertExpectations(t)
}
