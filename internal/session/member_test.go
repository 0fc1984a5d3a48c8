package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/kardemumma/internal/api"
	"github.com/shrimpsizemoose/kardemumma/internal/diff"
	"github.com/shrimpsizemoose/kardemumma/internal/models"
)

func TestMemberEditEmptyDiffSkipsNetwork(t *testing.T) {
	roster := new(MockRoster)
	sess := NewMemberEdit(roster, 42, testMember())

	_, err := sess.UpdateDraft(func(m *models.Member) {
		m.Name = "  Asha Rao  " // normalizes back to the original
	})
	require.NoError(t, err)

	require.NoError(t, sess.Submit(context.Background()))
	assert.Equal(t, StateCommitted, sess.State())

	// no expectations were set: any call would have failed the test
	roster.AssertExpectations(t)
}

func TestMemberEditSubmitsOnlyChangedFields(t *testing.T) {
	roster := new(MockRoster)
	original := testMember()
	sess := NewMemberEdit(roster, 42, original)

	_, err := sess.UpdateDraft(func(m *models.Member) {
		m.Phone = "+911234567890"
	})
	require.NoError(t, err)

	canonical := original
	canonical.Phone = "+911234567890"

	roster.On("UpdateMember", int64(42), int64(7), mock.MatchedBy(func(p diff.MemberPatch) bool {
		return p.Phone != nil && *p.Phone == "+911234567890" &&
			p.Name == nil && p.Email == nil && p.Department == nil
	})).Return(&canonical, nil).Once()

	require.NoError(t, sess.Submit(context.Background()))
	assert.Equal(t, StateCommitted, sess.State())
	assert.Equal(t, canonical, sess.Original())
	assert.Equal(t, canonical, sess.Draft())
	roster.AssertExpectations(t)
}

func TestMemberEditValidationBlocksSubmit(t *testing.T) {
	roster := new(MockRoster)
	sess := NewMemberEdit(roster, 42, testMember())

	errs, err := sess.UpdateDraft(func(m *models.Member) {
		m.Email = "not-an-email"
	})
	require.NoError(t, err)
	assert.NotEmpty(t, errs)

	err = sess.Submit(context.Background())
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, StateEditing, sess.State())
	roster.AssertExpectations(t)
}

func TestMemberEditFailedSubmitKeepsDraft(t *testing.T) {
	roster := new(MockRoster)
	sess := NewMemberEdit(roster, 42, testMember())

	_, err := sess.UpdateDraft(func(m *models.Member) {
		m.Phone = "+911234567890"
	})
	require.NoError(t, err)

	serverErr := &api.Error{
		Code:    "validation_failed",
		Message: "one or more fields are invalid",
		Fields: []models.ValidationError{
			{Field: "phone", Message: "already in use"},
		},
	}
	roster.On("UpdateMember", int64(42), int64(7), mock.Anything).
		Return(nil, serverErr).Once()

	err = sess.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, sess.State())
	assert.Equal(t, "+911234567890", sess.Draft().Phone)
	require.Len(t, sess.Errors(), 1)
	assert.Equal(t, "phone", sess.Errors()[0].Field)

	// a failed session accepts further edits and a retry
	canonical := testMember()
	canonical.Phone = "+919999999999"
	roster.On("UpdateMember", int64(42), int64(7), mock.Anything).
		Return(&canonical, nil).Once()

	_, err = sess.UpdateDraft(func(m *models.Member) {
		m.Phone = "+919999999999"
	})
	require.NoError(t, err)
	require.NoError(t, sess.Submit(context.Background()))
	assert.Equal(t, StateCommitted, sess.State())
	roster.AssertExpectations(t)
}

func TestMemberEditNetworkErrorBecomesGeneralError(t *testing.T) {
	roster := new(MockRoster)
	sess := NewMemberEdit(roster, 42, testMember())

	_, err := sess.UpdateDraft(func(m *models.Member) {
		m.Location = "Chennai"
	})
	require.NoError(t, err)

	roster.On("UpdateMember", int64(42), int64(7), mock.Anything).
		Return(nil, assert.AnError).Once()

	require.Error(t, sess.Submit(context.Background()))
	require.Len(t, sess.Errors(), 1)
	assert.Equal(t, models.FieldGeneral, sess.Errors()[0].Field)
	roster.AssertExpectations(t)
}

func TestMemberEditLockedCertFieldsRejected(t *testing.T) {
	roster := new(MockRoster)
	original := testMember()
	original.CertificationName = "ASHA RAO"
	original.RollNumber = "CS21B042"
	original.Gender = "female"
	sess := NewMemberEdit(roster, 42, original)

	_, err := sess.UpdateDraft(func(m *models.Member) {
		m.RollNumber = "CS21B099"
	})
	require.NoError(t, err)

	err = sess.Submit(context.Background())
	assert.ErrorIs(t, err, ErrLocked)
	assert.Equal(t, StateEditing, sess.State())
	roster.AssertExpectations(t)
}

func TestMemberEditLockedMemberOtherFieldsStillEditable(t *testing.T) {
	roster := new(MockRoster)
	original := testMember()
	original.CertificationName = "ASHA RAO"
	original.RollNumber = "CS21B042"
	original.Gender = "female"
	sess := NewMemberEdit(roster, 42, original)

	_, err := sess.UpdateDraft(func(m *models.Member) {
		m.Phone = "+911234567890"
	})
	require.NoError(t, err)

	canonical := original
	canonical.Phone = "+911234567890"
	roster.On("UpdateMember", int64(42), int64(7), mock.Anything).
		Return(&canonical, nil).Once()

	require.NoError(t, sess.Submit(context.Background()))
	assert.Equal(t, StateCommitted, sess.State())
	roster.AssertExpectations(t)
}

func TestMemberEditCancelBlockedMidFlight(t *testing.T) {
	roster := new(MockRoster)
	sess := NewMemberEdit(roster, 42, testMember())

	_, err := sess.UpdateDraft(func(m *models.Member) {
		m.Phone = "+911234567890"
	})
	require.NoError(t, err)

	canonical := testMember()
	canonical.Phone = "+911234567890"
	roster.On("UpdateMember", int64(42), int64(7), mock.Anything).
		Run(func(args mock.Arguments) {
			// while the request is out both cancel and resubmit are rejected
			assert.ErrorIs(t, sess.Cancel(), ErrCancelBlocked)
			assert.ErrorIs(t, sess.Submit(context.Background()), ErrSubmitInFlight)
		}).
		Return(&canonical, nil).Once()

	require.NoError(t, sess.Submit(context.Background()))
	roster.AssertExpectations(t)
}

func TestMemberEditCancelWhileEditing(t *testing.T) {
	roster := new(MockRoster)
	sess := NewMemberEdit(roster, 42, testMember())

	_, err := sess.UpdateDraft(func(m *models.Member) {
		m.Phone = "changed"
	})
	require.NoError(t, err)

	require.NoError(t, sess.Cancel())
	assert.Equal(t, StateIdle, sess.State())

	_, err = sess.UpdateDraft(func(m *models.Member) {})
	assert.ErrorIs(t, err, ErrNotEditing)
	roster.AssertExpectations(t)
}

func TestMemberAddSubmitsNormalizedDraft(t *testing.T) {
	roster := new(MockRoster)
	sess := NewMemberAdd(roster, 42)

	assert.Equal(t, 1, sess.Draft().YearOfStudy)

	_, err := sess.UpdateDraft(func(m *models.Member) {
		m.Name = "  Ravi Kumar "
		m.Email = "ravi@example.com"
		m.Phone = "+911112223334"
		m.Department = "ECE"
		m.College = "NIT Trichy"
		m.TShirtSize = models.SizeL
	})
	require.NoError(t, err)

	created := testMember()
	created.ID = 8
	created.Name = "Ravi Kumar"

	roster.On("AddMember", int64(42), mock.MatchedBy(func(m models.Member) bool {
		return m.Name == "Ravi Kumar" && m.TeamID == 42
	})).Return(&created, nil).Once()

	require.NoError(t, sess.Submit(context.Background()))
	assert.Equal(t, StateCommitted, sess.State())
	require.NotNil(t, sess.Created())
	assert.Equal(t, int64(8), sess.Created().ID)
	roster.AssertExpectations(t)
}

func TestMemberAddValidationBlocksSubmit(t *testing.T) {
	roster := new(MockRoster)
	sess := NewMemberAdd(roster, 42)

	err := sess.Submit(context.Background())
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotEmpty(t, sess.Errors())
	roster.AssertExpectations(t)
}
