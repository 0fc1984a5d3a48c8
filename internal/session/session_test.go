package session

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shrimpsizemoose/kardemumma/internal/diff"
	"github.com/shrimpsizemoose/kardemumma/internal/models"
)

type MockRoster struct {
	mock.Mock
}

func (m *MockRoster) AddMember(ctx context.Context, teamID int64, member models.Member) (*models.Member, error) {
	args := m.Called(teamID, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockRoster) UpdateMember(ctx context.Context, teamID, memberID int64, patch diff.MemberPatch) (*models.Member, error) {
	args := m.Called(teamID, memberID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockRoster) UpdateTeam(ctx context.Context, teamID int64, patch diff.TeamPatch) (*models.Team, error) {
	args := m.Called(teamID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockRoster) DeleteTeam(ctx context.Context, teamID int64) error {
	args := m.Called(teamID)
	return args.Error(0)
}

func (m *MockRoster) UpdateCertifications(ctx context.Context, teamID int64, updates []models.CertUpdate) error {
	args := m.Called(teamID, updates)
	return args.Error(0)
}

func testMember() models.Member {
	return models.Member{
		ID:          7,
		TeamID:      42,
		Name:        "Asha Rao",
		Email:       "asha@example.com",
		Phone:       "+919876543210",
		Department:  "CSE",
		College:     "NIT Trichy",
		YearOfStudy: 2,
		TShirtSize:  models.SizeM,
	}
}

func testTeam() models.Team {
	return models.Team{
		TeamID: 42,
		Event:  "scch25",
		Title:  "Alpha",
		SCCID:  "SCC-042",
		PSID:   3,
		Members: []models.Member{
			testMember(),
		},
	}
}
