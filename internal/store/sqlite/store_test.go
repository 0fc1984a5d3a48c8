// internal/store/sqlite/store_test.go
package sqlite

import (
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/kardemumma/internal/diff"
	"github.com/shrimpsizemoose/kardemumma/internal/models"
	"github.com/shrimpsizemoose/kardemumma/internal/store"
)

func setupTestDB(t *testing.T) (*SQLiteStore, func()) {
	s, err := NewSQLiteStore(":memory:", "../../../migrations")
	require.NoError(t, err, "Failed to create store")

	cleanup := func() {
		err := s.Close()
		require.NoError(t, err, "Failed to close database")
	}

	return s, cleanup
}

func seedTeam(t *testing.T, s *SQLiteStore) *models.Team {
	t.Helper()
	team := &models.Team{
		TeamID: 42,
		Event:  "scch25",
		Title:  "Null Pointers",
		SCCID:  "SCC-042",
		PSID:   3,
	}
	require.NoError(t, s.CreateTeam(team))
	return team
}

func seedMember(t *testing.T, s *SQLiteStore, teamID int64, name string) *models.Member {
	t.Helper()
	member := &models.Member{
		TeamID:      teamID,
		Name:        name,
		Email:       "m@example.com",
		Phone:       "+919876543210",
		Department:  "CSE",
		College:     "NIT Trichy",
		YearOfStudy: 2,
		TShirtSize:  models.SizeM,
	}
	require.NoError(t, s.CreateMember(member))
	return member
}

func TestMain(m *testing.M) {
	log.Println("Starting SQLite store tests...")
	code := m.Run()
	log.Println("Finished SQLite store tests")
	os.Exit(code)
}

func TestTeamOperations(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	seedTeam(t, s)

	t.Run("get team with members", func(t *testing.T) {
		seedMember(t, s, 42, "Asha Rao")

		got, err := s.GetTeam("scch25", 42)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Null Pointers", got.Title)
		assert.Equal(t, "SCC-042", got.SCCID)
		require.Len(t, got.Members, 1)
		assert.Equal(t, "Asha Rao", got.Members[0].Name)
	})

	t.Run("get team from wrong event", func(t *testing.T) {
		got, err := s.GetTeam("other-event", 42)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list teams", func(t *testing.T) {
		teams, err := s.ListTeams("scch25")
		require.NoError(t, err)
		assert.Len(t, teams, 1)
	})
}

func TestUpdateTeamFields(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	seedTeam(t, s)

	t.Run("title-only patch keeps ps_id", func(t *testing.T) {
		title := "Renamed"
		got, err := s.UpdateTeamFields("scch25", 42, diff.TeamPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, 3, got.PSID)
	})

	t.Run("ps-only patch keeps title", func(t *testing.T) {
		psID := 9
		got, err := s.UpdateTeamFields("scch25", 42, diff.TeamPatch{PSID: &psID})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, 9, got.PSID)
	})

	t.Run("empty patch is a no-op read", func(t *testing.T) {
		got, err := s.UpdateTeamFields("scch25", 42, diff.TeamPatch{})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
	})

	t.Run("unknown team", func(t *testing.T) {
		title := "Ghost"
		_, err := s.UpdateTeamFields("scch25", 777, diff.TeamPatch{Title: &title})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUpdateMemberFields(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	seedTeam(t, s)
	member := seedMember(t, s, 42, "Asha Rao")

	t.Run("partial update touches only patched columns", func(t *testing.T) {
		phone := "+911234567890"
		got, err := s.UpdateMemberFields(42, member.ID, diff.MemberPatch{Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, "+911234567890", got.Phone)
		assert.Equal(t, "Asha Rao", got.Name)
		assert.Equal(t, models.SizeM, got.TShirtSize)
	})

	t.Run("unknown member", func(t *testing.T) {
		phone := "+911234567890"
		_, err := s.UpdateMemberFields(42, 9999, diff.MemberPatch{Phone: &phone})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCertificationLock(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	seedTeam(t, s)
	first := seedMember(t, s, 42, "Asha Rao")
	second := seedMember(t, s, 42, "Ravi Kumar")

	updates := []models.CertUpdate{
		{MemberID: first.ID, CertificationName: "ASHA RAO", RollNumber: "CS21B042", Gender: "female"},
		{MemberID: second.ID, CertificationName: "RAVI KUMAR", RollNumber: "CS21B043", Gender: "male"},
	}

	t.Run("batch applies to every member", func(t *testing.T) {
		require.NoError(t, s.ApplyCertUpdates(42, updates))

		got, err := s.GetMember(42, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "ASHA RAO", got.CertificationName)
		assert.True(t, got.Locked())

		got, err = s.GetMember(42, second.ID)
		require.NoError(t, err)
		assert.True(t, got.Locked())
	})

	t.Run("second batch is rejected", func(t *testing.T) {
		err := s.ApplyCertUpdates(42, updates)
		assert.ErrorIs(t, err, store.ErrCertLocked)
	})

	t.Run("cert fields of a locked member cannot be patched", func(t *testing.T) {
		roll := "CS21B099"
		_, err := s.UpdateMemberFields(42, first.ID, diff.MemberPatch{RollNumber: &roll})
		assert.ErrorIs(t, err, store.ErrCertLocked)
	})

	t.Run("non-cert fields of a locked member stay editable", func(t *testing.T) {
		phone := "+911112223334"
		got, err := s.UpdateMemberFields(42, first.ID, diff.MemberPatch{Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, "+911112223334", got.Phone)
		assert.Equal(t, "ASHA RAO", got.CertificationName)
	})
}

func TestApplyCertUpdatesUnknownMember(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	seedTeam(t, s)
	seedMember(t, s, 42, "Asha Rao")

	err := s.ApplyCertUpdates(42, []models.CertUpdate{
		{MemberID: 9999, CertificationName: "GHOST", RollNumber: "X", Gender: "male"},
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteTeamCascades(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	seedTeam(t, s)
	seedMember(t, s, 42, "Asha Rao")
	require.NoError(t, s.RecordPayment(&models.Payment{
		TeamID:        42,
		TransactionID: "txn-001",
		PaymentStatus: "confirmed",
		Timestamp:     1700000000,
	}))

	require.NoError(t, s.DeleteTeam("scch25", 42))

	got, err := s.GetTeam("scch25", 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	members, err := s.ListMembers(42)
	require.NoError(t, err)
	assert.Empty(t, members)

	t.Run("deleting again reports not found", func(t *testing.T) {
		err := s.DeleteTeam("scch25", 42)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestFetchLeaderboardRows(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	seedTeam(t, s)
	other := &models.Team{TeamID: 43, Event: "scch25", Title: "Aurora"}
	require.NoError(t, s.CreateTeam(other))

	m1 := seedMember(t, s, 42, "Asha Rao")
	m2 := seedMember(t, s, 42, "Ravi Kumar")
	m3 := seedMember(t, s, 43, "Meera Nair")

	score5, score7, score2 := 5, 7, 2
	_, err := s.UpdateMemberFields(42, m1.ID, diff.MemberPatch{AttendanceScore: &score5})
	require.NoError(t, err)
	_, err = s.UpdateMemberFields(42, m2.ID, diff.MemberPatch{AttendanceScore: &score7})
	require.NoError(t, err)
	_, err = s.UpdateMemberFields(43, m3.ID, diff.MemberPatch{AttendanceScore: &score2})
	require.NoError(t, err)

	require.NoError(t, s.RecordPayment(&models.Payment{
		TeamID:        43,
		TransactionID: "txn-002",
		PaymentStatus: "confirmed",
		Timestamp:     1700000000,
	}))

	rows, err := s.FetchLeaderboardRows("scch25")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[int64]store.LeaderboardRow{}
	for _, row := range rows {
		byID[row.TeamID] = row
	}

	assert.Equal(t, 12, byID[42].AttendanceTotal)
	assert.False(t, byID[42].Paid)
	assert.Equal(t, 2, byID[43].AttendanceTotal)
	assert.True(t, byID[43].Paid)
}
