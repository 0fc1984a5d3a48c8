package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/shrimpsizemoose/kardemumma/internal/diff"
	"github.com/shrimpsizemoose/kardemumma/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrCertLocked is returned when a write would touch certificate
	// fields of a member that already has them populated.
	ErrCertLocked = errors.New("certification fields are locked")
)

type RosterStore interface {
	Close() error
	ApplyMigrations(dir string) error

	CreateTeam(team *models.Team) error
	GetTeam(event string, teamID int64) (*models.Team, error)
	ListTeams(event string) ([]models.Team, error)
	UpdateTeamFields(event string, teamID int64, patch diff.TeamPatch) (*models.Team, error)
	DeleteTeam(event string, teamID int64) error

	CreateMember(member *models.Member) error
	GetMember(teamID, memberID int64) (*models.Member, error)
	ListMembers(teamID int64) ([]models.Member, error)
	UpdateMemberFields(teamID, memberID int64, patch diff.MemberPatch) (*models.Member, error)
	ApplyCertUpdates(teamID int64, updates []models.CertUpdate) error

	RecordPayment(payment *models.Payment) error
	FetchLeaderboardRows(event string) ([]LeaderboardRow, error)
}

// BaseStore provides common functionality for different DB implementations
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory, translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(fmt.Sprintf("%s/%s", dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

func (s *BaseStore) CreateTeam(team *models.Team) error {
	_, err := s.DB.NamedExec(`
		INSERT INTO teams (team_id, event, title, scc_id, ps_id)
		VALUES (:team_id, :event, :title, :scc_id, :ps_id)
	`, team)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (s *BaseStore) GetTeam(event string, teamID int64) (*models.Team, error) {
	var team models.Team
	query := s.Converter(`
		SELECT team_id, event, title, scc_id, ps_id
		FROM teams
		WHERE event = ? AND team_id = ?
	`)

	err := s.DB.Get(&team, query, event, teamID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	members, err := s.ListMembers(team.TeamID)
	if err != nil {
		return nil, err
	}
	team.Members = members

	return &team, nil
}

func (s *BaseStore) ListTeams(event string) ([]models.Team, error) {
	var teams []models.Team
	query := s.Converter(`
		SELECT team_id, event, title, scc_id, ps_id
		FROM teams
		WHERE event = ?
		ORDER BY team_id ASC
	`)

	if err := s.DB.Select(&teams, query, event); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	return teams, nil
}

// UpdateTeamFields applies a partial update, only the fields present
// in the patch. scc_id has no patch field, it is immutable once set.
func (s *BaseStore) UpdateTeamFields(event string, teamID int64, patch diff.TeamPatch) (*models.Team, error) {
	sets := []string{}
	args := []interface{}{}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.PSID != nil {
		sets = append(sets, "ps_id = ?")
		args = append(args, *patch.PSID)
	}
	if len(sets) == 0 {
		return s.GetTeam(event, teamID)
	}

	query := s.Converter(fmt.Sprintf(
		"UPDATE teams SET %s WHERE event = ? AND team_id = ?",
		strings.Join(sets, ", "),
	))
	args = append(args, event, teamID)

	res, err := s.DB.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrNotFound
	}

	return s.GetTeam(event, teamID)
}

func (s *BaseStore) DeleteTeam(event string, teamID int64) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(s.Converter(`
		DELETE FROM payments WHERE team_id = ?
	`), teamID); err != nil {
		return fmt.Errorf("failed to delete team payments: %w", err)
	}

	if _, err := tx.Exec(s.Converter(`
		DELETE FROM members WHERE team_id = ?
	`), teamID); err != nil {
		return fmt.Errorf("failed to delete team members: %w", err)
	}

	res, err := tx.Exec(s.Converter(`
		DELETE FROM teams WHERE event = ? AND team_id = ?
	`), event, teamID)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (s *BaseStore) GetMember(teamID, memberID int64) (*models.Member, error) {
	var member models.Member
	query := s.Converter(`
		SELECT id, team_id, name, email, phone, department, college,
		       year_of_study, location, tshirt_size, attendance_score,
		       certification_name, roll_number, gender
		FROM members
		WHERE team_id = ? AND id = ?
	`)

	err := s.DB.Get(&member, query, teamID, memberID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &member, nil
}

func (s *BaseStore) ListMembers(teamID int64) ([]models.Member, error) {
	var members []models.Member
	query := s.Converter(`
		SELECT id, team_id, name, email, phone, department, college,
		       year_of_study, location, tshirt_size, attendance_score,
		       certification_name, roll_number, gender
		FROM members
		WHERE team_id = ?
		ORDER BY id ASC
	`)

	if err := s.DB.Select(&members, query, teamID); err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return members, nil
}

// UpdateMemberFields applies a partial update. Certificate fields of a
// locked member are rejected with ErrCertLocked; everything else stays
// editable.
func (s *BaseStore) UpdateMemberFields(teamID, memberID int64, patch diff.MemberPatch) (*models.Member, error) {
	current, err := s.GetMember(teamID, memberID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}
	if current.Locked() && patch.TouchesCertification() {
		return nil, ErrCertLocked
	}

	sets := []string{}
	args := []interface{}{}
	appendSet := func(col string, val interface{}) {
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}

	if patch.Name != nil {
		appendSet("name", *patch.Name)
	}
	if patch.Email != nil {
		appendSet("email", *patch.Email)
	}
	if patch.Phone != nil {
		appendSet("phone", *patch.Phone)
	}
	if patch.Department != nil {
		appendSet("department", *patch.Department)
	}
	if patch.College != nil {
		appendSet("college", *patch.College)
	}
	if patch.YearOfStudy != nil {
		appendSet("year_of_study", *patch.YearOfStudy)
	}
	if patch.Location != nil {
		appendSet("location", *patch.Location)
	}
	if patch.TShirtSize != nil {
		appendSet("tshirt_size", string(*patch.TShirtSize))
	}
	if patch.AttendanceScore != nil {
		appendSet("attendance_score", *patch.AttendanceScore)
	}
	if patch.CertificationName != nil {
		appendSet("certification_name", *patch.CertificationName)
	}
	if patch.RollNumber != nil {
		appendSet("roll_number", *patch.RollNumber)
	}
	if patch.Gender != nil {
		appendSet("gender", *patch.Gender)
	}

	if len(sets) == 0 {
		return current, nil
	}

	query := s.Converter(fmt.Sprintf(
		"UPDATE members SET %s WHERE team_id = ? AND id = ?",
		strings.Join(sets, ", "),
	))
	args = append(args, teamID, memberID)

	if _, err := s.DB.Exec(query, args...); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return s.GetMember(teamID, memberID)
}

// ApplyCertUpdates commits the verification batch in one transaction.
// The whole batch is rejected if any member of the team already has
// certificate data, keeping the lock a one-shot transition.
func (s *BaseStore) ApplyCertUpdates(teamID int64, updates []models.CertUpdate) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var members []models.Member
	query := s.Converter(`
		SELECT id, team_id, name, email, phone, department, college,
		       year_of_study, location, tshirt_size, attendance_score,
		       certification_name, roll_number, gender
		FROM members
		WHERE team_id = ?
	`)
	if err := tx.Select(&members, query, teamID); err != nil {
		return fmt.Errorf("failed to load team members: %w", err)
	}
	if len(members) == 0 {
		return ErrNotFound
	}

	known := make(map[int64]bool, len(members))
	for i := range members {
		if !members[i].CertBlank() {
			return ErrCertLocked
		}
		known[members[i].ID] = true
	}
	for _, u := range updates {
		if !known[u.MemberID] {
			return ErrNotFound
		}
	}

	update := s.Converter(`
		UPDATE members
		SET certification_name = ?, roll_number = ?, gender = ?
		WHERE team_id = ? AND id = ?
	`)
	for _, u := range updates {
		if _, err := tx.Exec(update, u.CertificationName, u.RollNumber, u.Gender, teamID, u.MemberID); err != nil {
			return fmt.Errorf("failed to apply certification update: %w", err)
		}
	}

	return tx.Commit()
}

func (s *BaseStore) RecordPayment(payment *models.Payment) error {
	_, err := s.DB.NamedExec(`
		INSERT INTO payments (team_id, transaction_id, payment_status, timestamp)
		VALUES (:team_id, :transaction_id, :payment_status, :timestamp)
	`, payment)
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}
