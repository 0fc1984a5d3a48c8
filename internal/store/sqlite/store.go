// internal/store/sqlite/store.go
package sqlite

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shrimpsizemoose/kardemumma/internal/models"
	"github.com/shrimpsizemoose/kardemumma/internal/store"
)

type SQLiteStore struct {
	store.BaseStore
}

func NewSQLiteStore(dsn, migrationsDir string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{BaseStore: store.BaseStore{
		DB: db,
		Converter: func(query string) string {
			return query
		},
	}}

	if migrationsDir != "" {
		if err := s.ApplyMigrations(migrationsDir); err != nil {
			db.Close()
			return nil, err
		}
	}

	return s, nil
}

func (s *SQLiteStore) ApplyMigrations(dir string) error {
	return s.BaseStore.ApplyMigrations(dir, translateToSQLite)
}

// translateToSQLite converts Postgres SQL to SQLite dialect. Applied
// in order so BIGSERIAL rewrites before BIGINT gets a chance.
func translateToSQLite(sql string) string {
	replacements := [][2]string{
		{"BIGSERIAL", "INTEGER"},
		{"BIGINT", "INTEGER"},
		{"BOOLEAN", "INTEGER"},
		{"TRUE", "1"},
		{"FALSE", "0"},
		{"now()", "CURRENT_TIMESTAMP"},
		{"VARCHAR(4)", "TEXT"},
		{"VARCHAR(16)", "TEXT"},
		{"VARCHAR(32)", "TEXT"},
	}
	result := sql
	for _, r := range replacements {
		result = strings.ReplaceAll(result, r[0], r[1])
	}
	return result
}

func (s *SQLiteStore) CreateMember(member *models.Member) error {
	res, err := s.DB.Exec(`
		INSERT INTO members (
			team_id, name, email, phone, department, college,
			year_of_study, location, tshirt_size, attendance_score,
			certification_name, roll_number, gender
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		member.TeamID, member.Name, member.Email, member.Phone,
		member.Department, member.College, member.YearOfStudy,
		member.Location, member.TShirtSize, member.AttendanceScore,
		member.CertificationName, member.RollNumber, member.Gender,
	)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get member id: %w", err)
	}
	member.ID = id
	return nil
}

func (s *SQLiteStore) FetchLeaderboardRows(event string) ([]store.LeaderboardRow, error) {
	query := `
		SELECT
			t.team_id,
			t.title,
			COALESCE(SUM(m.attendance_score), 0) as attendance_total,
			EXISTS (
				SELECT 1 FROM payments p
				WHERE p.team_id = t.team_id AND p.payment_status = 'confirmed'
			) as paid
		FROM teams t
		LEFT JOIN members m ON m.team_id = t.team_id
		WHERE t.event = ?
		GROUP BY t.team_id, t.title
		ORDER BY t.team_id
	`

	var rows []store.LeaderboardRow
	if err := s.DB.Select(&rows, query, event); err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard rows: %w", err)
	}

	return rows, nil
}
