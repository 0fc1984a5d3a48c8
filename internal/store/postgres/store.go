package postgres

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/shrimpsizemoose/kardemumma/internal/models"
	"github.com/shrimpsizemoose/kardemumma/internal/store"
)

type PostgresStore struct {
	store.BaseStore
}

func NewPostgresStore(dsn, migrationsDir string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &PostgresStore{BaseStore: store.BaseStore{
		DB: db,
		Converter: func(query string) string {
			out := query
			for i := 1; strings.Contains(out, "?"); i++ {
				out = strings.Replace(out, "?", fmt.Sprintf("$%d", i), 1)
			}
			return out
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

func (s *PostgresStore) ApplyMigrations(dir string) error {
	return s.BaseStore.ApplyMigrations(dir, nil)
}

func (s *PostgresStore) CreateMember(member *models.Member) error {
	err := s.DB.QueryRow(`
		INSERT INTO members (
			team_id, name, email, phone, department, college,
			year_of_study, location, tshirt_size, attendance_score,
			certification_name, roll_number, gender
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`,
		member.TeamID, member.Name, member.Email, member.Phone,
		member.Department, member.College, member.YearOfStudy,
		member.Location, member.TShirtSize, member.AttendanceScore,
		member.CertificationName, member.RollNumber, member.Gender,
	).Scan(&member.ID)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (s *PostgresStore) FetchLeaderboardRows(event string) ([]store.LeaderboardRow, error) {
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
		WHERE t.event = $1
		GROUP BY t.team_id, t.title
		ORDER BY t.team_id
	`

	var rows []store.LeaderboardRow
	if err := s.DB.Select(&rows, query, event); err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard rows: %w", err)
	}

	return rows, nil
}
