package store

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
)

type DBConfig struct {
	DSN  string
	Type DatabaseType
}

// LeaderboardRow is the raw per-team aggregate the ranking is computed
// from: total attendance across the roster plus whether a confirmed
// payment exists.
type LeaderboardRow struct {
	TeamID          int64  `db:"team_id"`
	Title           string `db:"title"`
	AttendanceTotal int    `db:"attendance_total"`
	Paid            bool   `db:"paid"`
}
