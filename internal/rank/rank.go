// internal/rank/rank.go
package rank

import (
	"sort"

	"github.com/shrimpsizemoose/kardemumma/internal/models"
	"github.com/shrimpsizemoose/kardemumma/internal/store"
)

// Ranker turns raw roster aggregates into the leaderboard. Weights
// come from the [ranking] config section.
type Ranker struct {
	AttendanceWeight int `toml:"attendance_weight"`
	PaymentBonus     int `toml:"payment_bonus"`
}

func NewRanker(attendanceWeight, paymentBonus int) *Ranker {
	if attendanceWeight <= 0 {
		attendanceWeight = 1
	}
	return &Ranker{
		AttendanceWeight: attendanceWeight,
		PaymentBonus:     paymentBonus,
	}
}

func (r *Ranker) TeamScore(row store.LeaderboardRow) int {
	score := row.AttendanceTotal * r.AttendanceWeight
	if row.Paid {
		score += r.PaymentBonus
	}
	return score
}

// Rank orders teams by score descending, title ascending on ties.
// Teams with equal scores share a rank, competition style: 1, 1, 3.
func (r *Ranker) Rank(rows []store.LeaderboardRow) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.LeaderboardEntry{
			TeamID: row.TeamID,
			Title:  row.Title,
			Score:  r.TeamScore(row),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Title < entries[j].Title
	})

	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}

	return entries
}
