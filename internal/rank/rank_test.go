// internal/rank/rank_test.go
package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/kardemumma/internal/store"
)

func TestTeamScore(t *testing.T) {
	r := NewRanker(2, 50)

	testCases := []struct {
		name     string
		row      store.LeaderboardRow
		expected int
	}{
		{"no attendance, unpaid", store.LeaderboardRow{}, 0},
		{"attendance only", store.LeaderboardRow{AttendanceTotal: 10}, 20},
		{"payment bonus only", store.LeaderboardRow{Paid: true}, 50},
		{"attendance plus bonus", store.LeaderboardRow{AttendanceTotal: 10, Paid: true}, 70},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, r.TeamScore(tc.row))
		})
	}
}

func TestRankerDefaults(t *testing.T) {
	r := NewRanker(0, 0)
	assert.Equal(t, 1, r.AttendanceWeight)
	assert.Equal(t, 5, r.TeamScore(store.LeaderboardRow{AttendanceTotal: 5}))
}

func TestRankOrdering(t *testing.T) {
	r := NewRanker(1, 10)

	rows := []store.LeaderboardRow{
		{TeamID: 1, Title: "Gamma", AttendanceTotal: 5},
		{TeamID: 2, Title: "Alpha", AttendanceTotal: 20, Paid: true},
		{TeamID: 3, Title: "Beta", AttendanceTotal: 30},
	}

	entries := r.Rank(rows)
	require.Len(t, entries, 3)

	assert.Equal(t, []int64{2, 3, 1}, []int64{entries[0].TeamID, entries[1].TeamID, entries[2].TeamID})
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 1, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestRankTitleTiebreak(t *testing.T) {
	r := NewRanker(1, 0)

	rows := []store.LeaderboardRow{
		{TeamID: 1, Title: "Zephyr", AttendanceTotal: 10},
		{TeamID: 2, Title: "Aurora", AttendanceTotal: 10},
	}

	entries := r.Rank(rows)
	require.Len(t, entries, 2)
	assert.Equal(t, "Aurora", entries[0].Title)
	assert.Equal(t, "Zephyr", entries[1].Title)
	assert.Equal(t, entries[0].Rank, entries[1].Rank)
}

func TestRankEmpty(t *testing.T) {
	r := NewRanker(1, 0)
	assert.Empty(t, r.Rank(nil))
}
