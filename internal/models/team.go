package models

import (
	"github.com/go-playground/validator/v10"
)

type Team struct {
	TeamID int64  `db:"team_id" json:"teamId"`
	Event  string `db:"event" json:"event" validate:"required,max=16"`
	Title  string `db:"title" json:"title" validate:"required,min=3"`
	SCCID  string `db:"scc_id" json:"sccId"`
	PSID   int    `db:"ps_id" json:"psId" validate:"gte=0"`

	// Members is filled on reads that join the roster; it never
	// round-trips on team updates.
	Members []Member `db:"-" json:"members,omitempty"`
}

// Assigned reports whether a problem statement has been assigned.
// A ps_id of zero means unassigned.
func (t *Team) Assigned() bool {
	return t.PSID > 0
}

func (t *Team) Validate() error {
	validate := validator.New()
	return validate.Struct(t)
}

type Payment struct {
	TeamID        int64  `db:"team_id" json:"teamId"`
	TransactionID string `db:"transaction_id" json:"transactionId" validate:"required"`
	PaymentStatus string `db:"payment_status" json:"paymentStatus" validate:"required"`
	Timestamp     int64  `db:"timestamp" json:"timestamp"`
}

type LeaderboardEntry struct {
	Rank   int    `db:"-" json:"rank"`
	TeamID int64  `db:"team_id" json:"teamId"`
	Title  string `db:"title" json:"title"`
	Score  int    `db:"score" json:"score"`
}
