package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shrimpsizemoose/kardemumma/internal/models"
)

func validMember() models.Member {
	return models.Member{
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

func fieldsOf(errs []models.ValidationError) []string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestMemberValidation(t *testing.T) {
	t.Run("valid member passes", func(t *testing.T) {
		assert.Empty(t, Member(validMember()))
	})

	testCases := []struct {
		name     string
		mutate   func(*models.Member)
		badField string
	}{
		{"missing name", func(m *models.Member) { m.Name = "" }, "name"},
		{"missing email", func(m *models.Member) { m.Email = "" }, "email"},
		{"malformed email", func(m *models.Member) { m.Email = "not-an-email" }, "email"},
		{"missing phone", func(m *models.Member) { m.Phone = "" }, "phone"},
		{"short phone", func(m *models.Member) { m.Phone = "12345" }, "phone"},
		{"missing department", func(m *models.Member) { m.Department = "" }, "department"},
		{"missing college", func(m *models.Member) { m.College = "" }, "college"},
		{"year too low", func(m *models.Member) { m.YearOfStudy = 0 }, "yearOfStudy"},
		{"year too high", func(m *models.Member) { m.YearOfStudy = 5 }, "yearOfStudy"},
		{"bogus tshirt size", func(m *models.Member) { m.TShirtSize = "HUGE" }, "tShirtSize"},
		{"negative attendance", func(m *models.Member) { m.AttendanceScore = -1 }, "attendanceScore"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := validMember()
			tc.mutate(&m)

			errs := Member(m)
			assert.NotEmpty(t, errs)
			assert.Contains(t, fieldsOf(errs), tc.badField)
		})
	}

	t.Run("phone accepts digits and separators", func(t *testing.T) {
		m := validMember()
		m.Phone = "+91 (987) 654-3210"
		assert.Empty(t, Member(m))
	})
}

func TestTeamValidation(t *testing.T) {
	t.Run("valid team passes", func(t *testing.T) {
		assert.Empty(t, Team(models.Team{Title: "Null Pointers", PSID: 3}))
	})

	t.Run("short title rejected", func(t *testing.T) {
		errs := Team(models.Team{Title: "ab"})
		assert.Contains(t, fieldsOf(errs), "title")
	})

	t.Run("whitespace-padded short title rejected", func(t *testing.T) {
		errs := Team(models.Team{Title: "  a  "})
		assert.Contains(t, fieldsOf(errs), "title")
	})

	t.Run("negative ps_id rejected", func(t *testing.T) {
		errs := Team(models.Team{Title: "Null Pointers", PSID: -1})
		assert.Contains(t, fieldsOf(errs), "psId")
	})

	t.Run("zero ps_id means unassigned and is fine", func(t *testing.T) {
		assert.Empty(t, Team(models.Team{Title: "Null Pointers", PSID: 0}))
	})
}

func TestVerificationBatch(t *testing.T) {
	complete := func() []models.Member {
		return []models.Member{
			{ID: 1, CertificationName: "ASHA RAO", RollNumber: "CS21B042", Gender: "female"},
			{ID: 2, CertificationName: "RAVI KUMAR", RollNumber: "CS21B043", Gender: "male"},
		}
	}

	t.Run("fully filled batch passes", func(t *testing.T) {
		assert.Empty(t, VerificationBatch(complete()))
	})

	t.Run("one missing field anywhere blocks the whole batch", func(t *testing.T) {
		members := complete()
		members[1].Gender = ""

		errs := VerificationBatch(members)
		assert.Len(t, errs, 1)
		assert.Equal(t, "members[1].gender", errs[0].Field)
	})

	t.Run("empty batch member reports all three fields", func(t *testing.T) {
		members := complete()
		members[0] = models.Member{ID: 1}

		errs := VerificationBatch(members)
		fields := fieldsOf(errs)
		assert.Contains(t, fields, "members[0].certificationName")
		assert.Contains(t, fields, "members[0].rollNumber")
		assert.Contains(t, fields, "members[0].gender")
	})

	t.Run("whitespace-only values count as missing", func(t *testing.T) {
		members := complete()
		members[0].RollNumber = "   "

		errs := VerificationBatch(members)
		assert.Len(t, errs, 1)
		assert.Equal(t, "members[0].rollNumber", errs[0].Field)
	})
}
