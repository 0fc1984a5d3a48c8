package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/kardemumma/internal/models"
)

func baseMember() models.Member {
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

func TestMemberDiff(t *testing.T) {
	t.Run("identical records produce an empty patch", func(t *testing.T) {
		m := baseMember()
		patch := Member(m, m)
		assert.True(t, patch.Empty())
	})

	t.Run("single changed field produces single-field patch", func(t *testing.T) {
		original := baseMember()
		draft := original
		draft.Phone = "+911234567890"

		patch := Member(original, draft)
		require.NotNil(t, patch.Phone)
		assert.Equal(t, "+911234567890", *patch.Phone)
		assert.Nil(t, patch.Name)
		assert.Nil(t, patch.Email)
		assert.Nil(t, patch.Department)
	})

	t.Run("whitespace-only edits do not count as changes", func(t *testing.T) {
		original := baseMember()
		draft := original
		draft.Name = "  Asha Rao  "
		draft.Email = "asha@example.com "

		patch := Member(original, draft)
		assert.True(t, patch.Empty())
	})

	t.Run("certificate fields compare after uppercasing", func(t *testing.T) {
		original := baseMember()
		original.CertificationName = "ASHA RAO"
		original.RollNumber = "CS21B042"

		draft := original
		draft.CertificationName = "asha rao"
		draft.RollNumber = "cs21b042"

		patch := Member(original, draft)
		assert.True(t, patch.Empty())
	})

	t.Run("several changed fields all land in the patch", func(t *testing.T) {
		original := baseMember()
		draft := original
		draft.YearOfStudy = 3
		draft.TShirtSize = models.SizeL
		draft.Location = "Chennai"

		patch := Member(original, draft)
		require.NotNil(t, patch.YearOfStudy)
		assert.Equal(t, 3, *patch.YearOfStudy)
		require.NotNil(t, patch.TShirtSize)
		assert.Equal(t, models.SizeL, *patch.TShirtSize)
		require.NotNil(t, patch.Location)
		assert.Equal(t, "Chennai", *patch.Location)
		assert.Nil(t, patch.Name)
	})
}

func TestMemberPatchTouchesCertification(t *testing.T) {
	name := "JOHN DOE"
	roll := "CS21B001"
	gender := "male"
	phone := "+911112223334"

	testCases := []struct {
		name    string
		patch   MemberPatch
		touches bool
	}{
		{"empty patch", MemberPatch{}, false},
		{"plain field only", MemberPatch{Phone: &phone}, false},
		{"certification name", MemberPatch{CertificationName: &name}, true},
		{"roll number", MemberPatch{RollNumber: &roll}, true},
		{"gender", MemberPatch{Gender: &gender}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.touches, tc.patch.TouchesCertification())
		})
	}
}

func TestTeamDiff(t *testing.T) {
	original := models.Team{TeamID: 42, Event: "scch25", Title: "Alpha", SCCID: "SCC-042", PSID: 3}

	t.Run("no changes", func(t *testing.T) {
		patch := Team(original, original)
		assert.True(t, patch.Empty())
	})

	t.Run("title rename sends only title", func(t *testing.T) {
		draft := original
		draft.Title = "Beta"

		patch := Team(original, draft)
		require.NotNil(t, patch.Title)
		assert.Equal(t, "Beta", *patch.Title)
		assert.Nil(t, patch.PSID)
	})

	t.Run("problem statement change sends only ps_id", func(t *testing.T) {
		draft := original
		draft.PSID = 9

		patch := Team(original, draft)
		assert.Nil(t, patch.Title)
		require.NotNil(t, patch.PSID)
		assert.Equal(t, 9, *patch.PSID)
	})
}
