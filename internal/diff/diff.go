// Package diff reduces an edited record to the minimal set of changed
// fields. Every edit path in the system goes through these functions so
// partial updates behave the same everywhere: values are compared after
// input normalization, and an empty patch means the caller must skip
// the network call entirely.
package diff

import (
	"github.com/shrimpsizemoose/kardemumma/internal/models"
)

// MemberPatch carries only the member fields that changed. Nil means
// "not touched"; the JSON encoding omits untouched fields so the wire
// payload stays minimal.
type MemberPatch struct {
	Name              *string            `json:"name,omitempty"`
	Email             *string            `json:"email,omitempty"`
	Phone             *string            `json:"phone,omitempty"`
	Department        *string            `json:"department,omitempty"`
	College           *string            `json:"college,omitempty"`
	YearOfStudy       *int               `json:"yearOfStudy,omitempty"`
	Location          *string            `json:"location,omitempty"`
	TShirtSize        *models.TShirtSize `json:"tShirtSize,omitempty"`
	AttendanceScore   *int               `json:"attendanceScore,omitempty"`
	CertificationName *string            `json:"certificationName,omitempty"`
	RollNumber        *string            `json:"rollNumber,omitempty"`
	Gender            *string            `json:"gender,omitempty"`
}

func (p MemberPatch) Empty() bool {
	return p == MemberPatch{}
}

// TouchesCertification reports whether the patch would modify any of
// the three certificate fields. Used to reject edits on locked members.
func (p MemberPatch) TouchesCertification() bool {
	return p.CertificationName != nil || p.RollNumber != nil || p.Gender != nil
}

// TeamPatch carries only the team fields that changed. scc_id is
// immutable once assigned and therefore has no place here.
type TeamPatch struct {
	Title *string `json:"title,omitempty"`
	PSID  *int    `json:"psId,omitempty"`
}

func (p TeamPatch) Empty() bool {
	return p == TeamPatch{}
}

// Member compares a draft against the original snapshot and returns a
// patch with exactly the fields whose normalized value differs.
func Member(original, draft models.Member) MemberPatch {
	o, d := original, draft
	o.Normalize()
	d.Normalize()

	var p MemberPatch
	if d.Name != o.Name {
		p.Name = &d.Name
	}
	if d.Email != o.Email {
		p.Email = &d.Email
	}
	if d.Phone != o.Phone {
		p.Phone = &d.Phone
	}
	if d.Department != o.Department {
		p.Department = &d.Department
	}
	if d.College != o.College {
		p.College = &d.College
	}
	if d.YearOfStudy != o.YearOfStudy {
		p.YearOfStudy = &d.YearOfStudy
	}
	if d.Location != o.Location {
		p.Location = &d.Location
	}
	if d.TShirtSize != o.TShirtSize {
		p.TShirtSize = &d.TShirtSize
	}
	if d.AttendanceScore != o.AttendanceScore {
		p.AttendanceScore = &d.AttendanceScore
	}
	if d.CertificationName != o.CertificationName {
		p.CertificationName = &d.CertificationName
	}
	if d.RollNumber != o.RollNumber {
		p.RollNumber = &d.RollNumber
	}
	if d.Gender != o.Gender {
		p.Gender = &d.Gender
	}
	return p
}

// Team compares a draft against the original snapshot. Only title and
// ps_id are editable after registration.
func Team(original, draft models.Team) TeamPatch {
	var p TeamPatch
	if draft.Title != original.Title {
		p.Title = &draft.Title
	}
	if draft.PSID != original.PSID {
		p.PSID = &draft.PSID
	}
	return p
}
