package models

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

type TShirtSize string

const (
	SizeXS  TShirtSize = "XS"
	SizeS   TShirtSize = "S"
	SizeM   TShirtSize = "M"
	SizeL   TShirtSize = "L"
	SizeXL  TShirtSize = "XL"
	SizeXXL TShirtSize = "XXL"
)

func ValidTShirtSizes() []TShirtSize {
	return []TShirtSize{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}
}

func IsValidTShirtSize(s TShirtSize) bool {
	for _, v := range ValidTShirtSizes() {
		if s == v {
			return true
		}
	}
	return false
}

type Member struct {
	ID                int64      `db:"id" json:"id"`
	TeamID            int64      `db:"team_id" json:"teamId"`
	Name              string     `db:"name" json:"name" validate:"required"`
	Email             string     `db:"email" json:"email" validate:"required,email"`
	Phone             string     `db:"phone" json:"phone" validate:"required"`
	Department        string     `db:"department" json:"department" validate:"required"`
	College           string     `db:"college" json:"college" validate:"required"`
	YearOfStudy       int        `db:"year_of_study" json:"yearOfStudy" validate:"min=1,max=4"`
	Location          string     `db:"location" json:"location"`
	TShirtSize        TShirtSize `db:"tshirt_size" json:"tShirtSize" validate:"required,oneof=XS S M L XL XXL"`
	AttendanceScore   int        `db:"attendance_score" json:"attendanceScore" validate:"gte=0"`
	CertificationName string     `db:"certification_name" json:"certificationName"`
	RollNumber        string     `db:"roll_number" json:"rollNumber"`
	Gender            string     `db:"gender" json:"gender"`
}

// Locked reports whether the member's certification data is sealed.
// Once all three certification fields are non-empty no further edits
// to them are accepted anywhere in the system.
func (m *Member) Locked() bool {
	return m.CertificationName != "" && m.RollNumber != "" && m.Gender != ""
}

// CertBlank reports whether none of the certification fields is set yet.
func (m *Member) CertBlank() bool {
	return m.CertificationName == "" && m.RollNumber == "" && m.Gender == ""
}

// Normalize trims all free-text fields and uppercases the values that
// end up on printed certificates.
func (m *Member) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Department = strings.TrimSpace(m.Department)
	m.College = strings.TrimSpace(m.College)
	m.Location = strings.TrimSpace(m.Location)
	m.CertificationName = strings.ToUpper(strings.TrimSpace(m.CertificationName))
	m.RollNumber = strings.ToUpper(strings.TrimSpace(m.RollNumber))
	m.Gender = strings.TrimSpace(m.Gender)
}

func (m *Member) Validate() error {
	validate := validator.New()
	return validate.Struct(m)
}

// CertUpdate is one item of the batched verification commit. All three
// fields are always sent for every member in the batch.
type CertUpdate struct {
	MemberID          int64  `db:"member_id" json:"memberId"`
	CertificationName string `db:"certification_name" json:"certificationName" validate:"required"`
	RollNumber        string `db:"roll_number" json:"rollNumber" validate:"required"`
	Gender            string `db:"gender" json:"gender" validate:"required"`
}

// Normalize applies the same canonicalization as Member.Normalize to
// the certificate-bound values.
func (u *CertUpdate) Normalize() {
	u.CertificationName = strings.ToUpper(strings.TrimSpace(u.CertificationName))
	u.RollNumber = strings.ToUpper(strings.TrimSpace(u.RollNumber))
	u.Gender = strings.TrimSpace(u.Gender)
}
