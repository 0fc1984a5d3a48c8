// Package validate holds the per-form field checks. Validation is
// local and synchronous, it never touches the network; sessions rerun
// it on every draft change and refuse to submit while it fails.
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shrimpsizemoose/kardemumma/internal/models"
)

// Minimum of seven characters, digits plus the usual separators.
var phoneRegex = regexp.MustCompile(`^[0-9+()\-\s]{7,}$`)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

// Member checks an add/edit member draft and returns one error per
// offending field.
func Member(draft models.Member) []models.ValidationError {
	errs := collect(v.Struct(draft))
	if draft.Phone != "" && !phoneRegex.MatchString(strings.TrimSpace(draft.Phone)) {
		errs = append(errs, models.ValidationError{
			Field:   "phone",
			Message: "must contain at least 7 digits",
		})
	}
	return errs
}

// Team checks a team edit draft: title at least 3 characters, ps_id
// either unset (0) or a positive integer.
func Team(draft models.Team) []models.ValidationError {
	var errs []models.ValidationError
	if len(strings.TrimSpace(draft.Title)) < 3 {
		errs = append(errs, models.ValidationError{
			Field:   "title",
			Message: "must be at least 3 characters",
		})
	}
	if draft.PSID < 0 {
		errs = append(errs, models.ValidationError{
			Field:   "psId",
			Message: "must be a positive integer",
		})
	}
	return errs
}

// VerificationBatch is the all-or-nothing gate for the certification
// form: every member of the batch must have all three certificate
// fields filled before the commit action is allowed.
func VerificationBatch(members []models.Member) []models.ValidationError {
	var errs []models.ValidationError
	for i, m := range members {
		if strings.TrimSpace(m.CertificationName) == "" {
			errs = append(errs, memberFieldError(i, "certificationName"))
		}
		if strings.TrimSpace(m.RollNumber) == "" {
			errs = append(errs, memberFieldError(i, "rollNumber"))
		}
		if strings.TrimSpace(m.Gender) == "" {
			errs = append(errs, memberFieldError(i, "gender"))
		}
	}
	return errs
}

func memberFieldError(idx int, field string) models.ValidationError {
	return models.ValidationError{
		Field:   fmt.Sprintf("members[%d].%s", idx, field),
		Message: "is required",
	}
}

// collect flattens validator errors into field-level errors with the
// json tag as the field name.
func collect(err error) []models.ValidationError {
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []models.ValidationError{models.GeneralError(err.Error())}
	}

	errs := make([]models.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, models.ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min", "max":
		if fe.Field() == "yearOfStudy" {
			return "must be between 1 and 4"
		}
		return fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())
	case "gte":
		return "must not be negative"
	default:
		return "is invalid"
	}
}
