package models

// FieldGeneral marks a validation error that is not tied to a single
// form field, e.g. a network or server failure.
const FieldGeneral = "general"

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// GeneralError wraps a message as the single non-field-specific error.
func GeneralError(message string) ValidationError {
	return ValidationError{Field: FieldGeneral, Message: message}
}
