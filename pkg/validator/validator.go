package validator

import (
	"github.com/google/uuid"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

// ValidateMatchAction checks the body of a match request or decline call.
// Self-targeting is checked downstream where the caller's identity is known.
func ValidateMatchAction(targetID uuid.UUID, itemID int64) ValidationErrors {
	errs := make(ValidationErrors)

	if targetID == uuid.Nil {
		errs.Add("target_id", "Target user is required")
	}
	if itemID <= 0 {
		errs.Add("item_id", "Movie id must be a positive number")
	}

	return errs
}
