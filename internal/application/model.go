package application

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no application matches the given identifier.
var ErrNotFound = errors.New("application not found")

// ValidationError reports a single rejected input field. Submission validation
// stops at the first failing field, matching the public form's inline errors.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Application is one submitted loan inquiry record. Records are created by the
// public form, never updated, and removed only by the admin delete endpoint.
type Application struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	PhoneNumber          string    `json:"phoneNumber"`
	PrimaryContactNumber string    `json:"primaryContactNumber"`
	Address              string    `json:"address"`
	DateOfBirth          time.Time `json:"dateOfBirth"`
	Gender               string    `json:"gender"`
	LoanCategory         string    `json:"loanCategory"`
	LoanCategoryOther    *string   `json:"loanCategoryOther"`
	ReferralName1        string    `json:"referralName1"`
	ReferralPhone1       string    `json:"referralPhone1"`
	ReferralName2        string    `json:"referralName2"`
	ReferralPhone2       string    `json:"referralPhone2"`
	SubmittedAt          time.Time `json:"submittedAt"`
}

// Filter describes the optional listing predicates. Zero values mean "no
// filter"; all predicates are conjunctive. Search is a case-insensitive
// substring match OR-combined across the eight text fields of the record.
type Filter struct {
	Search       string
	Gender       string
	LoanCategory string
	From         *time.Time
	To           *time.Time
}
