package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const categoryOther = "other"

// Service owns submission validation and the listing filter construction.
type Service struct {
	repo Repository
}

// NewService creates a new application service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SubmitInput carries the raw form fields of a public submission.
type SubmitInput struct {
	Name                 string
	PhoneNumber          string
	PrimaryContactNumber string
	Address              string
	DateOfBirth          string
	Gender               string
	LoanCategory         string
	LoanCategoryOther    string
	ReferralName1        string
	ReferralPhone1       string
	ReferralName2        string
	ReferralPhone2       string
}

// requiredFields enumerates the mandatory form fields in validation order. The
// first blank field is reported; later failures are not collected.
var requiredFields = []struct {
	key   string
	label string
	get   func(SubmitInput) string
}{
	{"name", "Name", func(in SubmitInput) string { return in.Name }},
	{"phoneNumber", "Phone Number", func(in SubmitInput) string { return in.PhoneNumber }},
	{"primaryContactNumber", "Primary Contact Number", func(in SubmitInput) string { return in.PrimaryContactNumber }},
	{"address", "Address", func(in SubmitInput) string { return in.Address }},
	{"dateOfBirth", "Date of Birth", func(in SubmitInput) string { return in.DateOfBirth }},
	{"gender", "Gender", func(in SubmitInput) string { return in.Gender }},
	{"loanCategory", "Loan Category", func(in SubmitInput) string { return in.LoanCategory }},
	{"referralName1", "Referral Name 1", func(in SubmitInput) string { return in.ReferralName1 }},
	{"referralPhone1", "Referral Phone 1", func(in SubmitInput) string { return in.ReferralPhone1 }},
	{"referralName2", "Referral Name 2", func(in SubmitInput) string { return in.ReferralName2 }},
	{"referralPhone2", "Referral Phone 2", func(in SubmitInput) string { return in.ReferralPhone2 }},
}

// Submit validates the form input and persists a new application. Duplicate
// submissions are allowed; there is no dedup key.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Application, error) {
	for _, f := range requiredFields {
		if strings.TrimSpace(f.get(in)) == "" {
			return Application{}, &ValidationError{Field: f.key, Message: f.label + " is required"}
		}
	}

	if in.LoanCategory == categoryOther && strings.TrimSpace(in.LoanCategoryOther) == "" {
		return Application{}, &ValidationError{Field: "loanCategoryOther", Message: "Please specify your loan category"}
	}

	dob, _, err := parseDate(in.DateOfBirth)
	if err != nil {
		return Application{}, fmt.Errorf("parse dateOfBirth: %w", err)
	}

	app := Application{
		ID:                   uuid.NewString(),
		Name:                 in.Name,
		PhoneNumber:          in.PhoneNumber,
		PrimaryContactNumber: in.PrimaryContactNumber,
		Address:              in.Address,
		DateOfBirth:          dob,
		Gender:               in.Gender,
		LoanCategory:         in.LoanCategory,
		ReferralName1:        in.ReferralName1,
		ReferralPhone1:       in.ReferralPhone1,
		ReferralName2:        in.ReferralName2,
		ReferralPhone2:       in.ReferralPhone2,
		SubmittedAt:          time.Now().UTC(),
	}
	if in.LoanCategory == categoryOther {
		other := in.LoanCategoryOther
		app.LoanCategoryOther = &other
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// ListInput carries the raw listing query parameters.
type ListInput struct {
	Search       string
	Gender       string
	LoanCategory string
	FromDate     string
	ToDate       string
}

// List translates the optional query parameters into a Filter and returns the
// matching applications, most recent first. The literal value "all" for gender
// or loanCategory means no filter. Date bounds are inclusive; a date-only upper
// bound covers the whole day.
func (s *Service) List(ctx context.Context, in ListInput) ([]Application, error) {
	f := Filter{Search: in.Search}

	if in.Gender != "" && in.Gender != "all" {
		f.Gender = in.Gender
	}
	if in.LoanCategory != "" && in.LoanCategory != "all" {
		f.LoanCategory = in.LoanCategory
	}

	if in.FromDate != "" {
		from, _, err := parseDate(in.FromDate)
		if err != nil {
			return nil, &ValidationError{Field: "fromDate", Message: "Invalid fromDate"}
		}
		f.From = &from
	}
	if in.ToDate != "" {
		to, dateOnly, err := parseDate(in.ToDate)
		if err != nil {
			return nil, &ValidationError{Field: "toDate", Message: "Invalid toDate"}
		}
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = &to
	}

	return s.repo.Find(ctx, f)
}

// Get fetches a single application by id.
func (s *Service) Get(ctx context.Context, id string) (Application, error) {
	return s.repo.FindByID(ctx, id)
}

// Delete permanently removes the application. A second delete of the same id
// reports ErrNotFound, not a conflict.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// parseDate accepts a calendar date or an RFC 3339 timestamp and reports which
// form was supplied.
func parseDate(value string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), true, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), false, nil
}
