package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

func validInput() SubmitInput {
	return SubmitInput{
		Name:                 "Asha Verma",
		PhoneNumber:          "555-0100",
		PrimaryContactNumber: "555-0101",
		Address:              "12 Lake Road",
		DateOfBirth:          "1990-04-15",
		Gender:               "Female",
		LoanCategory:         "personal",
		ReferralName1:        "Ravi Kumar",
		ReferralPhone1:       "555-0200",
		ReferralName2:        "Meena Joshi",
		ReferralPhone2:       "555-0201",
	}
}

func TestSubmitReportsFirstMissingField(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	in := validInput()
	in.PhoneNumber = " "
	in.Gender = ""

	_, err := svc.Submit(ctx, in)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Field != "phoneNumber" {
		t.Fatalf("expected first failing field phoneNumber, got %s", ve.Field)
	}
	if ve.Message != "Phone Number is required" {
		t.Fatalf("unexpected message %q", ve.Message)
	}
}

func TestSubmitEachRequiredField(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	blank := map[string]func(*SubmitInput){
		"name":                 func(in *SubmitInput) { in.Name = "" },
		"phoneNumber":          func(in *SubmitInput) { in.PhoneNumber = "" },
		"primaryContactNumber": func(in *SubmitInput) { in.PrimaryContactNumber = "" },
		"address":              func(in *SubmitInput) { in.Address = "" },
		"dateOfBirth":          func(in *SubmitInput) { in.DateOfBirth = "" },
		"gender":               func(in *SubmitInput) { in.Gender = "" },
		"loanCategory":         func(in *SubmitInput) { in.LoanCategory = "" },
		"referralName1":        func(in *SubmitInput) { in.ReferralName1 = "" },
		"referralPhone1":       func(in *SubmitInput) { in.ReferralPhone1 = "" },
		"referralName2":        func(in *SubmitInput) { in.ReferralName2 = "" },
		"referralPhone2":       func(in *SubmitInput) { in.ReferralPhone2 = "" },
	}

	for field, clear := range blank {
		in := validInput()
		clear(&in)
		_, err := svc.Submit(ctx, in)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected validation error, got %v", field, err)
		}
		if ve.Field != field {
			t.Fatalf("expected field %s, got %s", field, ve.Field)
		}
	}
}

func TestSubmitOtherCategoryRequiresDetail(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	in := validInput()
	in.LoanCategory = "other"

	_, err := svc.Submit(ctx, in)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Field != "loanCategoryOther" {
		t.Fatalf("expected field loanCategoryOther, got %s", ve.Field)
	}

	in.LoanCategoryOther = "festival advance"
	app, err := svc.Submit(ctx, in)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if app.LoanCategoryOther == nil || *app.LoanCategoryOther != "festival advance" {
		t.Fatalf("expected stored detail, got %v", app.LoanCategoryOther)
	}
}

func TestSubmitDropsOtherDetailForNamedCategory(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	in := validInput()
	in.LoanCategoryOther = "should be ignored"

	app, err := svc.Submit(ctx, in)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if app.LoanCategoryOther != nil {
		t.Fatalf("expected nil loanCategoryOther, got %q", *app.LoanCategoryOther)
	}
}

func TestSubmitRoundTrip(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	start := time.Now().UTC()
	created, err := svc.Submit(ctx, validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Asha Verma" || got.PhoneNumber != "555-0100" || got.ReferralPhone2 != "555-0201" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.DateOfBirth != time.Date(1990, 4, 15, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected dateOfBirth %v", got.DateOfBirth)
	}
	if got.SubmittedAt.Before(start) {
		t.Fatalf("submittedAt %v before request time %v", got.SubmittedAt, start)
	}
}

func TestSubmitUnparseableDateIsNotValidationError(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	in := validInput()
	in.DateOfBirth = "not-a-date"

	_, err := svc.Submit(ctx, in)
	if err == nil {
		t.Fatal("expected error")
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		t.Fatalf("expected generic error, got validation error on %s", ve.Field)
	}
}

func seedApplications(t *testing.T, svc *Service) (older, newer Application) {
	t.Helper()
	ctx := context.Background()

	first := validInput()
	older, err := svc.Submit(ctx, first)
	if err != nil {
		t.Fatalf("seed older: %v", err)
	}

	second := validInput()
	second.Name = "Binod Rao"
	second.PhoneNumber = "555-0300"
	second.Gender = "Male"
	second.LoanCategory = "business"
	newer, err = svc.Submit(ctx, second)
	if err != nil {
		t.Fatalf("seed newer: %v", err)
	}

	// Force distinct timestamps so the ordering assertion is deterministic.
	repo := svc.repo.(*memoryRepository)
	repo.mu.Lock()
	older.SubmittedAt = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	newer.SubmittedAt = time.Date(2026, 2, 20, 18, 30, 0, 0, time.UTC)
	repo.storage[older.ID] = older
	repo.storage[newer.ID] = newer
	repo.mu.Unlock()
	return older, newer
}

func TestListSortedDescending(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	older, newer := seedApplications(t, svc)

	apps, err := svc.List(context.Background(), ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 records, got %d", len(apps))
	}
	if apps[0].ID != newer.ID || apps[1].ID != older.ID {
		t.Fatalf("expected newest first, got %s then %s", apps[0].ID, apps[1].ID)
	}
}

func TestListGenderAllMeansNoFilter(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	seedApplications(t, svc)
	ctx := context.Background()

	all, err := svc.List(ctx, ListInput{Gender: "all"})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	none, err := svc.List(ctx, ListInput{})
	if err != nil {
		t.Fatalf("list none: %v", err)
	}
	if len(all) != len(none) {
		t.Fatalf("gender=all returned %d, no filter returned %d", len(all), len(none))
	}

	female, err := svc.List(ctx, ListInput{Gender: "Female"})
	if err != nil {
		t.Fatalf("list female: %v", err)
	}
	if len(female) != 1 || female[0].Gender != "Female" {
		t.Fatalf("expected one Female record, got %+v", female)
	}
}

func TestListLoanCategoryFilter(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	_, newer := seedApplications(t, svc)

	apps, err := svc.List(context.Background(), ListInput{LoanCategory: "business"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 1 || apps[0].ID != newer.ID {
		t.Fatalf("expected only the business record, got %+v", apps)
	}
}

func TestListSearchSpansAllTextFields(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	older, newer := seedApplications(t, svc)
	ctx := context.Background()

	// Referral phone, case-insensitive name, and a non-match.
	byPhone, err := svc.List(ctx, ListInput{Search: "555-0300"})
	if err != nil {
		t.Fatalf("search phone: %v", err)
	}
	if len(byPhone) != 1 || byPhone[0].ID != newer.ID {
		t.Fatalf("expected phone match on newer record, got %+v", byPhone)
	}

	byName, err := svc.List(ctx, ListInput{Search: "asha"})
	if err != nil {
		t.Fatalf("search name: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != older.ID {
		t.Fatalf("expected case-insensitive name match, got %+v", byName)
	}

	byReferral, err := svc.List(ctx, ListInput{Search: "MEENA"})
	if err != nil {
		t.Fatalf("search referral: %v", err)
	}
	if len(byReferral) != 2 {
		t.Fatalf("expected referral name match on both records, got %d", len(byReferral))
	}

	missing, err := svc.List(ctx, ListInput{Search: "zzz-none"})
	if err != nil {
		t.Fatalf("search miss: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("expected empty result, got %+v", missing)
	}
}

func TestListDateRange(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	older, newer := seedApplications(t, svc)
	ctx := context.Background()

	from, err := svc.List(ctx, ListInput{FromDate: "2026-02-01"})
	if err != nil {
		t.Fatalf("from only: %v", err)
	}
	if len(from) != 1 || from[0].ID != newer.ID {
		t.Fatalf("expected only newer record, got %+v", from)
	}

	// Date-only upper bound includes records submitted later that day.
	to, err := svc.List(ctx, ListInput{ToDate: "2026-02-20"})
	if err != nil {
		t.Fatalf("to only: %v", err)
	}
	if len(to) != 2 {
		t.Fatalf("expected both records within toDate, got %d", len(to))
	}

	window, err := svc.List(ctx, ListInput{FromDate: "2026-01-01", ToDate: "2026-01-31"})
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if len(window) != 1 || window[0].ID != older.ID {
		t.Fatalf("expected only older record in window, got %+v", window)
	}
}

func TestListInvalidDateIsValidationError(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	_, err := svc.List(context.Background(), ListInput{FromDate: "yesterday"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Field != "fromDate" {
		t.Fatalf("expected field fromDate, got %s", ve.Field)
	}
}

func TestDeleteTwiceReportsNotFound(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Submit(ctx, validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
