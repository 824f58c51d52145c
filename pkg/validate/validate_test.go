package validate_test

import (
	"testing"

	"github.com/mahfuzanam/bloodlink/pkg/validate"
)

type requestInput struct {
	Email      string  `json:"email"      validate:"required,email"`
	BloodGroup string  `json:"bloodGroup" validate:"required,in=A+,A-,B+,B-,AB+,AB-,O+,O-"`
	Date       string  `json:"date"       validate:"required,date"`
	Amount     float64 `json:"amount"     validate:"required,gt=0"`
	Note       string  `json:"note"       validate:"nullable,min=3"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(requestInput{
		Email:      "a@x.com",
		BloodGroup: "O-",
		Date:       "2026-01-15",
		Amount:     50,
		Note:       "", // nullable, allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(requestInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	for _, field := range []string{"email", "bloodGroup", "date", "amount"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required", field)
		}
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs := validate.Struct(in{Email: "not-an-email"}); errs["email"] == "" {
		t.Error("expected email validation error")
	}
	if errs := validate.Struct(in{Email: "valid@example.com"}); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

// The in= parameter list is itself comma-separated, so the rule splitter has
// to stitch it back together.
func TestInRuleWithCommaList(t *testing.T) {
	type in struct {
		Group string `json:"group" validate:"required,in=A+,A-,O+"`
	}
	if errs := validate.Struct(in{Group: "A-"}); validate.HasErrors(errs) {
		t.Errorf("A- should be allowed, got: %v", errs)
	}
	if errs := validate.Struct(in{Group: "C+"}); errs["group"] == "" {
		t.Error("C+ should be rejected")
	}
}

func TestDateRule(t *testing.T) {
	type in struct {
		Date string `json:"date" validate:"required,date"`
	}
	for _, ok := range []string{"2026-01-15", "2026-01-15 10:30:00", "15-01-2026"} {
		if errs := validate.Struct(in{Date: ok}); validate.HasErrors(errs) {
			t.Errorf("%q should parse, got: %v", ok, errs)
		}
	}
	if errs := validate.Struct(in{Date: "someday"}); errs["date"] == "" {
		t.Error("expected date validation error")
	}
}

func TestGtRule(t *testing.T) {
	type in struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
	}
	if errs := validate.Struct(in{Amount: -5}); errs["amount"] == "" {
		t.Error("negative amount should fail gt=0")
	}
	if errs := validate.Struct(in{Amount: 0.01}); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestMinMaxOnStrings(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,min=2,max=5"`
	}
	if errs := validate.Struct(in{Name: "a"}); errs["name"] == "" {
		t.Error("one rune should fail min=2")
	}
	if errs := validate.Struct(in{Name: "abcdef"}); errs["name"] == "" {
		t.Error("six runes should fail max=5")
	}
	if errs := validate.Struct(in{Name: "abc"}); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestNullableSkipsWhenEmpty(t *testing.T) {
	type in struct {
		Note string `json:"note" validate:"nullable,min=3"`
	}
	if errs := validate.Struct(in{Note: ""}); validate.HasErrors(errs) {
		t.Errorf("empty nullable field should pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Note: "ab"}); errs["note"] == "" {
		t.Error("non-empty nullable field should still hit min=3")
	}
}
