package http

import (
	"errors"
	"strings"
	"testing"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestHex32Validation(t *testing.T) {
	type P struct {
		AccountID string `json:"account_id" validate:"hex32"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{AccountID: strings.Repeat("a", 32)}); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}
	for _, s := range []string{
		"",
		strings.Repeat("A", 32),
		"deadbeef",
		strings.Repeat("g", 32),
		strings.Repeat("a", 33),
	} {
		err := cv.Validate(P{AccountID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if !containsFieldMsg(ToFieldErrors(err), "account_id", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, ToFieldErrors(err))
		}
	}
}

func TestAmountValidation(t *testing.T) {
	type P struct {
		Value string `json:"value" validate:"required,amount"`
	}
	cv := NewValidator()

	for _, s := range []string{"0", "1", "2250000000000000000", " 42 ",
		"115792089237316195423570985008687907853269984665640564039457584007913129639935"} {
		if err := cv.Validate(P{Value: s}); err != nil {
			t.Fatalf("%q should be valid: %v", s, err)
		}
	}
	for _, s := range []string{"-1", "1.5", "1e18", "abc", "0x10",
		"115792089237316195423570985008687907853269984665640564039457584007913129639936"} {
		err := cv.Validate(P{Value: s})
		if err == nil {
			t.Fatalf("%q should be invalid", s)
		}
		if !containsFieldMsg(ToFieldErrors(err), "value", "non-negative integer amount") {
			t.Fatalf("unexpected details for %q: %+v", s, ToFieldErrors(err))
		}
	}
	if !containsFieldMsg(ToFieldErrors(cv.Validate(P{})), "value", "is required") {
		t.Fatal("missing value should report required")
	}
}

func TestToFieldErrors_NonValidatorError(t *testing.T) {
	got := ToFieldErrors(errors.New("boom"))
	if len(got) != 1 || got[0].Field != "_" || got[0].Message != "boom" {
		t.Fatalf("unexpected: %+v", got)
	}
}
