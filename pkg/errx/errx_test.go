package errx

import (
	"errors"
	"fmt"
	"testing"
)

func TestRegistryCodesArePrefixed(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BOOM", TypeBusiness, 400, "it went boom")

	err := reg.New(code)
	if err.Code != "TEST_BOOM" {
		t.Errorf("Code = %q, want TEST_BOOM", err.Code)
	}
	if err.HTTPStatus != 400 || err.Type != TypeBusiness {
		t.Errorf("definition not carried over: %+v", err)
	}
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BOOM", TypeBusiness, 400, "it went boom")

	err := reg.New(code).WithDetail("k", "v")
	if !errors.Is(err, reg.New(code)) {
		t.Error("errors.Is must match two instances of the same code")
	}

	other := reg.Register("OTHER", TypeInternal, 500, "different")
	if errors.Is(err, reg.New(other)) {
		t.Error("errors.Is must not match distinct codes")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(cause, "context", TypeInternal)

	if !errors.Is(err, cause) {
		t.Error("Unwrap chain must reach the cause")
	}
}

func TestWithDetailAccumulates(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BOOM", TypeBusiness, 400, "boom")

	err := reg.New(code).WithDetail("a", 1).WithDetail("b", "two")
	if len(err.Details) != 2 {
		t.Errorf("Details = %v, want both keys", err.Details)
	}
}
