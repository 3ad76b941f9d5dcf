package common

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

type testPayload struct {
	Name string `validate:"required"`
	Port int    `validate:"gte=0,lte=65535"`
}

func TestGenericEchoValidator_ValidStruct(t *testing.T) {
	v := NewGenericEchoValidator()

	if err := v.Validate(testPayload{Name: "splash-dark", Port: 8080}); err != nil {
		t.Fatalf("Expected no error for valid struct, got %v", err)
	}
}

func TestGenericEchoValidator_InvalidStruct(t *testing.T) {
	v := NewGenericEchoValidator()

	err := v.Validate(testPayload{Name: "", Port: 8080})
	if err == nil {
		t.Fatal("Expected error for missing required field, got nil")
	}

	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, httpErr.Code)
	}
}

func TestGenericEchoValidator_OutOfRangeValue(t *testing.T) {
	v := NewGenericEchoValidator()

	if err := v.Validate(testPayload{Name: "splash-light", Port: 70000}); err == nil {
		t.Fatal("Expected error for out-of-range port, got nil")
	}
}

func TestGenericEchoValidator_LazyInitialization(t *testing.T) {
	v := &GenericEchoValidator{}

	if err := v.Validate(testPayload{Name: "splash-dark", Port: 0}); err != nil {
		t.Fatalf("Expected no error with lazily initialized validator, got %v", err)
	}
	if v.Validator == nil {
		t.Error("Expected validator to be initialized after first use")
	}
}
