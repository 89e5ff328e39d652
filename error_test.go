package msgcode

import (
	"errors"
	"testing"
)

func TestNewError(t *testing.T) {
	c := New(Config{})
	_ = c.Add("ORD404-E", "order {0} not found", false)

	err := NewError(c, "ORD404", 42)
	if err.Error() != "order 42 not found" {
		t.Errorf("Error() = %q", err.Error())
	}
	var coded Error
	if !errors.As(err, &coded) {
		t.Fatalf("NewError() should return a msgcode.Error, got %T", err)
	}
	if coded.Code() != "ORD404" || coded.Level() != LevelError {
		t.Errorf("Code() = %q, Level() = %v", coded.Code(), coded.Level())
	}
	if coded.Message().Template() != "order {0} not found" {
		t.Errorf("Message() = %v", coded.Message())
	}
	if errors.Unwrap(err) != nil {
		t.Errorf("NewError() should not wrap anything, got %v", errors.Unwrap(err))
	}
}

func TestWrapError(t *testing.T) {
	c := New(Config{})
	_ = c.Add("DB001-E", "database unavailable", false)

	cause := errors.New("connection refused")
	err := WrapError(c, cause, "DB001-E")
	if !errors.Is(err, cause) {
		t.Errorf("WrapError() should wrap the cause")
	}
	if err.Error() != "database unavailable" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrapError_missingCode(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapError(New(Config{}), cause, "NOPE-E")
	if !errors.Is(err, ErrMissingCode) {
		t.Fatalf("WrapError() error = %v, want ErrMissingCode", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("missing code error should keep the cause")
	}
	var missing *MissingCodeError
	if !errors.As(err, &missing) || missing.Code != "NOPE-E" {
		t.Errorf("missing code error = %v", err)
	}
}

func TestNewError_usesGlobalCatalog(t *testing.T) {
	_ = Global().Add("GLOBAL_ERR-W", "careful with {0}", true)
	defer Global().Remove("GLOBAL_ERR")

	err := NewError(nil, "GLOBAL_ERR", "fire")
	if err.Error() != "careful with fire" {
		t.Errorf("Error() = %q", err.Error())
	}
}
