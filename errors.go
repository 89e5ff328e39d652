package msgcode

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalCode       = errors.New("illegal message code format")
	ErrAlreadyExists     = errors.New("message code already exists")
	ErrLoad              = errors.New("cannot load messages")
	ErrMissingCode       = errors.New("message code not found")
	ErrResourceNotFound  = errors.New("message resource not found")
	ErrGlobalInitialized = errors.New("global catalog already initialized")
)

// IllegalCodeError reports a string that is not a definition code.
type IllegalCodeError struct {
	Code string
}

func (err *IllegalCodeError) Error() string {
	return fmt.Sprintf("illegal message code format (%s)", err.Code)
}

func (err *IllegalCodeError) Is(target error) bool {
	return target == ErrIllegalCode
}

// AlreadyExistsError is returned by a non-overwriting Add on a held code.
type AlreadyExistsError struct {
	Code string
}

func (err *AlreadyExistsError) Error() string {
	return fmt.Sprintf("message code already exists (%s)", err.Code)
}

func (err *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// LoadError wraps a failure to read or parse a message resource. The
// catalog is never modified when a load fails.
type LoadError struct {
	Locator string
	Err     error
}

func (err *LoadError) Error() string {
	if err.Locator == "" {
		return fmt.Sprintf("cannot load messages: %v", err.Err)
	}
	return fmt.Sprintf("cannot load messages from %q: %v", err.Locator, err.Err)
}

func (err *LoadError) Unwrap() error {
	return err.Err
}

func (err *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// MissingCodeError is returned when a coded error refers to a code the
// catalog does not hold.
type MissingCodeError struct {
	Code string
	Err  error
}

func (err *MissingCodeError) Error() string {
	return fmt.Sprintf("message code not found (%s)", err.Code)
}

func (err *MissingCodeError) Unwrap() error {
	return err.Err
}

func (err *MissingCodeError) Is(target error) bool {
	return target == ErrMissingCode
}
