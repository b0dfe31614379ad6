package models

import (
	"errors"
)

// custom error types (generic types found in apperror package)

// user
var (
	ErrEMailAddressTaken = errors.New("email-address is already used")
	ErrInvalidUser       = errors.New("invalid email-address or password")
	ErrWeakPassword      = errors.New("password does not meet rules")
)

// review / unit
// transformed by controllers to respective Unprocessable Entity (422)
var (
	ErrMalformedReview = errors.New("stored review document is malformed")
	ErrUnitCodeInvalid = errors.New("unit code must be 3-10 characters")
)
