package model

import "errors"

// Common errors used across the application
var (
	// Directory errors
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailExists     = errors.New("an account with that email already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Password policy errors (sub-reasons of a weak password)
	ErrPasswordTooShort    = errors.New("password must be at least 10 characters")
	ErrPasswordNoUppercase = errors.New("password must contain an uppercase letter")
	ErrPasswordNoDigit     = errors.New("password must contain a digit")
	ErrPasswordNoSpecial   = errors.New("password must contain a special character")
	ErrPasswordMismatch    = errors.New("passwords do not match")

	// Field validation errors
	ErrInvalidUsername    = errors.New("username must be at least 3 characters with no spaces")
	ErrInvalidDisplayName = errors.New("name must be at least 3 characters")
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrInvalidPhone       = errors.New("phone must be 7 to 15 digits")
	ErrUnderage           = errors.New("you must be at least 18 years old")
	ErrShortAddress       = errors.New("address must be at least 10 characters")
)
