// Package validate holds the per-field registration predicates.
// Each predicate is pure: it returns nil for a valid value or one of the
// sentinel reason errors from the model package.
package validate

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"

	"github.com/erppro/identity/internal/model"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]+$`)

	// shared instance: Var calls are safe for concurrent use
	emailChecker = playground.New()
)

// Username requires a trimmed length of at least 3 with no whitespace
func Username(username string) error {
	trimmed := strings.TrimSpace(username)
	if utf8.RuneCountInString(trimmed) < 3 {
		return model.ErrInvalidUsername
	}
	for _, r := range trimmed {
		if unicode.IsSpace(r) {
			return model.ErrInvalidUsername
		}
	}
	return nil
}

// DisplayName requires a trimmed length of at least 3
func DisplayName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < 3 {
		return model.ErrInvalidDisplayName
	}
	return nil
}

// EmailShape requires a local@domain address per the validator library's
// RFC-5322-lite email grammar
func EmailShape(email string) error {
	if emailChecker.Var(email, "required,email") != nil {
		return model.ErrInvalidEmail
	}
	return nil
}

// PhoneDigits requires 7 to 15 ASCII digits and nothing else
func PhoneDigits(phone string) error {
	if !phonePattern.MatchString(phone) {
		return model.ErrInvalidPhone
	}
	if len(phone) < 7 || len(phone) > 15 {
		return model.ErrInvalidPhone
	}
	return nil
}

// Adult requires a calendar age of at least 18 whole years at now.
// The year difference is decremented when now's (month, day) falls strictly
// before the birthday in the current year, so the check is exact to the day.
func Adult(birthDate, now time.Time) error {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	if age < 18 {
		return model.ErrUnderage
	}
	return nil
}

// Address requires a trimmed length of at least 10
func Address(address string) error {
	if utf8.RuneCountInString(strings.TrimSpace(address)) < 10 {
		return model.ErrShortAddress
	}
	return nil
}
