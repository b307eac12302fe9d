package policy

import (
	"strings"
	"unicode/utf8"

	"github.com/erppro/identity/internal/model"
)

// MinLength is the minimum password length in characters
const MinLength = 10

// SpecialCharacters is the set of symbols that satisfy the special-character rule
const SpecialCharacters = "!@#$%^&*()-_=+[]{};':\",.<>?/"

// Evaluation is the result of checking a candidate password against the policy.
// Each flag reflects one rule; IsStrong holds iff all rules are satisfied.
type Evaluation struct {
	MeetsLength  bool
	HasUppercase bool
	HasDigit     bool
	HasSpecial   bool
	IsStrong     bool
}

// Evaluate checks a candidate password against the fixed rule set.
// There is no upper length bound and no dictionary or repetition check.
func Evaluate(candidate string) Evaluation {
	e := Evaluation{
		MeetsLength: utf8.RuneCountInString(candidate) >= MinLength,
	}

	for _, r := range candidate {
		switch {
		case r >= 'A' && r <= 'Z':
			e.HasUppercase = true
		case r >= '0' && r <= '9':
			e.HasDigit = true
		case strings.ContainsRune(SpecialCharacters, r):
			e.HasSpecial = true
		}
	}

	e.IsStrong = e.MeetsLength && e.HasUppercase && e.HasDigit && e.HasSpecial
	return e
}

// Score counts the satisfied rules, 0-4. Advisory only, never gates acceptance.
func (e Evaluation) Score() int {
	score := 0
	for _, ok := range []bool{e.MeetsLength, e.HasUppercase, e.HasDigit, e.HasSpecial} {
		if ok {
			score++
		}
	}
	return score
}

// Label maps the score to a display label. Advisory only.
func (e Evaluation) Label() string {
	switch e.Score() {
	case 1:
		return "weak"
	case 2:
		return "fair"
	case 3:
		return "good"
	case 4:
		return "strong"
	default:
		return ""
	}
}

// Err returns the first violated rule, or nil when the password is strong.
// Rules are reported in a fixed order: length, uppercase, digit, special.
func (e Evaluation) Err() error {
	switch {
	case !e.MeetsLength:
		return model.ErrPasswordTooShort
	case !e.HasUppercase:
		return model.ErrPasswordNoUppercase
	case !e.HasDigit:
		return model.ErrPasswordNoDigit
	case !e.HasSpecial:
		return model.ErrPasswordNoSpecial
	default:
		return nil
	}
}
