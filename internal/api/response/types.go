package response

import (
	"time"

	"github.com/erppro/identity/internal/model"
	"github.com/erppro/identity/internal/services/policy"
)

// Envelope is the uniform response shape for every endpoint:
// data is omitted entirely (not null) when absent.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Account represents a sanitized account in API responses.
// It never carries the credential secret.
type Account struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthdate"`
	Address   string `json:"address"`
	Role      string `json:"role"`
}

// AccountFromModel converts a model.SanitizedAccount to a response Account
func AccountFromModel(a *model.SanitizedAccount) Account {
	return Account{
		ID:        string(a.ID),
		Username:  a.Username,
		Name:      a.DisplayName,
		Email:     a.Email,
		Phone:     a.PhoneDigits,
		BirthDate: a.BirthDate.Format("2006-01-02"),
		Address:   a.Address,
		Role:      string(a.Role),
	}
}

// Auth is the data payload for login and register responses
type Auth struct {
	Account Account `json:"account"`
	Token   string  `json:"token"`
}

// AuthFromState creates an Auth payload from a sanitized account and the
// current session token
func AuthFromState(account *model.SanitizedAccount, token string) Auth {
	return Auth{
		Account: AccountFromModel(account),
		Token:   token,
	}
}

// PasswordCheck is the advisory policy breakdown for a candidate password
type PasswordCheck struct {
	MeetsLength  bool   `json:"meets_length"`
	HasUppercase bool   `json:"has_uppercase"`
	HasDigit     bool   `json:"has_digit"`
	HasSpecial   bool   `json:"has_special"`
	IsStrong     bool   `json:"is_strong"`
	Score        int    `json:"score"`
	Label        string `json:"label"`
}

// PasswordCheckFromEvaluation converts a policy evaluation
func PasswordCheckFromEvaluation(e policy.Evaluation) PasswordCheck {
	return PasswordCheck{
		MeetsLength:  e.MeetsLength,
		HasUppercase: e.HasUppercase,
		HasDigit:     e.HasDigit,
		HasSpecial:   e.HasSpecial,
		IsStrong:     e.IsStrong,
		Score:        e.Score(),
		Label:        e.Label(),
	}
}

// Health is the informational health payload. It is not enveloped.
type Health struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	AccountCount int       `json:"account_count"`
}
