package request

import (
	"errors"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// validate checks the required-field tags on request structs.
// Field names in messages use the json tag, not the Go field name.
var validate = newValidator()

func newValidator() *playground.Validate {
	v := playground.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username        string `json:"username" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	BirthDate       string `json:"birthdate" validate:"required"`
	Address         string `json:"address" validate:"required"`
}

// PasswordCheckRequest is the request body for the advisory password check
type PasswordCheckRequest struct {
	Password string `json:"password"`
}

// MissingField returns the json name of the first required field that is
// absent, or empty when the struct is complete
func MissingField(req any) string {
	err := validate.Struct(req)
	if err == nil {
		return ""
	}
	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return ""
	}
	return fieldErrs[0].Field()
}
