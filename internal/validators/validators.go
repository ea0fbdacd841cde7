package validators

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator used for request bodies and inputs.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// IsEmail checks the address shape only.
func IsEmail(email string) bool {
	return Validator().Var(email, "required,email") == nil
}

// IsImageURL accepts an absolute http(s) URL.
func IsImageURL(raw string) bool {
	return Validator().Var(raw, "required,http_url") == nil
}
