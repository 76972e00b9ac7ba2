package validation

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mentorhub/mentorhub/internal/domain"
)

// Validation rule limits
var (
	PasswordMinLength = 8
	NameMinLength     = 2
	NameMaxLength     = 100
)

// Custom struct tags registered on the gin validator.
const (
	TagSignupRole = "signuprole"
	TagAnswer     = "relanswer"
	TagPassword   = "password"
	TagTaskStatus = "taskstatus"
	TagPostStatus = "poststatus"
	TagRole       = "role"
)

// RegisterCustomValidators installs the application's tags on v.
func RegisterCustomValidators(v *validator.Validate) error {
	rules := map[string]validator.Func{
		TagSignupRole: func(fl validator.FieldLevel) bool {
			return domain.NormalizeRole(fl.Field().String()).CanSelfRegister()
		},
		TagRole: func(fl validator.FieldLevel) bool {
			role, err := domain.ParseRole(fl.Field().String())
			return err == nil && role.IsSet()
		},
		TagAnswer: func(fl validator.FieldLevel) bool {
			status, err := domain.ParseRelationshipStatus(fl.Field().String())
			return err == nil && status.IsAnswer()
		},
		TagTaskStatus: func(fl validator.FieldLevel) bool {
			_, err := domain.ParseTaskStatus(fl.Field().String())
			return err == nil
		},
		TagPostStatus: func(fl validator.FieldLevel) bool {
			_, err := domain.ParsePostStatus(fl.Field().String())
			return err == nil
		},
		TagPassword: func(fl validator.FieldLevel) bool {
			return IsAcceptablePassword(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// RegisterWithGin installs the custom tags on gin's default binding validator.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterCustomValidators(v)
}

// IsAcceptablePassword requires the minimum length and at least one letter and one digit.
func IsAcceptablePassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// IsValidName checks a display name against the configured length limits.
func IsValidName(name string) bool {
	n := len([]rune(strings.TrimSpace(name)))
	return n >= NameMinLength && n <= NameMaxLength
}
