package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const minPasswordLength = 6

var registerOnce sync.Once

// RegisterValidators installs the "password" rule on gin's validator and
// reports field names by their json tag.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return len(PasswordProblems(fl.Field().String())) == 0
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return ValidUserName(fl.Field().String())
		})
	})
}

// PasswordProblems lists every rule password breaks.
func PasswordProblems(password string) []string {
	var problems []string
	if len(password) < minPasswordLength {
		problems = append(problems, fmt.Sprintf("Passwords must be at least %d characters.", minPasswordLength))
	}
	var upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		problems = append(problems, "Passwords must have at least one uppercase ('A'-'Z').")
	}
	if !digit {
		problems = append(problems, "Passwords must have at least one digit ('0'-'9').")
	}
	return problems
}

const userNameSymbols = "-._@+!"

// ValidUserName accepts ASCII letters, digits and the symbols -._@+!
func ValidUserName(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(userNameSymbols, r):
		default:
			return false
		}
	}
	return true
}

// bindingMessages turns a ShouldBind error into client-facing messages.
func bindingMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Request body is not valid JSON."}
	}
	var msgs []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("The %s field is required.", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("Email '%v' is invalid.", fe.Value()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("The %s field must be at most %s characters.", fe.Field(), fe.Param()))
		case "username":
			msgs = append(msgs, fmt.Sprintf("Username '%v' is invalid, can only contain letters or digits.", fe.Value()))
		case "password":
			pw, _ := fe.Value().(string)
			msgs = append(msgs, PasswordProblems(pw)...)
		default:
			msgs = append(msgs, fmt.Sprintf("The %s field is invalid.", fe.Field()))
		}
	}
	return msgs
}
