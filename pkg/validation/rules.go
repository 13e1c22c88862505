package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

// ErrorKind identifies why a field failed validation.
type ErrorKind string

const (
	ErrorRequired  ErrorKind = "required"
	ErrorEmail     ErrorKind = "email"
	ErrorMinLength ErrorKind = "minlength"
	ErrorPattern   ErrorKind = "pattern"
)

// Validator maps a field value to a failure kind. It returns ok=true when the
// value passes.
type Validator func(value any) (kind ErrorKind, ok bool)

const (
	emailTag      = "formemail"
	maxEmailLen   = 254
	maxEmailLocal = 64
)

// emailPattern follows the address grammar browsers apply to email inputs.
// Dotless hosts such as "localhost" are accepted.
var emailPattern = regexp.MustCompile("^[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
	"@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

var (
	structValidatorOnce sync.Once
	structValidator     *validator.Validate
)

func tagValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		v := validator.New()
		if err := v.RegisterValidation(emailTag, validEmail); err != nil {
			panic(err)
		}
		structValidator = v
	})
	return structValidator
}

func validEmail(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) > maxEmailLen {
		return false
	}
	at := strings.IndexByte(s, '@')
	if at < 0 || at > maxEmailLocal {
		return false
	}
	return emailPattern.MatchString(s)
}

// Required fails on nil and empty values. Booleans always pass; use
// RequiredTrue for checkboxes.
func Required() Validator {
	return func(value any) (ErrorKind, bool) {
		if isEmpty(value) {
			return ErrorRequired, false
		}
		return "", true
	}
}

// RequiredTrue fails unless value is the boolean true. It reports
// ErrorRequired so checkbox agreements surface as "is required".
func RequiredTrue() Validator {
	return func(value any) (ErrorKind, bool) {
		if b, ok := value.(bool); ok && b {
			return "", true
		}
		return ErrorRequired, false
	}
}

// Email checks the value is a well formed address. Empty values pass.
func Email() Validator {
	return func(value any) (ErrorKind, bool) {
		s := stringValue(value)
		if s == "" {
			return "", true
		}
		if err := tagValidator().Var(s, emailTag); err != nil {
			return ErrorEmail, false
		}
		return "", true
	}
}

// MinLength requires at least n characters, counted in UTF-16 code units the
// way browsers count them. Empty values pass.
func MinLength(n int) Validator {
	return func(value any) (ErrorKind, bool) {
		s := stringValue(value)
		if s == "" {
			return "", true
		}
		if utf16Len(s) < n {
			return ErrorMinLength, false
		}
		return "", true
	}
}

// Pattern requires the whole value to match expr. Empty values pass. The
// expression is anchored when it is not already.
func Pattern(expr string) Validator {
	re := regexp.MustCompile(anchor(expr))
	return func(value any) (ErrorKind, bool) {
		s := stringValue(value)
		if s == "" {
			return "", true
		}
		if !re.MatchString(s) {
			return ErrorPattern, false
		}
		return "", true
	}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if units := utf16.RuneLen(r); units > 0 {
			n += units
		} else {
			n++
		}
	}
	return n
}

func anchor(expr string) string {
	if !strings.HasPrefix(expr, "^") {
		expr = "^" + expr
	}
	if !strings.HasSuffix(expr, "$") {
		expr += "$"
	}
	return expr
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	default:
		return false
	}
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
