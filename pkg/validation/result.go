package validation

// Result captures the outcome of running a field's validators.
type Result struct {
	Valid  bool        `json:"valid"`
	Errors []ErrorKind `json:"errors,omitempty"`
}

// Has reports whether kind is among the result errors.
func (r Result) Has(kind ErrorKind) bool {
	for _, k := range r.Errors {
		if k == kind {
			return true
		}
	}
	return false
}

// Validate runs every validator against value and collects failures in order.
func Validate(value any, validators ...Validator) Result {
	result := Result{Valid: true}
	for _, fn := range validators {
		if fn == nil {
			continue
		}
		if kind, ok := fn(value); !ok {
			result.Valid = false
			result.Errors = append(result.Errors, kind)
		}
	}
	return result
}

var messagePriority = []ErrorKind{ErrorRequired, ErrorEmail, ErrorMinLength, ErrorPattern}

// Message returns the human readable message for kind on field.
func Message(field string, kind ErrorKind) string {
	switch kind {
	case ErrorRequired:
		return field + " is required"
	case ErrorEmail:
		return "Please enter a valid email"
	case ErrorMinLength:
		return field + " is too short"
	case ErrorPattern:
		return "Please enter a valid phone number"
	default:
		return ""
	}
}

// MessageFor returns the first matching message for result, checking
// required, email, minlength, then pattern. Valid results yield "".
func MessageFor(field string, result Result) string {
	if result.Valid {
		return ""
	}
	for _, kind := range messagePriority {
		if result.Has(kind) {
			return Message(field, kind)
		}
	}
	return ""
}
