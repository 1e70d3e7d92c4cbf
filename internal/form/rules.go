package form

import (
	"regexp"
	"strings"
)

// Field names one validated input.
type Field int

const (
	Name Field = iota
	Email
	Message
)

// Fields lists every field in document order. Focus goes to the first
// invalid field in this order.
var Fields = []Field{Name, Email, Message}

func (f Field) String() string {
	switch f {
	case Name:
		return "name"
	case Email:
		return "email"
	case Message:
		return "message"
	default:
		return "unknown"
	}
}

// Field error messages.
const (
	ErrNameRequired    = "Please enter your name."
	ErrEmailRequired   = "Please enter your email address."
	ErrEmailFormat     = "Please enter a valid email address (e.g. name@example.com)."
	ErrMessageRequired = "Please enter a message."
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether value looks like an address.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// Check returns the error message for value, or "" when it is acceptable.
// Empty values only produce an error when showEmptyError is set; a non-empty
// email is always format-checked.
func Check(field Field, value string, showEmptyError bool) string {
	value = strings.TrimSpace(value)
	switch field {
	case Name:
		if value == "" && showEmptyError {
			return ErrNameRequired
		}
	case Email:
		if value == "" {
			if showEmptyError {
				return ErrEmailRequired
			}
			return ""
		}
		if !ValidEmail(value) {
			return ErrEmailFormat
		}
	case Message:
		if value == "" && showEmptyError {
			return ErrMessageRequired
		}
	}
	return ""
}

// Valid reports whether value passes every rule for field, regardless of
// what is currently displayed.
func Valid(field Field, value string) bool {
	return Check(field, value, true) == ""
}
