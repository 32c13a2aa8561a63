package rut

import (
	"errors"
	"strings"
)

// Kind classifies why a RUT was rejected.
type Kind int

const (
	KindNone Kind = iota
	KindEmpty
	KindMalformed
	KindInvalidCheckDigit
	KindMissingSeparator
)

var kindNames = map[Kind]string{
	KindNone:              "none",
	KindEmpty:             "empty",
	KindMalformed:         "malformed",
	KindInvalidCheckDigit: "invalid_check_digit",
	KindMissingSeparator:  "missing_separator",
}

// String returns a stable snake_case name, suitable for JSON and metric labels.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Message returns the end-user text shown next to a RUT field.
func (k Kind) Message() string {
	switch k {
	case KindEmpty:
		return "Debes ingresar tu RUT"
	case KindMalformed:
		return "El RUT tiene un formato inválido"
	case KindInvalidCheckDigit:
		return "El RUT ingresado no es válido"
	case KindMissingSeparator:
		return "Ingresa el RUT con guion antes del dígito verificador (ej: 12345678-5)"
	default:
		return ""
	}
}

// KindOf maps an error returned by Parse to its Kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmpty):
		return KindEmpty
	case errors.Is(err, ErrMalformed):
		return KindMalformed
	case errors.Is(err, ErrInvalidCheckDigit):
		return KindInvalidCheckDigit
	default:
		return KindMalformed
	}
}

// Result is the verdict of Describe.
type Result struct {
	Valid     bool
	Kind      Kind
	Message   string
	Formatted string
}

// UserMessage returns the localized text for a failed Result.
func (r Result) UserMessage() string {
	return r.Kind.Message()
}

// Describe validates a RUT typed into a form and explains the outcome.
//
// Unlike IsValid it requires a literal '-' in the typed input, and it checks
// for the dash before looking at the digits, so "123456785" is reported as a
// missing separator even though IsValid accepts it. Any other rejection,
// malformed shape included, is reported as an invalid check digit.
func Describe(input string) Result {
	if strings.TrimSpace(input) == "" {
		return Result{Kind: KindEmpty, Message: "empty identifier"}
	}
	if !strings.Contains(input, "-") {
		return Result{Kind: KindMissingSeparator, Message: "missing check character separator"}
	}
	if !IsValid(input) {
		return Result{Kind: KindInvalidCheckDigit, Message: "invalid check digit"}
	}
	return Result{Valid: true, Kind: KindNone, Formatted: Format(input)}
}
