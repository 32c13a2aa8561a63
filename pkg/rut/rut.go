// Package rut validates, normalizes and formats Chilean RUT/RUN numbers.
//
// A RUT is a numeric body of 1 to 8 digits plus a modulus-11 check character
// ('0'-'9' or 'K'). It is written as 123456785, 12345678-5 or 12.345.678-5;
// all three are the same value. Every function in this package is pure and
// safe for concurrent use.
package rut

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// MaxBodyDigits is the longest numeric body accepted.
const MaxBodyDigits = 8

var (
	ErrEmpty             = errors.New("rut: empty identifier")
	ErrMalformed         = errors.New("rut: malformed identifier")
	ErrInvalidCheckDigit = errors.New("rut: invalid check digit")
)

// formattable is the shape Format accepts after normalization.
var formattable = regexp.MustCompile(`^(\d{7,8})([0-9K])$`)

// Identifier is a parsed RUT. Body keeps leading zeros exactly as typed.
type Identifier struct {
	Body  string
	Check byte
}

// Normalize trims surrounding whitespace, strips every '.' and '-' and
// uppercases the result. Internal whitespace and other characters are kept.
func Normalize(input string) string {
	s := strings.TrimSpace(input)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "-", "")
	return strings.ToUpper(s)
}

// CheckDigit computes the check character for body using the modulus-11
// accumulation loop. It returns 'K' when the remainder is zero. A body of
// zero or less never enters the loop and yields '0'.
func CheckDigit(body int) byte {
	s, m := 1, 0
	for body > 0 {
		s = (s + (body%10)*(9-m%6)) % 11
		m++
		body /= 10
	}
	if s == 0 {
		return 'K'
	}
	return byte('0' + s - 1)
}

// IsValid reports whether input is a well-formed RUT whose check character
// matches its body. Separators are optional and 'k' is accepted.
func IsValid(input string) bool {
	_, err := Parse(input)
	return err == nil
}

// Parse decomposes input into an Identifier and verifies the check character.
// A dash is not required. An all-zero body is well formed, so "0-0" parses.
func Parse(input string) (Identifier, error) {
	if strings.TrimSpace(input) == "" {
		return Identifier{}, ErrEmpty
	}

	s := Normalize(input)
	if len(s) < 2 {
		return Identifier{}, ErrMalformed
	}

	body, check := s[:len(s)-1], s[len(s)-1]
	if len(body) > MaxBodyDigits || !allDigits(body) {
		return Identifier{}, ErrMalformed
	}
	if !isCheckChar(check) {
		return Identifier{}, ErrMalformed
	}

	n, err := strconv.Atoi(body)
	if err != nil {
		return Identifier{}, ErrMalformed
	}
	if CheckDigit(n) != check {
		return Identifier{}, ErrInvalidCheckDigit
	}

	return Identifier{Body: body, Check: check}, nil
}

// MustParse is like Parse but panics on error. Use it for constants only.
func MustParse(input string) Identifier {
	id, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return id
}

// Format returns the canonical display form (12.345.678-5). When the
// normalized input is not 7-8 digits followed by a digit or K, the original
// input is returned untouched. The check character is not verified.
func Format(input string) string {
	m := formattable.FindStringSubmatch(Normalize(input))
	if m == nil {
		return input
	}
	return groupThousands(m[1]) + "-" + m[2]
}

// Raw is the separator-free form, e.g. 123456785.
func (id Identifier) Raw() string {
	return id.Body + string(id.Check)
}

// Dashed is body, dash, check character, e.g. 12345678-5.
func (id Identifier) Dashed() string {
	return id.Body + "-" + string(id.Check)
}

// String returns the canonical display form with thousands separators.
func (id Identifier) String() string {
	return groupThousands(id.Body) + "-" + string(id.Check)
}

// Number returns the numeric value of the body.
func (id Identifier) Number() int {
	n, _ := strconv.Atoi(id.Body)
	return n
}

func groupThousands(digits string) string {
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isCheckChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == 'K'
}
