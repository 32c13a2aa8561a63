package service

import (
	"errors"
	"fmt"

	"github.com/4ndreams/GPS-sub000/internal/app/repository"
	"github.com/4ndreams/GPS-sub000/pkg/rut"
	"gorm.io/gorm"
)

// RUTFieldError reports which request field held the rejected RUT.
// It matches both ErrInvalidRUT and the underlying rut error with errors.Is.
type RUTFieldError struct {
	Field string
	Err   error
}

func (e *RUTFieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *RUTFieldError) Unwrap() []error {
	return []error{ErrInvalidRUT, e.Err}
}

func invalidRUT(field string, err error) error {
	return &RUTFieldError{Field: field, Err: err}
}

// parseRUTField parses a RUT typed into field and returns its canonical form.
func parseRUTField(field, input string) (string, error) {
	id, err := rut.Parse(input)
	if err != nil {
		return "", invalidRUT(field, err)
	}
	return id.String(), nil
}

// canonicalUniqueRUT parses input and fails with ErrRUTAlreadyExists when the
// RUT belongs to a user other than userID.
func canonicalUniqueRUT(users repository.UserRepository, userID uint, input string) (string, error) {
	canonical, err := parseRUTField("rut", input)
	if err != nil {
		return "", err
	}

	owner, err := users.FindByRUT(canonical)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	if owner != nil && owner.ID != userID {
		return "", ErrRUTAlreadyExists
	}
	return canonical, nil
}
