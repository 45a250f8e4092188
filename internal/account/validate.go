// Package account handles player registration and login on top of the
// storage layer.
package account

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern     = regexp.MustCompile(`^[\p{L}\s-]+$`)
	passwordPattern = regexp.MustCompile(`^[A-Za-z\d]{8,}$`)
	hasLetter       = regexp.MustCompile(`[A-Za-z]`)
	hasDigit        = regexp.MustCompile(`\d`)
)

// BirthDateLayout is the accepted birth date format.
const BirthDateLayout = "2006-01-02"

// Registration is the data entered on the sign-up form.
type Registration struct {
	Username        string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Email           string
	BirthDate       string
}

// Field names used in FieldError.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm-password"
	FieldFirstName       = "first-name"
	FieldLastName        = "last-name"
	FieldEmail           = "email"
	FieldBirthDate       = "birth-date"
)

// FieldError reports a problem with one form field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// ValidationError collects every field problem found in a registration.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "account: invalid registration: " + strings.Join(msgs, "; ")
}

// For returns the message for a field, or "" when the field is fine.
func (e *ValidationError) For(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

func (e *ValidationError) add(field, msg string) {
	if e.For(field) == "" {
		e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
	}
}

// Validate checks the form without touching storage. Username uniqueness is
// checked by Service.Register. now bounds the birth date.
func (r Registration) Validate(now time.Time) error {
	verr := &ValidationError{}

	required := []struct {
		field, value, msg string
	}{
		{FieldUsername, r.Username, "Please enter a username"},
		{FieldPassword, r.Password, "Please enter a password"},
		{FieldConfirmPassword, r.ConfirmPassword, "Please confirm your password"},
		{FieldFirstName, r.FirstName, "Please enter your first name"},
		{FieldLastName, r.LastName, "Please enter your last name"},
		{FieldEmail, r.Email, "Please enter your email"},
		{FieldBirthDate, r.BirthDate, "Please enter your birth date"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			verr.add(f.field, f.msg)
		}
	}

	if r.Password != "" && !ValidPassword(r.Password) {
		verr.add(FieldPassword, "Password must contain at least 8 characters, including numbers and letters")
	}
	if r.ConfirmPassword != "" && r.ConfirmPassword != r.Password {
		verr.add(FieldConfirmPassword, "Passwords do not match")
	}
	if r.FirstName != "" && !namePattern.MatchString(r.FirstName) {
		verr.add(FieldFirstName, "First name cannot contain numbers")
	}
	if r.LastName != "" && !namePattern.MatchString(r.LastName) {
		verr.add(FieldLastName, "Last name cannot contain numbers")
	}
	if r.Email != "" && !emailPattern.MatchString(r.Email) {
		verr.add(FieldEmail, "Invalid email address")
	}
	if r.BirthDate != "" {
		d, err := time.Parse(BirthDateLayout, r.BirthDate)
		switch {
		case err != nil:
			verr.add(FieldBirthDate, "Birth date must be YYYY-MM-DD")
		case d.After(now):
			verr.add(FieldBirthDate, "Birth date cannot be in the future")
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// ValidPassword reports whether p is at least 8 letters and digits with at
// least one of each.
func ValidPassword(p string) bool {
	return passwordPattern.MatchString(p) && hasLetter.MatchString(p) && hasDigit.MatchString(p)
}

// AsValidation unwraps a *ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}
