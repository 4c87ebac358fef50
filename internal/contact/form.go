// Package contact implements the contact form: validation, delivery through
// a third-party form relay and the messages shown to the visitor.
package contact

import (
	"fmt"
	"net/mail"
	"strings"
)

// Form is what the visitor fills in.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Field names, as used by the HTML form and the JSON API.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldName, FieldEmail, FieldSubject, FieldMessage}

// Get returns the value of the named field.
func (f Form) Get(field string) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldSubject:
		return f.Subject
	case FieldMessage:
		return f.Message
	}
	return ""
}

// Trimmed returns f with surrounding whitespace removed from every field.
// Line breaks inside the message are kept.
func (f Form) Trimmed() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Message is the text shown next to the form.
func (e *ValidationError) Message() string {
	if e.Field == FieldEmail && e.Err == ErrInvalidEmail {
		return "Please enter a valid email address."
	}
	return fmt.Sprintf("Please fill in the %s field.", e.Field)
}

// Validate requires all four fields and a well-formed email address.
func (f Form) Validate() error {
	t := f.Trimmed()
	for _, field := range Fields {
		if t.Get(field) == "" {
			return &ValidationError{Field: field, Err: ErrMissingField}
		}
	}

	addr, err := mail.ParseAddress(t.Email)
	if err != nil || addr.Address != t.Email {
		return &ValidationError{Field: FieldEmail, Err: ErrInvalidEmail}
	}

	return nil
}
