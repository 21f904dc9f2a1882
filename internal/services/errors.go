package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUserNotFound is returned when the target user id does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when another account already owns the email.
	ErrEmailTaken = errors.New("email already in use by another account")
)

// ValidationErrors maps a field name to its failure message. It is returned
// by update validation so handlers can re-render forms with field errors.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// AsValidationErrors unwraps err into ValidationErrors if it is one.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
