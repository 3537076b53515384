// Package fgerrors contains typed errors shared between the client packages.
//
// If multiple errors occur in some function, that function should return an
// error of type multierror.Error from package github.com/hashicorp/go-multierror
// that encapsulates those individual errors.
package fgerrors

import (
	"fmt"
)

// ErrNotFound is a generic error to be returned whenever some resource isn't found.
// Type and Message are optional and are omitted from the error message if not provided.
type ErrNotFound struct {
	Type    string
	Value   string
	Message string
}

func (err *ErrNotFound) Error() (s string) {
	if err.Type != "" {
		s = fmt.Sprintf("resource %q of type %q not found", err.Value, err.Type)
	} else {
		s = fmt.Sprintf("resource %q not found", err.Value)
	}
	if err.Message != "" {
		return s + fmt.Sprintf("; %s", err.Message)
	}
	return s
}

// ErrInvalidArgument represents an error that occurs when the client is
// provided with an invalid argument, e.g., a negative request count.
type ErrInvalidArgument struct {
	// Name of the field referred to, e.g., "Requests"
	Name string
	// The invalid value that was provided
	Value interface{}
	// Optional message included with the error message
	Message string
}

func (err *ErrInvalidArgument) Error() (s string) {
	s = fmt.Sprintf("value %v of field %s is invalid", err.Value, err.Name)
	if err.Message != "" {
		s = s + fmt.Sprintf("; %s", err.Message)
	}
	return
}
