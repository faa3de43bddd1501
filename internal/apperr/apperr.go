package apperr

import (
	"errors"
	"fmt"
)

// ValidationError is a client-side precondition failure. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ApplicationError is a non-2xx backend response. Message is the server-provided
// error text and may be empty when the body carried none.
type ApplicationError struct {
	Status  int
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with status %d", e.Status)
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.Status, e.Message)
}

// TransportError wraps a request that could not complete: network failure or an
// undecodable response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func Transport(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsApplication(err error) bool {
	var a *ApplicationError
	return errors.As(err, &a)
}

func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// ServerMessage returns the server-provided message of an ApplicationError, or "".
func ServerMessage(err error) string {
	var a *ApplicationError
	if errors.As(err, &a) {
		return a.Message
	}
	return ""
}
