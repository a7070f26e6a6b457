package errors

import (
	"errors"
	"fmt"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func NewFieldError(field, message string) *ValidationError {
	return NewValidationError(message, ValidationDetail{Field: field, Message: message})
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func NewOrderNotFoundError(id string) *NotFoundError {
	return NewNotFoundError(fmt.Sprintf("Order with ID %s not found", id))
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nfe *NotFoundError
	if errors.As(err, &nfe) {
		return nfe, true
	}
	return nil, false
}

// InvalidIDError reports an identifier that is not canonical UUID text.
type InvalidIDError struct {
	Value string
}

func (e *InvalidIDError) Error() string {
	if e.Value == "" {
		return "ID is required"
	}
	return "Invalid UUID format"
}

func NewInvalidIDError(value string) *InvalidIDError {
	return &InvalidIDError{Value: value}
}

func IsInvalidIDError(err error) (*InvalidIDError, bool) {
	var ie *InvalidIDError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

type InvalidTransitionError struct {
	From    string
	To      string
	Message string
}

func (e *InvalidTransitionError) Error() string {
	return e.Message
}

func NewInvalidTransitionError(from, to, message string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Message: message}
}

func IsInvalidTransitionError(err error) (*InvalidTransitionError, bool) {
	var te *InvalidTransitionError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

type NoFieldsProvidedError struct{}

func (e *NoFieldsProvidedError) Error() string {
	return "At least one field must be provided for update"
}

func NewNoFieldsProvidedError() *NoFieldsProvidedError {
	return &NoFieldsProvidedError{}
}

func IsNoFieldsProvidedError(err error) bool {
	var nf *NoFieldsProvidedError
	return errors.As(err, &nf)
}

// MalformedRequestError wraps a request body that could not be parsed as JSON.
type MalformedRequestError struct {
	Cause error
}

func (e *MalformedRequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed request body: %v", e.Cause)
	}
	return "malformed request body"
}

func (e *MalformedRequestError) Unwrap() error {
	return e.Cause
}

func NewMalformedRequestError(cause error) *MalformedRequestError {
	return &MalformedRequestError{Cause: cause}
}

func IsMalformedRequestError(err error) (*MalformedRequestError, bool) {
	var me *MalformedRequestError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}

// IsClientError reports whether err is a business or validation failure that
// the caller caused and can correct.
func IsClientError(err error) bool {
	if _, ok := IsValidationError(err); ok {
		return true
	}
	if _, ok := IsInvalidIDError(err); ok {
		return true
	}
	if _, ok := IsInvalidTransitionError(err); ok {
		return true
	}
	return IsNoFieldsProvidedError(err)
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
