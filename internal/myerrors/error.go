package myerrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound             Kind = "NOT_FOUND"
	KindReferentialViolation Kind = "REFERENTIAL_VIOLATION"
	KindValidation           Kind = "VALIDATION_ERROR"
	KindConflict             Kind = "CONFLICT"
)

// RequestError is an error caused by the request itself and safe to show to
// the caller as is.
type RequestError struct {
	Kind    Kind
	Message string
	Err     error
}

func (r *RequestError) Error() string {
	return r.Message
}

func (r *RequestError) Unwrap() error {
	return r.Err
}

// Extensions is read by graphql-go and ends up in the "extensions" member of
// the error in the response.
func (r *RequestError) Extensions() map[string]any {
	return map[string]any{"code": string(r.Kind)}
}

func NotFound(entity string, id int64) *RequestError {
	return &RequestError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with id %d not found", entity, id),
	}
}

func NotFoundf(format string, args ...any) *RequestError {
	return &RequestError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Referential(message string, err error) *RequestError {
	return &RequestError{Kind: KindReferentialViolation, Message: message, Err: err}
}

func Validation(format string, args ...any) *RequestError {
	return &RequestError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(message string, err error) *RequestError {
	return &RequestError{Kind: KindConflict, Message: message, Err: err}
}

func IsKind(err error, kind Kind) bool {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}
