// Package apperr holds the error kinds every service returns. Callers branch on
// the kind with errors.Is, never on the message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation          Kind = "validation"
	KindDuplicateUser       Kind = "duplicate_user"
	KindUserNotFound        Kind = "user_not_found"
	KindInvalidCredentials  Kind = "invalid_credentials"
	KindPermissionDenied    Kind = "permission_denied"
	KindInvalidState        Kind = "invalid_state"
	KindNoPartnersAvailable Kind = "no_partners_available"
	KindNotFound            Kind = "not_found"
)

// Sentinels for errors.Is; an *Error matches the sentinel of its kind.
var (
	ErrValidation          = &Error{Kind: KindValidation, Msg: "validation failed"}
	ErrDuplicateUser       = &Error{Kind: KindDuplicateUser, Msg: "username already exists"}
	ErrUserNotFound        = &Error{Kind: KindUserNotFound, Msg: "user not found"}
	ErrInvalidCredentials  = &Error{Kind: KindInvalidCredentials, Msg: "invalid password"}
	ErrPermissionDenied    = &Error{Kind: KindPermissionDenied, Msg: "permission denied"}
	ErrInvalidState        = &Error{Kind: KindInvalidState, Msg: "invalid state"}
	ErrNoPartnersAvailable = &Error{Kind: KindNoPartnersAvailable, Msg: "no partners available"}
	ErrNotFound            = &Error{Kind: KindNotFound, Msg: "not found"}
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...any) error { return New(KindValidation, format, args...) }

func NotFound(format string, args ...any) error { return New(KindNotFound, format, args...) }

func PermissionDenied(format string, args ...any) error {
	return New(KindPermissionDenied, format, args...)
}

func InvalidState(format string, args ...any) error { return New(KindInvalidState, format, args...) }

// KindOf returns the kind of err, or "" for errors that did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// HTTPStatus maps an error onto the status the API answers with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindUserNotFound, KindNotFound:
		return http.StatusNotFound
	case KindDuplicateUser, KindInvalidState, KindNoPartnersAvailable:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
