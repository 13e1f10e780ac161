package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind clasifica un error de dominio. Los handlers deciden el status HTTP a partir de aquí.
type Kind string

const (
	KindValidation       Kind = "VALIDATION"
	KindNotFound         Kind = "NOT_FOUND"
	KindPermissionDenied Kind = "PERMISSION_DENIED"
	KindPrivacyBlocked   Kind = "PRIVACY_BLOCKED"
	KindConflict         Kind = "CONFLICT"
	KindExpired          Kind = "EXPIRED"
	KindInternal         Kind = "INTERNAL"
)

// Sentinels para errors.Is: matchean cualquier error del mismo Kind.
var (
	ErrValidation       = &Error{kind: KindValidation}
	ErrNotFound         = &Error{kind: KindNotFound}
	ErrPermissionDenied = &Error{kind: KindPermissionDenied}
	ErrPrivacyBlocked   = &Error{kind: KindPrivacyBlocked}
	ErrConflict         = &Error{kind: KindConflict}
	ErrExpired          = &Error{kind: KindExpired}
)

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	msg := e.msg
	if msg == "" {
		msg = string(e.kind)
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %s", msg, e.err.Error())
	}
	return msg
}

func (e *Error) Kind() Kind      { return e.kind }
func (e *Error) Message() string { return e.msg }
func (e *Error) Unwrap() error   { return e.err }

// Is permite errors.Is(err, apperr.ErrConflict) sin comparar mensajes.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.msg != "" || t.err != nil {
		return e == t
	}
	return e.kind == t.kind
}

func New(kind Kind, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

func Validation(format string, args ...any) error {
	return New(KindValidation, format, args...)
}

func NotFound(format string, args ...any) error {
	return New(KindNotFound, format, args...)
}

func PermissionDenied(format string, args ...any) error {
	return New(KindPermissionDenied, format, args...)
}

func PrivacyBlocked(format string, args ...any) error {
	return New(KindPrivacyBlocked, format, args...)
}

func Conflict(format string, args ...any) error {
	return New(KindConflict, format, args...)
}

func Expired(format string, args ...any) error {
	return New(KindExpired, format, args...)
}

// KindOf devuelve el Kind del primer *Error de la cadena; KindInternal si no hay ninguno.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case "":
		return http.StatusOK
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPermissionDenied, KindPrivacyBlocked:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindExpired:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage es lo que se expone al cliente; los errores internos no filtran detalle.
func PublicMessage(err error) string {
	if KindOf(err) == KindInternal {
		return "internal error"
	}
	return err.Error()
}
