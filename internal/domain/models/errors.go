package models

import (
	"errors"
	"fmt"
)

// Ошибки бизнес-логики. Транспортный слой переводит их в HTTP-статусы.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")

	ErrInvalidImage     = fmt.Errorf("%w: invalid image file", ErrValidation)
	ErrPasswordRequired = fmt.Errorf("%w: gallery password required", ErrUnauthorized)
)

// Error ошибка с сообщением, которое можно показать клиенту.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Errorf(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// PublicMessage возвращает клиентское сообщение, если оно есть в цепочке ошибок.
func PublicMessage(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Message, true
	}
	return "", false
}
