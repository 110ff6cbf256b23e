package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures crossing the handler boundaries.
type ErrorKind string

const (
	// KindMissingInput is a caller error: required text(s) absent or malformed.
	KindMissingInput ErrorKind = "MISSING_INPUT"
	// KindEngineFailure means the romanization engine failed.
	KindEngineFailure ErrorKind = "ENGINE_FAILURE"
	// KindUnknownOperation means a tool name is not registered.
	KindUnknownOperation ErrorKind = "UNKNOWN_OPERATION"
	// KindUnknownMethod means a JSON-RPC method is not supported.
	KindUnknownMethod ErrorKind = "UNKNOWN_METHOD"
	// KindInternal is any unexpected fault.
	KindInternal ErrorKind = "INTERNAL_ERROR"
)

// Error is a classified failure. It never accompanies a successful result.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf builds an *Error of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// NewErrorBody converts err into the plain-operation error shape.
func NewErrorBody(err error) ErrorBody {
	return ErrorBody{Error: err.Error(), Code: KindOf(err)}
}
