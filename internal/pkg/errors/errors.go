// Package errors provides coded errors for audit failures.
//
// Codes classify failures the orchestration reacts to differently: a NAVIGATION or
// SNAPSHOT error fails one locale pass, a TRANSFORM error is recovered locally.
// Expected "not found" outcomes are never errors.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeNavigation Code = "NAVIGATION"
	CodeTransform  Code = "TRANSFORM"
	CodeSnapshot   Code = "SNAPSHOT"
	CodeConfig     Code = "CONFIG"
	CodeProvider   Code = "PROVIDER"
	CodeIndex      Code = "INDEX"
	CodeInternal   Code = "INTERNAL"
)

// Context keys.
const (
	CtxURL    = "url"
	CtxLocale = "locale"
	CtxPath   = "path"
)

// AuditError is a structured error carrying a code and optional context.
type AuditError struct {
	Code    Code
	Message string
	Err     error
	Context map[string]any
}

func (e *AuditError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if len(e.Context) > 0 {
		msg += fmt.Sprintf(" %v", e.Context)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AuditError) Unwrap() error {
	return e.Err
}

// WithContext attaches a key/value pair and returns the receiver.
func (e *AuditError) WithContext(key string, value any) *AuditError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// New creates an AuditError without a cause.
func New(code Code, msg string) *AuditError {
	return &AuditError{Code: code, Message: msg}
}

// Wrap wraps err with a code and message. Wrap(nil, ...) returns nil.
func Wrap(err error, code Code, msg string) *AuditError {
	if err == nil {
		return nil
	}
	return &AuditError{Code: code, Message: msg, Err: err}
}

// IsCode reports whether any error in err's chain is an AuditError with code.
func IsCode(err error, code Code) bool {
	var ae *AuditError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// CodeOf returns the code of the first AuditError in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var ae *AuditError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}
