// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

// Package errs provides the error code type used by lifo tooling, which contains code and msg.
package errs

import (
	"errors"
	"fmt"
	"io"
)

// RetCode is the return code of an operation.
type RetCode int32

// lifo return code.
const (
	// RetOK means success.
	RetOK RetCode = 0

	// RetConfigInvalid means the configuration holds a value out of range.
	RetConfigInvalid RetCode = 1
	// RetConfigIO means the configuration could not be read or parsed.
	RetConfigIO RetCode = 2

	// RetOrderViolation means elements came back in an order other than last-in-first-out.
	RetOrderViolation RetCode = 3
	// RetPeekMismatch means Peek or PeekMut did not reflect the top element.
	RetPeekMismatch RetCode = 4
	// RetTeardownIncomplete means a stack still held elements after Reset.
	RetTeardownIncomplete RetCode = 5

	// RetCanceled means the caller canceled the operation or its deadline passed.
	RetCanceled RetCode = 6
	// RetPoolFailure means a task could not be handed to the worker pool.
	RetPoolFailure RetCode = 7

	// RetUnknown is the error code for unspecified errors.
	RetUnknown RetCode = 999
)

// Success is the success prompt string.
const Success = "success"

// Error is the error code structure which contains error code and error message.
type Error struct {
	Code RetCode
	Msg  string

	cause error // internal error, form the error chain.
}

// Error implements the error interface and returns the error description.
func (e *Error) Error() string {
	if e == nil {
		return Success
	}
	if e.cause != nil {
		return fmt.Sprintf("code:%d, msg:%s, caused by %s", e.Code, e.Msg, e.cause.Error())
	}
	return fmt.Sprintf("code:%d, msg:%s", e.Code, e.Msg)
}

// Format implements the fmt.Formatter interface.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "code:%d, msg:%s", e.Code, e.Msg)
			if e.cause != nil {
				_, _ = fmt.Fprintf(s, "\nCause by %+v", e.cause)
			}
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		_, _ = fmt.Fprintf(s, "%%!%c(errs.Error=%s)", verb, e.Error())
	}
}

// Unwrap support Go 1.13+ error chains.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// ErrCode permits any integer defined in https://go.dev/ref/spec#Numeric_types
type ErrCode interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~int | ~uintptr
}

// New creates an error.
func New[T ErrCode](code T, msg string) error {
	return &Error{
		Code: RetCode(code),
		Msg:  msg,
	}
}

// Newf creates an error, msg supports format strings.
func Newf[T ErrCode](code T, format string, params ...interface{}) error {
	return &Error{
		Code: RetCode(code),
		Msg:  fmt.Sprintf(format, params...),
	}
}

// Wrap creates a new error contains input error. It returns nil if err is nil.
func Wrap[T ErrCode](err error, code T, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:  RetCode(code),
		Msg:   msg,
		cause: err,
	}
}

// Wrapf the same as Wrap, msg supports format strings.
func Wrapf[T ErrCode](err error, code T, format string, params ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:  RetCode(code),
		Msg:   fmt.Sprintf(format, params...),
		cause: err,
	}
}

// Code gets the error code through error.
func Code(e error) RetCode {
	if e == nil {
		return RetOK
	}
	// Doing type assertion first has a slight performance boost over just using errors.As.
	err, ok := e.(*Error)
	if !ok && !errors.As(e, &err) {
		return RetUnknown
	}
	if err == nil {
		return RetOK
	}
	return err.Code
}

// Msg gets error msg through error.
func Msg(e error) string {
	if e == nil {
		return Success
	}
	err, ok := e.(*Error)
	if !ok && !errors.As(e, &err) {
		return e.Error()
	}
	if err == (*Error)(nil) {
		return Success
	}
	if err.Unwrap() != nil {
		return err.Error()
	}
	return err.Msg
}
