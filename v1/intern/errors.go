// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intern

import (
	"errors"
	"fmt"
)

const (
	// ExhaustedErr indicates the next slot index does not fit the identifier
	// representation.
	ExhaustedErr = "intern_exhausted_error"

	// NotFoundErr indicates an identifier does not resolve in this interner.
	NotFoundErr = "intern_not_found_error"

	// ReentrantErr indicates the interner was entered while an operation on it
	// was already in progress.
	ReentrantErr = "intern_reentrant_error"
)

// Error is the error type raised by the interner. The panicking accessors
// panic with *Error values so that callers recovering from them can classify
// the failure.
type Error struct {
	Code    string
	Message string
}

func (err *Error) Error() string {
	return fmt.Sprintf("%v: %v", err.Code, err.Message)
}

// IsExhausted returns true if this error is an ExhaustedErr.
func IsExhausted(err error) bool {
	return hasCode(err, ExhaustedErr)
}

// IsNotFound returns true if this error is a NotFoundErr.
func IsNotFound(err error) bool {
	return hasCode(err, NotFoundErr)
}

// IsReentrant returns true if this error is a ReentrantErr.
func IsReentrant(err error) bool {
	return hasCode(err, ReentrantErr)
}

func hasCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

var (
	errExhausted = &Error{Code: ExhaustedErr, Message: "too many interned strings"}
	errNotFound  = &Error{Code: NotFoundErr, Message: "string not in interner"}
	errReentrant = &Error{Code: ReentrantErr, Message: "reentrant access"}
)
