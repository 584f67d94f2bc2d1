// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeIO indicates a kernel source could not be opened or read.
	// The cause is the original *fs.PathError.
	ErrCodeIO ErrorCode = "IO"
	// ErrCodeOSCall indicates a system call or kernel API returned a failure code.
	ErrCodeOSCall ErrorCode = "OS_CALL"
	// ErrCodeMalformed indicates an expected field or key was absent, or a record
	// carried fewer fields than required.
	ErrCodeMalformed ErrorCode = "MALFORMED_RECORD"
	// ErrCodeNotImplemented indicates the metric has no backing implementation on
	// the running platform.
	ErrCodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"
	// ErrCodeNotFound indicates a requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeTimeout indicates an operation exceeded its time limit.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
	// ErrCodeInvalidRequest indicates malformed or invalid input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
)

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// Malformed reports a record from source that is missing a required field or key.
func Malformed(source, format string, args ...any) *StructuredError {
	return NewWithContext(ErrCodeMalformed, fmt.Sprintf(format, args...), map[string]any{
		"source": source,
	})
}

// NotImplemented reports a metric that has no implementation on the given platform.
func NotImplemented(metric, platform string) *StructuredError {
	return NewWithContext(ErrCodeNotImplemented,
		fmt.Sprintf("%s is not implemented on %s", metric, platform),
		map[string]any{
			"metric":   metric,
			"platform": platform,
		})
}

// OSCall wraps the failure returned by a system call or kernel API.
func OSCall(call string, cause error) *StructuredError {
	return WrapWithContext(ErrCodeOSCall, call+" failed", cause, map[string]any{
		"call": call,
	})
}

// IO wraps an open or read failure on path. The cause stays reachable so that
// errors.Is(err, fs.ErrNotExist) keeps working for callers.
func IO(path string, cause error) *StructuredError {
	return WrapWithContext(ErrCodeIO, "failed to read "+path, cause, map[string]any{
		"path": path,
	})
}

// CodeOf returns the code of the outermost StructuredError in the chain,
// or an empty code when there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsCode reports whether any StructuredError in the chain carries code.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		var se *StructuredError
		if !stderrors.As(err, &se) {
			return false
		}
		if se.Code == code {
			return true
		}
		err = se.Cause
	}
	return false
}
