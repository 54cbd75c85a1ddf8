// errors.go: structured error handling for memotab operations
//
// Allocation failure is the only runtime failure a memo table reports.
// The remaining codes cover configuration problems and misuse.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package memotab

import (
	goerrors "errors"
	"fmt"

	"github.com/agilira/go-errors"
)

// Error codes for memotab operations
const (
	// Configuration errors
	ErrCodeInvalidConfig   errors.ErrorCode = "MEMOTAB_INVALID_CONFIG"
	ErrCodeInvalidCapacity errors.ErrorCode = "MEMOTAB_INVALID_CAPACITY"

	// Operation errors
	ErrCodeAllocationFailed errors.ErrorCode = "MEMOTAB_ALLOCATION_FAILED"
	ErrCodeSentinelKey      errors.ErrorCode = "MEMOTAB_SENTINEL_KEY"
	ErrCodeTableReleased    errors.ErrorCode = "MEMOTAB_TABLE_RELEASED"

	// Hot reload errors
	ErrCodeMissingConfigPath errors.ErrorCode = "MEMOTAB_MISSING_CONFIG_PATH"
)

const (
	msgInvalidConfig     = "invalid memo table configuration"
	msgInvalidCapacity   = "invalid capacity: must be a positive size within limits"
	msgAllocationFailed  = "failed to allocate memo table slots"
	msgSentinelKey       = "zero identity cannot be used as a key"
	msgTableReleased     = "memo table has been released"
	msgMissingConfigPath = "config path is required"
)

// NewErrInvalidConfig creates an error for an inconsistent configuration
func NewErrInvalidConfig(reason string, context map[string]interface{}) error {
	fields := make(map[string]interface{}, len(context)+1)
	for k, v := range context {
		fields[k] = v
	}
	fields["reason"] = reason
	return errors.NewWithContext(ErrCodeInvalidConfig, msgInvalidConfig, fields)
}

// NewErrInvalidCapacity creates an error for an out-of-range capacity setting
func NewErrInvalidCapacity(field string, capacity int) error {
	return errors.NewWithContext(ErrCodeInvalidCapacity, msgInvalidCapacity, map[string]interface{}{
		"field":            field,
		"provided":         capacity,
		"minimum_required": MinCapacity,
		"maximum_allowed":  DefaultMaxCapacity,
	})
}

// NewErrAllocationFailed creates an error when a slot array cannot be allocated.
// The table the operation ran on is left in its previous state.
func NewErrAllocationFailed(operation string, requested, limit int) error {
	return errors.NewWithContext(ErrCodeAllocationFailed, msgAllocationFailed, map[string]interface{}{
		"operation":          operation,
		"requested_capacity": requested,
		"max_capacity":       limit,
	}).WithSeverity("critical")
}

// newErrAllocationPanic converts a runtime allocation panic into an allocation error.
func newErrAllocationPanic(operation string, requested int, panicValue interface{}) error {
	return errors.NewWithContext(ErrCodeAllocationFailed, msgAllocationFailed, map[string]interface{}{
		"operation":          operation,
		"requested_capacity": requested,
		"panic_value":        fmt.Sprintf("%v", panicValue),
	}).WithSeverity("critical")
}

// NewErrSentinelKey creates an error when the zero identity is used as a key
func NewErrSentinelKey(operation string) error {
	return errors.NewWithField(ErrCodeSentinelKey, msgSentinelKey, "operation", operation)
}

// NewErrTableReleased creates an error when a released table is used
func NewErrTableReleased(operation string) error {
	return errors.NewWithField(ErrCodeTableReleased, msgTableReleased, "operation", operation)
}

// NewErrMissingConfigPath creates an error when hot reload has no file to watch
func NewErrMissingConfigPath() error {
	return errors.NewWithField(ErrCodeMissingConfigPath, msgMissingConfigPath, "field", "config_path")
}

// IsAllocationFailure checks if err reports a failed slot allocation
func IsAllocationFailure(err error) bool {
	return errors.HasCode(err, ErrCodeAllocationFailed)
}

// IsSentinelKey checks if err reports use of the zero identity
func IsSentinelKey(err error) bool {
	return errors.HasCode(err, ErrCodeSentinelKey)
}

// IsReleased checks if err reports use of a released table
func IsReleased(err error) bool {
	return errors.HasCode(err, ErrCodeTableReleased)
}

// IsConfigError checks if error is a configuration error
func IsConfigError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrCodeInvalidConfig || code == ErrCodeInvalidCapacity || code == ErrCodeMissingConfigPath
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts context from an error
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var memoErr *errors.Error
	if goerrors.As(err, &memoErr) {
		return memoErr.Context
	}
	return nil
}
