// Package sweep structured error types for better error handling
package sweep

import (
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Device memory allocation errors
	ErrTypeMemory ErrorType = iota
	// Host/device copy errors
	ErrTypeTransfer
	// Kernel dispatch and execution errors
	ErrTypeLaunch
	// Invalid argument errors
	ErrTypeInvalidArg
	// Device errors
	ErrTypeDevice
)

// SweepError represents a structured error with context. The primitives
// check every device allocation, transfer, and dispatch immediately and
// surface failures through this type without retrying; a failed call
// produces no partial results.
type SweepError struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface
func (e *SweepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sweep %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("sweep %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *SweepError) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeMemory:
		return "Memory"
	case ErrTypeTransfer:
		return "Transfer"
	case ErrTypeLaunch:
		return "Launch"
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeDevice:
		return "Device"
	default:
		return "Unknown"
	}
}

// Common error constructors

// NewMemoryError creates an allocation-related error
func NewMemoryError(op string, message string, err error) error {
	return &SweepError{
		Type:    ErrTypeMemory,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewTransferError creates a host/device copy error
func NewTransferError(op string, message string, err error) error {
	return &SweepError{
		Type:    ErrTypeTransfer,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewLaunchError creates a kernel dispatch error
func NewLaunchError(op string, message string, err error) error {
	return &SweepError{
		Type:    ErrTypeLaunch,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewInvalidArgError creates an invalid argument error
func NewInvalidArgError(op string, message string) error {
	return &SweepError{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: message,
	}
}

// Common pre-defined errors

var (
	// ErrOutOfMemory indicates memory allocation failure
	ErrOutOfMemory = NewMemoryError("Malloc", "out of memory", nil)

	// ErrInvalidSize indicates invalid size parameter
	ErrInvalidSize = NewInvalidArgError("Malloc", "size must be positive")

	// ErrDoubleFree indicates double free attempt
	ErrDoubleFree = NewMemoryError("Free", "double free detected", nil)

	// ErrInvalidDevice indicates invalid device ID
	ErrInvalidDevice = NewInvalidArgError("SetDevice", "invalid device ID")
)

// IsMemoryError checks if an error is an allocation error
func IsMemoryError(err error) bool {
	if e, ok := err.(*SweepError); ok {
		return e.Type == ErrTypeMemory
	}
	return false
}

// IsTransferError checks if an error is a host/device copy error
func IsTransferError(err error) bool {
	if e, ok := err.(*SweepError); ok {
		return e.Type == ErrTypeTransfer
	}
	return false
}

// IsLaunchError checks if an error is a kernel dispatch error
func IsLaunchError(err error) bool {
	if e, ok := err.(*SweepError); ok {
		return e.Type == ErrTypeLaunch
	}
	return false
}

// IsInvalidArgError checks if an error is an invalid argument error
func IsInvalidArgError(err error) bool {
	if e, ok := err.(*SweepError); ok {
		return e.Type == ErrTypeInvalidArg
	}
	return false
}
