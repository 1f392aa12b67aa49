package sweep

import (
	"errors"
	"testing"
)

func TestStructuredErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType ErrorType
		wantOp   string
		wantMsg  string
		checkFn  func(error) bool
	}{
		{
			name:     "Memory Error",
			err:      ErrOutOfMemory,
			wantType: ErrTypeMemory,
			wantOp:   "Malloc",
			wantMsg:  "out of memory",
			checkFn:  IsMemoryError,
		},
		{
			name:     "Invalid Arg Error",
			err:      ErrInvalidSize,
			wantType: ErrTypeInvalidArg,
			wantOp:   "Malloc",
			wantMsg:  "size must be positive",
			checkFn:  IsInvalidArgError,
		},
		{
			name:     "Invalid Device Error",
			err:      ErrInvalidDevice,
			wantType: ErrTypeInvalidArg,
			wantOp:   "SetDevice",
			wantMsg:  "invalid device ID",
			checkFn:  IsInvalidArgError,
		},
		{
			name:     "Double Free Error",
			err:      ErrDoubleFree,
			wantType: ErrTypeMemory,
			wantOp:   "Free",
			wantMsg:  "double free detected",
			checkFn:  IsMemoryError,
		},
		{
			name:     "Transfer Error",
			err:      NewTransferError("Memcpy", "copy failed", nil),
			wantType: ErrTypeTransfer,
			wantOp:   "Memcpy",
			wantMsg:  "copy failed",
			checkFn:  IsTransferError,
		},
		{
			name:     "Launch Error",
			err:      NewLaunchError("Launch", "invalid block dimensions", nil),
			wantType: ErrTypeLaunch,
			wantOp:   "Launch",
			wantMsg:  "invalid block dimensions",
			checkFn:  IsLaunchError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sweepErr, ok := tt.err.(*SweepError)
			if !ok {
				t.Fatalf("Expected SweepError, got %T", tt.err)
			}

			if sweepErr.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", sweepErr.Type, tt.wantType)
			}

			if sweepErr.Op != tt.wantOp {
				t.Errorf("Op = %v, want %v", sweepErr.Op, tt.wantOp)
			}

			if sweepErr.Message != tt.wantMsg {
				t.Errorf("Message = %v, want %v", sweepErr.Message, tt.wantMsg)
			}

			if !tt.checkFn(tt.err) {
				t.Errorf("Type check function returned false")
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying fault")
	err := NewLaunchError("Launch", "dispatch failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find wrapped cause")
	}

	var sweepErr *SweepError
	if !errors.As(err, &sweepErr) {
		t.Fatal("errors.As failed to extract SweepError")
	}
	if sweepErr.Unwrap() != cause {
		t.Error("Unwrap did not return the cause")
	}
}

func TestErrorString(t *testing.T) {
	err := NewMemoryError("Scan", "device buffer allocation failed", nil)
	msg := err.Error()
	if msg == "" {
		t.Fatal("Empty error message")
	}
	// Type names must round-trip into the message
	for _, typ := range []ErrorType{ErrTypeMemory, ErrTypeTransfer, ErrTypeLaunch, ErrTypeInvalidArg, ErrTypeDevice} {
		if typ.String() == "Unknown" {
			t.Errorf("ErrorType %d has no name", typ)
		}
	}
	if ErrorType(99).String() != "Unknown" {
		t.Error("Out-of-range ErrorType should be Unknown")
	}
}

func TestTypeChecksRejectOtherErrors(t *testing.T) {
	plain := errors.New("plain")
	for _, check := range []func(error) bool{IsMemoryError, IsTransferError, IsLaunchError, IsInvalidArgError} {
		if check(plain) {
			t.Error("Type check matched a non-SweepError")
		}
	}
}
