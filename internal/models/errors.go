package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrInvalidInput ErrorType = iota
	ErrFetch
	ErrDetect
	ErrUnpack
	ErrChecksum
	ErrSignature
	ErrRender
	ErrFileOp
	ErrToolMissing
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrInvalidInput:
		return "InvalidInput"
	case ErrFetch:
		return "Fetch"
	case ErrDetect:
		return "Detect"
	case ErrUnpack:
		return "Unpack"
	case ErrChecksum:
		return "Checksum"
	case ErrSignature:
		return "Signature"
	case ErrRender:
		return "Render"
	case ErrFileOp:
		return "FileOp"
	case ErrToolMissing:
		return "ToolMissing"
	default:
		return "Unknown"
	}
}

// ConvertError represents a fatal error during package conversion
type ConvertError struct {
	Type  ErrorType
	Input string
	Err   error
}

// Error implements the error interface
func (e *ConvertError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Input, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *ConvertError) Unwrap() error {
	return e.Err
}
