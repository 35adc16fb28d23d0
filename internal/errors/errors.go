// Package errors provides standardized error types for the control panel.
//
// Every failure a site, certificate or log operation can produce is
// classified by an ErrorCode so the HTTP and CLI front ends can decide how to
// present it without string matching.
//
// # Error Types
//
// PanelError is the primary error type, containing:
//   - Code: Categorizes the error (VALIDATION, SECURITY, IO, etc.)
//   - Message: Human-readable error description
//   - Domain: The domain name involved (if applicable)
//   - Err: The underlying wrapped error (if any)
//
// # Sentinel Errors
//
//	errors.ErrInvalidDomain  // domain syntax rejected
//	errors.ErrInvalidEmail   // email rejected
//	errors.ErrPathTraversal  // resolved path escaped its root
//	errors.ErrSiteNotFound   // configuration file missing
//	errors.ErrReloadFailed   // web server reload failed
//
// # Error Checking
//
// Sentinels compare by code, so any error carrying the same code matches:
//
//	if errors.Is(err, errors.ErrInvalidDomain) {
//	    // any VALIDATION error
//	}
//
//	var panelErr *errors.PanelError
//	if errors.As(err, &panelErr) {
//	    fmt.Printf("Error code: %s, Domain: %s\n", panelErr.Code, panelErr.Domain)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeValidation ErrorCode = "VALIDATION" // Input validation failed
	ErrCodeSecurity   ErrorCode = "SECURITY"   // Resolved path escaped its root
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"  // Resource not found
	ErrCodeIO         ErrorCode = "IO"         // File system failure
	ErrCodeSubprocess ErrorCode = "SUBPROCESS" // External command failed or could not start
	ErrCodeReload     ErrorCode = "RELOAD"     // Web server reload failed
	ErrCodeConfig     ErrorCode = "CONFIG"     // Configuration error
	ErrCodeInternal   ErrorCode = "INTERNAL"   // Internal/unexpected error
)

// PanelError represents a structured error with context about the operation.
type PanelError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Domain  string    // Domain name (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *PanelError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Domain != "" && e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Domain, msg, e.Err)
	}
	if e.Domain != "" {
		return fmt.Sprintf("%s: %s", e.Domain, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain traversal.
func (e *PanelError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *PanelError) Is(target error) bool {
	t, ok := target.(*PanelError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
var (
	// ErrInvalidDomain indicates the domain name is not valid.
	ErrInvalidDomain = &PanelError{Code: ErrCodeValidation, Message: "Invalid domain name"}

	// ErrInvalidEmail indicates the email address is not valid.
	ErrInvalidEmail = &PanelError{Code: ErrCodeValidation, Message: "Invalid email address"}

	// ErrPathTraversal indicates a computed path resolved outside its root.
	ErrPathTraversal = &PanelError{Code: ErrCodeSecurity, Message: "Security Error: Path traversal detected"}

	// ErrSiteNotFound indicates the site configuration file does not exist.
	ErrSiteNotFound = &PanelError{Code: ErrCodeNotFound, Message: "Configuration file not found"}

	// ErrReloadFailed indicates the web server did not reload.
	ErrReloadFailed = &PanelError{Code: ErrCodeReload, Message: "web server reload failed"}

	// ErrConfigInvalid indicates the configuration is invalid.
	ErrConfigInvalid = &PanelError{Code: ErrCodeConfig, Message: "invalid configuration"}
)

// InvalidDomain creates a validation error for a rejected domain.
func InvalidDomain(domain string) error {
	return &PanelError{
		Code:    ErrCodeValidation,
		Message: "Invalid domain name format",
		Domain:  domain,
	}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &PanelError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// PathTraversal creates a security error for a path that escaped root.
func PathTraversal(domain string) error {
	return &PanelError{
		Code:    ErrCodeSecurity,
		Message: "Security Error: Path traversal detected",
		Domain:  domain,
	}
}

// NotFound creates an error for a site whose configuration file is missing.
func NotFound(domain string) error {
	return &PanelError{
		Code:    ErrCodeNotFound,
		Message: "Configuration file not found",
		Domain:  domain,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &PanelError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapDomain creates an error with domain context and underlying error.
func WrapDomain(code ErrorCode, domain, msg string, err error) error {
	return &PanelError{
		Code:    code,
		Message: msg,
		Domain:  domain,
		Err:     err,
	}
}

// CodeOf returns the code of the first PanelError in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var pe *PanelError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrCodeInternal
}

// IsValidation reports whether err was rejected before any I/O happened.
func IsValidation(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeValidation || code == ErrCodeSecurity
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
