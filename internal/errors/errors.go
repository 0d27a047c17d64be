// Package errors provides centralized error definitions and error handling utilities
// for swarmbot. It defines sentinel errors, domain error types that carry the
// roster path or mailbox label involved, and classification helpers used by the
// command layer to decide between terminating and continuing.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - RosterError: errors loading the roster file
//   - MailboxError: errors creating, attaching or removing a mailbox segment
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewRosterError("load", ErrRosterShort).WithPath("rollnumbers.txt")
//	err := errors.NewMailboxError("ensure", cause).WithLabel("./robot2.txt")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrRosterShort) { ... }
//	if errors.IsFatal(err) { ... }
//
// # Error Classification
//
// Errors fall into three groups:
//   - Fatal: roster unreadable or malformed, mailbox allocation failure
//   - Recoverable: bad operator input, handled locally by the publisher
//   - Tolerated: torn or missed mailbox reads, never surfaced as errors
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning Severity = iota
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityFatal is for errors after which the process cannot continue.
	SeverityFatal
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Roster-related sentinel errors
var (
	// ErrRosterUnreadable indicates the roster file is missing or cannot be read.
	ErrRosterUnreadable = New("roster file unreadable")
	// ErrRosterShort indicates the roster holds fewer identifiers than the swarm size.
	ErrRosterShort = New("roster has too few entries")
	// ErrRosterMalformed indicates a roster token is not an integer.
	ErrRosterMalformed = New("roster entry is not an integer")
	// ErrRosterDuplicate indicates the same identifier appears twice.
	ErrRosterDuplicate = New("duplicate roster identifier")
)

// Mailbox-related sentinel errors
var (
	// ErrMailboxAlloc indicates a shared memory segment could not be created.
	ErrMailboxAlloc = New("mailbox allocation failed")
	// ErrMailboxAttach indicates an existing segment could not be mapped.
	ErrMailboxAttach = New("mailbox attach failed")
	// ErrMailboxNotFound indicates a handle refers to no known segment.
	ErrMailboxNotFound = New("mailbox not found")
	// ErrBackendUnsupported indicates the store backend is unknown or unavailable on this platform.
	ErrBackendUnsupported = New("mailbox backend unsupported")
	// ErrSlotClaimed indicates another process already runs with the same agent index.
	ErrSlotClaimed = New("agent slot already claimed")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	op       string
	cause    error
	severity Severity
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

func (e *baseError) format(kind string, parts []string) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.op, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.op)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// RosterError represents errors loading the roster.
//
// Example:
//
//	err := errors.NewRosterError("load", errors.ErrRosterShort).WithPath("rollnumbers.txt")
//	fmt.Println(err) // "roster error [path=rollnumbers.txt]: load: roster has too few entries"
type RosterError struct {
	baseError
	Path string
}

// NewRosterError creates a new RosterError. Roster errors are fatal.
func NewRosterError(op string, cause error) *RosterError {
	return &RosterError{
		baseError: baseError{op: op, cause: cause, severity: SeverityFatal},
	}
}

// WithPath adds the roster file path to the error context.
func (e *RosterError) WithPath(path string) *RosterError {
	e.Path = path
	return e
}

// Error returns the formatted error message.
func (e *RosterError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	return e.format("roster error", parts)
}

// MailboxError represents errors from a mailbox store backend.
type MailboxError struct {
	baseError
	Label string
	Key   int
}

// NewMailboxError creates a new MailboxError. The severity is fatal when the
// cause is an allocation failure and error otherwise.
func NewMailboxError(op string, cause error) *MailboxError {
	severity := SeverityError
	if errors.Is(cause, ErrMailboxAlloc) || errors.Is(cause, ErrBackendUnsupported) {
		severity = SeverityFatal
	}
	return &MailboxError{
		baseError: baseError{op: op, cause: cause, severity: severity},
	}
}

// WithLabel adds the mailbox label to the error context.
func (e *MailboxError) WithLabel(label string) *MailboxError {
	e.Label = label
	return e
}

// WithKey adds the IPC key to the error context.
func (e *MailboxError) WithKey(key int) *MailboxError {
	e.Key = key
	return e
}

// WithSeverity sets the error severity.
func (e *MailboxError) WithSeverity(s Severity) *MailboxError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *MailboxError) Error() string {
	var parts []string
	if e.Label != "" {
		parts = append(parts, fmt.Sprintf("label=%s", e.Label))
	}
	if e.Key != 0 {
		parts = append(parts, fmt.Sprintf("key=%#x", e.Key))
	}
	return e.format("mailbox error", parts)
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// severityError is satisfied by every domain error in this package.
type severityError interface {
	error
	Severity() Severity
}

// GetSeverity returns the severity of err. Errors that carry no severity are
// reported as SeverityError.
func GetSeverity(err error) Severity {
	var se severityError
	if errors.As(err, &se) {
		return se.Severity()
	}
	return SeverityError
}

// IsFatal reports whether err must terminate the process: roster failures,
// mailbox allocation failures and slot conflicts.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrSlotClaimed) {
		return true
	}
	return GetSeverity(err) == SeverityFatal
}
