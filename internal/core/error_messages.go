package core

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Admins and visitors can quote the code when reporting a problem.
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Duplicate key: A record with this value already exists
//	DB002 - Unique constraint: This value must be unique
//	DB003 - Foreign key: Referenced record does not exist
//	DB004 - Connection refused: Unable to connect to database
//	DB005 - Connection reset: Database connection was interrupted
//	DB006 - Timeout: Operation timed out
//	DB007 - Deadlock: Database was busy with conflicting operations
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid email: The email address is not valid
//	VAL002 - Invalid date: Use YYYY-MM-DD or the date picker
//	VAL003 - Invalid number: Use digits with an optional decimal point
//	VAL004 - Invalid link: Links must start with http:// or https://
//	VAL005 - Invalid choice: Value is not in the allowed list
//	VAL006 - Invalid video: Not a recognised YouTube link
//	VAL000 - Generic: Some fields need attention
//
// # Record Errors (NF001, RES001-RES099)
//
//	NF001  - Not found: The requested item does not exist
//	RES001 - Unknown resource: This section is not configured
//	RES002 - Read-only: This section cannot be edited
//
// # Newsletter Errors (NEWS001-NEWS099)
//
//	NEWS001 - Already sent: This newsletter was already sent
//
// # Authentication Errors (AUTH001-AUTH099)
//
//	AUTH001 - Invalid credentials: Email or password is incorrect
//	AUTH002 - Session expired: Please sign in again
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check the application logs
// (correlated by request ID) for the original technical error.
//
// Patterns are matched case-insensitively using strings.Contains and the
// first matching pattern wins, so specific patterns come first.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Database constraint errors
	{"duplicate key", UserMessage{"A record with this value already exists", "Change the highlighted value and try again", "DB001"}},
	{"unique constraint", UserMessage{"This value must be unique but already exists", "Use a different value", "DB002"}},
	{"violates unique", UserMessage{"A duplicate value was found", "Use a different value", "DB002"}},
	{"foreign key constraint", UserMessage{"Referenced record does not exist", "Create the related record first", "DB003"}},
	{"violates foreign key", UserMessage{"Referenced record does not exist", "Create the related record first", "DB003"}},

	// Database connection errors
	{"connection refused", UserMessage{"Unable to connect to database", "Please try again in a few moments", "DB004"}},
	{"connection reset", UserMessage{"Database connection was interrupted", "Please try again", "DB005"}},
	{"deadlock", UserMessage{"Database was busy with conflicting operations", "Please try again", "DB007"}},

	// Validation errors
	{"invalid email", UserMessage{"The email address is not valid", "Check the address for typos", "VAL001"}},
	{"invalid date", UserMessage{"Invalid date format detected", "Use YYYY-MM-DD or the date picker", "VAL002"}},
	{"invalid number", UserMessage{"Invalid number format detected", "Use digits with an optional decimal point", "VAL003"}},
	{"invalid link", UserMessage{"The link is not valid", "Links must start with http:// or https://", "VAL004"}},
	{"must be one of", UserMessage{"Value is not in the allowed list", "Pick one of the listed options", "VAL005"}},
	{"youtube link", UserMessage{"Not a recognised YouTube link", "Paste the link from the YouTube share button", "VAL006"}},
	{"validation failed", UserMessage{"Some fields need attention", "Correct the highlighted fields and submit again", "VAL000"}},

	// Record errors
	{"record not found", UserMessage{"The requested item does not exist", "It may have been deleted. Return to the list", "NF001"}},
	{"unknown resource", UserMessage{"Unknown section", "This section is not configured", "RES001"}},
	{"read-only", UserMessage{"This section cannot be edited", "Entries here are created automatically", "RES002"}},

	// Newsletter
	{"already sent", UserMessage{"This newsletter was already sent", "Compose a new newsletter instead", "NEWS001"}},

	// Authentication
	{"invalid credentials", UserMessage{"Email or password is incorrect", "Check your details and try again", "AUTH001"}},
	{"session expired", UserMessage{"Your session has expired", "Please sign in again", "AUTH002"}},

	// Request lifecycle
	{"context canceled", UserMessage{"Request was cancelled", "Please try again", "DB006"}},
	{"context deadline exceeded", UserMessage{"Request timed out", "Please try again", "DB006"}},
	{"timeout", UserMessage{"Operation timed out", "Please try again later", "DB006"}},

	// Rate limiting
	{"rate limit", UserMessage{"Too many requests", "Please wait a moment before trying again", "RATE001"}},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first matching pattern or the ERR000 fallback.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
