// Package handlers provides HTTP request handling
package handlers

// Common error messages. Callers only ever see one of these fixed strings,
// never a raw database or library error.
const (
	ErrMsgInvalidProjectID = "Project ID is required"
	ErrMsgProjNotFound     = "Project not found"
	ErrMsgAuthRequired     = "This project requires authentication"
	ErrMsgInvalidCreds     = "Invalid credentials"
	ErrMsgInternal         = "Internal server error"
)

// Auth error messages
const (
	ErrMsgMissingLogin    = "Missing email or password"
	ErrMsgMissingFields   = "Missing required fields"
	ErrMsgWeakPassword    = "Password must be at least 6 characters"
	ErrMsgEmailExists     = "email_exists"
	ErrMsgInvalidLogin    = "invalid_credentials"
	ErrMsgSignupFailed    = "Signup failed"
	ErrMsgSigninFailed    = "Signin failed"
	ErrMsgProfileRequired = "Email is required"
	ErrMsgProfileNotFound = "Profile not found"
)
