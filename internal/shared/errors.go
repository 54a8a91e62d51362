package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrAuthExpired      = fmt.Errorf("authentication expired")
	ErrRefreshFailed    = fmt.Errorf("token refresh failed")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API errors, classified from the response status
	ErrTransport  = fmt.Errorf("request transport failed")
	ErrValidation = fmt.Errorf("request rejected")
	ErrServer     = fmt.Errorf("server error")

	// Domain errors
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrVideoNotFound    = fmt.Errorf("video not found")
	ErrSessionNotFound  = fmt.Errorf("no stored session")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
